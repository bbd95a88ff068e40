package sqlc

import (
	"context"
	"time"

	"github.com/sqlc-dev/pqtype"
)

const QuerierCtxTimeout = time.Second * 10

type Querier interface {
	AnalyticsIncrementMatchesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error
	AnalyticsIncrementShotsFiredCount(ctx context.Context, serverIp pqtype.Inet) error
	AnalyticsIncrementRematchCalledCount(ctx context.Context, serverIp pqtype.Inet) error

	GetMatchesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	GetShotsFiredCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	GetRematchCalledCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
}

var _ Querier = (*Queries)(nil)

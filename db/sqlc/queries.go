package sqlc

import (
	"context"
	"database/sql"

	"github.com/sqlc-dev/pqtype"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const analyticsIncrementMatchesCreatedCount = `
INSERT INTO match_server_analytics (server_ip, matches_created)
VALUES ($1, 1)
ON CONFLICT (server_ip)
DO UPDATE SET matches_created = match_server_analytics.matches_created + 1
`

func (q *Queries) AnalyticsIncrementMatchesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, analyticsIncrementMatchesCreatedCount, serverIp)
	return err
}

const analyticsIncrementShotsFiredCount = `
INSERT INTO match_server_analytics (server_ip, shots_fired)
VALUES ($1, 1)
ON CONFLICT (server_ip)
DO UPDATE SET shots_fired = match_server_analytics.shots_fired + 1
`

func (q *Queries) AnalyticsIncrementShotsFiredCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, analyticsIncrementShotsFiredCount, serverIp)
	return err
}

const analyticsIncrementRematchCalledCount = `
INSERT INTO match_server_analytics (server_ip, rematch_called)
VALUES ($1, 1)
ON CONFLICT (server_ip)
DO UPDATE SET rematch_called = match_server_analytics.rematch_called + 1
`

func (q *Queries) AnalyticsIncrementRematchCalledCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, analyticsIncrementRematchCalledCount, serverIp)
	return err
}

const getMatchesCreatedCount = `
SELECT matches_created FROM match_server_analytics WHERE server_ip = $1
`

func (q *Queries) GetMatchesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, getMatchesCreatedCount, serverIp).Scan(&count)
	return count, err
}

const getShotsFiredCount = `
SELECT shots_fired FROM match_server_analytics WHERE server_ip = $1
`

func (q *Queries) GetShotsFiredCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, getShotsFiredCount, serverIp).Scan(&count)
	return count, err
}

const getRematchCalledCount = `
SELECT rematch_called FROM match_server_analytics WHERE server_ip = $1
`

func (q *Queries) GetRematchCalledCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, getRematchCalledCount, serverIp).Scan(&count)
	return count, err
}

package sqlc

import (
	"context"
	"net"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"
)

func testIpNet(t *testing.T) pqtype.Inet {
	t.Helper()
	_, ipnet, err := net.ParseCIDR("192.168.1.10/32")
	if err != nil {
		t.Fatal(err)
	}
	return pqtype.Inet{IPNet: *ipnet, Valid: true}
}

func newMockAnalyticsManager(t *testing.T) (*AnalyticsManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewAnalyticsManager(New(db)), mock
}

func TestAnalyticsIncrementCounters(t *testing.T) {
	ipnet := testIpNet(t)

	tests := []struct {
		name      string
		query     string
		increment func(*AnalyticsManager, context.Context, pqtype.Inet) error
	}{
		{
			name:      "matches created",
			query:     `INSERT INTO match_server_analytics \(server_ip, matches_created\)`,
			increment: (*AnalyticsManager).IncrementMatchesCreatedCount,
		},
		{
			name:      "shots fired",
			query:     `INSERT INTO match_server_analytics \(server_ip, shots_fired\)`,
			increment: (*AnalyticsManager).IncrementShotsFiredCount,
		},
		{
			name:      "rematch called",
			query:     `INSERT INTO match_server_analytics \(server_ip, rematch_called\)`,
			increment: (*AnalyticsManager).IncrementRematchCalledCount,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			am, mock := newMockAnalyticsManager(t)

			mock.ExpectExec(test.query).
				WithArgs(ipnet).
				WillReturnResult(sqlmock.NewResult(0, 1))

			if err := test.increment(am, context.Background(), ipnet); err != nil {
				t.Fatal(err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestAnalyticsGetCounters(t *testing.T) {
	ipnet := testIpNet(t)

	tests := []struct {
		name   string
		query  string
		column string
		get    func(*AnalyticsManager, context.Context, pqtype.Inet) (int64, error)
		want   int64
	}{
		{
			name:   "matches created",
			query:  `SELECT matches_created FROM match_server_analytics`,
			column: "matches_created",
			get:    (*AnalyticsManager).GetMatchesCreatedCount,
			want:   42,
		},
		{
			name:   "shots fired",
			query:  `SELECT shots_fired FROM match_server_analytics`,
			column: "shots_fired",
			get:    (*AnalyticsManager).GetShotsFiredCount,
			want:   1337,
		},
		{
			name:   "rematch called",
			query:  `SELECT rematch_called FROM match_server_analytics`,
			column: "rematch_called",
			get:    (*AnalyticsManager).GetRematchCalledCount,
			want:   7,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			am, mock := newMockAnalyticsManager(t)

			rows := sqlmock.NewRows([]string{test.column}).AddRow(test.want)
			mock.ExpectQuery(test.query).WithArgs(ipnet).WillReturnRows(rows)

			got, err := test.get(am, context.Background(), ipnet)
			if err != nil {
				t.Fatal(err)
			}
			if got != test.want {
				t.Fatalf("expected %d, got %d", test.want, got)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

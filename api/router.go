package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sqlc-dev/pqtype"

	"github.com/oceangrid/armada-backend/db/sqlc"
)

// NewRouter exposes the websocket endpoint plus a small REST surface for
// liveness and per-server analytics.
func NewRouter(rp RequestProcessor, analytics *sqlc.AnalyticsManager) *gin.Engine {
	r := gin.Default()

	r.GET("/health", HealthHandler())
	r.GET("/stats", StatsHandler(rp, analytics))
	r.GET("/battleship", gin.WrapH(rp))

	return r
}

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func StatsHandler(rp RequestProcessor, analytics *sqlc.AnalyticsManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if analytics == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analytics storage not configured"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), sqlc.QuerierCtxTimeout)
		defer cancel()

		serverIp := pqtype.Inet{IPNet: rp.GetIpNet(), Valid: true}

		matchesCreated, err := analytics.GetMatchesCreatedCount(ctx, serverIp)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		shotsFired, err := analytics.GetShotsFiredCount(ctx, serverIp)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rematchCalled, err := analytics.GetRematchCalledCount(ctx, serverIp)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"matches_created": matchesCreated,
			"shots_fired":     shotsFired,
			"rematch_called":  rematchCalled,
		})
	}
}

package handler

import (
	"context"
	"net/http"
	"time"

	"trazabilidad/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity; never exposes credentials or internals.
// An open mail breaker is reported but does not fail the check, and neither
// does a non-empty dead letter queue.
func Health(db *gorm.DB, rdb *redis.Client, mailCB *infra.Breaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "disabled"
		var dlq map[string]int64
		if rdb != nil {
			redisStatus = "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
			} else if dlq, err = dlqDepths(ctx, rdb); err != nil {
				redisStatus = "error"
			}
		}

		mailStatus := "disabled"
		if mailCB != nil {
			mailStatus = mailCB.State().String()
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus == "error" {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
			"smtp":  mailStatus,
		}
		if dlq != nil {
			body["dlq"] = dlq
		}
		c.JSON(status, body)
	}
}

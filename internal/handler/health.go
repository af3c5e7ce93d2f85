package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/pkg/redis"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db      *gorm.DB
	redis   *redis.Client
	started time.Time
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:      db,
		redis:   redisClient,
		started: time.Now(),
	}
}

// Check reports liveness of the process and its backing stores. A failed
// database check turns the whole report unhealthy; Redis is best-effort.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	status := http.StatusOK
	report := gin.H{
		"status":    "healthy",
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	dbStatus := "up"
	if sqlDB, err := h.db.DB(); err != nil {
		dbStatus = "down"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "down"
	}
	if dbStatus == "down" {
		status = http.StatusServiceUnavailable
		report["status"] = "unhealthy"
	}
	report["database"] = dbStatus

	redisStatus := "disabled"
	if h.redis.IsEnabled() {
		redisStatus = "up"
		if err := h.redis.Ping(ctx); err != nil {
			redisStatus = "down"
		}
	}
	report["redis"] = redisStatus

	c.JSON(status, report)
}

package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewHealthHandler(db *gorm.DB, cache *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// Health reports liveness plus the state of the two backends. A degraded
// cache never takes the service down, so it only flips the checks map.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}
	status := http.StatusOK

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	if h.cache == nil {
		checks["cache"] = "not configured"
	} else if err := h.cache.Ping(ctx).Err(); err != nil {
		checks["cache"] = err.Error()
	}

	return c.JSON(status, map[string]interface{}{
		"status": http.StatusText(status),
		"checks": checks,
	})
}

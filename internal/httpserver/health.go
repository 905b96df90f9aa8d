package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/sweet_shop/internal/logging"
	"github.com/Skotchmaster/sweet_shop/internal/transport"
)

type HealthHTTP struct {
	DB *gorm.DB
}

func (h *HealthHTTP) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, transport.HealthResponse{Status: "OK", Message: "Server is running"})
}

func (h *HealthHTTP) Live(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// Ready reports 503 while the store cannot be reached.
func (h *HealthHTTP) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logging.FromContext(ctx).Error("readiness_error", "status", 503, "reason", "store unreachable", "error", err)
		return c.JSON(http.StatusServiceUnavailable, transport.HealthResponse{Status: "degraded", Message: "Database unreachable"})
	}
	return c.JSON(http.StatusOK, transport.HealthResponse{Status: "OK", Message: "Database reachable"})
}

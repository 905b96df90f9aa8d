package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sweet_shop/internal/logging"
	"github.com/Skotchmaster/sweet_shop/internal/service"
	"github.com/Skotchmaster/sweet_shop/internal/transport"
)

type SeedHTTP struct {
	Svc *service.SeedService
}

func (h *SeedHTTP) Seed(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seed")

	created, err := h.Svc.Seed(ctx)
	if err != nil {
		l.Error("seed_error", "status", 500, "reason", "cannot seed database", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
	if !created {
		return c.JSON(http.StatusOK, transport.SeedResponse{Message: "Database already seeded"})
	}

	l.Info("seed_success")
	return c.JSON(http.StatusOK, transport.SeedResponse{
		Message:     "Database seeded successfully",
		Credentials: service.SeedCredentials(),
	})
}

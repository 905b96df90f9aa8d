package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sweet_shop/internal/logging"
	middleware "github.com/Skotchmaster/sweet_shop/internal/middleware/auth"
	"github.com/Skotchmaster/sweet_shop/internal/models"
	"github.com/Skotchmaster/sweet_shop/internal/service"
	"github.com/Skotchmaster/sweet_shop/internal/transport"
)

const (
	msgSweetNotFound     = "Sweet not found"
	msgInsufficientStock = "Insufficient stock available"
)

type SweetHTTP struct {
	Svc *service.CatalogService
}

// handlerLogger tags the request logger with the caller's identity.
func handlerLogger(c echo.Context, name string) *slog.Logger {
	l := logging.FromContext(c.Request().Context()).With("handler", name)
	if claims, ok := middleware.ClaimsFrom(c); ok {
		l = l.With("user_id", claims.UserID, "role", claims.Role)
	}
	return l
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid sweet id")
	}
	return uint(id), nil
}

func parsePrice(raw, field string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &service.ValidationError{Fields: []transport.FieldError{
			{Field: field, Message: field + " must be a number"},
		}}
	}
	return &v, nil
}

func (h *SweetHTTP) ListSweets(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.list")

	items, err := h.Svc.ListSweets(ctx)
	if err != nil {
		l.Error("list_sweets_error", "status", 500, "reason", "cannot fetch sweets", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *SweetHTTP) SearchSweets(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.search")

	minPrice, err := parsePrice(c.QueryParam("minPrice"), "minPrice")
	if err != nil {
		l.Warn("search_sweets_error", "status", 400, "reason", "bad minPrice", "error", err)
		return err
	}
	maxPrice, err := parsePrice(c.QueryParam("maxPrice"), "maxPrice")
	if err != nil {
		l.Warn("search_sweets_error", "status", 400, "reason", "bad maxPrice", "error", err)
		return err
	}

	items, err := h.Svc.SearchSweets(ctx, transport.SearchFilter{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
	if err != nil {
		l.Error("search_sweets_error", "status", 500, "reason", "cannot search sweets", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *SweetHTTP) CreateSweet(c echo.Context) error {
	ctx := c.Request().Context()
	l := handlerLogger(c, "sweet.create")

	var req transport.CreateSweetRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_sweet_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_sweet_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	sweet, err := h.Svc.CreateSweet(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_sweet_error", "status", 400, "reason", "validation failed", "error", err)
			return err
		}
		l.Error("create_sweet_error", "status", 500, "reason", "cannot add sweet to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	l.Info("create_sweet_success", "sweet_id", sweet.ID)
	return c.JSON(http.StatusCreated, sweet)
}

func (h *SweetHTTP) UpdateSweet(c echo.Context) error {
	ctx := c.Request().Context()
	l := handlerLogger(c, "sweet.update")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_sweet_error", "status", 400, "reason", "id is not a positive integer", "param", c.Param("id"))
		return err
	}

	var req transport.UpdateSweetRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		l.Warn("update_sweet_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Empty() {
		l.Warn("update_sweet_error", "status", 400, "reason", "no fields to update", "sweet_id", id)
		return echo.NewHTTPError(http.StatusBadRequest, "No fields to update")
	}

	sweet, err := h.Svc.UpdateSweet(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_sweet_error", "status", 400, "reason", "validation failed", "error", err)
			return err
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_sweet_error", "status", 404, "reason", "sweet not found", "sweet_id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgSweetNotFound)
		default:
			l.Error("update_sweet_error", "status", 500, "reason", "cannot update sweet", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
		}
	}

	l.Info("update_sweet_success", "sweet_id", id)
	return c.JSON(http.StatusOK, sweet)
}

func (h *SweetHTTP) DeleteSweet(c echo.Context) error {
	ctx := c.Request().Context()
	l := handlerLogger(c, "sweet.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_sweet_error", "status", 400, "reason", "id is not a positive integer", "param", c.Param("id"))
		return err
	}

	if err := h.Svc.DeleteSweet(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_sweet_error", "status", 404, "reason", "sweet not found", "sweet_id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgSweetNotFound)
		}
		l.Error("delete_sweet_error", "status", 500, "reason", "cannot delete sweet", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	l.Info("delete_sweet_success", "sweet_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Sweet deleted successfully"})
}

func (h *SweetHTTP) Purchase(c echo.Context) error {
	return h.adjustStock(c, "purchase", h.Svc.Purchase)
}

func (h *SweetHTTP) Restock(c echo.Context) error {
	return h.adjustStock(c, "restock", h.Svc.Restock)
}

type stockOp func(ctx context.Context, id uint, quantity int) (*models.Sweet, error)

func (h *SweetHTTP) adjustStock(c echo.Context, op string, apply stockOp) error {
	ctx := c.Request().Context()
	l := handlerLogger(c, "sweet."+op)
	event := op + "_sweet_error"

	id, err := parseID(c)
	if err != nil {
		l.Warn(event, "status", 400, "reason", "id is not a positive integer", "param", c.Param("id"))
		return err
	}

	var req transport.StockRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		l.Warn(event, "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn(event, "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	sweet, err := apply(ctx, id, *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn(event, "status", 400, "reason", "validation failed", "error", err)
			return err
		case errors.Is(err, service.ErrNotFound):
			l.Warn(event, "status", 404, "reason", "sweet not found", "sweet_id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgSweetNotFound)
		case errors.Is(err, service.ErrInsufficientStock):
			l.Warn(event, "status", 400, "reason", "insufficient stock", "sweet_id", id, "requested", *req.Quantity)
			return echo.NewHTTPError(http.StatusBadRequest, msgInsufficientStock)
		default:
			l.Error(event, "status", 500, "reason", "cannot update stock", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
		}
	}

	l.Info(op+"_sweet_success", "sweet_id", id, "quantity", sweet.Quantity)
	return c.JSON(http.StatusOK, sweet)
}

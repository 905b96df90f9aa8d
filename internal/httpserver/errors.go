package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sweet_shop/internal/logging"
	"github.com/Skotchmaster/sweet_shop/internal/service"
	"github.com/Skotchmaster/sweet_shop/internal/transport"
)

const (
	msgRouteNotFound = "Route not found"
	msgServerError   = "Internal server error"
)

// ErrorHandler renders every error as {"message"} or, for field validation,
// {"errors":[...]}. Errors that are not *echo.HTTPError are logged and
// reported as a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, body := resolveError(err, c)
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, body)
}

func resolveError(err error, c echo.Context) (int, any) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, transport.ValidationErrorResponse{Errors: verr.Fields}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			if herr, ok := he.Internal.(*echo.HTTPError); ok {
				he = herr
			}
		}
		switch {
		case he.Code == http.StatusNotFound && he.Message == echo.ErrNotFound.Message:
			return he.Code, transport.MessageResponse{Message: msgRouteNotFound}
		case he.Code >= http.StatusInternalServerError:
			if he.Internal != nil {
				logging.FromContext(c.Request().Context()).Error("internal_error", "status", he.Code, "error", he.Internal)
			}
			return he.Code, transport.MessageResponse{Message: msgServerError}
		}
		msg, ok := he.Message.(string)
		if !ok {
			msg = fmt.Sprintf("%v", he.Message)
		}
		return he.Code, transport.MessageResponse{Message: msg}
	}

	logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", 500, "error", err)
	return http.StatusInternalServerError, transport.MessageResponse{Message: msgServerError}
}

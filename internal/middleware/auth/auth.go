package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sweet_shop/internal/models"
	"github.com/Skotchmaster/sweet_shop/internal/tokens"
)

const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
	CtxClaims = "claims"
)

type BearerAuth struct {
	Tokens *tokens.Issuer
}

func NewBearerAuth(issuer *tokens.Issuer) *BearerAuth {
	return &BearerAuth{Tokens: issuer}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// RequireAuth rejects requests without a valid bearer token and exposes
// the decoded claims to downstream handlers.
func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := bearerToken(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "No token provided, authorization denied")
		}

		claims, err := m.Tokens.Parse(raw)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid")
		}

		setUserContext(c, claims)
		return next(c)
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(required string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			if !satisfies(role, required) {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied. Insufficient permissions.")
			}
			return next(c)
		}
	}
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return RequireRole(models.RoleAdmin)(next)
}

func satisfies(role, required string) bool {
	if role == required {
		return true
	}
	return role == models.RoleAdmin && required == models.RoleUser
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxEmail, claims.Email)
	c.Set(CtxRole, claims.Role)
	c.Set(CtxClaims, claims)
}

func ClaimsFrom(c echo.Context) (*tokens.AccessClaims, bool) {
	claims, ok := c.Get(CtxClaims).(*tokens.AccessClaims)
	return claims, ok
}

package httpserver

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	middleware "github.com/Skotchmaster/sweet_shop/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/sweet_shop/internal/middleware/logging"
	"github.com/Skotchmaster/sweet_shop/internal/tokens"
)

type Options struct {
	Logger      *slog.Logger
	CORSOrigins []string
	StaticDir   string
	// Registerer receives the per-route request metrics; nil means the
	// default prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewEcho builds the echo instance with the global middleware chain.
func NewEcho(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Secure())
	e.Use(loggingmw.RequestLogger(opts.Logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "sweetshop",
		Registerer: opts.Registerer,
		Skipper:    func(c echo.Context) bool { return c.Path() == "/metrics" },
	}))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))

	if opts.StaticDir != "" {
		e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
			Root:    opts.StaticDir,
			HTML5:   true,
			Skipper: isAPIPath,
		}))
	}

	return e
}

func isAPIPath(c echo.Context) bool {
	p := c.Request().URL.Path
	return strings.HasPrefix(p, "/api") || strings.HasPrefix(p, "/health") || p == "/metrics"
}

type Deps struct {
	DB           *gorm.DB
	AuthHandler  *AuthHTTP
	SweetHandler *SweetHTTP
	// SeedHandler is optional; /api/seed is mounted only when it is set.
	SeedHandler *SeedHTTP
	Tokens      *tokens.Issuer
}

func Register(e *echo.Echo, d *Deps) {
	health := &HealthHTTP{DB: d.DB}
	e.GET("/health/live", health.Live)
	e.GET("/health/ready", health.Ready)

	api := e.Group("/api")
	api.GET("/health", health.Health)

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	if d.SeedHandler != nil {
		api.GET("/seed", d.SeedHandler.Seed)
	}

	authMW := middleware.NewBearerAuth(d.Tokens)

	sweets := api.Group("/sweets", authMW.RequireAuth)
	sweets.GET("", d.SweetHandler.ListSweets)
	sweets.GET("/search", d.SweetHandler.SearchSweets)
	sweets.POST("", d.SweetHandler.CreateSweet)
	sweets.PUT("/:id", d.SweetHandler.UpdateSweet)
	sweets.POST("/:id/purchase", d.SweetHandler.Purchase)
	sweets.DELETE("/:id", d.SweetHandler.DeleteSweet, middleware.RequireAdmin)
	sweets.POST("/:id/restock", d.SweetHandler.Restock, middleware.RequireAdmin)
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/veridian/identity-service/internal/api/handler"
	"github.com/veridian/identity-service/internal/api/middleware"
	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

// Deps carries the explicitly constructed collaborators the router wires into
// handlers and middleware. Nothing here is global: secrets, stores, and
// services are all built once at startup and passed down.
type Deps struct {
	AuthService    ports.AuthService
	SessionService ports.SessionService
	AuditQuery     ports.AuditQuery
	AuditPublisher ports.AuditPublisher

	// Optional backends, used by the readiness probe when present.
	Mongo *mongo.Database
	Redis *redis.Client

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.SessionService)
	userHandler := handler.NewUserHandler()
	auditHandler := handler.NewAuditHandler(deps.AuditQuery)

	authn := middleware.Auth(deps.SessionService)
	active := middleware.ActiveUser(deps.SessionService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)

	// --- Protected routes ---
	e.GET("/users/me", userHandler.Me, authn, active)
	e.GET("/admin/audit", auditHandler.List, authn, active,
		middleware.RBAC(deps.AuditPublisher, domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

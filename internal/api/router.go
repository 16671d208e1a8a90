package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/authcore/identity-api/internal/api/handler"
	"github.com/authcore/identity-api/internal/api/middleware"
	"github.com/authcore/identity-api/internal/core/domain"
	"github.com/authcore/identity-api/internal/core/ports"
	"github.com/authcore/identity-api/internal/core/service"
)

// Deps carries the constructed dependencies the router wires into handlers.
// Passing them in explicitly (rather than building them from global state)
// lets tests swap in doubles and run multiple isolated instances.
type Deps struct {
	Repo   ports.UserRepository
	Hasher ports.PasswordHasher
	Tokens ports.TokenService

	// DB backs the readiness probe only; may be nil in tests.
	DB  *gorm.DB
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

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Repo, deps.Hasher, deps.Tokens)
	authHandler := handler.NewAuthHandler(authService)
	resourceHandler := handler.NewResourceHandler()
	userHandler := handler.NewUserHandler(authService)

	authenticated := middleware.Auth(deps.Tokens)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)

	// --- Protected routes ---
	e.GET("/me", resourceHandler.Me, authenticated)
	e.GET("/download", resourceHandler.Download, authenticated)
	e.GET("/admin-area", resourceHandler.AdminArea, authenticated, adminOnly)
	e.DELETE("/delete-item/:id", resourceHandler.DeleteItem, authenticated, adminOnly)
	e.PUT("/edit-item/:id", resourceHandler.EditItem, authenticated, adminOnly)
	e.DELETE("/users/:id", userHandler.Delete, authenticated, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is the database up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

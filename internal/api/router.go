package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/usermgmt/user-address-api/internal/api/handler"
	"github.com/usermgmt/user-address-api/internal/api/middleware"
	"github.com/usermgmt/user-address-api/internal/core/domain"
	"github.com/usermgmt/user-address-api/internal/core/ports"
	"github.com/usermgmt/user-address-api/internal/core/service"
	"github.com/usermgmt/user-address-api/internal/infrastructure/config"
	mongodb "github.com/usermgmt/user-address-api/internal/infrastructure/db/mongo"
	"github.com/usermgmt/user-address-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cep ports.CepLookup, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("useraddress"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	counters := mongodb.NewCounters(db)
	userRepo := mongodb.NewUserRepository(db, counters)
	addressRepo := mongodb.NewAddressRepository(db, counters)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, addressRepo, log)
	addressService := service.NewAddressService(addressRepo, userRepo, cep, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	addressHandler := handler.NewAddressHandler(addressService, cep)

	authenticated := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/v1/login", authHandler.Login)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("/v1/created", userHandler.Create) // open registration
	users.GET("/v1/me", userHandler.Me, authenticated)
	users.GET("/v1/list", userHandler.List, authenticated, adminOnly)
	users.GET("/v1/list/:id", userHandler.GetByID, authenticated)
	users.PUT("/v1/update/:id", userHandler.Update, authenticated)
	users.PUT("/v1/:id/role", userHandler.UpdateRole, authenticated, adminOnly)
	users.DELETE("/v1/delete/:id", userHandler.Delete, authenticated, adminOnly)

	// --- Address routes ---
	addresses := e.Group("/addresses", authenticated)
	addresses.POST("/v1/create/:userId", addressHandler.Create)
	addresses.GET("/v1/list", addressHandler.List, adminOnly)
	addresses.GET("/v1/list/:id", addressHandler.GetByID)
	addresses.GET("/v1/list-addresses/:userId", addressHandler.ListByOwner)
	addresses.PUT("/v1/update/:id", addressHandler.Update)
	addresses.DELETE("/v1/delete/:id", addressHandler.Delete)
	addresses.GET("/v1/cep/:cep", addressHandler.LookupCep)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

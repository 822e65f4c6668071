package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aurelia-jewels/storefront-api/internal/api/handler"
	"github.com/aurelia-jewels/storefront-api/internal/api/middleware"
	"github.com/aurelia-jewels/storefront-api/internal/core/service"
	mongodb "github.com/aurelia-jewels/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/aurelia-jewels/storefront-api/internal/infrastructure/db/redis"
	"github.com/aurelia-jewels/storefront-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	tokenStore := redisdb.NewTokenStore(rdb)

	authService := service.NewAuthService(userRepo, tokenStore, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost, log)
	catalogService := service.NewCatalogService(productRepo, log)
	orderService := service.NewOrderService(orderRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)

	requireAuth := middleware.Auth(cfg.JWTSecret, tokenStore)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret, tokenStore)

	// --- Auth & user routes ---
	e.POST("/api/auth/signup", authHandler.Signup)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/auth/me", authHandler.Me, requireAuth)
	e.POST("/api/auth/logout", authHandler.Logout, requireAuth)
	e.PUT("/api/users/:id", authHandler.UpdateProfile, requireAuth)

	// --- Catalog routes ---
	e.GET("/api/products", productHandler.List)
	e.GET("/api/products/:id", productHandler.Get)
	e.POST("/api/products", productHandler.Create, requireAuth)

	// --- Order routes ---
	e.POST("/api/orders", orderHandler.Create, optionalAuth)
	e.GET("/api/orders/user/:userId", orderHandler.ListForUser, requireAuth)
	e.GET("/api/orders/:id", orderHandler.Get, requireAuth)
	e.PUT("/api/orders/:id/status", orderHandler.UpdateStatus, requireAuth)

	// --- Observability ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Static frontend with SPA fallback ---
	// Unmatched non-API routes serve the frontend entry point.
	e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
		Root:  cfg.StaticDir,
		Index: "index.html",
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/api") ||
				strings.HasPrefix(p, "/health") ||
				strings.HasPrefix(p, "/metrics")
		},
	}))

	return e
}

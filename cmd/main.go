package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/subhashree8125/rental-platform/internal/handler"
	"github.com/subhashree8125/rental-platform/internal/middleware"
	"github.com/subhashree8125/rental-platform/internal/service"
	"github.com/subhashree8125/rental-platform/internal/session"
	"github.com/subhashree8125/rental-platform/internal/storage"
	"github.com/subhashree8125/rental-platform/internal/store"
	"github.com/subhashree8125/rental-platform/pkg/config"
	"github.com/subhashree8125/rental-platform/pkg/database"
	"github.com/subhashree8125/rental-platform/pkg/logger"
	"github.com/subhashree8125/rental-platform/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting rental platform service...", zap.String("environment", cfg.Server.Env))

	// Initialize database (includes migrations)
	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed")

	// Image upload directory
	images, err := storage.NewImageStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatal("Failed to initialize image store", zap.Error(err))
	}

	// Session store
	sessions := session.NewStore(cfg.Session.TTL)
	defer sessions.Close()

	// Stores and services: the database handle and the session identity are
	// passed in explicitly, nothing reads ambient process state.
	users := store.NewUserStore(db)
	properties := store.NewPropertyStore(db)
	authService := service.NewAuthService(users)
	listingService := service.NewListingService(properties, images)
	profileService := service.NewProfileService(users)

	authHandler := handler.NewAuthHandler(authService, sessions, cfg.Session)
	propertyHandler := handler.NewPropertyHandler(listingService)
	profileHandler := handler.NewProfileHandler(profileService, sessions, cfg.Session.CookieName)
	healthHandler := handler.NewHealthHandler(db)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.Server.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no session required
	e.GET("/", handler.Hello)
	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))
	e.Static("/uploads", images.Dir())

	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	e.GET("/session", authHandler.Session)

	// The public feed is browsable without login
	e.GET("/api/properties", propertyHandler.List)

	// Session-protected routes
	api := e.Group("/api")
	api.Use(middleware.SessionAuth(sessions, cfg.Session.CookieName))
	api.POST("/properties", propertyHandler.Create)
	api.GET("/myproperties", propertyHandler.MyProperties)
	api.PUT("/properties/:id", propertyHandler.Update)
	api.PUT("/properties/:id/status", propertyHandler.UpdateStatus)
	api.DELETE("/properties/:id", propertyHandler.Delete)
	api.GET("/properties/:id/contact", propertyHandler.Contact)
	api.GET("/profile", profileHandler.Get)
	api.PUT("/profile", profileHandler.Update)
	api.DELETE("/profile", profileHandler.Delete)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

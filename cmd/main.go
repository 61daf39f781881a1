package main

import (
	"orphanage-service/internal/handler"
	"orphanage-service/internal/middleware"
	"orphanage-service/internal/repository"
	"orphanage-service/pkg/config"
	"orphanage-service/pkg/database"
	"orphanage-service/pkg/jwtutil"
	"orphanage-service/pkg/logger"
	"orphanage-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
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
	log.Info("Starting orphanage service...", zap.String("environment", cfg.Server.Env))

	// Initialize database (includes migrations)
	db, err := database.Init(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connection established and migrations completed")

	// Wire repositories over the shared handle
	users := repository.NewUserRepository(db)
	orphanages := repository.NewOrphanageRepository(db)
	children := repository.NewChildRepository(db)
	staff := repository.NewStaffRepository(db)
	donations := repository.NewDonationRepository(db)
	analytics := repository.NewAnalyticsRepository(db)

	jwt := jwtutil.NewJWTUtil(&cfg.JWT)

	authHandler := handler.NewAuthHandler(users, jwt)
	orphanageHandler := handler.NewOrphanageHandler(orphanages, users)
	childHandler := handler.NewChildHandler(children)
	staffHandler := handler.NewStaffHandler(staff)
	donationHandler := handler.NewDonationHandler(donations, orphanages, users)
	analyticsHandler := handler.NewAnalyticsHandler(analytics, orphanages)
	adminHandler := handler.NewAdminHandler(orphanages, donations)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/", handler.Hello)
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	auth := middleware.Auth(jwt, users)

	api := e.Group("/api")

	// Auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, auth)

	// Orphanage routes
	api.GET("/orphanages", orphanageHandler.List)
	api.POST("/orphanages", orphanageHandler.Create, auth)
	api.GET("/orphanages/:slug", orphanageHandler.GetBySlug)
	api.PUT("/orphanages/:id", orphanageHandler.Update, auth)

	// Roster routes
	api.GET("/orphanages/:id/children", childHandler.List)
	api.POST("/orphanages/:id/children", childHandler.Add, auth)
	api.DELETE("/orphanages/:id/children/:childId", childHandler.Remove, auth)
	api.GET("/orphanages/:id/staff", staffHandler.List)
	api.POST("/orphanages/:id/staff", staffHandler.Add, auth)
	api.GET("/orphanages/:id/donations", donationHandler.ListByOrphanage, auth)

	// Donation routes
	api.POST("/donations/create", donationHandler.Create, auth)
	api.GET("/donations/my", donationHandler.My, auth)
	api.GET("/donations/:id/receipt", donationHandler.Receipt, auth)

	// Analytics routes
	api.GET("/analytics/orphanage/:id", analyticsHandler.Orphanage, auth)
	api.GET("/analytics/platform", analyticsHandler.Platform, auth)

	// Super admin routes
	api.GET("/admin/orphanages", adminHandler.ListOrphanages, auth)
	api.GET("/admin/donations", adminHandler.ListDonations, auth)
	api.PUT("/admin/orphanages/:id/verify", adminHandler.Verify, auth)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

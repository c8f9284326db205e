package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/delicato-app/restaurant-service/internal/config"
	"github.com/delicato-app/restaurant-service/internal/db"
	"github.com/delicato-app/restaurant-service/internal/db/repository"
	"github.com/delicato-app/restaurant-service/internal/router"
	"github.com/delicato-app/restaurant-service/internal/service"
	"github.com/delicato-app/restaurant-service/internal/websockets"
)

func main() {
	// Load .env if present; deployment environments set real variables.
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if !cfg.Server.Production() {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Initialize database
	database, err := db.NewPostgres(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer database.Close()

	// Run database migrations
	if err := database.Migrate(cfg.Database); err != nil {
		logrus.WithError(err).Fatal("Failed to run database migrations")
	}

	repos := repository.NewRepositories(database.DB)

	authService := service.NewAuthService(repos, cfg.Auth)
	loyaltyService := service.NewLoyaltyService(repos, cfg.Loyalty.Rate())
	orderService := service.NewOrderService(repos, loyaltyService)
	userService := service.NewUserService(repos)
	portalService := service.NewPortalService(repos)

	// Initialize WebSocket hub
	hub := websockets.NewHub()
	go hub.Run()

	// Initialize router
	r := router.New(cfg, database, repos, router.Services{
		Auth:    authService,
		Orders:  orderService,
		Users:   userService,
		Loyalty: loyaltyService,
		Portal:  portalService,
	}, hub)

	// Create HTTP server
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r.Handler(),
	}

	// Start server in a goroutine
	go func() {
		logrus.WithField("address", cfg.Server.Address).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("Server forced to shutdown")
	}

	logrus.Info("Server exited properly")
}

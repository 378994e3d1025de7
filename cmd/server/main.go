package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/secmetrics/internal/handlers"
	"github.com/alimgiray/secmetrics/internal/middleware"
	"github.com/alimgiray/secmetrics/internal/repositories"
	"github.com/alimgiray/secmetrics/internal/services"
	"github.com/alimgiray/secmetrics/pkg/config"
	"github.com/alimgiray/secmetrics/pkg/database"
	"github.com/alimgiray/secmetrics/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize database
	if err := database.Init(); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	githubObjectRepo := repositories.NewGithubObjectRepository(database.DB)
	branchProtectionService := services.NewBranchProtectionService(githubObjectRepo)
	twoFactorService := services.NewTwoFactorService(githubObjectRepo)
	exportService := services.NewExportService()

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	setupRoutes(router, branchProtectionService, twoFactorService, exportService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	logger.Info("Server stopped")
}

func setupRoutes(router *gin.Engine, branchProtectionService *services.BranchProtectionService, twoFactorService *services.TwoFactorService, exportService *services.ExportService) {
	// Initialize handlers
	reportsHandler := handlers.NewReportsHandler(branchProtectionService, twoFactorService, exportService)
	healthHandler := handlers.NewHealthHandler()

	// Report endpoints
	reports := router.Group("/reports")
	{
		reports.GET("/branch-protection", reportsHandler.BranchProtection)
		reports.GET("/organization-2fa", reportsHandler.OrganizationTwoFactor)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}

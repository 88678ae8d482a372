package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rallyround/docs/swagger"
	"rallyround/internal/api"
	"rallyround/internal/config"
	"rallyround/internal/db"
	"rallyround/internal/handlers"
	"rallyround/internal/models"
	"rallyround/internal/services"
	"rallyround/internal/tasks"
	"rallyround/internal/utils/logger"

	"github.com/joho/godotenv"
)

// 🚀 Main function
// @Summary Main function
// @Description Main function
// @title RallyRound API
// @version 1.0
// @description API documentation for the RallyRound application
// @host api.rallyround.app
// @BasePath /
// @schemes https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func main() {

	logger := logger.New("rallyround")

	// check if .env file exists
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		logger.Info("No .env file found, skipping environment variable loading")
	} else {
		logger.Info("Loading environment variables from .env file")
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("Failed to close database connection: %v", err)
		}
	}()

	dbInstance := db.GetDB()

	// Initialize task client and handlers
	taskClient := tasks.NewTaskClient(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	defer taskClient.Close()

	taskHandler := tasks.NewTaskHandler(dbInstance, taskClient)

	// Initialize task server
	taskServer := tasks.NewServer(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Worker.Concurrency,
		taskHandler,
		logger,
	)

	// Create a context for task server
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	// Start task server
	go func() {
		if err := taskServer.Start(serverCtx); err != nil {
			logger.Error("Task server error", err)
		}
	}()

	// Initialize task scheduler
	taskScheduler := tasks.NewScheduler(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
		logger,
	)

	// Start task scheduler
	go func() {
		if err := taskScheduler.Start(); err != nil {
			logger.Error("Task scheduler error", err)
		}
	}()

	// Initialize API server
	apiServer := api.NewServer(cfg, dbInstance)
	go func() {

		// Initialize S3 service
		s3Service, err := services.NewS3Service(
			cfg.Storage.S3.BucketName,
			cfg.Storage.S3.Endpoint,
			cfg.Storage.S3.Region,
			cfg.Storage.S3.AccessKey,
			cfg.Storage.S3.SecretKey,
		)
		if err != nil {
			logger.Warn("S3 service unavailable, media uploads disabled: %v", err)
		} else {
			models.RegisterMediaURLGenerator(s3Service)
			handlers.RegisterStorageHandler(s3Service)
		}

		logger.Success("API server started")

		// Swagger documentation
		swagger.SwaggerInfo.Title = "RallyRound API Documentation"
		swagger.SwaggerInfo.Description = "API documentation for the RallyRound application"
		swagger.SwaggerInfo.Version = "1.0"
		swagger.SwaggerInfo.Host = "api.rallyround.app"
		swagger.SwaggerInfo.Schemes = []string{"https"}

		if err := apiServer.Start(); err != nil {
			logger.Error("API server error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the servers
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Create a deadline for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop task scheduler
	taskScheduler.Stop()

	// Stop pulling new tasks, then wait for in-flight ones
	serverCancel()
	taskServer.Stop()
	taskServer.Shutdown()

	// Shutdown API server
	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown API server", err)
	}

	logger.Info("Servers shutdown gracefully")
}

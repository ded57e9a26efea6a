package main

import (
	"sceneyard/internal/app"
	"sceneyard/pkg/cache"
	"sceneyard/pkg/config"
	"sceneyard/pkg/database"
	"sceneyard/pkg/logger"
	"sceneyard/pkg/queue"
	"sceneyard/pkg/storage"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           SceneYard API
// @version         1.0
// @description     Credit-based marketplace for After Effects templates

// @contact.name   API Support
// @contact.email  hello@sceneyard.app

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}

	storageClient, err := storage.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create storage client: %v", err)
		panic(err)
	}

	// Connect to RabbitMQ for contact notification tasks
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil // Allow service to start without RabbitMQ
	}

	app.Run(cfg, log, db, redisClient, queueClient, storageClient)
}

package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sceneyardHTTP "sceneyard/internal/controller/http"
	"sceneyard/internal/repo/persistent"
	"sceneyard/internal/usecase"
	"sceneyard/pkg/config"
	"sceneyard/pkg/jwt"
	"sceneyard/pkg/logger"
	"sceneyard/pkg/middleware"
	"sceneyard/pkg/queue"
	"sceneyard/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client, storageClient *storage.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	templateRepo := persistent.NewTemplateRepository(db)
	categoryRepo := persistent.NewCategoryRepository(db)
	likeRepo := persistent.NewLikeRepository(db)
	downloadRepo := persistent.NewDownloadRepository(db)
	walletRepo := persistent.NewWalletRepository(db)
	contactRepo := persistent.NewContactRepository(db)

	// Initialize usecases
	oauthProvider := usecase.NewGoogleProvider(cfg)
	authUseCase := usecase.NewAuthUseCase(userRepo, walletRepo, oauthProvider, jwtService, cfg.SignupCreditBonus, log)
	templateUseCase := usecase.NewTemplateUseCase(templateRepo, categoryRepo, storageClient, log)
	interactionUseCase := usecase.NewInteractionUseCase(likeRepo, redisClient, log)
	downloadUseCase := usecase.NewDownloadUseCase(downloadRepo, templateRepo, storageClient, cfg.PublicURL, log)
	walletUseCase := usecase.NewWalletUseCase(walletRepo, log)
	contactUseCase := usecase.NewContactUseCase(contactRepo, queueClient, log)
	userUseCase := usecase.NewUserUseCase(userRepo, log)
	mailUseCase := usecase.NewMailUseCase(cfg, nil, log)

	// Initialize HTTP handlers
	authHandler := sceneyardHTTP.NewAuthHandler(authUseCase, log)
	templateHandler := sceneyardHTTP.NewTemplateHandler(templateUseCase, log)
	interactionHandler := sceneyardHTTP.NewInteractionHandler(interactionUseCase, log)
	downloadHandler := sceneyardHTTP.NewDownloadHandler(downloadUseCase, log)
	walletHandler := sceneyardHTTP.NewWalletHandler(walletUseCase, log)
	contactHandler := sceneyardHTTP.NewContactHandler(contactUseCase, log)
	adminHandler := sceneyardHTTP.NewAdminHandler(templateUseCase, userUseCase, log)

	// Start the mail consumer if the queue is available
	if queueClient != nil {
		if err := queueClient.ConsumeMailTasks(mailUseCase.HandleMailTask); err != nil {
			log.Error("Failed to start mail consumer: %v", err)
		}
	}

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	if redisClient != nil {
		api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
	}

	// Public routes
	{
		api.GET("/auth/google/login", authHandler.GoogleLogin)
		api.GET("/auth/google/callback", authHandler.GoogleCallback)

		api.GET("/templates", templateHandler.ListTemplates)
		api.GET("/templates/:id", templateHandler.GetTemplate)
		api.GET("/templates/:id/likes", interactionHandler.GetLikeCount)
		api.GET("/categories", templateHandler.ListCategories)

		api.POST("/contact", contactHandler.Submit)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.POST("/templates/:id/like", interactionHandler.ToggleLike)
		protected.GET("/templates/:id/liked", interactionHandler.IsLiked)
		protected.GET("/templates/liked", interactionHandler.GetLikedTemplates)

		protected.POST("/templates/:id/download", downloadHandler.RecordDownload)
		protected.GET("/downloads", downloadHandler.GetHistory)
		protected.GET("/downloads/:id/file", downloadHandler.StreamFile)

		protected.GET("/wallet", walletHandler.GetWallet)
		protected.POST("/wallet/topup", walletHandler.TopUp)
		protected.GET("/wallet/transactions", walletHandler.GetTransactions)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtService))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/templates", adminHandler.ListAllTemplates)
		admin.POST("/templates", adminHandler.CreateTemplate)
		admin.PATCH("/templates/:id", adminHandler.UpdateTemplate)
		admin.DELETE("/templates/:id", adminHandler.DeleteTemplate)
		admin.PUT("/templates/:id/featured", adminHandler.SetFeatured)
		admin.POST("/templates/:id/publish", adminHandler.PublishTemplate)
		admin.PUT("/templates/:id/categories/:category_id", adminHandler.AttachCategory)
		admin.DELETE("/templates/:id/categories/:category_id", adminHandler.DetachCategory)

		admin.POST("/uploads/presign", adminHandler.PresignUpload)

		admin.POST("/categories", adminHandler.CreateCategory)
		admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

		admin.GET("/users", adminHandler.ListUsers)
		admin.PUT("/users/:id/role", adminHandler.ChangeUserRole)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.POST("/users/:id/credits", walletHandler.GrantCredits)

		admin.GET("/contact-messages", contactHandler.ListMessages)
		admin.PUT("/contact-messages/:id/status", contactHandler.UpdateMessageStatus)
		admin.DELETE("/contact-messages/:id", contactHandler.DeleteMessage)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("SceneYard API starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down SceneYard API...")

	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var closers []namedCloser
	if sqlDB, err := db.DB(); err == nil {
		closers = append(closers, namedCloser{"database", sqlDB.Close})
	}
	if redisClient != nil {
		closers = append(closers, namedCloser{"redis", redisClient.Close})
	}
	if queueClient != nil {
		closers = append(closers, namedCloser{"rabbitmq", queueClient.Close})
	}

	if err := drainThenClose(ctx, srv, log, closers); err != nil {
		panic(err)
	}

	log.Info("SceneYard API exited")
}

type namedCloser struct {
	name  string
	close func() error
}

type shutdownServer interface {
	Shutdown(ctx context.Context) error
}

// drainThenClose stops accepting new requests and waits for in-flight ones to
// finish before the backing connections go away. Requests still draining must
// not see a closed database or redis pool.
func drainThenClose(ctx context.Context, srv shutdownServer, log *logger.Logger, closers []namedCloser) error {
	err := srv.Shutdown(ctx)
	if err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	for _, c := range closers {
		if closeErr := c.close(); closeErr != nil {
			log.Error("Error closing %s: %v", c.name, closeErr)
		}
	}

	return err
}

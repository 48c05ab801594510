package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"inkstream/internal/auth"
	"inkstream/internal/database"
	"inkstream/internal/handlers"
	"inkstream/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load database configuration
	dbConfig := database.LoadConfig()

	// Connect to database
	if err := database.Connect(dbConfig); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	setupGracefulShutdown()
	setupServer()
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Received shutdown signal, gracefully shutting down...")
		database.Close()
		log.Println("Shutdown complete")
		os.Exit(0)
	}()
}

func setupServer() {
	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Token verification against the external identity service's
	// signing secret
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("JWT_SECRET not set, using development secret")
		secret = "dev-secret"
	}
	verifier := auth.NewJWTVerifier(secret)
	r.Use(auth.Middleware(database.DB, verifier))

	// Shared services
	recommendations := services.NewRecommendationsService(database.DB)
	notifications := services.NewNotificationsService(database.DB)

	// Initialize handlers
	articlesHandler := handlers.NewArticlesHandler(database.DB, recommendations)
	engagementHandler := handlers.NewEngagementHandler(
		database.DB,
		services.DefaultEngagementConfig(),
		services.DefaultModerationConfig(),
		recommendations,
	)
	socialHandler := handlers.NewSocialHandler(database.DB, notifications)
	recommendationsHandler := handlers.NewRecommendationsHandler(recommendations)
	notificationsHandler := handlers.NewNotificationsHandler(notifications)
	commentsHandler := handlers.NewCommentsHandler(database.DB)
	faqHandler := handlers.NewFAQHandler(database.DB)

	// Health check
	r.GET("/health", articlesHandler.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/articles", articlesHandler.ListArticles)
		api.POST("/articles", articlesHandler.CreateArticle)
		api.GET("/articles/:id", articlesHandler.GetArticle)
		api.PATCH("/articles/:id", articlesHandler.UpdateArticle)
		api.DELETE("/articles/:id", articlesHandler.DeleteArticle)
		api.POST("/articles/:id/archive", articlesHandler.ArchiveArticle)
		api.POST("/articles/:id/publish", articlesHandler.PublishArticle)
		api.POST("/articles/:id/read", articlesHandler.ReadArticle)

		api.POST("/articles/:id/clap", engagementHandler.Clap)
		api.DELETE("/articles/:id/clap", engagementHandler.Unclap)
		api.POST("/articles/:id/favorite", engagementHandler.Favorite)
		api.DELETE("/articles/:id/favorite", engagementHandler.Unfavorite)
		api.POST("/articles/:id/pin", engagementHandler.PinArticle)
		api.DELETE("/articles/:id/pin", engagementHandler.UnpinArticle)
		api.POST("/articles/:id/report", engagementHandler.Report)

		api.POST("/articles/:id/comments", commentsHandler.CreateComment)
		api.GET("/articles/:id/comments", commentsHandler.ListComments)
		api.PATCH("/comments/:id", commentsHandler.UpdateComment)
		api.DELETE("/comments/:id", commentsHandler.DeleteComment)

		api.GET("/topics", socialHandler.ListTopics)
		api.PATCH("/topics/:id/follow", socialHandler.FollowTopic)
		api.PATCH("/users/:id/follow", socialHandler.FollowUser)
		api.GET("/users/:id/followers", socialHandler.Followers)
		api.GET("/users/:id/following", socialHandler.Following)
		api.GET("/authors/popular", articlesHandler.PopularAuthors)

		api.GET("/users/favorites", articlesHandler.ListFavorites)
		api.GET("/users/reading-history", articlesHandler.ListReadingHistory)
		api.GET("/users/pinned", articlesHandler.ListPinned)

		api.POST("/users/recommend", recommendationsHandler.Recommend)

		api.GET("/users/notifications", notificationsHandler.ListNotifications)
		api.PATCH("/users/notifications/:id", notificationsHandler.MarkRead)
		api.GET("/users/notifications/stream", notificationsHandler.Stream)

		api.GET("/faqs", faqHandler.ListFAQs)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

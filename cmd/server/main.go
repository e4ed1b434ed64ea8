package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-list-api/internal/auth"
	"github.com/yukikurage/todo-list-api/internal/config"
	"github.com/yukikurage/todo-list-api/internal/database"
	"github.com/yukikurage/todo-list-api/internal/handlers"
	"github.com/yukikurage/todo-list-api/internal/middleware"
	"github.com/yukikurage/todo-list-api/internal/repository"
	"github.com/yukikurage/todo-list-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// The browser frontend is served from a different origin
	r.Use(cors.Default())

	// Initialize dependencies
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	authService := services.NewAuthService(userRepo, tokens)
	todoService := services.NewTodoService(todoRepo)

	authHandler := handlers.NewAuthHandler(authService)
	todoHandler := handlers.NewTodoHandler(todoService)

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Todo List API is running",
		})
	})

	// Auth routes (public)
	r.POST("/token", authHandler.Token)
	r.POST("/users/", authHandler.Register)

	// Profile routes (protected)
	r.GET("/users/me", requireAuth, authHandler.Me)
	r.PUT("/users/me", requireAuth, authHandler.UpdateMe)

	// Todo routes (protected)
	todos := r.Group("/todos")
	todos.Use(requireAuth)
	{
		todos.GET("/", todoHandler.ListTodos)
		todos.POST("/", todoHandler.CreateTodo)
		todos.PUT("/reorder", todoHandler.ReorderTodos)
		todos.PUT("/:id", todoHandler.UpdateTodo)
		todos.DELETE("/:id", todoHandler.DeleteTodo)
	}

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

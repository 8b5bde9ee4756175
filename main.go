package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"unisale-backend/config"
	"unisale-backend/database"
	"unisale-backend/firebase"
	"unisale-backend/middleware"
	"unisale-backend/routes"
	"unisale-backend/storage"
	"unisale-backend/utils"

	firebasesdk "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load environment variables
	if err := config.LoadEnv(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}

	// Validate critical environment variables
	if err := config.ValidateEnv(); err != nil {
		log.Fatal("Environment validation failed: ", err)
	}
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	ctx := context.Background()

	var app *firebasesdk.App
	if cfg.AuthProvider == config.AuthProviderFirebase || cfg.Storage.Provider == config.StorageProviderFirebase {
		app, err = firebase.Init(ctx, os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"), cfg.Storage.Bucket)
		if err != nil {
			log.Fatal(err)
		}
	}

	var verifier middleware.TokenVerifier
	switch cfg.AuthProvider {
	case config.AuthProviderLocal:
		log.Println("WARNING: using local JWT authentication")
		verifier, err = utils.NewJWTVerifier(cfg.JWTSecret)
	case config.AuthProviderFirebase:
		verifier, err = firebase.NewAuthVerifier(ctx, app)
	default:
		log.Fatalf("Unknown AUTH_PROVIDER %q", cfg.AuthProvider)
	}
	if err != nil {
		log.Fatal("Failed to initialize authentication:", err)
	}

	var store storage.Client
	switch cfg.Storage.Provider {
	case config.StorageProviderCloudinary:
		store, err = storage.NewCloudinaryStorage(cfg.Storage.CloudinaryURL)
	case config.StorageProviderFirebase:
		store = storage.NewFirebaseStorage(app, cfg.Storage.Bucket)
	default:
		log.Fatalf("Unknown STORAGE_PROVIDER %q", cfg.Storage.Provider)
	}
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	// Setup Gin router
	r := gin.Default()

	// Limit multipart form memory to 10MB
	r.MaxMultipartMemory = 10 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, store, verifier, cfg.AllowedEmailDomain)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Run server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		} else {
			log.Println("Database connection closed")
		}
	}

	log.Println("Server exited gracefully")
}

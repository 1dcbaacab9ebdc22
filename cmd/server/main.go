package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/lumilens-app/backend/internal/router"
	"github.com/lumilens-app/backend/internal/storage"
	"github.com/lumilens-app/backend/pkg/config"
	"github.com/lumilens-app/backend/pkg/firebase"
	"github.com/lumilens-app/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	ctx := context.Background()

	// Initialize Firebase
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Initialize object storage
	objectStore, err := storage.NewS3Store(ctx, cfg.S3Bucket, cfg.AWSRegion, cfg.PublicAssetBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo.Database(cfg.MongoDatabase), firebaseApp.AuthClient, objectStore)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/lumilens-app/backend/internal/handlers"
	"github.com/lumilens-app/backend/internal/middleware"
	"github.com/lumilens-app/backend/internal/models"
	"github.com/lumilens-app/backend/internal/repositories"
	"github.com/lumilens-app/backend/internal/service"
	"github.com/lumilens-app/backend/internal/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, contentDB *mongo.Database, firebaseAuthClient *auth.Client, objectStore storage.ObjectStore) {
	err := pgdb.AutoMigrate(
		&models.Profile{},
		&models.Follow{},
		&models.Like{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	photoRepo := repositories.NewMongoPhotoRepository(contentDB)
	albumRepo := repositories.NewMongoAlbumRepository(contentDB)

	// --- Initialize Services ---
	engagementService := service.NewEngagementService(followRepo, likeRepo, notificationRepo, profileRepo, photoRepo)
	profileService := service.NewProfileService(profileRepo, followRepo, likeRepo, photoRepo)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(profileService)
	userHandler := handlers.NewUserHandler(profileService, engagementService)
	communityHandler := handlers.NewCommunityHandler(engagementService, photoRepo, albumRepo, profileRepo, likeRepo)
	notificationHandler := handlers.NewNotificationHandler(engagementService)
	albumHandler := handlers.NewAlbumHandler(albumRepo, photoRepo, likeRepo, objectStore)
	photoHandler := handlers.NewPhotoHandler(photoRepo, likeRepo, objectStore)
	uploadHandler := handlers.NewUploadHandler(photoRepo, albumRepo, objectStore)

	// --- Anonymous-friendly routes (caller resolved when a token is sent) ---
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalFirebaseAuth(firebaseAuthClient, profileRepo))
	userHandler.RegisterPublicUserRoutes(public)
	communityHandler.RegisterPublicCommunityRoutes(public)
	log.Println("Public routes configured.")

	// --- Protected routes (require a verified bearer token) ---
	api := e.Group("/api/v1")
	api.Use(middleware.FirebaseAuth(firebaseAuthClient, profileRepo))

	authHandler.RegisterAuthRoutes(api.Group("/auth"))
	userHandler.RegisterUserRoutes(api)
	communityHandler.RegisterCommunityRoutes(api)
	notificationHandler.RegisterNotificationRoutes(api)
	albumHandler.RegisterAlbumRoutes(api)
	photoHandler.RegisterPhotoRoutes(api)
	uploadHandler.RegisterUploadRoutes(api)

	log.Println("All routes configured.")
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"t3chadvance/coaching-app/internal/api"
	"t3chadvance/coaching-app/internal/config"
	"t3chadvance/coaching-app/internal/push"
	"t3chadvance/coaching-app/internal/repository/mongo"
	"t3chadvance/coaching-app/internal/service"
	"t3chadvance/coaching-app/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Coaching App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureCoachingIndexes(ctx, appDB.Collection("coaching_users"))
		mongo.EnsureDeviceIndexes(ctx, appDB.Collection("devices"))
		mongo.EnsureNotificationIndexes(ctx, appDB.Collection("notification_history"))
		mongo.EnsureQuizIndexes(ctx, appDB.Collection("quizzes"))
		mongo.EnsureVideoIndexes(ctx, appDB.Collection("videos"))
		mongo.EnsurePlaylistIndexes(ctx, appDB.Collection("playlists"))
		mongo.EnsureSuccessPathIndexes(ctx, appDB.Collection("success_path_categories"))
		mongo.EnsureBusinessPlanIndexes(ctx, appDB.Collection("business_plan_responses"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Push Gateway ---
	log.Println("Initializing FCM push gateway...")
	pushGateway, err := push.NewFCMGateway(context.Background(), cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize FCM gateway: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	coachingRepo := mongo.NewMongoCoachingRepository(appDB)
	deviceRepo := mongo.NewMongoDeviceRepository(appDB)
	notificationRepo := mongo.NewMongoNotificationRepository(appDB)
	quizRepo := mongo.NewMongoQuizRepository(appDB)
	videoRepo := mongo.NewMongoVideoRepository(appDB)
	playlistRepo := mongo.NewMongoPlaylistRepository(appDB)
	successPathRepo := mongo.NewMongoSuccessPathRepository(appDB)
	businessPlanRepo := mongo.NewMongoBusinessPlanRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	coachingService := service.NewCoachingService(coachingRepo)
	notificationService := service.NewNotificationService(
		deviceRepo,
		notificationRepo,
		pushGateway,
		cfg.Notification.ChunkSize,
		cfg.Notification.PruneInvalidTokens,
	)
	quizService := service.NewQuizService(quizRepo)
	videoService := service.NewVideoService(videoRepo, playlistRepo, fileStorage)
	successPathService := service.NewSuccessPathService(successPathRepo)
	businessPlanService := service.NewBusinessPlanService(businessPlanRepo, userRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		authService,
		coachingService,
		notificationService,
		quizService,
		videoService,
		successPathService,
		businessPlanService,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulsecheck/internal/cache"
	"pulsecheck/internal/config"
	"pulsecheck/internal/repository"
	"pulsecheck/internal/service"
	"pulsecheck/internal/transport/rest"
	"pulsecheck/internal/transport/ws"
)

// @title Pulsecheck Benchmarking API
// @version 1.0
// @description Questionnaire scoring and population benchmarking service
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	cfg := config.Load()
	scoringCfg := config.LoadScoring()
	log.Printf("Scoring config:")
	log.Printf("  Min responses:      %d", scoringCfg.MinResponses)
	log.Printf("  Strong >=           %d%%", scoringCfg.StrongMin)
	log.Printf("  Moderate >=         %d%%", scoringCfg.ModerateMin)
	log.Printf("  Category averaging: %s", scoringCfg.CategoryAveraging)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := cfg.RedisAddr
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepo(db)
	responseRepo := repository.NewResponseRepo(db)

	// Initialize caches
	statsCache := cache.NewStatsCache(rdb, 5*time.Minute)

	// Initialize services
	authSvc := service.NewAuthService()
	catalogSvc := service.NewCatalogService(catalogRepo)
	benchmarkSvc := service.NewBenchmarkService(responseRepo, catalogSvc, statsCache, scoringCfg)
	assessmentSvc := service.NewAssessmentService(responseRepo, catalogSvc, benchmarkSvc, scoringCfg)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	benchmarkSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		CatalogService:    catalogSvc,
		AssessmentService: assessmentSvc,
		BenchmarkService:  benchmarkSvc,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/catalog")
		log.Println("  POST /v1/catalog")
		log.Println("  POST /v1/responses")
		log.Println("  GET  /v1/responses/{id}/assessment")
		log.Println("  GET  /v1/benchmark/{version}")
		log.Println("  GET  /v1/benchmark/{version}/percentile")
		log.Println("  WS   /v1/ws/dashboard/{version}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

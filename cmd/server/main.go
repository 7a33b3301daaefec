package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/service-connect/internal/config"
	"github.com/iliyamo/service-connect/internal/database"
	"github.com/iliyamo/service-connect/internal/handler"
	"github.com/iliyamo/service-connect/internal/middleware"
	"github.com/iliyamo/service-connect/internal/queue"
	"github.com/iliyamo/service-connect/internal/repository"
	"github.com/iliyamo/service-connect/internal/router"
	queue_publisher "github.com/iliyamo/service-connect/internal/service"
)

func main() {
	// Load .env if present; in prod the environment is set by the platform.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the limiter and cache become no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response caching disabled")
	}

	accounts := repository.NewAccountRepo(db)
	tokens := repository.NewTokenRepo(db)
	ratings := repository.NewRatingRepo(db)

	authH := handler.NewAuthHandler(cfg, accounts, tokens, ratings)
	provH := handler.NewProviderHandler(accounts, ratings)
	rateH := handler.NewRatingHandler(accounts, ratings, queue_publisher.PublishRatingSubmitted)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterProviders(e, provH, rateH, cfg.JWTSecret, cacheMW)

	// Background consumer mirrors rating.submitted events into logs/rating.log.
	go func() {
		if err := queue.StartRatingConsumer(); err != nil {
			log.Printf("rating consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pscan/docs"

	"github.com/redis/go-redis/v9"

	"pscan/backend/logging"
)

// Run initializes dependencies — Redis, the sweep worker pool, the HTTP
// router — and serves the scan-task API on addr until the process exits.
func Run(addr string) error {
	redisAddr := getenv("REDIS_ADDR", "localhost:6379")
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", redisAddr, err)
	}

	store := NewRedisStore(redisClient)

	workerCount := 5
	if n, err := strconv.Atoi(getenv("PSCAND_WORKERS", "5")); err == nil && n > 0 {
		workerCount = n
	}
	StartWorkers(store, workerCount)

	logger := logging.Logger()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware(logger))
	router.Use(SecurityHeadersMiddleware())
	router.Use(RateLimitMiddleware(redisClient, 60, time.Minute, logger))

	if apiKey := os.Getenv("PSCAND_API_KEY"); apiKey != "" {
		router.Use(AuthMiddleware(apiKey, logger))
	}

	server := NewServer(store)
	server.RegisterRoutes(router)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("starting pscand API server on %s", addr)
	return router.Run(addr)
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

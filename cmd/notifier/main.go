package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"postboard/internal/config"
	"postboard/internal/db"
	"postboard/internal/repository"
	"postboard/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Consumidor de notificaciones: se suscribe al canal y registra cada evento
// resolviendo emisor y receptor contra la base.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.RedisAddr == "" {
		log.Fatal("REDIS_ADDR is required for the notifier")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
	if err := redisClient.Ping(ctxPing).Err(); err != nil {
		cancel()
		logger.Fatal("redis ping failed", zap.Error(err))
	}
	cancel()

	userRepo := repository.NewPgUserRepository(pool)
	hasher := service.NewPasswordHasher(config.BcryptCost)
	tokenSvc := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	userSvc := service.NewUserService(logger, userRepo, hasher, tokenSvc, nil)
	notifier := service.NewRedisNotificationService(logger, redisClient, cfg.NotifyChannel)

	logger.Info("notifier consuming", zap.String("channel", cfg.NotifyChannel))

	if err := notifier.Consume(ctx, userSvc); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("consume error", zap.Error(err))
	}
}

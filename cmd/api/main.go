package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"postboard/internal/config"
	"postboard/internal/db"
	apihttp "postboard/internal/http"
	"postboard/internal/repository"
	"postboard/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	postRepo := repository.NewPgPostRepository(pool)
	commentRepo := repository.NewPgCommentRepository(pool)
	likeRepo := repository.NewPgLikeRepository(pool)

	var (
		notifier     service.NotificationPublisher
		loginLimiter service.LoginRateLimiter
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			notifier = service.NewRedisNotificationService(logger, redisClient, cfg.NotifyChannel)
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, cfg.LoginRateWindow, cfg.LoginRateMax)
		}
		cancel()
	}

	hasher := service.NewPasswordHasher(config.BcryptCost)
	tokenSvc := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	userSvc := service.NewUserService(logger, userRepo, hasher, tokenSvc, loginLimiter)
	postSvc := service.NewPostService(logger, postRepo, commentRepo, likeRepo, notifier)

	guard := apihttp.AuthMiddleware(tokenSvc, userSvc)
	authHandler := apihttp.NewAuthHandler(logger, userSvc)
	userHandler := apihttp.NewUserHandler(logger, userSvc)
	postHandler := apihttp.NewPostHandler(logger, postSvc, cfg.PostsPerPage)
	router := apihttp.NewRouter(logger, guard, authHandler, userHandler, postHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rewearadmin/internal/config"
	"rewearadmin/internal/mockapi"
	"rewearadmin/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// mockadmin serves the backend contract the admin client consumes, with
// seeded accounts. Development fixture only.
func main() {
	// The obfuscation key gates the client-side auth subsystem; the mock
	// backend never touches the codec and may run without it.
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrMissingObfuscationKey) {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.InitLogger(cfg.Server.Environment)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("mock admin backend failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	rdb, err := initRedis(cfg.Mock)
	if err != nil {
		return err
	}
	defer rdb.Close()

	accounts := mockapi.NewAccountStore(mockapi.DefaultAccounts())
	auth := mockapi.NewAuthService(rdb, accounts, cfg.Mock.JWTSecret, cfg.Mock.AccessTokenTTL, cfg.Mock.RefreshTokenTTL)
	signups := mockapi.NewSignupStore(accounts)

	r := mockapi.RegisterRoutes(mockapi.NewHandler(auth, signups), auth, rdb, mockapi.RouterConfig{
		LoginRatePerSec:   cfg.Mock.LoginRatePerSec,
		AllowedWebOrigins: cfg.Mock.AllowedWebOrigins,
	})

	srv := &http.Server{
		Addr:    cfg.Mock.Port,
		Handler: r,
	}

	go func() {
		logger.Info("mock admin backend starting",
			zap.String("addr", cfg.Mock.Port),
			zap.String("env", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down mock admin backend")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}

func initRedis(cfg config.Mock) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

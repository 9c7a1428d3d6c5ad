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

	"mathspring/database"
	"mathspring/internal/config"
	httpapi "mathspring/internal/http-api"
	"mathspring/internal/http-api/repository"
	"mathspring/internal/http-api/service"
	"mathspring/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("admin server stopped")
	}
}

func run() error {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Connect to the database
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// 3. Token revocation store
	tokens, closeTokens, err := newTokenStore(cfg)
	if err != nil {
		return err
	}
	defer closeTokens()

	// 4. Wire repositories, services and routes
	userRepo := repository.NewUserRepository(db)
	problemRepo := repository.NewProblemRepository(db)

	router, err := httpapi.NewRouter(httpapi.Deps{
		Config:         cfg,
		AuthService:    service.NewAuthService(userRepo, tokens, cfg),
		UserService:    service.NewUserService(userRepo),
		ProblemService: service.NewProblemService(problemRepo),
		DB:             sqlDB,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Info("admin server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newTokenStore uses Redis when REDIS_URL is set, otherwise keeps revocations in process
func newTokenStore(cfg *config.Config) (repository.TokenStore, func(), error) {
	if cfg.RedisURL == "" {
		logrus.Warn("REDIS_URL not set, revoked tokens are kept in memory")
		return repository.NewMemoryTokenStore(), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logrus.WithField("addr", opts.Addr).Info("connected to redis")

	return repository.NewRedisTokenStore(client), func() { client.Close() }, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/dev-genie/dev-genie-backend/config"
	"github.com/dev-genie/dev-genie-backend/internal/auth"
	authmw "github.com/dev-genie/dev-genie-backend/internal/auth/middleware"
	"github.com/dev-genie/dev-genie-backend/internal/bootstrap"
	"github.com/dev-genie/dev-genie-backend/internal/db"
	"github.com/dev-genie/dev-genie-backend/internal/generation/llm"
	"github.com/dev-genie/dev-genie-backend/internal/logger"
	"github.com/dev-genie/dev-genie-backend/internal/resources"
	"github.com/dev-genie/dev-genie-backend/internal/storage/postgres"
)

func serveCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	logger.Init(cfg.App.LogLevel, cfg.App.LogFormat)
	log := logger.Default()
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pg.Close()

	sqlDB, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
	} else {
		log.Warn("REDIS_ADDR not set, detail generation lock is in-process only")
	}

	adapters, err := llm.FromConfig(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("llm adapters: %w", err)
	}
	if providers := cfg.LLM.ConfiguredProviders(); len(providers) == 0 {
		log.Warn("no LLM provider credentials configured, every generation will use fallback content")
	} else {
		log.Info("llm providers configured", "providers", strings.Join(providers, ","))
	}
	coordinator := llm.NewCoordinator(adapters, cfg.LLM.Timeout)

	authHandler, err := authMiddleware(ctx, cfg.Firebase)
	if err != nil {
		return err
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "dev-genie-backend",
		Version:     cfg.App.Version,
		Pool:        pg.Pool,
		SQL:         sqlDB,
		Redis:       rdb,
		Coordinator: coordinator,
		GitHub:      resources.NewGitHubClient(cfg.GitHub.Token, cfg.GitHub.BaseURL, &http.Client{Timeout: 15 * time.Second}),
		Auth:        authHandler,
		CORSOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Server.Port, "env", cfg.App.Environment, "providers", coordinator.Available())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}

func authMiddleware(ctx context.Context, cfg config.FirebaseConfig) (gin.HandlerFunc, error) {
	if cfg.AuthMode == "header" {
		logger.Default().Warn("AUTH_MODE=header: trusting X-User-Id, do not use in production")
		return authmw.HeaderAuthMiddleware(), nil
	}
	client, err := auth.InitializeFirebase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return authmw.FirebaseAuthMiddleware(client), nil
}

package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	gogithub "github.com/google/go-github/v75/github"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/crewsafe/intake/apps/server/internal/platform/config"
	githubplatform "github.com/crewsafe/intake/apps/server/internal/platform/github"
	"github.com/crewsafe/intake/apps/server/internal/platform/logger"
	"github.com/crewsafe/intake/apps/server/internal/platform/telemetry"
	"github.com/crewsafe/intake/apps/server/internal/platform/validation"
	"github.com/crewsafe/intake/apps/server/internal/submissions"
	"github.com/crewsafe/intake/apps/server/internal/submissions/adapters"
	archivegithub "github.com/crewsafe/intake/apps/server/internal/submissions/adapters/github"
	"github.com/crewsafe/intake/schemas"
)

func main() {
	slog := logger.New()

	// --- Configuration ---

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	// --- Observability ---

	// Default the service name before any OTel init.
	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		os.Setenv("OTEL_SERVICE_NAME", "intake-server") //nolint:errcheck
	}

	otelEnabled := os.Getenv("OTEL_ENABLED") == "true"
	ctx := context.Background()
	tel, err := telemetry.New(ctx, otelEnabled)
	if err != nil {
		slog.Error("telemetry init failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Error("telemetry shutdown failed", "error", err)
		}
	}()

	// --- Platform: GitHub ---

	var gh *gogithub.Client
	if cfg.UsesAppAuth() {
		gh, err = githubplatform.NewAppClient(cfg.GitHub.AppID, cfg.GitHub.InstallationID,
			cfg.GitHub.PrivateKeyPath, cfg.GitHub.BaseURL)
		if err != nil {
			slog.Error("github app client init failed", "error", err)
			os.Exit(1)
		}
	} else {
		gh = githubplatform.NewTokenClient(cfg.GitHub.Token, cfg.GitHub.BaseURL)
	}

	// --- Service + HTTP ---

	archive := archivegithub.NewArchive(gh, cfg.Repo.Owner, cfg.Repo.Name, cfg.Branch)
	svc := submissions.NewService(archive)

	router := gin.New()

	validator, err := validation.New(schemas.OpenAPISpec)
	if err != nil {
		slog.Error("openapi validation middleware init failed", "error", err)
		os.Exit(1)
	}

	router.Use(gin.Recovery(), otelgin.Middleware("intake-server"), validator)
	adapters.RegisterRoutes(router, svc, slog)

	slog.Info("starting intake", "port", cfg.Port, "repository", cfg.Repo.String(), "branch", cfg.Branch)
	if err := router.Run(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

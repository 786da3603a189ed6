package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/cmlabs-hris/hris-batch-go/internal/app"
	"github.com/cmlabs-hris/hris-batch-go/internal/config"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/secrets"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	dsn, err := resolveDSN(ctx, cfg)
	if err != nil {
		slog.Error("Failed to resolve database DSN", "error", err)
		os.Exit(1)
	}

	// One pool per execution environment, reused across warm invocations.
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, db)
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	h := &jobHandler{
		jobs: application.Jobs,
		auth: application.JWT.JWTAuth(),
		now:  time.Now,
	}
	lambda.Start(h.Handle)
}

func resolveDSN(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.SSMParameter == "" {
		return cfg.DatabaseURL(), nil
	}
	client, err := secrets.NewSSMClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create SSM client: %w", err)
	}
	return secrets.DatabaseURL(ctx, client, cfg.SSMParameter, cfg.App.Env)
}

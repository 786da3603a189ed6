package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/hris-batch-go/internal/app"
	"github.com/cmlabs-hris/hris-batch-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-batch-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/database"
)

const version = "v1.0.0"

func main() {
	runOnce := flag.Bool("run-once", false, "run every enabled job once and exit without serving")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.App.RunMigrations {
		if err := database.Migrate(ctx, db); err != nil {
			slog.Error("Migrations failed", "error", err)
			os.Exit(1)
		}
	}

	application, err := app.New(cfg, db)
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	accessLog := appHTTP.NewAccessLogger(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{ReplaceAttr: appHTTP.ECSReplaceAttr}),
		cfg.App.Env,
		version,
	)
	router := application.Router(appHTTP.RouterConfig{
		Env:            cfg.App.Env,
		AllowedOrigins: []string{cfg.App.FrontendURL},
		Logger:         accessLog,
	})

	scheduler := newScheduler(application, cfg.Scheduler.RunHour)
	if *runOnce {
		scheduler.RunOnce(ctx)
		return
	}
	if cfg.Scheduler.Enabled {
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "jobs", application.Jobs.Enabled())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// newScheduler registers every enabled job to run daily at hour (UTC).
func newScheduler(application *app.App, hour int) *cron.Scheduler {
	scheduler := cron.NewScheduler(time.Minute)
	for _, name := range application.Jobs.Enabled() {
		scheduler.AddDailyJob(name, hour, func(ctx context.Context, now time.Time) error {
			summary, err := application.Jobs.Trigger(ctx, name, now)
			if err != nil {
				return err
			}
			if summary.Fatal {
				return errors.New(summary.Message)
			}
			return nil
		})
	}
	return scheduler
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tradeops/alpaca-export/internal/api"
	"github.com/tradeops/alpaca-export/internal/archive"
	"github.com/tradeops/alpaca-export/internal/auth"
	"github.com/tradeops/alpaca-export/internal/config"
	"github.com/tradeops/alpaca-export/internal/export"
	"github.com/tradeops/alpaca-export/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/exporter.yaml", "path to config file")
	outputDir := flag.String("output", "", "override the export output directory")
	paper := flag.Bool("paper", false, "use the paper trading host")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting exporter",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration; a missing file falls back to pure defaults so
	// the exporter can run with nothing but APCA_* env credentials.
	cfg, err := config.LoadAndValidate(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("config file not found, using defaults", "path", *configPath)
		cfg, err = config.Default()
	}
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *paper {
		cfg.API.BaseURL = config.DefaultPaperURL
	}
	if *outputDir != "" {
		cfg.Export.OutputDir = *outputDir
	}

	logger.Info("configuration loaded",
		"api_url", cfg.API.BaseURL,
		"output_dir", cfg.Export.OutputDir,
		"lookback_days", cfg.Export.LookbackDays,
	)

	creds, err := auth.Resolve(cfg.API.KeyID, cfg.API.SecretKey)
	if err != nil {
		logger.Error("failed to resolve credentials",
			"error", err,
			"hint", "set "+auth.EnvKeyID+" and "+auth.EnvSecretKey,
		)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create API client
	apiClient := api.NewClient(
		cfg.API.BaseURL,
		creds,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxAttempts, cfg.API.RetryBackoff),
	)

	runner := export.NewRunner(cfg.Export, apiClient, logger)

	summary, err := runner.Run(ctx)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}

	logger.Info("export complete",
		"run_id", summary.RunID,
		"output_dir", summary.OutputDir,
		"orders_rows", summary.OrdersRows,
		"activities_rows", summary.ActivitiesRows,
		"positions_rows", summary.PositionsRows,
	)

	// Archive failures never undo a completed export; the artifacts are
	// already on disk.
	if cfg.Archive.Enabled {
		recordRun(ctx, cfg.Archive.Postgres, summary, logger)
	}
}

// recordRun stores the run summary in the archive database.
func recordRun(ctx context.Context, cfg config.DBConfig, summary *export.Summary, logger *slog.Logger) {
	store, err := archive.Connect(ctx, cfg)
	if err != nil {
		logger.Warn("archive unavailable, skipping run record", "error", err)
		return
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Warn("failed to ensure archive schema", "error", err)
		return
	}
	if err := store.RecordRun(ctx, summary); err != nil {
		logger.Warn("failed to record run in archive", "error", err)
		return
	}
	logger.Info("run recorded in archive", "run_id", summary.RunID)
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bcdodgeme-bot/nothere/db"
)

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	source := flag.String("source", "all", "List to update: splc, bcorp, or all")
	flag.Parse()

	databaseURL := getEnv("DATABASE_URL", "")
	if databaseURL == "" {
		logger.Error("DATABASE_URL environment variable is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.New(db.Config{DSN: databaseURL})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	switch *source {
	case "splc":
		updateSPLC(ctx, store, logger)
	case "bcorp":
		updateBCorp(ctx, store, logger)
	case "all":
		updateSPLC(ctx, store, logger)
		updateBCorp(ctx, store, logger)
	default:
		logger.Error("unknown source", "source", *source)
		os.Exit(1)
	}
}

func updateSPLC(ctx context.Context, store *db.DB, logger *slog.Logger) {
	logger.Info("updating SPLC blocklist", "domains", len(splcDomains))

	updated := 0
	for _, d := range splcDomains {
		if err := store.MarkSPLCFlagged(ctx, d.domain, d.reason); err != nil {
			logger.Error("failed to update blocklist entry", "domain", d.domain, "error", err)
			continue
		}
		updated++
	}

	logger.Info("SPLC blocklist updated", "updated", updated)
}

func updateBCorp(ctx context.Context, store *db.DB, logger *slog.Logger) {
	logger.Info("updating B-Corp equity list", "domains", len(bcorpDomains))

	updated := 0
	for _, d := range bcorpDomains {
		if err := store.MarkBCorp(ctx, d.domain); err != nil {
			logger.Error("failed to update equity entry", "domain", d.domain, "error", err)
			continue
		}
		updated++
	}

	logger.Info("B-Corp equity list updated", "updated", updated)
}

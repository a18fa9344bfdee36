package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bcdodgeme-bot/nothere/db"
	"github.com/bcdodgeme-bot/nothere/medialit"
	"github.com/bcdodgeme-bot/nothere/openrouter"
	"github.com/bcdodgeme-bot/nothere/scoring"
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

	logger.Info("scorer initializing", "version", "1.0.0")

	batchSize := flag.Int("batch-size", 100, "Pages to score per batch")
	keywordTTL := flag.Duration("keyword-ttl", time.Hour, "Theme keyword cache TTL")
	metricsAddr := flag.String("metrics-addr", getEnv("METRICS_ADDR", ":9091"), "Prometheus metrics listen address")
	rescore := flag.Bool("rescore", false, "Rescore all pages with content, not just unscored ones")
	rescoreLimit := flag.Int("limit", 0, "Max pages to rescore (0 = all, only with -rescore)")
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
	logger.Info("connected to PostgreSQL")

	var chat medialit.ChatClient
	if apiKey := getEnv("OPENROUTER_API_KEY", ""); apiKey != "" {
		chat = openrouter.New(apiKey, "https://nothere.one", "NotHere.one Media Literacy Scorer")
	} else {
		logger.Warn("OPENROUTER_API_KEY not set, media literacy will return neutral scores")
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info("metrics listening", "addr", *metricsAddr)
		if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	config := scoring.DefaultConfig()
	config.BatchSize = *batchSize
	config.KeywordCacheTTL = *keywordTTL

	scorer := scoring.New(store, medialit.New(chat), nil, config)

	var scored int
	if *rescore {
		scored, err = scorer.RescoreAll(ctx, *rescoreLimit)
	} else {
		scored, err = scorer.RunBatches(ctx)
	}
	if err != nil && ctx.Err() == nil {
		logger.Error("scoring stopped with error", "scored", scored, "error", err)
		os.Exit(1)
	}
	logger.Info("scorer finished", "pages_scored", scored)
}

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bcdodgeme-bot/nothere/archive"
	"github.com/bcdodgeme-bot/nothere/blocklist"
	"github.com/bcdodgeme-bot/nothere/crawler"
	"github.com/bcdodgeme-bot/nothere/db"
	"github.com/bcdodgeme-bot/nothere/frontier"
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

	logger.Info("crawler initializing", "version", "1.0.0")

	seedFile := flag.String("seed", "", "Seed URLs file")
	maxPages := flag.Int("max-pages", 0, "Maximum pages to crawl (0 = unlimited)")
	delay := flag.Duration("delay", time.Second, "Politeness delay between fetches")
	metricsAddr := flag.String("metrics-addr", getEnv("METRICS_ADDR", ":9090"), "Prometheus metrics listen address")
	flag.Parse()

	databaseURL := getEnv("DATABASE_URL", "")
	if databaseURL == "" {
		logger.Error("DATABASE_URL environment variable is required")
		os.Exit(1)
	}
	redisURL := getEnv("REDIS_URL", "")
	if redisURL == "" {
		logger.Error("REDIS_URL environment variable is required")
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

	queue, err := frontier.NewRedisQueue(ctx, redisURL)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer queue.Close()
	logger.Info("connected to Redis")

	rules := blocklist.New()
	stats := rules.Stats()
	logger.Info("tier 1 blocklist loaded",
		"domains", stats.Domains, "tlds", stats.TLDs, "patterns", stats.Patterns)

	manager := frontier.NewManager(queue, rules, store)

	if *seedFile != "" {
		if err := loadSeeds(ctx, manager, *seedFile, logger); err != nil {
			logger.Error("failed to load seed URLs", "file", *seedFile, "error", err)
			os.Exit(1)
		}
	} else if size, err := manager.Size(ctx); err == nil && size == 0 {
		logger.Info("queue is empty, loading default seeds")
		if err := loadSeeds(ctx, manager, "seed_urls.txt", logger); err != nil {
			logger.Warn("could not auto-seed URLs", "error", err)
		}
	}

	config := crawler.DefaultConfig()
	config.PolitenessDelay = *delay
	config.MaxPages = *maxPages
	c := crawler.New(manager, store, rules, config)

	if basePath := getEnv("ARCHIVE_PATH", ""); basePath != "" {
		fs, err := archive.NewFS(archive.FSConfig{BasePath: basePath})
		if err != nil {
			logger.Error("failed to open archive", "error", err)
			os.Exit(1)
		}
		c.SetArchiver(fs)
		logger.Info("archiving snapshots to filesystem", "path", basePath)
	} else if bucket := getEnv("S3_BUCKET", ""); bucket != "" {
		s3a, err := archive.NewS3(ctx, archive.S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          bucket,
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			UsePathStyle:    getEnv("S3_USE_PATH_STYLE", "") == "true",
		})
		if err != nil {
			logger.Error("failed to open S3 archive", "error", err)
			os.Exit(1)
		}
		c.SetArchiver(s3a)
		logger.Info("archiving snapshots to S3", "bucket", bucket)
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info("metrics listening", "addr", *metricsAddr)
		if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	final, err := c.Run(ctx)
	if err != nil && ctx.Err() == nil {
		logger.Error("crawl stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("crawler stopped",
		"pages_crawled", final.PagesCrawled,
		"pages_blocked", final.PagesBlocked,
		"pages_failed", final.PagesFailed,
		"links_found", final.LinksFound,
		"urls_queued", final.URLsQueued,
	)
}

// loadSeeds queues URLs from a file, one per line. Blank lines and lines
// starting with # are skipped.
func loadSeeds(ctx context.Context, manager *frontier.Manager, path string, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	var total, queued int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		total++
		ok, err := manager.Enqueue(ctx, line)
		if err != nil {
			return fmt.Errorf("failed to queue seed %q: %w", line, err)
		}
		if ok {
			queued++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	logger.Info("seed URLs loaded", "file", path, "total", total, "queued", queued)
	return nil
}

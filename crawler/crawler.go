// Package crawler runs the fetch loop: it pops admitted URLs from the
// frontier, enforces robots.txt and politeness, fetches and extracts pages,
// persists them, and feeds discovered links back into the frontier.
package crawler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bcdodgeme-bot/nothere/blocklist"
	"github.com/bcdodgeme-bot/nothere/frontier"
	"github.com/bcdodgeme-bot/nothere/models"
	"github.com/bcdodgeme-bot/nothere/robots"
	"github.com/bcdodgeme-bot/nothere/urlnorm"
)

const (
	defaultUserAgent = "NotHere.one Bot/1.0 (Values-based search engine; +https://nothere.one/bot)"
	fetchTimeout     = 10 * time.Second
	maxBodyBytes     = 10 << 20
)

// Store is the slice of the page store the crawler writes to.
type Store interface {
	PageExists(ctx context.Context, urlHash string) (bool, error)
	UpsertPage(ctx context.Context, page *models.Page) error
	SaveLinks(ctx context.Context, sourcePageID int64, links []models.Link) error
}

// Archiver stores a raw HTML snapshot of a crawled page. A nil Archiver
// disables snapshots.
type Archiver interface {
	Save(ctx context.Context, urlHash string, crawledAt time.Time, html []byte) error
}

// Config contains crawler configuration.
type Config struct {
	UserAgent       string
	PolitenessDelay time.Duration
	MaxPages        int // 0 means unlimited
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent:       defaultUserAgent,
		PolitenessDelay: time.Second,
	}
}

// Stats are the running counters for one crawl session.
type Stats struct {
	PagesCrawled int64
	PagesBlocked int64
	PagesFailed  int64
	LinksFound   int64
	URLsQueued   int64
}

// Crawler drains the frontier until it is empty, the page limit is reached,
// or the context is cancelled.
type Crawler struct {
	frontier *frontier.Manager
	store    Store
	rules    *blocklist.List
	robots   *robots.Cache
	archive  Archiver
	client   *http.Client
	config   Config
	logger   *slog.Logger

	pagesCrawled atomic.Int64
	pagesBlocked atomic.Int64
	pagesFailed  atomic.Int64
	linksFound   atomic.Int64
	urlsQueued   atomic.Int64
}

// New builds a Crawler. The HTTP client carries the otelhttp transport so
// fetches propagate trace context.
func New(fm *frontier.Manager, store Store, rules *blocklist.List, config Config) *Crawler {
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	client := &http.Client{
		Timeout:   fetchTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	return &Crawler{
		frontier: fm,
		store:    store,
		rules:    rules,
		robots:   robots.New(client, config.UserAgent),
		client:   client,
		config:   config,
		logger:   slog.Default(),
	}
}

// SetArchiver enables raw HTML snapshots.
func (c *Crawler) SetArchiver(a Archiver) {
	c.archive = a
}

// SetHTTPClient replaces the fetch client. Used by tests.
func (c *Crawler) SetHTTPClient(client *http.Client) {
	c.client = client
	c.robots = robots.New(client, c.config.UserAgent)
}

// Run drains the frontier. It returns the session stats and the first error
// that stopped the loop, if any. An empty frontier is a clean stop.
func (c *Crawler) Run(ctx context.Context) (Stats, error) {
	c.logger.Info("starting crawler", "max_pages", c.config.MaxPages, "politeness_delay", c.config.PolitenessDelay)

	var processed int
	for {
		if err := ctx.Err(); err != nil {
			c.logStats()
			return c.snapshot(), err
		}
		if c.config.MaxPages > 0 && processed >= c.config.MaxPages {
			c.logger.Info("reached page limit", "max_pages", c.config.MaxPages)
			break
		}

		url, err := c.frontier.Dequeue(ctx)
		if err != nil {
			c.logStats()
			return c.snapshot(), fmt.Errorf("failed to dequeue: %w", err)
		}
		if url == "" {
			c.logger.Info("frontier is empty")
			break
		}

		c.crawlURL(ctx, url)
		processed++

		if processed%10 == 0 {
			c.logStats()
		}
	}

	c.logStats()
	return c.snapshot(), nil
}

// crawlURL processes one URL end to end. Failures are counted, logged, and
// never abort the crawl loop.
func (c *Crawler) crawlURL(ctx context.Context, rawURL string) {
	ctx, span := otel.Tracer("crawler").Start(ctx, "crawler.crawlURL")
	defer span.End()

	url := urlnorm.Normalize(rawURL)
	urlHash := urlnorm.Hash(url)
	span.SetAttributes(attribute.String("crawl.url", url))

	exists, err := c.store.PageExists(ctx, urlHash)
	if err != nil {
		c.logger.Error("failed to check crawled state", "url", url, "error", err)
		c.fail()
		return
	}
	if exists {
		c.logger.Info("already crawled", "url", url)
		return
	}

	if blocked, reason := c.rules.IsBlocked(url); blocked {
		c.logger.Warn("blocked", "url", url, "reason", reason)
		c.block("blocklist")
		return
	}

	if !c.robots.CanFetch(ctx, url) {
		c.logger.Warn("disallowed by robots.txt", "url", url)
		c.block("robots")
		return
	}

	select {
	case <-time.After(c.config.PolitenessDelay):
	case <-ctx.Done():
		return
	}

	finalURL, contentType, body, err := c.fetch(ctx, url)
	if err != nil {
		c.logger.Warn("fetch failed", "url", url, "error", err)
		c.fail()
		return
	}

	// Redirects can land on a blocked host.
	if finalURL != url {
		if blocked, reason := c.rules.IsBlocked(finalURL); blocked {
			c.logger.Warn("blocked after redirect", "url", finalURL, "reason", reason)
			c.block("blocklist_redirect")
			return
		}
	}

	extracted, err := extractContent(body, contentType, finalURL)
	if err != nil {
		c.logger.Error("extraction failed", "url", finalURL, "error", err)
		c.fail()
		return
	}

	page := &models.Page{
		URL:     finalURL,
		URLHash: urlnorm.Hash(finalURL),
		Domain:  urlnorm.Domain(finalURL),
		Title:   extracted.Title,
		Content: extracted.Content,
	}
	if err := c.store.UpsertPage(ctx, page); err != nil {
		c.logger.Error("failed to save page", "url", finalURL, "error", err)
		c.fail()
		return
	}

	if err := c.store.SaveLinks(ctx, page.ID, extracted.Links); err != nil {
		c.logger.Error("failed to save links", "url", finalURL, "error", err)
	}

	if c.archive != nil {
		if err := c.archive.Save(ctx, page.URLHash, time.Now().UTC(), body); err != nil {
			c.logger.Warn("failed to archive snapshot", "url", finalURL, "error", err)
		}
	}

	for _, link := range extracted.Links {
		queued, err := c.frontier.Enqueue(ctx, link.TargetURL)
		if err != nil {
			c.logger.Error("failed to queue URL", "url", link.TargetURL, "error", err)
			continue
		}
		if queued {
			c.urlsQueued.Add(1)
			urlsQueuedTotal.Inc()
		}
	}

	c.pagesCrawled.Add(1)
	pagesCrawledTotal.Inc()
	c.linksFound.Add(int64(len(extracted.Links)))
	linksFoundTotal.Add(float64(len(extracted.Links)))

	c.logger.Info("crawled", "url", finalURL, "links", len(extracted.Links))
}

// fetch retrieves a URL and returns the post-redirect URL, the Content-Type
// header, and the body. Non-200 responses and non-HTML content are errors.
func (c *Crawler) fetch(ctx context.Context, url string) (string, string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", "", nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return "", "", nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to read body: %w", err)
	}

	return urlnorm.Normalize(resp.Request.URL.String()), contentType, body, nil
}

func (c *Crawler) block(reason string) {
	c.pagesBlocked.Add(1)
	pagesBlockedTotal.WithLabelValues(reason).Inc()
}

func (c *Crawler) fail() {
	c.pagesFailed.Add(1)
	pagesFailedTotal.Inc()
}

func (c *Crawler) snapshot() Stats {
	return Stats{
		PagesCrawled: c.pagesCrawled.Load(),
		PagesBlocked: c.pagesBlocked.Load(),
		PagesFailed:  c.pagesFailed.Load(),
		LinksFound:   c.linksFound.Load(),
		URLsQueued:   c.urlsQueued.Load(),
	}
}

func (c *Crawler) logStats() {
	s := c.snapshot()
	c.logger.Info("crawl stats",
		"pages_crawled", s.PagesCrawled,
		"pages_blocked", s.PagesBlocked,
		"pages_failed", s.PagesFailed,
		"links_found", s.LinksFound,
		"urls_queued", s.URLsQueued,
	)
}

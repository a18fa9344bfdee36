// Package robots caches per-origin robots.txt policies. Unlike the Tier-1
// blocklist this layer fails open: an absent or unreadable robots.txt is
// common and not a trust signal, so it means "no restriction".
package robots

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// Cache fetches and memoizes one robots.txt policy per scheme+host origin
// for the process lifetime. A nil cached policy is the "allow everything"
// sentinel.
type Cache struct {
	client    *http.Client
	userAgent string

	mu       sync.Mutex
	policies map[string]*robotstxt.RobotsData
}

// New returns a Cache that fetches robots.txt with the given client and
// evaluates rules against userAgent. A nil client gets a 10s-timeout default.
func New(client *http.Client, userAgent string) *Cache {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Cache{
		client:    client,
		userAgent: userAgent,
		policies:  make(map[string]*robotstxt.RobotsData),
	}
}

// CanFetch reports whether the origin's robots.txt permits fetching the URL.
// Unparseable URLs and any robots.txt fetch/parse failure allow the fetch.
func (c *Cache) CanFetch(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return true
	}

	origin := parsed.Scheme + "://" + parsed.Host

	c.mu.Lock()
	data, ok := c.policies[origin]
	c.mu.Unlock()

	if !ok {
		data = c.fetch(ctx, origin)
		c.mu.Lock()
		c.policies[origin] = data
		c.mu.Unlock()
	}

	if data == nil {
		return true
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}

	return data.TestAgent(path, c.userAgent)
}

// fetch retrieves and parses one origin's robots.txt. Returns nil (allow
// everything) on any failure.
func (c *Cache) fetch(ctx context.Context, origin string) *robotstxt.RobotsData {
	robotsURL := origin + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Debug("could not read robots.txt", "origin", origin, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		slog.Debug("could not parse robots.txt", "origin", origin, "error", err)
		return nil
	}

	return data
}

// Len reports how many origins have a cached decision, for stats logging.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.policies)
}

// String implements fmt.Stringer for debug logging.
func (c *Cache) String() string {
	return fmt.Sprintf("robots.Cache(%d origins)", c.Len())
}

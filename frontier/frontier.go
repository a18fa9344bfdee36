// Package frontier manages the queue of discovered-but-not-yet-crawled URLs.
// Storage is a shared Redis list with a companion dedup set; the Manager
// layers the admission policy (Tier-1 blocklist, not already crawled) on top.
package frontier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/bcdodgeme-bot/nothere/blocklist"
	"github.com/bcdodgeme-bot/nothere/urlnorm"
)

const queueKey = "crawler:queue"

// Queue is the frontier store: ordered admit/pop of URL strings with a
// membership set for dedup. Dequeue returns "" when the queue is empty.
//
// The dedup set is only ever added to, never cleared on dequeue. A URL whose
// crawl failed transiently therefore cannot re-enter the queue while the set
// lives; this matches the deployed behavior and the retry policy is an open
// question upstream.
type Queue interface {
	Enqueue(ctx context.Context, url string) (bool, error)
	Dequeue(ctx context.Context) (string, error)
	Size(ctx context.Context) (int64, error)
	Contains(ctx context.Context, url string) (bool, error)
	Clear(ctx context.Context) error
}

// RedisQueue implements Queue on a shared Redis instance. LPUSH + RPOP give
// FIFO ordering; SADD on the companion set keeps a URL from being queued
// twice concurrently.
type RedisQueue struct {
	client *redis.Client
}

// NewRedisQueue connects to Redis and verifies the connection with a ping.
func NewRedisQueue(ctx context.Context, redisURL string) (*RedisQueue, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisQueue{client: client}, nil
}

// Close releases the Redis connection.
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

// Enqueue adds a URL to the queue unless it is already a member of the
// dedup set. Returns true if the URL was queued.
func (q *RedisQueue) Enqueue(ctx context.Context, url string) (bool, error) {
	added, err := q.client.SAdd(ctx, queueKey+":set", url).Result()
	if err != nil {
		return false, fmt.Errorf("failed to add to dedup set: %w", err)
	}
	if added == 0 {
		return false, nil
	}

	if err := q.client.LPush(ctx, queueKey, url).Err(); err != nil {
		return false, fmt.Errorf("failed to push to queue: %w", err)
	}
	return true, nil
}

// Dequeue pops the next URL in FIFO order, or "" when the queue is empty.
func (q *RedisQueue) Dequeue(ctx context.Context) (string, error) {
	url, err := q.client.RPop(ctx, queueKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to pop from queue: %w", err)
	}
	return url, nil
}

// Size returns the number of URLs waiting in the queue.
func (q *RedisQueue) Size(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, queueKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue size: %w", err)
	}
	return n, nil
}

// Contains reports whether a URL is in the dedup set.
func (q *RedisQueue) Contains(ctx context.Context, url string) (bool, error) {
	ok, err := q.client.SIsMember(ctx, queueKey+":set", url).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check queue membership: %w", err)
	}
	return ok, nil
}

// Clear deletes the queue and its dedup set.
func (q *RedisQueue) Clear(ctx context.Context) error {
	if err := q.client.Del(ctx, queueKey, queueKey+":set").Err(); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	return nil
}

// PageChecker is the slice of the page store the admission policy needs.
type PageChecker interface {
	PageExists(ctx context.Context, urlHash string) (bool, error)
}

// Manager enforces the admission policy in front of a Queue: a URL is
// admitted only if the Tier-1 blocklist allows it and it is not already a
// persisted page.
type Manager struct {
	queue  Queue
	rules  *blocklist.List
	pages  PageChecker
	logger *slog.Logger
}

// NewManager builds a Manager around the given queue, rule set, and page
// store.
func NewManager(queue Queue, rules *blocklist.List, pages PageChecker) *Manager {
	return &Manager{
		queue:  queue,
		rules:  rules,
		pages:  pages,
		logger: slog.Default(),
	}
}

// Enqueue normalizes the URL and admits it if it passes the blocklist and
// has not been crawled. Returns true when the URL was actually queued.
func (m *Manager) Enqueue(ctx context.Context, rawURL string) (bool, error) {
	normalized := urlnorm.Normalize(rawURL)

	if blocked, reason := m.rules.IsBlocked(normalized); blocked {
		m.logger.Debug("not queuing blocked URL", "url", normalized, "reason", reason)
		return false, nil
	}

	exists, err := m.pages.PageExists(ctx, urlnorm.Hash(normalized))
	if err != nil {
		return false, fmt.Errorf("failed to check crawled state: %w", err)
	}
	if exists {
		m.logger.Debug("not queuing already-crawled URL", "url", normalized)
		return false, nil
	}

	return m.queue.Enqueue(ctx, normalized)
}

// Dequeue pops the next admitted URL, or "" when the frontier is exhausted.
func (m *Manager) Dequeue(ctx context.Context) (string, error) {
	return m.queue.Dequeue(ctx)
}

// Size reports the number of URLs waiting in the frontier.
func (m *Manager) Size(ctx context.Context) (int64, error) {
	return m.queue.Size(ctx)
}

// Package archive stores raw HTML snapshots of crawled pages, keyed by URL
// hash and crawl month. Snapshots back re-scoring and audit without a
// re-fetch.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// snapshotKey builds the storage key pages/YYYY/MM/<hash>.html.
func snapshotKey(urlHash string, crawledAt time.Time) string {
	return fmt.Sprintf("pages/%04d/%02d/%s.html", crawledAt.Year(), int(crawledAt.Month()), urlHash)
}

// FSConfig contains filesystem archive configuration.
type FSConfig struct {
	BasePath string // Base directory for all snapshots
}

// DefaultFSConfig returns default filesystem archive configuration.
func DefaultFSConfig() FSConfig {
	return FSConfig{BasePath: "./archive"}
}

// FSArchive stores snapshots on the local filesystem.
type FSArchive struct {
	config FSConfig
}

// NewFS creates a filesystem archive rooted at the configured base path.
func NewFS(config FSConfig) (*FSArchive, error) {
	if err := os.MkdirAll(config.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &FSArchive{config: config}, nil
}

// Save writes a snapshot. Re-crawls in the same month overwrite the previous
// snapshot for the same URL.
func (a *FSArchive) Save(_ context.Context, urlHash string, crawledAt time.Time, html []byte) error {
	path := filepath.Join(a.config.BasePath, filepath.FromSlash(snapshotKey(urlHash, crawledAt)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, html, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Read returns a stored snapshot.
func (a *FSArchive) Read(_ context.Context, urlHash string, crawledAt time.Time) ([]byte, error) {
	path := filepath.Join(a.config.BasePath, filepath.FromSlash(snapshotKey(urlHash, crawledAt)))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}

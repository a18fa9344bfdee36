// Package urlnorm canonicalizes URLs into the form used as the crawl
// dedup and storage key.
package urlnorm

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// Normalize trims whitespace, drops any fragment, and prepends https:// when
// no http(s) scheme is present. Query strings are deliberately preserved:
// two URLs differing only by query are distinct pages. No case folding.
func Normalize(raw string) string {
	u := strings.TrimSpace(raw)

	if i := strings.Index(u, "#"); i >= 0 {
		u = u[:i]
	}

	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}

	return u
}

// Hash returns the hex-encoded SHA-256 digest of a normalized URL. It is the
// idempotency key for the pages upsert and the already-crawled check.
func Hash(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Domain extracts the bare host from a URL or hostname: scheme and port are
// dropped, the result is lower-cased, and a leading "www." is stripped.
func Domain(s string) string {
	in := strings.TrimSpace(s)
	if !strings.Contains(in, "://") {
		in = "https://" + in
	}

	u, err := url.Parse(in)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

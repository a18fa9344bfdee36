package scoring

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bcdodgeme-bot/nothere/models"
)

// LinkGraph supplies the link-graph queries behind the authority dimension.
type LinkGraph interface {
	BacklinkCount(ctx context.Context, targetURL string) (int, error)
	ReferrerDomainsWithSuffix(ctx context.Context, targetURL, suffix string) (int, error)
}

type authorityEntry struct {
	score  int
	detail models.AuthorityDetail
}

// AuthorityScorer computes the 0-100 authority dimension from TLD prestige
// and the link graph. Results are cached per domain for seven days.
type AuthorityScorer struct {
	graph  LinkGraph
	cache  *TTLCache[string, authorityEntry]
	logger *slog.Logger
}

// NewAuthorityScorer builds an AuthorityScorer.
func NewAuthorityScorer(graph LinkGraph) *AuthorityScorer {
	return &AuthorityScorer{
		graph:  graph,
		cache:  NewTTLCache[string, authorityEntry](7 * 24 * time.Hour),
		logger: slog.Default(),
	}
}

// Score returns the authority score and its breakdown. Link-graph failures
// degrade that sub-score to zero and mark the result as degraded rather than
// failing the page.
func (a *AuthorityScorer) Score(ctx context.Context, url, domain string) (int, *models.AuthorityDetail) {
	if cached, ok := a.cache.Get(domain); ok {
		detail := cached.detail
		return cached.score, &detail
	}

	detail := models.AuthorityDetail{}
	detail.TLDScore = tldScore(domain)

	backlinks, err := a.graph.BacklinkCount(ctx, url)
	if err != nil {
		a.logger.Warn("failed to count backlinks", "url", url, "error", err)
		detail.Degraded = "backlinks_unavailable"
	} else {
		detail.BacklinkScore = backlinkScore(backlinks)
	}

	external, degraded := a.externalAuthority(ctx, url)
	detail.ExternalAuthority = external
	if degraded && detail.Degraded == "" {
		detail.Degraded = "external_authority_unavailable"
	}

	total := detail.TLDScore + detail.BacklinkScore + detail.ExternalAuthority
	detail.Total = total

	// Do not poison a week of cache with a degraded result.
	if detail.Degraded == "" {
		a.cache.Set(domain, authorityEntry{score: total, detail: detail})
	}

	return total, &detail
}

// tldScore ranks TLD prestige, 0-50.
func tldScore(domain string) int {
	domain = strings.ToLower(domain)
	switch {
	case strings.HasSuffix(domain, ".gov"):
		return 50
	case strings.HasSuffix(domain, ".edu"),
		strings.HasSuffix(domain, ".ac.uk"),
		strings.HasSuffix(domain, ".ac.in"),
		strings.HasSuffix(domain, ".edu.au"):
		return 45
	case strings.HasSuffix(domain, ".org"):
		return 30
	case strings.HasSuffix(domain, ".com"), strings.HasSuffix(domain, ".net"):
		return 20
	default:
		return 10
	}
}

// backlinkScore maps distinct referring pages to 0-30.
func backlinkScore(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 5:
		return 10
	case count <= 20:
		return 20
	default:
		return 30
	}
}

// externalAuthority awards 10 points each for .edu and .gov referrers,
// capped at 20.
func (a *AuthorityScorer) externalAuthority(ctx context.Context, url string) (int, bool) {
	score := 0
	degraded := false

	for _, suffix := range []string{".edu", ".gov"} {
		refs, err := a.graph.ReferrerDomainsWithSuffix(ctx, url, suffix)
		if err != nil {
			a.logger.Warn("failed to count referrer domains", "url", url, "suffix", suffix, "error", err)
			degraded = true
			continue
		}
		if refs > 0 {
			score += 10
		}
	}

	if score > 20 {
		score = 20
	}
	return score, degraded
}

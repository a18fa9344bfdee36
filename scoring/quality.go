package scoring

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bcdodgeme-bot/nothere/models"
)

// DomainHistory supplies the first-seen date used for the domain age
// sub-score.
type DomainHistory interface {
	FirstCrawlForDomain(ctx context.Context, domain string) (time.Time, error)
}

// QualityScorer computes the 0-100 quality dimension from content shape,
// transport security, and domain history.
type QualityScorer struct {
	readability ReadabilityScorer
	history     DomainHistory
	logger      *slog.Logger
}

// NewQualityScorer builds a QualityScorer. A nil readability scorer defaults
// to the Flesch formula.
func NewQualityScorer(readability ReadabilityScorer, history DomainHistory) *QualityScorer {
	if readability == nil {
		readability = FleschScorer{}
	}
	return &QualityScorer{readability: readability, history: history, logger: slog.Default()}
}

// Score returns the quality score and its breakdown. Freshness is derived
// from the page's crawl time; a zero crawl time contributes nothing.
func (q *QualityScorer) Score(ctx context.Context, page *models.Page) (int, *models.QualityDetail) {
	content := page.Content
	if len(strings.TrimSpace(content)) < minScorableContentLen {
		return 0, &models.QualityDetail{Reason: "content_too_short"}
	}

	detail := &models.QualityDetail{}
	total := 0

	detail.Readability = q.readability.Score(content)
	total += detail.Readability

	detail.ContentLength = contentLengthScore(content)
	total += detail.ContentLength

	detail.StructuralQuality = structuralQualityScore(content)
	total += detail.StructuralQuality

	detail.GrammarUniqueness = uniquenessScore(content)
	total += detail.GrammarUniqueness

	if strings.HasPrefix(strings.ToLower(page.URL), "https://") {
		detail.HasSSL = true
		total += 10
	}

	detail.DomainAgeScore = q.domainAgeScore(ctx, page.Domain)
	total += detail.DomainAgeScore

	// No client-side rendering check yet, assume mobile friendly.
	detail.MobileOptimized = true
	total += 5

	if !page.CrawledAt.IsZero() {
		detail.Freshness = freshnessScore(time.Since(page.CrawledAt))
		total += detail.Freshness
	}

	if total > 100 {
		total = 100
	}
	detail.Total = total
	return total, detail
}

func contentLengthScore(content string) int {
	words := len(strings.Fields(content))
	switch {
	case words < 100:
		return 0
	case words < 500:
		return 5
	case words <= 2000:
		return 10
	default:
		return 8
	}
}

func structuralQualityScore(content string) int {
	score := 0

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if len(line) < 100 && line != "" && line == strings.ToUpper(line) && line != strings.ToLower(line) {
			score += 5
			break
		}
	}

	if strings.Count(content, "\n") > 5 {
		score += 5
	}

	words := strings.Fields(strings.ToLower(content))
	if len(words) > 50 {
		if uniqueRatio(words) > 0.4 {
			score += 5
		}
	}

	return score
}

func uniquenessScore(content string) int {
	words := strings.Fields(content)
	if len(words) <= 50 {
		return 5
	}
	score := int(uniqueRatio(words) * 20)
	if score > 15 {
		score = 15
	}
	return score
}

func uniqueRatio(words []string) float64 {
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	return float64(len(unique)) / float64(len(words))
}

// domainAgeScore rewards domains with crawl history. Unknown domains and
// lookup failures get the new-domain default.
func (q *QualityScorer) domainAgeScore(ctx context.Context, domain string) int {
	if q.history == nil {
		return 5
	}
	first, err := q.history.FirstCrawlForDomain(ctx, domain)
	if err != nil {
		q.logger.Warn("failed to get domain age", "domain", domain, "error", err)
		return 5
	}
	if first.IsZero() {
		return 5
	}

	age := time.Since(first)
	switch {
	case age < 7*24*time.Hour:
		return 0
	case age < 30*24*time.Hour:
		return 5
	case age < 90*24*time.Hour:
		return 10
	default:
		return 15
	}
}

func freshnessScore(age time.Duration) int {
	switch {
	case age < 30*24*time.Hour:
		return 15
	case age < 90*24*time.Hour:
		return 10
	case age < 365*24*time.Hour:
		return 5
	default:
		return 2
	}
}

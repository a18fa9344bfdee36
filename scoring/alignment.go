package scoring

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bcdodgeme-bot/nothere/models"
)

const minScorableContentLen = 50

var educationalTLDs = []string{".edu", ".gov", ".ac.uk", ".ac.in", ".edu.au"}

var newsDomains = []string{
	"bbc.com", "bbc.co.uk", "reuters.com", "apnews.com",
	"ap.org", "aljazeera.com", "npr.org", "pbs.org",
}

var researchTerms = []string{
	"research", "study", "paper", "journal", "academic",
	"university", "scholar", "peer-reviewed", "abstract",
}

// falsePositivePatterns match legitimate publications whose names would
// otherwise trip negative keywords.
var falsePositivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bbitch\s+magazine\b`),
	regexp.MustCompile(`\bthe\s+intercept\b`),
}

// KeywordSource loads the theme keyword mapping.
type KeywordSource interface {
	LoadThemeKeywords(ctx context.Context) ([]models.ThemeKeyword, error)
}

type compiledKeyword struct {
	models.ThemeKeyword
	pattern *regexp.Regexp
}

// AlignmentScorer scores content against the values keyword map. Keywords
// are cached with a TTL so edits to the theme tables take effect without a
// restart.
type AlignmentScorer struct {
	source KeywordSource
	cache  *TTLCache[string, []compiledKeyword]
}

// NewAlignmentScorer builds a scorer that refreshes its keyword map every
// cacheTTL.
func NewAlignmentScorer(source KeywordSource, cacheTTL time.Duration) *AlignmentScorer {
	return &AlignmentScorer{
		source: source,
		cache:  NewTTLCache[string, []compiledKeyword](cacheTTL),
	}
}

func (a *AlignmentScorer) keywords(ctx context.Context) ([]compiledKeyword, error) {
	if cached, ok := a.cache.Get("keywords"); ok {
		return cached, nil
	}

	loaded, err := a.source.LoadThemeKeywords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load keywords: %w", err)
	}

	compiled := make([]compiledKeyword, 0, len(loaded))
	for _, kw := range loaded {
		pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(kw.Keyword)) + `\b`)
		if err != nil {
			continue
		}
		compiled = append(compiled, compiledKeyword{ThemeKeyword: kw, pattern: pattern})
	}

	a.cache.Set("keywords", compiled)
	return compiled, nil
}

// detectContext classifies the content so negative keyword weights can be
// dampened for academic, research, and news material.
func detectContext(content, domain string) models.ContextSignals {
	lower := strings.ToLower(content)
	var ctx models.ContextSignals

	for _, tld := range educationalTLDs {
		if strings.HasSuffix(domain, tld) {
			ctx.Educational = true
			break
		}
	}

	for _, news := range newsDomains {
		if strings.Contains(domain, news) {
			ctx.News = true
			break
		}
	}

	for _, term := range researchTerms {
		if strings.Contains(lower, term) {
			ctx.Research = true
			break
		}
	}

	for _, pattern := range falsePositivePatterns {
		if pattern.MatchString(lower) {
			ctx.FalsePositive = true
			break
		}
	}

	return ctx
}

// Score returns the alignment score in -100..+100 and its detail record.
// Short content and content with no keyword matches score zero.
func (a *AlignmentScorer) Score(ctx context.Context, content, domain string) (int, *models.AlignmentDetail, error) {
	if len(strings.TrimSpace(content)) < minScorableContentLen {
		return 0, &models.AlignmentDetail{Reason: "content_too_short"}, nil
	}

	keywords, err := a.keywords(ctx)
	if err != nil {
		return 0, nil, err
	}

	signals := detectContext(content, domain)
	lower := strings.ToLower(content)

	var raw float64
	var matches []models.KeywordMatch
	for _, kw := range keywords {
		if !kw.pattern.MatchString(lower) {
			continue
		}

		weight := float64(kw.Weight)
		if weight < 0 {
			if signals.Educational || signals.Research {
				weight *= 0.3
			} else if signals.News {
				weight *= 0.5
			}
			if signals.FalsePositive {
				weight = 0
			}
		}

		raw += weight
		matches = append(matches, models.KeywordMatch{
			Keyword:  kw.Keyword,
			Theme:    kw.Principle,
			Category: kw.Category,
			Weight:   weight,
		})
	}

	if len(matches) == 0 {
		return 0, &models.AlignmentDetail{Reason: "no_keywords_matched", Context: signals}, nil
	}

	score := raw
	if score > 100 {
		score = 100
	}
	if score < -100 {
		score = -100
	}

	top := matches
	if len(top) > 20 {
		top = top[:20]
	}

	return int(score), &models.AlignmentDetail{
		RawScore:        raw,
		NormalizedScore: (score + 100) / 2,
		MatchesCount:    len(matches),
		Context:         signals,
		TopMatches:      top,
	}, nil
}

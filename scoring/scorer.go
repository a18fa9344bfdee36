// Package scoring computes the composite score that decides whether a
// crawled page enters the index. Five dimensions are weighted: values
// alignment 30%, quality 25%, authority 20%, media literacy 15%, and equity
// boost 10%. A curated organizational blocklist disqualifies a page outright.
package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bcdodgeme-bot/nothere/models"
)

const (
	// IndexabilityThreshold is the minimum composite score for a page to
	// be indexable.
	IndexabilityThreshold = 25

	weightAlignment     = 0.30
	weightQuality       = 0.25
	weightAuthority     = 0.20
	weightMediaLiteracy = 0.15
	weightEquity        = 0.10

	defaultKeywordTTL = time.Hour
)

// Store is everything the scorer needs from the database. Satisfied by
// db.DB.
type Store interface {
	KeywordSource
	DomainHistory
	LinkGraph
	CuratedLists
	GetUnscoredPages(ctx context.Context, limit int) ([]models.Page, error)
	GetPage(ctx context.Context, id int64) (*models.Page, error)
	PageIDsWithContent(ctx context.Context, limit int) ([]int64, error)
	SaveScores(ctx context.Context, result *models.ScoringResult) error
}

// MediaScorer is the media literacy dimension. Satisfied by medialit.Scorer.
type MediaScorer interface {
	Score(ctx context.Context, content, domain, title string) (int, *models.MediaLiteracyDetail)
}

// Config contains scorer configuration.
type Config struct {
	KeywordCacheTTL time.Duration
	BatchSize       int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		KeywordCacheTTL: defaultKeywordTTL,
		BatchSize:       100,
	}
}

// Scorer scores pages and persists the results.
type Scorer struct {
	store     Store
	alignment *AlignmentScorer
	quality   *QualityScorer
	authority *AuthorityScorer
	curated   *curatedLookup
	media     MediaScorer
	config    Config
	logger    *slog.Logger
}

// New builds a Scorer. A nil readability scorer defaults to the Flesch
// formula.
func New(store Store, media MediaScorer, readability ReadabilityScorer, config Config) *Scorer {
	if config.KeywordCacheTTL <= 0 {
		config.KeywordCacheTTL = defaultKeywordTTL
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	logger := slog.Default()
	return &Scorer{
		store:     store,
		alignment: NewAlignmentScorer(store, config.KeywordCacheTTL),
		quality:   NewQualityScorer(readability, store),
		authority: NewAuthorityScorer(store),
		curated:   newCuratedLookup(store, logger),
		media:     media,
		config:    config,
		logger:    logger,
	}
}

// ScorePage computes the full composite score for one page. Every dimension
// degrades rather than erroring, so the composite is always produced.
func (s *Scorer) ScorePage(ctx context.Context, page *models.Page) (*models.ScoringResult, error) {
	ctx, span := otel.Tracer("scoring").Start(ctx, "scoring.ScorePage")
	defer span.End()
	span.SetAttributes(attribute.Int64("page.id", page.ID), attribute.String("page.domain", page.Domain))

	result := &models.ScoringResult{
		PageID:   page.ID,
		URL:      page.URL,
		ScoredAt: time.Now().UTC(),
	}

	// Curated blocklist disqualifies before any dimension runs.
	if blocked, reason := s.curated.checkOrgBlocklist(ctx, page.Domain); blocked {
		result.FinalCompositeScore = 0
		result.Indexable = false
		result.BlocklistReason = reason
		result.Components = models.ScoreComponents{OrgBlocked: true, Reason: reason}
		pagesBlockedTotal.Inc()
		return result, nil
	}

	alignScore, alignDetail, err := s.alignment.Score(ctx, page.Content, page.Domain)
	if err != nil {
		// A missing keyword table degrades alignment to neutral instead
		// of skipping the page.
		s.logger.Error("alignment scoring degraded", "page_id", page.ID, "error", err)
		alignScore = 0
		alignDetail = &models.AlignmentDetail{Reason: "keywords_unavailable"}
	}
	alignNormalized := float64(alignScore+100) / 2

	qualityScore, qualityDetail := s.quality.Score(ctx, page)
	authorityScore, authorityDetail := s.authority.Score(ctx, page.URL, page.Domain)
	mediaScore, mediaDetail := s.media.Score(ctx, page.Content, page.Domain, page.Title)
	equityScore, equityDetail := s.curated.equityBoost(ctx, page.Domain)

	composite := alignNormalized*weightAlignment +
		float64(qualityScore)*weightQuality +
		float64(authorityScore)*weightAuthority +
		float64(mediaScore)*weightMediaLiteracy +
		float64(equityScore)*weightEquity

	final := int(math.Round(composite))

	result.IslamicAlignmentScore = alignScore
	result.QualityScore = qualityScore
	result.AuthorityScore = authorityScore
	result.MediaLiteracyScore = mediaScore
	result.EquityBoost = equityScore
	result.FinalCompositeScore = final
	result.Indexable = final >= IndexabilityThreshold
	result.Components = models.ScoreComponents{
		IslamicAlignment: alignDetail,
		Quality:          qualityDetail,
		Authority:        authorityDetail,
		MediaLiteracy:    mediaDetail,
		Equity:           equityDetail,
	}

	pagesScoredTotal.Inc()
	if result.Indexable {
		pagesIndexableTotal.Inc()
	}

	s.logger.Info("scored page",
		"page_id", page.ID,
		"score", final,
		"indexable", result.Indexable,
		"alignment", alignScore,
		"quality", qualityScore,
		"authority", authorityScore,
		"media_literacy", mediaScore,
		"equity", equityScore,
	)

	return result, nil
}

// ScoreAndSave scores a page and persists the result and its audit record.
func (s *Scorer) ScoreAndSave(ctx context.Context, page *models.Page) (*models.ScoringResult, error) {
	result, err := s.ScorePage(ctx, page)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveScores(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save scores: %w", err)
	}
	return result, nil
}

// ScorePageByID fetches a page and scores it, persisting the result.
func (s *Scorer) ScorePageByID(ctx context.Context, id int64) (*models.ScoringResult, error) {
	page, err := s.store.GetPage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load page %d: %w", id, err)
	}
	return s.ScoreAndSave(ctx, page)
}

// RescoreAll re-scores every page that has content, scored or not. Useful
// after a scoring algorithm change. A limit of 0 means all pages. Returns
// the number of pages scored.
func (s *Scorer) RescoreAll(ctx context.Context, limit int) (int, error) {
	ids, err := s.store.PageIDsWithContent(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to load page ids: %w", err)
	}
	s.logger.Info("rescoring pages", "count", len(ids))

	var scored int
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return scored, err
		}
		if _, err := s.ScorePageByID(ctx, id); err != nil {
			s.logger.Error("failed to score page", "page_id", id, "error", err)
			scoringErrorsTotal.Inc()
			continue
		}
		scored++
		if (i+1)%100 == 0 {
			s.logger.Info("rescore progress", "done", i+1, "total", len(ids))
		}
	}
	s.logger.Info("rescoring complete", "scored", scored, "total", len(ids))
	return scored, nil
}

// RunBatches scores unscored pages in batches until none remain or the
// context is cancelled. Returns the number of pages scored.
func (s *Scorer) RunBatches(ctx context.Context) (int, error) {
	var scored int
	for {
		if err := ctx.Err(); err != nil {
			return scored, err
		}

		pages, err := s.store.GetUnscoredPages(ctx, s.config.BatchSize)
		if err != nil {
			return scored, fmt.Errorf("failed to load unscored pages: %w", err)
		}
		if len(pages) == 0 {
			s.logger.Info("no unscored pages remain", "scored", scored)
			return scored, nil
		}

		progress := 0
		for i := range pages {
			if err := ctx.Err(); err != nil {
				return scored, err
			}
			if _, err := s.ScoreAndSave(ctx, &pages[i]); err != nil {
				s.logger.Error("failed to score page", "page_id", pages[i].ID, "error", err)
				scoringErrorsTotal.Inc()
				continue
			}
			progress++
		}
		scored += progress

		// Failed pages stay unscored; without progress the next batch
		// would be the same pages again.
		if progress == 0 {
			return scored, fmt.Errorf("no pages in batch could be scored")
		}
	}
}

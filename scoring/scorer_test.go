package scoring

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/bcdodgeme-bot/nothere/models"
)

type fakeStore struct {
	keywords    []models.ThemeKeyword
	keywordsErr error
	org         map[string]*models.OrgBlocklistRecord
	equity      map[string]*models.EquityRecord
	orgCalls    int
	equityCalls int
	backlinks   map[string]int
	refs        map[string]map[string]int
	firstCrawl  map[string]time.Time
	unscored    []models.Page
	pages       map[int64]models.Page
	saved       []*models.ScoringResult
}

func (f *fakeStore) LoadThemeKeywords(_ context.Context) ([]models.ThemeKeyword, error) {
	if f.keywordsErr != nil {
		return nil, f.keywordsErr
	}
	return f.keywords, nil
}

func (f *fakeStore) GetOrgBlocklist(_ context.Context, domain string) (*models.OrgBlocklistRecord, error) {
	f.orgCalls++
	return f.org[domain], nil
}

func (f *fakeStore) GetEquity(_ context.Context, domain string) (*models.EquityRecord, error) {
	f.equityCalls++
	return f.equity[domain], nil
}

func (f *fakeStore) BacklinkCount(_ context.Context, targetURL string) (int, error) {
	return f.backlinks[targetURL], nil
}

func (f *fakeStore) ReferrerDomainsWithSuffix(_ context.Context, targetURL, suffix string) (int, error) {
	return f.refs[targetURL][suffix], nil
}

func (f *fakeStore) FirstCrawlForDomain(_ context.Context, domain string) (time.Time, error) {
	return f.firstCrawl[domain], nil
}

func (f *fakeStore) GetUnscoredPages(_ context.Context, limit int) ([]models.Page, error) {
	if len(f.unscored) > limit {
		return f.unscored[:limit], nil
	}
	return f.unscored, nil
}

func (f *fakeStore) GetPage(_ context.Context, id int64) (*models.Page, error) {
	p, ok := f.pages[id]
	if !ok {
		return nil, fmt.Errorf("page %d not found", id)
	}
	return &p, nil
}

func (f *fakeStore) PageIDsWithContent(_ context.Context, limit int) ([]int64, error) {
	var ids []int64
	for id, p := range f.pages {
		if p.Content != "" {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *fakeStore) SaveScores(_ context.Context, result *models.ScoringResult) error {
	f.saved = append(f.saved, result)
	var remaining []models.Page
	for _, p := range f.unscored {
		if p.ID != result.PageID {
			remaining = append(remaining, p)
		}
	}
	f.unscored = remaining
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type neutralMedia struct{}

func (neutralMedia) Score(_ context.Context, _, _, _ string) (int, *models.MediaLiteracyDetail) {
	return 50, &models.MediaLiteracyDetail{Status: "neutral", SkippedAnalysis: true}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		org:        map[string]*models.OrgBlocklistRecord{},
		equity:     map[string]*models.EquityRecord{},
		backlinks:  map[string]int{},
		refs:       map[string]map[string]int{},
		firstCrawl: map[string]time.Time{},
		pages:      map[int64]models.Page{},
	}
}

func TestCompositeScoreKnownInputs(t *testing.T) {
	store := newFakeStore()
	s := New(store, neutralMedia{}, nil, DefaultConfig())

	// Content under 50 chars zeroes alignment and quality. With no
	// backlinks or referrers, authority is the .com TLD score alone.
	page := &models.Page{
		ID:      1,
		URL:     "https://example.com/a",
		Domain:  "example.com",
		Content: "short",
	}

	result, err := s.ScorePage(context.Background(), page)
	if err != nil {
		t.Fatalf("ScorePage: %v", err)
	}

	// 50*0.30 + 0*0.25 + 20*0.20 + 50*0.15 + 0*0.10 = 26.5 -> 27
	if result.FinalCompositeScore != 27 {
		t.Errorf("composite = %d, want 27", result.FinalCompositeScore)
	}
	if !result.Indexable {
		t.Error("27 >= 25 must be indexable")
	}
	if result.IslamicAlignmentScore != 0 || result.QualityScore != 0 {
		t.Errorf("alignment = %d, quality = %d, want 0/0",
			result.IslamicAlignmentScore, result.QualityScore)
	}
	if result.AuthorityScore != 20 {
		t.Errorf("authority = %d, want 20", result.AuthorityScore)
	}
	if result.Components.Quality.Reason != "content_too_short" {
		t.Errorf("quality reason = %q", result.Components.Quality.Reason)
	}
}

func TestOrgBlocklistDisqualifies(t *testing.T) {
	store := newFakeStore()
	store.org["hategroup.example"] = &models.OrgBlocklistRecord{
		Domain:      "hategroup.example",
		SPLCFlagged: true,
		ADLFlagged:  true,
		Reason:      "designated hate group",
	}
	s := New(store, neutralMedia{}, nil, DefaultConfig())

	page := &models.Page{ID: 2, URL: "https://hategroup.example/", Domain: "hategroup.example", Content: "anything"}
	result, err := s.ScorePage(context.Background(), page)
	if err != nil {
		t.Fatalf("ScorePage: %v", err)
	}

	if result.FinalCompositeScore != 0 || result.Indexable {
		t.Errorf("result = %+v, want zero and not indexable", result)
	}
	if result.BlocklistReason != "Flagged by: SPLC, ADL - designated hate group" {
		t.Errorf("reason = %q", result.BlocklistReason)
	}
	if !result.Components.OrgBlocked {
		t.Error("components must record the disqualification")
	}
}

func TestListedButUnflaggedDomainIsNotBlocked(t *testing.T) {
	store := newFakeStore()
	store.org["cleared.example"] = &models.OrgBlocklistRecord{Domain: "cleared.example"}
	s := New(store, neutralMedia{}, nil, DefaultConfig())

	page := &models.Page{ID: 3, URL: "https://cleared.example/", Domain: "cleared.example", Content: "anything"}
	result, err := s.ScorePage(context.Background(), page)
	if err != nil {
		t.Fatalf("ScorePage: %v", err)
	}
	if result.Components.OrgBlocked {
		t.Error("row with no set flags must not disqualify")
	}
}

func TestEquityBoostStacksAndCaps(t *testing.T) {
	store := newFakeStore()
	store.equity["coop.example"] = &models.EquityRecord{
		Domain:        "coop.example",
		MinorityOwned: true,
		WomenOwned:    true,
		BCorp:         true,
	}
	lookup := newCuratedLookup(store, testLogger())

	boost, detail := lookup.equityBoost(context.Background(), "coop.example")
	if boost != 30 {
		t.Errorf("boost = %d, want capped 30", boost)
	}
	if len(detail.Flags) != 3 {
		t.Errorf("flags = %v", detail.Flags)
	}

	boost, detail = lookup.equityBoost(context.Background(), "unknown.example")
	if boost != 0 || detail.Reason != "not_in_equity_list" {
		t.Errorf("boost = %d, detail = %+v", boost, detail)
	}
}

func TestCuratedLookupsCachedPerDomain(t *testing.T) {
	store := newFakeStore()
	store.equity["coop.example"] = &models.EquityRecord{Domain: "coop.example", BCorp: true}
	s := New(store, neutralMedia{}, nil, DefaultConfig())

	page := &models.Page{
		ID:      1,
		URL:     "https://coop.example/a",
		Domain:  "coop.example",
		Content: "anything",
	}
	for i := 0; i < 5; i++ {
		if _, err := s.ScorePage(context.Background(), page); err != nil {
			t.Fatalf("ScorePage: %v", err)
		}
	}

	if store.orgCalls != 1 {
		t.Errorf("org blocklist lookups = %d, want 1", store.orgCalls)
	}
	if store.equityCalls != 1 {
		t.Errorf("equity lookups = %d, want 1", store.equityCalls)
	}
}

func TestKeywordSourceFailureDegradesAlignment(t *testing.T) {
	store := newFakeStore()
	store.keywordsErr = fmt.Errorf("relation theme_keywords does not exist")
	s := New(store, neutralMedia{}, nil, DefaultConfig())

	page := &models.Page{
		ID:      1,
		URL:     "https://example.com/a",
		Domain:  "example.com",
		Content: "long enough content to clear the minimum scorable length gate",
	}
	result, err := s.ScorePage(context.Background(), page)
	if err != nil {
		t.Fatalf("ScorePage must not fail on a keyword source error: %v", err)
	}

	if result.IslamicAlignmentScore != 0 {
		t.Errorf("alignment = %d, want neutral 0", result.IslamicAlignmentScore)
	}
	if result.Components.IslamicAlignment.Reason != "keywords_unavailable" {
		t.Errorf("reason = %q", result.Components.IslamicAlignment.Reason)
	}
	if result.AuthorityScore != 20 {
		t.Errorf("authority = %d, other dimensions must still be scored", result.AuthorityScore)
	}
	if result.FinalCompositeScore == 0 {
		t.Error("composite must be produced from the remaining dimensions")
	}
}

func TestRunBatchesScoresEverything(t *testing.T) {
	store := newFakeStore()
	for i := int64(1); i <= 5; i++ {
		store.unscored = append(store.unscored, models.Page{
			ID:      i,
			URL:     "https://example.org/p",
			Domain:  "example.org",
			Content: "tiny",
		})
	}
	config := DefaultConfig()
	config.BatchSize = 2
	s := New(store, neutralMedia{}, nil, config)

	scored, err := s.RunBatches(context.Background())
	if err != nil {
		t.Fatalf("RunBatches: %v", err)
	}
	if scored != 5 {
		t.Errorf("scored = %d, want 5", scored)
	}
	if len(store.saved) != 5 {
		t.Errorf("saved = %d results", len(store.saved))
	}
	for _, r := range store.saved {
		if r.ScoredAt.IsZero() {
			t.Error("scored_at not set")
		}
	}
}

func TestRescoreAllRevisitsScoredPages(t *testing.T) {
	store := newFakeStore()
	for i := int64(1); i <= 3; i++ {
		store.pages[i] = models.Page{
			ID:      i,
			URL:     "https://example.org/p",
			Domain:  "example.org",
			Content: "already scored once",
		}
	}
	s := New(store, neutralMedia{}, nil, DefaultConfig())

	scored, err := s.RescoreAll(context.Background(), 0)
	if err != nil {
		t.Fatalf("RescoreAll: %v", err)
	}
	if scored != 3 {
		t.Errorf("scored = %d, want 3", scored)
	}
	if len(store.saved) != 3 {
		t.Errorf("saved = %d results", len(store.saved))
	}

	store.saved = nil
	scored, err = s.RescoreAll(context.Background(), 2)
	if err != nil {
		t.Fatalf("RescoreAll with limit: %v", err)
	}
	if scored != 2 {
		t.Errorf("scored = %d, want 2", scored)
	}
}

func TestTLDScoreTable(t *testing.T) {
	cases := []struct {
		domain string
		want   int
	}{
		{"whitehouse.gov", 50},
		{"mit.edu", 45},
		{"ox.ac.uk", 45},
		{"archive.org", 30},
		{"example.com", 20},
		{"example.net", 20},
		{"example.io", 10},
	}
	for _, tc := range cases {
		if got := tldScore(tc.domain); got != tc.want {
			t.Errorf("tldScore(%q) = %d, want %d", tc.domain, got, tc.want)
		}
	}
}

func TestBacklinkScoreThresholds(t *testing.T) {
	cases := []struct{ count, want int }{
		{0, 0}, {1, 10}, {5, 10}, {6, 20}, {20, 20}, {21, 30}, {500, 30},
	}
	for _, tc := range cases {
		if got := backlinkScore(tc.count); got != tc.want {
			t.Errorf("backlinkScore(%d) = %d, want %d", tc.count, got, tc.want)
		}
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[string, int](10 * time.Millisecond)
	c.Set("k", 7)

	if v, ok := c.Get("k"); !ok || v != 7 {
		t.Fatalf("Get = %d, %v", v, ok)
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("entry should have expired")
	}
}

package scoring

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bcdodgeme-bot/nothere/models"
)

func alignmentKeywords() []models.ThemeKeyword {
	return []models.ThemeKeyword{
		{Keyword: "charity", ThemeID: 1, Principle: "Sadaqah", Category: "halal_encouraged", Weight: 5},
		{Keyword: "honesty", ThemeID: 2, Principle: "Sidq", Category: "core_values", Weight: 3},
		{Keyword: "gambling", ThemeID: 3, Principle: "Maisir", Category: "haram_prohibited", Weight: -10},
	}
}

func pad(s string) string {
	return s + " " + strings.Repeat("filler text to pass the minimum length bar. ", 3)
}

func TestAlignmentPositiveKeywords(t *testing.T) {
	store := newFakeStore()
	store.keywords = alignmentKeywords()
	a := NewAlignmentScorer(store, time.Minute)

	score, detail, err := a.Score(context.Background(), pad("A charity drive built on honesty."), "example.org")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 8 {
		t.Errorf("score = %d, want 8", score)
	}
	if detail.MatchesCount != 2 {
		t.Errorf("matches = %d", detail.MatchesCount)
	}
}

func TestAlignmentWholeWordMatching(t *testing.T) {
	store := newFakeStore()
	store.keywords = alignmentKeywords()
	a := NewAlignmentScorer(store, time.Minute)

	score, detail, err := a.Score(context.Background(), pad("The charitable uncharity fund."), "example.org")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 0 || detail.Reason != "no_keywords_matched" {
		t.Errorf("score = %d, detail = %+v; substrings must not match", score, detail)
	}
}

func TestAlignmentEducationalDampening(t *testing.T) {
	store := newFakeStore()
	store.keywords = alignmentKeywords()
	a := NewAlignmentScorer(store, time.Minute)

	content := pad("This course covers the economics of gambling.")

	plain, _, err := a.Score(context.Background(), content, "example.org")
	if err != nil {
		t.Fatal(err)
	}
	edu, _, err := a.Score(context.Background(), content, "state.edu")
	if err != nil {
		t.Fatal(err)
	}

	if plain != -10 {
		t.Errorf("plain score = %d, want -10", plain)
	}
	// 70% reduction on negative weights for educational domains.
	if edu != -3 {
		t.Errorf("edu score = %d, want -3", edu)
	}
}

func TestAlignmentNewsDampening(t *testing.T) {
	store := newFakeStore()
	store.keywords = alignmentKeywords()
	a := NewAlignmentScorer(store, time.Minute)

	score, _, err := a.Score(context.Background(), pad("Regulators investigate a gambling ring."), "bbc.com")
	if err != nil {
		t.Fatal(err)
	}
	if score != -5 {
		t.Errorf("news score = %d, want -5", score)
	}
}

func TestAlignmentFalsePositiveNeutralized(t *testing.T) {
	store := newFakeStore()
	store.keywords = alignmentKeywords()
	a := NewAlignmentScorer(store, time.Minute)

	score, detail, err := a.Score(context.Background(),
		pad("The Intercept reported on illegal gambling operations."), "example.org")
	if err != nil {
		t.Fatal(err)
	}
	if score != 0 {
		t.Errorf("score = %d, want 0 with false positive neutralized", score)
	}
	if !detail.Context.FalsePositive {
		t.Error("false positive signal not detected")
	}
}

func TestAlignmentShortContent(t *testing.T) {
	store := newFakeStore()
	store.keywords = alignmentKeywords()
	a := NewAlignmentScorer(store, time.Minute)

	score, detail, err := a.Score(context.Background(), "charity", "example.org")
	if err != nil {
		t.Fatal(err)
	}
	if score != 0 || detail.Reason != "content_too_short" {
		t.Errorf("score = %d, detail = %+v", score, detail)
	}
}

func TestAlignmentKeywordsCached(t *testing.T) {
	store := newFakeStore()
	store.keywords = alignmentKeywords()
	a := NewAlignmentScorer(store, time.Minute)

	if _, _, err := a.Score(context.Background(), pad("A charity event."), "example.org"); err != nil {
		t.Fatal(err)
	}

	// Later source changes are invisible until the TTL lapses.
	store.keywords = nil
	score, _, err := a.Score(context.Background(), pad("A charity event."), "example.org")
	if err != nil {
		t.Fatal(err)
	}
	if score != 5 {
		t.Errorf("score = %d, want cached keywords to still apply", score)
	}
}

func TestDetectContextResearchTerms(t *testing.T) {
	signals := detectContext("A peer-reviewed study from the university.", "example.org")
	if !signals.Research {
		t.Error("research terms not detected")
	}
	if signals.Educational || signals.News {
		t.Errorf("signals = %+v", signals)
	}
}

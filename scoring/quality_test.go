package scoring

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bcdodgeme-bot/nothere/models"
)

func TestQualityShortContentScoresZero(t *testing.T) {
	q := NewQualityScorer(nil, newFakeStore())
	score, detail := q.Score(context.Background(), &models.Page{Content: "   tiny   "})
	if score != 0 || detail.Reason != "content_too_short" {
		t.Errorf("score = %d, detail = %+v", score, detail)
	}
}

func TestQualitySSLBonus(t *testing.T) {
	store := newFakeStore()
	q := NewQualityScorer(nil, store)
	content := strings.Repeat("Clear and simple words make text easy to read for everyone. ", 20)

	secure, secureDetail := q.Score(context.Background(), &models.Page{
		URL: "https://example.org/a", Domain: "example.org", Content: content,
	})
	plain, plainDetail := q.Score(context.Background(), &models.Page{
		URL: "http://example.org/a", Domain: "example.org", Content: content,
	})

	if !secureDetail.HasSSL || plainDetail.HasSSL {
		t.Errorf("SSL detection wrong: %v / %v", secureDetail.HasSSL, plainDetail.HasSSL)
	}
	if secure != plain+10 {
		t.Errorf("secure = %d, plain = %d, want a 10 point gap", secure, plain)
	}
}

func TestQualityDomainAge(t *testing.T) {
	store := newFakeStore()
	store.firstCrawl["old.example"] = time.Now().Add(-120 * 24 * time.Hour)
	store.firstCrawl["new.example"] = time.Now().Add(-2 * 24 * time.Hour)
	q := NewQualityScorer(nil, store)

	if got := q.domainAgeScore(context.Background(), "old.example"); got != 15 {
		t.Errorf("old domain = %d, want 15", got)
	}
	if got := q.domainAgeScore(context.Background(), "new.example"); got != 0 {
		t.Errorf("very new domain = %d, want 0", got)
	}
	if got := q.domainAgeScore(context.Background(), "unseen.example"); got != 5 {
		t.Errorf("unseen domain = %d, want 5", got)
	}
}

func TestContentLengthScore(t *testing.T) {
	cases := []struct {
		words int
		want  int
	}{
		{50, 0}, {100, 5}, {499, 5}, {500, 10}, {2000, 10}, {2001, 8},
	}
	for _, tc := range cases {
		content := strings.TrimSpace(strings.Repeat("word ", tc.words))
		if got := contentLengthScore(content); got != tc.want {
			t.Errorf("contentLengthScore(%d words) = %d, want %d", tc.words, got, tc.want)
		}
	}
}

func TestFreshnessScore(t *testing.T) {
	cases := []struct {
		age  time.Duration
		want int
	}{
		{10 * 24 * time.Hour, 15},
		{60 * 24 * time.Hour, 10},
		{200 * 24 * time.Hour, 5},
		{400 * 24 * time.Hour, 2},
	}
	for _, tc := range cases {
		if got := freshnessScore(tc.age); got != tc.want {
			t.Errorf("freshnessScore(%v) = %d, want %d", tc.age, got, tc.want)
		}
	}
}

func TestQualityCappedAt100(t *testing.T) {
	store := newFakeStore()
	store.firstCrawl["old.example"] = time.Now().Add(-365 * 24 * time.Hour)
	q := NewQualityScorer(nil, store)

	var b strings.Builder
	for i := 0; i < 120; i++ {
		b.WriteString("Sentence number ")
		b.WriteString(strings.Repeat("x", i%7+1))
		b.WriteString(" adds fresh words. ")
	}

	score, detail := q.Score(context.Background(), &models.Page{
		URL:       "https://old.example/a",
		Domain:    "old.example",
		Content:   b.String(),
		CrawledAt: time.Now(),
	})
	if score > 100 {
		t.Errorf("score = %d, must be capped at 100", score)
	}
	if detail.Total != score {
		t.Errorf("detail total %d != score %d", detail.Total, score)
	}
}

func TestFleschScorerBuckets(t *testing.T) {
	easy := strings.Repeat("The cat sat on the mat. ", 10)
	if got := (FleschScorer{}).Score(easy); got != 15 {
		t.Errorf("easy prose = %d, want 15", got)
	}

	hard := strings.Repeat("Institutional epistemological considerations necessitate comprehensive interdisciplinary reconceptualization methodologies. ", 10)
	if got := (FleschScorer{}).Score(hard); got != 5 {
		t.Errorf("dense prose = %d, want 5", got)
	}
}

func TestHeuristicScorerSentenceLength(t *testing.T) {
	short := strings.Repeat("Five small words sit here. ", 8)
	if got := (HeuristicScorer{}).Score(short); got != 15 {
		t.Errorf("short sentences = %d, want 15", got)
	}

	if got := (HeuristicScorer{}).Score("no terminal punctuation at all"); got != 5 {
		t.Errorf("no sentences = %d, want 5", got)
	}
}

func TestCountSyllables(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"water", 2},
		{"banana", 3},
		{"", 1},
	}
	for _, tc := range cases {
		if got := countSyllables(tc.word); got != tc.want {
			t.Errorf("countSyllables(%q) = %d, want %d", tc.word, got, tc.want)
		}
	}
}

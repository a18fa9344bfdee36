package models

import "time"

// Page represents a crawled web page as stored in the pages table.
// Pages are upserted by URLHash: a re-crawl of the same URL overwrites
// title/content/crawled_at but keeps the same ID.
type Page struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	URLHash   string    `json:"url_hash"`
	Domain    string    `json:"domain"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CrawledAt time.Time `json:"crawled_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Link is an edge from a crawled page to a discovered URL. Links are
// append-only and deduplicated on (source_page_id, target_url).
type Link struct {
	SourcePageID int64  `json:"source_page_id"`
	TargetURL    string `json:"target_url"`
	Text         string `json:"link_text"`
}

// ThemeKeyword is one row of the keyword -> theme mapping used by the
// alignment scorer. Weight is derived from Category at load time.
type ThemeKeyword struct {
	Keyword   string `json:"keyword"`
	ThemeID   int64  `json:"theme_id"`
	Principle string `json:"principle"`
	Category  string `json:"category"`
	Weight    int    `json:"weight"`
}

// OrgBlocklistRecord holds per-domain flags sourced from civil-rights
// organizations. Any set flag disqualifies the domain from indexing.
type OrgBlocklistRecord struct {
	Domain      string `json:"domain"`
	SPLCFlagged bool   `json:"splc_flagged"`
	ACLUFlagged bool   `json:"aclu_flagged"`
	CAIRFlagged bool   `json:"cair_flagged"`
	ADLFlagged  bool   `json:"adl_flagged"`
	OtherOrg    bool   `json:"other_org_flagged"`
	Reason      string `json:"reason,omitempty"`
}

// EquityRecord holds per-domain ownership/social-impact certifications.
type EquityRecord struct {
	Domain          string `json:"domain"`
	MinorityOwned   bool   `json:"minority_owned"`
	WomenOwned      bool   `json:"women_owned"`
	VeteranOwned    bool   `json:"veteran_owned"`
	BCorp           bool   `json:"b_corp"`
	LGBTQOwned      bool   `json:"lgbtq_owned"`
	DisabilityOwned bool   `json:"disability_owned"`
}

// ScoringResult is the full output of scoring one page: the five component
// scores, the weighted composite, and the per-dimension breakdown that goes
// to the audit log.
type ScoringResult struct {
	PageID                int64           `json:"page_id"`
	URL                   string          `json:"url"`
	IslamicAlignmentScore int             `json:"islamic_alignment_score"` // raw, -100..+100
	QualityScore          int             `json:"quality_score"`
	AuthorityScore        int             `json:"authority_score"`
	MediaLiteracyScore    int             `json:"media_literacy_score"`
	EquityBoost           int             `json:"equity_boost"`
	FinalCompositeScore   int             `json:"final_composite_score"`
	Indexable             bool            `json:"indexable"`
	BlocklistReason       string          `json:"blocklist_reason,omitempty"`
	Components            ScoreComponents `json:"components"`
	ScoredAt              time.Time       `json:"scored_at"`
}

// ScoreComponents is the structured per-dimension breakdown. When a page is
// disqualified by the org blocklist only OrgBlocked/Reason are populated.
type ScoreComponents struct {
	OrgBlocked       bool                 `json:"org_blocked,omitempty"`
	Reason           string               `json:"reason,omitempty"`
	IslamicAlignment *AlignmentDetail     `json:"islamic_alignment,omitempty"`
	Quality          *QualityDetail       `json:"quality,omitempty"`
	Authority        *AuthorityDetail     `json:"authority,omitempty"`
	MediaLiteracy    *MediaLiteracyDetail `json:"media_literacy,omitempty"`
	Equity           *EquityDetail        `json:"equity_boost,omitempty"`
}

// ContextSignals flags the content context detected for alignment scoring.
type ContextSignals struct {
	Educational   bool `json:"is_educational"`
	News          bool `json:"is_news"`
	Research      bool `json:"is_research"`
	FalsePositive bool `json:"is_false_positive"`
}

// KeywordMatch records a single keyword hit and the weight it contributed
// after context dampening.
type KeywordMatch struct {
	Keyword  string  `json:"keyword"`
	Theme    string  `json:"theme"`
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

// AlignmentDetail is the transparency record for the alignment dimension.
type AlignmentDetail struct {
	Reason          string         `json:"reason,omitempty"`
	RawScore        float64        `json:"raw_score"`
	NormalizedScore float64        `json:"normalized_score"`
	MatchesCount    int            `json:"matches_count"`
	Context         ContextSignals `json:"context"`
	TopMatches      []KeywordMatch `json:"top_matches,omitempty"`
}

// QualityDetail breaks the quality score into its sub-components.
type QualityDetail struct {
	Reason            string `json:"reason,omitempty"`
	Readability       int    `json:"readability"`
	ContentLength     int    `json:"content_length"`
	StructuralQuality int    `json:"structural_quality"`
	GrammarUniqueness int    `json:"grammar_uniqueness"`
	HasSSL            bool   `json:"has_ssl"`
	DomainAgeScore    int    `json:"domain_age_score"`
	MobileOptimized   bool   `json:"mobile_optimized"`
	Freshness         int    `json:"freshness"`
	Total             int    `json:"total"`
}

// AuthorityDetail breaks the authority score into its sub-components.
type AuthorityDetail struct {
	TLDScore          int    `json:"tld_score"`
	BacklinkScore     int    `json:"backlink_score"`
	ExternalAuthority int    `json:"external_authority_score"`
	Total             int    `json:"total"`
	Degraded          string `json:"degraded,omitempty"`
}

// EquityDetail lists which certifications contributed to the boost.
type EquityDetail struct {
	Reason     string   `json:"reason,omitempty"`
	Flags      []string `json:"flags,omitempty"`
	TotalBoost int      `json:"total_boost"`
}

// MediaLiteracyDetail is the escalation gateway's per-page record.
// Status is one of "neutral" (no escalation), "analyzed", or "error".
type MediaLiteracyDetail struct {
	Status           string   `json:"status"`
	Reason           string   `json:"reason,omitempty"`
	SkippedAnalysis  bool     `json:"skipped_analysis,omitempty"`
	ModelUsed        string   `json:"model_used,omitempty"`
	MajorRedFlags    []string `json:"major_red_flags,omitempty"`
	MinorConcerns    []string `json:"minor_concerns,omitempty"`
	Explanation      string   `json:"explanation,omitempty"`
	ContextBoxNeeded bool     `json:"context_box_needed,omitempty"`
	ContextBoxText   string   `json:"context_box_text,omitempty"`
	Error            string   `json:"error,omitempty"`
	TriggeredBy      []string `json:"triggered_by,omitempty"`
	RawScore         int      `json:"raw_score,omitempty"`
}

// ChatMessage is one message in a chat-completions request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModelFilter carries the OpenRouter routing restriction: models on the
// blacklist are never selected, even under auto-routing.
type ModelFilter struct {
	Blacklist []string `json:"blacklist,omitempty"`
}

// ChatRequest is a request to the OpenRouter chat-completions API.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	Route       string        `json:"route,omitempty"`
	Models      *ModelFilter  `json:"models,omitempty"`
}

// ChatChoice is one completion choice in a chat-completions response.
type ChatChoice struct {
	Message ChatMessage `json:"message"`
}

// ChatUsage reports token consumption for a completed call.
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// ChatResponse is a response from the OpenRouter chat-completions API.
// Model is the identifier of the model actually used, which may differ from
// the requested one under auto-routing.
type ChatResponse struct {
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   *ChatUsage   `json:"usage,omitempty"`
}

// PatternAnalysis is the strict JSON object the misinformation-pattern
// prompt asks the model to return.
type PatternAnalysis struct {
	MajorRedFlags    []string `json:"major_red_flags"`
	MinorConcerns    []string `json:"minor_concerns"`
	Explanation      string   `json:"explanation"`
	CredibilityScore float64  `json:"credibility_score"`
	ContextBoxNeeded bool     `json:"context_box_needed"`
	ContextBoxText   string   `json:"context_box_text"`
}

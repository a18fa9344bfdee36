// Package medialit scores pages for misinformation patterns. A fast keyword
// pre-filter returns a neutral 50 for most content; pages with two or more
// red-flag matches are escalated to an OpenRouter model for analysis. Every
// failure mode degrades to the neutral score, never an error.
package medialit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bcdodgeme-bot/nothere/models"
)

const (
	// NeutralScore is returned for unsuspicious content and on any failure.
	NeutralScore = 50

	primaryModel  = "google/gemini-2.5-flash-lite"
	fallbackModel = "openrouter/auto"

	minContentLen   = 100
	escalationBar   = 2
	promptSampleLen = 2500
	maxTriggeredBy  = 10
)

// blockedModels are never selected, even under auto-routing.
var blockedModels = []string{"openai/gpt-4o", "openai/o1", "openai/o1-mini"}

// ChatClient is the model transport. Satisfied by openrouter.Client.
type ChatClient interface {
	Chat(ctx context.Context, request *models.ChatRequest) (*models.ChatResponse, error)
}

// Scorer is the escalation gateway. A nil client disables analysis and all
// escalations degrade to the neutral score.
type Scorer struct {
	client ChatClient
	logger *slog.Logger
}

// New builds a Scorer around the given model client.
func New(client ChatClient) *Scorer {
	return &Scorer{client: client, logger: slog.Default()}
}

// NeedsAnalysis runs the keyword pre-filter. Content shorter than 100
// characters never escalates.
func NeedsAnalysis(content string) (bool, []string) {
	if len(content) < minContentLen {
		return false, nil
	}

	lower := strings.ToLower(content)
	var matched []string
	for _, keyword := range redFlagKeywords {
		if strings.Contains(lower, keyword) {
			matched = append(matched, keyword)
		}
	}

	return len(matched) >= escalationBar, matched
}

// Score returns the media literacy score for a page and its detail record.
func (s *Scorer) Score(ctx context.Context, content, domain, title string) (int, *models.MediaLiteracyDetail) {
	checksTotal.Inc()

	needsAI, matched := NeedsAnalysis(content)
	if !needsAI {
		skippedTotal.Inc()
		return NeutralScore, &models.MediaLiteracyDetail{
			Status:          "neutral",
			Reason:          "No red flag keywords detected",
			SkippedAnalysis: true,
		}
	}

	s.logger.Info("red flags detected", "domain", domain, "matches", len(matched))

	score, detail := s.analyze(ctx, content, domain, title)
	if len(matched) > maxTriggeredBy {
		matched = matched[:maxTriggeredBy]
	}
	detail.TriggeredBy = matched
	return score, detail
}

// analyze calls the primary model and falls back to auto-routing when the
// primary fails.
func (s *Scorer) analyze(ctx context.Context, content, domain, title string) (int, *models.MediaLiteracyDetail) {
	if s.client == nil {
		errorsTotal.Inc()
		return NeutralScore, &models.MediaLiteracyDetail{
			Status: "error",
			Error:  "no model client configured",
		}
	}

	prompt := buildPrompt(content, domain, title)

	resp, err := s.chat(ctx, prompt, primaryModel)
	if err != nil {
		s.logger.Warn("primary model failed, trying fallback", "model", fallbackModel, "error", err)
		fallbackTotal.Inc()
		resp, err = s.chat(ctx, prompt, fallbackModel)
	}
	if err != nil {
		s.logger.Error("both primary and fallback models failed", "error", err)
		errorsTotal.Inc()
		return NeutralScore, &models.MediaLiteracyDetail{
			Status: "error",
			Error:  "API unavailable",
		}
	}

	if len(resp.Choices) == 0 {
		s.logger.Error("model returned no choices")
		errorsTotal.Inc()
		return NeutralScore, &models.MediaLiteracyDetail{
			Status: "error",
			Error:  "empty response",
		}
	}

	text := stripCodeFence(strings.TrimSpace(resp.Choices[0].Message.Content))

	var analysis models.PatternAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		s.logger.Error("failed to parse model response", "error", err)
		errorsTotal.Inc()
		return NeutralScore, &models.MediaLiteracyDetail{
			Status: "error",
			Error:  "invalid JSON response",
		}
	}

	score := int(analysis.CredibilityScore)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	analyzedTotal.Inc()

	modelUsed := resp.Model
	if modelUsed == "" {
		modelUsed = primaryModel
	}

	if score < 40 {
		s.logger.Warn("low credibility score", "score", score, "red_flags", analysis.MajorRedFlags)
	}

	return score, &models.MediaLiteracyDetail{
		Status:           "analyzed",
		ModelUsed:        modelUsed,
		MajorRedFlags:    analysis.MajorRedFlags,
		MinorConcerns:    analysis.MinorConcerns,
		Explanation:      analysis.Explanation,
		ContextBoxNeeded: analysis.ContextBoxNeeded,
		ContextBoxText:   analysis.ContextBoxText,
		RawScore:         score,
	}
}

func (s *Scorer) chat(ctx context.Context, prompt, model string) (*models.ChatResponse, error) {
	return s.client.Chat(ctx, &models.ChatRequest{
		Model:       model,
		Messages:    []models.ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   500,
		Temperature: 0.3,
		Route:       "fallback",
		Models:      &models.ModelFilter{Blacklist: blockedModels},
	})
}

// buildPrompt formats the pattern-detection prompt. Content is truncated for
// cost control.
func buildPrompt(content, domain, title string) string {
	if len(content) > promptSampleLen {
		content = content[:promptSampleLen]
	}
	if title == "" {
		title = "No title"
	}

	return fmt.Sprintf(`Analyze this webpage content for media literacy red flags.

CONTENT:
Title: %s
Domain: %s
Text: %s

Detect these 7 patterns:
1. Scientific Consensus Mismatch - contradicts established scientific consensus
2. Extraordinary Claims - miracle cures, one weird trick, extreme promises without evidence
3. Statistical Manipulation - correlation as causation, cherry-picked data, misleading stats
4. Source-Expertise Mismatch - unqualified author making expert claims
5. Conflict of Interest - undisclosed sponsorships, selling promoted products
6. Historical Revisionism - contradicts established historical record
7. Predatory Economic - MLM recruitment, pressure tactics, get-rich-quick schemes

IMPORTANT NUANCE:
- News reporting violence != glorifying violence
- Academic discussion != advocacy
- Historical analysis != revisionism
- Medical information from qualified sources != miracle cure claims
- Educational content explaining conspiracies != promoting them

Return ONLY a JSON object (no markdown, no code blocks):
{
  "major_red_flags": ["pattern_name1", "pattern_name2"],
  "minor_concerns": ["pattern_name3"],
  "explanation": "Brief 1-2 sentence reasoning",
  "credibility_score": 0-100,
  "context_box_needed": true or false,
  "context_box_text": "Educational context for users if needed"
}

Pattern names: scientific_mismatch, extraordinary_claims, statistical_manipulation, expertise_mismatch, conflict_of_interest, historical_revisionism, predatory_economic

Be strict but fair. Academic and educational content should score 70+. Genuine misinformation should score 0-40.`, title, domain, content)
}

// stripCodeFence unwraps a response the model wrapped in a markdown code
// block despite instructions.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	parts := strings.Split(text, "```")
	if len(parts) < 2 {
		return text
	}
	inner := parts[1]
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner)
}

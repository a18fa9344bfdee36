package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bcdodgeme-bot/nothere/models"
)

func TestChatSendsRoutingExtensions(t *testing.T) {
	var got models.ChatRequest
	var auth, referer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		referer = r.Header.Get("HTTP-Referer")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"model":"google/gemini-2.5-flash-lite","choices":[{"message":{"role":"assistant","content":"{}"}}]}`)
	}))
	defer server.Close()

	c := New("sk-test", "https://nothere.one", "test")
	c.SetBaseURL(server.URL)

	resp, err := c.Chat(context.Background(), &models.ChatRequest{
		Model:       "google/gemini-2.5-flash-lite",
		Messages:    []models.ChatMessage{{Role: "user", Content: "hi"}},
		MaxTokens:   500,
		Temperature: 0.3,
		Route:       "fallback",
		Models:      &models.ModelFilter{Blacklist: []string{"openai/gpt-4o"}},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", auth)
	}
	if referer != "https://nothere.one" {
		t.Errorf("HTTP-Referer = %q", referer)
	}
	if got.Route != "fallback" {
		t.Errorf("route = %q", got.Route)
	}
	if got.Models == nil || len(got.Models.Blacklist) != 1 {
		t.Errorf("models filter not sent: %+v", got.Models)
	}
	if resp.Model != "google/gemini-2.5-flash-lite" {
		t.Errorf("model = %q", resp.Model)
	}
}

func TestChatNon200IsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := New("sk-test", "https://nothere.one", "test")
	c.SetBaseURL(server.URL)

	if _, err := c.Chat(context.Background(), &models.ChatRequest{Model: "openrouter/auto"}); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestChatEmptyChoicesIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"model":"openrouter/auto","choices":[]}`)
	}))
	defer server.Close()

	c := New("sk-test", "https://nothere.one", "test")
	c.SetBaseURL(server.URL)

	if _, err := c.Chat(context.Background(), &models.ChatRequest{Model: "openrouter/auto"}); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

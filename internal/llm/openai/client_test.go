package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobtailor/internal/llm"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "<html></html>", want: "<html></html>"},
		{name: "html fence", in: "```html\n<html></html>\n```", want: "<html></html>"},
		{name: "json fence", in: "```json\n{\"skills\":[]}\n```", want: "{\"skills\":[]}"},
		{name: "bare fence", in: "```\n<p>Hi</p>\n```", want: "<p>Hi</p>"},
		{name: "whitespace", in: "  \n<p>Hi</p>\n  ", want: "<p>Hi</p>"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Fatalf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "gpt-4", nil); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	if _, err := NewClient("sk-test", "", nil); err == nil {
		t.Fatalf("expected error for missing model")
	}
	if _, err := NewClient("sk-test", "gpt-4", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateRoundTrip(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "```html\n<p>Hello</p>\n```"}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", "gpt-4", nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.baseURL = srv.URL

	got, err := client.Generate(context.Background(), llm.Request{
		Label:         "resume",
		Prompt:        "tailor this",
		SystemMessage: "You write resumes.",
		MaxTokens:     4000,
		Temperature:   0.7,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "<p>Hello</p>" {
		t.Fatalf("expected fence-stripped content, got %q", got)
	}

	if len(captured.Messages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" || captured.Messages[0].Content != "You write resumes." {
		t.Fatalf("unexpected system message: %+v", captured.Messages[0])
	}
	if captured.MaxTokens != 4000 {
		t.Fatalf("expected max_tokens 4000, got %d", captured.MaxTokens)
	}
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limit exceeded", "type": "rate_limit_error"},
		})
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", "gpt-4", nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.baseURL = srv.URL

	if _, err := client.Generate(context.Background(), llm.Request{Label: "resume", Prompt: "x"}); err == nil {
		t.Fatalf("expected error from API error payload")
	}
}

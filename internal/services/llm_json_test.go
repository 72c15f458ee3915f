package services

import (
	"strings"
	"testing"
)

func TestDecodeLLMJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain", `{"title":"x"}`, "x", false},
		{"fenced", "```json\n{\"title\":\"x\"}\n```", "x", false},
		{"fenced no lang", "```\n{\"title\":\"x\"}\n```", "x", false},
		{"chatter around json", "Sure, here you go:\n{\"title\":\"x\"}\nHope that helps!", "x", false},
		{"no json", "I could not generate that.", "", true},
		{"truncated json", `{"title":"x`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := decodeLLMJSON(tt.raw, &p)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", p)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Title != tt.want {
				t.Fatalf("title = %q, want %q", p.Title, tt.want)
			}
		})
	}
}

func TestTruncateForPrompt(t *testing.T) {
	if got := truncateForPrompt("short", 100); got != "short" {
		t.Fatalf("short input changed: %q", got)
	}
	long := strings.Repeat("a", 50)
	got := truncateForPrompt(long, 10)
	if !strings.HasSuffix(got, "[truncated]") {
		t.Fatalf("missing truncation marker: %q", got)
	}
	if !strings.HasPrefix(got, strings.Repeat("a", 10)) {
		t.Fatalf("unexpected prefix: %q", got)
	}
}

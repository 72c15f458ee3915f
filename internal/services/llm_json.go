package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeLLMJSON parses a JSON document out of a model response. Models
// wrap output in markdown fences often enough that we strip them and
// trim to the outermost brace pair before decoding.
func decodeLLMJSON(raw string, v interface{}) error {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return fmt.Errorf("no json found in model response")
	}
	end := strings.LastIndexAny(s, "}]")
	if end < start {
		return fmt.Errorf("unterminated json in model response")
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), v); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}

// truncateForPrompt bounds how much extracted text goes into a prompt.
func truncateForPrompt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "\n[truncated]"
}

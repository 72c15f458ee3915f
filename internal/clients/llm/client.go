package llm

import (
	"context"
	"fmt"
)

// Message is one chat-completion turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Options struct {
	Temperature float32
	MaxTokens   int
}

// Client is a chat-completion provider.
type Client interface {
	Name() string
	Chat(ctx context.Context, messages []Message, opts *Options) (string, error)
}

// apiError carries the upstream HTTP status so callers can classify
// failures without parsing the message.
type apiError struct {
	provider string
	status   int
	body     string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s api error (%d): %s", e.provider, e.status, e.body)
}

func (e *apiError) HTTPStatusCode() int { return e.status }

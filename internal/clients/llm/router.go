package llm

import (
	"context"
	"fmt"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/apierr"
)

// Router is the single-level provider fallback: the primary is tried
// first and the fallback only runs when the primary returns an error.
// No retries, no circuit breaking. When both providers fail the caller
// gets a provider_unavailable error (503).
type Router struct {
	log      *logger.Logger
	primary  Client
	fallback Client
}

func NewRouter(log *logger.Logger, primary, fallback Client) *Router {
	return &Router{
		log:      log.With("client", "LLMRouter"),
		primary:  primary,
		fallback: fallback,
	}
}

func (r *Router) Name() string { return "router" }

func (r *Router) Chat(ctx context.Context, messages []Message, opts *Options) (string, error) {
	content, primaryErr := r.primary.Chat(ctx, messages, opts)
	if primaryErr == nil {
		return content, nil
	}
	if r.fallback == nil {
		return "", apierr.Unavailable(fmt.Errorf("%s failed and no fallback configured: %w", r.primary.Name(), primaryErr))
	}

	r.log.Warn("primary provider failed, trying fallback",
		"primary", r.primary.Name(),
		"fallback", r.fallback.Name(),
		"error", primaryErr)

	content, fallbackErr := r.fallback.Chat(ctx, messages, opts)
	if fallbackErr == nil {
		return content, nil
	}
	return "", apierr.Unavailable(fmt.Errorf("all providers failed: %s: %v; %s: %v",
		r.primary.Name(), primaryErr, r.fallback.Name(), fallbackErr))
}

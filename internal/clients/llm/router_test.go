package llm

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/apierr"
)

type fakeClient struct {
	name    string
	content string
	err     error
	calls   int
}

func (f *fakeClient) Name() string { return f.name }

func (f *fakeClient) Chat(ctx context.Context, messages []Message, opts *Options) (string, error) {
	f.calls++
	return f.content, f.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestRouterChat_PrimarySucceeds(t *testing.T) {
	primary := &fakeClient{name: "groq", content: "hello"}
	fallback := &fakeClient{name: "openai", content: "other"}
	r := NewRouter(testLogger(t), primary, fallback)

	got, err := r.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Fatalf("content = %q, want %q", got, "hello")
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback called %d times on primary success", fallback.calls)
	}
}

func TestRouterChat_FallsBackOnPrimaryError(t *testing.T) {
	primary := &fakeClient{name: "groq", err: fmt.Errorf("rate limited")}
	fallback := &fakeClient{name: "openai", content: "recovered"}
	r := NewRouter(testLogger(t), primary, fallback)

	got, err := r.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "recovered" {
		t.Fatalf("content = %q, want %q", got, "recovered")
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Fatalf("unexpected call counts: primary=%d fallback=%d", primary.calls, fallback.calls)
	}
}

func TestRouterChat_BothFailReturns503(t *testing.T) {
	primary := &fakeClient{name: "groq", err: fmt.Errorf("down")}
	fallback := &fakeClient{name: "openai", err: fmt.Errorf("also down")}
	r := NewRouter(testLogger(t), primary, fallback)

	_, err := r.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)
	if err == nil {
		t.Fatalf("expected error when both providers fail")
	}
	ae := apierr.From(err)
	if ae.Status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", ae.Status, http.StatusServiceUnavailable)
	}
	if ae.Code != "provider_unavailable" {
		t.Fatalf("code = %q, want provider_unavailable", ae.Code)
	}
}

func TestRouterChat_NoFallbackConfigured(t *testing.T) {
	primary := &fakeClient{name: "groq", err: fmt.Errorf("down")}
	r := NewRouter(testLogger(t), primary, nil)

	_, err := r.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)
	if err == nil {
		t.Fatalf("expected error without fallback")
	}
	if apierr.From(err).Status != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", apierr.From(err).Status)
	}
}

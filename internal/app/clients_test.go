package app

import (
	"testing"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
)

func setClientEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APPWRITE_ENDPOINT", "http://127.0.0.1:1/v1")
	t.Setenv("APPWRITE_PROJECT_ID", "proj")
	t.Setenv("APPWRITE_API_KEY", "key")
	t.Setenv("APPWRITE_BUCKET_ID", "bucket")
	t.Setenv("FIRECRAWL_API_KEY", "key")
	t.Setenv("YOUTUBE_API_KEY", "key")
	// Unreachable on purpose; the cache degrades to nil.
	t.Setenv("REDIS_ADDR", "127.0.0.1:1")
}

func TestWireClients_MissingOpenAIKeyDisablesFallback(t *testing.T) {
	setClientEnv(t)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	cfg := Config{
		GroqAPIKey:  "groq-key",
		GroqBaseURL: "https://api.groq.com/openai/v1",
		GroqModel:   "llama-3.3-70b-versatile",
	}

	clients, err := wireClients(log, cfg)
	if err != nil {
		t.Fatalf("wireClients should start without an OpenAI key: %v", err)
	}
	if clients.LLMRouter == nil {
		t.Fatalf("router missing")
	}
}

func TestWireClients_MissingGroqKeyFails(t *testing.T) {
	setClientEnv(t)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	if _, err := wireClients(log, Config{}); err == nil {
		t.Fatalf("expected error without the primary provider key")
	}
}

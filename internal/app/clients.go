package app

import (
	"fmt"

	"github.com/studyloop/studyloop-backend/internal/clients/appwrite"
	"github.com/studyloop/studyloop-backend/internal/clients/llm"
	"github.com/studyloop/studyloop-backend/internal/clients/redis"
	"github.com/studyloop/studyloop-backend/internal/clients/scrape"
	"github.com/studyloop/studyloop-backend/internal/clients/youtube"
	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
)

type Clients struct {
	Storage   appwrite.StorageClient
	LLMRouter *llm.Router
	Scraper   scrape.Client
	YouTube   youtube.Client
	Cache     redis.Cache
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	storage, err := appwrite.NewStorageClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init appwrite storage: %w", err)
	}

	groq, err := llm.NewOpenAICompat(log, "groq", cfg.GroqBaseURL, cfg.GroqAPIKey, cfg.GroqModel)
	if err != nil {
		return Clients{}, fmt.Errorf("init groq client: %w", err)
	}
	// The router runs without a fallback; a missing OpenAI key only
	// costs the second chance, not startup.
	var openai llm.Client
	if cfg.OpenAIAPIKey != "" {
		openai, err = llm.NewOpenAICompat(log, "openai", cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return Clients{}, fmt.Errorf("init openai client: %w", err)
		}
	} else {
		log.Warn("OPENAI_API_KEY not set, llm fallback disabled")
	}
	router := llm.NewRouter(log, groq, openai)

	scraper, err := scrape.New(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init scrape client: %w", err)
	}

	yt, err := youtube.New(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init youtube client: %w", err)
	}

	// Extraction works without redis; the cache just never hits.
	cache, err := redis.NewCache(log)
	if err != nil {
		log.Warn("redis unavailable, extraction cache disabled", "error", err)
		cache = nil
	}

	return Clients{
		Storage:   storage,
		LLMRouter: router,
		Scraper:   scraper,
		YouTube:   yt,
		Cache:     cache,
	}, nil
}

package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/envutil"
)

// Client wraps the Firecrawl scrape API: one POST per URL, markdown out.
type Client interface {
	Scrape(ctx context.Context, url string) (*Result, error)
}

type Result struct {
	Title    string
	Markdown string
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(log *logger.Logger) (Client, error) {
	apiKey := envutil.String("FIRECRAWL_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("missing FIRECRAWL_API_KEY")
	}
	baseURL := strings.TrimRight(envutil.String("FIRECRAWL_BASE_URL", "https://api.firecrawl.dev"), "/")
	return &client{
		log:     log.With("client", "ScrapeClient"),
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string `json:"markdown"`
		Metadata struct {
			Title string `json:"title"`
		} `json:"metadata"`
	} `json:"data"`
	Error string `json:"error"`
}

func (c *client) Scrape(ctx context.Context, url string) (*Result, error) {
	payload, err := json.Marshal(scrapeRequest{URL: url, Formats: []string{"markdown"}})
	if err != nil {
		return nil, fmt.Errorf("marshal scrape request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scrape", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build scrape request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read scrape response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scrape api error (%d): %s", resp.StatusCode, string(body[:min(len(body), 512)]))
	}

	var parsed scrapeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode scrape response: %w", err)
	}
	if !parsed.Success {
		return nil, fmt.Errorf("scrape failed: %s", parsed.Error)
	}
	if strings.TrimSpace(parsed.Data.Markdown) == "" {
		return nil, fmt.Errorf("scrape returned no content for %s", url)
	}
	return &Result{Title: parsed.Data.Metadata.Title, Markdown: parsed.Data.Markdown}, nil
}

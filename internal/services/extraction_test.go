package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/studyloop/studyloop-backend/internal/clients/scrape"
	"github.com/studyloop/studyloop-backend/internal/clients/youtube"
	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
)

type fakeYouTube struct{}

func (fakeYouTube) VideoID(rawURL string) (string, bool) {
	if strings.Contains(rawURL, "youtube.com/watch") || strings.Contains(rawURL, "youtu.be/") {
		return "vid123", true
	}
	return "", false
}

func (fakeYouTube) Metadata(ctx context.Context, videoID string) (*youtube.Metadata, error) {
	return nil, nil
}

func (fakeYouTube) Transcript(ctx context.Context, videoID string) (string, error) {
	return "", nil
}

func TestClassifyURL(t *testing.T) {
	es := &extractionService{youtube: fakeYouTube{}}

	tests := []struct {
		url  string
		want LinkKind
	}{
		{"https://www.youtube.com/watch?v=abc", LinkKindYouTube},
		{"https://youtu.be/abc", LinkKindYouTube},
		{"https://example.com/paper.pdf", LinkKindFile},
		{"https://example.com/slides.PPTX", LinkKindFile},
		{"https://example.com/notes.md?download=1", LinkKindFile},
		{"https://example.com/doc.pdf#page=3", LinkKindFile},
		{"https://example.com/articles/go-concurrency", LinkKindWeb},
		{"https://example.com/pdf-guide", LinkKindWeb},
	}
	for _, tt := range tests {
		if got := es.ClassifyURL(tt.url); got != tt.want {
			t.Fatalf("ClassifyURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestClassifyURL_NoYouTubeClient(t *testing.T) {
	es := &extractionService{}
	if got := es.ClassifyURL("https://www.youtube.com/watch?v=abc"); got != LinkKindWeb {
		t.Fatalf("expected web fallback without youtube client, got %q", got)
	}
}

type fakeScraper struct {
	calls  int
	result *scrape.Result
	err    error
}

func (f *fakeScraper) Scrape(ctx context.Context, url string) (*scrape.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeCache struct {
	m map[string]string
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, bool) {
	v, ok := f.m[key]
	return v, ok
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	f.m[key] = value
}

func newExtractionFixture(t *testing.T, scraper scrape.Client, cache *fakeCache) *extractionService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	es := &extractionService{
		log:        log,
		scraper:    scraper,
		cacheTTL:   time.Hour,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	if cache != nil {
		es.cache = cache
	}
	return es
}

func TestExtractFromURL_FileURLDownloadsAndSniffs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("Remote plain   text content."))
	}))
	defer srv.Close()

	scraper := &fakeScraper{result: &scrape.Result{Title: "should not be used", Markdown: "nope"}}
	es := newExtractionFixture(t, scraper, nil)

	got, err := es.ExtractFromURL(context.Background(), srv.URL+"/paper.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got.Kind != LinkKindFile {
		t.Fatalf("kind = %q, want %q", got.Kind, LinkKindFile)
	}
	if got.Title != "paper.txt" {
		t.Fatalf("title = %q, want paper.txt", got.Title)
	}
	if got.Text != "Remote plain text content." {
		t.Fatalf("text = %q", got.Text)
	}
	if scraper.calls != 0 {
		t.Fatalf("scraper called %d times for a downloadable file", scraper.calls)
	}
}

func TestExtractFromURL_FileURLFallsBackToScraperKeepingKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	scraper := &fakeScraper{result: &scrape.Result{Title: "Paper", Markdown: "converted body"}}
	es := newExtractionFixture(t, scraper, nil)

	got, err := es.ExtractFromURL(context.Background(), srv.URL+"/paper.pdf")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if scraper.calls != 1 {
		t.Fatalf("scraper calls = %d, want 1", scraper.calls)
	}
	if got.Kind != LinkKindFile {
		t.Fatalf("kind = %q, want %q after fallback", got.Kind, LinkKindFile)
	}
	if got.Title != "Paper" || got.Text != "converted body" {
		t.Fatalf("unexpected content: %+v", got)
	}
}

func TestExtractFromURL_FileURLFailsWhenBothPathsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	scraper := &fakeScraper{err: context.DeadlineExceeded}
	es := newExtractionFixture(t, scraper, nil)

	if _, err := es.ExtractFromURL(context.Background(), srv.URL+"/paper.pdf"); err == nil {
		t.Fatalf("expected error when download and scraper both fail")
	}
}

func TestExtractFromURL_CacheKeepsTitleAndKind(t *testing.T) {
	scraper := &fakeScraper{result: &scrape.Result{Title: "Great Page", Markdown: "body text"}}
	cache := &fakeCache{m: map[string]string{}}
	es := newExtractionFixture(t, scraper, cache)

	first, err := es.ExtractFromURL(context.Background(), "https://example.com/article")
	if err != nil {
		t.Fatalf("first extract: %v", err)
	}
	if first.Title != "Great Page" {
		t.Fatalf("first title = %q", first.Title)
	}

	second, err := es.ExtractFromURL(context.Background(), "https://example.com/article")
	if err != nil {
		t.Fatalf("second extract: %v", err)
	}
	if scraper.calls != 1 {
		t.Fatalf("scraper calls = %d, want 1 (second hit served from cache)", scraper.calls)
	}
	if second.Title != "Great Page" || second.Kind != LinkKindWeb || second.Text != "body text" {
		t.Fatalf("cached content lost fields: %+v", second)
	}
}

func TestExtractFromURL_UnreadableCacheEntryIsMiss(t *testing.T) {
	scraper := &fakeScraper{result: &scrape.Result{Title: "Fresh", Markdown: "fresh body"}}
	url := "https://example.com/article"
	cache := &fakeCache{m: map[string]string{extractCacheKey(url): "bare text, not json"}}
	es := newExtractionFixture(t, scraper, cache)

	got, err := es.ExtractFromURL(context.Background(), url)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if scraper.calls != 1 {
		t.Fatalf("scraper calls = %d, want 1 (stale entry should not serve)", scraper.calls)
	}
	if got.Title != "Fresh" {
		t.Fatalf("title = %q", got.Title)
	}
}

func TestExtractCacheKey_Stable(t *testing.T) {
	a := extractCacheKey("https://example.com/a")
	b := extractCacheKey("https://example.com/a")
	c := extractCacheKey("https://example.com/b")
	if a != b {
		t.Fatalf("same url produced different keys: %q vs %q", a, b)
	}
	if a == c {
		t.Fatalf("different urls produced the same key: %q", a)
	}
	if !strings.HasPrefix(a, "extract:") {
		t.Fatalf("unexpected key prefix: %q", a)
	}
}

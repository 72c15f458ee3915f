package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/studyloop/studyloop-backend/internal/clients/redis"
	"github.com/studyloop/studyloop-backend/internal/clients/scrape"
	"github.com/studyloop/studyloop-backend/internal/clients/youtube"
	"github.com/studyloop/studyloop-backend/internal/extract"
	"github.com/studyloop/studyloop-backend/internal/pkg/httpx"
	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/apierr"
)

// LinkKind classifies a submitted URL before extraction.
type LinkKind string

const (
	LinkKindYouTube LinkKind = "youtube"
	LinkKindFile    LinkKind = "file"
	LinkKindWeb     LinkKind = "web"
)

// LinkContent is extracted text plus whatever title the source offered.
type LinkContent struct {
	Kind  LinkKind `json:"kind"`
	Title string   `json:"title"`
	Text  string   `json:"text"`
}

type ExtractionService interface {
	ClassifyURL(rawURL string) LinkKind
	ExtractFromURL(ctx context.Context, rawURL string) (*LinkContent, error)
	ExtractFromFile(originalName, mimeType string, data []byte) (string, error)
}

type extractionService struct {
	log        *logger.Logger
	youtube    youtube.Client
	scraper    scrape.Client
	cache      redis.Cache
	cacheTTL   time.Duration
	httpClient *http.Client
}

func NewExtractionService(log *logger.Logger, yt youtube.Client, scraper scrape.Client, cache redis.Cache) ExtractionService {
	return &extractionService{
		log:      log.With("service", "ExtractionService"),
		youtube:  yt,
		scraper:  scraper,
		cache:    cache,
		cacheTTL: 24 * time.Hour,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

const maxRemoteFileBytes = 50 << 20

// Extensions that point at a downloadable document rather than a page.
var fileURLExtensions = []string{".pdf", ".docx", ".pptx", ".txt", ".md"}

func (es *extractionService) ClassifyURL(rawURL string) LinkKind {
	if es.youtube != nil {
		if _, ok := es.youtube.VideoID(rawURL); ok {
			return LinkKindYouTube
		}
	}
	lower := strings.ToLower(rawURL)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	for _, ext := range fileURLExtensions {
		if strings.HasSuffix(lower, ext) {
			return LinkKindFile
		}
	}
	return LinkKindWeb
}

func (es *extractionService) ExtractFromURL(ctx context.Context, rawURL string) (*LinkContent, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, apierr.Invalid(fmt.Errorf("url required"))
	}
	kind := es.ClassifyURL(rawURL)

	cacheKey := extractCacheKey(rawURL)
	if es.cache != nil {
		if cached, ok := es.cache.Get(ctx, cacheKey); ok {
			var content LinkContent
			// Unreadable entries count as misses.
			if err := json.Unmarshal([]byte(cached), &content); err == nil && content.Text != "" {
				return &content, nil
			}
		}
	}

	var content *LinkContent
	var err error
	switch kind {
	case LinkKindYouTube:
		content, err = es.extractYouTube(ctx, rawURL)
	case LinkKindFile:
		content, err = es.extractRemoteFile(ctx, rawURL)
	default:
		content, err = es.extractWebPage(ctx, rawURL)
	}
	if err != nil {
		return nil, err
	}

	if es.cache != nil && content.Text != "" {
		if encoded, err := json.Marshal(content); err == nil {
			es.cache.Set(ctx, cacheKey, string(encoded), es.cacheTTL)
		}
	}
	return content, nil
}

func (es *extractionService) ExtractFromFile(originalName, mimeType string, data []byte) (string, error) {
	text, err := extract.Text(originalName, mimeType, data)
	if err != nil {
		return "", apierr.Invalid(fmt.Errorf("unsupported file content: %w", err))
	}
	return text, nil
}

func (es *extractionService) extractYouTube(ctx context.Context, rawURL string) (*LinkContent, error) {
	videoID, ok := es.youtube.VideoID(rawURL)
	if !ok {
		return nil, apierr.Invalid(fmt.Errorf("could not parse youtube url"))
	}

	transcript, err := es.youtube.Transcript(ctx, videoID)
	if err != nil {
		return nil, apierr.Invalid(fmt.Errorf("transcript unavailable: %w", err))
	}

	content := &LinkContent{Kind: LinkKindYouTube, Text: transcript}
	// Metadata failures degrade to a transcript-only item.
	if meta, err := es.youtube.Metadata(ctx, videoID); err != nil {
		es.log.Warn("youtube metadata lookup failed", "video_id", videoID, "error", err)
	} else {
		content.Title = meta.Title
		content.Text = fmt.Sprintf("%s\nChannel: %s\n\n%s", meta.Title, meta.ChannelName, transcript)
	}
	return content, nil
}

func (es *extractionService) extractRemoteFile(ctx context.Context, rawURL string) (*LinkContent, error) {
	data, contentType, err := es.downloadFile(ctx, rawURL)
	if err == nil {
		name := remoteFileName(rawURL)
		text, extractErr := extract.Text(name, contentType, data)
		if extractErr == nil {
			return &LinkContent{Kind: LinkKindFile, Title: name, Text: text}, nil
		}
		err = extractErr
	}

	// Firecrawl can still convert documents a direct download or sniff
	// could not handle. The classification stays file either way.
	es.log.Warn("direct file extraction failed, falling back to scraper", "url", rawURL, "error", err)
	content, scrapeErr := es.extractWebPage(ctx, rawURL)
	if scrapeErr != nil {
		return nil, apierr.Invalid(fmt.Errorf("could not extract file url: %v", err))
	}
	content.Kind = LinkKindFile
	return content, nil
}

func (es *extractionService) downloadFile(ctx context.Context, rawURL string) ([]byte, string, error) {
	var lastErr error
	backoff := time.Second
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(httpx.JitterSleep(backoff)):
			}
			backoff *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, "", fmt.Errorf("build download request: %w", err)
		}
		resp, err := es.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			lastErr = fmt.Errorf("download %s: status %d", rawURL, resp.StatusCode)
			if !httpx.IsRetryableHTTPStatus(resp.StatusCode) {
				return nil, "", lastErr
			}
			continue
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteFileBytes+1))
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read download body: %w", err)
			continue
		}
		if len(data) > maxRemoteFileBytes {
			return nil, "", fmt.Errorf("remote file larger than %d bytes", maxRemoteFileBytes)
		}
		return data, resp.Header.Get("Content-Type"), nil
	}
	return nil, "", lastErr
}

func remoteFileName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if name := path.Base(u.Path); name != "." && name != "/" {
		return name
	}
	return rawURL
}

func (es *extractionService) extractWebPage(ctx context.Context, rawURL string) (*LinkContent, error) {
	result, err := es.scraper.Scrape(ctx, rawURL)
	if err != nil {
		return nil, apierr.Invalid(fmt.Errorf("could not extract page: %w", err))
	}
	return &LinkContent{Kind: LinkKindWeb, Title: result.Title, Text: result.Markdown}, nil
}

func extractCacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return "extract:" + hex.EncodeToString(sum[:])
}

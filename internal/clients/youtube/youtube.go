package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/envutil"
)

// Client fetches video metadata from the YouTube Data API and the
// transcript from the public timedtext endpoint.
type Client interface {
	VideoID(rawURL string) (string, bool)
	Metadata(ctx context.Context, videoID string) (*Metadata, error)
	Transcript(ctx context.Context, videoID string) (string, error)
}

type Metadata struct {
	Title       string
	ChannelName string
	Description string
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?.*v=)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:youtu\.be/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:youtube\.com/embed/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:youtube\.com/shorts/)([A-Za-z0-9_-]{11})`),
}

type client struct {
	log        *logger.Logger
	apiKey     string
	apiBaseURL string
	httpClient *http.Client
}

func New(log *logger.Logger) (Client, error) {
	apiKey := envutil.String("YOUTUBE_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("missing YOUTUBE_API_KEY")
	}
	return &client{
		log:        log.With("client", "YouTubeClient"),
		apiKey:     apiKey,
		apiBaseURL: strings.TrimRight(envutil.String("YOUTUBE_API_BASE_URL", "https://www.googleapis.com/youtube/v3"), "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (c *client) VideoID(rawURL string) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); len(m) == 2 {
			return m[1], true
		}
	}
	return "", false
}

type videosListResponse struct {
	Items []struct {
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Description  string `json:"description"`
		} `json:"snippet"`
	} `json:"items"`
}

func (c *client) Metadata(ctx context.Context, videoID string) (*Metadata, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("id", videoID)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/videos?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build metadata request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metadata request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, fmt.Errorf("read metadata response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube api error (%d)", resp.StatusCode)
	}

	var parsed videosListResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode metadata response: %w", err)
	}
	if len(parsed.Items) == 0 {
		return nil, fmt.Errorf("video %s not found", videoID)
	}
	sn := parsed.Items[0].Snippet
	return &Metadata{Title: sn.Title, ChannelName: sn.ChannelTitle, Description: sn.Description}, nil
}

type timedText struct {
	Texts []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

func (c *client) Transcript(ctx context.Context, videoID string) (string, error) {
	q := url.Values{}
	q.Set("v", videoID)
	q.Set("lang", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://video.google.com/timedtext?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build transcript request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcript request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read transcript response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || len(body) == 0 {
		return "", fmt.Errorf("no transcript available for %s", videoID)
	}

	var parsed timedText
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}
	var out strings.Builder
	for _, t := range parsed.Texts {
		v := strings.TrimSpace(t.Value)
		if v == "" {
			continue
		}
		out.WriteString(v)
		out.WriteString(" ")
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", fmt.Errorf("empty transcript for %s", videoID)
	}
	return text, nil
}

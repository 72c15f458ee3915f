package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/studyloop/studyloop-backend/internal/pkg/httpx"
	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/envutil"
)

// StorageClient talks to the Appwrite storage REST API. Files live in a
// single bucket configured at startup.
type StorageClient interface {
	Upload(ctx context.Context, fileID, fileName string, data []byte) (*File, error)
	ViewURL(fileID string) string
	Delete(ctx context.Context, fileID string) error
}

type File struct {
	ID        string `json:"$id"`
	Name      string `json:"name"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeOriginal"`
}

type storageClient struct {
	log        *logger.Logger
	endpoint   string
	projectID  string
	apiKey     string
	bucketID   string
	httpClient *http.Client
}

func NewStorageClient(log *logger.Logger) (StorageClient, error) {
	endpoint := strings.TrimRight(envutil.String("APPWRITE_ENDPOINT", ""), "/")
	projectID := envutil.String("APPWRITE_PROJECT_ID", "")
	apiKey := envutil.String("APPWRITE_API_KEY", "")
	bucketID := envutil.String("APPWRITE_BUCKET_ID", "")
	if endpoint == "" || projectID == "" || apiKey == "" || bucketID == "" {
		return nil, fmt.Errorf("missing APPWRITE_ENDPOINT / APPWRITE_PROJECT_ID / APPWRITE_API_KEY / APPWRITE_BUCKET_ID")
	}
	return &storageClient{
		log:       log.With("client", "AppwriteStorage"),
		endpoint:  endpoint,
		projectID: projectID,
		apiKey:    apiKey,
		bucketID:  bucketID,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

func (c *storageClient) Upload(ctx context.Context, fileID, fileName string, data []byte) (*File, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("fileId", fileID); err != nil {
		return nil, fmt.Errorf("write fileId field: %w", err)
	}
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write file part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	// One bounded retry on throttling or transient upstream failure;
	// storage uploads are the only outbound call retried anywhere.
	attempts := 0
	for {
		attempts++
		file, resp, err := c.doUpload(ctx, buf.Bytes(), mw.FormDataContentType())
		if err == nil {
			return file, nil
		}
		if attempts >= 2 || resp == nil || !httpx.IsRetryableHTTPStatus(resp.StatusCode) {
			return nil, err
		}
		sleepFor := httpx.RetryAfterDuration(resp, 1*time.Second, 10*time.Second)
		c.log.Warn("storage upload failed, retrying once", "status", resp.StatusCode, "sleep", sleepFor)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(httpx.JitterSleep(sleepFor)):
		}
	}
}

func (c *storageClient) doUpload(ctx context.Context, body []byte, contentType string) (*File, *http.Response, error) {
	url := fmt.Sprintf("%s/storage/buckets/%s/files", c.endpoint, c.bucketID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp, fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, resp, fmt.Errorf("storage upload error (%d): %s", resp.StatusCode, string(respBody[:min(len(respBody), 512)]))
	}

	var file File
	if err := json.Unmarshal(respBody, &file); err != nil {
		return nil, resp, fmt.Errorf("decode upload response: %w", err)
	}
	return &file, resp, nil
}

func (c *storageClient) ViewURL(fileID string) string {
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/view?project=%s", c.endpoint, c.bucketID, fileID, c.projectID)
}

func (c *storageClient) Delete(ctx context.Context, fileID string) error {
	url := fmt.Sprintf("%s/storage/buckets/%s/files/%s", c.endpoint, c.bucketID, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("storage delete error (%d)", resp.StatusCode)
	}
	return nil
}

func (c *storageClient) setAuthHeaders(req *http.Request) {
	req.Header.Set("X-Appwrite-Project", c.projectID)
	req.Header.Set("X-Appwrite-Key", c.apiKey)
}

package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// UploadService forwards uploaded files to the content-manager service.
type UploadService interface {
	Forward(ctx context.Context, folder, filename, contentType string, body io.Reader) error
}

type uploadService struct {
	baseURL string
	client  *http.Client
}

// NewUploadService builds an upload proxy targeting the content-manager base
// URL with a bounded per-request timeout.
func NewUploadService(baseURL string, timeout time.Duration) UploadService {
	return &uploadService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Forward streams the file bytes by PUT to
// {baseURL}/uploads/{folder}/{filename} with the inbound content type. Any
// non-2xx downstream response is an error.
func (s *uploadService) Forward(ctx context.Context, folder, filename, contentType string, body io.Reader) error {
	target := fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, folder, url.PathEscape(filename))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload to content manager: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("content manager returned status: %d", resp.StatusCode)
	}
	return nil
}

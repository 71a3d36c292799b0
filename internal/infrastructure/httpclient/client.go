package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"saraban-stamp/internal/config"
)

// maxDownloadSize bounds a single asset download.
const maxDownloadSize = 32 << 20

type HTTPClient interface {
	// Download performs a GET request and returns the response body
	Download(ctx context.Context, url string) ([]byte, error)
}

type httpClient struct {
	client *http.Client
	logger *zap.Logger
}

func NewHTTPClient(cfg *config.Config, logger *zap.Logger) HTTPClient {
	return NewWithClient(&http.Client{Timeout: cfg.Assets.FetchTimeout}, logger)
}

// NewWithClient wraps an existing *http.Client.
func NewWithClient(client *http.Client, logger *zap.Logger) HTTPClient {
	return &httpClient{client: client, logger: logger}
}

func (c *httpClient) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug("Downloading asset", zap.String("url", url))

	startTime := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	duration := time.Since(startTime)

	c.logger.Info("Asset downloaded",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", duration),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download error: status=%d", resp.StatusCode)
	}
	if len(body) > maxDownloadSize {
		return nil, fmt.Errorf("download error: body exceeds %d bytes", maxDownloadSize)
	}
	return body, nil
}

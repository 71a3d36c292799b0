// Package asset fetches and caches the static assets rendering depends on: the
// text font and the default emblem.
package asset

import (
	"context"
	"fmt"
	"os"
	"strings"

	"saraban-stamp/internal/infrastructure/httpclient"
)

// Fetcher loads the bytes at a location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

type fetcher struct {
	client httpclient.HTTPClient
}

// NewFetcher fetches http(s) locations through client and reads anything else
// (optionally prefixed with file://) from the local filesystem.
func NewFetcher(client httpclient.HTTPClient) Fetcher {
	return &fetcher{client: client}
}

func (f *fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return f.client.Download(ctx, location)
	}

	path := strings.TrimPrefix(location, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, location string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, location string) ([]byte, error) {
	return f(ctx, location)
}

package asset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"saraban-stamp/internal/domain/entity"
)

const (
	FontAsset   = "font"
	EmblemAsset = "emblem"
)

// SharedCache is an optional cache tier shared between processes.
type SharedCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, expiration time.Duration) error
}

// StoreOptions tunes a Store.
type StoreOptions struct {
	FetchTimeout time.Duration // per fetch; zero means no bound
	SharedTTL    time.Duration
	KeyPrefix    string
}

// Store caches named asset bytes for the life of the process. Concurrent first
// requests for the same asset share a single fetch. A Store is safe for
// concurrent use.
type Store struct {
	fetcher Fetcher
	shared  SharedCache
	sources map[string]string
	opts    StoreOptions
	logger  *zap.Logger

	mu    sync.RWMutex
	cache map[string][]byte
	group singleflight.Group
}

// NewStore creates a Store serving the named sources (asset name to location).
// shared may be nil.
func NewStore(fetcher Fetcher, shared SharedCache, sources map[string]string, opts StoreOptions, logger *zap.Logger) *Store {
	configured := make(map[string]string, len(sources))
	for name, location := range sources {
		if location != "" {
			configured[name] = location
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		fetcher: fetcher,
		shared:  shared,
		sources: configured,
		opts:    opts,
		logger:  logger,
		cache:   make(map[string][]byte),
	}
}

// Has reports whether name has a configured source or cached bytes.
func (s *Store) Has(name string) bool {
	if _, ok := s.sources[name]; ok {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.cache[name]
	return ok
}

// Put seeds the cache, e.g. with bundled bytes or in tests.
func (s *Store) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[name] = data
}

func (s *Store) cached(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.cache[name]
	return data, ok
}

// Get returns the bytes of a named asset, fetching them on first use. A fetch
// that exceeds the fetch timeout fails with entity.ErrAssetFetchTimeout.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if data, ok := s.cached(name); ok {
		return data, nil
	}

	v, err, shared := s.group.Do(name, func() (interface{}, error) {
		if data, ok := s.cached(name); ok {
			return data, nil
		}
		return s.load(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Asset fetch shared", zap.String("asset", name))
	}
	return v.([]byte), nil
}

func (s *Store) load(ctx context.Context, name string) ([]byte, error) {
	location, ok := s.sources[name]
	if !ok {
		return nil, fmt.Errorf("asset %q is not configured", name)
	}

	// The fetch is shared by every caller waiting on it, so one caller's
	// cancellation must not fail the others.
	fetchCtx := context.WithoutCancel(ctx)
	if s.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(fetchCtx, s.opts.FetchTimeout)
		defer cancel()
	}

	key := s.opts.KeyPrefix + name
	if s.shared != nil {
		if data, err := s.shared.GetBytes(fetchCtx, key); err == nil && len(data) > 0 {
			s.Put(name, data)
			s.logger.Info("Asset loaded from shared cache", zap.String("asset", name), zap.Int("bytes", len(data)))
			return data, nil
		}
	}

	startTime := time.Now()
	data, err := s.fetcher.Fetch(fetchCtx, location)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s after %s", entity.ErrAssetFetchTimeout, name, s.opts.FetchTimeout)
		}
		return nil, fmt.Errorf("failed to fetch asset %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to fetch asset %s: empty response", name)
	}

	s.Put(name, data)
	s.logger.Info("Asset fetched",
		zap.String("asset", name),
		zap.String("location", location),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(startTime)),
	)

	if s.shared != nil {
		if err := s.shared.SetBytes(fetchCtx, key, data, s.opts.SharedTTL); err != nil {
			s.logger.Warn("Failed to store asset in shared cache", zap.String("asset", name), zap.Error(err))
		}
	}
	return data, nil
}

// Warm fetches every configured asset. Failures are joined; assets that did
// load stay cached.
func (s *Store) Warm(ctx context.Context) error {
	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if _, err := s.Get(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Emblem returns the default emblem, or nil when none is configured.
func (s *Store) Emblem(ctx context.Context) ([]byte, error) {
	if !s.Has(EmblemAsset) {
		return nil, nil
	}
	return s.Get(ctx, EmblemAsset)
}

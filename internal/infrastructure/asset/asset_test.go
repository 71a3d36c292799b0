package asset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"saraban-stamp/internal/domain/entity"
)

type countingFetcher struct {
	calls atomic.Int32
	data  map[string][]byte
}

func (f *countingFetcher) Fetch(_ context.Context, location string) ([]byte, error) {
	f.calls.Add(1)
	data, ok := f.data[location]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

type memoryShared struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memoryShared) GetBytes(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return data, nil
}

func (m *memoryShared) SetBytes(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

var sources = map[string]string{
	FontAsset:   "https://assets.example/font.ttf",
	EmblemAsset: "https://assets.example/garuda.png",
}

func newFetcher() *countingFetcher {
	return &countingFetcher{data: map[string][]byte{
		sources[FontAsset]:   goregular.TTF,
		sources[EmblemAsset]: []byte("png"),
	}}
}

func TestStoreGetCaches(t *testing.T) {
	fetcher := newFetcher()
	store := NewStore(fetcher, nil, sources, StoreOptions{}, nil)

	for i := 0; i < 3; i++ {
		data, err := store.Get(context.Background(), EmblemAsset)
		require.NoError(t, err)
		assert.Equal(t, []byte("png"), data)
	}
	assert.EqualValues(t, 1, fetcher.calls.Load())
}

func TestStoreConcurrentFirstAccessFetchesOnce(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	fetcher := FetcherFunc(func(ctx context.Context, _ string) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("png"), nil
	})
	store := NewStore(fetcher, nil, sources, StoreOptions{}, nil)

	var wg sync.WaitGroup
	results := make([][]byte, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, err := store.Get(context.Background(), EmblemAsset)
			assert.NoError(t, err)
			results[i] = data
		}(i)
	}
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, data := range results {
		assert.Equal(t, []byte("png"), data)
	}
}

func TestStoreFetchTimeout(t *testing.T) {
	fetcher := FetcherFunc(func(ctx context.Context, _ string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	store := NewStore(fetcher, nil, sources, StoreOptions{FetchTimeout: 20 * time.Millisecond}, nil)

	_, err := store.Get(context.Background(), FontAsset)
	assert.ErrorIs(t, err, entity.ErrAssetFetchTimeout)
}

func TestStoreSharedTier(t *testing.T) {
	shared := &memoryShared{data: map[string][]byte{}}
	opts := StoreOptions{KeyPrefix: "test:", SharedTTL: time.Hour}

	first := newFetcher()
	_, err := NewStore(first, shared, sources, opts, nil).Get(context.Background(), EmblemAsset)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), shared.data["test:emblem"])

	second := newFetcher()
	data, err := NewStore(second, shared, sources, opts, nil).Get(context.Background(), EmblemAsset)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
	assert.Zero(t, second.calls.Load())
}

func TestStoreUnknownAndMissing(t *testing.T) {
	store := NewStore(newFetcher(), nil, map[string]string{FontAsset: "https://assets.example/other.ttf", EmblemAsset: ""}, StoreOptions{}, nil)

	_, err := store.Get(context.Background(), "seal")
	assert.ErrorContains(t, err, "not configured")

	_, err = store.Get(context.Background(), FontAsset)
	assert.ErrorContains(t, err, "not found")

	emblem, err := store.Emblem(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, emblem)
}

func TestStorePut(t *testing.T) {
	fetcher := newFetcher()
	store := NewStore(fetcher, nil, nil, StoreOptions{}, nil)
	store.Put(EmblemAsset, []byte("bundled"))

	data, err := store.Emblem(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("bundled"), data)
	assert.Zero(t, fetcher.calls.Load())
}

func TestStoreWarm(t *testing.T) {
	fetcher := newFetcher()
	store := NewStore(fetcher, nil, sources, StoreOptions{}, nil)
	require.NoError(t, store.Warm(context.Background()))
	assert.EqualValues(t, 2, fetcher.calls.Load())

	broken := NewStore(newFetcher(), nil, map[string]string{
		FontAsset:   "https://assets.example/missing.ttf",
		EmblemAsset: sources[EmblemAsset],
	}, StoreOptions{}, nil)
	assert.Error(t, broken.Warm(context.Background()))
	_, ok := broken.cached(EmblemAsset)
	assert.True(t, ok)
}

func TestFetcherReadsFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emblem.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))

	f := NewFetcher(nil)
	for _, location := range []string{path, "file://" + path} {
		data, err := f.Fetch(context.Background(), location)
		require.NoError(t, err)
		assert.Equal(t, []byte("png"), data)
	}

	_, err := f.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestFontCache(t *testing.T) {
	fetcher := newFetcher()
	cache := NewFontCache(NewStore(fetcher, nil, sources, StoreOptions{}, nil))

	font, err := cache.Font(context.Background())
	require.NoError(t, err)
	again, err := cache.Font(context.Background())
	require.NoError(t, err)
	assert.Same(t, font, again)
	assert.Greater(t, font.TextWidth("Hello", 12), 0.0)
}

func TestFontCacheFailures(t *testing.T) {
	t.Run("fetch", func(t *testing.T) {
		cache := NewFontCache(NewStore(newFetcher(), nil, map[string]string{FontAsset: "nowhere"}, StoreOptions{}, nil))
		_, err := cache.Font(context.Background())
		assert.ErrorIs(t, err, entity.ErrFontUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		fetcher := FetcherFunc(func(ctx context.Context, _ string) ([]byte, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
		cache := NewFontCache(NewStore(fetcher, nil, sources, StoreOptions{FetchTimeout: 10 * time.Millisecond}, nil))
		_, err := cache.Font(context.Background())
		assert.ErrorIs(t, err, entity.ErrFontUnavailable)
		assert.ErrorIs(t, err, entity.ErrAssetFetchTimeout)
	})

	t.Run("parse", func(t *testing.T) {
		store := NewStore(newFetcher(), nil, nil, StoreOptions{}, nil)
		store.Put(FontAsset, []byte("not a font"))
		_, err := NewFontCache(store).Font(context.Background())
		assert.ErrorIs(t, err, entity.ErrFontUnavailable)
	})

	t.Run("retries after failure", func(t *testing.T) {
		var calls atomic.Int32
		fetcher := FetcherFunc(func(context.Context, string) ([]byte, error) {
			if calls.Add(1) == 1 {
				return nil, errors.New("connection reset")
			}
			return goregular.TTF, nil
		})
		cache := NewFontCache(NewStore(fetcher, nil, sources, StoreOptions{}, nil))

		_, err := cache.Font(context.Background())
		require.Error(t, err)
		_, err = cache.Font(context.Background())
		assert.NoError(t, err)
	})
}

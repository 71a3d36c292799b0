package asset

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"saraban-stamp/internal/domain/entity"
	"saraban-stamp/internal/engine/fontface"
)

// FontCache parses the font asset once per process.
type FontCache struct {
	store *Store

	mu   sync.Mutex
	font *fontface.Font
}

func NewFontCache(store *Store) *FontCache {
	return &FontCache{store: store}
}

// Font returns the parsed font. Any failure wraps entity.ErrFontUnavailable,
// and also entity.ErrAssetFetchTimeout when the fetch timed out. A failed
// attempt is not cached; the next call tries again.
func (c *FontCache) Font(ctx context.Context) (*fontface.Font, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.font != nil {
		return c.font, nil
	}

	data, err := c.store.Get(ctx, FontAsset)
	if err != nil {
		if errors.Is(err, entity.ErrFontUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", entity.ErrFontUnavailable, err)
	}

	font, err := fontface.Parse(data)
	if err != nil {
		return nil, err
	}
	c.font = font
	return font, nil
}

// Package fontface holds the parsed text font and measures glyph widths for layout.
package fontface

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"saraban-stamp/internal/domain/entity"
)

// Font is a parsed TrueType font together with its raw bytes. The raw bytes are
// embedded into documents; the parsed form answers width queries. A Font is
// safe for concurrent use.
type Font struct {
	name string
	data []byte
	sf   *sfnt.Font
	upem fixed.Int26_6

	mu       sync.RWMutex
	advances map[rune]float64 // advance per rune, in ems
}

// Parse parses TrueType/OpenType bytes. A font that cannot be parsed is as good
// as no font, so the error wraps entity.ErrFontUnavailable.
func Parse(data []byte) (*Font, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse font: %v", entity.ErrFontUnavailable, err)
	}

	var buf sfnt.Buffer
	name, err := sf.Name(&buf, sfnt.NameIDFamily)
	if err != nil {
		name = "unnamed"
	}

	return &Font{
		name:     name,
		data:     data,
		sf:       sf,
		upem:     fixed.I(int(sf.UnitsPerEm())),
		advances: make(map[rune]float64),
	}, nil
}

// Name returns the font family name.
func (f *Font) Name() string {
	return f.name
}

// Bytes returns the font program for embedding.
func (f *Font) Bytes() []byte {
	return f.data
}

// TextWidth returns the advance width of s in points when set at size points.
// Kerning is not applied, matching how the text is drawn.
func (f *Font) TextWidth(s string, size float64) float64 {
	var (
		total float64
		buf   sfnt.Buffer
	)
	for _, r := range s {
		total += f.advance(&buf, r)
	}
	return total * size
}

func (f *Font) advance(buf *sfnt.Buffer, r rune) float64 {
	f.mu.RLock()
	em, ok := f.advances[r]
	f.mu.RUnlock()
	if ok {
		return em
	}

	// Missing glyphs resolve to index 0 (.notdef) and are measured as such.
	idx, err := f.sf.GlyphIndex(buf, r)
	if err == nil {
		var adv fixed.Int26_6
		adv, err = f.sf.GlyphAdvance(buf, idx, f.upem, font.HintingNone)
		if err == nil {
			em = float64(adv) / float64(f.upem)
		}
	}

	f.mu.Lock()
	f.advances[r] = em
	f.mu.Unlock()
	return em
}

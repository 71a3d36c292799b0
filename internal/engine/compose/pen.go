// Package compose synthesizes whole documents from structured data: the leave
// request form and the multi-page leave summary report.
package compose

import (
	"go.uber.org/zap"

	"saraban-stamp/internal/engine/textlayout"
	"saraban-stamp/internal/infrastructure/document"
)

// Env carries what every composer needs besides the request itself.
type Env struct {
	Measurer textlayout.Measurer
	PageSize document.PageSize
	Ink      document.Color
	Logger   *zap.Logger
}

func (e Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e Env) pageSize() document.PageSize {
	if e.PageSize.Width <= 0 || e.PageSize.Height <= 0 {
		return document.PageSizeA4
	}
	return e.PageSize
}

// embed embeds an optional image and logs, without failing, when it cannot be used.
func (e Env) embed(c document.Canvas, data []byte, what string) document.ImageResult {
	res := c.EmbedImage(data)
	if !res.OK() && res.Supplied() {
		e.logger().Warn("Skipping image that failed to embed",
			zap.String("image", what),
			zap.Error(res.Err),
		)
	}
	return res
}

// pen draws text at one size and color on a surface.
type pen struct {
	s    document.Surface
	m    textlayout.Measurer
	ink  document.Color
	size float64
}

func (p pen) withSize(size float64) pen {
	p.size = size
	return p
}

func (p pen) width(text string) float64 {
	return p.m.TextWidth(text, p.size)
}

func (p pen) left(x, y float64, text string) {
	p.s.Text(x, y, p.size, p.ink, text)
}

func (p pen) right(xRight, y float64, text string) {
	p.s.Text(xRight-p.width(text), y, p.size, p.ink, text)
}

// center centers text horizontally on cx.
func (p pen) center(cx, y float64, text string) {
	p.s.Text(cx-p.width(text)/2, y, p.size, p.ink, text)
}

// fit draws text left-aligned, shrinking it until it fits width.
func (p pen) fit(x, y, width float64, text string) {
	size := p.size
	for size > 8 && p.m.TextWidth(text, size) > width {
		size -= 0.5
	}
	p.s.Text(x, y, size, p.ink, text)
}

// lines draws pre-wrapped lines from baseline y and returns the baseline after
// the last one. The first line is shifted right by indent.
func (p pen) lines(x, y, indent, lineHeight float64, lines []string) float64 {
	for i, line := range lines {
		lx := x
		if i == 0 {
			lx += indent
		}
		p.left(lx, y, line)
		y += lineHeight
	}
	return y
}

// signature draws an image fitted into maxW x maxH, centered on cx with its
// bottom edge at bottom, raised by yOffset. It reports whether anything was drawn.
func signature(s document.Surface, img document.ImageResult, cx, bottom, maxW, maxH, scale, yOffset float64) bool {
	if !img.OK() {
		return false
	}
	if scale <= 0 {
		scale = 1
	}
	w, h := img.Image.Fit(maxW*scale, maxH*scale)
	s.Image(img.Image, cx-w/2, bottom-h-yOffset, w, h)
	return true
}

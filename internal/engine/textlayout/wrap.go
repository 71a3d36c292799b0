// Package textlayout breaks text into lines that fit a given width.
//
// Layout is a pure function of its inputs: it measures through a Measurer and
// never touches a drawing surface, so geometry can be computed before anything
// is drawn.
package textlayout

import "strings"

// Measurer reports how wide s is when set at size points.
type Measurer interface {
	TextWidth(s string, size float64) float64
}

// Wrap breaks text into lines no wider than maxWidth using the Thai (cluster)
// strategy. Embedded "\n" are hard breaks. A unit wider than maxWidth on its
// own is still placed, alone on its line.
func Wrap(text string, maxWidth, size float64, m Measurer) []string {
	return WrapWith(Clusters, text, maxWidth, maxWidth, size, m)
}

// WrapIndented wraps a paragraph whose first line is narrower (firstWidth)
// than the following ones (width), as with a first-line indent.
func WrapIndented(text string, firstWidth, width, size float64, m Measurer) []string {
	return WrapWith(Clusters, text, firstWidth, width, size, m)
}

// WrapWith wraps text with an explicit strategy. The very first line is limited
// to firstWidth and every other line to width.
func WrapWith(s Strategy, text string, firstWidth, width, size float64, m Measurer) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	limit := firstWidth
	for _, segment := range strings.Split(text, "\n") {
		if segment == "" {
			lines = append(lines, "")
			limit = width
			continue
		}
		lines = append(lines, wrapSegment(s.Units(segment), limit, width, size, m)...)
		limit = width
	}
	return lines
}

// wrapSegment accumulates units while the line stays narrower than the limit.
// On overflow the line is finalized and the overflowing unit starts the next
// one. A multi-cluster unit that cannot fit even an empty line is broken into
// clusters.
func wrapSegment(units []string, first, rest, size float64, m Measurer) []string {
	var (
		lines []string
		cur   string
	)
	limit := first
	queue := units
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		if m.TextWidth(cur+u, size) < limit {
			cur += u
			continue
		}
		if cur == "" {
			if parts := clusters(u); len(parts) > 1 {
				queue = append(parts, queue...)
				continue
			}
			// A single cluster wider than the line is placed on its own.
			cur = u
			continue
		}

		lines = append(lines, cur)
		cur = ""
		limit = rest
		queue = append([]string{u}, queue...)
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// Height returns the vertical space taken by n lines at lineHeight.
func Height(n int, lineHeight float64) float64 {
	return float64(n) * lineHeight
}

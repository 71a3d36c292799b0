package stamp

import "saraban-stamp/internal/infrastructure/document"

// Style is the ink and box appearance shared by all stamps.
type Style struct {
	Ink         document.Color
	Border      document.Color
	BorderWidth float64
	Fill        *document.Color
	FontSize    float64
}

// DefaultStyle is the blue rubber-stamp look used by registry offices.
func DefaultStyle() Style {
	fill := document.White
	return Style{
		Ink:         document.Color{R: 0, G: 32, B: 160},
		Border:      document.Color{R: 0, G: 32, B: 160},
		BorderWidth: 1,
		Fill:        &fill,
		FontSize:    12,
	}
}

func (s Style) box() document.BoxStyle {
	return document.BoxStyle{Border: s.Border, BorderWidth: s.BorderWidth, Fill: s.Fill}
}

// Box is an axis-aligned rectangle in points, top-left origin.
type Box struct {
	X, Y, Width, Height float64
}

func (b Box) Right() float64  { return b.X + b.Width }
func (b Box) Bottom() float64 { return b.Y + b.Height }

// CenterX is the x at which text of width w is horizontally centered in the box.
func (b Box) CenterX(w float64) float64 {
	return b.X + (b.Width-w)/2
}

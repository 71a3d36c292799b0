package document

// PageSize is a page extent in points (1/72 inch).
type PageSize struct {
	Width  float64
	Height float64
}

var (
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89}
	PageSizeLetter = PageSize{Width: 612, Height: 792}
)

// PageSizeByName maps a configured page size name to its extent; unknown names give A4.
func PageSizeByName(name string) PageSize {
	switch name {
	case "letter", "Letter", "LETTER":
		return PageSizeLetter
	default:
		return PageSizeA4
	}
}

// Color is an RGB color with 0-255 components.
type Color struct {
	R, G, B int
}

var (
	Black = Color{}
	White = Color{R: 255, G: 255, B: 255}
)

// BoxStyle describes how a rectangle is stroked and filled.
type BoxStyle struct {
	Border      Color
	BorderWidth float64
	Fill        *Color // nil leaves the interior transparent
}

// Surface is a drawing target. Coordinates are in points with the origin at the
// top-left corner of the page; y grows downward and text y is the baseline.
type Surface interface {
	Size() PageSize
	Text(x, y, size float64, color Color, s string)
	Rect(x, y, w, h float64, style BoxStyle)
	Line(x1, y1, x2, y2, width float64, color Color)
	Image(img Image, x, y, w, h float64)
}

// Canvas creates pages and embeds images for composers that produce whole documents.
type Canvas interface {
	AddPage(size PageSize) Surface
	EmbedImage(data []byte) ImageResult
}

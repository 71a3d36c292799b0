package stamp

import (
	"saraban-stamp/internal/engine/textlayout"
	"saraban-stamp/internal/infrastructure/document"
)

const (
	ReceiveWidth  = 180.0
	ReceiveHeight = 78.0
	ReceiveMargin = 18.0

	receiveLineHeight = 15.0
	receivePadding    = 6.0
	receiveLogoSize   = 16.0
	receiveLogoGap    = 4.0
	receiveMinFont    = 8.0
)

// ReceiveContent is the already formatted text of a registry-number stamp.
type ReceiveContent struct {
	OrgName        string
	RegistryNumber string
	Date           string
	Time           string
	Logo           document.ImageResult
}

// ReceiveBox places the registry stamp in the top-right corner of a page.
func ReceiveBox(page document.PageSize) Box {
	return Box{
		X:      page.Width - ReceiveMargin - ReceiveWidth,
		Y:      ReceiveMargin,
		Width:  ReceiveWidth,
		Height: ReceiveHeight,
	}
}

// DrawReceiveNumber draws the registry-number stamp: organization (with its
// logo when it embedded), registry number, date and time, one per line. Each
// line is shrunk on its own to stay inside the box.
func DrawReceiveNumber(s document.Surface, m textlayout.Measurer, style Style, c ReceiveContent) Box {
	box := ReceiveBox(s.Size())
	s.Rect(box.X, box.Y, box.Width, box.Height, style.box())

	left := box.X + receivePadding
	baseline := box.Y + receivePadding + style.FontSize

	nameX := left
	if c.Logo.OK() {
		w, h := c.Logo.Image.Fit(receiveLogoSize, receiveLogoSize)
		s.Image(c.Logo.Image, left, baseline-style.FontSize+(receiveLogoSize-h)/2-2, w, h)
		nameX = left + receiveLogoSize + receiveLogoGap
	}
	nameSize := fitSize(c.OrgName, box.Right()-receivePadding-nameX, style.FontSize, m)
	s.Text(nameX, baseline, nameSize, style.Ink, c.OrgName)

	for _, line := range []string{
		"เลขรับที่ " + c.RegistryNumber,
		"วันที่ " + c.Date,
		"เวลา " + c.Time + " น.",
	} {
		baseline += receiveLineHeight
		s.Text(left, baseline, fitSize(line, box.Right()-receivePadding-left, style.FontSize, m), style.Ink, line)
	}
	return box
}

// fitSize shrinks size in half-point steps until text fits width, stopping at
// receiveMinFont.
func fitSize(text string, width, size float64, m textlayout.Measurer) float64 {
	for size > receiveMinFont && m.TextWidth(text, size) > width {
		size -= 0.5
	}
	return size
}

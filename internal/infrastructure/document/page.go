package document

import "github.com/go-pdf/fpdf"

// Page is one page of a Document and the Surface renderers draw on.
type Page struct {
	doc    *Document
	number int
	size   PageSize
}

// Number is the 1-based page index.
func (p *Page) Number() int {
	return p.number
}

func (p *Page) Size() PageSize {
	return p.size
}

// activate points fpdf at this page; every drawing call goes through it so that
// pages can be revisited in any order.
func (p *Page) activate() {
	p.doc.pdf.SetPage(p.number)
}

func (p *Page) Text(x, y, size float64, color Color, s string) {
	if s == "" {
		return
	}
	pdf := p.doc.pdf
	p.activate()
	pdf.SetFontSize(size)
	pdf.SetTextColor(color.R, color.G, color.B)
	pdf.Text(x, y, s)
}

func (p *Page) Rect(x, y, w, h float64, style BoxStyle) {
	pdf := p.doc.pdf
	p.activate()

	op := ""
	if style.Fill != nil {
		pdf.SetFillColor(style.Fill.R, style.Fill.G, style.Fill.B)
		op = "F"
	}
	if style.BorderWidth > 0 {
		pdf.SetDrawColor(style.Border.R, style.Border.G, style.Border.B)
		pdf.SetLineWidth(style.BorderWidth)
		op += "D"
	}
	if op == "" {
		return
	}
	pdf.Rect(x, y, w, h, op)
}

func (p *Page) Line(x1, y1, x2, y2, width float64, color Color) {
	pdf := p.doc.pdf
	p.activate()
	pdf.SetDrawColor(color.R, color.G, color.B)
	pdf.SetLineWidth(width)
	pdf.Line(x1, y1, x2, y2)
}

func (p *Page) Image(img Image, x, y, w, h float64) {
	if img.Name == "" || w <= 0 || h <= 0 {
		return
	}
	p.activate()
	p.doc.pdf.ImageOptions(img.Name, x, y, w, h, false, fpdf.ImageOptions{}, 0, "")
}

// Checkbox draws a square box of the given side with its top-left corner at
// (x, y), crossed when checked.
func Checkbox(s Surface, x, y, side float64, checked bool, color Color) {
	s.Rect(x, y, side, side, BoxStyle{Border: color, BorderWidth: 0.8})
	if !checked {
		return
	}
	inset := side * 0.2
	s.Line(x+inset, y+inset, x+side-inset, y+side-inset, 1, color)
	s.Line(x+inset, y+side-inset, x+side-inset, y+inset, 1, color)
}

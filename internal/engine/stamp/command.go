package stamp

import (
	"fmt"

	"saraban-stamp/internal/domain/entity"
	"saraban-stamp/internal/engine/textlayout"
	"saraban-stamp/internal/infrastructure/document"
)

const (
	CommandWidth     = 220.0
	CommandMinHeight = 110.0
	CommandMargin    = 36.0

	commandLineHeight    = 14.0
	commandPadding       = 16.0 // split evenly above and below the content
	signatureBlockHeight = 72.0
	signatureMaxWidth    = 100.0
	signatureMaxHeight   = 32.0
	signerLineHeight     = 13.0
	commandMinFont       = 8.0
)

// CommandContent is the already formatted signer block of a command stamp.
type CommandContent struct {
	Date             string
	SignerTitle      string
	SignerName       string
	Signature        document.ImageResult
	SignatureScale   float64
	SignatureYOffset float64
}

// CommandLayout is the geometry of a command stamp computed before drawing.
type CommandLayout struct {
	Box        Box
	Lines      []string
	FontSize   float64
	LineHeight float64
}

// CommandHeight is the box height needed for the given number of command lines
// at the default line height.
func CommandHeight(lines int) float64 {
	return commandHeight(lines, commandLineHeight)
}

func commandHeight(lines int, lineHeight float64) float64 {
	h := float64(lines)*lineHeight + signatureBlockHeight + commandPadding
	if h < CommandMinHeight {
		return CommandMinHeight
	}
	return h
}

// LayoutCommand wraps the command text and anchors the box to the bottom-right
// corner for AlignRight or the bottom-left corner for AlignLeft. Text too long
// for the page is set smaller, down to commandMinFont; past that the command
// is rejected with entity.ErrInvalidRequest.
func LayoutCommand(page document.PageSize, text string, align entity.Alignment, fontSize float64, m textlayout.Measurer) (CommandLayout, error) {
	maxHeight := page.Height - 2*CommandMargin

	var (
		lines      []string
		height     float64
		lineHeight float64
	)
	for size := fontSize; ; size -= 0.5 {
		lineHeight = commandLineHeight * size / fontSize
		lines = textlayout.Wrap(text, CommandWidth-commandPadding, size, m)
		height = commandHeight(len(lines), lineHeight)
		if height <= maxHeight {
			fontSize = size
			break
		}
		if size-0.5 < commandMinFont {
			return CommandLayout{}, fmt.Errorf("%w: command text needs %d lines, more than the page holds",
				entity.ErrInvalidRequest, len(lines))
		}
	}

	x := page.Width - CommandMargin - CommandWidth
	if align == entity.AlignLeft {
		x = CommandMargin
	}
	return CommandLayout{
		Box: Box{
			X:      x,
			Y:      page.Height - CommandMargin - height,
			Width:  CommandWidth,
			Height: height,
		},
		Lines:      lines,
		FontSize:   fontSize,
		LineHeight: lineHeight,
	}, nil
}

// DrawCommand draws a laid-out command stamp: the command lines from the top,
// then the signer block centered at the bottom of the box.
func DrawCommand(s document.Surface, m textlayout.Measurer, style Style, l CommandLayout, c CommandContent) {
	box := l.Box
	s.Rect(box.X, box.Y, box.Width, box.Height, style.box())

	pad := commandPadding / 2
	baseline := box.Y + pad + l.FontSize
	lineHeight := l.LineHeight
	if lineHeight <= 0 {
		lineHeight = commandLineHeight
	}
	for _, line := range l.Lines {
		s.Text(box.X+pad, baseline, l.FontSize, style.Ink, line)
		baseline += lineHeight
	}

	// Signer block, top to bottom: signature zone, name, title, date.
	block := box.Bottom() - pad - signatureBlockHeight
	sigBottom := block + signatureMaxHeight
	centered := func(y float64, text string) {
		if text == "" {
			return
		}
		s.Text(box.CenterX(m.TextWidth(text, l.FontSize)), y, l.FontSize, style.Ink, text)
	}
	centered(sigBottom+3*signerLineHeight, c.Date)
	centered(sigBottom+2*signerLineHeight, c.SignerTitle)
	if c.SignerName != "" {
		centered(sigBottom+signerLineHeight, "("+c.SignerName+")")
	}

	if !c.Signature.OK() {
		return
	}
	scale := c.SignatureScale
	if scale <= 0 {
		scale = 1
	}
	w, h := c.Signature.Image.Fit(signatureMaxWidth*scale, signatureMaxHeight*scale)
	s.Image(c.Signature.Image, box.CenterX(w), sigBottom-h-c.SignatureYOffset, w, h)
}

package document

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
	"go.uber.org/zap"

	"saraban-stamp/internal/domain/entity"
)

const (
	fontFamily = "body"
	producer   = "saraban-stamp"
)

// Font supplies the TrueType program embedded for all text.
type Font interface {
	Bytes() []byte
}

// Options configures a new document.
type Options struct {
	Font   Font
	Now    time.Time // stamped as creation and modification date; zero means time.Now
	Logger *zap.Logger
}

// Document is a PDF being stamped or composed. It is not safe for concurrent use.
type Document struct {
	pdf    *fpdf.Fpdf
	sizes  []PageSize
	images int
	logger *zap.Logger
	out    []byte
}

// Open imports every page of src onto a page of identical size so that stamps
// can be drawn over the original content.
func Open(src []byte, opts Options) (doc *Document, err error) {
	if !looksLikePDF(src) {
		return nil, fmt.Errorf("%w: missing PDF header", entity.ErrCorruptDocument)
	}

	doc, err = newDocument(PageSizeA4, opts)
	if err != nil {
		return nil, err
	}

	// gofpdi reports parse failures by panicking.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: %v", entity.ErrCorruptDocument, r)
		}
	}()

	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(src))
	first := importer.ImportPageFromStream(doc.pdf, &rs, 1, "/MediaBox")
	boxes := importer.GetPageSizes()
	if len(boxes) == 0 {
		return nil, fmt.Errorf("%w: no pages", entity.ErrCorruptDocument)
	}

	for n := 1; n <= len(boxes); n++ {
		tpl := first
		if n > 1 {
			tpl = importer.ImportPageFromStream(doc.pdf, &rs, n, "/MediaBox")
		}
		box := boxes[n]["/MediaBox"]
		size := PageSize{Width: box["w"], Height: box["h"]}
		if size.Width <= 0 || size.Height <= 0 {
			return nil, fmt.Errorf("%w: page %d has no media box", entity.ErrCorruptDocument, n)
		}
		doc.addPage(size)
		importer.UseImportedTemplate(doc.pdf, tpl, 0, 0, size.Width, size.Height)
	}

	if doc.pdf.Err() {
		return nil, fmt.Errorf("%w: %v", entity.ErrCorruptDocument, doc.pdf.Error())
	}

	doc.logger.Debug("Document opened",
		zap.Int("pages", doc.PageCount()),
		zap.Int("source_bytes", len(src)),
	)
	return doc, nil
}

// New starts a document without pages, for composers that add their own.
func New(opts Options) (*Document, error) {
	return newDocument(PageSizeA4, opts)
}

// CreateBlank starts a document with one empty page of the given size.
func CreateBlank(size PageSize, opts Options) (*Document, error) {
	doc, err := newDocument(size, opts)
	if err != nil {
		return nil, err
	}
	doc.addPage(size)
	return doc, nil
}

func newDocument(size PageSize, opts Options) (*Document, error) {
	if opts.Font == nil || len(opts.Font.Bytes()) == 0 {
		return nil, fmt.Errorf("%w: no font supplied", entity.ErrFontUnavailable)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetCatalogSort(true)
	pdf.SetCreator(producer, true)

	pdf.AddUTF8FontFromBytes(fontFamily, "", opts.Font.Bytes())
	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", entity.ErrFontUnavailable, pdf.Error())
	}
	pdf.SetFont(fontFamily, "", 12)

	return &Document{pdf: pdf, logger: logger}, nil
}

func looksLikePDF(src []byte) bool {
	head := src
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(head, []byte("%PDF-"))
}

func (d *Document) addPage(size PageSize) *Page {
	d.pdf.AddPageFormat("P", fpdf.SizeType{Wd: size.Width, Ht: size.Height})
	d.sizes = append(d.sizes, size)
	return &Page{doc: d, number: len(d.sizes), size: size}
}

// AddPage appends an empty page.
func (d *Document) AddPage(size PageSize) Surface {
	return d.addPage(size)
}

// Page returns page n, clamped to [1, PageCount], or nil for a document
// without pages.
func (d *Document) Page(n int) *Page {
	if len(d.sizes) == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > len(d.sizes) {
		n = len(d.sizes)
	}
	return &Page{doc: d, number: n, size: d.sizes[n-1]}
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.sizes)
}

// SetMetadata records the document title and subject in the info dictionary.
func (d *Document) SetMetadata(title, subject string) {
	d.pdf.SetTitle(title, true)
	d.pdf.SetSubject(subject, true)
}

// Serialize writes the finished document. It may be called more than once; the
// document cannot be drawn on after the first call.
func (d *Document) Serialize() ([]byte, error) {
	if d.out != nil {
		return d.out, nil
	}
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	d.out = buf.Bytes()
	return d.out, nil
}

package document

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/font/gofont/goregular"

	"saraban-stamp/internal/domain/entity"
)

type testFont []byte

func (f testFont) Bytes() []byte { return f }

var clock = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{Font: testFont(goregular.TTF), Now: clock}
}

func testImage(t *testing.T, w, h int) image.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{B: 255, A: 255})
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCreateBlank(t *testing.T) {
	doc, err := CreateBlank(PageSizeA4, testOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, doc.PageCount())
	assert.Equal(t, PageSizeA4, doc.Page(1).Size())

	doc.Page(1).Text(72, 72, 14, Black, "Hello")
	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	again, err := doc.Serialize()
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestCreateBlankWithoutFont(t *testing.T) {
	_, err := CreateBlank(PageSizeA4, Options{})
	assert.ErrorIs(t, err, entity.ErrFontUnavailable)

	_, err = CreateBlank(PageSizeA4, Options{Font: testFont("not a font")})
	assert.ErrorIs(t, err, entity.ErrFontUnavailable)
}

func TestOpenRejectsGarbage(t *testing.T) {
	for name, src := range map[string][]byte{
		"empty":     nil,
		"text":      []byte("hello world"),
		"truncated": []byte("%PDF-1.4\n1 0 obj\n<<"),
	} {
		t.Run(name, func(t *testing.T) {
			doc, err := Open(src, testOptions())
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, entity.ErrCorruptDocument)
		})
	}
}

func TestOpenPreservesPages(t *testing.T) {
	src, err := CreateBlank(PageSizeA4, testOptions())
	require.NoError(t, err)
	src.AddPage(PageSizeLetter).Text(72, 72, 12, Black, "second")
	raw, err := src.Serialize()
	require.NoError(t, err)

	doc, err := Open(raw, testOptions())
	require.NoError(t, err)
	require.Equal(t, 2, doc.PageCount())

	assert.InDelta(t, PageSizeA4.Width, doc.Page(1).Size().Width, 0.01)
	assert.InDelta(t, PageSizeA4.Height, doc.Page(1).Size().Height, 0.01)
	assert.InDelta(t, PageSizeLetter.Width, doc.Page(2).Size().Width, 0.01)
	assert.InDelta(t, PageSizeLetter.Height, doc.Page(2).Size().Height, 0.01)

	doc.Page(2).Rect(10, 10, 50, 20, BoxStyle{Border: Black, BorderWidth: 1})
	out, err := doc.Serialize()
	require.NoError(t, err)

	reopened, err := Open(out, testOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.PageCount())
}

func TestPageClamping(t *testing.T) {
	doc, err := CreateBlank(PageSizeA4, testOptions())
	require.NoError(t, err)
	doc.AddPage(PageSizeA4)

	assert.Equal(t, 1, doc.Page(0).Number())
	assert.Equal(t, 1, doc.Page(-3).Number())
	assert.Equal(t, 2, doc.Page(2).Number())
	assert.Equal(t, 2, doc.Page(99).Number())
}

func TestSerializeIsDeterministic(t *testing.T) {
	render := func() []byte {
		doc, err := CreateBlank(PageSizeA4, testOptions())
		require.NoError(t, err)
		doc.SetMetadata("title", "subject")
		page := doc.Page(1)
		page.Text(50, 50, 16, Color{B: 255}, "Registry 42")
		page.Line(50, 60, 200, 60, 1, Black)
		out, err := doc.Serialize()
		require.NoError(t, err)
		return out
	}
	assert.Equal(t, render(), render())
}

func TestEmbedImage(t *testing.T) {
	doc, err := CreateBlank(PageSizeA4, testOptions())
	require.NoError(t, err)

	t.Run("png", func(t *testing.T) {
		res := doc.EmbedImage(encodePNG(t, testImage(t, 40, 20)))
		require.True(t, res.OK(), "%v", res.Err)
		assert.Equal(t, 40.0, res.Image.Width)
		assert.Equal(t, 20.0, res.Image.Height)
		doc.Page(1).Image(res.Image, 10, 10, 40, 20)
	})

	t.Run("bmp is converted", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, bmp.Encode(&buf, testImage(t, 8, 8)))
		res := doc.EmbedImage(buf.Bytes())
		require.True(t, res.OK(), "%v", res.Err)
		assert.Equal(t, 8.0, res.Image.Width)
	})

	t.Run("garbage fails softly", func(t *testing.T) {
		res := doc.EmbedImage([]byte("not an image"))
		assert.False(t, res.OK())
		assert.True(t, res.Supplied())
		assert.ErrorIs(t, res.Err, entity.ErrImageEmbed)
	})

	t.Run("missing", func(t *testing.T) {
		res := doc.EmbedImage(nil)
		assert.False(t, res.OK())
		assert.False(t, res.Supplied())
	})

	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestImageFit(t *testing.T) {
	img := Image{Width: 200, Height: 50}

	w, h := img.Fit(100, 32)
	assert.InDelta(t, 100, w, 1e-9)
	assert.InDelta(t, 25, h, 1e-9)

	w, h = img.Fit(300, 10)
	assert.InDelta(t, 40, w, 1e-9)
	assert.InDelta(t, 10, h, 1e-9)

	w, h = Image{}.Fit(100, 100)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

type recorder struct {
	rects int
	lines int
}

func (r *recorder) Size() PageSize { return PageSizeA4 }
func (r *recorder) Text(_, _, _ float64, _ Color, _ string) {}
func (r *recorder) Rect(_, _, _, _ float64, _ BoxStyle) { r.rects++ }
func (r *recorder) Line(_, _, _, _, _ float64, _ Color) { r.lines++ }
func (r *recorder) Image(_ Image, _, _, _, _ float64) {}

func TestCheckbox(t *testing.T) {
	var empty, checked recorder
	Checkbox(&empty, 0, 0, 10, false, Black)
	Checkbox(&checked, 0, 0, 10, true, Black)

	assert.Equal(t, 1, empty.rects)
	assert.Zero(t, empty.lines)
	assert.Equal(t, 1, checked.rects)
	assert.Equal(t, 2, checked.lines)
}

func TestPageSizeByName(t *testing.T) {
	assert.Equal(t, PageSizeLetter, PageSizeByName("letter"))
	assert.Equal(t, PageSizeA4, PageSizeByName("a4"))
	assert.Equal(t, PageSizeA4, PageSizeByName(""))
}

package document

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/go-pdf/fpdf"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"saraban-stamp/internal/domain/entity"
)

// Image is an embedded raster image. Width and Height are the intrinsic pixel
// dimensions and only matter for the aspect ratio.
type Image struct {
	Name   string
	Width  float64
	Height float64
}

// Fit scales the image into a maxW x maxH box keeping its aspect ratio.
func (img Image) Fit(maxW, maxH float64) (w, h float64) {
	if img.Width <= 0 || img.Height <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	scale := maxW / img.Width
	if s := maxH / img.Height; s < scale {
		scale = s
	}
	return img.Width * scale, img.Height * scale
}

// ImageResult is the outcome of embedding an optional image. Renderers draw the
// image only when OK reports true; a failed embed never aborts a render.
type ImageResult struct {
	Image Image
	Err   error
}

// OK reports whether the image embedded successfully.
func (r ImageResult) OK() bool {
	return r.Err == nil
}

// ErrNoImage marks an image that was simply not supplied.
var ErrNoImage = fmt.Errorf("%w: no image supplied", entity.ErrImageEmbed)

// NoImage is the result for an image the caller did not supply.
func NoImage() ImageResult {
	return ImageResult{Err: ErrNoImage}
}

// Supplied reports whether the caller supplied an image at all, as opposed to
// supplying one that failed to embed.
func (r ImageResult) Supplied() bool {
	return !errors.Is(r.Err, ErrNoImage)
}

// EmbedImage registers a raster image with the document. PNG, JPEG and GIF are
// embedded as is; WebP and BMP are converted to PNG first. Any failure is
// reported in the result, never as a fatal error.
func (d *Document) EmbedImage(data []byte) ImageResult {
	if len(data) == 0 {
		return NoImage()
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageResult{Err: fmt.Errorf("%w: unrecognized image: %v", entity.ErrImageEmbed, err)}
	}

	payload, imageType := data, ""
	switch format {
	case "png":
		imageType = "PNG"
	case "jpeg":
		imageType = "JPG"
	case "gif":
		imageType = "GIF"
	default:
		if payload, err = toPNG(data); err != nil {
			return ImageResult{Err: fmt.Errorf("%w: failed to convert %s: %v", entity.ErrImageEmbed, format, err)}
		}
		imageType = "PNG"
	}

	d.images++
	name := fmt.Sprintf("img%d", d.images)
	if err := d.register(name, imageType, payload); err != nil {
		// fpdf rejects some valid files (interlaced PNG, CMYK JPEG); a
		// re-encoded PNG is always accepted.
		converted, convErr := toPNG(data)
		if convErr != nil {
			return ImageResult{Err: fmt.Errorf("%w: %v", entity.ErrImageEmbed, err)}
		}
		d.images++
		name = fmt.Sprintf("img%d", d.images)
		if err := d.register(name, "PNG", converted); err != nil {
			return ImageResult{Err: fmt.Errorf("%w: %v", entity.ErrImageEmbed, err)}
		}
	}

	return ImageResult{Image: Image{
		Name:   name,
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
	}}
}

// register hands the image to fpdf and clears fpdf's sticky error on failure so
// the rest of the document keeps rendering.
func (d *Document) register(name, imageType string, payload []byte) error {
	d.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(payload))
	if d.pdf.Err() {
		err := d.pdf.Error()
		d.pdf.ClearError()
		return err
	}
	return nil
}

func toPNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

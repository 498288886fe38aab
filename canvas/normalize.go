package canvas

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedImageFormat = errors.New("unsupported image format")

// MaxSourcePixels bounds the declared size of a decoded image. Headers are
// checked before any pixel buffer is allocated.
const MaxSourcePixels = 4096 * 4096

// Placement describes where a source image ended up on the surface.
type Placement struct {
	Scale  float64
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (p Placement) Rect() image.Rectangle {
	return image.Rect(
		int(math.Round(p.X)),
		int(math.Round(p.Y)),
		int(math.Round(p.X+p.Width)),
		int(math.Round(p.Y+p.Height)),
	)
}

// Fit computes the aspect preserving, centered placement of a w×h image on
// the surface.
func Fit(surfaceWidth, surfaceHeight, w, h int) Placement {
	scale := math.Min(float64(surfaceWidth)/float64(w), float64(surfaceHeight)/float64(h))
	pw := float64(w) * scale
	ph := float64(h) * scale
	return Placement{
		Scale:  scale,
		X:      (float64(surfaceWidth) - pw) / 2,
		Y:      (float64(surfaceHeight) - ph) / 2,
		Width:  pw,
		Height: ph,
	}
}

// DecodeImage decodes PNG, JPEG, GIF, BMP, TIFF and WebP data.
func DecodeImage(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", errors.Wrap(ErrUnsupportedImageFormat, "empty image")
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrapf(ErrUnsupportedImageFormat, "decode: %v", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", errors.Wrap(ErrUnsupportedImageFormat, "zero sized image")
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxSourcePixels {
		return nil, "", errors.Wrapf(ErrUnsupportedImageFormat, "image too large: %dx%d", cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrapf(ErrUnsupportedImageFormat, "decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, "", errors.Wrap(ErrUnsupportedImageFormat, "zero sized image")
	}
	return img, format, nil
}

// PlaceImageCentered decodes data and draws it centered on a cleared
// surface. When decoding fails the surface is left as it was.
func PlaceImageCentered(s *Surface, data []byte) (Placement, error) {
	img, _, err := DecodeImage(data)
	if err != nil {
		return Placement{}, err
	}
	return PlaceCentered(s, img), nil
}

// PlaceCentered draws an already decoded image centered on a cleared
// surface.
func PlaceCentered(s *Surface, img image.Image) Placement {
	b := img.Bounds()
	p := Fit(s.Width(), s.Height(), b.Dx(), b.Dy())
	s.Clear()
	s.PaintImage(img, p.Rect())
	return p
}

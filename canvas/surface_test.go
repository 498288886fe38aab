package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSurface() *Surface {
	return NewSurface(DefaultWidth, DefaultHeight, DefaultStyle())
}

func isBlank(img *image.RGBA) bool {
	for i := 0; i < len(img.Pix); i++ {
		if img.Pix[i] != 255 {
			return false
		}
	}
	return true
}

func TestNewSurfaceIsBackground(t *testing.T) {
	s := newTestSurface()
	assert.Equal(t, 400, s.Width())
	assert.Equal(t, 400, s.Height())
	assert.True(t, isBlank(s.Image()))
}

func TestStrokeCommitsPixels(t *testing.T) {
	s := newTestSurface()

	s.BeginStroke(Point{X: 100, Y: 200})
	s.ExtendStroke(Point{X: 300, Y: 200})

	img := s.Image()
	assert.Equal(t, Ink, img.RGBAAt(200, 200))
	// round caps reach past the end points by half the line width
	assert.Equal(t, Ink, img.RGBAAt(94, 200))
	assert.Equal(t, Background, img.RGBAAt(200, 150))

	assert.True(t, s.EndStroke())
	assert.Equal(t, Ink, s.Image().RGBAAt(200, 200), "ending a stroke keeps its pixels")
}

func TestBeginStrokeWithoutMotionPaintsNothing(t *testing.T) {
	s := newTestSurface()
	s.BeginStroke(Point{X: 50, Y: 50})
	assert.True(t, s.Drawing())
	assert.True(t, s.EndStroke())
	assert.True(t, isBlank(s.Image()))
}

func TestExtendWithoutBeginIsNoop(t *testing.T) {
	s := newTestSurface()
	s.ExtendStroke(Point{X: 10, Y: 10})
	assert.True(t, isBlank(s.Image()))
	assert.False(t, s.EndStroke())
}

func TestBeginAbandonsOpenStroke(t *testing.T) {
	s := newTestSurface()
	s.BeginStroke(Point{X: 20, Y: 20})
	s.BeginStroke(Point{X: 300, Y: 300})
	s.ExtendStroke(Point{X: 300, Y: 350})

	img := s.Image()
	// no segment joins the abandoned path to the new one
	assert.Equal(t, Background, img.RGBAAt(160, 160))
	assert.Equal(t, Ink, img.RGBAAt(300, 325))
}

func TestStrokeOffSurfaceIsClipped(t *testing.T) {
	s := newTestSurface()
	s.BeginStroke(Point{X: -100, Y: 200})
	s.ExtendStroke(Point{X: 500, Y: 200})
	s.EndStroke()

	img := s.Image()
	assert.Equal(t, Ink, img.RGBAAt(0, 200))
	assert.Equal(t, Ink, img.RGBAAt(399, 200))
	assert.Equal(t, Background, img.RGBAAt(0, 100))
	assert.Equal(t, Background, img.RGBAAt(0, 300))
}

func TestClearRepaintsEverything(t *testing.T) {
	s := newTestSurface()
	s.BeginStroke(Point{X: 0, Y: 0})
	s.ExtendStroke(Point{X: 400, Y: 400})
	s.EndStroke()
	require.False(t, isBlank(s.Image()))

	s.Clear()
	assert.True(t, isBlank(s.Image()))
}

func TestPaintImageDoesNotClear(t *testing.T) {
	s := newTestSurface()
	s.BeginStroke(Point{X: 10, Y: 10})
	s.ExtendStroke(Point{X: 20, Y: 10})
	s.EndStroke()

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 0x80
	}
	src.Pix[3], src.Pix[7], src.Pix[11], src.Pix[15] = 255, 255, 255, 255

	s.PaintImage(src, image.Rect(100, 100, 200, 200))

	img := s.Image()
	assert.Equal(t, Ink, img.RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{0x80, 0x80, 0x80, 255}, img.RGBAAt(150, 150))
	assert.Equal(t, Background, img.RGBAAt(250, 250))
}

func TestEncodePNGIsDeterministic(t *testing.T) {
	s := newTestSurface()
	s.Clear()

	a, err := s.EncodePNG()
	require.NoError(t, err)
	b, err := s.EncodePNG()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b))

	decoded, err := png.Decode(bytes.NewReader(a))
	require.NoError(t, err)
	assert.Equal(t, s.Bounds(), decoded.Bounds())
}

func TestDataURLRoundTrip(t *testing.T) {
	s := newTestSurface()
	s.BeginStroke(Point{X: 200, Y: 200})
	s.EndStroke()

	u, err := s.DataURL()
	require.NoError(t, err)
	assert.Contains(t, u, "data:image/png;base64,")

	raw, err := DecodeDataURL(u)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	r, g, b, _ := img.At(200, 200).RGBA()
	assert.Equal(t, []uint32{0, 0, 0}, []uint32{r, g, b})

	_, err = DecodeDataURL("data:image/jpeg;base64,AAAA")
	assert.Error(t, err)
}

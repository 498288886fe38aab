package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/nfnt/resize"
	"golang.org/x/image/vector"
)

const (
	DefaultWidth     = 400
	DefaultHeight    = 400
	DefaultLineWidth = 20

	// number of polygon segments used to approximate a full circle
	capSegments = 32
)

var (
	Background = color.RGBA{255, 255, 255, 255}
	Ink        = color.RGBA{0, 0, 0, 255}
)

// Point is a position in surface-local pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Style is fixed when the surface is built. Caps and joins are always round.
type Style struct {
	Color     color.RGBA
	LineWidth float64
}

func DefaultStyle() Style {
	return Style{Color: Ink, LineWidth: DefaultLineWidth}
}

// Surface is a fixed size raster that strokes and images are committed to
// immediately. It is not safe for concurrent use.
type Surface struct {
	img        *image.RGBA
	background color.RGBA
	style      Style
	ink        *image.Uniform
	ras        *vector.Rasterizer

	open bool
	last Point
}

func NewSurface(width, height int, style Style) *Surface {
	s := &Surface{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: Background,
		style:      style,
		ink:        image.NewUniform(style.Color),
		ras:        vector.NewRasterizer(width, height),
	}
	s.Clear()
	return s
}

func (s *Surface) Width() int  { return s.img.Bounds().Dx() }
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

func (s *Surface) Bounds() image.Rectangle {
	return s.img.Bounds()
}

func (s *Surface) Style() Style {
	return s.style
}

// Image returns a copy of the current buffer.
func (s *Surface) Image() *image.RGBA {
	dup := image.NewRGBA(s.img.Bounds())
	copy(dup.Pix, s.img.Pix)
	return dup
}

// Clear repaints every pixel with the background. An open stroke stays open.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
}

// BeginStroke opens a path at p, abandoning any path that was still open.
// Nothing is painted until the path is extended.
func (s *Surface) BeginStroke(p Point) {
	s.open = true
	s.last = p
}

// ExtendStroke draws a segment from the last point to p. It does nothing
// when no stroke is open.
func (s *Surface) ExtendStroke(p Point) {
	if !s.open {
		return
	}
	s.segment(s.last, p)
	s.last = p
}

// EndStroke closes the path and reports whether one was open.
func (s *Surface) EndStroke() bool {
	was := s.open
	s.open = false
	return was
}

func (s *Surface) Drawing() bool {
	return s.open
}

// PaintImage draws src scaled into r over the current contents.
func (s *Surface) PaintImage(src image.Image, r image.Rectangle) {
	if r.Empty() {
		return
	}
	scaled := resize.Resize(uint(r.Dx()), uint(r.Dy()), src, resize.Bilinear)
	draw.Draw(s.img, r, scaled, scaled.Bounds().Min, draw.Over)
}

// segment fills the capsule around a-b: a rectangle of the line width with
// a half disc on each end, which gives round caps and, between consecutive
// segments, round joins.
func (s *Surface) segment(a, b Point) {
	radius := s.style.LineWidth / 2
	r := image.Rect(
		int(math.Floor(math.Min(a.X, b.X)-radius))-1,
		int(math.Floor(math.Min(a.Y, b.Y)-radius))-1,
		int(math.Ceil(math.Max(a.X, b.X)+radius))+1,
		int(math.Ceil(math.Max(a.Y, b.Y)+radius))+1,
	).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}

	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	s.ras.Reset(r.Dx(), r.Dy())

	angle := math.Atan2(b.Y-a.Y, b.X-a.X)
	half := capSegments / 2
	first := true
	arc := func(c Point, from float64) {
		for i := 0; i <= half; i++ {
			t := from + math.Pi*float64(i)/float64(half)
			x := float32(c.X + radius*math.Cos(t) - ox)
			y := float32(c.Y + radius*math.Sin(t) - oy)
			if first {
				s.ras.MoveTo(x, y)
				first = false
				continue
			}
			s.ras.LineTo(x, y)
		}
	}
	arc(b, angle-math.Pi/2)
	arc(a, angle+math.Pi/2)
	s.ras.ClosePath()

	s.ras.DrawOp = draw.Over
	s.ras.Draw(s.img, r, s.ink, image.Point{})
}

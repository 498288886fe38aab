package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPointer() (*Pointer, *[]int) {
	var counts []int
	p := &Pointer{
		Surface: newTestSurface(),
		Log:     &StrokeLog{},
		Origin:  Point{X: 50, Y: 30},
		Completed: func(n int) {
			counts = append(counts, n)
		},
	}
	return p, &counts
}

func TestPointerCountsWellFormedStrokes(t *testing.T) {
	p, counts := newTestPointer()

	for i := 0; i < 3; i++ {
		p.MouseDown(100, 100)
		p.MouseMove(150, 150)
		p.MouseUp()
	}

	assert.Equal(t, 3, p.Log.Count())
	assert.Equal(t, []int{1, 2, 3}, *counts)
}

func TestPointerEndWithoutOpenStroke(t *testing.T) {
	p, counts := newTestPointer()

	p.MouseUp()
	p.MouseLeave()
	p.TouchEnd()
	assert.Equal(t, 0, p.Log.Count())

	p.MouseDown(60, 60)
	p.MouseLeave()
	// re-entering and releasing must not count the stroke twice
	p.MouseMove(70, 70)
	p.MouseUp()
	assert.Equal(t, 1, p.Log.Count())
	assert.Len(t, *counts, 1)
}

func TestPointerUsesSurfaceLocalCoordinates(t *testing.T) {
	p, _ := newTestPointer()

	p.MouseDown(250, 230)
	p.MouseMove(260, 230)
	p.MouseUp()

	img := p.Surface.Image()
	assert.Equal(t, Ink, img.RGBAAt(200, 200))
	assert.Equal(t, Background, img.RGBAAt(250, 230))
}

func TestPointerTouch(t *testing.T) {
	p, _ := newTestPointer()

	p.TouchStart(nil)
	assert.False(t, p.Surface.Drawing())

	p.TouchStart([]Point{{X: 150, Y: 130}, {X: 0, Y: 0}})
	p.TouchMove([]Point{{X: 250, Y: 130}})
	p.TouchEnd()

	assert.Equal(t, 1, p.Log.Count())
	assert.Equal(t, Ink, p.Surface.Image().RGBAAt(150, 100))
}

func TestPointerStroke(t *testing.T) {
	p, _ := newTestPointer()
	p.Stroke(nil)
	assert.Equal(t, 0, p.Log.Count())

	p.Stroke([]Point{{X: 60, Y: 40}, {X: 160, Y: 40}})
	assert.Equal(t, 1, p.Log.Count())
	assert.False(t, p.Surface.Drawing())

	p.Log.Reset()
	assert.Equal(t, 0, p.Log.Count())
}

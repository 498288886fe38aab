package canvas

// StrokeLog counts completed strokes. The strokes themselves are not kept;
// the count only signals that the surface changed.
type StrokeLog struct {
	count int
}

func (l *StrokeLog) Complete() int {
	l.count++
	return l.count
}

func (l *StrokeLog) Count() int {
	return l.count
}

func (l *StrokeLog) Reset() {
	l.count = 0
}

// Pointer turns mouse and touch events, given in client coordinates, into
// strokes on a surface. Origin is the client position of the surface's top
// left corner.
type Pointer struct {
	Surface *Surface
	Log     *StrokeLog
	Origin  Point

	// Completed is called after each completed stroke with the new count.
	Completed func(count int)
}

func (p *Pointer) local(clientX, clientY float64) Point {
	return Point{X: clientX - p.Origin.X, Y: clientY - p.Origin.Y}
}

func (p *Pointer) MouseDown(clientX, clientY float64) {
	p.Surface.BeginStroke(p.local(clientX, clientY))
}

func (p *Pointer) MouseMove(clientX, clientY float64) {
	if !p.Surface.Drawing() {
		return
	}
	p.Surface.ExtendStroke(p.local(clientX, clientY))
}

func (p *Pointer) MouseUp() {
	p.end()
}

// MouseLeave ends the stroke like MouseUp. Re-entering without a new
// MouseDown does not resume it.
func (p *Pointer) MouseLeave() {
	p.end()
}

// TouchStart uses the first touch only.
func (p *Pointer) TouchStart(touches []Point) {
	if len(touches) == 0 {
		return
	}
	p.MouseDown(touches[0].X, touches[0].Y)
}

func (p *Pointer) TouchMove(touches []Point) {
	if len(touches) == 0 {
		return
	}
	p.MouseMove(touches[0].X, touches[0].Y)
}

func (p *Pointer) TouchEnd() {
	p.end()
}

// Stroke replays a whole gesture: down at the first point, moves through
// the rest, then up.
func (p *Pointer) Stroke(points []Point) {
	if len(points) == 0 {
		return
	}
	p.MouseDown(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		p.MouseMove(pt.X, pt.Y)
	}
	p.MouseUp()
}

func (p *Pointer) end() {
	if !p.Surface.EndStroke() {
		return
	}
	n := p.Log.Complete()
	if p.Completed != nil {
		p.Completed(n)
	}
}

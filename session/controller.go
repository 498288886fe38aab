package session

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/juruen/digitrec/canvas"
	"github.com/juruen/digitrec/config"
	"github.com/juruen/digitrec/hwr"
	"github.com/juruen/digitrec/log"
	"github.com/juruen/digitrec/timeutil"
)

var (
	ErrServiceUnavailable = errors.New("recognition service is not connected")
	ErrPredictionInFlight = errors.New("a prediction is already in progress")
	ErrStaleResponse      = errors.New("surface changed while the prediction was in flight")
	ErrWrongMode          = errors.New("operation not available in this mode")
)

const (
	TriggerStroke = "stroke"
	TriggerUpload = "upload"
)

// Recognizer is the remote classification service.
type Recognizer interface {
	HealthProber
	Predict(ctx context.Context, image string, requestID string) (*hwr.Prediction, error)
}

type Options struct {
	Width       int
	Height      int
	Style       canvas.Style
	StrokeDelay time.Duration
	UploadDelay time.Duration
	Clock       timeutil.Clock

	// Notify receives the outcome of automatic predictions. It is called
	// without the controller lock held.
	Notify func(Notice)
}

func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

func OptionsFromConfig(cfg config.Config) Options {
	style := canvas.DefaultStyle()
	style.LineWidth = cfg.Canvas.LineWidth
	return Options{
		Width:       cfg.Canvas.Width,
		Height:      cfg.Canvas.Height,
		Style:       style,
		StrokeDelay: cfg.Debounce.Stroke,
		UploadDelay: cfg.Debounce.Upload,
		Clock:       timeutil.RealClock{},
	}
}

type flight int

const (
	idle flight = iota
	inFlight
)

// Controller owns one capture session: the surface, its stroke log, the
// mode, the auto-predict arming and the last result. All methods are safe
// for concurrent use; they serialize on a single lock the way UI events,
// timers and I/O completions interleave on one thread.
type Controller struct {
	rec    Recognizer
	health *HealthMonitor
	sched  *Scheduler
	opts   Options

	ctx    context.Context
	cancel context.CancelFunc

	// single-flight gate for predictions from any trigger
	gate *semaphore.Weighted

	mu          sync.Mutex
	surface     *canvas.Surface
	strokes     canvas.StrokeLog
	pointer     *canvas.Pointer
	mode        Mode
	auto        bool
	result      *Result
	upload      *UploadInfo
	sessionID   uuid.UUID
	generation  uint64
	requests    int
	flight      flight
	strokeTimer Handle
	uploadTimer Handle
}

func New(rec Recognizer, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = timeutil.RealClock{}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = canvas.DefaultWidth, canvas.DefaultHeight
	}
	if opts.Style.LineWidth <= 0 {
		opts.Style = canvas.DefaultStyle()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		rec:       rec,
		health:    NewHealthMonitor(rec),
		sched:     NewScheduler(opts.Clock),
		opts:      opts,
		ctx:       ctx,
		cancel:    cancel,
		gate:      semaphore.NewWeighted(1),
		surface:   canvas.NewSurface(opts.Width, opts.Height, opts.Style),
		mode:      Draw,
		sessionID: uuid.New(),
	}
	c.pointer = &canvas.Pointer{
		Surface:   c.surface,
		Log:       &c.strokes,
		Completed: c.strokeCompleted,
	}
	return c
}

// Start issues the one health probe of this session.
func (c *Controller) Start() {
	c.health.Start(c.ctx)
}

func (c *Controller) Health() *HealthMonitor {
	return c.health
}

// Close cancels pending timers and in-flight requests.
func (c *Controller) Close() {
	c.mu.Lock()
	c.cancelTimersLocked()
	c.mu.Unlock()
	c.cancel()
}

// SetOrigin sets the client position of the surface's top left corner used
// to translate pointer coordinates.
func (c *Controller) SetOrigin(p canvas.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pointer.Origin = p
}

// Pointer events only draw in Draw mode.

func (c *Controller) MouseDown(x, y float64) {
	c.inDraw(func() { c.pointer.MouseDown(x, y) })
}

func (c *Controller) MouseMove(x, y float64) {
	c.inDraw(func() { c.pointer.MouseMove(x, y) })
}

func (c *Controller) MouseUp() {
	c.inDraw(c.pointer.MouseUp)
}

func (c *Controller) MouseLeave() {
	c.inDraw(c.pointer.MouseLeave)
}

func (c *Controller) TouchStart(touches []canvas.Point) {
	c.inDraw(func() { c.pointer.TouchStart(touches) })
}

func (c *Controller) TouchMove(touches []canvas.Point) {
	c.inDraw(func() { c.pointer.TouchMove(touches) })
}

func (c *Controller) TouchEnd() {
	c.inDraw(c.pointer.TouchEnd)
}

// Stroke replays a complete gesture in client coordinates.
func (c *Controller) Stroke(points []canvas.Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != Draw {
		return ErrWrongMode
	}
	c.pointer.Stroke(points)
	return nil
}

func (c *Controller) inDraw(f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != Draw {
		return
	}
	f()
}

// strokeCompleted runs with c.mu held. Each completed stroke restarts the
// trailing debounce.
func (c *Controller) strokeCompleted(count int) {
	log.Trace.Printf("session %s: stroke %d completed", c.sessionID, count)
	if !c.auto || c.mode != Draw {
		return
	}
	c.restartDebounceLocked()
}

func (c *Controller) restartDebounceLocked() {
	c.sched.Cancel(c.strokeTimer)
	c.strokeTimer = c.sched.Schedule(c.opts.StrokeDelay, func(h Handle) {
		c.autoPredict(h, &c.strokeTimer, TriggerStroke)
	})
}

// PlaceUpload decodes an uploaded image and centers it on a cleared
// surface. A decode failure leaves the surface untouched.
func (c *Controller) PlaceUpload(name string, data []byte) (canvas.Placement, error) {
	img, format, err := canvas.DecodeImage(data)
	if err != nil {
		return canvas.Placement{}, err
	}
	return c.placeImage(name, format, len(data), img)
}

func (c *Controller) placeImage(name, format string, size int, img image.Image) (canvas.Placement, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Upload {
		return canvas.Placement{}, ErrWrongMode
	}

	p := canvas.PlaceCentered(c.surface, img)
	c.upload = &UploadInfo{Name: name, Format: format, Size: size, Placement: p}
	log.Trace.Printf("session %s: placed %s (%s, %d bytes) at scale %.3f", c.sessionID, name, format, size, p.Scale)

	if c.auto {
		c.sched.Cancel(c.uploadTimer)
		c.uploadTimer = c.sched.Schedule(c.opts.UploadDelay, func(h Handle) {
			c.autoPredict(h, &c.uploadTimer, TriggerUpload)
		})
	}
	return p, nil
}

// autoPredict fires for the stroke debounce and the upload delay. A timer
// that was superseded or cancelled after it started firing does nothing.
func (c *Controller) autoPredict(h Handle, slot *Handle, trigger string) {
	c.mu.Lock()
	if *slot != h {
		c.mu.Unlock()
		return
	}
	*slot = 0
	req, err := c.beginPrediction()
	c.mu.Unlock()

	var res *Result
	if err == nil {
		res, err = c.completePrediction(c.ctx, req)
	}
	if err != nil {
		log.Warning.Printf("auto prediction (%s): %v", trigger, err)
	}
	if c.opts.Notify != nil {
		c.opts.Notify(Notice{Trigger: trigger, Result: res, Err: err})
	}
}

// RequestPrediction sends the current surface to the service. It fails
// fast with ErrServiceUnavailable unless the service is connected, and with
// ErrPredictionInFlight while another request is outstanding. A failed
// round-trip keeps the previous result.
func (c *Controller) RequestPrediction(ctx context.Context) (*Result, error) {
	c.mu.Lock()
	req, err := c.beginPrediction()
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return c.completePrediction(ctx, req)
}

type pendingPrediction struct {
	image      string
	requestID  string
	generation uint64
	source     Mode
}

// beginPrediction runs with c.mu held and takes the gate on success.
func (c *Controller) beginPrediction() (*pendingPrediction, error) {
	if c.health.State() != Connected {
		return nil, ErrServiceUnavailable
	}
	if !c.gate.TryAcquire(1) {
		return nil, ErrPredictionInFlight
	}

	payload, err := c.surface.DataURL()
	if err != nil {
		c.gate.Release(1)
		return nil, err
	}

	c.flight = inFlight
	c.requests++
	return &pendingPrediction{
		image:      payload,
		requestID:  fmt.Sprintf("%s-%d", c.sessionID, c.requests),
		generation: c.generation,
		source:     c.mode,
	}, nil
}

func (c *Controller) completePrediction(ctx context.Context, req *pendingPrediction) (*Result, error) {
	defer c.release()

	pred, err := c.rec.Predict(ctx, req.image, req.requestID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if req.generation != c.generation {
		log.Trace.Printf("dropping response to %s: surface was reset", req.requestID)
		return nil, ErrStaleResponse
	}
	if err != nil {
		return nil, err
	}

	c.result = &Result{
		Digit:         pred.Digit,
		Confidence:    pred.Confidence,
		Probabilities: pred.Probabilities,
		Success:       true,
		Source:        req.source,
		At:            c.opts.Clock.Now(),
	}
	log.Info.Printf("session %s: recognized %d (%.1f%%)", c.sessionID, pred.Digit, pred.Confidence)
	return c.result.clone(), nil
}

// release frees the gate and clears the in-flight state under one lock, so
// a snapshot never reports CanPredict while the gate is still held.
func (c *Controller) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gate.Release(1)
	c.flight = idle
}

// SetAutoPredict arms or disarms automatic prediction. Arming in Draw mode
// with strokes already on the surface starts the stroke debounce. Disarming
// cancels any pending automatic prediction.
func (c *Controller) SetAutoPredict(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !on {
		c.auto = false
		c.cancelTimersLocked()
		return
	}
	if c.auto {
		return
	}
	c.auto = true
	if c.mode == Draw && c.strokes.Count() > 0 {
		c.restartDebounceLocked()
	}
}

// SwitchMode changes the capture mode and always starts from a blank
// session, even when the mode does not change.
func (c *Controller) SwitchMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surface.EndStroke()
	c.mode = m
	c.clearLocked()
}

// Clear blanks the surface and forgets strokes, upload and result.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Controller) clearLocked() {
	c.cancelTimersLocked()
	c.surface.Clear()
	c.strokes.Reset()
	c.result = nil
	c.upload = nil
	c.generation++
	c.sessionID = uuid.New()
	log.Trace.Printf("session %s: %s mode, cleared", c.sessionID, c.mode)
}

func (c *Controller) cancelTimersLocked() {
	c.sched.Cancel(c.strokeTimer)
	c.sched.Cancel(c.uploadTimer)
	c.strokeTimer = 0
	c.uploadTimer = 0
}

// CanPredict reports whether a manual prediction makes sense right now.
func (c *Controller) CanPredict() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canPredictLocked()
}

func (c *Controller) canPredictLocked() bool {
	if c.flight == inFlight || c.health.State() != Connected {
		return false
	}
	return !(c.mode == Draw && c.strokes.Count() == 0 && c.upload == nil)
}

func (c *Controller) Result() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result.clone()
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		SessionID:   c.sessionID.String(),
		Mode:        c.mode,
		Health:      c.health.State(),
		AutoPredict: c.auto,
		Strokes:     c.strokes.Count(),
		InFlight:    c.flight == inFlight,
		CanPredict:  c.canPredictLocked(),
		Result:      c.result.clone(),
	}
	if c.upload != nil {
		u := *c.upload
		s.Upload = &u
	}
	s.Insight = s.Result.Insight()
	return s
}

// EncodePNG returns the current surface as PNG.
func (c *Controller) EncodePNG() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface.EncodePNG()
}

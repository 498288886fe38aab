package session

import (
	"fmt"
	"time"

	"github.com/juruen/digitrec/canvas"
	"github.com/juruen/digitrec/insight"
)

type Mode int

const (
	Draw Mode = iota
	Upload
)

func (m Mode) String() string {
	switch m {
	case Draw:
		return "draw"
	case Upload:
		return "upload"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "draw":
		return Draw, nil
	case "upload":
		return Upload, nil
	}
	return Draw, fmt.Errorf("unknown mode %q, want draw or upload", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Health is the readiness of the recognition service as seen by the one
// probe issued per session.
type Health int

const (
	Checking Health = iota
	Connected
	ModelNotLoaded
	Disconnected
)

func (h Health) String() string {
	switch h {
	case Checking:
		return "checking"
	case Connected:
		return "connected"
	case ModelNotLoaded:
		return "model-not-loaded"
	case Disconnected:
		return "disconnected"
	}
	return fmt.Sprintf("Health(%d)", int(h))
}

func (h Health) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// Result is the outcome of the last successful round-trip. It is replaced
// wholesale and never mutated after creation.
type Result struct {
	Digit         int             `json:"digit"`
	Confidence    float64         `json:"confidence"`
	Probabilities map[int]float64 `json:"all_probabilities"`
	Success       bool            `json:"success"`
	Error         string          `json:"error,omitempty"`
	Source        Mode            `json:"source"`
	At            time.Time       `json:"at"`
}

func (r *Result) clone() *Result {
	if r == nil {
		return nil
	}
	dup := *r
	dup.Probabilities = make(map[int]float64, len(r.Probabilities))
	for k, v := range r.Probabilities {
		dup.Probabilities[k] = v
	}
	return &dup
}

// Insight derives the display annotations of a successful result.
func (r *Result) Insight() *insight.Insight {
	if r == nil || !r.Success {
		return nil
	}
	in := insight.Derive(r.Probabilities, r.Confidence)
	return &in
}

// UploadInfo references the last image placed on the surface.
type UploadInfo struct {
	Name      string           `json:"name"`
	Format    string           `json:"format"`
	Size      int              `json:"size"`
	Placement canvas.Placement `json:"placement"`
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	SessionID   string           `json:"session_id"`
	Mode        Mode             `json:"mode"`
	Health      Health           `json:"health"`
	AutoPredict bool             `json:"auto_predict"`
	Strokes     int              `json:"strokes"`
	InFlight    bool             `json:"in_flight"`
	CanPredict  bool             `json:"can_predict"`
	Upload      *UploadInfo      `json:"upload,omitempty"`
	Result      *Result          `json:"result,omitempty"`
	Insight     *insight.Insight `json:"insight,omitempty"`
}

// Notice reports the outcome of an automatically triggered prediction.
type Notice struct {
	Trigger string
	Result  *Result
	Err     error
}

package hwr

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

var (
	ErrPredictionFailed = errors.New("prediction failed")
	ErrTransport        = errors.New("can't reach recognition service")
)

// PredictionFailedError means the service answered but declined, or
// answered with something that is not a prediction.
type PredictionFailedError struct {
	Message string
}

func (e *PredictionFailedError) Error() string {
	return "prediction failed: " + e.Message
}

func (e *PredictionFailedError) Is(target error) bool {
	return target == ErrPredictionFailed
}

// TransportError covers network failures, timeouts and bodies that are not
// JSON.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func transportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

// Prediction is a validated successful response.
type Prediction struct {
	Digit         int
	Confidence    float64
	Probabilities map[int]float64
}

func parsePrediction(res *PredictResponse) (*Prediction, error) {
	malformed := func(format string, args ...interface{}) error {
		return &PredictionFailedError{Message: "malformed response: " + fmt.Sprintf(format, args...)}
	}

	if res.Digit == nil {
		return nil, malformed("missing digit")
	}
	if *res.Digit < 0 || *res.Digit > 9 {
		return nil, malformed("digit %d out of range", *res.Digit)
	}
	if res.Confidence == nil {
		return nil, malformed("missing confidence")
	}
	if c := *res.Confidence; c < 0 || c > 100 {
		return nil, malformed("confidence %v out of range", c)
	}
	if len(res.AllProbabilities) != 10 {
		return nil, malformed("want 10 probabilities, got %d", len(res.AllProbabilities))
	}

	p := &Prediction{
		Digit:         *res.Digit,
		Confidence:    *res.Confidence,
		Probabilities: make(map[int]float64, 10),
	}
	for k, v := range res.AllProbabilities {
		d, err := strconv.Atoi(k)
		if err != nil || d < 0 || d > 9 {
			return nil, malformed("unexpected label %q", k)
		}
		if v < 0 || v > 100 {
			return nil, malformed("probability %v for %d out of range", v, d)
		}
		p.Probabilities[d] = v
	}
	if len(p.Probabilities) != 10 {
		return nil, malformed("duplicate digit labels")
	}
	return p, nil
}

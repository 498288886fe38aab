package shell

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juruen/digitrec/canvas"
	"github.com/juruen/digitrec/insight"
	"github.com/juruen/digitrec/session"
)

func sevenResult() *session.Result {
	return &session.Result{
		Digit:      7,
		Confidence: 88,
		Probabilities: map[int]float64{
			0: 0, 1: 12, 2: 0, 3: 0, 4: 0, 5: 0, 6: 0, 7: 88, 8: 0, 9: 0,
		},
		Success: true,
		Source:  session.Draw,
	}
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("10.5, 20")
	require.NoError(t, err)
	assert.Equal(t, canvas.Point{X: 10.5, Y: 20}, p)

	for _, bad := range []string{"", "1", "1,2,3", "a,2", "1,b"} {
		_, err := parsePoint(bad)
		assert.Error(t, err, bad)
	}
}

func TestParsePoints(t *testing.T) {
	points, err := parsePoints([]string{"0,0", "5,5"})
	require.NoError(t, err)
	assert.Equal(t, []canvas.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}, points)

	_, err = parsePoints([]string{"0,0", "oops"})
	assert.Error(t, err)
}

func TestFormatResult(t *testing.T) {
	out := FormatResult(sevenResult())

	assert.Contains(t, out, "digit: 7  confidence: 88.0%")
	assert.Contains(t, out, "Good Recognition")
	assert.Contains(t, out, "Could also be: 1 (12.0%)")
	assert.Contains(t, out, "meter: medium")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[len(lines)-3], ">7"))
}

func TestResultToJSON(t *testing.T) {
	out := ResultToJSON(sevenResult())

	assert.Equal(t, 7, out.Digit)
	assert.Equal(t, "draw", out.Source)
	require.Len(t, out.Probabilities, 10)
	assert.Equal(t, insight.Entry{Digit: 7, Probability: 88}, out.Probabilities[0])
	assert.Equal(t, insight.Entry{Digit: 1, Probability: 12}, out.Probabilities[1])
	require.NotNil(t, out.Insight)
	assert.Equal(t, insight.Good, out.Insight.Tier)
	assert.Equal(t, []string{"Good Recognition", "Could also be: 1 (12.0%)"}, out.Tags)
}

func TestNotifier(t *testing.T) {
	var buf bytes.Buffer
	notify := Notifier(&buf, false)

	notify(session.Notice{Trigger: session.TriggerStroke, Result: sevenResult()})
	assert.Contains(t, buf.String(), "auto predict (stroke)")
	assert.Contains(t, buf.String(), "digit: 7")

	buf.Reset()
	notify(session.Notice{Trigger: session.TriggerUpload, Err: errors.New("boom")})
	assert.Contains(t, buf.String(), "auto predict (upload) failed: boom")
}

func TestNotifierJSON(t *testing.T) {
	var buf bytes.Buffer
	Notifier(&buf, true)(session.Notice{Trigger: session.TriggerStroke, Result: sevenResult()})

	var out ResultJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 7, out.Digit)
}

func TestCheckPredict(t *testing.T) {
	cases := []struct {
		name string
		snap session.Snapshot
		want error
	}{
		{"disconnected and empty", session.Snapshot{Health: session.Disconnected, Mode: session.Draw}, session.ErrServiceUnavailable},
		{"model not loaded", session.Snapshot{Health: session.ModelNotLoaded, Mode: session.Draw, Strokes: 2}, session.ErrServiceUnavailable},
		{"still checking", session.Snapshot{Health: session.Checking, Mode: session.Upload}, session.ErrServiceUnavailable},
		{"connected and empty", session.Snapshot{Health: session.Connected, Mode: session.Draw}, errNothingDrawn},
		{"connected with strokes", session.Snapshot{Health: session.Connected, Mode: session.Draw, Strokes: 1}, nil},
		{"connected upload", session.Snapshot{Health: session.Connected, Mode: session.Upload}, nil},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, checkPredict(c.snap), c.name)
	}
}

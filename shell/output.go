package shell

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/juruen/digitrec/insight"
	"github.com/juruen/digitrec/session"
)

type ResultJSON struct {
	Digit         int              `json:"digit"`
	Confidence    float64          `json:"confidence"`
	Probabilities []insight.Entry  `json:"probabilities"`
	Source        string           `json:"source"`
	Insight       *insight.Insight `json:"insight,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
}

func ResultToJSON(res *session.Result) ResultJSON {
	out := ResultJSON{
		Digit:         res.Digit,
		Confidence:    res.Confidence,
		Probabilities: insight.Rank(res.Probabilities),
		Source:        res.Source.String(),
	}
	if in := res.Insight(); in != nil {
		out.Insight = in
		out.Tags = in.Tags()
	}
	return out
}

const barWidth = 40

// FormatResult renders a result the way the shell prints it: the digit,
// its tags and one bar per digit ordered 0-9.
func FormatResult(res *session.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digit: %d  confidence: %.1f%%\n", res.Digit, res.Confidence)
	if in := res.Insight(); in != nil {
		fmt.Fprintf(&b, "meter: %s\n", in.Level)
		for _, tag := range in.Tags() {
			fmt.Fprintf(&b, "  * %s\n", tag)
		}
	}
	for d := 0; d < 10; d++ {
		p := res.Probabilities[d]
		n := int(p / 100 * barWidth)
		marker := " "
		if d == res.Digit {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s%d %-*s %5.1f%%\n", marker, d, barWidth, strings.Repeat("#", n), p)
	}
	return b.String()
}

func displayResult(c *ishell.Context, res *session.Result, asJSON bool) error {
	if !asJSON {
		c.Print(FormatResult(res))
		return nil
	}

	output, err := json.MarshalIndent(ResultToJSON(res), "", "  ")
	if err != nil {
		return err
	}

	c.Println(string(output))
	return nil
}

func displaySnapshotJSON(c *ishell.Context, snap session.Snapshot) error {
	output, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	c.Println(string(output))
	return nil
}

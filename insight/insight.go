// Package insight derives the annotations shown next to a prediction: a
// confidence tier and, when the runner-up is close enough, an alternative
// candidate.
package insight

import (
	"fmt"
	"sort"
)

type Tier string

const (
	Excellent Tier = "excellent"
	Good      Tier = "good"
	Uncertain Tier = "uncertain"
)

// Level is the certainty meter bucket.
type Level string

const (
	High   Level = "high"
	Medium Level = "medium"
	Low    Level = "low"
)

const (
	excellentFloor = 95
	goodFloor      = 85
	highFloor      = 90
	mediumFloor    = 70

	// runner-up probability above which it is worth mentioning
	alternativeFloor = 10
)

type Entry struct {
	Digit       int     `json:"digit"`
	Probability float64 `json:"probability"`
}

type Alternative struct {
	Digit       int     `json:"digit"`
	Probability float64 `json:"probability"`
}

type Insight struct {
	Tier        Tier         `json:"tier"`
	Level       Level        `json:"level"`
	Alternative *Alternative `json:"alternative,omitempty"`
}

func TierOf(confidence float64) Tier {
	switch {
	case confidence >= excellentFloor:
		return Excellent
	case confidence >= goodFloor:
		return Good
	default:
		return Uncertain
	}
}

func LevelOf(confidence float64) Level {
	switch {
	case confidence >= highFloor:
		return High
	case confidence > mediumFloor:
		return Medium
	default:
		return Low
	}
}

// Rank sorts the distribution by descending probability. Equal
// probabilities keep the lower digit first.
func Rank(probabilities map[int]float64) []Entry {
	ranked := make([]Entry, 0, len(probabilities))
	for d, p := range probabilities {
		ranked = append(ranked, Entry{Digit: d, Probability: p})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Probability != ranked[j].Probability {
			return ranked[i].Probability > ranked[j].Probability
		}
		return ranked[i].Digit < ranked[j].Digit
	})
	return ranked
}

// Derive expects one entry per digit 0-9 with percentages in [0,100]. The
// tier and level come from the confidence the service reported, which may
// be rounded differently from its entry in the distribution. Anything out
// of range is a caller bug and panics.
func Derive(probabilities map[int]float64, confidence float64) Insight {
	mustBeDistribution(probabilities)
	if confidence < 0 || confidence > 100 {
		panic(fmt.Sprintf("insight: confidence %v out of range", confidence))
	}

	in := Insight{
		Tier:  TierOf(confidence),
		Level: LevelOf(confidence),
	}

	ranked := Rank(probabilities)
	if second := ranked[1]; second.Probability > alternativeFloor {
		in.Alternative = &Alternative{Digit: second.Digit, Probability: second.Probability}
	}
	return in
}

func mustBeDistribution(probabilities map[int]float64) {
	if len(probabilities) != 10 {
		panic(fmt.Sprintf("insight: want 10 probabilities, got %d", len(probabilities)))
	}
	for d := 0; d < 10; d++ {
		p, ok := probabilities[d]
		if !ok {
			panic(fmt.Sprintf("insight: missing digit %d", d))
		}
		if p < 0 || p > 100 {
			panic(fmt.Sprintf("insight: probability %v for digit %d out of range", p, d))
		}
	}
}

// Tags renders the insight the way it is displayed.
func (in Insight) Tags() []string {
	var tags []string
	switch in.Tier {
	case Excellent:
		tags = append(tags, "Excellent Recognition")
	case Good:
		tags = append(tags, "Good Recognition")
	default:
		tags = append(tags, "Uncertain - Try again")
	}
	if in.Alternative != nil {
		tags = append(tags, fmt.Sprintf("Could also be: %d (%.1f%%)", in.Alternative.Digit, in.Alternative.Probability))
	}
	return tags
}

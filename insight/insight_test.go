package insight

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func distribution(top map[int]float64, rest float64) map[int]float64 {
	p := make(map[int]float64, 10)
	for d := 0; d < 10; d++ {
		p[d] = rest
	}
	for d, v := range top {
		p[d] = v
	}
	return p
}

func TestDeriveExcellentNoAlternative(t *testing.T) {
	in := Derive(distribution(map[int]float64{7: 96, 1: 2}, 0.25), 96)

	want := Insight{Tier: Excellent, Level: High}
	if diff := cmp.Diff(want, in); diff != "" {
		t.Errorf("Derive() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Excellent Recognition"}, in.Tags())
}

func TestDeriveUncertainWithAlternative(t *testing.T) {
	in := Derive(distribution(map[int]float64{3: 60, 8: 25}, 15.0/8), 60)

	want := Insight{
		Tier:        Uncertain,
		Level:       Low,
		Alternative: &Alternative{Digit: 8, Probability: 25},
	}
	if diff := cmp.Diff(want, in); diff != "" {
		t.Errorf("Derive() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Uncertain - Try again", "Could also be: 8 (25.0%)"}, in.Tags())
}

func TestDeriveAlternativeThreshold(t *testing.T) {
	in := Derive(distribution(map[int]float64{4: 88, 9: 10}, 0.25), 88)
	assert.Equal(t, Good, in.Tier)
	assert.Nil(t, in.Alternative, "exactly 10 percent is not enough")

	in = Derive(distribution(map[int]float64{4: 87.9, 9: 10.1}, 0.25), 87.9)
	if assert.NotNil(t, in.Alternative) {
		assert.Equal(t, 9, in.Alternative.Digit)
	}
}

func TestDeriveTieBreakLowerDigit(t *testing.T) {
	in := Derive(distribution(map[int]float64{2: 50, 6: 20, 5: 20}, 10.0/7), 50)
	if assert.NotNil(t, in.Alternative) {
		assert.Equal(t, 5, in.Alternative.Digit)
	}
}

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		confidence float64
		tier       Tier
		level      Level
	}{
		{100, Excellent, High},
		{95, Excellent, High},
		{94.99, Good, High},
		{90, Good, High},
		{85, Good, Medium},
		{84.99, Uncertain, Medium},
		{70, Uncertain, Low},
		{0, Uncertain, Low},
	}
	for _, c := range cases {
		assert.Equal(t, c.tier, TierOf(c.confidence), "tier for %v", c.confidence)
		assert.Equal(t, c.level, LevelOf(c.confidence), "level for %v", c.confidence)
	}
}

func TestRank(t *testing.T) {
	ranked := Rank(map[int]float64{0: 1, 1: 5, 2: 5, 3: 89})
	want := []Entry{{3, 89}, {1, 5}, {2, 5}, {0, 1}}
	if diff := cmp.Diff(want, ranked); diff != "" {
		t.Errorf("Rank() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveMalformedPanics(t *testing.T) {
	assert.Panics(t, func() { Derive(map[int]float64{1: 100}, 100) })
	assert.Panics(t, func() { Derive(distribution(map[int]float64{1: 120}, 0), 100) })
	p := distribution(nil, 10)
	delete(p, 4)
	p[10] = 10
	assert.Panics(t, func() { Derive(p, 10) })
	assert.Panics(t, func() { Derive(distribution(nil, 10), 101) })
}

func TestDeriveUsesReportedConfidence(t *testing.T) {
	// the distribution says 94.96 for the predicted digit, the service
	// reports it rounded
	probs := distribution(map[int]float64{7: 94.96, 1: 4.2}, 0.84/8)

	in := Derive(probs, 95)
	assert.Equal(t, Excellent, in.Tier)
	assert.Equal(t, High, in.Level)

	in = Derive(probs, 94.96)
	assert.Equal(t, Good, in.Tier)
}

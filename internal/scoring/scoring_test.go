package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoIndicators() []Indicator {
	opts := []Option{
		{Value: 0, Points: 0, Label: "0"},
		{Value: 1, Points: 1, Label: "1"},
		{Value: 2, Points: 2, Label: "2"},
		{Value: 3, Points: 3, Label: "3"},
	}
	return []Indicator{
		{Key: "a", Label: "A", Weight: 5, Options: opts},
		{Key: "b", Label: "B", Weight: 2, Options: opts},
	}
}

func TestComputeScore(t *testing.T) {
	indicators := twoIndicators()

	tests := []struct {
		name   string
		values map[string]int
		want   int
	}{
		{"weighted sum", map[string]int{"a": 3, "b": 1}, 17},
		{"missing keys default to zero", map[string]int{"a": 2}, 10},
		{"nil values", nil, 0},
		{"unknown keys ignored", map[string]int{"a": 1, "zz": 9}, 5},
		{"negative selection clamps to lowest option", map[string]int{"a": -4, "b": 1}, 2},
		{"selection above scale clamps to highest option", map[string]int{"a": 99, "b": 3}, 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeScore(tt.values, indicators))
		})
	}
}

func TestComputeScoreSnapsBetweenOptions(t *testing.T) {
	// Options 0/2/5: a raw 3 snaps down to 2, a raw 4 snaps down to 2 as well.
	ind := []Indicator{{Key: "x", Weight: 1, Options: []Option{
		{Value: 0}, {Value: 2}, {Value: 5},
	}}}
	assert.Equal(t, 2, ComputeScore(map[string]int{"x": 3}, ind))
	assert.Equal(t, 2, ComputeScore(map[string]int{"x": 4}, ind))
	assert.Equal(t, 5, ComputeScore(map[string]int{"x": 5}, ind))
}

func TestMaxScore(t *testing.T) {
	assert.Equal(t, 21, MaxScore(twoIndicators()))
	assert.Equal(t, 36, Default().MaxScore())
}

func TestClassifyLevel(t *testing.T) {
	bands := Default().Bands

	assert.Equal(t, "En éveil", ClassifyLevel(0, bands).Label)
	assert.Equal(t, "En éveil", ClassifyLevel(9, bands).Label)
	assert.Equal(t, "En croissance", ClassifyLevel(10, bands).Label)
	assert.Equal(t, "Engagé", ClassifyLevel(27, bands).Label)
	assert.Equal(t, "Confirmé", ClassifyLevel(28, bands).Label)
	assert.Equal(t, "Confirmé", ClassifyLevel(5000, bands).Label)
}

func TestClassifyLevelIsTotal(t *testing.T) {
	bands := Default().Bands
	for s := 0; s <= 10000; s++ {
		matches := 0
		for _, b := range bands {
			if s >= b.Min && (b.Max < 0 || s <= b.Max) {
				matches++
			}
		}
		require.Equalf(t, 1, matches, "score %d must fall in exactly one band", s)
	}
}

func TestClassifyLevelFallsBackToLowestBand(t *testing.T) {
	// Misconfigured table leaving a hole: the lookup must still answer.
	bands := []LevelBand{
		{Min: 0, Max: 5, Label: "bas"},
		{Min: 10, Max: -1, Label: "haut"},
	}
	assert.Equal(t, "bas", ClassifyLevel(7, bands).Label)
	assert.Equal(t, "Non classé", ClassifyLevel(3, nil).Label)
}

func TestResolveDisplayedStatus(t *testing.T) {
	got := ResolveDisplayedStatus("Confirmé", "Non classé", 2.5)
	assert.Equal(t, StatusOverride, got.Kind)
	assert.Equal(t, "Confirmé", got.Label)
	assert.Zero(t, got.Score)

	got = ResolveDisplayedStatus("", "En croissance", 14.2)
	assert.Equal(t, StatusComputed, got.Kind)
	assert.Equal(t, "En croissance", got.Label)
	assert.Equal(t, 14.2, got.Score)
}

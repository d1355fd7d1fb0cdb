// Package scoring computes discipleship KPI scores and maps them to levels.
package scoring

// Option is one selectable answer for an indicator. Points mirrors Value in
// the shipped table; both fields are kept because the UI displays Points while
// the engine scores from Value. They are not required to stay equal.
type Option struct {
	Value  int    `yaml:"value" json:"value"`
	Points int    `yaml:"points" json:"points"`
	Label  string `yaml:"label" json:"label"`
}

// Indicator is one measurable behavior contributing to the score.
// Options must be ordered by Value ascending.
type Indicator struct {
	Key     string   `yaml:"key" json:"key"`
	Label   string   `yaml:"label" json:"label"`
	Weight  int      `yaml:"weight" json:"weight"`
	Options []Option `yaml:"options" json:"options"`
}

// LevelBand is an inclusive score range mapped to a qualitative level.
// Max < 0 means the band is unbounded above.
type LevelBand struct {
	Min   int    `yaml:"min" json:"min"`
	Max   int    `yaml:"max" json:"max"`
	Label string `yaml:"label" json:"label"`
	Color string `yaml:"color" json:"color"`
}

func (b LevelBand) contains(score int) bool {
	return score >= b.Min && (b.Max < 0 || score <= b.Max)
}

// Unbounded reports whether the band has no upper limit.
func (b LevelBand) Unbounded() bool {
	return b.Max < 0
}

// ComputeScore sums selected value × weight over all indicators. Keys missing
// from values count as 0. Selections are clamped into the indicator's declared
// option range, so no indicator can contribute a negative amount.
func ComputeScore(values map[string]int, indicators []Indicator) int {
	total := 0
	for _, ind := range indicators {
		total += clampToOptions(values[ind.Key], ind.Options) * ind.Weight
	}
	return total
}

// clampToOptions snaps a raw selection onto the indicator's option scale:
// below the scale → lowest value, above → highest, in between → greatest
// declared value not exceeding the selection.
func clampToOptions(v int, options []Option) int {
	if len(options) == 0 {
		return 0
	}
	if v <= options[0].Value {
		return options[0].Value
	}
	last := options[len(options)-1].Value
	if v >= last {
		return last
	}
	snapped := options[0].Value
	for _, o := range options {
		if o.Value > v {
			break
		}
		snapped = o.Value
	}
	return snapped
}

// MaxScore is the highest achievable score for the indicator set.
func MaxScore(indicators []Indicator) int {
	total := 0
	for _, ind := range indicators {
		if len(ind.Options) == 0 {
			continue
		}
		total += ind.Options[len(ind.Options)-1].Value * ind.Weight
	}
	return total
}

// ClassifyLevel returns the band containing score. A well-formed band table
// (see Config.Validate) matches every non-negative score exactly once; if the
// lookup still misses, the lowest band is returned rather than an error.
func ClassifyLevel(score int, bands []LevelBand) LevelBand {
	for _, b := range bands {
		if b.contains(score) {
			return b
		}
	}
	if len(bands) > 0 {
		return bands[0]
	}
	return LevelBand{Label: "Non classé"}
}

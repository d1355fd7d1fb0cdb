package fidelity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func presences(dates ...string) []Record {
	out := make([]Record, 0, len(dates))
	for _, d := range dates {
		out = append(out, Record{Date: d, Present: true})
	}
	return out
}

func TestNewCalculatorDefaults(t *testing.T) {
	assert.Equal(t, DefaultExpectedOccasions, NewCalculator(0).ExpectedOccasions)
	assert.Equal(t, DefaultExpectedOccasions, NewCalculator(-3).ExpectedOccasions)
	assert.Equal(t, 12, NewCalculator(12).ExpectedOccasions)
}

func TestRate(t *testing.T) {
	calc := NewCalculator(8)

	tests := []struct {
		name    string
		records map[uint][]Record
		want    int
	}{
		{"empty cohort", map[uint][]Record{}, 0},
		{"nil cohort", nil, 0},
		{"single subject half attendance", map[uint][]Record{
			1: presences("2025-03-02", "2025-03-09", "2025-03-16", "2025-03-23"),
		}, 50},
		{"absences do not count", map[uint][]Record{
			1: {
				{Date: "2025-03-02", Present: true},
				{Date: "2025-03-09", Present: false},
				{Date: "2025-03-16", Present: false},
				{Date: "2025-03-23", Present: true},
			},
		}, 25},
		{"averaged across the cohort", map[uint][]Record{
			1: presences("2025-03-02", "2025-03-09", "2025-03-16", "2025-03-23"),
			2: {},
		}, 25},
		{"rounded to nearest integer", map[uint][]Record{
			1: presences("2025-03-02", "2025-03-09", "2025-03-16"),
			2: presences("2025-03-02", "2025-03-09", "2025-03-16", "2025-03-23"),
		}, 44}, // 3.5 / 8 = 43.75
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.Rate(tt.records))
		})
	}
}

func TestRateClampsAboveReferenceMaximum(t *testing.T) {
	calc := NewCalculator(8)
	over := make([]Record, 0, 20)
	for i := 1; i <= 20; i++ {
		over = append(over, Record{Date: fmt.Sprintf("2025-03-%02d", i), Present: true})
	}
	assert.Equal(t, 100, calc.Rate(map[uint][]Record{1: over}))
}

func TestRateStaysInPercentageRange(t *testing.T) {
	calc := NewCalculator(8)
	for n := 0; n <= 40; n++ {
		records := make([]Record, 0, n)
		for i := 0; i < n; i++ {
			records = append(records, Record{Date: fmt.Sprintf("2025-01-%02d", i%28+1), Present: i%3 != 0})
		}
		rate := calc.Rate(map[uint][]Record{1: records, 2: {}})
		assert.GreaterOrEqual(t, rate, 0)
		assert.LessOrEqual(t, rate, 100)
	}
}

func TestFilterByDate(t *testing.T) {
	subjects := []uint{1, 2, 3}
	records := map[uint][]Record{
		1: {{Date: "2025-03-02", Present: true}},
		2: {{Date: "2025-03-02", Present: false}},
		// subject 3 has no record on that date
		3: {{Date: "2025-03-09", Present: true}},
	}

	assert.Equal(t, subjects, FilterByDate(subjects, records, "2025-03-02", FilterAll))
	assert.Equal(t, subjects, FilterByDate(subjects, records, "", FilterPresent))
	assert.Equal(t, []uint{1}, FilterByDate(subjects, records, "2025-03-02", FilterPresent))
	assert.Equal(t, []uint{2}, FilterByDate(subjects, records, "2025-03-02", FilterAbsent))
	assert.Empty(t, FilterByDate(subjects, records, "2025-03-30", FilterPresent))
}

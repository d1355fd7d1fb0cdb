// Package fidelity aggregates date-stamped presence records into a
// participation-rate percentage.
package fidelity

import "math"

// DefaultExpectedOccasions is the reference number of tracked occasions over
// the observation window. It is a policy knob, not derived from the data;
// override it through fidelity.expected_occasions in the app config.
const DefaultExpectedOccasions = 8

// DateFormat is the layout of Record.Date.
const DateFormat = "2006-01-02"

// Record is one attendance outcome for a subject on a given date. Records
// from every presence stream (culte, bergerie) are merged per subject before
// aggregation.
type Record struct {
	Date    string `json:"date"`
	Present bool   `json:"present"`
}

// PresenceFilter selects which attendance outcome to retain when filtering
// by date.
type PresenceFilter string

const (
	FilterAll     PresenceFilter = "all"
	FilterPresent PresenceFilter = "present"
	FilterAbsent  PresenceFilter = "absent"
)

// Calculator computes cohort fidelity rates against a fixed expected number
// of occasions. The zero value is not usable; build one with NewCalculator.
type Calculator struct {
	ExpectedOccasions int
}

func NewCalculator(expectedOccasions int) Calculator {
	if expectedOccasions <= 0 {
		expectedOccasions = DefaultExpectedOccasions
	}
	return Calculator{ExpectedOccasions: expectedOccasions}
}

// Rate returns the cohort participation rate as an integer percentage in
// [0, 100]: the average number of present-records per subject, normalized
// against ExpectedOccasions and rounded. Subjects who attended more than the
// reference maximum are capped at 100, and an empty cohort rates 0.
func (c Calculator) Rate(recordsBySubject map[uint][]Record) int {
	if len(recordsBySubject) == 0 {
		return 0
	}
	presentTotal := 0
	for _, records := range recordsBySubject {
		for _, r := range records {
			if r.Present {
				presentTotal++
			}
		}
	}
	avg := float64(presentTotal) / float64(len(recordsBySubject))
	rate := int(math.Round(avg / float64(c.ExpectedOccasions) * 100))
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}

// FilterByDate retains the subjects whose record on the given date matches
// the presence filter. FilterAll (or an empty date) performs no filtering;
// with FilterPresent or FilterAbsent, subjects lacking a record on that date
// are excluded.
func FilterByDate(subjects []uint, recordsBySubject map[uint][]Record, date string, filter PresenceFilter) []uint {
	if filter == FilterAll || filter == "" || date == "" {
		return subjects
	}
	wantPresent := filter == FilterPresent
	out := make([]uint, 0, len(subjects))
	for _, id := range subjects {
		for _, r := range recordsBySubject[id] {
			if r.Date == date && r.Present == wantPresent {
				out = append(out, id)
				break
			}
		}
	}
	return out
}

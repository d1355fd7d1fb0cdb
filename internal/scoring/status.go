package scoring

// StatusKind distinguishes the two sources a displayed status can come from.
type StatusKind string

const (
	// StatusOverride means a berger set the status by hand on the subject.
	StatusOverride StatusKind = "override"
	// StatusComputed means the status comes from the historical score average.
	StatusComputed StatusKind = "computed"
)

// DisplayedStatus is the resolved status shown for a subject. Score is only
// meaningful for computed statuses.
type DisplayedStatus struct {
	Kind  StatusKind `json:"kind"`
	Label string     `json:"label"`
	Score float64    `json:"score,omitempty"`
}

// ResolveDisplayedStatus applies the precedence rule: a non-empty manual
// override always wins over the computed average level. Pure, no caching;
// callers re-evaluate on every read.
func ResolveDisplayedStatus(override, avgLabel string, avgScore float64) DisplayedStatus {
	if override != "" {
		return DisplayedStatus{Kind: StatusOverride, Label: override}
	}
	return DisplayedStatus{Kind: StatusComputed, Label: avgLabel, Score: avgScore}
}

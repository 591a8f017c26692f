package domain

import "time"

// GapStatus is the closure state of a pillar's gap to target.
type GapStatus string

const (
	GapOpen       GapStatus = "open"
	GapInProgress GapStatus = "in_progress"
	GapClosed     GapStatus = "closed"
)

// Baseline is the immutable first snapshot of a project's scores.
// At most one baseline exists per project lifetime; only an explicit
// reset replaces it.
type Baseline struct {
	Overall      float64
	PillarScores map[string]float64
	CreatedAt    time.Time
}

// GapProgress is the derived gap state of a single pillar.
// Improvement keeps its raw sign so regressions stay visible to audit;
// PercentageClosed is the clamped display value.
type GapProgress struct {
	PillarID         string
	Target           float64
	Baseline         float64
	Current          float64
	OriginalGap      float64
	CurrentGap       float64
	Improvement      float64
	PercentageClosed float64
	Status           GapStatus
}

// GapClosure is the project-wide gap analysis.
type GapClosure struct {
	AverageGapClosure   float64
	Progress            []GapProgress
	ProjectedCompletion *time.Time
}

package api

import "time"

type GapProgress struct {
	PillarID         string  `json:"pillar_id"`
	Target           float64 `json:"target"`
	Baseline         float64 `json:"baseline"`
	Current          float64 `json:"current"`
	OriginalGap      float64 `json:"original_gap"`
	CurrentGap       float64 `json:"current_gap"`
	Improvement      float64 `json:"improvement"`
	PercentageClosed float64 `json:"percentage_closed"`
	Status           string  `json:"status"`
}

type GapClosure struct {
	AverageGapClosure   float64       `json:"average_gap_closure"`
	Progress            []GapProgress `json:"progress"`
	ProjectedCompletion *time.Time    `json:"projected_completion,omitempty"`
}

type Baseline struct {
	Overall      float64            `json:"overall"`
	PillarScores map[string]float64 `json:"pillar_scores"`
	CreatedAt    time.Time          `json:"created_at"`
}

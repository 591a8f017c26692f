package tracker

import (
	"fmt"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/de-tools/govern-atlas/pkg/services/scoring"
)

// Settings contains the knobs for task-driven score projection.
type Settings struct {
	// PhaseGain is the maximum score gain a fully completed phase can
	// contribute to its pillar.
	PhaseGain float64
	// EvidenceBoost multiplies a task's delta when evidence files are
	// attached to its recommendation.
	EvidenceBoost float64
}

// DefaultSettings returns the default projection configuration.
func DefaultSettings() Settings {
	return Settings{
		PhaseGain:     10.0,
		EvidenceBoost: 1.2,
	}
}

// Projection is the outcome of applying or reverting one task completion.
type Projection struct {
	ProjectedScore float64
	Delta          float64
}

// Tracker accumulates per-pillar score adjustments from completed tasks.
// It keeps a per-task ledger so reverting a completion subtracts exactly
// what that task contributed, making toggles idempotent. The accumulator
// is floored at 0 and deliberately not capped; the cap to 100 is applied
// when the adjustment is combined with the raw score.
type Tracker struct {
	settings    Settings
	adjustments map[string]float64
	taskDeltas  map[string]float64
}

func NewTracker(settings Settings) *Tracker {
	return &Tracker{
		settings:    settings,
		adjustments: make(map[string]float64),
		taskDeltas:  make(map[string]float64),
	}
}

// Restore rebuilds a tracker from persisted accumulator state.
func Restore(settings Settings, adjustments, taskDeltas map[string]float64) *Tracker {
	t := NewTracker(settings)
	for k, v := range adjustments {
		t.adjustments[k] = v
	}
	for k, v := range taskDeltas {
		t.taskDeltas[k] = v
	}
	return t
}

// ApplyCompletion records a task flipping to completed and returns the
// projected pillar score. Each task contributes an even share of the
// phase gain, so completing the whole phase yields the full gain.
func (t *Tracker) ApplyCompletion(
	pillarID string,
	task domain.Task,
	phaseTaskCount int,
	hasEvidence bool,
	currentScore float64,
) (Projection, error) {
	if phaseTaskCount <= 0 {
		return Projection{}, fmt.Errorf("phase %q has no tasks", task.Phase)
	}
	if _, applied := t.taskDeltas[task.ID]; applied {
		return Projection{}, fmt.Errorf("task %q already applied", task.ID)
	}

	delta := t.settings.PhaseGain / float64(phaseTaskCount)
	if hasEvidence {
		delta *= t.settings.EvidenceBoost
	}

	t.taskDeltas[task.ID] = delta
	t.adjustments[pillarID] += delta

	return Projection{
		ProjectedScore: scoring.Combine(currentScore, delta),
		Delta:          delta,
	}, nil
}

// RevertCompletion undoes a previously applied completion. Reverting a
// task that was never applied is a no-op with a zero delta.
func (t *Tracker) RevertCompletion(pillarID, taskID string, currentScore float64) Projection {
	delta, applied := t.taskDeltas[taskID]
	if !applied {
		return Projection{ProjectedScore: currentScore}
	}

	delete(t.taskDeltas, taskID)
	t.adjustments[pillarID] -= delta
	if t.adjustments[pillarID] < 0 {
		t.adjustments[pillarID] = 0
	}

	return Projection{
		ProjectedScore: scoring.Clamp(currentScore - delta),
		Delta:          -delta,
	}
}

// Adjustment returns the accumulated adjustment for a pillar.
func (t *Tracker) Adjustment(pillarID string) float64 {
	return t.adjustments[pillarID]
}

// Adjustments returns a copy of the per-pillar accumulator state.
func (t *Tracker) Adjustments() map[string]float64 {
	out := make(map[string]float64, len(t.adjustments))
	for k, v := range t.adjustments {
		out[k] = v
	}
	return out
}

// TaskDeltas returns a copy of the per-task ledger.
func (t *Tracker) TaskDeltas() map[string]float64 {
	out := make(map[string]float64, len(t.taskDeltas))
	for k, v := range t.taskDeltas {
		out[k] = v
	}
	return out
}

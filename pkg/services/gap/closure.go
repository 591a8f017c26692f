package gap

import (
	"math"
	"sort"
	"time"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/de-tools/govern-atlas/pkg/services/scoring"
)

// CalculateClosure derives gap progress for every pillar present in the
// baseline. Pillars already at or above target when the baseline was
// taken report closed at 100% regardless of current movement; that also
// guards the divide-by-zero on a zero original gap.
func CalculateClosure(
	baseline domain.Baseline,
	current map[string]float64,
	targets map[string]float64,
	now time.Time,
) domain.GapClosure {
	pillarIDs := make([]string, 0, len(baseline.PillarScores))
	for id := range baseline.PillarScores {
		pillarIDs = append(pillarIDs, id)
	}
	sort.Strings(pillarIDs)

	progress := make([]domain.GapProgress, 0, len(pillarIDs))
	var closureSum float64

	for _, id := range pillarIDs {
		base := baseline.PillarScores[id]
		target, ok := targets[id]
		if !ok {
			target = 100
		}
		cur, ok := current[id]
		if !ok {
			cur = base
		}

		p := pillarProgress(id, base, cur, target)
		closureSum += p.PercentageClosed
		progress = append(progress, p)
	}

	closure := domain.GapClosure{Progress: progress}
	if len(progress) > 0 {
		closure.AverageGapClosure = closureSum / float64(len(progress))
	}
	closure.ProjectedCompletion = projectCompletion(baseline.CreatedAt, now, closure.AverageGapClosure)
	return closure
}

func pillarProgress(id string, base, cur, target float64) domain.GapProgress {
	p := domain.GapProgress{
		PillarID:    id,
		Target:      target,
		Baseline:    base,
		Current:     cur,
		OriginalGap: math.Max(0, target-base),
		CurrentGap:  math.Max(0, target-cur),
		Improvement: cur - base,
	}

	if p.OriginalGap == 0 {
		p.PercentageClosed = 100
		p.Status = domain.GapClosed
		return p
	}

	// Raw improvement keeps its sign; only the displayed percentage is
	// clamped, so a regression below baseline shows as 0% closed.
	p.PercentageClosed = scoring.Clamp(p.Improvement / p.OriginalGap * 100)

	switch {
	case p.PercentageClosed >= 100:
		p.Status = domain.GapClosed
	case p.PercentageClosed > 0:
		p.Status = domain.GapInProgress
	default:
		p.Status = domain.GapOpen
	}
	return p
}

// projectCompletion extrapolates linearly from the closure rate since the
// baseline was taken. It is best-effort: nil when there is no movement or
// no elapsed time to extrapolate from.
func projectCompletion(baselineAt, now time.Time, averageClosure float64) *time.Time {
	if averageClosure <= 0 || averageClosure >= 100 {
		return nil
	}
	elapsed := now.Sub(baselineAt)
	if elapsed <= 0 {
		return nil
	}
	remaining := (100 - averageClosure) / averageClosure
	eta := now.Add(time.Duration(float64(elapsed) * remaining))
	return &eta
}

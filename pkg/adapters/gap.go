package adapters

import (
	"github.com/de-tools/govern-atlas/pkg/models/api"
	"github.com/de-tools/govern-atlas/pkg/models/domain"
)

func MapGapProgressDomainToApi(g domain.GapProgress) api.GapProgress {
	return api.GapProgress{
		PillarID:         g.PillarID,
		Target:           g.Target,
		Baseline:         g.Baseline,
		Current:          g.Current,
		OriginalGap:      g.OriginalGap,
		CurrentGap:       g.CurrentGap,
		Improvement:      g.Improvement,
		PercentageClosed: g.PercentageClosed,
		Status:           string(g.Status),
	}
}

func MapGapClosureDomainToApi(c domain.GapClosure) api.GapClosure {
	res := api.GapClosure{
		AverageGapClosure:   c.AverageGapClosure,
		Progress:            make([]api.GapProgress, 0, len(c.Progress)),
		ProjectedCompletion: c.ProjectedCompletion,
	}
	for _, p := range c.Progress {
		res.Progress = append(res.Progress, MapGapProgressDomainToApi(p))
	}
	return res
}

func MapBaselineDomainToApi(b domain.Baseline) api.Baseline {
	scores := make(map[string]float64, len(b.PillarScores))
	for k, v := range b.PillarScores {
		scores[k] = v
	}
	return api.Baseline{
		Overall:      b.Overall,
		PillarScores: scores,
		CreatedAt:    b.CreatedAt,
	}
}

package plan

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/de-tools/govern-atlas/pkg/services/scoring"
)

// Phase names, in roadmap order.
const (
	PhaseFoundation = "foundation"
	PhaseHardening  = "hardening"
	PhaseOptimize   = "optimize"
)

// Settings contains the planner's estimation knobs.
type Settings struct {
	// BaseHoursPerTask is the unadjusted estimate for one remediation task.
	BaseHoursPerTask float64
	// SizeFactors scale estimates by organization size.
	SizeFactors map[domain.OrgSize]float64
	// TopRiskCount is how many highest-severity recommendations a report
	// surfaces.
	TopRiskCount int
}

// DefaultSettings returns the default planner configuration.
func DefaultSettings() Settings {
	return Settings{
		BaseHoursPerTask: 16,
		SizeFactors: map[domain.OrgSize]float64{
			domain.OrgSizeSmall:      0.8,
			domain.OrgSizeMedium:     1.0,
			domain.OrgSizeLarge:      1.3,
			domain.OrgSizeEnterprise: 1.6,
		},
		TopRiskCount: 5,
	}
}

// Generate derives recommendations from red/amber question results and
// materializes every task up front. Callers receiving an error should
// fall back to Static explicitly; the planner never panics.
func Generate(
	project *domain.Project,
	scorecard domain.Scorecard,
	settings Settings,
	now time.Time,
) (*domain.Plan, error) {
	if project == nil {
		return nil, fmt.Errorf("project is required")
	}
	if len(project.Pillars) == 0 {
		return nil, fmt.Errorf("project has no pillars")
	}

	factor, ok := settings.SizeFactors[project.Organization.Size]
	if !ok {
		return nil, fmt.Errorf("no size factor for organization size %q", project.Organization.Size)
	}

	ragByPillar := make(map[string]domain.RAGStatus, len(scorecard.Pillars))
	for _, s := range scorecard.Pillars {
		ragByPillar[s.PillarID] = s.RAG
	}

	var recs []domain.Recommendation
	for _, pillar := range project.Pillars {
		for _, q := range pillar.Questions {
			rec, ok := recommend(pillar, q, project.Responses, ragByPillar[pillar.ID])
			if ok {
				recs = append(recs, rec)
			}
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Severity != recs[j].Severity {
			return recs[i].Severity > recs[j].Severity
		}
		return recs[i].ID < recs[j].ID
	})

	p := &domain.Plan{
		GeneratedAt:     now,
		Adaptive:        true,
		Recommendations: recs,
	}

	phaseHours := map[string]float64{}
	for _, rec := range recs {
		task := domain.Task{
			ID:               uuid.NewString(),
			RecommendationID: rec.ID,
			PillarID:         rec.PillarID,
			Name:             rec.Title,
			Phase:            rec.Phase,
			Status:           domain.TaskNotStarted,
			BaseHours:        settings.BaseHoursPerTask,
			AdjustedHours:    settings.BaseHoursPerTask * factor,
		}
		phaseHours[task.Phase] += task.AdjustedHours
		p.Tasks = append(p.Tasks, task)
	}

	for i, name := range []string{PhaseFoundation, PhaseHardening, PhaseOptimize} {
		p.Phases = append(p.Phases, domain.PlanPhase{
			Name:       name,
			Order:      i + 1,
			TotalHours: phaseHours[name],
		})
	}

	return p, nil
}

// Static is the fallback plan: the same recommendations rendered as a
// flat task list without adaptive estimate adjustments.
func Static(project *domain.Project, scorecard domain.Scorecard, settings Settings, now time.Time) *domain.Plan {
	p := &domain.Plan{GeneratedAt: now, Adaptive: false}

	ragByPillar := make(map[string]domain.RAGStatus, len(scorecard.Pillars))
	for _, s := range scorecard.Pillars {
		ragByPillar[s.PillarID] = s.RAG
	}

	for _, pillar := range project.Pillars {
		for _, q := range pillar.Questions {
			rec, ok := recommend(pillar, q, project.Responses, ragByPillar[pillar.ID])
			if !ok {
				continue
			}
			p.Recommendations = append(p.Recommendations, rec)
			p.Tasks = append(p.Tasks, domain.Task{
				ID:               uuid.NewString(),
				RecommendationID: rec.ID,
				PillarID:         rec.PillarID,
				Name:             rec.Title,
				Phase:            PhaseFoundation,
				Status:           domain.TaskNotStarted,
				BaseHours:        settings.BaseHoursPerTask,
				AdjustedHours:    settings.BaseHoursPerTask,
			})
		}
	}
	p.Phases = []domain.PlanPhase{{Name: PhaseFoundation, Order: 1}}
	for _, t := range p.Tasks {
		p.Phases[0].TotalHours += t.AdjustedHours
	}
	return p
}

// TopRisks returns the highest-severity recommendations of a plan.
func TopRisks(p *domain.Plan, count int) []domain.Recommendation {
	if p == nil || count <= 0 {
		return nil
	}
	if count > len(p.Recommendations) {
		count = len(p.Recommendations)
	}
	return p.Recommendations[:count]
}

// recommend decides whether a question's answer warrants remediation.
func recommend(
	pillar domain.Pillar,
	q domain.Question,
	responses map[string]domain.Response,
	pillarRAG domain.RAGStatus,
) (domain.Recommendation, bool) {
	if q.Recommendation == "" {
		return domain.Recommendation{}, false
	}

	resp, answered := responses[q.ID]
	fraction, scorable := 0.0, false
	if answered {
		fraction, scorable = resp.Fraction()
	}

	// Unanswered or low-scoring questions drive remediation; answered
	// green ones do not.
	if scorable && scoring.RAG(fraction*100) == domain.RAGGreen {
		return domain.Recommendation{}, false
	}
	if !scorable && answered {
		// Text answers never drive recommendations on their own.
		return domain.Recommendation{}, false
	}

	severity := severityFor(q, fraction, scorable, pillarRAG)
	return domain.Recommendation{
		ID:       "rec-" + q.ID,
		PillarID: pillar.ID,
		Question: q.ID,
		Title:    q.Recommendation,
		Detail:   q.Text,
		Severity: severity,
		Phase:    phaseFor(severity),
	}, true
}

func severityFor(q domain.Question, fraction float64, scorable bool, pillarRAG domain.RAGStatus) domain.Severity {
	impact := scoring.Impact(q.Weight)

	if !scorable {
		if impact == domain.ImpactHigh {
			return domain.SeverityHigh
		}
		return domain.SeverityMedium
	}

	score := fraction * 100
	switch {
	case score < 40 && impact == domain.ImpactHigh:
		if pillarRAG == domain.RAGRed {
			return domain.SeverityCritical
		}
		return domain.SeverityHigh
	case score < 40:
		return domain.SeverityHigh
	case impact == domain.ImpactHigh:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

func phaseFor(severity domain.Severity) string {
	switch severity {
	case domain.SeverityCritical, domain.SeverityHigh:
		return PhaseFoundation
	case domain.SeverityMedium:
		return PhaseHardening
	default:
		return PhaseOptimize
	}
}

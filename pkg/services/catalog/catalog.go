package catalog

import (
	"fmt"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
)

// Default returns the built-in Power Platform governance catalog.
// Weights classify impact only; they do not enter score arithmetic.
func Default() []domain.Pillar {
	return []domain.Pillar{
		{
			ID:     "environments",
			Name:   "Environment Management",
			Target: 80,
			Questions: []domain.Question{
				{
					ID: "env-01", PillarID: "environments",
					Text:   "Is there a documented environment strategy (default, dev, test, prod)?",
					Kind:   domain.QuestionKindBoolean,
					Weight: 3,
					Recommendation: "Define and publish an environment strategy separating " +
						"maker experimentation from production workloads.",
				},
				{
					ID: "env-02", PillarID: "environments",
					Text:   "How mature is your environment provisioning process?",
					Kind:   domain.QuestionKindScale,
					Weight: 2,
					Recommendation: "Automate environment requests with an approval flow and " +
						"naming conventions.",
				},
				{
					ID: "env-03", PillarID: "environments",
					Text:           "What percentage of production environments have designated owners?",
					Kind:           domain.QuestionKindPercentage,
					Weight:         2,
					Recommendation: "Assign and record an owner for every production environment.",
				},
				{
					ID: "env-04", PillarID: "environments",
					Text:   "Describe how unused environments are identified and retired.",
					Kind:   domain.QuestionKindText,
					Weight: 1,
					Guidance: "Text answers inform the remediation plan but do not carry " +
						"a score.",
				},
			},
		},
		{
			ID:     "dlp",
			Name:   "Data Loss Prevention",
			Target: 85,
			Questions: []domain.Question{
				{
					ID: "dlp-01", PillarID: "dlp",
					Text:   "Are DLP policies applied to every environment?",
					Kind:   domain.QuestionKindBoolean,
					Weight: 3,
					Recommendation: "Create a baseline DLP policy covering all environments, " +
						"then layer per-environment exceptions.",
				},
				{
					ID: "dlp-02", PillarID: "dlp",
					Text:           "How mature is your connector classification (business/non-business/blocked)?",
					Kind:           domain.QuestionKindScale,
					Weight:         3,
					Recommendation: "Review connector classifications quarterly with data owners.",
				},
				{
					ID: "dlp-03", PillarID: "dlp",
					Text:           "What percentage of custom connectors have completed a security review?",
					Kind:           domain.QuestionKindPercentage,
					Weight:         2,
					Recommendation: "Gate custom connector deployment behind a security review.",
				},
			},
		},
		{
			ID:     "security",
			Name:   "Security & Access",
			Target: 85,
			Questions: []domain.Question{
				{
					ID: "sec-01", PillarID: "security",
					Text:           "Is privileged admin access reviewed on a defined cadence?",
					Kind:           domain.QuestionKindBoolean,
					Weight:         3,
					Recommendation: "Schedule recurring access reviews for service admin roles.",
				},
				{
					ID: "sec-02", PillarID: "security",
					Text:           "How mature is conditional access enforcement for maker activity?",
					Kind:           domain.QuestionKindScale,
					Weight:         3,
					Recommendation: "Extend conditional access policies to cover maker portals.",
				},
				{
					ID: "sec-03", PillarID: "security",
					Text:           "What percentage of apps use service principals rather than user credentials?",
					Kind:           domain.QuestionKindPercentage,
					Weight:         2,
					Recommendation: "Migrate shared-credential apps to service principal connections.",
				},
			},
		},
		{
			ID:     "alm",
			Name:   "Application Lifecycle Management",
			Target: 75,
			Questions: []domain.Question{
				{
					ID: "alm-01", PillarID: "alm",
					Text:           "Are solutions used to move customizations between environments?",
					Kind:           domain.QuestionKindBoolean,
					Weight:         2,
					Recommendation: "Adopt managed solutions for all production deployments.",
				},
				{
					ID: "alm-02", PillarID: "alm",
					Text:           "How mature is your deployment pipeline for Power Platform solutions?",
					Kind:           domain.QuestionKindScale,
					Weight:         2,
					Recommendation: "Introduce source control and automated deployment pipelines.",
				},
				{
					ID: "alm-03", PillarID: "alm",
					Text:           "What percentage of business-critical apps have a tested rollback plan?",
					Kind:           domain.QuestionKindPercentage,
					Weight:         3,
					Recommendation: "Document and rehearse rollback for business-critical apps.",
				},
			},
		},
		{
			ID:     "monitoring",
			Name:   "Monitoring & Compliance",
			Target: 70,
			Questions: []domain.Question{
				{
					ID: "mon-01", PillarID: "monitoring",
					Text:           "Is tenant-wide analytics reviewed for orphaned or unused apps?",
					Kind:           domain.QuestionKindBoolean,
					Weight:         2,
					Recommendation: "Review tenant analytics monthly and reassign orphaned apps.",
				},
				{
					ID: "mon-02", PillarID: "monitoring",
					Text:           "How mature is your audit log retention and review process?",
					Kind:           domain.QuestionKindScale,
					Weight:         3,
					Recommendation: "Forward platform audit logs to your SIEM with defined retention.",
				},
				{
					ID: "mon-03", PillarID: "monitoring",
					Text:           "What percentage of flagged compliance findings are resolved within SLA?",
					Kind:           domain.QuestionKindPercentage,
					Weight:         2,
					Recommendation: "Track compliance findings with owners and due dates.",
				},
			},
		},
	}
}

// Validate checks structural invariants of a catalog: globally unique
// question ids, positive weights, known kinds, and non-empty pillars.
func Validate(pillars []domain.Pillar) error {
	if len(pillars) == 0 {
		return fmt.Errorf("catalog has no pillars")
	}

	seenPillars := make(map[string]struct{})
	seenQuestions := make(map[string]struct{})

	for _, p := range pillars {
		if p.ID == "" {
			return fmt.Errorf("pillar with empty id")
		}
		if _, dup := seenPillars[p.ID]; dup {
			return fmt.Errorf("duplicate pillar id %q", p.ID)
		}
		seenPillars[p.ID] = struct{}{}

		if p.Target < 0 || p.Target > 100 {
			return fmt.Errorf("pillar %q target %v out of range", p.ID, p.Target)
		}
		if len(p.Questions) == 0 {
			return fmt.Errorf("pillar %q has no questions", p.ID)
		}

		for _, q := range p.Questions {
			if q.ID == "" {
				return fmt.Errorf("pillar %q has a question with empty id", p.ID)
			}
			if _, dup := seenQuestions[q.ID]; dup {
				return fmt.Errorf("duplicate question id %q", q.ID)
			}
			seenQuestions[q.ID] = struct{}{}

			if q.PillarID != p.ID {
				return fmt.Errorf("question %q belongs to pillar %q, found under %q",
					q.ID, q.PillarID, p.ID)
			}
			if q.Weight <= 0 {
				return fmt.Errorf("question %q has non-positive weight", q.ID)
			}
			switch q.Kind {
			case domain.QuestionKindBoolean, domain.QuestionKindScale,
				domain.QuestionKindPercentage, domain.QuestionKindText:
			default:
				return fmt.Errorf("question %q has unknown kind %q", q.ID, q.Kind)
			}
		}
	}
	return nil
}

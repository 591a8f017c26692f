package project

import (
	"fmt"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/de-tools/govern-atlas/pkg/services/plan"
	"github.com/de-tools/govern-atlas/pkg/services/scoring"
)

// BuildReport assembles the assessment report consumed by the terminal
// reporter and the document exporters.
func (c *Controller) BuildReport() *domain.Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	card := c.scorecardLocked()
	now := c.now()

	report := &domain.Report{
		Title:     fmt.Sprintf("Governance Assessment: %s", c.project.Name),
		Overall:   card.Overall,
		RAG:       scoring.RAG(card.Overall),
		Generated: now,
		Period: domain.TimePeriod{
			Start:    c.project.CreatedAt,
			End:      now,
			Duration: int(now.Sub(c.project.CreatedAt).Hours() / 24),
		},
	}

	for _, pillar := range c.project.Pillars {
		score := pillarCombined(card, pillar.ID)
		section := domain.ReportSection{
			Title: pillar.Name,
			Summary: map[string]interface{}{
				"score":  fmt.Sprintf("%.1f", score),
				"target": fmt.Sprintf("%.0f", pillar.Target),
				"rag":    string(scoring.RAG(score)),
			},
		}
		for _, q := range pillar.Questions {
			detail := domain.ReportDetail{
				Name:        q.ID,
				Value:       "unanswered",
				Description: q.Text,
			}
			if resp, ok := c.project.Responses[q.ID]; ok {
				if fraction, scorable := resp.Fraction(); scorable {
					detail.Value = fmt.Sprintf("%.0f", fraction*100)
					detail.Unit = "pts"
				} else if resp.Kind == domain.ResponseText {
					detail.Value = resp.Text
				}
			}
			section.Details = append(section.Details, detail)
		}
		report.Sections = append(report.Sections, section)
	}

	if c.project.Plan != nil {
		report.TopRisks = plan.TopRisks(c.project.Plan, c.planSettings.TopRiskCount)
	}
	return report
}

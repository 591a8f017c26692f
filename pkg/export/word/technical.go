package word

import (
	"context"
	"fmt"
	"io"

	"github.com/fumiama/go-docx"

	"github.com/de-tools/govern-atlas/pkg/export"
	"github.com/de-tools/govern-atlas/pkg/models/domain"
)

// TechnicalExporter produces the implementation guide: one section per
// red or amber gap with the concrete remediation actions for it.
type TechnicalExporter struct{}

// TechnicalFactory satisfies export.ExporterFactory.
func TechnicalFactory() (export.Exporter, error) {
	return &TechnicalExporter{}, nil
}

func (e *TechnicalExporter) Export(_ context.Context, payload export.Payload, w io.Writer) error {
	if payload.Report == nil {
		return fmt.Errorf("word export requires an assessment report")
	}

	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(payload.Report.Title + " - Implementation Guide").Size("36").Bold()
	doc.AddParagraph().AddText(
		fmt.Sprintf("Generated %s", payload.Report.Generated.Format("2 January 2006")))

	names := pillarNames(payload)
	sections := 0
	for _, score := range payload.Scorecard.Pillars {
		if score.RAG == domain.RAGGreen {
			continue
		}
		sections++
		writeGapSection(doc, names[score.PillarID], score, payload)
	}

	if sections == 0 {
		doc.AddParagraph().AddText("All pillars are at or above their maturity targets. No remediation sections were generated.")
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write technical document: %w", err)
	}
	return nil
}

func writeGapSection(doc *docx.Docx, name string, score domain.PillarScore, payload export.Payload) {
	doc.AddParagraph().AddText(name).Size("28").Bold()
	doc.AddParagraph().AddText(
		fmt.Sprintf("Current score %.1f, status %s (%d of %d questions answered)",
			score.Combined, score.RAG, score.Answered, score.Total))

	count := 0
	if payload.Plan != nil {
		for _, rec := range payload.Plan.Recommendations {
			if rec.PillarID != score.PillarID {
				continue
			}
			count++
			doc.AddParagraph().AddText(
				fmt.Sprintf("Action %d: %s", count, rec.Title)).Bold()
			if rec.Detail != "" {
				doc.AddParagraph().AddText(rec.Detail)
			}
			for _, task := range payload.Plan.Tasks {
				if task.RecommendationID != rec.ID {
					continue
				}
				doc.AddParagraph().AddText(
					fmt.Sprintf("Task: %s (%s phase, %.0f hours, %s)",
						task.Name, task.Phase, task.AdjustedHours, task.Status))
			}
		}
	}
	if count == 0 {
		doc.AddParagraph().AddText("No remediation actions generated for this pillar. Rerun the planner after capturing responses.")
	}
}

package word

import (
	"context"
	"fmt"
	"io"

	"github.com/fumiama/go-docx"

	"github.com/de-tools/govern-atlas/pkg/export"
	"github.com/de-tools/govern-atlas/pkg/models/domain"
)

const tableWidth = 8000

var severityLabels = map[domain.Severity]string{
	domain.SeverityLow:      "Low",
	domain.SeverityMedium:   "Medium",
	domain.SeverityHigh:     "High",
	domain.SeverityCritical: "Critical",
}

// ExecutiveExporter produces the leadership-facing summary document:
// scores, risk register, roadmap phases, and the top risks.
type ExecutiveExporter struct{}

// ExecutiveFactory satisfies export.ExporterFactory.
func ExecutiveFactory() (export.Exporter, error) {
	return &ExecutiveExporter{}, nil
}

func (e *ExecutiveExporter) Export(_ context.Context, payload export.Payload, w io.Writer) error {
	if payload.Report == nil {
		return fmt.Errorf("word export requires an assessment report")
	}

	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(payload.Report.Title).Size("36").Bold()
	doc.AddParagraph().AddText(
		fmt.Sprintf("Overall maturity %.1f/100 (%s)", payload.Report.Overall, payload.Report.RAG)).Size("24")
	doc.AddParagraph().AddText(
		fmt.Sprintf("Generated %s", payload.Report.Generated.Format("2 January 2006")))

	doc.AddParagraph().AddText("Pillar Scores").Size("28").Bold()
	if err := writeScoreTable(doc, payload); err != nil {
		return err
	}

	doc.AddParagraph().AddText("Risk Register").Size("28").Bold()
	if err := writeRiskRegister(doc, payload); err != nil {
		return err
	}

	if payload.Plan != nil {
		doc.AddParagraph().AddText("Roadmap").Size("28").Bold()
		for _, phase := range payload.Plan.Phases {
			doc.AddParagraph().AddText(
				fmt.Sprintf("Phase %d: %s (%.0f hours)", phase.Order, phase.Name, phase.TotalHours))
		}
	}

	if len(payload.Report.TopRisks) > 0 {
		doc.AddParagraph().AddText("Top Risks").Size("28").Bold()
		for i, risk := range payload.Report.TopRisks {
			doc.AddParagraph().AddText(
				fmt.Sprintf("%d. [%s] %s", i+1, severityLabels[risk.Severity], risk.Title))
		}
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write executive document: %w", err)
	}
	return nil
}

func writeScoreTable(doc *docx.Docx, payload export.Payload) error {
	rows := len(payload.Scorecard.Pillars) + 1
	table := doc.AddTable(rows, 3, tableWidth, nil)
	if table == nil || len(table.TableRows) != rows {
		return fmt.Errorf("build score table")
	}

	setCell(table, 0, 0, "Pillar")
	setCell(table, 0, 1, "Score")
	setCell(table, 0, 2, "Status")

	names := pillarNames(payload)
	for i, s := range payload.Scorecard.Pillars {
		setCell(table, i+1, 0, names[s.PillarID])
		setCell(table, i+1, 1, fmt.Sprintf("%.1f", s.Combined))
		setCell(table, i+1, 2, string(s.RAG))
	}
	return nil
}

func writeRiskRegister(doc *docx.Docx, payload export.Payload) error {
	var risks []domain.Recommendation
	if payload.Plan != nil {
		risks = payload.Plan.Recommendations
	}

	table := doc.AddTable(len(risks)+1, 4, tableWidth, nil)
	if table == nil || len(table.TableRows) != len(risks)+1 {
		return fmt.Errorf("build risk register table")
	}

	setCell(table, 0, 0, "ID")
	setCell(table, 0, 1, "Pillar")
	setCell(table, 0, 2, "Severity")
	setCell(table, 0, 3, "Risk")

	for i, risk := range risks {
		setCell(table, i+1, 0, risk.ID)
		setCell(table, i+1, 1, risk.PillarID)
		setCell(table, i+1, 2, severityLabels[risk.Severity])
		setCell(table, i+1, 3, risk.Title)
	}
	return nil
}

func setCell(table *docx.Table, row, col int, text string) {
	table.TableRows[row].TableCells[col].AddParagraph().AddText(text)
}

func pillarNames(payload export.Payload) map[string]string {
	names := make(map[string]string, len(payload.Pillars))
	for _, p := range payload.Pillars {
		names[p.ID] = p.Name
	}
	return names
}

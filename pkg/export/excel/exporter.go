package excel

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/de-tools/govern-atlas/pkg/adapters"
	"github.com/de-tools/govern-atlas/pkg/export"
	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/de-tools/govern-atlas/pkg/models/store"
	"github.com/de-tools/govern-atlas/pkg/services/scoring"
)

const (
	resultsSheet = "Assessment Results"
	summarySheet = "Summary"
	devDocsSheet = "Developer Documentation"
)

// Exporter renders the assessment as a three-sheet workbook.
type Exporter struct{}

// Factory satisfies export.ExporterFactory.
func Factory() (export.Exporter, error) {
	return &Exporter{}, nil
}

func (e *Exporter) Export(_ context.Context, payload export.Payload, w io.Writer) error {
	if len(payload.Pillars) == 0 {
		return fmt.Errorf("excel export requires the question catalog")
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := writeResults(f, payload); err != nil {
		return err
	}
	if err := writeSummary(f, payload); err != nil {
		return err
	}
	if err := writeDevDocs(f, payload); err != nil {
		return err
	}

	// Drop the default sheet so the workbook opens on results.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeResults(f *excelize.File, payload export.Payload) error {
	if _, err := f.NewSheet(resultsSheet); err != nil {
		return fmt.Errorf("create results sheet: %w", err)
	}

	header := []interface{}{
		"Pillar", "Question", "Text", "Kind", "Impact",
		"Response", "Score", "RAG", "Evidence", "Owner",
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write results header: %w", err)
	}

	evidence, owners := taskIndex(payload)

	row := 2
	for _, pillar := range payload.Pillars {
		for _, q := range pillar.Questions {
			value, score, rag := questionCells(q, payload)
			cells := []interface{}{
				pillar.Name, q.ID, q.Text, string(q.Kind), string(scoring.Impact(q.Weight)),
				value, score, rag, evidence[q.ID], owners[q.ID],
			}
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetSheetRow(resultsSheet, cell, &cells); err != nil {
				return fmt.Errorf("write results row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.SetColWidth(resultsSheet, "C", "C", 60); err != nil {
		return fmt.Errorf("set results column width: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, payload export.Payload) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	header := []interface{}{
		"Pillar", "Completion %", "Maturity", "Adjustment", "Combined", "Target", "RAG",
	}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}

	targets := make(map[string]float64, len(payload.Pillars))
	names := make(map[string]string, len(payload.Pillars))
	for _, p := range payload.Pillars {
		targets[p.ID] = p.Target
		names[p.ID] = p.Name
	}

	for i, s := range payload.Scorecard.Pillars {
		completion := 0.0
		if s.Total > 0 {
			completion = float64(s.Answered) / float64(s.Total) * 100
		}
		cells := []interface{}{
			names[s.PillarID], completion, s.Raw, s.Adjustment, s.Combined,
			targets[s.PillarID], string(s.RAG),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(summarySheet, cell, &cells); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+2, err)
		}
	}

	overall := []interface{}{"Overall", "", "", "", payload.Scorecard.Overall, "", ""}
	cell := fmt.Sprintf("A%d", len(payload.Scorecard.Pillars)+3)
	if err := f.SetSheetRow(summarySheet, cell, &overall); err != nil {
		return fmt.Errorf("write overall row: %w", err)
	}
	return nil
}

// writeDevDocs emits only questions carrying guidance or an active
// recommendation, for the implementation team.
func writeDevDocs(f *excelize.File, payload export.Payload) error {
	if _, err := f.NewSheet(devDocsSheet); err != nil {
		return fmt.Errorf("create dev docs sheet: %w", err)
	}

	header := []interface{}{"Question", "Recommendation", "Notes"}
	if err := f.SetSheetRow(devDocsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write dev docs header: %w", err)
	}

	row := 2
	for _, pillar := range payload.Pillars {
		for _, q := range pillar.Questions {
			if q.Recommendation == "" && q.Guidance == "" {
				continue
			}
			cells := []interface{}{q.ID, q.Recommendation, q.Guidance}
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetSheetRow(devDocsSheet, cell, &cells); err != nil {
				return fmt.Errorf("write dev docs row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.SetColWidth(devDocsSheet, "B", "C", 70); err != nil {
		return fmt.Errorf("set dev docs column width: %w", err)
	}
	return nil
}

func questionCells(q domain.Question, payload export.Payload) (value interface{}, score interface{}, rag string) {
	if payload.State == nil {
		return "", "", ""
	}
	resp, ok := payload.State.Project.Responses[q.ID]
	if !ok {
		return "", "", ""
	}

	restored := adapters.MapStoreResponseToDomain(resp)
	if fraction, scorable := restored.Fraction(); scorable {
		pts := fraction * 100
		return responseLabel(resp), pts, string(scoring.RAG(pts))
	}
	return resp.Text, "", ""
}

func responseLabel(r store.Response) string {
	switch r.Kind {
	case "boolean":
		if r.Bool {
			return "yes"
		}
		return "no"
	case "scale":
		return fmt.Sprintf("%d/5", r.Scale)
	case "percentage":
		return fmt.Sprintf("%.0f%%", r.Percent)
	default:
		return r.Text
	}
}

// taskIndex maps question ids to the evidence files and owners of their
// remediation tasks.
func taskIndex(payload export.Payload) (evidence map[string]string, owners map[string]string) {
	evidence = map[string]string{}
	owners = map[string]string{}
	if payload.Plan == nil {
		return evidence, owners
	}

	questionByRec := map[string]string{}
	for _, rec := range payload.Plan.Recommendations {
		questionByRec[rec.ID] = rec.Question
	}

	for _, task := range payload.Plan.Tasks {
		qid, ok := questionByRec[task.RecommendationID]
		if !ok {
			continue
		}
		if len(task.Evidence) > 0 {
			evidence[qid] = task.Evidence[len(task.Evidence)-1]
		}
		if task.Owner != "" {
			owners[qid] = task.Owner
		}
	}
	return evidence, owners
}

package jsonexport

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/govern-atlas/pkg/export"
	"github.com/de-tools/govern-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testState() *store.ProjectState {
	return &store.ProjectState{
		Version:   store.StateVersion,
		LastSaved: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Project: store.ProjectSnapshot{
			ID:        "proj-1",
			Name:      "contoso",
			OrgName:   "Contoso",
			OrgSize:   "medium",
			SessionID: "session-1",
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			Responses: map[string]store.Response{
				"q1": {Kind: "scale", Scale: 5},
			},
			Baseline: &store.Baseline{
				Overall:      80,
				PillarScores: map[string]float64{"security": 80},
				CreatedAt:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			},
			Adjustments: map[string]float64{"security": 10},
			TaskDeltas:  map[string]float64{"t1": 10},
			Tasks: []store.Task{
				{
					ID: "t1", RecommendationID: "rec-q3", PillarID: "security",
					Name: "Schedule access reviews.", Phase: "foundation",
					Status: "completed", BaseHours: 16, AdjustedHours: 16,
					History: []store.StatusChange{
						{From: "not_started", To: "completed",
							At: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
					},
				},
			},
		},
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	exporter, err := Factory()
	require.NoError(t, err)

	var buf bytes.Buffer
	original := testState()
	require.NoError(t, exporter.Export(context.Background(), export.Payload{State: original}, &buf))

	// Timestamps travel as ISO strings.
	assert.Contains(t, buf.String(), "2026-02-15T00:00:00Z")

	imported, err := Import(&buf)
	require.NoError(t, err)

	assert.Equal(t, original, imported)
	assert.True(t, imported.Project.Baseline.CreatedAt.Equal(
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestExport_RequiresState(t *testing.T) {
	exporter, err := Factory()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = exporter.Export(context.Background(), export.Payload{}, &buf)
	assert.ErrorContains(t, err, "requires project state")
}

func TestImport_Validation(t *testing.T) {
	t.Run("not json", func(t *testing.T) {
		_, err := Import(strings.NewReader("definitely not json"))
		assert.ErrorContains(t, err, "not valid JSON")
	})

	t.Run("wrong version", func(t *testing.T) {
		_, err := Import(strings.NewReader(`{"version": 99, "project": {"id": "p1"}}`))
		assert.ErrorContains(t, err, "unsupported export version")
	})

	t.Run("missing project id", func(t *testing.T) {
		_, err := Import(strings.NewReader(`{"version": 1, "project": {}}`))
		assert.ErrorContains(t, err, "no project")
	})

	t.Run("nil responses are normalized", func(t *testing.T) {
		state, err := Import(strings.NewReader(`{"version": 1, "project": {"id": "p1"}}`))
		require.NoError(t, err)
		assert.NotNil(t, state.Project.Responses)
	})
}

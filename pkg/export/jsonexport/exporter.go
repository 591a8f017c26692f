package jsonexport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/de-tools/govern-atlas/pkg/export"
	"github.com/de-tools/govern-atlas/pkg/models/store"
)

// Exporter writes the full project state verbatim as indented JSON with
// ISO timestamps.
type Exporter struct{}

// Factory satisfies export.ExporterFactory.
func Factory() (export.Exporter, error) {
	return &Exporter{}, nil
}

func (e *Exporter) Export(_ context.Context, payload export.Payload, w io.Writer) error {
	if payload.State == nil {
		return fmt.Errorf("json export requires project state")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload.State); err != nil {
		return fmt.Errorf("encode project state: %w", err)
	}
	return nil
}

// Import reads a previously exported project. The only structural check
// before date revival is the envelope shape: a supported version and a
// project object with an id. Dates are revived from ISO strings by the
// JSON decoder.
func Import(r io.Reader) (*store.ProjectState, error) {
	var state store.ProjectState
	dec := json.NewDecoder(r)
	if err := dec.Decode(&state); err != nil {
		return nil, fmt.Errorf("import file is not valid JSON: %w", err)
	}
	if state.Version != store.StateVersion {
		return nil, fmt.Errorf("unsupported export version %d", state.Version)
	}
	if state.Project.ID == "" {
		return nil, fmt.Errorf("import file has no project")
	}
	if state.Project.Responses == nil {
		state.Project.Responses = map[string]store.Response{}
	}
	return &state, nil
}

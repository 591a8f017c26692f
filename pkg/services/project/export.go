package project

import (
	"context"
	"errors"

	"github.com/de-tools/govern-atlas/pkg/export"
	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/de-tools/govern-atlas/pkg/models/store"
)

// State snapshots the project into its persisted form.
func (c *Controller) State() *store.ProjectState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshotProject(c.project, c.tracker)
}

// ExportPayload assembles everything a formatter needs. Optional parts
// such as the gap analysis and the plan are left nil when the project
// has no baseline or no generated plan yet.
func (c *Controller) ExportPayload(ctx context.Context) (export.Payload, error) {
	c.mu.Lock()
	payload := export.Payload{
		State:     snapshotProject(c.project, c.tracker),
		Scorecard: c.scorecardLocked(),
	}
	payload.Pillars = make([]domain.Pillar, len(c.project.Pillars))
	copy(payload.Pillars, c.project.Pillars)
	c.mu.Unlock()

	payload.Report = c.BuildReport()

	if gaps, err := c.GapAnalysis(); err == nil {
		payload.Gaps = &gaps
	} else if !errors.Is(err, ErrNoBaseline) {
		return export.Payload{}, err
	}

	if p, err := c.Plan(); err == nil {
		payload.Plan = p
	} else if !errors.Is(err, ErrNoPlan) {
		return export.Payload{}, err
	}

	entries, err := c.auditLog.EntriesByTimeDesc(ctx)
	if err != nil {
		return export.Payload{}, err
	}
	payload.Audit = entries

	return payload, nil
}

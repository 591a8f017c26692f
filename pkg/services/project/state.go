package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/govern-atlas/pkg/adapters"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/de-tools/govern-atlas/pkg/models/store"
	"github.com/de-tools/govern-atlas/pkg/services/tracker"
	"github.com/de-tools/govern-atlas/pkg/store/state"
)

// Restore rebuilds a controller from persisted state. The catalog is not
// persisted; the caller supplies the same pillars the project was
// created with.
func Restore(ctx context.Context, pillars []domain.Pillar, deps Dependencies) (*Controller, error) {
	if deps.State == nil {
		return nil, fmt.Errorf("state store is required")
	}
	persisted, err := deps.State.Load(ctx)
	if err != nil {
		return nil, err
	}
	return fromState(persisted, pillars, deps)
}

// LoadOrCreate restores a persisted project or starts a fresh one when
// no state exists yet.
func LoadOrCreate(
	ctx context.Context,
	name string,
	org domain.OrgProfile,
	pillars []domain.Pillar,
	deps Dependencies,
) (*Controller, error) {
	ctrl, err := Restore(ctx, pillars, deps)
	if err == nil {
		return ctrl, nil
	}
	if errors.Is(err, state.ErrNotFound) || errors.Is(err, state.ErrCorrupt) {
		return NewController(name, org, pillars, deps)
	}
	return nil, err
}

// ImportState replaces the aggregate with a previously exported project
// and persists the replacement. The running catalog is kept; responses,
// baseline, tasks, and tracker state come from the import.
func (c *Controller) ImportState(ctx context.Context, persisted *store.ProjectState) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	restored, err := fromState(persisted, c.project.Pillars, Dependencies{
		Audit:   c.auditLog,
		State:   c.stateStore,
		Tracker: c.trackerSettings,
		Plan:    c.planSettings,
		Now:     c.now,
	})
	if err != nil {
		return err
	}
	c.project = restored.project
	c.tracker = restored.tracker
	return c.persistLocked(ctx)
}

func fromState(persisted *store.ProjectState, pillars []domain.Pillar, deps Dependencies) (*Controller, error) {
	if deps.Audit == nil {
		return nil, fmt.Errorf("audit service is required")
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}

	snap := persisted.Project
	proj := &domain.Project{
		ID:        snap.ID,
		Name:      snap.Name,
		SessionID: snap.SessionID,
		CreatedAt: snap.CreatedAt,
		UpdatedAt: snap.UpdatedAt,
		Organization: domain.OrgProfile{
			Name:    snap.OrgName,
			Size:    domain.OrgSize(snap.OrgSize),
			User:    snap.User,
			Targets: snap.Targets,
		},
		Pillars:   make([]domain.Pillar, len(pillars)),
		Responses: make(map[string]domain.Response, len(snap.Responses)),
	}
	copy(proj.Pillars, pillars)
	for i := range proj.Pillars {
		if target, ok := snap.Targets[proj.Pillars[i].ID]; ok {
			proj.Pillars[i].Target = target
		}
	}

	for id, r := range snap.Responses {
		proj.Responses[id] = adapters.MapStoreResponseToDomain(r)
	}

	if snap.Baseline != nil {
		proj.Baseline = &domain.Baseline{
			Overall:      snap.Baseline.Overall,
			PillarScores: snap.Baseline.PillarScores,
			CreatedAt:    snap.Baseline.CreatedAt,
		}
	}

	if len(snap.Tasks) > 0 {
		proj.Plan = &domain.Plan{GeneratedAt: snap.UpdatedAt, Adaptive: true}
		for _, t := range snap.Tasks {
			proj.Plan.Tasks = append(proj.Plan.Tasks, restoreTask(t))
		}
	}

	return &Controller{
		project:         proj,
		tracker:         tracker.Restore(deps.Tracker, snap.Adjustments, snap.TaskDeltas),
		auditLog:        deps.Audit,
		stateStore:      deps.State,
		trackerSettings: deps.Tracker,
		planSettings:    deps.Plan,
		now:             deps.Now,
	}, nil
}

func snapshotProject(proj *domain.Project, t *tracker.Tracker) *store.ProjectState {
	snap := store.ProjectSnapshot{
		ID:          proj.ID,
		Name:        proj.Name,
		OrgName:     proj.Organization.Name,
		OrgSize:     string(proj.Organization.Size),
		User:        proj.Organization.User,
		SessionID:   proj.SessionID,
		CreatedAt:   proj.CreatedAt,
		UpdatedAt:   proj.UpdatedAt,
		Targets:     proj.Organization.Targets,
		Responses:   make(map[string]store.Response, len(proj.Responses)),
		Adjustments: t.Adjustments(),
		TaskDeltas:  t.TaskDeltas(),
	}

	for id, r := range proj.Responses {
		snap.Responses[id] = adapters.MapDomainResponseToStore(r)
	}

	if proj.Baseline != nil {
		snap.Baseline = &store.Baseline{
			Overall:      proj.Baseline.Overall,
			PillarScores: proj.Baseline.PillarScores,
			CreatedAt:    proj.Baseline.CreatedAt,
		}
	}

	if proj.Plan != nil {
		for _, task := range proj.Plan.Tasks {
			snap.Tasks = append(snap.Tasks, persistTask(task))
		}
	}

	return &store.ProjectState{
		Version: store.StateVersion,
		Project: snap,
	}
}

func persistTask(t domain.Task) store.Task {
	out := store.Task{
		ID:               t.ID,
		RecommendationID: t.RecommendationID,
		PillarID:         t.PillarID,
		Name:             t.Name,
		Phase:            t.Phase,
		Status:           string(t.Status),
		BaseHours:        t.BaseHours,
		AdjustedHours:    t.AdjustedHours,
		Owner:            t.Owner,
		Evidence:         append([]string{}, t.Evidence...),
	}
	for _, h := range t.History {
		out.History = append(out.History, store.StatusChange{
			From:    string(h.From),
			To:      string(h.To),
			At:      h.At,
			User:    h.User,
			Comment: h.Comment,
		})
	}
	return out
}

func restoreTask(t store.Task) domain.Task {
	out := domain.Task{
		ID:               t.ID,
		RecommendationID: t.RecommendationID,
		PillarID:         t.PillarID,
		Name:             t.Name,
		Phase:            t.Phase,
		Status:           domain.TaskStatus(t.Status),
		BaseHours:        t.BaseHours,
		AdjustedHours:    t.AdjustedHours,
		Owner:            t.Owner,
		Evidence:         append([]string{}, t.Evidence...),
	}
	for _, h := range t.History {
		out.History = append(out.History, domain.StatusChange{
			From:    domain.TaskStatus(h.From),
			To:      domain.TaskStatus(h.To),
			At:      h.At,
			User:    h.User,
			Comment: h.Comment,
		})
	}
	return out
}

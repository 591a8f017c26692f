package project

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
	storemodel "github.com/de-tools/govern-atlas/pkg/models/store"
	"github.com/de-tools/govern-atlas/pkg/services/audit"
	"github.com/de-tools/govern-atlas/pkg/services/plan"
	"github.com/de-tools/govern-atlas/pkg/services/tracker"
	"github.com/de-tools/govern-atlas/pkg/store/memory"
	auditstore "github.com/de-tools/govern-atlas/pkg/store/sqlite/audit"
	"github.com/de-tools/govern-atlas/pkg/store/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctrl  *Controller
	audit *audit.Service
	deps  Dependencies
	clock *fakeClock
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func testPillars() []domain.Pillar {
	return []domain.Pillar{
		{
			ID: "security", Name: "Security", Target: 85,
			Questions: []domain.Question{
				{ID: "q1", PillarID: "security", Kind: domain.QuestionKindScale, Weight: 2,
					Recommendation: "Harden access."},
				{ID: "q2", PillarID: "security", Kind: domain.QuestionKindScale, Weight: 1},
				{ID: "q3", PillarID: "security", Kind: domain.QuestionKindBoolean, Weight: 3,
					Recommendation: "Schedule access reviews."},
			},
		},
	}
}

func setupFixture(t *testing.T) *fixture {
	auditSvc, err := audit.NewService(memory.NewAuditStore())
	require.NoError(t, err)

	stateStore, err := state.NewFileStore(t.TempDir(), "contoso")
	require.NoError(t, err)

	clock := &fakeClock{t: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	deps := Dependencies{
		Audit:   auditSvc,
		State:   stateStore,
		Tracker: tracker.DefaultSettings(),
		Plan:    plan.DefaultSettings(),
		Now:     clock.Now,
	}

	ctrl, err := NewController("contoso",
		domain.OrgProfile{Name: "Contoso", Size: domain.OrgSizeMedium, User: "jordan"},
		testPillars(), deps)
	require.NoError(t, err)

	return &fixture{ctrl: ctrl, audit: auditSvc, deps: deps, clock: clock}
}

// answerBaseline records the q1=5, q2=3 example, scoring the pillar at 80.
func answerBaseline(t *testing.T, f *fixture) {
	ctx := context.Background()
	_, err := f.ctrl.SetResponse(ctx, "q1", domain.ScaleResponse(5))
	require.NoError(t, err)
	card, err := f.ctrl.SetResponse(ctx, "q2", domain.ScaleResponse(3))
	require.NoError(t, err)
	require.InDelta(t, 80.0, card.Pillars[0].Combined, 1e-9)
}

// completeOnlyTask generates the plan (one recommendation, q3) and flips
// its single task to completed.
func completeOnlyTask(t *testing.T, f *fixture) string {
	ctx := context.Background()
	p, err := f.ctrl.GeneratePlan(ctx)
	require.NoError(t, err)
	require.Len(t, p.Tasks, 1)

	taskID := p.Tasks[0].ID
	_, err = f.ctrl.SetTaskStatus(ctx, taskID, domain.TaskCompleted, "jordan", "")
	require.NoError(t, err)
	return taskID
}

func TestNewController(t *testing.T) {
	t.Run("profile targets override catalog targets", func(t *testing.T) {
		auditSvc, err := audit.NewService(memory.NewAuditStore())
		require.NoError(t, err)
		stateStore, err := state.NewFileStore(t.TempDir(), "contoso")
		require.NoError(t, err)

		ctrl, err := NewController("contoso",
			domain.OrgProfile{Name: "Contoso", Size: domain.OrgSizeMedium,
				Targets: map[string]float64{"security": 95}},
			testPillars(),
			Dependencies{Audit: auditSvc, State: stateStore})
		require.NoError(t, err)

		assert.InDelta(t, 95.0, ctrl.Project().Pillars[0].Target, 1e-9)
	})

	t.Run("requires collaborators", func(t *testing.T) {
		stateStore, err := state.NewFileStore(t.TempDir(), "contoso")
		require.NoError(t, err)
		_, err = NewController("contoso", domain.OrgProfile{}, testPillars(),
			Dependencies{State: stateStore})
		assert.Error(t, err)

		auditSvc, err := audit.NewService(memory.NewAuditStore())
		require.NoError(t, err)
		_, err = NewController("contoso", domain.OrgProfile{}, testPillars(),
			Dependencies{Audit: auditSvc})
		assert.Error(t, err)
	})
}

func TestSetResponse(t *testing.T) {
	t.Run("worked scoring example", func(t *testing.T) {
		f := setupFixture(t)
		answerBaseline(t, f)
	})

	t.Run("unknown question", func(t *testing.T) {
		f := setupFixture(t)
		_, err := f.ctrl.SetResponse(context.Background(), "ghost", domain.ScaleResponse(3))
		assert.ErrorIs(t, err, ErrUnknownQuestion)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		f := setupFixture(t)
		_, err := f.ctrl.SetResponse(context.Background(), "q1", domain.BooleanResponse(true))
		assert.ErrorContains(t, err, "does not match")
	})
}

func TestTaskCompletionToggle(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	answerBaseline(t, f)

	taskID := completeOnlyTask(t, f)

	// One task in its phase: completing it projects the full phase gain.
	card := f.ctrl.Scores()
	assert.InDelta(t, 90.0, card.Pillars[0].Combined, 1e-9)

	// Toggling back restores the adjustment exactly.
	card, err := f.ctrl.SetTaskStatus(ctx, taskID, domain.TaskInProgress, "jordan", "rework")
	require.NoError(t, err)
	assert.InDelta(t, 80.0, card.Pillars[0].Combined, 1e-9)
	assert.InDelta(t, 0.0, card.Pillars[0].Adjustment, 1e-9)

	// Same-status transition is a no-op.
	again, err := f.ctrl.SetTaskStatus(ctx, taskID, domain.TaskInProgress, "jordan", "")
	require.NoError(t, err)
	assert.InDelta(t, card.Overall, again.Overall, 1e-9)
}

func TestTaskCompletionCap(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.ctrl.SetResponse(ctx, "q1", domain.ScaleResponse(5))
	require.NoError(t, err)
	_, err = f.ctrl.SetResponse(ctx, "q2", domain.ScaleResponse(5))
	require.NoError(t, err)

	completeOnlyTask(t, f)

	card := f.ctrl.Scores()
	assert.InDelta(t, 100.0, card.Pillars[0].Combined, 1e-9)
	// The accumulator keeps the uncapped adjustment.
	assert.InDelta(t, 10.0, card.Pillars[0].Adjustment, 1e-9)
}

func TestSetTaskStatus_Validation(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	answerBaseline(t, f)

	_, err := f.ctrl.GeneratePlan(ctx)
	require.NoError(t, err)

	t.Run("unknown task", func(t *testing.T) {
		_, err := f.ctrl.SetTaskStatus(ctx, "ghost", domain.TaskCompleted, "", "")
		assert.ErrorIs(t, err, ErrUnknownTask)
	})

	t.Run("invalid status", func(t *testing.T) {
		p, err := f.ctrl.Plan()
		require.NoError(t, err)
		_, err = f.ctrl.SetTaskStatus(ctx, p.Tasks[0].ID, "abandoned", "", "")
		assert.ErrorContains(t, err, "invalid task status")
	})

	t.Run("history records transitions", func(t *testing.T) {
		p, err := f.ctrl.Plan()
		require.NoError(t, err)
		taskID := p.Tasks[0].ID

		_, err = f.ctrl.SetTaskStatus(ctx, taskID, domain.TaskInProgress, "jordan", "starting")
		require.NoError(t, err)

		task := f.ctrl.Project().Task(taskID)
		require.NotNil(t, task)
		require.Len(t, task.History, 1)
		assert.Equal(t, domain.TaskNotStarted, task.History[0].From)
		assert.Equal(t, domain.TaskInProgress, task.History[0].To)
		assert.Equal(t, "jordan", task.History[0].User)
	})
}

func TestBaselineImmutability(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	answerBaseline(t, f)

	first, err := f.ctrl.CreateBaseline(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, first.PillarScores["security"], 1e-9)

	// Scores move, the baseline must not.
	_, err = f.ctrl.SetResponse(ctx, "q2", domain.ScaleResponse(5))
	require.NoError(t, err)

	second, err := f.ctrl.CreateBaseline(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	stored, err := f.ctrl.Baseline()
	require.NoError(t, err)
	assert.Equal(t, first, stored)

	// Only an explicit reset replaces the snapshot.
	reset, err := f.ctrl.ResetBaseline(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, reset.PillarScores["security"], 1e-9)
	assert.True(t, reset.CreatedAt.After(first.CreatedAt))
}

func TestBaseline_NoneYet(t *testing.T) {
	f := setupFixture(t)
	_, err := f.ctrl.Baseline()
	assert.ErrorIs(t, err, ErrNoBaseline)

	_, err = f.ctrl.GapAnalysis()
	assert.ErrorIs(t, err, ErrNoBaseline)
}

func TestGapAnalysis(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	answerBaseline(t, f)

	_, err := f.ctrl.CreateBaseline(ctx)
	require.NoError(t, err)

	_, err = f.ctrl.SetResponse(ctx, "q2", domain.ScaleResponse(4))
	require.NoError(t, err)

	closure, err := f.ctrl.GapAnalysis()
	require.NoError(t, err)
	require.Len(t, closure.Progress, 1)

	p := closure.Progress[0]
	assert.Equal(t, "security", p.PillarID)
	assert.InDelta(t, 80.0, p.Baseline, 1e-9)
	assert.InDelta(t, 90.0, p.Current, 1e-9)
	assert.InDelta(t, 5.0, p.OriginalGap, 1e-9)
	assert.Equal(t, domain.GapClosed, p.Status)
}

func TestAuditTrail(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	// Five mutations: two answers, a baseline, a task completion and an
	// evidence upload.
	answerBaseline(t, f)
	_, err := f.ctrl.CreateBaseline(ctx)
	require.NoError(t, err)
	taskID := completeOnlyTask(t, f)
	require.NoError(t, f.ctrl.AttachEvidence(ctx, taskID, "review-policy.pdf", "jordan"))

	entries, err := f.audit.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	types := make([]domain.AuditEntryType, 0, len(entries))
	for _, e := range entries {
		types = append(types, e.Type)
		assert.NotEmpty(t, e.ID)
		assert.NotEmpty(t, e.SessionID)
	}
	assert.Equal(t, []domain.AuditEntryType{
		domain.AuditAssessmentChanged,
		domain.AuditAssessmentChanged,
		domain.AuditBaselineCreated,
		domain.AuditTaskCompleted,
		domain.AuditEvidenceUploaded,
	}, types)

	// Newest first for display.
	desc, err := f.audit.EntriesByTimeDesc(ctx)
	require.NoError(t, err)
	require.Len(t, desc, 5)
	for i := 1; i < len(desc); i++ {
		assert.False(t, desc[i].At.After(desc[i-1].At))
	}
}

func TestAttachEvidence(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	answerBaseline(t, f)

	_, err := f.ctrl.GeneratePlan(ctx)
	require.NoError(t, err)
	p, err := f.ctrl.Plan()
	require.NoError(t, err)
	taskID := p.Tasks[0].ID

	t.Run("evidence is linked to the task", func(t *testing.T) {
		require.NoError(t, f.ctrl.AttachEvidence(ctx, taskID, "policy.pdf", "jordan"))
		task := f.ctrl.Project().Task(taskID)
		assert.Equal(t, []string{"policy.pdf"}, task.Evidence)
	})

	t.Run("evidence boosts the completion delta", func(t *testing.T) {
		card, err := f.ctrl.SetTaskStatus(ctx, taskID, domain.TaskCompleted, "jordan", "")
		require.NoError(t, err)
		assert.InDelta(t, 12.0, card.Pillars[0].Adjustment, 1e-9)
	})

	t.Run("empty file name is rejected", func(t *testing.T) {
		assert.Error(t, f.ctrl.AttachEvidence(ctx, taskID, "", "jordan"))
	})

	t.Run("unknown task", func(t *testing.T) {
		err := f.ctrl.AttachEvidence(ctx, "ghost", "policy.pdf", "jordan")
		assert.ErrorIs(t, err, ErrUnknownTask)
	})
}

func TestRestoreRoundTrip(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	answerBaseline(t, f)

	_, err := f.ctrl.CreateBaseline(ctx)
	require.NoError(t, err)
	taskID := completeOnlyTask(t, f)

	before := f.ctrl.Scores()

	restored, err := Restore(ctx, testPillars(), f.deps)
	require.NoError(t, err)

	after := restored.Scores()
	assert.InDelta(t, before.Overall, after.Overall, 1e-9)
	assert.InDelta(t, before.Pillars[0].Adjustment, after.Pillars[0].Adjustment, 1e-9)

	baseline, err := restored.Baseline()
	require.NoError(t, err)
	assert.InDelta(t, 80.0, baseline.PillarScores["security"], 1e-9)

	task := restored.Project().Task(taskID)
	require.NotNil(t, task)
	assert.Equal(t, domain.TaskCompleted, task.Status)

	// A restored controller keeps honoring the per-task ledger.
	card, err := restored.SetTaskStatus(ctx, taskID, domain.TaskBlocked, "jordan", "")
	require.NoError(t, err)
	assert.InDelta(t, 80.0, card.Pillars[0].Combined, 1e-9)
}

func TestLoadOrCreate(t *testing.T) {
	auditSvc, err := audit.NewService(memory.NewAuditStore())
	require.NoError(t, err)
	stateStore, err := state.NewFileStore(t.TempDir(), "contoso")
	require.NoError(t, err)

	deps := Dependencies{
		Audit:   auditSvc,
		State:   stateStore,
		Tracker: tracker.DefaultSettings(),
		Plan:    plan.DefaultSettings(),
	}
	org := domain.OrgProfile{Name: "Contoso", Size: domain.OrgSizeMedium}

	first, err := LoadOrCreate(context.Background(), "contoso", org, testPillars(), deps)
	require.NoError(t, err)

	_, err = first.SetResponse(context.Background(), "q1", domain.ScaleResponse(4))
	require.NoError(t, err)

	second, err := LoadOrCreate(context.Background(), "contoso", org, testPillars(), deps)
	require.NoError(t, err)
	assert.Equal(t, first.Project().ID, second.Project().ID)
}

// flakyAuditStore fails Append on demand to exercise commit failures.
type flakyAuditStore struct {
	auditstore.Store
	failAppend bool
}

func (s *flakyAuditStore) Append(ctx context.Context, record storemodel.AuditRecord) error {
	if s.failAppend {
		return fmt.Errorf("audit storage unavailable")
	}
	return s.Store.Append(ctx, record)
}

func TestCommitFailureRollsBack(t *testing.T) {
	ctx := context.Background()

	flaky := &flakyAuditStore{Store: memory.NewAuditStore()}
	auditSvc, err := audit.NewService(flaky)
	require.NoError(t, err)
	stateStore, err := state.NewFileStore(t.TempDir(), "contoso")
	require.NoError(t, err)

	ctrl, err := NewController("contoso",
		domain.OrgProfile{Name: "Contoso", Size: domain.OrgSizeMedium, User: "jordan"},
		testPillars(),
		Dependencies{
			Audit:   auditSvc,
			State:   stateStore,
			Tracker: tracker.DefaultSettings(),
			Plan:    plan.DefaultSettings(),
		})
	require.NoError(t, err)

	_, err = ctrl.SetResponse(ctx, "q1", domain.ScaleResponse(5))
	require.NoError(t, err)
	_, err = ctrl.SetResponse(ctx, "q2", domain.ScaleResponse(3))
	require.NoError(t, err)
	p, err := ctrl.GeneratePlan(ctx)
	require.NoError(t, err)
	require.Len(t, p.Tasks, 1)
	taskID := p.Tasks[0].ID

	entryCount := func() int {
		entries, err := auditSvc.Entries(ctx)
		require.NoError(t, err)
		return len(entries)
	}

	t.Run("failed completion leaves no trace", func(t *testing.T) {
		before := entryCount()
		flaky.failAppend = true
		_, err := ctrl.SetTaskStatus(ctx, taskID, domain.TaskCompleted, "jordan", "")
		flaky.failAppend = false
		require.Error(t, err)

		card := ctrl.Scores()
		assert.InDelta(t, 80.0, card.Pillars[0].Combined, 1e-9)
		assert.InDelta(t, 0.0, card.Pillars[0].Adjustment, 1e-9)

		task := ctrl.Project().Task(taskID)
		require.NotNil(t, task)
		assert.Equal(t, domain.TaskNotStarted, task.Status)
		assert.Empty(t, task.History)
		assert.Equal(t, before, entryCount())
	})

	t.Run("failed revert keeps the completion", func(t *testing.T) {
		_, err := ctrl.SetTaskStatus(ctx, taskID, domain.TaskCompleted, "jordan", "")
		require.NoError(t, err)

		before := entryCount()
		flaky.failAppend = true
		_, err = ctrl.SetTaskStatus(ctx, taskID, domain.TaskBlocked, "jordan", "")
		flaky.failAppend = false
		require.Error(t, err)

		card := ctrl.Scores()
		assert.InDelta(t, 90.0, card.Pillars[0].Combined, 1e-9)
		assert.InDelta(t, 10.0, card.Pillars[0].Adjustment, 1e-9)
		assert.Equal(t, domain.TaskCompleted, ctrl.Project().Task(taskID).Status)
		assert.Equal(t, before, entryCount())

		// The ledger still reverts cleanly once the trail is writable.
		card, err = ctrl.SetTaskStatus(ctx, taskID, domain.TaskBlocked, "jordan", "")
		require.NoError(t, err)
		assert.InDelta(t, 80.0, card.Pillars[0].Combined, 1e-9)
	})

	t.Run("failed evidence upload is detached", func(t *testing.T) {
		flaky.failAppend = true
		err := ctrl.AttachEvidence(ctx, taskID, "policy.pdf", "jordan")
		flaky.failAppend = false
		require.Error(t, err)

		assert.Empty(t, ctrl.Project().Task(taskID).Evidence)
	})
}

func TestImportState(t *testing.T) {
	ctx := context.Background()

	source := setupFixture(t)
	answerBaseline(t, source)
	_, err := source.ctrl.CreateBaseline(ctx)
	require.NoError(t, err)
	taskID := completeOnlyTask(t, source)

	target := setupFixture(t)
	require.NoError(t, target.ctrl.ImportState(ctx, source.ctrl.State()))

	card := target.ctrl.Scores()
	assert.InDelta(t, 90.0, card.Pillars[0].Combined, 1e-9)

	baseline, err := target.ctrl.Baseline()
	require.NoError(t, err)
	assert.InDelta(t, 80.0, baseline.PillarScores["security"], 1e-9)

	task := target.ctrl.Project().Task(taskID)
	require.NotNil(t, task)
	assert.Equal(t, domain.TaskCompleted, task.Status)

	// The imported ledger drives future toggles.
	card, err = target.ctrl.SetTaskStatus(ctx, taskID, domain.TaskInProgress, "jordan", "")
	require.NoError(t, err)
	assert.InDelta(t, 80.0, card.Pillars[0].Combined, 1e-9)
}

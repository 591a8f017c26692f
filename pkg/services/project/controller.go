package project

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/de-tools/govern-atlas/pkg/services/audit"
	"github.com/de-tools/govern-atlas/pkg/services/gap"
	"github.com/de-tools/govern-atlas/pkg/services/plan"
	"github.com/de-tools/govern-atlas/pkg/services/scoring"
	"github.com/de-tools/govern-atlas/pkg/services/tracker"
	"github.com/de-tools/govern-atlas/pkg/store/state"
)

var (
	ErrNoBaseline      = errors.New("no baseline snapshot exists")
	ErrNoPlan          = errors.New("no remediation plan has been generated")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrUnknownTask     = errors.New("unknown task")
)

// Controller owns one project aggregate. All mutations are serialized by
// a single mutex; every score-affecting mutation appends exactly one
// audit entry and persists the aggregate before returning, so callers
// always read their own writes.
type Controller struct {
	mu sync.Mutex

	project         *domain.Project
	tracker         *tracker.Tracker
	auditLog        *audit.Service
	stateStore      state.Store
	trackerSettings tracker.Settings
	planSettings    plan.Settings
	now             func() time.Time
}

// Dependencies are the collaborators a controller needs.
type Dependencies struct {
	Audit   *audit.Service
	State   state.Store
	Tracker tracker.Settings
	Plan    plan.Settings
	Now     func() time.Time
}

// NewController creates a fresh project over the given catalog. Pillar
// targets from the organization profile override catalog defaults.
func NewController(
	name string,
	org domain.OrgProfile,
	pillars []domain.Pillar,
	deps Dependencies,
) (*Controller, error) {
	if deps.Audit == nil {
		return nil, fmt.Errorf("audit service is required")
	}
	if deps.State == nil {
		return nil, fmt.Errorf("state store is required")
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}

	owned := make([]domain.Pillar, len(pillars))
	copy(owned, pillars)
	for i := range owned {
		if target, ok := org.Targets[owned[i].ID]; ok {
			owned[i].Target = target
		}
	}

	now := deps.Now()
	ctrl := &Controller{
		project: &domain.Project{
			ID:           uuid.NewString(),
			Name:         name,
			Organization: org,
			SessionID:    uuid.NewString(),
			CreatedAt:    now,
			UpdatedAt:    now,
			Pillars:      owned,
			Responses:    make(map[string]domain.Response),
		},
		tracker:         tracker.NewTracker(deps.Tracker),
		auditLog:        deps.Audit,
		stateStore:      deps.State,
		trackerSettings: deps.Tracker,
		planSettings:    deps.Plan,
		now:             deps.Now,
	}
	return ctrl, nil
}

// SetResponse records an answer and rescans the project. The question's
// kind must match the response variant.
func (c *Controller) SetResponse(ctx context.Context, questionID string, resp domain.Response) (domain.Scorecard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := c.project.Question(questionID)
	if q == nil {
		return domain.Scorecard{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if !kindMatches(q.Kind, resp) {
		return domain.Scorecard{}, fmt.Errorf("response kind does not match question %s (%s)", questionID, q.Kind)
	}

	before := c.scorecardLocked()
	prev, hadPrev := c.project.Responses[questionID]
	c.project.Responses[questionID] = resp
	after := c.scorecardLocked()

	err := c.commitLocked(ctx, domain.AuditEntry{
		Type:        domain.AuditAssessmentChanged,
		Category:    q.PillarID,
		ScoreBefore: before.Overall,
		ScoreAfter:  after.Overall,
		Metadata:    map[string]string{"question": questionID},
	})
	if err != nil {
		// Roll the answer back so memory and storage stay consistent.
		if hadPrev {
			c.project.Responses[questionID] = prev
		} else {
			delete(c.project.Responses, questionID)
		}
		return domain.Scorecard{}, err
	}
	return after, nil
}

// Scores computes the current scorecard.
func (c *Controller) Scores() domain.Scorecard {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scorecardLocked()
}

// Baseline returns the baseline snapshot, or ErrNoBaseline.
func (c *Controller) Baseline() (domain.Baseline, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.project.Baseline == nil {
		return domain.Baseline{}, ErrNoBaseline
	}
	return *c.project.Baseline, nil
}

// CreateBaseline snapshots current scores as the immutable baseline.
// Calling it again once a baseline exists is a no-op returning the
// existing snapshot; only ResetBaseline replaces it.
func (c *Controller) CreateBaseline(ctx context.Context) (domain.Baseline, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.project.Baseline != nil {
		return *c.project.Baseline, nil
	}
	return c.snapshotBaselineLocked(ctx)
}

// ResetBaseline discards the existing baseline and snapshots a new one.
func (c *Controller) ResetBaseline(ctx context.Context) (domain.Baseline, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.project.Baseline = nil
	return c.snapshotBaselineLocked(ctx)
}

func (c *Controller) snapshotBaselineLocked(ctx context.Context) (domain.Baseline, error) {
	card := c.scorecardLocked()
	baseline := domain.Baseline{
		Overall:      card.Overall,
		PillarScores: make(map[string]float64, len(card.Pillars)),
		CreatedAt:    c.now(),
	}
	for _, s := range card.Pillars {
		baseline.PillarScores[s.PillarID] = s.Combined
	}
	c.project.Baseline = &baseline

	err := c.commitLocked(ctx, domain.AuditEntry{
		Type:        domain.AuditBaselineCreated,
		ScoreBefore: card.Overall,
		ScoreAfter:  card.Overall,
	})
	if err != nil {
		c.project.Baseline = nil
		return domain.Baseline{}, err
	}
	return baseline, nil
}

// GeneratePlan builds the remediation plan, falling back to the static
// plan when adaptive generation fails. The failure is logged, never
// surfaced as a blocking error.
func (c *Controller) GeneratePlan(ctx context.Context) (*domain.Plan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	card := c.scorecardLocked()
	p, err := plan.Generate(c.project, card, c.planSettings, c.now())
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("adaptive plan generation failed, using static plan")
		p = plan.Static(c.project, card, c.planSettings, c.now())
	}
	c.project.Plan = p

	if err := c.persistLocked(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// Plan returns the current plan, or ErrNoPlan.
func (c *Controller) Plan() (*domain.Plan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.project.Plan == nil {
		return nil, ErrNoPlan
	}
	return c.project.Plan, nil
}

// SetTaskStatus transitions a task and applies or reverts its score
// adjustment when the transition crosses the completed boundary.
func (c *Controller) SetTaskStatus(
	ctx context.Context,
	taskID string,
	status domain.TaskStatus,
	user, comment string,
) (domain.Scorecard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !domain.ValidTaskStatus(status) {
		return domain.Scorecard{}, fmt.Errorf("invalid task status %q", status)
	}
	task := c.project.Task(taskID)
	if task == nil {
		return domain.Scorecard{}, fmt.Errorf("%w: %s", ErrUnknownTask, taskID)
	}
	if task.Status == status {
		return c.scorecardLocked(), nil
	}

	before := c.scorecardLocked()
	prev := task.Status
	prevAdjustments := c.tracker.Adjustments()
	prevDeltas := c.tracker.TaskDeltas()
	task.Status = status
	task.History = append(task.History, domain.StatusChange{
		From:    prev,
		To:      status,
		At:      c.now(),
		User:    user,
		Comment: comment,
	})

	entryType := domain.AuditTaskStatusChange
	switch {
	case status == domain.TaskCompleted:
		entryType = domain.AuditTaskCompleted
		_, err := c.tracker.ApplyCompletion(
			task.PillarID,
			*task,
			c.phaseTaskCountLocked(task),
			len(task.Evidence) > 0,
			pillarCombined(before, task.PillarID),
		)
		if err != nil {
			task.Status = prev
			task.History = task.History[:len(task.History)-1]
			return domain.Scorecard{}, fmt.Errorf("apply task completion: %w", err)
		}
	case prev == domain.TaskCompleted:
		c.tracker.RevertCompletion(task.PillarID, task.ID, pillarCombined(before, task.PillarID))
	}

	after := c.scorecardLocked()
	err := c.commitLocked(ctx, domain.AuditEntry{
		Type:        entryType,
		Category:    task.PillarID,
		User:        user,
		ScoreBefore: before.Overall,
		ScoreAfter:  after.Overall,
		Metadata: map[string]string{
			"task": task.ID,
			"from": string(prev),
			"to":   string(status),
		},
	})
	if err != nil {
		// Roll the transition and its score delta back so the aggregate
		// never carries a change that has no audit entry.
		task.Status = prev
		task.History = task.History[:len(task.History)-1]
		c.tracker = tracker.Restore(c.trackerSettings, prevAdjustments, prevDeltas)
		return domain.Scorecard{}, err
	}
	return after, nil
}

// AttachEvidence links an uploaded evidence file to a task.
func (c *Controller) AttachEvidence(ctx context.Context, taskID, fileName, user string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	task := c.project.Task(taskID)
	if task == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTask, taskID)
	}
	if fileName == "" {
		return fmt.Errorf("evidence file name is required")
	}
	task.Evidence = append(task.Evidence, fileName)

	card := c.scorecardLocked()
	err := c.commitLocked(ctx, domain.AuditEntry{
		Type:        domain.AuditEvidenceUploaded,
		Category:    task.PillarID,
		User:        user,
		ScoreBefore: card.Overall,
		ScoreAfter:  card.Overall,
		Metadata:    map[string]string{"task": task.ID, "file": fileName},
	})
	if err != nil {
		task.Evidence = task.Evidence[:len(task.Evidence)-1]
		return err
	}
	return nil
}

// GapAnalysis derives gap closure from the baseline and current scores.
func (c *Controller) GapAnalysis() (domain.GapClosure, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.project.Baseline == nil {
		return domain.GapClosure{}, ErrNoBaseline
	}

	card := c.scorecardLocked()
	current := make(map[string]float64, len(card.Pillars))
	for _, s := range card.Pillars {
		current[s.PillarID] = s.Combined
	}
	targets := make(map[string]float64, len(c.project.Pillars))
	for _, p := range c.project.Pillars {
		targets[p.ID] = p.Target
	}
	return gap.CalculateClosure(*c.project.Baseline, current, targets, c.now()), nil
}

// Project returns a shallow view of the aggregate for exporters.
func (c *Controller) Project() *domain.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.project
}

// Audit exposes the audit service for read paths.
func (c *Controller) Audit() *audit.Service {
	return c.auditLog
}

func (c *Controller) scorecardLocked() domain.Scorecard {
	scores := make([]domain.PillarScore, 0, len(c.project.Pillars))
	for _, pillar := range c.project.Pillars {
		raw := scoring.ComputePillarScore(pillar, c.project.Responses)
		adj := c.tracker.Adjustment(pillar.ID)
		combined := scoring.Combine(raw, adj)
		scores = append(scores, domain.PillarScore{
			PillarID:   pillar.ID,
			Raw:        raw,
			Adjustment: adj,
			Combined:   combined,
			Answered:   scoring.ScorableAnswers(pillar, c.project.Responses),
			Total:      len(pillar.Questions),
			RAG:        scoring.RAG(combined),
		})
	}
	return domain.Scorecard{
		Overall: scoring.OverallScore(scores),
		Pillars: scores,
	}
}

// phaseTaskCountLocked counts the task's phase siblings within its pillar.
func (c *Controller) phaseTaskCountLocked(task *domain.Task) int {
	total := 0
	for i := range c.project.Plan.Tasks {
		t := &c.project.Plan.Tasks[i]
		if t.Phase == task.Phase && t.PillarID == task.PillarID {
			total++
		}
	}
	return total
}

// commitLocked appends the audit entry and persists the aggregate. The
// entry is written first so no mutation ever lands without its record.
func (c *Controller) commitLocked(ctx context.Context, entry domain.AuditEntry) error {
	entry.At = c.now()
	entry.SessionID = c.project.SessionID
	if entry.User == "" {
		entry.User = c.project.Organization.User
	}
	if _, err := c.auditLog.Append(ctx, entry); err != nil {
		return err
	}
	return c.persistLocked(ctx)
}

func (c *Controller) persistLocked(ctx context.Context) error {
	c.project.UpdatedAt = c.now()
	snapshot := snapshotProject(c.project, c.tracker)
	if err := c.stateStore.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("persist project state: %w", err)
	}
	return nil
}

func kindMatches(kind domain.QuestionKind, resp domain.Response) bool {
	switch kind {
	case domain.QuestionKindBoolean:
		return resp.Kind == domain.ResponseBoolean
	case domain.QuestionKindScale:
		return resp.Kind == domain.ResponseScale
	case domain.QuestionKindPercentage:
		return resp.Kind == domain.ResponsePercentage
	case domain.QuestionKindText:
		return resp.Kind == domain.ResponseText
	default:
		return false
	}
}

func pillarCombined(card domain.Scorecard, pillarID string) float64 {
	for _, s := range card.Pillars {
		if s.PillarID == pillarID {
			return s.Combined
		}
	}
	return 0
}

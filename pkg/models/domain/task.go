package domain

import "time"

// TaskStatus is the lifecycle state of a remediation task.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskPlanning   TaskStatus = "planning"
	TaskInProgress TaskStatus = "in_progress"
	TaskBlocked    TaskStatus = "blocked"
	TaskCompleted  TaskStatus = "completed"
)

// ValidTaskStatus reports whether s is a known lifecycle state.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskNotStarted, TaskPlanning, TaskInProgress, TaskBlocked, TaskCompleted:
		return true
	}
	return false
}

// StatusChange records one task status transition.
type StatusChange struct {
	From    TaskStatus
	To      TaskStatus
	At      time.Time
	User    string
	Comment string
}

// Task is a remediation work item tied to a recommendation.
// Tasks are materialized when the plan is generated, never lazily.
type Task struct {
	ID               string
	RecommendationID string
	PillarID         string
	Name             string
	Phase            string
	Status           TaskStatus
	BaseHours        float64
	AdjustedHours    float64
	Owner            string
	Evidence         []string
	History          []StatusChange
}

// Recommendation is a remediation suggestion derived from a red/amber result.
type Recommendation struct {
	ID       string
	PillarID string
	Question string
	Title    string
	Detail   string
	Severity Severity
	Phase    string
}

// Plan is a generated remediation roadmap.
type Plan struct {
	GeneratedAt     time.Time
	Adaptive        bool
	Phases          []PlanPhase
	Recommendations []Recommendation
	Tasks           []Task
}

// PlanPhase is one roadmap stage grouping tasks.
type PlanPhase struct {
	Name       string
	Order      int
	TotalHours float64
}

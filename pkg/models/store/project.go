package store

import "time"

// StateVersion is the schema version of the persisted project blob.
const StateVersion = 1

// ProjectState is the versioned JSON envelope written by the state store.
type ProjectState struct {
	Version   int             `json:"version"`
	LastSaved time.Time       `json:"last_saved"`
	Project   ProjectSnapshot `json:"project"`
}

// ProjectSnapshot is the serializable project aggregate.
type ProjectSnapshot struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	OrgName     string              `json:"org_name"`
	OrgSize     string              `json:"org_size"`
	User        string              `json:"user"`
	SessionID   string              `json:"session_id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Targets     map[string]float64  `json:"targets,omitempty"`
	Responses   map[string]Response `json:"responses"`
	Baseline    *Baseline           `json:"baseline,omitempty"`
	Adjustments map[string]float64  `json:"adjustments,omitempty"`
	TaskDeltas  map[string]float64  `json:"task_deltas,omitempty"`
	Tasks       []Task              `json:"tasks,omitempty"`
}

// Response is the persisted tagged-union answer value.
type Response struct {
	Kind    string  `json:"kind"`
	Bool    bool    `json:"bool,omitempty"`
	Scale   int     `json:"scale,omitempty"`
	Percent float64 `json:"percent,omitempty"`
	Text    string  `json:"text,omitempty"`
}

// Baseline is the persisted immutable first snapshot.
type Baseline struct {
	Overall      float64            `json:"overall"`
	PillarScores map[string]float64 `json:"pillar_scores"`
	CreatedAt    time.Time          `json:"created_at"`
}

// Task is the persisted remediation task with its transition history.
type Task struct {
	ID               string         `json:"id"`
	RecommendationID string         `json:"recommendation_id"`
	PillarID         string         `json:"pillar_id"`
	Name             string         `json:"name"`
	Phase            string         `json:"phase"`
	Status           string         `json:"status"`
	BaseHours        float64        `json:"base_hours"`
	AdjustedHours    float64        `json:"adjusted_hours"`
	Owner            string         `json:"owner,omitempty"`
	Evidence         []string       `json:"evidence,omitempty"`
	History          []StatusChange `json:"history,omitempty"`
}

// StatusChange is one persisted task transition.
type StatusChange struct {
	From    string    `json:"from"`
	To      string    `json:"to"`
	At      time.Time `json:"at"`
	User    string    `json:"user,omitempty"`
	Comment string    `json:"comment,omitempty"`
}

package api

import "time"

type AuditEntry struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	At          time.Time         `json:"at"`
	Category    string            `json:"category,omitempty"`
	User        string            `json:"user,omitempty"`
	SessionID   string            `json:"session_id,omitempty"`
	ScoreBefore float64           `json:"score_before"`
	ScoreAfter  float64           `json:"score_after"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type AuditSummary struct {
	TotalEntries     int            `json:"total_entries"`
	CountsByType     map[string]int `json:"counts_by_type"`
	CountsByPillar   map[string]int `json:"counts_by_pillar"`
	FirstEntry       *time.Time     `json:"first_entry,omitempty"`
	LastEntry        *time.Time     `json:"last_entry,omitempty"`
	NetScoreChange   float64        `json:"net_score_change"`
	SessionsObserved int            `json:"sessions_observed"`
}

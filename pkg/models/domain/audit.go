package domain

import "time"

type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// AuditEntryType identifies the mutation that produced an audit entry.
type AuditEntryType string

const (
	AuditAssessmentChanged AuditEntryType = "assessment_changed"
	AuditTaskCompleted     AuditEntryType = "task_completed"
	AuditEvidenceUploaded  AuditEntryType = "evidence_uploaded"
	AuditScoreUpdated      AuditEntryType = "score_updated"
	AuditTaskStatusChange  AuditEntryType = "task_status_change"
	AuditBaselineCreated   AuditEntryType = "baseline_created"
)

// AuditEntry is an immutable record of one score-affecting event.
type AuditEntry struct {
	ID          string
	Type        AuditEntryType
	At          time.Time
	Category    string
	User        string
	SessionID   string
	ScoreBefore float64
	ScoreAfter  float64
	Metadata    map[string]string
}

// AuditSummary aggregates an audit trail for reporting.
type AuditSummary struct {
	TotalEntries     int
	CountsByType     map[AuditEntryType]int
	CountsByPillar   map[string]int
	FirstEntry       *time.Time
	LastEntry        *time.Time
	NetScoreChange   float64
	SessionsObserved int
}

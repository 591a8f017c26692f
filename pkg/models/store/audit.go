package store

import "time"

// AuditRecord is the persisted shape of an audit entry.
type AuditRecord struct {
	ID          string
	Type        string
	At          time.Time
	Category    string
	User        string
	SessionID   string
	ScoreBefore float64
	ScoreAfter  float64
	Metadata    map[string]string
}

// AuditStats summarizes the persisted audit trail.
type AuditStats struct {
	RecordsCount    int64
	FirstRecordTime *time.Time
}

package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/de-tools/govern-atlas/pkg/models/store"
	"github.com/de-tools/govern-atlas/pkg/store/sqlite"
)

// Store is the append-only persistence port for audit entries.
// Records are never updated or deleted once appended.
type Store interface {
	Append(ctx context.Context, record store.AuditRecord) error
	List(ctx context.Context) ([]store.AuditRecord, error)
	GetStats(ctx context.Context) (*store.AuditStats, error)
}

type auditStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &auditStore{db: db}, nil
}

func (s *auditStore) Append(ctx context.Context, record store.AuditRecord) error {
	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := `
		INSERT INTO audit_entries (
			id, type, at, category, user, session_id,
			score_before, score_after, metadata
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	args := []interface{}{
		record.ID,
		record.Type,
		record.At.UTC().Format(time.RFC3339Nano),
		record.Category,
		record.User,
		record.SessionID,
		record.ScoreBefore,
		record.ScoreAfter,
		metadata,
	}

	tx := sqlite.GetTransaction(ctx)
	if tx == nil {
		_, err = s.db.ExecContext(ctx, query, args...)
	} else {
		_, err = tx.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (s *auditStore) List(ctx context.Context) ([]store.AuditRecord, error) {
	query := `
		SELECT id, type, at, category, user, session_id, score_before, score_after, metadata
		FROM audit_entries
		ORDER BY seq ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()
	return scanAuditRows(rows)
}

func (s *auditStore) GetStats(ctx context.Context) (*store.AuditStats, error) {
	query := `SELECT COUNT(*), MIN(at) FROM audit_entries`
	var total int64
	var earliest sql.NullString
	if err := s.db.QueryRowContext(ctx, query).Scan(&total, &earliest); err != nil {
		return nil, fmt.Errorf("get audit stats: %w", err)
	}
	stats := &store.AuditStats{RecordsCount: total}
	if earliest.Valid {
		if t, err := parseTimestamp(earliest.String); err == nil {
			stats.FirstRecordTime = &t
		}
	}
	return stats, nil
}

func scanAuditRows(rows *sql.Rows) ([]store.AuditRecord, error) {
	records := make([]store.AuditRecord, 0)
	for rows.Next() {
		var (
			id, typ, at             string
			category, user, session sql.NullString
			scoreBefore, scoreAfter float64
			metadataRaw             []byte
		)
		if err := rows.Scan(&id, &typ, &at, &category, &user, &session,
			&scoreBefore, &scoreAfter, &metadataRaw); err != nil {
			return nil, err
		}

		ts, err := parseTimestamp(at)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", at, err)
		}

		md := map[string]string{}
		if len(metadataRaw) > 0 {
			_ = json.Unmarshal(metadataRaw, &md)
		}

		records = append(records, store.AuditRecord{
			ID:          id,
			Type:        typ,
			At:          ts,
			Category:    category.String,
			User:        user.String,
			SessionID:   session.String,
			ScoreBefore: scoreBefore,
			ScoreAfter:  scoreAfter,
			Metadata:    md,
		})
	}
	return records, rows.Err()
}

// parseTimestamp normalizes persisted timestamps: entries written by this
// store are RFC3339Nano, but imported trails may carry the second-precision
// form or a bare SQLite datetime.
func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp layout")
}

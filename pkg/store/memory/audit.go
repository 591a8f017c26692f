package memory

import (
	"context"
	"sync"

	"github.com/de-tools/govern-atlas/pkg/models/store"
	"github.com/de-tools/govern-atlas/pkg/store/sqlite/audit"
)

// NewAuditStore returns an in-memory append-only audit store. It backs
// tests and ephemeral CLI runs where no database path is configured.
func NewAuditStore() audit.Store {
	return &auditStore{}
}

type auditStore struct {
	mu      sync.Mutex
	records []store.AuditRecord
}

func (s *auditStore) Append(_ context.Context, record store.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *auditStore) List(_ context.Context) ([]store.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.AuditRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *auditStore) GetStats(_ context.Context) (*store.AuditStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &store.AuditStats{RecordsCount: int64(len(s.records))}
	if len(s.records) > 0 {
		first := s.records[0].At
		stats.FirstRecordTime = &first
	}
	return stats, nil
}

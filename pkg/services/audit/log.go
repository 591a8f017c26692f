package audit

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/de-tools/govern-atlas/pkg/adapters"
	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/de-tools/govern-atlas/pkg/models/store"
	auditstore "github.com/de-tools/govern-atlas/pkg/store/sqlite/audit"
)

// Service is the append-only audit trail. Entries are immutable once
// appended; consumers sort explicitly rather than trusting storage order,
// because imported trails may have been serialized elsewhere.
type Service struct {
	store auditstore.Store
}

func NewService(store auditstore.Store) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("audit store is required")
	}
	return &Service{store: store}, nil
}

// Append assigns the entry an id and timestamp if missing and persists it.
func (s *Service) Append(ctx context.Context, entry domain.AuditEntry) (domain.AuditEntry, error) {
	if entry.Type == "" {
		return domain.AuditEntry{}, fmt.Errorf("audit entry type is required")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	if err := s.store.Append(ctx, adapters.MapAuditEntryDomainToStore(entry)); err != nil {
		return domain.AuditEntry{}, fmt.Errorf("append audit entry: %w", err)
	}
	return entry, nil
}

// Entries returns the trail in insertion order.
func (s *Service) Entries(ctx context.Context) ([]domain.AuditEntry, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	entries := make([]domain.AuditEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, adapters.MapAuditRecordStoreToDomain(r))
	}
	return entries, nil
}

// EntriesByTimeDesc returns the trail newest-first for display.
func (s *Service) EntriesByTimeDesc(ctx context.Context) ([]domain.AuditEntry, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].At.After(entries[j].At)
	})
	return entries, nil
}

// Summary loads the trail and aggregates it for reporting.
func (s *Service) Summary(ctx context.Context) (domain.AuditSummary, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return domain.AuditSummary{}, err
	}
	return GenerateReport(entries), nil
}

// Stats reports storage-level counters from the underlying store.
func (s *Service) Stats(ctx context.Context) (*store.AuditStats, error) {
	stats, err := s.store.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("audit stats: %w", err)
	}
	return stats, nil
}

// GenerateReport summarizes a trail. It never mutates the entries.
func GenerateReport(entries []domain.AuditEntry) domain.AuditSummary {
	summary := domain.AuditSummary{
		TotalEntries:   len(entries),
		CountsByType:   make(map[domain.AuditEntryType]int),
		CountsByPillar: make(map[string]int),
	}

	sessions := make(map[string]struct{})
	for _, e := range entries {
		summary.CountsByType[e.Type]++
		if e.Category != "" {
			summary.CountsByPillar[e.Category]++
		}
		if e.SessionID != "" {
			sessions[e.SessionID] = struct{}{}
		}
		summary.NetScoreChange += e.ScoreAfter - e.ScoreBefore

		at := e.At
		if summary.FirstEntry == nil || at.Before(*summary.FirstEntry) {
			t := at
			summary.FirstEntry = &t
		}
		if summary.LastEntry == nil || at.After(*summary.LastEntry) {
			t := at
			summary.LastEntry = &t
		}
	}
	summary.SessionsObserved = len(sessions)
	return summary
}

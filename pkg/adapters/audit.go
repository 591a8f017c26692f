package adapters

import (
	"github.com/de-tools/govern-atlas/pkg/models/api"
	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/de-tools/govern-atlas/pkg/models/store"
)

func MapAuditEntryDomainToApi(e domain.AuditEntry) api.AuditEntry {
	return api.AuditEntry{
		ID:          e.ID,
		Type:        string(e.Type),
		At:          e.At,
		Category:    e.Category,
		User:        e.User,
		SessionID:   e.SessionID,
		ScoreBefore: e.ScoreBefore,
		ScoreAfter:  e.ScoreAfter,
		Metadata:    e.Metadata,
	}
}

func MapAuditSummaryDomainToApi(s domain.AuditSummary) api.AuditSummary {
	byType := make(map[string]int, len(s.CountsByType))
	for k, v := range s.CountsByType {
		byType[string(k)] = v
	}
	return api.AuditSummary{
		TotalEntries:     s.TotalEntries,
		CountsByType:     byType,
		CountsByPillar:   s.CountsByPillar,
		FirstEntry:       s.FirstEntry,
		LastEntry:        s.LastEntry,
		NetScoreChange:   s.NetScoreChange,
		SessionsObserved: s.SessionsObserved,
	}
}

func MapAuditEntryDomainToStore(e domain.AuditEntry) store.AuditRecord {
	return store.AuditRecord{
		ID:          e.ID,
		Type:        string(e.Type),
		At:          e.At,
		Category:    e.Category,
		User:        e.User,
		SessionID:   e.SessionID,
		ScoreBefore: e.ScoreBefore,
		ScoreAfter:  e.ScoreAfter,
		Metadata:    e.Metadata,
	}
}

func MapAuditRecordStoreToDomain(r store.AuditRecord) domain.AuditEntry {
	return domain.AuditEntry{
		ID:          r.ID,
		Type:        domain.AuditEntryType(r.Type),
		At:          r.At,
		Category:    r.Category,
		User:        r.User,
		SessionID:   r.SessionID,
		ScoreBefore: r.ScoreBefore,
		ScoreAfter:  r.ScoreAfter,
		Metadata:    r.Metadata,
	}
}

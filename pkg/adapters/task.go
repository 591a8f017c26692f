package adapters

import (
	"github.com/de-tools/govern-atlas/pkg/models/api"
	"github.com/de-tools/govern-atlas/pkg/models/domain"
)

func MapTaskDomainToApi(t domain.Task) api.Task {
	res := api.Task{
		ID:               t.ID,
		RecommendationID: t.RecommendationID,
		PillarID:         t.PillarID,
		Name:             t.Name,
		Phase:            t.Phase,
		Status:           string(t.Status),
		BaseHours:        t.BaseHours,
		AdjustedHours:    t.AdjustedHours,
		Owner:            t.Owner,
		Evidence:         append([]string{}, t.Evidence...),
		History:          make([]api.StatusChange, 0, len(t.History)),
	}
	for _, h := range t.History {
		res.History = append(res.History, api.StatusChange{
			From:    string(h.From),
			To:      string(h.To),
			At:      h.At,
			User:    h.User,
			Comment: h.Comment,
		})
	}
	return res
}

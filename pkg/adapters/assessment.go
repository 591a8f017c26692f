package adapters

import (
	"github.com/de-tools/govern-atlas/pkg/models/api"
	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/de-tools/govern-atlas/pkg/models/store"
	"github.com/de-tools/govern-atlas/pkg/services/scoring"
)

func MapQuestionDomainToApi(q domain.Question) api.Question {
	return api.Question{
		ID:     q.ID,
		Text:   q.Text,
		Kind:   string(q.Kind),
		Weight: q.Weight,
		Impact: string(scoring.Impact(q.Weight)),
	}
}

func MapPillarDomainToApi(p domain.Pillar) api.Pillar {
	res := api.Pillar{
		ID:        p.ID,
		Name:      p.Name,
		Target:    p.Target,
		Questions: make([]api.Question, 0, len(p.Questions)),
	}
	for _, q := range p.Questions {
		res.Questions = append(res.Questions, MapQuestionDomainToApi(q))
	}
	return res
}

func MapPillarScoreDomainToApi(s domain.PillarScore) api.PillarScore {
	return api.PillarScore{
		PillarID:   s.PillarID,
		Raw:        s.Raw,
		Adjustment: s.Adjustment,
		Combined:   s.Combined,
		Answered:   s.Answered,
		Total:      s.Total,
		RAG:        string(s.RAG),
	}
}

func MapScorecardDomainToApi(s domain.Scorecard) api.Scorecard {
	res := api.Scorecard{
		Overall: s.Overall,
		Pillars: make([]api.PillarScore, 0, len(s.Pillars)),
	}
	for _, p := range s.Pillars {
		res.Pillars = append(res.Pillars, MapPillarScoreDomainToApi(p))
	}
	return res
}

// MapDomainResponseToStore flattens the domain union for persistence.
func MapDomainResponseToStore(r domain.Response) store.Response {
	switch r.Kind {
	case domain.ResponseBoolean:
		return store.Response{Kind: "boolean", Bool: r.Bool}
	case domain.ResponseScale:
		return store.Response{Kind: "scale", Scale: r.Scale}
	case domain.ResponsePercentage:
		return store.Response{Kind: "percentage", Percent: r.Percent}
	case domain.ResponseText:
		return store.Response{Kind: "text", Text: r.Text}
	default:
		return store.Response{Kind: "none"}
	}
}

// MapStoreResponseToDomain revives a persisted answer into the domain union.
func MapStoreResponseToDomain(r store.Response) domain.Response {
	switch r.Kind {
	case "boolean":
		return domain.BooleanResponse(r.Bool)
	case "scale":
		return domain.ScaleResponse(r.Scale)
	case "percentage":
		return domain.PercentageResponse(r.Percent)
	case "text":
		return domain.TextResponse(r.Text)
	default:
		return domain.Response{}
	}
}

// MapApiResponseToDomain converts a wire response into the domain union.
// Values outside the kind's range (scale 1..5, percentage 0..100) are
// rejected here rather than coerced.
func MapApiResponseToDomain(r api.Response) (domain.Response, bool) {
	switch domain.QuestionKind(r.Kind) {
	case domain.QuestionKindBoolean:
		if r.Bool == nil {
			return domain.Response{}, false
		}
		return domain.BooleanResponse(*r.Bool), true
	case domain.QuestionKindScale:
		if r.Scale == nil || *r.Scale < 1 || *r.Scale > 5 {
			return domain.Response{}, false
		}
		return domain.ScaleResponse(*r.Scale), true
	case domain.QuestionKindPercentage:
		if r.Percent == nil || *r.Percent < 0 || *r.Percent > 100 {
			return domain.Response{}, false
		}
		return domain.PercentageResponse(*r.Percent), true
	case domain.QuestionKindText:
		return domain.TextResponse(r.Text), true
	default:
		return domain.Response{}, false
	}
}

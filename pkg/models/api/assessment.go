package api

// Pillar describes one governance area and its questions.
type Pillar struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Target    float64    `json:"target"`
	Questions []Question `json:"questions"`
}

type Question struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Kind   string  `json:"kind"`
	Weight float64 `json:"weight"`
	Impact string  `json:"impact"`
}

// Response is the wire shape of an answer; exactly one value field is
// meaningful for a given kind.
type Response struct {
	Kind    string   `json:"kind"`
	Bool    *bool    `json:"bool,omitempty"`
	Scale   *int     `json:"scale,omitempty"`
	Percent *float64 `json:"percent,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type PillarScore struct {
	PillarID   string  `json:"pillar_id"`
	Raw        float64 `json:"raw"`
	Adjustment float64 `json:"adjustment"`
	Combined   float64 `json:"combined"`
	Answered   int     `json:"answered"`
	Total      int     `json:"total"`
	RAG        string  `json:"rag"`
}

type Scorecard struct {
	Overall float64       `json:"overall"`
	Pillars []PillarScore `json:"pillars"`
}

package domain

// QuestionKind identifies the value domain of a question's response.
type QuestionKind string

const (
	QuestionKindBoolean    QuestionKind = "boolean"
	QuestionKindScale      QuestionKind = "scale"
	QuestionKindPercentage QuestionKind = "percentage"
	QuestionKindText       QuestionKind = "text"
)

// ImpactLevel classifies a question's governance impact based on its weight.
// Weight never enters the score arithmetic itself.
type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "low"
	ImpactMedium ImpactLevel = "medium"
	ImpactHigh   ImpactLevel = "high"
)

// Question is an immutable questionnaire item belonging to a pillar.
type Question struct {
	ID             string
	PillarID       string
	Text           string
	Kind           QuestionKind
	Weight         float64
	Recommendation string
	Guidance       string
}

// Pillar groups questions under one governance area with a maturity target.
type Pillar struct {
	ID        string
	Name      string
	Target    float64
	Questions []Question
}

// ResponseKind tags the variant held by a Response.
type ResponseKind int

const (
	ResponseNone ResponseKind = iota
	ResponseBoolean
	ResponseScale
	ResponsePercentage
	ResponseText
)

// Response is a tagged union over the supported answer domains.
// Construct values via BooleanResponse, ScaleResponse, PercentageResponse
// or TextResponse so the variant tag stays consistent.
type Response struct {
	Kind    ResponseKind
	Bool    bool
	Scale   int
	Percent float64
	Text    string
}

func BooleanResponse(v bool) Response {
	return Response{Kind: ResponseBoolean, Bool: v}
}

func ScaleResponse(v int) Response {
	return Response{Kind: ResponseScale, Scale: v}
}

func PercentageResponse(v float64) Response {
	return Response{Kind: ResponsePercentage, Percent: v}
}

func TextResponse(v string) Response {
	return Response{Kind: ResponseText, Text: v}
}

// Answered reports whether the response carries a value at all.
func (r Response) Answered() bool {
	return r.Kind != ResponseNone
}

// Fraction normalizes the response to a 0..1 fraction.
// Text responses carry no score and return ok=false, as do unanswered ones.
func (r Response) Fraction() (float64, bool) {
	switch r.Kind {
	case ResponseBoolean:
		if r.Bool {
			return 1, true
		}
		return 0, true
	case ResponseScale:
		v := r.Scale
		if v < 1 {
			v = 1
		}
		if v > 5 {
			v = 5
		}
		return float64(v) / 5, true
	case ResponsePercentage:
		v := r.Percent
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		return v / 100, true
	default:
		return 0, false
	}
}

// RAGStatus is the red/amber/green classification of a score.
type RAGStatus string

const (
	RAGRed   RAGStatus = "red"
	RAGAmber RAGStatus = "amber"
	RAGGreen RAGStatus = "green"
)

// PillarScore is the computed maturity of a single pillar.
type PillarScore struct {
	PillarID   string
	Raw        float64
	Adjustment float64
	Combined   float64
	Answered   int
	Total      int
	RAG        RAGStatus
}

// Scorecard holds the full computed assessment state.
type Scorecard struct {
	Overall float64
	Pillars []PillarScore
}

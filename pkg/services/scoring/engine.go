package scoring

import (
	"github.com/de-tools/govern-atlas/pkg/models/domain"
)

// RAG thresholds, on the 0..100 combined score.
const (
	redThreshold   = 40.0
	amberThreshold = 70.0
)

// Impact weight thresholds. Weight classifies impact only; it never
// enters the score arithmetic.
const (
	mediumWeightThreshold = 2.0
	highWeightThreshold   = 3.0
)

// ComputePillarScore returns the unweighted mean of per-question
// percentages over answered questions, clamped to [0,100]. Text and
// unanswered questions are excluded. A pillar with no scorable answers
// scores 0.
func ComputePillarScore(pillar domain.Pillar, responses map[string]domain.Response) float64 {
	var sum float64
	var answered int

	for _, q := range pillar.Questions {
		resp, ok := responses[q.ID]
		if !ok {
			continue
		}
		fraction, scorable := resp.Fraction()
		if !scorable {
			continue
		}
		sum += fraction * 100
		answered++
	}

	if answered == 0 {
		return 0
	}
	return Clamp(sum / float64(answered))
}

// Combine adds a task adjustment to a raw pillar score. The clamp to 100
// lives here, at the point of combination, not in the accumulator.
func Combine(raw, adjustment float64) float64 {
	return Clamp(raw + adjustment)
}

// OverallScore is the mean of the combined pillar scores.
func OverallScore(scores []domain.PillarScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s.Combined
	}
	return Clamp(sum / float64(len(scores)))
}

// ScorableAnswers counts answered, score-bearing questions in a pillar.
func ScorableAnswers(pillar domain.Pillar, responses map[string]domain.Response) int {
	count := 0
	for _, q := range pillar.Questions {
		if resp, ok := responses[q.ID]; ok {
			if _, scorable := resp.Fraction(); scorable {
				count++
			}
		}
	}
	return count
}

// Impact classifies a question's governance impact from its weight.
func Impact(weight float64) domain.ImpactLevel {
	switch {
	case weight >= highWeightThreshold:
		return domain.ImpactHigh
	case weight >= mediumWeightThreshold:
		return domain.ImpactMedium
	default:
		return domain.ImpactLow
	}
}

// RAG classifies a combined score into red/amber/green.
func RAG(score float64) domain.RAGStatus {
	switch {
	case score < redThreshold:
		return domain.RAGRed
	case score < amberThreshold:
		return domain.RAGAmber
	default:
		return domain.RAGGreen
	}
}

// Clamp bounds a score to [0,100].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

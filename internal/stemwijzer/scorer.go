package stemwijzer

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

var ErrMissingStance = errors.New("party has no stance on question")

// maxDifference is the distance between the two ends of the answer scale.
const maxDifference = float64(StronglyAgree - StronglyDisagree)

// Scorer computes party matches locally. It holds no mutable state and is
// safe for concurrent use.
type Scorer struct {
	strictStances bool
}

type ScorerOption func(*Scorer)

// WithStrictStances makes a missing party stance an error instead of
// counting it as neutral.
func WithStrictStances(strict bool) ScorerOption {
	return func(s *Scorer) {
		s.strictStances = strict
	}
}

func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score ranks every party of the table against the answers with the default
// (lenient) scorer, which cannot fail.
func Score(answers Answers, positions *PositionTable, catalog *Catalog) ScoreResult {
	result, _ := NewScorer().Score(answers, positions, catalog)
	return result
}

// Score computes the match percentage of every party and the category
// breakdown of the answer set.
//
// A party without an explicit stance on an answered question is treated as
// neutral on it. Question ids missing from the catalog still count toward a
// party's total but belong to no category. Answers carrying an invalid
// option or importance are skipped. Parties are ranked by percentage, ties
// keep position table order.
func (s *Scorer) Score(answers Answers, positions *PositionTable, catalog *Catalog) (ScoreResult, error) {
	if catalog == nil {
		catalog = &Catalog{}
	}

	ids := answeredIDs(answers)

	var parties []PartyPosition
	if positions != nil {
		parties = positions.parties
	}

	scores := make([]PartyScore, 0, len(parties))
	for _, party := range parties {
		score, err := s.scoreParty(party, ids, answers, catalog)
		if err != nil {
			return ScoreResult{}, err
		}
		scores = append(scores, score)
	}

	Rank(scores)

	return ScoreResult{
		PartyScores:       scores,
		CategoryBreakdown: breakdown(ids, answers, catalog),
	}, nil
}

func (s *Scorer) scoreParty(party PartyPosition, ids []int, answers Answers, catalog *Catalog) (PartyScore, error) {
	var weightedScoreSum, totalWeight float64
	categories := make(map[Category]CategoryMatch)

	for _, id := range ids {
		answer := answers[id]

		stance, ok := party.Stance(id)
		if !ok && s.strictStances {
			return PartyScore{}, fmt.Errorf("%w: %s on %d", ErrMissingStance, party.ID, id)
		}

		match := QuestionMatch(answer.Answer, stance)
		weight := answer.Weight()

		weightedScoreSum += match * weight
		totalWeight += weight

		q, known := catalog.Question(id)
		if !known {
			continue
		}

		cm := categories[q.Category]
		cm.Score += match * weight
		cm.Weight += weight
		cm.Count++
		categories[q.Category] = cm
	}

	return PartyScore{
		PartyID:         party.ID,
		PartyName:       party.Name,
		PartyColor:      party.Color,
		MatchPercentage: percentage(weightedScoreSum, totalWeight),
		CategoryMatches: categories,
	}, nil
}

// QuestionMatch returns how closely an answer agrees with a stance, from 0
// (opposite ends of the scale) to 100 (identical).
func QuestionMatch(answer, stance AnswerOption) float64 {
	difference := math.Abs(float64(answer.Score() - stance.Score()))
	return (maxDifference - difference) / maxDifference * 100
}

func percentage(weightedScoreSum, totalWeight float64) int {
	if totalWeight <= 0 {
		return 0
	}
	return int(math.Round(weightedScoreSum / totalWeight))
}

// Rank orders party scores by match percentage, highest first. The sort is
// stable so equal percentages keep their incoming order.
func Rank(scores []PartyScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].MatchPercentage > scores[j].MatchPercentage
	})
}

func breakdown(ids []int, answers Answers, catalog *Catalog) map[Category]CategoryStats {
	stats := make(map[Category]CategoryStats, len(Categories))
	for cat, n := range catalog.CountByCategory() {
		stats[cat] = CategoryStats{QuestionsCount: n}
	}

	for _, id := range ids {
		q, ok := catalog.Question(id)
		if !ok {
			continue
		}

		st := stats[q.Category]
		st.AnsweredCount++
		if answers[id].Weight() >= ImportantWeight {
			st.ImportantCount++
		}
		stats[q.Category] = st
	}

	return stats
}

// answeredIDs returns the ids of valid answers in ascending order, so sums
// are accumulated in the same order on every call.
func answeredIDs(answers Answers) []int {
	ids := make([]int, 0, len(answers))
	for id, a := range answers {
		if !a.Answer.Valid() || !a.Importance.Valid() {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

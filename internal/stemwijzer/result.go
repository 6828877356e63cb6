package stemwijzer

// CategoryMatch accumulates one party's weighted matches inside a category.
type CategoryMatch struct {
	Score  float64 `json:"score" validate:"gte=0"`
	Weight float64 `json:"weight" validate:"gte=0"`
	Count  int     `json:"count" validate:"gte=0"`
}

// Percentage returns the weighted match within the category, 0 when nothing
// was answered.
func (m CategoryMatch) Percentage() float64 {
	if m.Weight <= 0 {
		return 0
	}
	return m.Score / m.Weight
}

type PartyScore struct {
	PartyID         string                     `json:"partyId" validate:"required"`
	PartyName       string                     `json:"partyName"`
	PartyColor      string                     `json:"partyColor"`
	MatchPercentage int                        `json:"matchPercentage" validate:"gte=0,lte=100"`
	CategoryMatches map[Category]CategoryMatch `json:"categoryMatches" validate:"dive"`
}

// CategoryStats describes how thoroughly the user engaged with a category.
type CategoryStats struct {
	QuestionsCount int `json:"questionsCount" validate:"gte=0"`
	AnsweredCount  int `json:"answeredCount" validate:"gte=0,ltefield=QuestionsCount"`
	ImportantCount int `json:"importantCount" validate:"gte=0,ltefield=AnsweredCount"`
}

// ScoreResult is the ranked output shared by the local scorer and the
// remote scoring service.
type ScoreResult struct {
	PartyScores       []PartyScore               `json:"partyScores" validate:"dive"`
	CategoryBreakdown map[Category]CategoryStats `json:"categoryBreakdown" validate:"dive"`
}

// Top returns at most n best ranked party scores. n <= 0 means all.
func (r ScoreResult) Top(n int) []PartyScore {
	if n <= 0 || n >= len(r.PartyScores) {
		return r.PartyScores
	}
	return r.PartyScores[:n]
}

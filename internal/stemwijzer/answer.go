package stemwijzer

import (
	"fmt"
	"strings"
)

// AnswerOption is a position on a statement. The underlying value is the
// score used for matching, so ordering options is ordering scores.
type AnswerOption int

const (
	StronglyDisagree AnswerOption = -2
	Disagree         AnswerOption = -1
	Neutral          AnswerOption = 0
	Agree            AnswerOption = 1
	StronglyAgree    AnswerOption = 2
)

// Wire names of the answer options.
const (
	answerStronglyDisagree = "helemaal-oneens"
	answerDisagree         = "oneens"
	answerNeutral          = "neutraal"
	answerAgree            = "eens"
	answerStronglyAgree    = "helemaal-eens"
)

// AnswerOptions lists every option from strongly agree to strongly disagree.
var AnswerOptions = []AnswerOption{StronglyAgree, Agree, Neutral, Disagree, StronglyDisagree}

// Score returns the option's score in [-2, 2].
func (a AnswerOption) Score() int {
	return int(a)
}

func (a AnswerOption) Valid() bool {
	return a >= StronglyDisagree && a <= StronglyAgree
}

func (a AnswerOption) String() string {
	switch a {
	case StronglyDisagree:
		return answerStronglyDisagree
	case Disagree:
		return answerDisagree
	case Neutral:
		return answerNeutral
	case Agree:
		return answerAgree
	case StronglyAgree:
		return answerStronglyAgree
	default:
		return fmt.Sprintf("answer(%d)", int(a))
	}
}

// Label is the human readable form used in prompts and tables.
func (a AnswerOption) Label() string {
	switch a {
	case StronglyDisagree:
		return "Helemaal oneens"
	case Disagree:
		return "Oneens"
	case Neutral:
		return "Neutraal"
	case Agree:
		return "Eens"
	case StronglyAgree:
		return "Helemaal eens"
	default:
		return a.String()
	}
}

// ParseAnswer converts a wire name into an AnswerOption.
func ParseAnswer(s string) (AnswerOption, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case answerStronglyDisagree:
		return StronglyDisagree, nil
	case answerDisagree:
		return Disagree, nil
	case answerNeutral:
		return Neutral, nil
	case answerAgree:
		return Agree, nil
	case answerStronglyAgree:
		return StronglyAgree, nil
	default:
		return Neutral, fmt.Errorf("unknown answer %q", s)
	}
}

// AnswerFromScore converts a numeric score into an AnswerOption.
func AnswerFromScore(score int) (AnswerOption, error) {
	a := AnswerOption(score)
	if !a.Valid() {
		return Neutral, fmt.Errorf("answer score %d out of range [-2, 2]", score)
	}
	return a, nil
}

// ImportanceLevel tells how much a user cares about a statement.
// The zero value is not a valid level.
type ImportanceLevel int

const (
	Minor ImportanceLevel = iota + 1
	Important
	VeryImportant
)

const (
	importanceMinor         = "minder-belangrijk"
	importanceImportant     = "belangrijk"
	importanceVeryImportant = "zeer-belangrijk"
)

// ImportantWeight is the lowest weight counted as "important" in the
// category breakdown.
const ImportantWeight = 2.0

// ImportanceLevels lists every level from least to most important.
var ImportanceLevels = []ImportanceLevel{Minor, Important, VeryImportant}

// Weight returns the multiplier applied to a question's match.
func (l ImportanceLevel) Weight() float64 {
	switch l {
	case Minor:
		return 0.5
	case Important:
		return 1.0
	case VeryImportant:
		return 2.0
	default:
		return 0
	}
}

func (l ImportanceLevel) Valid() bool {
	return l >= Minor && l <= VeryImportant
}

func (l ImportanceLevel) String() string {
	switch l {
	case Minor:
		return importanceMinor
	case Important:
		return importanceImportant
	case VeryImportant:
		return importanceVeryImportant
	default:
		return fmt.Sprintf("importance(%d)", int(l))
	}
}

func (l ImportanceLevel) Label() string {
	switch l {
	case Minor:
		return "Minder belangrijk"
	case Important:
		return "Belangrijk"
	case VeryImportant:
		return "Zeer belangrijk"
	default:
		return l.String()
	}
}

// ParseImportance converts a wire name into an ImportanceLevel.
func ParseImportance(s string) (ImportanceLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case importanceMinor:
		return Minor, nil
	case importanceImportant:
		return Important, nil
	case importanceVeryImportant:
		return VeryImportant, nil
	default:
		return 0, fmt.Errorf("unknown importance %q", s)
	}
}

// ImportanceFromWeight converts a weight multiplier into an ImportanceLevel.
func ImportanceFromWeight(w float64) (ImportanceLevel, error) {
	for _, l := range ImportanceLevels {
		if l.Weight() == w {
			return l, nil
		}
	}
	return 0, fmt.Errorf("importance weight %v is not one of 0.5, 1.0, 2.0", w)
}

// WeightedAnswer is the user's input for one question.
type WeightedAnswer struct {
	Answer     AnswerOption
	Importance ImportanceLevel
}

// NewWeightedAnswer returns a WeightedAnswer after checking both enums.
func NewWeightedAnswer(answer AnswerOption, importance ImportanceLevel) (WeightedAnswer, error) {
	if !answer.Valid() {
		return WeightedAnswer{}, fmt.Errorf("invalid answer %s", answer)
	}
	if !importance.Valid() {
		return WeightedAnswer{}, fmt.Errorf("invalid importance %s", importance)
	}
	return WeightedAnswer{Answer: answer, Importance: importance}, nil
}

func (w WeightedAnswer) Score() int {
	return w.Answer.Score()
}

func (w WeightedAnswer) Weight() float64 {
	return w.Importance.Weight()
}

// Answers maps a question id to the user's weighted answer.
type Answers map[int]WeightedAnswer

package stemwijzer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// WireAnswer is the JSON/YAML form of a WeightedAnswer. Either the names or
// the numbers may be set; when both are present they must agree. A bare
// string ("eens") is accepted as an answer with default importance.
type WireAnswer struct {
	Answer           string   `json:"answer,omitempty" yaml:"answer,omitempty"`
	Importance       string   `json:"importance,omitempty" yaml:"importance,omitempty"`
	AnswerScore      *int     `json:"answerScore,omitempty" yaml:"answerScore,omitempty"`
	ImportanceWeight *float64 `json:"importanceWeight,omitempty" yaml:"importanceWeight,omitempty"`
}

// DefaultImportance applies when an answer carries no importance.
const DefaultImportance = Important

func (w *WireAnswer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*w = WireAnswer{Answer: s}
		return nil
	}

	type plain WireAnswer
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*w = WireAnswer(p)
	return nil
}

func (w *WireAnswer) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*w = WireAnswer{Answer: node.Value}
		return nil
	}

	type plain WireAnswer
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*w = WireAnswer(p)
	return nil
}

// Encode converts a WeightedAnswer into its wire form with both names and
// numbers filled in.
func Encode(a WeightedAnswer) WireAnswer {
	score := a.Score()
	weight := a.Weight()
	return WireAnswer{
		Answer:           a.Answer.String(),
		Importance:       a.Importance.String(),
		AnswerScore:      &score,
		ImportanceWeight: &weight,
	}
}

// Decode checks a wire answer against the closed answer and importance sets.
func (w WireAnswer) Decode() (WeightedAnswer, error) {
	answer, err := w.decodeAnswer()
	if err != nil {
		return WeightedAnswer{}, err
	}

	importance, err := w.decodeImportance()
	if err != nil {
		return WeightedAnswer{}, err
	}

	return NewWeightedAnswer(answer, importance)
}

func (w WireAnswer) decodeAnswer() (AnswerOption, error) {
	var (
		answer AnswerOption
		named  bool
		err    error
	)

	if strings.TrimSpace(w.Answer) != "" {
		answer, err = ParseAnswer(w.Answer)
		if err != nil {
			return 0, err
		}
		named = true
	}

	if w.AnswerScore != nil {
		fromScore, err := AnswerFromScore(*w.AnswerScore)
		if err != nil {
			return 0, err
		}
		if named && fromScore != answer {
			return 0, fmt.Errorf("answer %q does not match answer score %d", w.Answer, *w.AnswerScore)
		}
		return fromScore, nil
	}

	if !named {
		return 0, fmt.Errorf("answer is required")
	}
	return answer, nil
}

func (w WireAnswer) decodeImportance() (ImportanceLevel, error) {
	var (
		level ImportanceLevel
		err   error
	)

	if strings.TrimSpace(w.Importance) != "" {
		level, err = ParseImportance(w.Importance)
		if err != nil {
			return 0, err
		}
	}

	if w.ImportanceWeight != nil {
		fromWeight, err := ImportanceFromWeight(*w.ImportanceWeight)
		if err != nil {
			return 0, err
		}
		if level != 0 && fromWeight != level {
			return 0, fmt.Errorf("importance %q does not match importance weight %v", w.Importance, *w.ImportanceWeight)
		}
		return fromWeight, nil
	}

	if level == 0 {
		return DefaultImportance, nil
	}
	return level, nil
}

// EncodeAnswers builds the request body sent to a scoring service, keyed by
// the question id as a string.
func EncodeAnswers(answers Answers) map[string]WireAnswer {
	out := make(map[string]WireAnswer, len(answers))
	for id, a := range answers {
		out[strconv.Itoa(id)] = Encode(a)
	}
	return out
}

// DecodeAnswers parses a wire answer set. Errors name the offending question.
func DecodeAnswers(in map[string]WireAnswer) (Answers, error) {
	out := make(Answers, len(in))
	for key, w := range in {
		id, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || id < 1 {
			return nil, fmt.Errorf("question id %q is not a positive integer", key)
		}

		a, err := w.Decode()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", id, err)
		}
		out[id] = a
	}
	return out, nil
}

// Package questionnaire collects weighted answers, either interactively or
// from an answers file.
package questionnaire

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	sw "github.com/spigell/stemwijzer/internal/stemwijzer"
)

const (
	PromptSkip   = "Overslaan"
	PromptFinish = "Klaar, toon resultaat"
)

// Selector asks the user to pick one of items and returns its index.
type Selector interface {
	Select(label string, items []string) (int, error)
}

// PromptSelector asks on the terminal with promptui.
type PromptSelector struct {
	Size int
}

func (p PromptSelector) Select(label string, items []string) (int, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
		Size:  p.Size,
	}

	idx, _, err := prompt.Run()
	return idx, err
}

// ErrAborted is returned when the user interrupts the questionnaire.
var ErrAborted = errors.New("questionnaire aborted")

type Questionnaire struct {
	selector Selector
	logger   *zap.Logger
}

func New(selector Selector, logger *zap.Logger) *Questionnaire {
	if selector == nil {
		selector = PromptSelector{Size: len(sw.AnswerOptions) + 2}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Questionnaire{selector: selector, logger: logger}
}

// Run walks the catalog in order. Every question can be skipped; choosing
// finish stops early and keeps what was answered so far.
func (q *Questionnaire) Run(catalog *sw.Catalog) (sw.Answers, error) {
	answers := make(sw.Answers)
	if catalog == nil {
		return answers, nil
	}

	questions := catalog.Questions()
	answerItems := answerItems()
	importanceItems := importanceItems()

	for i, question := range questions {
		label := fmt.Sprintf("[%d/%d] %s: %s", i+1, len(questions), question.Category, question.Text)

		idx, err := q.selector.Select(label, answerItems)
		if err != nil {
			return nil, wrapPromptErr(err)
		}

		switch {
		case idx == len(sw.AnswerOptions):
			q.logger.Debug("question skipped", zap.Int("question", question.ID))
			continue
		case idx > len(sw.AnswerOptions):
			q.logger.Debug("questionnaire finished early", zap.Int("answered", len(answers)))
			return answers, nil
		case idx < 0:
			return nil, fmt.Errorf("question %d: invalid choice %d", question.ID, idx)
		}
		answer := sw.AnswerOptions[idx]

		idx, err = q.selector.Select("Hoe belangrijk is dit voor u?", importanceItems)
		if err != nil {
			return nil, wrapPromptErr(err)
		}
		if idx < 0 || idx >= len(sw.ImportanceLevels) {
			return nil, fmt.Errorf("question %d: invalid importance choice %d", question.ID, idx)
		}

		wa, err := sw.NewWeightedAnswer(answer, sw.ImportanceLevels[idx])
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", question.ID, err)
		}
		answers[question.ID] = wa
	}

	return answers, nil
}

func answerItems() []string {
	items := make([]string, 0, len(sw.AnswerOptions)+2)
	for _, a := range sw.AnswerOptions {
		items = append(items, a.Label())
	}
	return append(items, PromptSkip, PromptFinish)
}

func importanceItems() []string {
	items := make([]string, 0, len(sw.ImportanceLevels))
	for _, l := range sw.ImportanceLevels {
		items = append(items, l.Label())
	}
	return items
}

func wrapPromptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return fmt.Errorf("%w: %w", ErrAborted, err)
	}
	return err
}

package fixtures

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	sw "github.com/spigell/stemwijzer/internal/stemwijzer"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Source names the files overriding the built-in data. Empty fields keep
// the built-in value.
type Source struct {
	QuestionsFile string `mapstructure:"questions-file"`
	PositionsFile string `mapstructure:"positions-file"`
}

type questionsFile struct {
	Questions []questionEntry `yaml:"questions" validate:"required,min=1,dive"`
}

type questionEntry struct {
	ID          int    `yaml:"id" validate:"min=1"`
	Text        string `yaml:"question" validate:"required"`
	Category    string `yaml:"category" validate:"required"`
	Subcategory string `yaml:"subcategory"`
}

type positionsFile struct {
	Parties []partyEntry `yaml:"parties" validate:"required,min=1,dive"`
}

type partyEntry struct {
	Name    string      `yaml:"name" validate:"required"`
	Color   string      `yaml:"color" validate:"omitempty,hexcolor"`
	Stances map[int]int `yaml:"stances" validate:"dive,keys,min=1,endkeys,min=-2,max=2"`
}

// Load builds Tables from the source, falling back to the built-in data for
// each file that is not set.
func Load(src Source) (*Tables, error) {
	questions := defaultQuestions
	if path := strings.TrimSpace(src.QuestionsFile); path != "" {
		q, err := loadQuestions(path)
		if err != nil {
			return nil, err
		}
		questions = q
	}

	parties := defaultParties
	if path := strings.TrimSpace(src.PositionsFile); path != "" {
		p, err := loadParties(path)
		if err != nil {
			return nil, err
		}
		parties = p
	}

	return NewTables(questions, parties)
}

func loadQuestions(path string) ([]sw.Question, error) {
	var file questionsFile
	if err := decodeFile(path, &file); err != nil {
		return nil, err
	}

	questions := make([]sw.Question, 0, len(file.Questions))
	for _, q := range file.Questions {
		cat, err := sw.ParseCategory(q.Category)
		if err != nil {
			return nil, fmt.Errorf("%s: question %d: %w", path, q.ID, err)
		}

		questions = append(questions, sw.Question{
			ID:          q.ID,
			Text:        q.Text,
			Category:    cat,
			Subcategory: q.Subcategory,
		})
	}

	return questions, nil
}

func loadParties(path string) ([]sw.PartyPosition, error) {
	var file positionsFile
	if err := decodeFile(path, &file); err != nil {
		return nil, err
	}

	parties := make([]sw.PartyPosition, 0, len(file.Parties))
	for _, p := range file.Parties {
		st := make(map[int]sw.AnswerOption, len(p.Stances))
		for id, v := range p.Stances {
			st[id] = sw.AnswerOption(v)
		}

		parties = append(parties, sw.PartyPosition{
			Name:    p.Name,
			Color:   p.Color,
			Stances: st,
		})
	}

	return parties, nil
}

func decodeFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := validate.Struct(target); err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}

	return nil
}

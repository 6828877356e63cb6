package questionnaire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	sw "github.com/spigell/stemwijzer/internal/stemwijzer"
)

// LoadFile reads an answers file. Files ending in .json are JSON, anything
// else is YAML. Both map a question id to an answer and optional importance.
func LoadFile(path string) (sw.Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file: %w", err)
	}

	answers, err := Parse(data, isJSON(path))
	if err != nil {
		return nil, fmt.Errorf("answers file %q: %w", path, err)
	}
	return answers, nil
}

// Parse decodes answers from JSON or YAML bytes.
func Parse(data []byte, jsonFormat bool) (sw.Answers, error) {
	var wire map[string]sw.WireAnswer

	if jsonFormat {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&wire); err != nil {
			return nil, err
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&wire); err != nil {
			return nil, err
		}
	}

	return sw.DecodeAnswers(wire)
}

// SaveFile writes answers in the format LoadFile reads back.
func SaveFile(path string, answers sw.Answers) error {
	wire := make(map[string]sw.WireAnswer, len(answers))
	for id, a := range sw.EncodeAnswers(answers) {
		wire[id] = sw.WireAnswer{Answer: a.Answer, Importance: a.Importance}
	}

	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(wire, "", "  ")
	} else {
		data, err = yaml.Marshal(wire)
	}
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing answers file: %w", err)
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Package fixtures provides the read-only data the scorer runs against: the
// question catalog and the party position table.
package fixtures

import (
	"fmt"

	sw "github.com/spigell/stemwijzer/internal/stemwijzer"
)

// Tables bundles a question catalog with the position table scored against
// it. A Tables value is never modified after construction.
type Tables struct {
	Catalog   *sw.Catalog
	Positions *sw.PositionTable
}

// NewTables validates questions and parties together. Every stance must
// refer to a question in the catalog.
func NewTables(questions []sw.Question, parties []sw.PartyPosition) (*Tables, error) {
	catalog, err := sw.NewCatalog(questions)
	if err != nil {
		return nil, fmt.Errorf("question catalog: %w", err)
	}

	positions, err := sw.NewPositionTable(parties)
	if err != nil {
		return nil, fmt.Errorf("position table: %w", err)
	}

	for _, p := range positions.Parties() {
		for id := range p.Stances {
			if _, ok := catalog.Question(id); !ok {
				return nil, fmt.Errorf("party %q has a stance on unknown question %d", p.Name, id)
			}
		}
	}

	return &Tables{Catalog: catalog, Positions: positions}, nil
}

// Default returns the built-in catalog and position table.
func Default() *Tables {
	t, err := NewTables(defaultQuestions, defaultParties)
	if err != nil {
		panic(fmt.Sprintf("built-in fixtures are invalid: %v", err))
	}
	return t
}

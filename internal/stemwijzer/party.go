package stemwijzer

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrUnknownParty = errors.New("unknown party")

const defaultPartyColor = "#64748b"

// PartyID derives the party identifier from its display name: lower-cased,
// with every whitespace run replaced by a single hyphen.
func PartyID(name string) string {
	lower := cases.Lower(language.Dutch).String(strings.TrimSpace(name))
	return strings.Join(strings.Fields(lower), "-")
}

// PartyPosition holds a party's stance per question id.
type PartyPosition struct {
	ID      string
	Name    string
	Color   string
	Stances map[int]AnswerOption
}

// Stance returns the party's stance on a question and whether it is explicit.
func (p PartyPosition) Stance(questionID int) (AnswerOption, bool) {
	s, ok := p.Stances[questionID]
	return s, ok
}

// PositionTable is the immutable list of parties in display order.
type PositionTable struct {
	parties []PartyPosition
	byID    map[string]int
}

// NewPositionTable derives party ids and checks the table once, at load
// time: names must be set, ids must not collide and stances must be in
// range. Stance maps are copied so later changes to the input do not leak in.
func NewPositionTable(parties []PartyPosition) (*PositionTable, error) {
	t := &PositionTable{
		parties: make([]PartyPosition, 0, len(parties)),
		byID:    make(map[string]int, len(parties)),
	}

	for _, p := range parties {
		if strings.TrimSpace(p.Name) == "" {
			return nil, errors.New("party name is required")
		}

		id := PartyID(p.Name)
		if prev, ok := t.byID[id]; ok {
			return nil, fmt.Errorf("party id %q of %q collides with %q", id, p.Name, t.parties[prev].Name)
		}

		for qid, s := range p.Stances {
			if !s.Valid() {
				return nil, fmt.Errorf("party %q: stance %d on question %d out of range", p.Name, int(s), qid)
			}
		}

		color := strings.TrimSpace(p.Color)
		if color == "" {
			color = defaultPartyColor
		}

		t.byID[id] = len(t.parties)
		t.parties = append(t.parties, PartyPosition{
			ID:      id,
			Name:    p.Name,
			Color:   color,
			Stances: maps.Clone(p.Stances),
		})
	}

	return t, nil
}

// Parties returns the parties in table order. The stance maps are shared
// and must not be modified.
func (t *PositionTable) Parties() []PartyPosition {
	return slices.Clone(t.parties)
}

func (t *PositionTable) Party(id string) (PartyPosition, error) {
	i, ok := t.byID[id]
	if !ok {
		return PartyPosition{}, fmt.Errorf("%w: %s", ErrUnknownParty, id)
	}
	return t.parties[i], nil
}

func (t *PositionTable) Len() int {
	return len(t.parties)
}

package stemwijzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartyID(t *testing.T) {
	tests := map[string]string{
		"VVD":                   "vvd",
		"Partij voor de Dieren": "partij-voor-de-dieren",
		"  GroenLinks \t PvdA ": "groenlinks-pvda",
		"JA21":                  "ja21",
	}

	for name, want := range tests {
		assert.Equal(t, want, PartyID(name), name)
	}
}

func TestNewPositionTableRejectsCollisions(t *testing.T) {
	_, err := NewPositionTable([]PartyPosition{{Name: "Volt"}, {Name: "VOLT"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collides")
}

func TestNewPositionTableRejectsBadStances(t *testing.T) {
	_, err := NewPositionTable([]PartyPosition{{Name: "X", Stances: map[int]AnswerOption{1: 5}}})
	assert.Error(t, err)

	_, err = NewPositionTable([]PartyPosition{{Name: "  "}})
	assert.Error(t, err)
}

func TestPositionTableCopiesInput(t *testing.T) {
	stances := map[int]AnswerOption{1: Agree}
	table, err := NewPositionTable([]PartyPosition{{Name: "CDA", Stances: stances}})
	require.NoError(t, err)

	stances[1] = StronglyDisagree

	p, err := table.Party("cda")
	require.NoError(t, err)
	s, ok := p.Stance(1)
	assert.True(t, ok)
	assert.Equal(t, Agree, s)

	_, err = table.Party("nope")
	assert.ErrorIs(t, err, ErrUnknownParty)
}

func TestNewCatalog(t *testing.T) {
	_, err := NewCatalog([]Question{{ID: 1, Category: CategoryClimate}, {ID: 1, Category: CategoryHealthcare}})
	assert.Error(t, err)

	_, err = NewCatalog([]Question{{ID: 0, Category: CategoryClimate}})
	assert.Error(t, err)

	_, err = NewCatalog([]Question{{ID: 1, Category: "Sport"}})
	assert.Error(t, err)

	c, err := NewCatalog([]Question{{ID: 2, Category: CategoryEurope}})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.CountByCategory()[CategoryEurope])
	assert.Len(t, c.CountByCategory(), len(Categories))
}

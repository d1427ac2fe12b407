package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solenne/arcana-api/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c := Default()
	assert.Equal(t,
		[]domain.DeckKind{domain.DeckOracle, domain.DeckQuantum, domain.DeckRune},
		c.Decks())

	total, err := c.TotalCards(domain.DeckOracle)
	require.NoError(t, err)
	assert.Equal(t, 42, total)

	total, err = c.TotalCards(domain.DeckQuantum)
	require.NoError(t, err)
	assert.Equal(t, 42, total)

	total, err = c.TotalCards(domain.DeckRune)
	require.NoError(t, err)
	assert.Equal(t, 24, total)

	_, err = c.TotalCards("mystery")
	assert.ErrorIs(t, err, domain.ErrUnknownDeckKind)
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := New(map[domain.DeckKind]int{"solo": 0}, []domain.DeckKind{"solo"})
	assert.Error(t, err, "zero-card decks are rejected")

	_, err = New(map[domain.DeckKind]int{"solo": 5}, []domain.DeckKind{"solo", "ghost"})
	assert.Error(t, err, "order entries must exist in the deck map")

	_, err = New(map[domain.DeckKind]int{}, nil)
	assert.Error(t, err, "empty catalogs are rejected")
}

func TestIdentitiesEnumeratesFullPool(t *testing.T) {
	t.Parallel()

	c, err := New(
		map[domain.DeckKind]int{"a": 2, "b": 3},
		[]domain.DeckKind{"a", "b"},
	)
	require.NoError(t, err)

	ids := Identities(c)
	require.Len(t, ids, 5)

	seen := make(map[string]bool)
	for _, id := range ids {
		assert.False(t, seen[id.Key()], "duplicate identity %s", id.Key())
		seen[id.Key()] = true
		assert.GreaterOrEqual(t, id.Number, 1)
	}
	assert.True(t, seen["a_1"])
	assert.True(t, seen["a_2"])
	assert.True(t, seen["b_3"])
}

func TestDefaultIdentitiesCount(t *testing.T) {
	t.Parallel()

	assert.Len(t, Identities(Default()), 42+42+24)
}

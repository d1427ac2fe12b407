package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardIdentityKeys(t *testing.T) {
	t.Parallel()

	id := CardIdentity{Deck: DeckOracle, Number: 12}
	assert.Equal(t, "oracle_12", id.Key())
	assert.Equal(t, "oracle_12_golden", id.GoldenKey())
	assert.Equal(t, "oracle_12", id.String())
}

func TestParseCardKey(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		key      string
		expected CardIdentity
		golden   bool
		wantErr  bool
	}{
		{
			name:     "base key",
			key:      "oracle_12",
			expected: CardIdentity{Deck: DeckOracle, Number: 12},
		},
		{
			name:     "golden key",
			key:      "quantum_3_golden",
			expected: CardIdentity{Deck: DeckQuantum, Number: 3},
			golden:   true,
		},
		{
			name:     "deck name containing underscore",
			key:      "dark_rune_5",
			expected: CardIdentity{Deck: "dark_rune", Number: 5},
		},
		{name: "no separator", key: "oracle", wantErr: true},
		{name: "non-numeric number", key: "oracle_x", wantErr: true},
		{name: "zero number", key: "oracle_0", wantErr: true},
		{name: "empty deck", key: "_5", wantErr: true},
		{name: "trailing separator", key: "oracle_", wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			id, golden, err := ParseCardKey(tc.key)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrMalformedCardKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
			assert.Equal(t, tc.golden, golden)
		})
	}
}

func TestParseCardKeyRoundTrip(t *testing.T) {
	t.Parallel()

	for _, id := range []CardIdentity{
		{Deck: DeckOracle, Number: 1},
		{Deck: DeckQuantum, Number: 42},
		{Deck: DeckRune, Number: 24},
	} {
		parsed, golden, err := ParseCardKey(id.Key())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
		assert.False(t, golden)

		parsed, golden, err = ParseCardKey(id.GoldenKey())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
		assert.True(t, golden)
	}
}

package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Identity-specific validation errors
var (
	// ErrUnknownDeckKind is returned when a deck kind is not part of the catalog.
	ErrUnknownDeckKind = errors.New("unknown deck kind")

	// ErrInvalidCardNumber is returned when a card number is outside [1, totalCards].
	ErrInvalidCardNumber = errors.New("card number out of range")

	// ErrMalformedCardKey is returned when a persisted card key cannot be parsed.
	ErrMalformedCardKey = errors.New("malformed card key")
)

// DeckKind identifies one of the collectible card catalogs.
type DeckKind string

// Known deck kinds. The set is extensible: catalogs are supplied by the
// catalog package, and nothing below assumes these three are the only ones.
const (
	DeckOracle  DeckKind = "oracle"
	DeckQuantum DeckKind = "quantum"
	DeckRune    DeckKind = "rune"
)

// CardIdentity is the join key shared by the collection ledger, the review
// scheduler, and the mini-game pools: a deck kind plus a 1-based card number.
// It is immutable and comparable.
type CardIdentity struct {
	Deck   DeckKind `json:"deck"`
	Number int      `json:"number"`
}

// Key returns the persisted string form of the identity, "{deck}_{number}".
// This scheme is shared with the original data format and must not change
// without a state migration.
func (id CardIdentity) Key() string {
	return fmt.Sprintf("%s_%d", id.Deck, id.Number)
}

// GoldenKey returns the ledger slot key for the golden copy of the card.
func (id CardIdentity) GoldenKey() string {
	return id.Key() + goldenKeySuffix
}

// String implements fmt.Stringer.
func (id CardIdentity) String() string {
	return id.Key()
}

const goldenKeySuffix = "_golden"

// ParseCardKey parses a ledger key back into an identity and a golden flag.
// Accepts both "{deck}_{number}" and "{deck}_{number}_golden".
func ParseCardKey(key string) (CardIdentity, bool, error) {
	golden := strings.HasSuffix(key, goldenKeySuffix)
	base := strings.TrimSuffix(key, goldenKeySuffix)

	idx := strings.LastIndex(base, "_")
	if idx <= 0 || idx == len(base)-1 {
		return CardIdentity{}, false, fmt.Errorf("%w: %q", ErrMalformedCardKey, key)
	}

	number, err := strconv.Atoi(base[idx+1:])
	if err != nil || number < 1 {
		return CardIdentity{}, false, fmt.Errorf("%w: %q", ErrMalformedCardKey, key)
	}

	return CardIdentity{Deck: DeckKind(base[:idx]), Number: number}, golden, nil
}

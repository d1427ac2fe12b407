// Package catalog describes the collectible card catalogs the engine draws
// from. Card content (names, imagery, meanings) lives with the presentation
// layer; the engine only needs each deck's identity space.
package catalog

import (
	"fmt"

	"github.com/solenne/arcana-api/internal/domain"
)

// Catalog is the read-only port through which the engine learns which decks
// exist and how many cards each holds.
type Catalog interface {
	// Decks lists the deck kinds in a stable order.
	Decks() []domain.DeckKind

	// TotalCards returns the card count of a deck, or an error for an
	// unknown deck kind.
	TotalCards(deck domain.DeckKind) (int, error)
}

// deckSpec pairs a deck kind with its fixed size.
type deckSpec struct {
	kind  domain.DeckKind
	total int
}

type staticCatalog struct {
	specs []deckSpec
	sizes map[domain.DeckKind]int
}

// New builds a catalog from deck kind/size pairs, preserving order.
// Sizes must be positive.
func New(decks map[domain.DeckKind]int, order []domain.DeckKind) (Catalog, error) {
	c := &staticCatalog{sizes: make(map[domain.DeckKind]int, len(decks))}
	for _, kind := range order {
		total, ok := decks[kind]
		if !ok {
			return nil, fmt.Errorf("catalog: deck %q in order but not in sizes", kind)
		}
		if total < 1 {
			return nil, fmt.Errorf("catalog: deck %q has invalid size %d", kind, total)
		}
		c.specs = append(c.specs, deckSpec{kind: kind, total: total})
		c.sizes[kind] = total
	}
	if len(c.specs) == 0 {
		return nil, fmt.Errorf("catalog: no decks")
	}
	return c, nil
}

// Default returns the reference catalog: two 42-card oracle decks and a
// 24-card rune set.
func Default() Catalog {
	c, err := New(map[domain.DeckKind]int{
		domain.DeckOracle:  42,
		domain.DeckQuantum: 42,
		domain.DeckRune:    24,
	}, []domain.DeckKind{domain.DeckOracle, domain.DeckQuantum, domain.DeckRune})
	if err != nil {
		// The reference catalog is hardcoded valid.
		panic(err)
	}
	return c
}

func (c *staticCatalog) Decks() []domain.DeckKind {
	out := make([]domain.DeckKind, len(c.specs))
	for i, s := range c.specs {
		out[i] = s.kind
	}
	return out
}

func (c *staticCatalog) TotalCards(deck domain.DeckKind) (int, error) {
	total, ok := c.sizes[deck]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownDeckKind, deck)
	}
	return total, nil
}

// Identities enumerates every card identity across all decks of a catalog,
// in deck order. This is the full booster draw pool.
func Identities(c Catalog) []domain.CardIdentity {
	var out []domain.CardIdentity
	for _, deck := range c.Decks() {
		total, err := c.TotalCards(deck)
		if err != nil {
			continue
		}
		for n := 1; n <= total; n++ {
			out = append(out, domain.CardIdentity{Deck: deck, Number: n})
		}
	}
	return out
}

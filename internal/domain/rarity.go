package domain

import "errors"

// ErrInvalidRarity is returned when a rarity value is not one of the four tiers.
var ErrInvalidRarity = errors.New("invalid rarity")

// Rarity is the quality tier of a drawn card. Tiers are totally ordered:
// Common < Rare < Holographic < Golden.
type Rarity string

// The four rarity tiers.
const (
	RarityCommon      Rarity = "common"
	RarityRare        Rarity = "rare"
	RarityHolographic Rarity = "holographic"
	RarityGolden      Rarity = "golden"
)

// Weight returns the fixed relative weight of the tier used by the roller.
//
// These weights are deliberately not normalized probabilities: Common's 1.00
// never acts as a threshold at all, it is the fall-through branch. Under the
// default constants the effective Common share is around 0.69. The threshold
// math in the rarity package reproduces this exactly; do not renormalize.
func (r Rarity) Weight() float64 {
	switch r {
	case RarityCommon:
		return 1.00
	case RarityRare:
		return 0.20
	case RarityHolographic:
		return 0.10
	case RarityGolden:
		return 0.01
	default:
		return 0
	}
}

// rank gives each tier its position in the total order.
func (r Rarity) rank() int {
	switch r {
	case RarityCommon:
		return 0
	case RarityRare:
		return 1
	case RarityHolographic:
		return 2
	case RarityGolden:
		return 3
	default:
		return -1
	}
}

// Less reports whether r sorts below other in the rarity order.
func (r Rarity) Less(other Rarity) bool {
	return r.rank() < other.rank()
}

// Valid reports whether r is one of the four tiers.
func (r Rarity) Valid() bool {
	return r.rank() >= 0
}

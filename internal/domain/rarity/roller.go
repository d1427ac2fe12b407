// Package rarity implements the pure rarity-sampling algorithm used for
// booster slots. A roll draws one uniform value and walks a cumulative
// threshold ladder from rarest to most common, with a streak-based bonus
// widening the golden band.
//
// The tier weights are not a normalized distribution: Common's weight of
// 1.00 is never summed into a threshold, it is simply the branch taken when
// no rarer cutoff trips. With the default weights that makes the effective
// Common share roughly 0.69. This is the intended behavior of the original
// threshold math and is reproduced exactly here.
package rarity

import "github.com/solenne/arcana-api/internal/domain"

const (
	// GoldenBonusPerStreakDay is the golden-cutoff increase per consecutive
	// day of booster opens.
	GoldenBonusPerStreakDay = 0.01

	// GoldenBonusCap bounds the total streak bonus.
	GoldenBonusCap = 0.10
)

// Roller samples rarity tiers from a RandomSource.
type Roller struct {
	rng RandomSource
}

// NewRoller creates a Roller backed by the given source. A nil source falls
// back to the crypto-backed default.
func NewRoller(rng RandomSource) *Roller {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Roller{rng: rng}
}

// GoldenBonus returns the golden-cutoff bonus for a streak length:
// 0.01 per streak day, capped at 0.10. Negative streaks contribute nothing.
func GoldenBonus(streak int) float64 {
	if streak < 0 {
		streak = 0
	}
	bonus := float64(streak) * GoldenBonusPerStreakDay
	if bonus > GoldenBonusCap {
		bonus = GoldenBonusCap
	}
	return bonus
}

// Roll samples one rarity tier. streak is the current consecutive-day open
// streak and only affects the golden cutoff.
func (ro *Roller) Roll(streak int) domain.Rarity {
	r := ro.rng.Float64()

	cutoff := domain.RarityGolden.Weight() + GoldenBonus(streak)
	if r < cutoff {
		return domain.RarityGolden
	}
	cutoff += domain.RarityHolographic.Weight()
	if r < cutoff {
		return domain.RarityHolographic
	}
	cutoff += domain.RarityRare.Weight()
	if r < cutoff {
		return domain.RarityRare
	}
	return domain.RarityCommon
}

// Shuffle applies an in-place Fisher-Yates shuffle driven by the roller's
// random source. The booster engine uses it to randomize the draw pool.
func (ro *Roller) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := ro.rng.IntN(i + 1)
		swap(i, j)
	}
}

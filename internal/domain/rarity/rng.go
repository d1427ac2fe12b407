package rarity

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource abstracts the randomness consumed by the roller and the
// booster draw. The default source is crypto-backed; the seeded variant
// makes rolls and shuffles reproducible in tests and simulations.
type RandomSource interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). n must be > 0.
	IntN(n int) int
}

type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// crypto source unavailable; fall back to math/rand/v2
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func (c cryptoRNG) IntN(n int) int {
	if n <= 0 {
		panic("rarity: IntN called with n <= 0")
	}
	// Rejection sampling to avoid modulo bias.
	limit := ^uint64(0) - ^uint64(0)%uint64(n)
	for {
		var buf [8]byte
		if _, err := cryptorand.Read(buf[:]); err != nil {
			return rand.IntN(n)
		}
		u := binary.BigEndian.Uint64(buf[:])
		if u < limit {
			return int(u % uint64(n))
		}
	}
}

// DefaultRNG returns the crypto-backed random source.
func DefaultRNG() RandomSource { return cryptoRNG{} }

type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a deterministic random source for a given seed.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }
func (s *seededRNG) IntN(n int) int   { return s.r.IntN(n) }

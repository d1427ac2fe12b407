package minigame

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/solenne/arcana-api/internal/store"
)

// Reward constants: every game pays one sphere per win, except the memory
// game which pays one sphere per three wins.
const (
	SphereReward     = 1
	MemoryWinsNeeded = 3
)

// ErrUnknownGame is returned when a win is reported for a game the bridge
// does not know.
var ErrUnknownGame = errors.New("unknown mini-game")

// Game identifies a mini-game reporting wins through the bridge.
type Game string

// The known mini-games.
const (
	GameMemory      Game = "memory"
	GameMissingCard Game = "missing_card"
	GameMahjong     Game = "mahjong"
)

// Valid reports whether g is a known game.
func (g Game) Valid() bool {
	switch g {
	case GameMemory, GameMissingCard, GameMahjong:
		return true
	default:
		return false
	}
}

// RewardResult describes the outcome of one reported win.
type RewardResult struct {
	SpheresAwarded int `json:"spheres_awarded"`
	// MemoryProgress is the win count toward the next memory-game sphere
	// (0..MemoryWinsNeeded-1). Zero for other games.
	MemoryProgress int `json:"memory_progress"`
}

// Bridge grants sphere rewards for mini-game wins and tracks lifetime
// stats. Counters persist per mutation.
type Bridge struct {
	mu sync.Mutex

	totalPlayed        int
	totalSpheresEarned int
	memoryWinProgress  int

	wallet *Wallet
	store  store.StateStore
	logger *slog.Logger
}

// NewBridge creates a Bridge over the given wallet and loads persisted
// counters.
func NewBridge(ctx context.Context, st store.StateStore, wallet *Wallet, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bridge{
		wallet: wallet,
		store:  st,
		logger: logger.With(slog.String("component", "minigame_bridge")),
	}
	b.loadCounter(ctx, store.KeyMinigamesTotalPlayed, &b.totalPlayed)
	b.loadCounter(ctx, store.KeyMinigamesTotalSpheresEarned, &b.totalSpheresEarned)
	b.loadCounter(ctx, store.KeyMinigamesMemoryWinProgress, &b.memoryWinProgress)
	return b
}

func (b *Bridge) loadCounter(ctx context.Context, key string, v *int) {
	raw, err := b.store.Get(ctx, key)
	if err != nil {
		if !store.IsNotFound(err) {
			b.logger.Warn("failed to load minigame counter, using zero",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return
	}
	if err := json.Unmarshal(raw, v); err != nil {
		b.logger.Warn("malformed minigame counter, using zero",
			slog.String("key", key),
			slog.String("error", err.Error()))
		*v = 0
	}
}

// persist writes all counters. Must be called with b.mu held.
func (b *Bridge) persist(ctx context.Context) {
	counters := []struct {
		key   string
		value int
	}{
		{store.KeyMinigamesTotalPlayed, b.totalPlayed},
		{store.KeyMinigamesTotalSpheresEarned, b.totalSpheresEarned},
		{store.KeyMinigamesMemoryWinProgress, b.memoryWinProgress},
	}
	for _, c := range counters {
		raw, err := json.Marshal(c.value)
		if err != nil {
			continue
		}
		if err := b.store.Set(ctx, c.key, raw); err != nil {
			b.logger.Warn("failed to persist minigame counter",
				slog.String("key", c.key),
				slog.String("error", err.Error()))
		}
	}
}

// RewardWin reports one win. Most games credit one sphere per win; the
// memory game credits one sphere every third win and otherwise only
// advances its progress counter.
func (b *Bridge) RewardWin(ctx context.Context, game Game) (RewardResult, error) {
	if !game.Valid() {
		return RewardResult{}, ErrUnknownGame
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.totalPlayed++

	if game == GameMemory {
		b.memoryWinProgress++
		if b.memoryWinProgress >= MemoryWinsNeeded {
			b.memoryWinProgress = 0
			b.wallet.Add(ctx, SphereReward)
			b.totalSpheresEarned += SphereReward
			b.persist(ctx)
			return RewardResult{SpheresAwarded: SphereReward}, nil
		}
		b.persist(ctx)
		return RewardResult{MemoryProgress: b.memoryWinProgress}, nil
	}

	b.wallet.Add(ctx, SphereReward)
	b.totalSpheresEarned += SphereReward
	b.persist(ctx)
	return RewardResult{SpheresAwarded: SphereReward}, nil
}

// Stats returns the lifetime counters: games played, spheres earned, and
// current memory-game progress.
func (b *Bridge) Stats() (totalPlayed, totalSpheresEarned, memoryProgress int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.totalPlayed, b.totalSpheresEarned, b.memoryWinProgress
}

// Package minigame implements the earned-currency side of the economy: the
// sphere wallet and the reward bridge that grants spheres for mini-game
// wins. Both are ledger-independent; spheres only meet the card economy
// when they are spent on a cooldown-exempt booster.
package minigame

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/solenne/arcana-api/internal/store"
)

// SpheresPerBooster is the price of one sphere booster.
const SpheresPerBooster = 10

// Wallet holds the sphere balance, persisted per mutation.
type Wallet struct {
	mu      sync.Mutex
	balance int

	store  store.StateStore
	logger *slog.Logger
}

// NewWallet creates a Wallet and loads the persisted balance. A malformed
// stored value falls back to zero.
func NewWallet(ctx context.Context, st store.StateStore, logger *slog.Logger) *Wallet {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Wallet{
		store:  st,
		logger: logger.With(slog.String("component", "sphere_wallet")),
	}
	w.load(ctx)
	return w
}

func (w *Wallet) load(ctx context.Context) {
	raw, err := w.store.Get(ctx, store.KeySphereBalance)
	if err != nil {
		if !store.IsNotFound(err) {
			w.logger.Warn("failed to load sphere balance, starting at zero",
				slog.String("error", err.Error()))
		}
		return
	}
	if err := json.Unmarshal(raw, &w.balance); err != nil {
		w.logger.Warn("malformed sphere balance, starting at zero",
			slog.String("error", err.Error()))
		w.balance = 0
	}
}

// persist writes the balance. Must be called with w.mu held.
func (w *Wallet) persist(ctx context.Context) {
	raw, err := json.Marshal(w.balance)
	if err != nil {
		w.logger.Warn("failed to encode sphere balance",
			slog.String("error", err.Error()))
		return
	}
	if err := w.store.Set(ctx, store.KeySphereBalance, raw); err != nil {
		w.logger.Warn("failed to persist sphere balance",
			slog.String("error", err.Error()))
	}
}

// Balance returns the current sphere balance.
func (w *Wallet) Balance() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balance
}

// CanOpenBooster reports whether the balance covers one sphere booster.
func (w *Wallet) CanOpenBooster() bool {
	return w.Balance() >= SpheresPerBooster
}

// Add credits the wallet.
func (w *Wallet) Add(ctx context.Context, amount int) {
	if amount <= 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balance += amount
	w.persist(ctx)
}

// SpendForBooster debits the sphere-booster price. Returns false, without
// mutating the balance, when the wallet cannot cover it.
func (w *Wallet) SpendForBooster(ctx context.Context) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.balance < SpheresPerBooster {
		return false
	}
	w.balance -= SpheresPerBooster
	w.persist(ctx)
	return true
}

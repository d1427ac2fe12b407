// Package booster implements the timed pack-opening economy: a
// cooldown-gated standard open, a cooldown-exempt sphere open, a premium
// bonus open, and the daily streak bookkeeping that biases golden rolls.
package booster

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/solenne/arcana-api/internal/catalog"
	"github.com/solenne/arcana-api/internal/domain"
	"github.com/solenne/arcana-api/internal/domain/rarity"
	"github.com/solenne/arcana-api/internal/service/collection"
	"github.com/solenne/arcana-api/internal/store"
	"github.com/solenne/arcana-api/internal/timekeep"
)

// Default economy constants, matching the reference configuration.
const (
	DefaultCooldown = 12 * time.Hour
	DefaultSize     = 5
)

// Engine orchestrates booster opens against the collection ledger. It owns
// the persisted booster economy state (last open time, daily open count,
// streak) and re-derives availability from the clock on every query; the
// Locked state is never pushed, only polled.
type Engine struct {
	mu    sync.Mutex
	state domain.BoosterEconomyState

	ledger  *collection.Ledger
	catalog catalog.Catalog
	roller  *rarity.Roller
	clock   timekeep.Clock
	store   store.StateStore
	logger  *slog.Logger

	cooldown time.Duration
	size     int
}

// NewEngine creates an Engine and loads persisted economy state, applying
// the day-boundary invariants: the daily open count resets when the stored
// day is not today, and the streak resets when the last streak day is
// neither today nor yesterday.
func NewEngine(
	ctx context.Context,
	st store.StateStore,
	ledger *collection.Ledger,
	cat catalog.Catalog,
	roller *rarity.Roller,
	clock timekeep.Clock,
	cooldown time.Duration,
	size int,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if size <= 0 {
		size = DefaultSize
	}
	e := &Engine{
		ledger:   ledger,
		catalog:  cat,
		roller:   roller,
		clock:    clock,
		store:    st,
		logger:   logger.With(slog.String("component", "booster_engine")),
		cooldown: cooldown,
		size:     size,
	}
	e.load(ctx)
	return e
}

// getJSON decodes one persisted scalar. Absent or malformed values leave
// the target untouched, falling back to the zero default.
func (e *Engine) getJSON(ctx context.Context, key string, v any) {
	raw, err := e.store.Get(ctx, key)
	if err != nil {
		if !store.IsNotFound(err) {
			e.logger.Warn("failed to load booster state key, using default",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return
	}
	if err := json.Unmarshal(raw, v); err != nil {
		e.logger.Warn("malformed booster state key, using default",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

// setJSON persists one scalar, logging and swallowing failures.
func (e *Engine) setJSON(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		e.logger.Warn("failed to encode booster state key",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return
	}
	if err := e.store.Set(ctx, key, raw); err != nil {
		e.logger.Warn("failed to persist booster state key",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

func (e *Engine) load(ctx context.Context) {
	e.getJSON(ctx, store.KeyBoosterLastOpenTime, &e.state.LastOpenAt)
	e.getJSON(ctx, store.KeyBoosterOpenedToday, &e.state.OpenedToday)
	e.getJSON(ctx, store.KeyBoosterOpenedDate, &e.state.OpenedDay)
	e.getJSON(ctx, store.KeyBoosterStreak, &e.state.Streak)
	e.getJSON(ctx, store.KeyBoosterLastStreakDate, &e.state.LastStreakDay)

	today := timekeep.Today(e.clock)
	if e.state.OpenedDay != int64(today) {
		e.state.OpenedToday = 0
	}
	if e.state.LastStreakDay != int64(today) && e.state.LastStreakDay != int64(today.Yesterday()) {
		if e.state.Streak != 0 {
			e.state.Streak = 0
			e.setJSON(ctx, store.KeyBoosterStreak, e.state.Streak)
		}
	}
}

// canOpenLocked evaluates the cooldown gate. Must be called with e.mu held.
func (e *Engine) canOpenLocked() bool {
	if e.state.LastOpenAt.IsZero() {
		return true
	}
	return !e.clock.Now().Before(e.state.LastOpenAt.Add(e.cooldown))
}

// CanOpen reports whether the cooldown has elapsed (or no booster has ever
// been opened).
func (e *Engine) CanOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canOpenLocked()
}

// NextAvailableAt returns when the next cooldown-gated open becomes
// available. The second return is false when the gate is already open.
func (e *Engine) NextAvailableAt() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.canOpenLocked() {
		return time.Time{}, false
	}
	return e.state.LastOpenAt.Add(e.cooldown), true
}

// TimeRemaining returns how long until the gate opens, zero when open.
func (e *Engine) TimeRemaining() time.Duration {
	next, locked := e.NextAvailableAt()
	if !locked {
		return 0
	}
	return timekeep.Remaining(e.clock, next)
}

// FormattedTimeRemaining renders the remaining cooldown as HH:MM:SS.
func (e *Engine) FormattedTimeRemaining() string {
	return timekeep.FormatCountdown(e.TimeRemaining())
}

// Streak returns the current consecutive-day open streak.
func (e *Engine) Streak() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Streak
}

// OpenedToday returns how many gated or premium boosters were opened on the
// current calendar day.
func (e *Engine) OpenedToday() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.OpenedDay != int64(timekeep.Today(e.clock)) {
		return 0
	}
	return e.state.OpenedToday
}

// draw performs the rarity-weighted draw against the full catalog pool and
// records every slot in the ledger. Must be called with e.mu held so the
// streak read is consistent.
//
// The shuffled pool is cycled with wraparound when the booster size exceeds
// the pool, so even a degenerate catalog yields a full result.
func (e *Engine) draw(ctx context.Context) []domain.DrawResult {
	pool := catalog.Identities(e.catalog)
	if len(pool) == 0 {
		return []domain.DrawResult{}
	}
	e.roller.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	results := make([]domain.DrawResult, 0, e.size)
	for i := 0; i < e.size; i++ {
		id := pool[i%len(pool)]
		rolled := e.roller.Roll(e.state.Streak)
		isNew := e.ledger.AddCard(ctx, id, rolled)
		results = append(results, domain.DrawResult{CardID: id, Rarity: rolled, IsNew: isNew})
	}
	return results
}

// updateStreakLocked advances the daily streak. Runs exactly once per
// successful gated open, never on no-op calls. Must be called with e.mu
// held.
func (e *Engine) updateStreakLocked(ctx context.Context) {
	today := int64(timekeep.Today(e.clock))
	yesterday := int64(timekeep.Today(e.clock).Yesterday())

	if e.state.LastStreakDay == yesterday {
		e.state.Streak++
	} else if e.state.LastStreakDay != today {
		e.state.Streak = 1
	}
	e.state.LastStreakDay = today

	e.setJSON(ctx, store.KeyBoosterStreak, e.state.Streak)
	e.setJSON(ctx, store.KeyBoosterLastStreakDate, e.state.LastStreakDay)
}

// OpenBooster performs a cooldown-gated open. When the gate is locked it is
// a silent no-op returning an empty result; opening never fails with an
// error. On success it stamps the open time (relocking the gate), bumps the
// daily count, and advances the streak.
func (e *Engine) OpenBooster(ctx context.Context) []domain.DrawResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.canOpenLocked() {
		return []domain.DrawResult{}
	}

	results := e.draw(ctx)

	now := e.clock.Now()
	today := int64(timekeep.Today(e.clock))

	e.state.LastOpenAt = now
	if e.state.OpenedDay != today {
		e.state.OpenedToday = 1
		e.state.OpenedDay = today
	} else {
		e.state.OpenedToday++
	}

	e.updateStreakLocked(ctx)

	e.setJSON(ctx, store.KeyBoosterLastOpenTime, e.state.LastOpenAt)
	e.setJSON(ctx, store.KeyBoosterOpenedToday, e.state.OpenedToday)
	e.setJSON(ctx, store.KeyBoosterOpenedDate, e.state.OpenedDay)

	e.logger.Info("booster opened",
		slog.Int("cards", len(results)),
		slog.Int("streak", e.state.Streak),
		slog.Int("opened_today", e.state.OpenedToday))

	return results
}

// OpenSphereBooster performs the draw without checking or mutating the
// cooldown gate, daily count, or streak. It backs earned-currency
// redemption; spending the spheres is the caller's concern.
func (e *Engine) OpenSphereBooster(ctx context.Context) []domain.DrawResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	results := e.draw(ctx)
	e.logger.Info("sphere booster opened", slog.Int("cards", len(results)))
	return results
}

// OpenPremiumBooster bypasses the gate entirely, performs the draw, and
// force-sets the daily open count to 2. The overwrite (rather than an
// increment) reproduces the original economy's behavior: repeated premium
// opens on one day do not accumulate the counter.
func (e *Engine) OpenPremiumBooster(ctx context.Context) []domain.DrawResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	results := e.draw(ctx)

	e.state.OpenedToday = 2
	e.state.OpenedDay = int64(timekeep.Today(e.clock))
	e.setJSON(ctx, store.KeyBoosterOpenedToday, e.state.OpenedToday)
	e.setJSON(ctx, store.KeyBoosterOpenedDate, e.state.OpenedDay)

	e.logger.Info("premium booster opened", slog.Int("cards", len(results)))
	return results
}

// HasPremiumBoosterAvailable reports whether the premium daily bonus open
// is currently offered: premium active, exactly one booster opened today,
// and the standard gate locked.
func (e *Engine) HasPremiumBoosterAvailable(isPremium bool) bool {
	if !isPremium {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	openedToday := e.state.OpenedToday
	if e.state.OpenedDay != int64(timekeep.Today(e.clock)) {
		openedToday = 0
	}
	return openedToday == 1 && !e.canOpenLocked()
}

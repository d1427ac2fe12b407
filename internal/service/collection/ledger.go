// Package collection implements the collection ledger: the durable record
// of which cards have been pulled, at what rarity, and how many times.
package collection

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/solenne/arcana-api/internal/catalog"
	"github.com/solenne/arcana-api/internal/domain"
	"github.com/solenne/arcana-api/internal/store"
	"github.com/solenne/arcana-api/internal/timekeep"
)

// Ledger owns the authoritative in-memory copy of the collection and
// writes it through to the state store after every mutation. Write failures
// are logged and swallowed; the in-memory state stays authoritative for the
// remainder of the process lifetime.
//
// Golden copies occupy their own ledger slot. Pulling a golden copy of a
// card that has never been pulled also synthesizes a common base entry, so
// owning a card is well-defined independent of rarity tier.
type Ledger struct {
	mu      sync.Mutex
	entries map[string]domain.CollectionEntry

	catalog catalog.Catalog
	clock   timekeep.Clock
	store   store.StateStore
	logger  *slog.Logger
}

// NewLedger creates a Ledger and loads any persisted collection state.
// Malformed persisted state falls back to an empty collection.
func NewLedger(
	ctx context.Context,
	st store.StateStore,
	cat catalog.Catalog,
	clock timekeep.Clock,
	logger *slog.Logger,
) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Ledger{
		entries: make(map[string]domain.CollectionEntry),
		catalog: cat,
		clock:   clock,
		store:   st,
		logger:  logger.With(slog.String("component", "collection_ledger")),
	}
	l.load(ctx)
	return l
}

func (l *Ledger) load(ctx context.Context) {
	raw, err := l.store.Get(ctx, store.KeyCollection)
	if err != nil {
		if !store.IsNotFound(err) {
			l.logger.Warn("failed to load collection state, starting empty",
				slog.String("error", err.Error()))
		}
		return
	}

	var decoded map[string]domain.CollectionEntry
	if err := json.Unmarshal(raw, &decoded); err != nil {
		l.logger.Warn("malformed collection state, starting empty",
			slog.String("error", err.Error()))
		return
	}
	l.entries = decoded
}

// persist writes the full collection map. Must be called with l.mu held.
func (l *Ledger) persist(ctx context.Context) {
	raw, err := json.Marshal(l.entries)
	if err != nil {
		l.logger.Warn("failed to encode collection state",
			slog.String("error", err.Error()))
		return
	}
	if err := l.store.Set(ctx, store.KeyCollection, raw); err != nil {
		l.logger.Warn("failed to persist collection state",
			slog.String("error", err.Error()))
	}
}

// Owns reports whether a non-golden entry exists for the identity.
func (l *Ledger) Owns(id domain.CardIdentity) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.entries[id.Key()]
	return ok
}

// OwnsGolden reports whether a golden entry exists for the identity.
func (l *Ledger) OwnsGolden(id domain.CardIdentity) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.entries[id.GoldenKey()]
	return ok
}

// BestRarity returns the best rarity owned for the identity: Golden when a
// golden copy exists, otherwise the stored rarity of the base entry. The
// second return is false when the card is not owned at all.
func (l *Ledger) BestRarity(id domain.CardIdentity) (domain.Rarity, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[id.GoldenKey()]; ok {
		return domain.RarityGolden, true
	}
	if entry, ok := l.entries[id.Key()]; ok {
		return entry.Rarity, true
	}
	return "", false
}

// AddCard records one pull of the identity at the given rarity, inserting
// or incrementing the matching ledger slot. Golden pulls target the golden
// slot; the first golden pull of an unowned card also synthesizes a common
// base entry. Returns true iff this (identity, goldenness) pair had no
// prior entry. The mutation persists immediately.
func (l *Ledger) AddCard(ctx context.Context, id domain.CardIdentity, rarity domain.Rarity) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	golden := rarity == domain.RarityGolden
	baseKey := id.Key()
	key := baseKey
	if golden {
		key = id.GoldenKey()
	}

	var isNew bool
	if existing, ok := l.entries[key]; ok {
		existing.Count++
		l.entries[key] = existing
	} else {
		l.entries[key] = domain.CollectionEntry{
			CardID:     id,
			Rarity:     rarity,
			ObtainedAt: l.clock.Now(),
			Count:      1,
		}
		if golden {
			if _, ok := l.entries[baseKey]; !ok {
				l.entries[baseKey] = domain.CollectionEntry{
					CardID:     id,
					Rarity:     domain.RarityCommon,
					ObtainedAt: l.clock.Now(),
					Count:      1,
				}
			}
		}
		isNew = true
	}

	l.persist(ctx)
	return isNew
}

// OwnedCount returns how many distinct cards of the deck are owned
// (base entries only; golden slots do not add to the count).
func (l *Ledger) OwnedCount(deck domain.DeckKind) (int, error) {
	total, err := l.catalog.TotalCards(deck)
	if err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	for n := 1; n <= total; n++ {
		id := domain.CardIdentity{Deck: deck, Number: n}
		if _, ok := l.entries[id.Key()]; ok {
			count++
		}
	}
	return count, nil
}

// CompletionPercent returns the owned fraction of the deck in [0, 1].
func (l *Ledger) CompletionPercent(deck domain.DeckKind) (float64, error) {
	total, err := l.catalog.TotalCards(deck)
	if err != nil {
		return 0, err
	}
	owned, err := l.OwnedCount(deck)
	if err != nil {
		return 0, err
	}
	return float64(owned) / float64(total), nil
}

// HasCompleteDeck reports whether every card of the deck is owned.
func (l *Ledger) HasCompleteDeck(deck domain.DeckKind) (bool, error) {
	total, err := l.catalog.TotalCards(deck)
	if err != nil {
		return false, err
	}
	owned, err := l.OwnedCount(deck)
	if err != nil {
		return false, err
	}
	return owned == total, nil
}

// TotalOwned returns the distinct owned count summed over all decks.
func (l *Ledger) TotalOwned() int {
	total := 0
	for _, deck := range l.catalog.Decks() {
		owned, err := l.OwnedCount(deck)
		if err != nil {
			continue
		}
		total += owned
	}
	return total
}

// DuplicateCount returns how many duplicate pulls of the base copy exist:
// max(0, count-1). Golden pulls are tracked on their own slot and do not
// contribute here.
func (l *Ledger) DuplicateCount(id domain.CardIdentity) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[id.Key()]
	if !ok {
		return 0
	}
	if entry.Count < 1 {
		return 0
	}
	return entry.Count - 1
}

// Entry returns the ledger slot for an identity and golden flag, if present.
func (l *Ledger) Entry(id domain.CardIdentity, golden bool) (domain.CollectionEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := id.Key()
	if golden {
		key = id.GoldenKey()
	}
	entry, ok := l.entries[key]
	return entry, ok
}

// DeckEntries returns all ledger slots (base and golden) for one deck.
func (l *Ledger) DeckEntries(deck domain.DeckKind) []domain.CollectionEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.CollectionEntry
	for _, entry := range l.entries {
		if entry.CardID.Deck == deck {
			out = append(out, entry)
		}
	}
	return out
}

// Reset deletes every ledger entry. This is the only deletion path and is
// meant for explicit, user-confirmed resets.
func (l *Ledger) Reset(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string]domain.CollectionEntry)
	l.persist(ctx)
}

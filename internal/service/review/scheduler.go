// Package review implements the spaced-repetition scheduler over the card
// catalog. It shares card identities with the collection ledger but is
// otherwise independent of the booster economy.
package review

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/solenne/arcana-api/internal/catalog"
	"github.com/solenne/arcana-api/internal/domain"
	"github.com/solenne/arcana-api/internal/domain/srs"
	"github.com/solenne/arcana-api/internal/store"
	"github.com/solenne/arcana-api/internal/timekeep"
)

// DueCard is one entry of a due-review listing: a card number and its
// current mastery level. Ordering within a listing is not significant.
type DueCard struct {
	Number int `json:"number"`
	Level  int `json:"level"`
}

// Scheduler owns the per-card review state machine. Entries are created
// lazily on first grading; an absent entry is equivalent to level 0, due
// now. Mutations persist immediately; persistence failures are logged and
// swallowed.
type Scheduler struct {
	mu      sync.Mutex
	entries map[string]domain.ReviewEntry

	catalog catalog.Catalog
	clock   timekeep.Clock
	store   store.StateStore
	logger  *slog.Logger
}

// NewScheduler creates a Scheduler and loads any persisted review state.
// Malformed persisted state falls back to an empty map.
func NewScheduler(
	ctx context.Context,
	st store.StateStore,
	cat catalog.Catalog,
	clock timekeep.Clock,
	logger *slog.Logger,
) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		entries: make(map[string]domain.ReviewEntry),
		catalog: cat,
		clock:   clock,
		store:   st,
		logger:  logger.With(slog.String("component", "review_scheduler")),
	}
	s.load(ctx)
	return s
}

func (s *Scheduler) load(ctx context.Context) {
	raw, err := s.store.Get(ctx, store.KeyFlashcardEntries)
	if err != nil {
		if !store.IsNotFound(err) {
			s.logger.Warn("failed to load review state, starting empty",
				slog.String("error", err.Error()))
		}
		return
	}
	var decoded map[string]domain.ReviewEntry
	if err := json.Unmarshal(raw, &decoded); err != nil {
		s.logger.Warn("malformed review state, starting empty",
			slog.String("error", err.Error()))
		return
	}
	s.entries = decoded
}

// persist writes the full entry map. Must be called with s.mu held.
func (s *Scheduler) persist(ctx context.Context) {
	raw, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Warn("failed to encode review state",
			slog.String("error", err.Error()))
		return
	}
	if err := s.store.Set(ctx, store.KeyFlashcardEntries, raw); err != nil {
		s.logger.Warn("failed to persist review state",
			slog.String("error", err.Error()))
	}
}

// entryLocked returns the stored entry or the implicit level-0 state.
// Must be called with s.mu held.
func (s *Scheduler) entryLocked(id domain.CardIdentity) domain.ReviewEntry {
	if entry, ok := s.entries[id.Key()]; ok {
		return entry
	}
	return *srs.NewEntry(id, s.clock.Now())
}

// Entry returns the review state of a card. Ungraded cards report the
// implicit initial state (level 0, due now).
func (s *Scheduler) Entry(id domain.CardIdentity) domain.ReviewEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entryLocked(id)
}

// Level returns the card's mastery level, 0 for ungraded cards.
func (s *Scheduler) Level(id domain.CardIdentity) int {
	return s.Entry(id).Level
}

// IsMemorized reports whether the card has reached the max level.
func (s *Scheduler) IsMemorized(id domain.CardIdentity) bool {
	return s.Level(id) >= domain.ReviewMaxLevel
}

// MarkCorrect grades a correct answer: the card climbs one level, with the
// next due date drawn from the interval ladder, or retires at the max
// level. The mutation persists immediately.
func (s *Scheduler) MarkCorrect(ctx context.Context, id domain.CardIdentity) domain.ReviewEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entryLocked(id)
	next := srs.Advance(&entry, s.clock.Now())
	s.entries[id.Key()] = *next
	s.persist(ctx)
	return *next
}

// MarkWrong grades a wrong answer: an unconditional hard reset to level 0,
// due again immediately. The mutation persists immediately.
func (s *Scheduler) MarkWrong(ctx context.Context, id domain.CardIdentity) domain.ReviewEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entryLocked(id)
	next := srs.Reset(&entry, s.clock.Now())
	s.entries[id.Key()] = *next
	s.persist(ctx)
	return *next
}

// CardsDueForReview lists every card of the deck that is due now: cards
// with no entry (level 0) and cards below the max level whose due date has
// passed.
func (s *Scheduler) CardsDueForReview(deck domain.DeckKind) ([]DueCard, error) {
	total, err := s.catalog.TotalCards(deck)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()

	due := make([]DueCard, 0, total)
	for n := 1; n <= total; n++ {
		id := domain.CardIdentity{Deck: deck, Number: n}
		entry, ok := s.entries[id.Key()]
		if !ok {
			due = append(due, DueCard{Number: n, Level: 0})
			continue
		}
		if srs.Due(&entry, now) {
			due = append(due, DueCard{Number: n, Level: entry.Level})
		}
	}
	return due, nil
}

// MemorizedCount returns how many cards of the deck have reached the max
// level.
func (s *Scheduler) MemorizedCount(deck domain.DeckKind) (int, error) {
	total, err := s.catalog.TotalCards(deck)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for n := 1; n <= total; n++ {
		id := domain.CardIdentity{Deck: deck, Number: n}
		if entry, ok := s.entries[id.Key()]; ok && entry.Level >= domain.ReviewMaxLevel {
			count++
		}
	}
	return count, nil
}

// IsDeckMastered reports whether every card of the deck is memorized.
func (s *Scheduler) IsDeckMastered(deck domain.DeckKind) (bool, error) {
	total, err := s.catalog.TotalCards(deck)
	if err != nil {
		return false, err
	}
	memorized, err := s.MemorizedCount(deck)
	if err != nil {
		return false, err
	}
	return memorized == total, nil
}

// InProgressCount returns how many cards of the deck have been started but
// not memorized (0 < level < max).
func (s *Scheduler) InProgressCount(deck domain.DeckKind) (int, error) {
	total, err := s.catalog.TotalCards(deck)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for n := 1; n <= total; n++ {
		id := domain.CardIdentity{Deck: deck, Number: n}
		if entry, ok := s.entries[id.Key()]; ok &&
			entry.Level > 0 && entry.Level < domain.ReviewMaxLevel {
			count++
		}
	}
	return count, nil
}

package review

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solenne/arcana-api/internal/catalog"
	"github.com/solenne/arcana-api/internal/domain"
	"github.com/solenne/arcana-api/internal/platform/memstore"
	"github.com/solenne/arcana-api/internal/store"
	"github.com/solenne/arcana-api/internal/timekeep"
)

var testStart = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func smallCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	c, err := catalog.New(map[domain.DeckKind]int{"oracle": 3}, []domain.DeckKind{"oracle"})
	require.NoError(t, err)
	return c
}

func newTestScheduler(t *testing.T, st store.StateStore, clock timekeep.Clock) *Scheduler {
	t.Helper()
	return NewScheduler(context.Background(), st, smallCatalog(t), clock, slog.Default())
}

func TestUngradedCardHasImplicitState(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(t, memstore.New(), timekeep.NewManual(testStart))
	id := domain.CardIdentity{Deck: "oracle", Number: 1}

	entry := s.Entry(id)
	assert.Equal(t, 0, entry.Level)
	assert.True(t, entry.NextReviewAt.Equal(testStart), "ungraded cards are due immediately")
	assert.Equal(t, 0, s.Level(id))
	assert.False(t, s.IsMemorized(id))
}

func TestEmptyDeckIsFullyDue(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(t, memstore.New(), timekeep.NewManual(testStart))

	due, err := s.CardsDueForReview("oracle")
	require.NoError(t, err)
	require.Len(t, due, 3, "with no entries every card is due at level 0")
	for i, d := range due {
		assert.Equal(t, i+1, d.Number)
		assert.Equal(t, 0, d.Level)
	}
}

func TestMarkCorrectClimbsAndSchedules(t *testing.T) {
	t.Parallel()

	clock := timekeep.NewManual(testStart)
	s := newTestScheduler(t, memstore.New(), clock)
	id := domain.CardIdentity{Deck: "oracle", Number: 2}

	entry := s.MarkCorrect(context.Background(), id)
	assert.Equal(t, 1, entry.Level)
	assert.True(t, entry.NextReviewAt.Equal(testStart.AddDate(0, 0, 1)))

	due, err := s.CardsDueForReview("oracle")
	require.NoError(t, err)
	assert.Len(t, due, 2, "the freshly graded card drops out of the due list")

	// The card reappears once the clock passes its due date.
	clock.Advance(24 * time.Hour)
	due, err = s.CardsDueForReview("oracle")
	require.NoError(t, err)
	assert.Len(t, due, 3)
}

func TestLadderToMastery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := timekeep.NewManual(testStart)
	s := newTestScheduler(t, memstore.New(), clock)
	id := domain.CardIdentity{Deck: "oracle", Number: 1}

	for i := 0; i < domain.ReviewMaxLevel; i++ {
		s.MarkCorrect(ctx, id)
	}

	assert.True(t, s.IsMemorized(id))
	entry := s.Entry(id)
	assert.Equal(t, domain.ReviewMaxLevel, entry.Level)
	assert.True(t, entry.NextReviewAt.Equal(domain.ReviewFarFuture))

	// Memorized cards never come due, no matter how far ahead we look.
	clock.Advance(100 * 24 * time.Hour)
	due, err := s.CardsDueForReview("oracle")
	require.NoError(t, err)
	for _, d := range due {
		assert.NotEqual(t, id.Number, d.Number)
	}
}

func TestMarkWrongIsHardReset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestScheduler(t, memstore.New(), timekeep.NewManual(testStart))
	id := domain.CardIdentity{Deck: "oracle", Number: 1}

	for i := 0; i < 4; i++ {
		s.MarkCorrect(ctx, id)
	}
	require.Equal(t, 4, s.Level(id))

	entry := s.MarkWrong(ctx, id)
	assert.Equal(t, 0, entry.Level, "a wrong answer resets to the bottom of the ladder")
	assert.True(t, entry.NextReviewAt.Equal(testStart))

	due, err := s.CardsDueForReview("oracle")
	require.NoError(t, err)
	found := false
	for _, d := range due {
		if d.Number == id.Number {
			found = true
			assert.Equal(t, 0, d.Level)
		}
	}
	assert.True(t, found, "the reset card is due again immediately")
}

func TestWrongAfterMasteryReturnsToRotation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestScheduler(t, memstore.New(), timekeep.NewManual(testStart))
	id := domain.CardIdentity{Deck: "oracle", Number: 3}

	for i := 0; i < domain.ReviewMaxLevel; i++ {
		s.MarkCorrect(ctx, id)
	}
	require.True(t, s.IsMemorized(id))

	s.MarkWrong(ctx, id)
	assert.False(t, s.IsMemorized(id))
	assert.Equal(t, 0, s.Level(id))
}

func TestDeckStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestScheduler(t, memstore.New(), timekeep.NewManual(testStart))

	mastered, err := s.IsDeckMastered("oracle")
	require.NoError(t, err)
	assert.False(t, mastered)

	// Card 1: memorized. Card 2: in progress. Card 3: untouched.
	one := domain.CardIdentity{Deck: "oracle", Number: 1}
	for i := 0; i < domain.ReviewMaxLevel; i++ {
		s.MarkCorrect(ctx, one)
	}
	s.MarkCorrect(ctx, domain.CardIdentity{Deck: "oracle", Number: 2})

	memorized, err := s.MemorizedCount("oracle")
	require.NoError(t, err)
	assert.Equal(t, 1, memorized)

	inProgress, err := s.InProgressCount("oracle")
	require.NoError(t, err)
	assert.Equal(t, 1, inProgress)

	mastered, err = s.IsDeckMastered("oracle")
	require.NoError(t, err)
	assert.False(t, mastered)

	for n := 2; n <= 3; n++ {
		id := domain.CardIdentity{Deck: "oracle", Number: n}
		for s.Level(id) < domain.ReviewMaxLevel {
			s.MarkCorrect(ctx, id)
		}
	}
	mastered, err = s.IsDeckMastered("oracle")
	require.NoError(t, err)
	assert.True(t, mastered)
}

func TestUnknownDeckErrors(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(t, memstore.New(), timekeep.NewManual(testStart))

	_, err := s.CardsDueForReview("mystery")
	assert.ErrorIs(t, err, domain.ErrUnknownDeckKind)
	_, err = s.MemorizedCount("mystery")
	assert.ErrorIs(t, err, domain.ErrUnknownDeckKind)
	_, err = s.IsDeckMastered("mystery")
	assert.ErrorIs(t, err, domain.ErrUnknownDeckKind)
	_, err = s.InProgressCount("mystery")
	assert.ErrorIs(t, err, domain.ErrUnknownDeckKind)
}

func TestReviewStatePersistsAcrossRestart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := memstore.New()
	clock := timekeep.NewManual(testStart)

	first := newTestScheduler(t, st, clock)
	id := domain.CardIdentity{Deck: "oracle", Number: 1}
	first.MarkCorrect(ctx, id)
	first.MarkCorrect(ctx, id)

	second := newTestScheduler(t, st, clock)
	entry := second.Entry(id)
	assert.Equal(t, 2, entry.Level)
	assert.True(t, entry.NextReviewAt.Equal(testStart.AddDate(0, 0, 3)))
}

func TestMalformedReviewStateFallsBackToEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := memstore.New()
	require.NoError(t, st.Set(ctx, store.KeyFlashcardEntries, []byte("[broken")))

	s := newTestScheduler(t, st, timekeep.NewManual(testStart))
	due, err := s.CardsDueForReview("oracle")
	require.NoError(t, err)
	assert.Len(t, due, 3, "decode failure yields the empty state, all cards due")
}

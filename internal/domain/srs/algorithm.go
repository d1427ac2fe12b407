// Package srs implements the fixed-ladder spaced-repetition algorithm that
// drives card memorization. Unlike ease-factor schemes, the ladder is a
// five-step interval table: a correct answer climbs one level, a wrong
// answer resets to the bottom, and the top level retires the card from
// review entirely.
package srs

import (
	"time"

	"github.com/solenne/arcana-api/internal/domain"
)

// Intervals holds the days until the next review, indexed by post-grading
// level. Level 0 is due immediately; levels 1-4 wait 1, 3, 7 and 31 days.
// Reaching domain.ReviewMaxLevel retires the card (far-future due date).
var Intervals = [5]int{0, 1, 3, 7, 31}

// NewEntry returns the implicit initial state for an ungraded card:
// level 0, due now.
func NewEntry(id domain.CardIdentity, now time.Time) *domain.ReviewEntry {
	return &domain.ReviewEntry{
		Deck:         id.Deck,
		CardNumber:   id.Number,
		Level:        0,
		NextReviewAt: now,
	}
}

// Advance returns the entry's state after a correct answer. The level climbs
// one step, capped at the max level; below the cap the next due date comes
// from the interval table, at the cap it becomes the far-future sentinel.
// The input entry is not modified.
func Advance(entry *domain.ReviewEntry, now time.Time) *domain.ReviewEntry {
	next := *entry

	next.Level = entry.Level + 1
	if next.Level > domain.ReviewMaxLevel {
		next.Level = domain.ReviewMaxLevel
	}

	if next.Level < domain.ReviewMaxLevel {
		days := Intervals[min(next.Level, len(Intervals)-1)]
		next.NextReviewAt = now.AddDate(0, 0, days)
	} else {
		next.NextReviewAt = domain.ReviewFarFuture
	}

	return &next
}

// Reset returns the entry's state after a wrong answer: level 0, due
// immediately. This is a hard reset regardless of the previous level, not a
// one-step regression. The input entry is not modified.
func Reset(entry *domain.ReviewEntry, now time.Time) *domain.ReviewEntry {
	next := *entry
	next.Level = 0
	next.NextReviewAt = now
	return &next
}

// Due reports whether an entry is due for review at the given instant.
// Retired (max level) entries are never due.
func Due(entry *domain.ReviewEntry, now time.Time) bool {
	return entry.Level < domain.ReviewMaxLevel && !entry.NextReviewAt.After(now)
}

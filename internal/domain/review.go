package domain

import (
	"fmt"
	"time"
)

// ReviewMaxLevel is the mastered level. A card at this level is excluded
// from due-review queries until an incorrect answer resets it.
const ReviewMaxLevel = 5

// ReviewFarFuture is the sentinel due date for mastered cards. It stands in
// for "never" while remaining an ordinary comparable timestamp, mirroring
// the distant-future sentinel of the original data.
var ReviewFarFuture = time.Date(9999, time.January, 1, 0, 0, 0, 0, time.UTC)

// ReviewEntry tracks the spaced-repetition state of a single card: its
// mastery level in [0, ReviewMaxLevel] and when it is next due. Entries are
// created lazily on first grading and never deleted.
type ReviewEntry struct {
	Deck         DeckKind  `json:"deckType"`
	CardNumber   int       `json:"cardNumber"`
	Level        int       `json:"level"`
	NextReviewAt time.Time `json:"nextReviewDate"`
}

// CardID returns the identity of the card the entry belongs to.
func (e *ReviewEntry) CardID() CardIdentity {
	return CardIdentity{Deck: e.Deck, Number: e.CardNumber}
}

// Validate checks the entry's invariants.
func (e *ReviewEntry) Validate() error {
	if e.CardNumber < 1 {
		return ErrInvalidCardNumber
	}
	if e.Level < 0 || e.Level > ReviewMaxLevel {
		return fmt.Errorf("%w: %d", ErrInvalidReviewLevel, e.Level)
	}
	return nil
}

// LevelLabel returns the presentation label for a mastery level, matching
// the interval the level corresponds to.
func LevelLabel(level int) string {
	switch level {
	case 0:
		return "Nouveau"
	case 1:
		return "J1"
	case 2:
		return "J3"
	case 3:
		return "J7"
	case 4:
		return "J31"
	case ReviewMaxLevel:
		return "Maitrise"
	default:
		return "?"
	}
}

package domain

import (
	"time"
)

// CollectionEntry is one ledger slot: a card identity in either its base or
// golden form, with the rarity it was first recorded at, when it was first
// obtained, and how many times it has been pulled in total.
//
// Golden copies occupy a distinct slot from the base copy of the same
// identity, keyed with a "_golden" suffix. Entries are created on first pull,
// incremented on every subsequent pull, and deleted only by a full reset.
type CollectionEntry struct {
	CardID     CardIdentity `json:"cardID"`
	Rarity     Rarity       `json:"rarity"`
	ObtainedAt time.Time    `json:"obtainedAt"`
	Count      int          `json:"count"`
}

// Validate checks the entry's invariants: a valid rarity and a pull count
// of at least one.
func (e *CollectionEntry) Validate() error {
	if !e.Rarity.Valid() {
		return ErrInvalidRarity
	}
	if e.CardID.Number < 1 {
		return ErrInvalidCardNumber
	}
	if e.Count < 1 {
		return ErrInvalidPullCount
	}
	return nil
}

// DrawResult is one slot of an opened booster: the card drawn, the rarity it
// rolled, and whether this was the first pull of that (identity, goldenness)
// pair.
type DrawResult struct {
	CardID CardIdentity `json:"card_id"`
	Rarity Rarity       `json:"rarity"`
	IsNew  bool         `json:"is_new"`
}

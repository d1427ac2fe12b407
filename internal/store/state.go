package store

import "context"

// Persisted state keys. The collection and flashcard scheme is carried over
// from the original data format so existing state can be migrated; day-keyed
// values hold integer epoch days rather than formatted dates.
const (
	KeyCollection = "collection_v1"

	KeyBoosterLastOpenTime   = "booster_lastOpenTime"
	KeyBoosterOpenedToday    = "booster_openedToday"
	KeyBoosterOpenedDate     = "booster_openedDate"
	KeyBoosterStreak         = "booster_streak"
	KeyBoosterLastStreakDate = "booster_lastStreakDate"

	KeyFlashcardEntries = "flashcard_entries"

	KeySphereBalance = "cosmicSpheres_balance"

	KeyMinigamesTotalPlayed        = "minigames_totalPlayed"
	KeyMinigamesTotalSpheresEarned = "minigames_totalSpheresEarned"
	KeyMinigamesMemoryWinProgress  = "minigames_memoryWinProgress"
)

// StateStore is the key-value persistence port. Values are opaque JSON
// blobs; the engine owns (de)serialization.
//
// Implementations surface failures as ordinary errors. The services above
// this port deliberately log-and-discard write failures (the in-memory copy
// stays authoritative for the process lifetime) and treat decode failures
// on load as absent state.
type StateStore interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes the value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

package domain

import "time"

// BoosterEconomyState is the process-wide persisted state of the booster
// economy. Day-keyed fields use integer epoch days (see the timekeep
// package) rather than formatted date strings, so the persisted values are
// locale-independent.
//
// Invariants, re-established on every load and before every open:
//   - OpenedToday resets to 0 whenever OpenedDay differs from the current day.
//   - Streak resets to 0 when LastStreakDay is neither today nor yesterday.
type BoosterEconomyState struct {
	// LastOpenAt is the wall-clock time of the last cooldown-gated open.
	// Zero means a booster has never been opened; the gate is then open.
	LastOpenAt time.Time `json:"lastOpenAt"`

	// OpenedToday counts cooldown-gated and premium opens on OpenedDay.
	OpenedToday int `json:"openedToday"`

	// OpenedDay is the epoch day OpenedToday refers to.
	OpenedDay int64 `json:"openedDay"`

	// Streak is the count of consecutive calendar days with at least one
	// cooldown-gated open. It biases the golden roll.
	Streak int `json:"streak"`

	// LastStreakDay is the epoch day the streak was last advanced on.
	LastStreakDay int64 `json:"lastStreakDay"`
}

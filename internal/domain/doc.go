// Package domain defines the core entities of the card economy and
// learning engine: deck kinds, card identities, rarity tiers, collection
// entries, booster economy state, and spaced-repetition review entries.
//
// Types in this package are plain data with validation; all behavior
// (rolling, drawing, scheduling) lives in the service and algorithm
// packages that consume them.
package domain

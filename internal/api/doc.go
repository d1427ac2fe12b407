// Package api provides the HTTP handlers exposing the card economy and
// learning engine to the presentation layer: collection queries, booster
// opens, review grading, and mini-game reward reporting.
package api

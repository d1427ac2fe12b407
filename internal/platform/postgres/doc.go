// Package postgres implements the engine's state store on PostgreSQL,
// accessed through the pgx stdlib driver. All state lives in a single
// app_state key/JSONB table managed by the goose migrations embedded in
// cmd/server.
package postgres

// Package store defines the persistence port of the engine. All state is a
// flat mapping from well-known keys to opaque JSON blobs; implementations
// live under internal/platform.
package store

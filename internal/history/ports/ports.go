// Package ports defines the collaborator interfaces the history service is
// wired with. Implementations live under store/ and configsource/; tests
// substitute mocks or the in-memory store.
package ports

import (
	"context"

	"chronicle/internal/history"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// ConfigProvider resolves the storage target (log partition name) for the
// current environment. It is consulted on every invocation; providers do not
// cache on the service's behalf.
type ConfigProvider interface {
	StorageTarget(ctx context.Context) (string, error)
}

// LogStore is the append-only log collaborator.
//
// Searches are asynchronous: StartSearch returns a handle and SearchResults
// reports progress until the page status is terminal. Stores with synchronous
// backends still present this contract and simply complete on the first poll.
type LogStore interface {
	// EnsurePartition creates the named partition if it does not already
	// exist. An already-existing partition is success, not an error.
	EnsurePartition(ctx context.Context, name string) error

	// AppendRecord appends a serialized record to a sub-partition at the
	// given epoch-millisecond timestamp.
	AppendRecord(ctx context.Context, partition, subpartition string, timestampMillis int64, message []byte) error

	// StartSearch begins a time-ranged filtered search and returns a handle
	// for polling.
	StartSearch(ctx context.Context, q history.SearchQuery) (string, error)

	// SearchResults reports the current status and rows for a handle.
	SearchResults(ctx context.Context, handle string) (history.SearchPage, error)
}

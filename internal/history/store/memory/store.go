// Package memory provides an in-memory LogStore. It keeps handler and
// dispatcher tests free of external services and doubles as the backend for
// local runs. It intentionally favors clarity over performance.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"chronicle/internal/history"
)

type entry struct {
	subpartition string
	timestamp    int64
	message      string
}

type search struct {
	pollsLeft int
	rows      []history.SearchRow
}

// Store is a thread-safe in-memory append-only log.
type Store struct {
	mu         sync.RWMutex
	partitions map[string][]entry
	searches   map[string]*search

	// pollsUntilComplete lets tests exercise the async poll loop: searches
	// report Running for that many polls before completing.
	pollsUntilComplete int
}

// Option customizes a Store.
type Option func(*Store)

// WithSearchDelay makes every search report Running for n polls before it
// completes.
func WithSearchDelay(n int) Option {
	return func(s *Store) { s.pollsUntilComplete = n }
}

// New constructs an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		partitions: make(map[string][]entry),
		searches:   make(map[string]*search),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsurePartition creates the partition if absent. Re-creating is a no-op.
func (s *Store) EnsurePartition(_ context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("partition name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.partitions[name]; !ok {
		s.partitions[name] = nil
	}
	return nil
}

// AppendRecord appends one immutable entry to the partition.
func (s *Store) AppendRecord(_ context.Context, partition, subpartition string, timestampMillis int64, message []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.partitions[partition]; !ok {
		return fmt.Errorf("partition %q not found", partition)
	}
	s.partitions[partition] = append(s.partitions[partition], entry{
		subpartition: subpartition,
		timestamp:    timestampMillis,
		message:      string(message),
	})
	return nil
}

// StartSearch snapshots the matching rows and hands back a poll handle.
func (s *Store) StartSearch(_ context.Context, q history.SearchQuery) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.partitions[q.Partition]
	if !ok {
		return "", fmt.Errorf("partition %q not found", q.Partition)
	}

	var matched []entry
	for _, e := range entries {
		if e.timestamp < q.StartMillis || e.timestamp > q.EndMillis {
			continue
		}
		if q.Filter != "" && !strings.Contains(e.message, q.Filter) {
			continue
		}
		matched = append(matched, e)
	}
	// Newest first.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].timestamp > matched[j].timestamp
	})

	rows := make([]history.SearchRow, 0, len(matched))
	for _, e := range matched {
		rows = append(rows, history.SearchRow{
			Timestamp: time.UnixMilli(e.timestamp).UTC().Format(time.RFC3339),
			Message:   e.message,
		})
	}

	handle := uuid.NewString()
	s.searches[handle] = &search{pollsLeft: s.pollsUntilComplete, rows: rows}
	return handle, nil
}

// SearchResults reports Running until the configured delay is spent, then
// Complete with the snapshotted rows.
func (s *Store) SearchResults(_ context.Context, handle string) (history.SearchPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.searches[handle]
	if !ok {
		return history.SearchPage{}, fmt.Errorf("unknown search handle %q", handle)
	}
	if q.pollsLeft > 0 {
		q.pollsLeft--
		return history.SearchPage{Status: history.SearchStatusRunning}, nil
	}
	return history.SearchPage{Status: history.SearchStatusComplete, Rows: q.rows}, nil
}

// Package postgres implements the LogStore over an append-only Postgres
// table. The backend is synchronous, so searches run at StartSearch and the
// handle completes on the first poll.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"chronicle/internal/history"
)

const schema = `
CREATE TABLE IF NOT EXISTS history_partitions (
	name TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS history_records (
	id BIGSERIAL PRIMARY KEY,
	partition_name TEXT NOT NULL REFERENCES history_partitions(name),
	subpartition_name TEXT NOT NULL,
	event_timestamp BIGINT NOT NULL,
	message TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS history_records_window_idx
	ON history_records (partition_name, event_timestamp DESC);
`

// Store persists records in Postgres via pgx.
type Store struct {
	pool *pgxpool.Pool

	mu       sync.Mutex
	searches map[string][]history.SearchRow
}

// New constructs a Postgres-backed store on an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:     pool,
		searches: make(map[string][]history.SearchRow),
	}
}

// Init creates the tables when they do not exist yet.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// EnsurePartition registers the partition; re-registering is a no-op.
func (s *Store) EnsurePartition(ctx context.Context, name string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO history_partitions (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
		name,
	)
	if err != nil {
		return fmt.Errorf("ensure partition: %w", err)
	}
	return nil
}

// AppendRecord inserts one immutable row. There is no update or delete path
// through this store.
func (s *Store) AppendRecord(ctx context.Context, partition, subpartition string, timestampMillis int64, message []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO history_records (partition_name, subpartition_name, event_timestamp, message)
		 VALUES ($1, $2, $3, $4)`,
		partition, subpartition, timestampMillis, string(message),
	)
	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// StartSearch runs the query immediately and parks the rows under a handle
// so the caller's poll loop sees the same contract as async backends.
func (s *Store) StartSearch(ctx context.Context, q history.SearchQuery) (string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT event_timestamp, message
		 FROM history_records
		 WHERE partition_name = $1
		   AND event_timestamp BETWEEN $2 AND $3
		   AND message LIKE '%' || $4 || '%' ESCAPE '\'
		 ORDER BY event_timestamp DESC`,
		q.Partition, q.StartMillis, q.EndMillis, escapeLike(q.Filter),
	)
	if err != nil {
		return "", fmt.Errorf("search records: %w", err)
	}
	defer rows.Close()

	var results []history.SearchRow
	for rows.Next() {
		var ts int64
		var message string
		if err := rows.Scan(&ts, &message); err != nil {
			return "", fmt.Errorf("scan record: %w", err)
		}
		results = append(results, history.SearchRow{
			Timestamp: time.UnixMilli(ts).UTC().Format(time.RFC3339),
			Message:   message,
		})
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("search records: %w", err)
	}

	handle := uuid.NewString()
	s.mu.Lock()
	s.searches[handle] = results
	s.mu.Unlock()
	return handle, nil
}

// SearchResults completes immediately with the parked rows.
func (s *Store) SearchResults(_ context.Context, handle string) (history.SearchPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	results, ok := s.searches[handle]
	if !ok {
		return history.SearchPage{}, fmt.Errorf("unknown search handle %q", handle)
	}
	delete(s.searches, handle)
	return history.SearchPage{Status: history.SearchStatusComplete, Rows: results}, nil
}

// escapeLike neutralizes LIKE wildcards in the match text.
func escapeLike(filter string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(filter)
}

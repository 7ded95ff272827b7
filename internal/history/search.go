package history

import "encoding/json"

// SearchStatus is the lifecycle of an asynchronous store-side search.
type SearchStatus string

const (
	SearchStatusScheduled SearchStatus = "Scheduled"
	SearchStatusRunning   SearchStatus = "Running"
	SearchStatusComplete  SearchStatus = "Complete"
	SearchStatusFailed    SearchStatus = "Failed"
	SearchStatusCancelled SearchStatus = "Cancelled"
)

// Done reports whether the search has reached a terminal state.
func (s SearchStatus) Done() bool {
	switch s {
	case SearchStatusComplete, SearchStatusFailed, SearchStatusCancelled:
		return true
	}
	return false
}

// SearchQuery asks a log store for records in [StartMillis, EndMillis] whose
// serialized form contains Filter. Matching rows come back newest first.
// Filter is a literal match text, not backend query syntax; each store is
// responsible for quoting it safely in its own dialect.
type SearchQuery struct {
	Partition   string
	Filter      string
	StartMillis int64
	EndMillis   int64
}

// SearchRow is one raw result row from a log store.
type SearchRow struct {
	// Timestamp is the store-reported event time, already rendered as text.
	Timestamp string
	// Message is the serialized record as written.
	Message string
}

// SearchPage is a snapshot of a search's progress and its rows so far.
type SearchPage struct {
	Status SearchStatus
	Rows   []SearchRow
}

// DecodeSearchRows turns raw rows into response records. Each message is
// JSON-decoded when possible and kept as the raw string otherwise; the row
// timestamp is attached as "@timestamp" when the decoded value is a mapping.
func DecodeSearchRows(rows []SearchRow) []any {
	records := make([]any, 0, len(rows))
	for _, row := range rows {
		if row.Message == "" {
			continue
		}
		var decoded any
		if err := json.Unmarshal([]byte(row.Message), &decoded); err != nil {
			records = append(records, row.Message)
			continue
		}
		if m, ok := decoded.(map[string]any); ok && row.Timestamp != "" {
			m["@timestamp"] = row.Timestamp
		}
		records = append(records, decoded)
	}
	return records
}

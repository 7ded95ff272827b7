package history

import (
	"time"
)

// DefaultWindow is the read window applied when the caller supplies no
// start/end bounds.
const DefaultWindow = time.Hour

// TimeRange is a validated half-open query window, start strictly before end.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// StartMillis returns the range start in epoch milliseconds.
func (r TimeRange) StartMillis() int64 { return r.Start.UnixMilli() }

// EndMillis returns the range end in epoch milliseconds.
func (r TimeRange) EndMillis() int64 { return r.End.UnixMilli() }

// ValidateCreate enforces the write payload contract: present, object-shaped,
// non-empty. It returns the payload as a mapping on success.
func ValidateCreate(payload any) (map[string]any, error) {
	if payload == nil {
		return nil, NewValidationError("Request body cannot be empty")
	}
	m, ok := payload.(map[string]any)
	if !ok {
		return nil, NewValidationError("Request body must be a JSON object")
	}
	if len(m) == 0 {
		return nil, NewValidationError("Request body cannot be empty")
	}
	return m, nil
}

// ValidateRead enforces the read contract: non-empty identifier and a
// well-formed time window. Absent bounds default to the last hour, measured
// from now.
func ValidateRead(params map[string]string, id string, now time.Time) (TimeRange, error) {
	if id == "" {
		return TimeRange{}, NewValidationError("ID is required")
	}

	var start, end time.Time
	if raw, ok := params["start"]; ok {
		t, err := parseTimestamp(raw)
		if err != nil {
			return TimeRange{}, NewValidationError("Invalid start time format. Expected ISO 8601 format.")
		}
		start = t
	}
	if raw, ok := params["end"]; ok {
		t, err := parseTimestamp(raw)
		if err != nil {
			return TimeRange{}, NewValidationError("Invalid end time format. Expected ISO 8601 format.")
		}
		end = t
	}

	if start.IsZero() {
		start = now.Add(-DefaultWindow)
	}
	if end.IsZero() {
		end = now
	}

	if !start.Before(end) {
		return TimeRange{}, NewValidationError("Start time must be before end time")
	}
	return TimeRange{Start: start, End: end}, nil
}

// timestampLayouts covers the ISO 8601 spellings callers actually send:
// full RFC3339, zone-less, and date-only.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

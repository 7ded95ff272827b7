package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreate(t *testing.T) {
	t.Run("nil payload", func(t *testing.T) {
		_, err := ValidateCreate(nil)
		v, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Request body cannot be empty", v.Message)
	})

	t.Run("non-object payload", func(t *testing.T) {
		for _, payload := range []any{"text", []any{1, 2}, 42.0, true} {
			_, err := ValidateCreate(payload)
			v, ok := AsValidation(err)
			require.True(t, ok, "payload %v", payload)
			assert.Equal(t, "Request body must be a JSON object", v.Message)
		}
	})

	t.Run("empty object", func(t *testing.T) {
		_, err := ValidateCreate(map[string]any{})
		v, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Request body cannot be empty", v.Message)
	})

	t.Run("non-empty object", func(t *testing.T) {
		payload, err := ValidateCreate(map[string]any{"message": "x"})
		require.NoError(t, err)
		assert.Equal(t, "x", payload["message"])
	})
}

func TestValidateRead(t *testing.T) {
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("empty id", func(t *testing.T) {
		_, err := ValidateRead(nil, "", now)
		v, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "ID is required", v.Message)
	})

	t.Run("defaults to last hour", func(t *testing.T) {
		window, err := ValidateRead(map[string]string{}, "abc", now)
		require.NoError(t, err)
		assert.Equal(t, now.Add(-time.Hour), window.Start)
		assert.Equal(t, now, window.End)
	})

	t.Run("explicit bounds", func(t *testing.T) {
		window, err := ValidateRead(map[string]string{
			"start": "2023-01-01T00:00:00Z",
			"end":   "2023-01-02T00:00:00Z",
		}, "abc", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), window.Start)
		assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), window.End)
	})

	t.Run("start only defaults end to now", func(t *testing.T) {
		window, err := ValidateRead(map[string]string{"start": "2023-06-01T00:00:00Z"}, "abc", now)
		require.NoError(t, err)
		assert.Equal(t, now, window.End)
	})

	t.Run("malformed start", func(t *testing.T) {
		_, err := ValidateRead(map[string]string{"start": "yesterday"}, "abc", now)
		v, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid start time format. Expected ISO 8601 format.", v.Message)
	})

	t.Run("malformed end", func(t *testing.T) {
		_, err := ValidateRead(map[string]string{"end": "tomorrow"}, "abc", now)
		v, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid end time format. Expected ISO 8601 format.", v.Message)
	})

	t.Run("start equal to end", func(t *testing.T) {
		_, err := ValidateRead(map[string]string{
			"start": "2023-01-01T00:00:00Z",
			"end":   "2023-01-01T00:00:00Z",
		}, "abc", now)
		v, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Start time must be before end time", v.Message)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := ValidateRead(map[string]string{
			"start": "2023-01-02T00:00:00Z",
			"end":   "2023-01-01T00:00:00Z",
		}, "abc", now)
		_, ok := AsValidation(err)
		require.True(t, ok)
	})

	t.Run("accepts zone-less and date-only timestamps", func(t *testing.T) {
		window, err := ValidateRead(map[string]string{
			"start": "2023-01-01",
			"end":   "2023-01-02T06:30:00",
		}, "abc", now)
		require.NoError(t, err)
		assert.True(t, window.Start.Before(window.End))
	})
}

func TestTimeRangeMillis(t *testing.T) {
	r := TimeRange{
		Start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, int64(1672531200000), r.StartMillis())
	assert.Equal(t, int64(1672617600000), r.EndMillis())
}

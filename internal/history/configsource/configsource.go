// Package configsource holds the shared contract for configuration
// providers: the blob is JSON and the storage target lives under a fixed key.
// Backend-specific providers live in the subpackages.
package configsource

import (
	"encoding/json"

	"chronicle/internal/history"
)

// TargetKey is the configuration key holding the storage partition name.
const TargetKey = "logGroup"

// ParseTarget extracts the storage target from a raw configuration blob.
// Any defect in the blob surfaces as a ValidationError so callers have one
// failure type to handle.
func ParseTarget(blob []byte) (string, error) {
	var cfg map[string]any
	if err := json.Unmarshal(blob, &cfg); err != nil {
		return "", history.NewValidationError("Configuration is not valid JSON")
	}
	target, _ := cfg[TargetKey].(string)
	if target == "" {
		return "", history.NewValidationErrorf("Configuration missing '%s' key", TargetKey)
	}
	return target, nil
}

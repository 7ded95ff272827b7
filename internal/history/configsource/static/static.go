// Package static provides a ConfigProvider with a fixed storage target,
// for local runs and tests.
package static

import (
	"context"

	"chronicle/internal/history"
)

// Provider returns the same storage target on every lookup.
type Provider struct {
	target string
}

// New constructs a static provider.
func New(target string) *Provider {
	return &Provider{target: target}
}

// StorageTarget implements ports.ConfigProvider.
func (p *Provider) StorageTarget(context.Context) (string, error) {
	if p.target == "" {
		return "", history.NewValidationError("Storage target is not configured")
	}
	return p.target, nil
}

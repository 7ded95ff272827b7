// Package redisconfig resolves the storage target from a JSON blob stored
// under a single Redis key.
package redisconfig

import (
	"context"

	"github.com/redis/go-redis/v9"

	"chronicle/internal/history"
	"chronicle/internal/history/configsource"
)

// Provider reads the configuration blob from Redis on every lookup. The
// blob is not cached; volume is low and a stale target is worse than an
// extra round trip.
type Provider struct {
	client redis.Cmdable
	key    string
}

// New constructs a Redis-backed provider reading the blob under key.
func New(client redis.Cmdable, key string) *Provider {
	return &Provider{client: client, key: key}
}

// StorageTarget implements ports.ConfigProvider.
func (p *Provider) StorageTarget(ctx context.Context) (string, error) {
	blob, err := p.client.Get(ctx, p.key).Bytes()
	if err != nil {
		return "", history.WrapValidation("retrieve configuration", err)
	}
	return configsource.ParseTarget(blob)
}

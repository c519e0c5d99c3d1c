package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/usermgmt/user-address-api/internal/api/metrics"
	"github.com/usermgmt/user-address-api/internal/core/ports"
)

const defaultCacheTTL = 24 * time.Hour

// CepCache is a read-through cache over a CepLookup, backed by Redis.
// Key format: cep:<postal_code>. Only positive results are cached, so a
// code that becomes resolvable is picked up immediately. Cache failures are
// logged and fall through to the underlying lookup.
type CepCache struct {
	next   ports.CepLookup
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCepCache wraps next with a Redis cache. If ttl <= 0, defaultCacheTTL
// is used.
func NewCepCache(next ports.CepLookup, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CepCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CepCache{next: next, client: client, ttl: ttl, log: log}
}

func (c *CepCache) Lookup(ctx context.Context, cep string) (*ports.CepResult, error) {
	key := c.key(cep)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var cached ports.CepResult
		if err := json.Unmarshal(raw, &cached); err == nil {
			metrics.CepCacheTotal.WithLabelValues("hit").Inc()
			return &cached, nil
		}
		c.log.Warn().Str("cep", cep).Msg("discarding undecodable cep cache entry")
	}
	metrics.CepCacheTotal.WithLabelValues("miss").Inc()

	result, err := c.next.Lookup(ctx, cep)
	if err != nil {
		return nil, err
	}

	if result != nil && !result.NotFound && result.Cep != "" {
		raw, err := json.Marshal(result)
		if err == nil {
			if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
				c.log.Warn().Err(err).Str("cep", cep).Msg("failed to cache cep result")
			}
		}
	}

	return result, nil
}

func (c *CepCache) key(cep string) string {
	return fmt.Sprintf("cep:%s", cep)
}

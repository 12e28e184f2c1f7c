// Package orgpolicy is a read-through Redis cache in front of the org
// settings port. Policy rows are read on every conflict check and change
// rarely; a cache miss or a Redis failure falls back to the source port.
package orgpolicy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
)

// SettingsSource источник настроек организации (обычно репозиторий)
type SettingsSource interface {
	GetPolicy(ctx context.Context, orgID int64) (*domain.OrgPolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache read-through кэш политики организации
type Cache struct {
	source SettingsSource
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// New creates a cache over source with the given TTL.
func New(source SettingsSource, client *redis.Client, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		source: source,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetPolicy returns the cached policy when present, otherwise reads the
// source and stores the result. Cache failures never fail the call.
func (c *Cache) GetPolicy(ctx context.Context, orgID int64) (*domain.OrgPolicy, error) {
	key := policyKey(orgID)

	val, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var policy domain.OrgPolicy
		if jsonErr := json.Unmarshal([]byte(val), &policy); jsonErr == nil {
			return &policy, nil
		}
		c.logger.Warn("orgpolicy cache: corrupt entry for org=%d, falling back to source", orgID)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("orgpolicy cache: get failed for org=%d: %v", orgID, err)
	}

	policy, err := c.source.GetPolicy(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(policy); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			c.logger.Warn("orgpolicy cache: set failed for org=%d: %v", orgID, setErr)
		}
	}

	return policy, nil
}

func policyKey(orgID int64) string {
	return fmt.Sprintf("orgpolicy:%d", orgID)
}

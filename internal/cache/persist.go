package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// viewKeyPrefix namespaces the persisted view entries.
const viewKeyPrefix = "channeldex:view:"

// RedisPersister stores view cache entries in Redis as JSON under
// namespaced keys. It implements Persister.
type RedisPersister struct {
	r *Redis
}

// NewRedisPersister wraps r as the persisted cache tier.
func NewRedisPersister(r *Redis) *RedisPersister {
	return &RedisPersister{r: r}
}

// ReadEntry fetches and decodes the entry for key. Missing and corrupt
// entries are both misses; a corrupt entry is dropped so it cannot
// poison the next restore.
func (p *RedisPersister) ReadEntry(ctx context.Context, key string) (*PersistedEntry, error) {
	raw, err := p.r.GetBytes(ctx, viewKeyPrefix+key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	var e PersistedEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		_ = p.r.Del(ctx, viewKeyPrefix+key)
		return nil, nil
	}
	return &e, nil
}

// WriteEntry stores the entry for key.
func (p *RedisPersister) WriteEntry(ctx context.Context, key string, e PersistedEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return p.r.SetBytes(ctx, viewKeyPrefix+key, data)
}

// DeleteEntry removes the entry for key.
func (p *RedisPersister) DeleteEntry(ctx context.Context, key string) error {
	err := p.r.Del(ctx, viewKeyPrefix+key)
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

package cache

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/voyagen/channeldex/internal/models"
)

// View cache keys, one per view type.
const (
	KeyCountry  = "country"
	KeyCategory = "category"
	KeyStats    = "stats"
)

// KnownKeys lists every key Restore and Clear operate on.
var KnownKeys = []string{KeyCountry, KeyCategory, KeyStats}

// PersistedEntry is the triple mirrored into the persisted tier.
type PersistedEntry struct {
	Value      json.RawMessage `json:"value"`
	InsertedAt time.Time       `json:"inserted_at"`
	Expiry     time.Time       `json:"expiry"`
}

// Persister is the persisted key-value tier. ReadEntry returns
// (nil, nil) on a miss. Write failures are non-fatal to the cache.
type Persister interface {
	ReadEntry(ctx context.Context, key string) (*PersistedEntry, error)
	WriteEntry(ctx context.Context, key string, e PersistedEntry) error
	DeleteEntry(ctx context.Context, key string) error
}

type entry struct {
	value      any
	insertedAt time.Time
	expiry     time.Time
}

// ViewCache is the two-tier cache keyed by view type. An entry is
// valid iff now < expiry; an expired entry is purged from both tiers
// on the read that observes it, never served.
type ViewCache struct {
	mu      sync.Mutex
	entries map[string]entry
	persist Persister // nil disables the persisted tier
	ttl     time.Duration

	now func() time.Time // injectable for tests
}

// NewViewCache returns a cache with the given default TTL. persist may
// be nil, leaving only the in-memory tier.
func NewViewCache(persist Persister, ttl time.Duration) *ViewCache {
	return &ViewCache{
		entries: make(map[string]entry),
		persist: persist,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached value for key when it is still fresh. An
// expired entry is deleted from both tiers and reported as a miss.
func (v *ViewCache) Get(ctx context.Context, key string) (any, bool) {
	v.mu.Lock()
	e, ok := v.entries[key]
	if ok && v.now().Before(e.expiry) {
		v.mu.Unlock()
		return e.value, true
	}
	if ok {
		delete(v.entries, key)
	}
	v.mu.Unlock()

	if ok && v.persist != nil {
		if err := v.persist.DeleteEntry(ctx, key); err != nil {
			log.Printf("cache: delete expired %s: %v", key, err)
		}
	}
	return nil, false
}

// Set stores value under key with expiry now+ttl (ttl <= 0 uses the
// default) and best-effort mirrors the entry into the persisted tier.
// A persistence failure is logged and swallowed.
func (v *ViewCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = v.ttl
	}
	inserted := v.now()
	e := entry{value: value, insertedAt: inserted, expiry: inserted.Add(ttl)}

	v.mu.Lock()
	v.entries[key] = e
	v.mu.Unlock()

	if v.persist == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: marshal %s: %v", key, err)
		return
	}
	pe := PersistedEntry{Value: raw, InsertedAt: inserted, Expiry: e.expiry}
	if err := v.persist.WriteEntry(ctx, key, pe); err != nil {
		log.Printf("cache: set %s: %v", key, err)
	}
}

// Restore hydrates the in-memory tier from the persisted tier for
// every known key. Fresh entries are loaded, expired ones deleted;
// missing or corrupt persisted data is treated as a miss.
func (v *ViewCache) Restore(ctx context.Context) {
	if v.persist == nil {
		return
	}
	for _, key := range KnownKeys {
		pe, err := v.persist.ReadEntry(ctx, key)
		if err != nil {
			log.Printf("cache: restore %s: %v", key, err)
			continue
		}
		if pe == nil {
			continue
		}
		if !v.now().Before(pe.Expiry) {
			if err := v.persist.DeleteEntry(ctx, key); err != nil {
				log.Printf("cache: delete expired %s: %v", key, err)
			}
			continue
		}
		value, err := decodeViewValue(key, pe.Value)
		if err != nil {
			log.Printf("cache: restore %s: %v", key, err)
			continue
		}
		v.mu.Lock()
		v.entries[key] = entry{value: value, insertedAt: pe.InsertedAt, expiry: pe.Expiry}
		v.mu.Unlock()
	}
}

// Clear drops all in-memory entries and all known persisted entries
// unconditionally.
func (v *ViewCache) Clear(ctx context.Context) {
	v.mu.Lock()
	v.entries = make(map[string]entry)
	v.mu.Unlock()

	if v.persist == nil {
		return
	}
	for _, key := range KnownKeys {
		if err := v.persist.DeleteEntry(ctx, key); err != nil {
			log.Printf("cache: clear %s: %v", key, err)
		}
	}
}

// decodeViewValue unmarshals a persisted value into the concrete type
// stored under that key.
func decodeViewValue(key string, raw json.RawMessage) (any, error) {
	switch key {
	case KeyStats:
		var st models.Stats
		if err := json.Unmarshal(raw, &st); err != nil {
			return nil, err
		}
		return &st, nil
	default:
		var view models.GroupedView
		if err := json.Unmarshal(raw, &view); err != nil {
			return nil, err
		}
		return &view, nil
	}
}

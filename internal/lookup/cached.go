package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/pkg/logger"
)

// Store is one cache tier. Get reports ok=false on a miss.
type Store interface {
	Get(ctx context.Context, key string) (result *analysis.AnalysisResult, ok bool, err error)
	Set(ctx context.Context, key string, result *analysis.AnalysisResult) error
}

// MemoryStore keeps results in process.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates an in-process store with the given expiry.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(ttl, cleanupInterval)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (*analysis.AnalysisResult, bool, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	res, err := clone(v.(*analysis.AnalysisResult))
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, result *analysis.AnalysisResult) error {
	c, err := clone(result)
	if err != nil {
		return err
	}
	m.cache.SetDefault(key, c)
	return nil
}

// RedisStore shares results between processes as JSON values.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a store writing keys as prefix+key.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, key string) (*analysis.AnalysisResult, bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var res analysis.AnalysisResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached analysis: %w", err)
	}
	return &res, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, result *analysis.AnalysisResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.prefix+key, raw, r.ttl).Err()
}

// DefaultFlightTimeout bounds a shared inner lookup.
const DefaultFlightTimeout = 2 * time.Minute

// Cached serves repeated queries from its stores. Stores are consulted in
// order and a hit in a later tier is copied into the earlier ones. Failed
// lookups are never stored, and store errors only cost a cache miss.
//
// Concurrent misses for the same key share one inner lookup. That lookup
// outlives any single caller: it runs detached from the caller's context
// under its own timeout, and a caller that gives up just stops waiting.
type Cached struct {
	inner   Lookup
	stores  []Store
	group   singleflight.Group
	timeout time.Duration
	log     *logger.Logger
}

// NewCached wraps inner with the given stores, fastest first.
func NewCached(inner Lookup, log *logger.Logger, stores ...Store) *Cached {
	return &Cached{inner: inner, stores: stores, timeout: DefaultFlightTimeout, log: log.Named("cache")}
}

// WithTimeout sets the limit on a shared inner lookup. Zero or less keeps
// the default.
func (c *Cached) WithTimeout(d time.Duration) *Cached {
	if d > 0 {
		c.timeout = d
	}
	return c
}

func (c *Cached) Lookup(ctx context.Context, query string) (*analysis.AnalysisResult, error) {
	key := Normalize(query)

	for i, s := range c.stores {
		res, ok, err := s.Get(ctx, key)
		if err != nil {
			c.log.Warn("Cache read failed", logger.StringField("key", key), logger.IntField("tier", i), logger.ErrorField(err))
			continue
		}
		if ok {
			c.fill(ctx, key, res, i)
			return res, nil
		}
	}

	ch := c.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		res, err := c.inner.Lookup(fctx, query)
		if err != nil {
			return nil, err
		}
		c.fill(fctx, key, res, len(c.stores))
		return res, nil
	})

	select {
	case <-ctx.Done():
		return nil, analysis.Transient(query, ctx.Err())
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		// Callers sharing a flight must not share a result.
		return clone(r.Val.(*analysis.AnalysisResult))
	}
}

// fill writes res into every store before tier.
func (c *Cached) fill(ctx context.Context, key string, res *analysis.AnalysisResult, tier int) {
	for i := 0; i < tier; i++ {
		if err := c.stores[i].Set(ctx, key, res); err != nil {
			c.log.Warn("Cache write failed", logger.StringField("key", key), logger.IntField("tier", i), logger.ErrorField(err))
		}
	}
}

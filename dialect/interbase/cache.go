package interbase

import (
	"context"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/ibx"
	"github.com/syssam/ibx/dialect/sql/schema"
)

// codec encodes reflection results for the cache. Every hit decodes a
// private copy, so callers may mutate what they get back.
type codec[T any] struct{}

func (codec[T]) encode(v T) ([]byte, error) { return msgpack.Marshal(v) }

func (codec[T]) decode(b []byte) (T, error) {
	var v T
	err := msgpack.Unmarshal(b, &v)
	return v, err
}

// backend returns the cache in use, or nil once closed or disabled.
func (r *Reflector) backend() ibx.Cache {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cache
}

// cached returns the cached result of key, or runs load once for all
// concurrent callers of the same key and stores its encoded result.
func cached[T any](ctx context.Context, r *Reflector, op, table string, load func(context.Context) (T, error)) (T, error) {
	cache := r.backend()
	if cache == nil {
		return load(ctx)
	}
	var (
		c   codec[T]
		k   = ibx.CacheKey{Operation: op, Table: table, Schema: r.namespace}.String()
		log = r.logger.With("key", k)
	)
	if b, err := cache.Get(ctx, k); err != nil {
		log.WarnContext(ctx, "reflection cache get failed", "error", err)
	} else if b != nil {
		if v, err := c.decode(b); err == nil {
			log.DebugContext(ctx, "reflection cache hit")
			return v, nil
		}
		log.WarnContext(ctx, "reflection cache entry undecodable, reloading")
	}
	b, err, shared := r.group.Do(k, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		b, err := c.encode(v)
		if err != nil {
			return nil, fmt.Errorf("interbase: encode %s: %w", op, err)
		}
		if err := cache.Set(ctx, k, b, r.ttl); err != nil {
			log.WarnContext(ctx, "reflection cache set failed", "error", err)
		}
		return b, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	log.DebugContext(ctx, "reflection cache miss", "shared", shared)
	v, err := c.decode(b.([]byte))
	if err != nil {
		return v, fmt.Errorf("interbase: decode %s: %w", op, err)
	}
	return v, nil
}

// Invalidate discards the cached reflection results of this reflector.
// Entries of other namespaces sharing the cache are kept.
func (r *Reflector) Invalidate(ctx context.Context) error {
	cache := r.backend()
	if cache == nil {
		return nil
	}
	r.logger.DebugContext(ctx, "reflection cache invalidated")
	return cache.DeletePrefix(ctx, ibx.SchemaPrefix(r.namespace))
}

// InvalidateTable discards the cached results about the named table or
// generator, along with the name lists and domains.
func (r *Reflector) InvalidateTable(ctx context.Context, name string) error {
	cache := r.backend()
	if cache == nil {
		return nil
	}
	r.logger.DebugContext(ctx, "reflection cache invalidated", "table", name)
	if err := cache.DeletePrefix(ctx, ibx.TablePrefix(r.namespace, name)); err != nil {
		return err
	}
	return cache.DeletePrefix(ctx, ibx.TablePrefix(r.namespace, ""))
}

// InvalidateFor discards the cached results made stale by ops. When an
// operation does not name what it changes, everything is discarded.
func (r *Reflector) InvalidateFor(ctx context.Context, ops ...schema.Operation) error {
	seen := make(map[string]bool, len(ops))
	for _, op := range ops {
		name := schema.Target(op)
		if name == "" {
			return r.Invalidate(ctx)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		if err := r.InvalidateTable(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// Close discards the cache. The reflector keeps working without caching.
func (r *Reflector) Close() error {
	r.mu.Lock()
	cache := r.cache
	r.cache = nil
	r.mu.Unlock()
	if cache == nil {
		return nil
	}
	return cache.DeletePrefix(context.Background(), ibx.SchemaPrefix(r.namespace))
}

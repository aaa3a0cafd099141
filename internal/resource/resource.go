// Package resource implements the data-access orchestrator: for every read
// and write it decides whether to hit the network, retries transient
// failures, serves cached snapshots when offline, and invalidates the cache
// after mutations. One generic client covers every resource type; the
// per-resource files supply paths, decoders and filter predicates.
package resource

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tailorly/seam/internal/api"
	"github.com/tailorly/seam/internal/cache"
	"github.com/tailorly/seam/internal/metrics"
)

// NetStatus is the connectivity view the orchestrator needs. The netstatus
// tracker satisfies it; tests substitute a fake.
type NetStatus interface {
	Online() bool
}

// Page is one page of list results. Stale is set when the items were served
// from the offline cache instead of the network; the shape is otherwise
// identical so callers never branch on data origin.
type Page[T any] struct {
	Items   []T
	LastKey string
	Stale   bool
}

// Config describes one resource type to the generic client.
type Config[T any] struct {
	// Name keys the cache namespace, e.g. "customers".
	Name string
	// BasePath is the collection path, e.g. "/customers".
	BasePath string
	// DecodeList parses a list response into normalized items plus the
	// pagination cursor (empty when the endpoint does not paginate).
	DecodeList func(data []byte) ([]T, string, error)
	// DecodeOne parses a single-record response into a normalized item.
	DecodeOne func(data []byte) (T, error)
	// ID extracts a record's id for per-id cache keys.
	ID func(item T) string
	// Match is the client-side equivalent of the server's list filter,
	// applied when a query runs against the cached snapshot.
	Match func(item T, q Query) bool
}

// Deps are the collaborators every resource client shares.
type Deps struct {
	API   *api.Client
	Cache cache.Store
	Net   NetStatus
	Retry api.RetryConfig
}

// Client orchestrates reads and writes for a single resource type.
type Client[T any] struct {
	cfg   Config[T]
	api   *api.Client
	store cache.Store
	net   NetStatus
	retry api.RetryConfig

	group singleflight.Group
	locks keyedLocks
}

// New creates a resource client from its per-resource config.
func New[T any](cfg Config[T], deps Deps) *Client[T] {
	return &Client[T]{
		cfg:   cfg,
		api:   deps.API,
		store: deps.Cache,
		net:   deps.Net,
		retry: deps.Retry,
	}
}

// List fetches a page of records. Offline, it filters the last cached full
// snapshot client-side; a narrow filtered cache entry for an arbitrary query
// is unlikely to exist exactly when offline data is needed most.
func (c *Client[T]) List(ctx context.Context, q Query) (Page[T], error) {
	if !c.net.Online() {
		return c.listFromCache(ctx, q)
	}

	key := listKey(c.cfg.Name, q)
	result, err, _ := c.group.Do(key, func() (any, error) {
		return c.fetchList(ctx, q, key)
	})
	if err != nil {
		return Page[T]{}, err
	}
	return result.(Page[T]), nil
}

func (c *Client[T]) fetchList(ctx context.Context, q Query, key string) (Page[T], error) {
	start := time.Now()
	metrics.RequestsTotal.WithLabelValues(c.cfg.Name, "list").Inc()

	data, err := api.Do(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		return c.api.Get(ctx, c.cfg.BasePath, q.Values())
	})
	if err != nil {
		return Page[T]{}, c.countErr("list", err)
	}
	metrics.RequestLatency.WithLabelValues(c.cfg.Name, "list").Observe(time.Since(start).Seconds())

	items, lastKey, err := c.cfg.DecodeList(data)
	if err != nil {
		return Page[T]{}, c.countErr("list", api.ClassifyDecode(err))
	}

	c.writeCache(ctx, key, items)
	return Page[T]{Items: items, LastKey: lastKey}, nil
}

func (c *Client[T]) listFromCache(ctx context.Context, q Query) (Page[T], error) {
	// Offline reads always come from the unfiltered base snapshot.
	entry, ok, err := c.store.Get(ctx, listKey(c.cfg.Name, Query{}))
	if err != nil {
		slog.Warn("Cache read failed", "resource", c.cfg.Name, "error", err)
		ok = false
	}
	if !ok {
		metrics.CacheMisses.WithLabelValues(c.cfg.Name).Inc()
		return Page[T]{}, api.NewNetworkError("offline and no cached snapshot for " + c.cfg.Name)
	}

	var all []T
	if err := json.Unmarshal(entry.Value, &all); err != nil {
		metrics.CacheMisses.WithLabelValues(c.cfg.Name).Inc()
		return Page[T]{}, api.NewNetworkError("offline and cached snapshot for " + c.cfg.Name + " is unreadable")
	}

	metrics.CacheHits.WithLabelValues(c.cfg.Name).Inc()

	items := make([]T, 0, len(all))
	for _, item := range all {
		if c.cfg.Match == nil || c.cfg.Match(item, q) {
			items = append(items, item)
		}
	}
	return Page[T]{Items: items, Stale: true}, nil
}

// GetByID fetches a single record, falling back to its per-id cache entry
// when offline.
func (c *Client[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	key := idKey(c.cfg.Name, id)

	if !c.net.Online() {
		entry, ok, err := c.store.Get(ctx, key)
		if err != nil {
			slog.Warn("Cache read failed", "resource", c.cfg.Name, "id", id, "error", err)
			ok = false
		}
		if ok {
			var item T
			if err := json.Unmarshal(entry.Value, &item); err == nil {
				metrics.CacheHits.WithLabelValues(c.cfg.Name).Inc()
				return item, nil
			}
		}
		metrics.CacheMisses.WithLabelValues(c.cfg.Name).Inc()
		return zero, api.NewNetworkError("offline and no cached copy of " + c.cfg.Name + " " + id)
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		return c.fetchOne(ctx, id, key)
	})
	if err != nil {
		return zero, err
	}
	return result.(T), nil
}

func (c *Client[T]) fetchOne(ctx context.Context, id, key string) (T, error) {
	var zero T
	start := time.Now()
	metrics.RequestsTotal.WithLabelValues(c.cfg.Name, "get").Inc()

	data, err := api.Do(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		return c.api.Get(ctx, c.cfg.BasePath+"/"+id, nil)
	})
	if err != nil {
		return zero, c.countErr("get", err)
	}
	metrics.RequestLatency.WithLabelValues(c.cfg.Name, "get").Observe(time.Since(start).Seconds())

	item, err := c.cfg.DecodeOne(data)
	if err != nil {
		return zero, c.countErr("get", api.ClassifyDecode(err))
	}

	c.writeCache(ctx, key, item)
	return item, nil
}

// Create posts a new record. Writes never touch the cache for reading and
// never queue: when offline they fail fast with a network error rather than
// pretending the mutation happened.
func (c *Client[T]) Create(ctx context.Context, input any) (T, error) {
	var zero T
	if !c.net.Online() {
		return zero, api.NewNetworkError("cannot create " + c.cfg.Name + " while offline")
	}

	metrics.RequestsTotal.WithLabelValues(c.cfg.Name, "create").Inc()
	data, err := api.Do(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		return c.api.Post(ctx, c.cfg.BasePath, input)
	})
	if err != nil {
		return zero, c.countErr("create", err)
	}

	item, err := c.cfg.DecodeOne(data)
	if err != nil {
		return zero, c.countErr("create", api.ClassifyDecode(err))
	}

	c.invalidate(ctx, "")
	return item, nil
}

// Update puts new contents for an existing record and invalidates both the
// list variants and the record's own cache entry.
func (c *Client[T]) Update(ctx context.Context, id string, input any) (T, error) {
	var zero T
	if !c.net.Online() {
		return zero, api.NewNetworkError("cannot update " + c.cfg.Name + " while offline")
	}

	metrics.RequestsTotal.WithLabelValues(c.cfg.Name, "update").Inc()
	data, err := api.Do(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		return c.api.Put(ctx, c.cfg.BasePath+"/"+id, input)
	})
	if err != nil {
		return zero, c.countErr("update", err)
	}

	item, err := c.cfg.DecodeOne(data)
	if err != nil {
		return zero, c.countErr("update", api.ClassifyDecode(err))
	}

	c.invalidate(ctx, id)
	return item, nil
}

// Delete removes a record and invalidates its cache entries.
func (c *Client[T]) Delete(ctx context.Context, id string) error {
	if !c.net.Online() {
		return api.NewNetworkError("cannot delete " + c.cfg.Name + " while offline")
	}

	metrics.RequestsTotal.WithLabelValues(c.cfg.Name, "delete").Inc()
	_, err := api.Do(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		return c.api.Delete(ctx, c.cfg.BasePath+"/"+id)
	})
	if err != nil {
		return c.countErr("delete", err)
	}

	c.invalidate(ctx, id)
	return nil
}

// ClearCache wipes every cached entry for this resource.
func (c *Client[T]) ClearCache(ctx context.Context) error {
	if err := c.store.RemovePrefix(ctx, c.cfg.Name+":"); err != nil {
		return err
	}
	return nil
}

// writeCache stores a normalized value. Writes to the same key are
// serialized so a superseded in-flight response cannot interleave with a
// newer one mid-write. Cache failures degrade to a log line: the caller
// already has fresh data.
func (c *Client[T]) writeCache(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("Cache encode failed", "resource", c.cfg.Name, "key", key, "error", err)
		return
	}

	unlock := c.locks.lock(key)
	defer unlock()

	if err := c.store.Set(ctx, key, data); err != nil {
		slog.Warn("Cache write failed", "resource", c.cfg.Name, "key", key, "error", err)
	}
}

// invalidate removes every list variant and, when id is set, the per-id
// entry. Mutations never repopulate; the next read re-fetches.
func (c *Client[T]) invalidate(ctx context.Context, id string) {
	if err := c.store.RemovePrefix(ctx, listPrefix(c.cfg.Name)); err != nil {
		slog.Warn("Cache invalidation failed", "resource", c.cfg.Name, "error", err)
	}
	if id != "" {
		if err := c.store.Remove(ctx, idKey(c.cfg.Name, id)); err != nil {
			slog.Warn("Cache invalidation failed", "resource", c.cfg.Name, "id", id, "error", err)
		}
	}
}

func (c *Client[T]) countErr(op string, err error) error {
	kind := string(api.KindAPIService)
	if api.IsNetwork(err) {
		kind = string(api.KindNetwork)
	}
	metrics.ErrorsTotal.WithLabelValues(c.cfg.Name, op, kind).Inc()
	return err
}

// keyedLocks hands out one mutex per cache key.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedLocks) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

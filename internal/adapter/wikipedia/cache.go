package wikipedia

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/couchcryptid/landmask-etl/internal/observability"
)

// CachedFetcher wraps a PageFetcher with an in-memory LRU cache.
type CachedFetcher struct {
	inner   PageFetcher
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedFetcher creates a cache decorator around a fetcher.
func NewCachedFetcher(inner PageFetcher, maxEntries int, metrics *observability.Metrics) *CachedFetcher {
	return &CachedFetcher{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedFetcher) Fetch(ctx context.Context, page string) ([]byte, error) {
	if body, ok := c.cache.get(page); ok {
		c.metrics.PageCache.WithLabelValues("memory", "hit").Inc()
		return body, nil
	}
	c.metrics.PageCache.WithLabelValues("memory", "miss").Inc()

	body, err := c.inner.Fetch(ctx, page)
	if err != nil {
		return nil, err
	}
	if len(body) > 0 {
		c.cache.put(page, body)
	}
	return body, nil
}

// DirCache keeps one <page>.html file per downloaded page so repeated runs
// do not hit the source again.
type DirCache struct {
	inner   PageFetcher
	dir     string
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewDirCache creates an on-disk cache in dir, created on first write.
func NewDirCache(inner PageFetcher, dir string, metrics *observability.Metrics, logger *slog.Logger) *DirCache {
	return &DirCache{inner: inner, dir: dir, metrics: metrics, logger: logger}
}

func (c *DirCache) Fetch(ctx context.Context, page string) ([]byte, error) {
	path := filepath.Join(c.dir, page+".html")

	body, err := os.ReadFile(path)
	switch {
	case err == nil:
		c.metrics.PageCache.WithLabelValues("disk", "hit").Inc()
		c.logger.Debug("page read from disk cache", "page", page, "path", path)
		return body, nil
	case !errors.Is(err, fs.ErrNotExist):
		c.logger.Warn("page cache read failed", "page", page, "error", err)
	}
	c.metrics.PageCache.WithLabelValues("disk", "miss").Inc()

	body, err = c.inner.Fetch(ctx, page)
	if err != nil {
		return nil, err
	}
	if err := c.write(path, body); err != nil {
		c.logger.Warn("page cache write failed", "page", page, "error", err)
	}
	return body, nil
}

func (c *DirCache) write(path string, body []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// lruCache is a simple thread-safe LRU cache of page bodies.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []byte
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}

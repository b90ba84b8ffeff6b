package wikipedia

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingFetcher struct {
	calls map[string]int
	body  []byte
	err   error
}

func newCountingFetcher(body string) *countingFetcher {
	return &countingFetcher{calls: map[string]int{}, body: []byte(body)}
}

func (m *countingFetcher) Fetch(_ context.Context, page string) ([]byte, error) {
	m.calls[page]++
	if m.err != nil {
		return nil, m.err
	}
	return m.body, nil
}

// --- CachedFetcher tests ---

func TestCachedFetcher_Hit(t *testing.T) {
	inner := newCountingFetcher("<html/>")
	metrics := testMetrics()
	cached := NewCachedFetcher(inner, 10, metrics)

	b1, err := cached.Fetch(context.Background(), "180th_meridian")
	require.NoError(t, err)
	b2, err := cached.Fetch(context.Background(), "180th_meridian")
	require.NoError(t, err)

	assert.Equal(t, b1, b2)
	assert.Equal(t, 1, inner.calls["180th_meridian"], "should only call inner once")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.PageCache.WithLabelValues("memory", "hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.PageCache.WithLabelValues("memory", "miss")), 0)
}

func TestCachedFetcher_ErrorNotCached(t *testing.T) {
	inner := newCountingFetcher("")
	inner.err = errors.New("timeout")
	cached := NewCachedFetcher(inner, 10, testMetrics())

	_, err := cached.Fetch(context.Background(), "a")
	require.Error(t, err)
	_, err = cached.Fetch(context.Background(), "a")
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls["a"])
}

// --- DirCache tests ---

func TestDirCache_WritesAndReusesPages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pages")
	inner := newCountingFetcher(meridianPage)
	metrics := testMetrics()
	cache := NewDirCache(inner, dir, metrics, discardLogger())

	body, err := cache.Fetch(context.Background(), "2nd_meridian_west")
	require.NoError(t, err)
	assert.Equal(t, meridianPage, string(body))

	onDisk, err := os.ReadFile(filepath.Join(dir, "2nd_meridian_west.html"))
	require.NoError(t, err)
	assert.Equal(t, meridianPage, string(onDisk))

	// A fresh cache over the same directory must not refetch.
	again := NewDirCache(inner, dir, metrics, discardLogger())
	body, err = again.Fetch(context.Background(), "2nd_meridian_west")
	require.NoError(t, err)
	assert.Equal(t, meridianPage, string(body))
	assert.Equal(t, 1, inner.calls["2nd_meridian_west"])
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.PageCache.WithLabelValues("disk", "hit")), 0)
}

func TestDirCache_InnerError(t *testing.T) {
	inner := newCountingFetcher("")
	inner.err = errors.New("offline")
	cache := NewDirCache(inner, t.TempDir(), testMetrics(), discardLogger())

	_, err := cache.Fetch(context.Background(), "3rd_meridian_east")
	assert.ErrorContains(t, err, "offline")
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("A"), v)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))
	c.put("c", []byte("C")) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	v, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, []byte("B"), v)

	v, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, []byte("C"), v)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	c.get("a")

	// "b" is now least recently used.
	c.put("c", []byte("C"))

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A1"))
	c.put("a", []byte("A2"))

	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("A2"), v)
}

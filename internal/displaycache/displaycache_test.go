package displaycache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/dsview/internal/arena"
	"github.com/grailbio/dsview/internal/encoding"
)

func newCache() *Cache {
	a := arena.New(arena.Config{
		CacheEntryPoolSize:   16,
		StringPoolBytes:      4096,
		TruncatedVersionPool: 32,
		InternTableSize:      32,
	})
	return New(a, 8, encoding.ASCII, 8)
}

func TestGetTruncatedShorterThanWidthReturnsOriginal(t *testing.T) {
	c := newCache()
	assert.Equal(t, "hi", c.GetTruncated("hi", 10))
}

func TestGetTruncatedCachesByWidth(t *testing.T) {
	c := newCache()
	got1 := c.GetTruncated("hello world", 5)
	assert.Equal(t, "hello", got1)
	got2 := c.GetTruncated("hello world", 5)
	assert.Equal(t, got1, got2)
}

func TestGetTruncatedDistinctWidthsCached(t *testing.T) {
	c := newCache()
	w5 := c.GetTruncated("hello world", 5)
	w8 := c.GetTruncated("hello world", 8)
	assert.Equal(t, "hello", w5)
	assert.Equal(t, "hello wo", w8)
}

func TestGetTruncatedArenaExhaustionBypasses(t *testing.T) {
	a := arena.New(arena.Config{CacheEntryPoolSize: 0, StringPoolBytes: 16, TruncatedVersionPool: 0, InternTableSize: 4})
	c := New(a, 4, encoding.ASCII, 4)
	got := c.GetTruncated("hello world", 5)
	assert.Equal(t, "hello world", got)
}

func TestGetTruncatedEnforcesPerEntryLimit(t *testing.T) {
	a := arena.New(arena.Config{
		CacheEntryPoolSize:   16,
		StringPoolBytes:      4096,
		TruncatedVersionPool: 32,
		InternTableSize:      32,
	})
	c := New(a, 8, encoding.ASCII, 2)

	w5 := c.GetTruncated("hello world", 5)
	w8 := c.GetTruncated("hello world", 8)
	assert.Equal(t, "hello", w5)
	assert.Equal(t, "hello wo", w8)

	var entry *arena.CacheEntry
	h := arena.Hash64("hello world")
	for e := c.buckets[int(h%uint64(len(c.buckets)))]; e != nil; e = e.Next {
		if e.Original == "hello world" {
			entry = e
		}
	}
	assert.Len(t, entry.Truncated, 2)

	w9 := c.GetTruncated("hello world", 9)
	assert.Equal(t, "hello wor", w9)
	assert.Len(t, entry.Truncated, 2) // third distinct width not cached, limit held
}

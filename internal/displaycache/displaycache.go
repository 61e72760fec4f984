// Package displaycache implements a width-keyed truncation cache: a
// chained hash table over arena-interned originals, each holding an
// append-only list of (width, truncated-string) pairs bounded per entry
// by a configured maximum; widths beyond the bound fall back to a
// transient, uncached result. No locking is needed since the viewer is
// single-threaded.
package displaycache

import (
	"github.com/grailbio/dsview/internal/arena"
	"github.com/grailbio/dsview/internal/encoding"
)

// Cache is the display cache for one viewer session.
type Cache struct {
	arena       *arena.Arena
	buckets     []*arena.CacheEntry
	enc         encoding.Encoding
	maxPerEntry int
}

// New creates a Cache backed by a. size should be a power of two (the
// cache size from config). maxPerEntry bounds how many distinct widths an
// entry caches before further widths fall back to the transient buffer;
// <= 0 means unbounded.
func New(a *arena.Arena, size int, enc encoding.Encoding, maxPerEntry int) *Cache {
	if size <= 0 {
		size = 1
	}
	return &Cache{arena: a, buckets: make([]*arena.CacheEntry, size), enc: enc, maxPerEntry: maxPerEntry}
}

// GetTruncated returns original truncated to fit width, caching the
// result keyed by width for reuse on subsequent calls.
func (c *Cache) GetTruncated(original string, width int) string {
	if encoding.DisplayWidth(original, c.enc) <= width {
		return original
	}

	h := arena.Hash64(original)
	bucket := int(h % uint64(len(c.buckets)))

	var entry *arena.CacheEntry
	for e := c.buckets[bucket]; e != nil; e = e.Next {
		if e.Original == original {
			entry = e
			break
		}
	}

	if entry != nil {
		for i := range entry.Truncated {
			if entry.Truncated[i].Width == width {
				return entry.Truncated[i].Str
			}
		}
		truncated := encoding.Truncate(original, width, c.enc)
		if c.atEntryLimit(len(entry.Truncated)) {
			return truncated // per-entry bound reached: transient, not cached
		}
		if slot, ok := c.arena.AllocTruncatedSlot(); ok {
			interned, ok := c.arena.StrdupIntoPool(truncated)
			if !ok {
				interned = truncated
			}
			*slot = arena.TruncatedVersion{Width: width, Str: interned}
			entry.Truncated = append(entry.Truncated, *slot)
			return interned
		}
		return truncated // transient: valid only until the cache's next call
	}

	newEntry, ok := c.arena.AllocEntry()
	if !ok {
		return original // arena exhausted: bypass the cache entirely
	}
	interned := c.arena.Intern(original)
	newEntry.Hash = h
	newEntry.Original = interned
	newEntry.DisplayWidth = encoding.DisplayWidth(original, c.enc)

	truncated := encoding.Truncate(original, width, c.enc)
	if slot, ok := c.arena.AllocTruncatedSlot(); ok {
		*slot = arena.TruncatedVersion{Width: width, Str: truncated}
		newEntry.Truncated = append(newEntry.Truncated, *slot)
	} else {
		// Pool full even for the first version; still register the entry so
		// future distinct widths are attempted, but return a transient value.
		newEntry.Next = c.buckets[bucket]
		c.buckets[bucket] = newEntry
		return truncated
	}
	newEntry.Next = c.buckets[bucket]
	c.buckets[bucket] = newEntry
	return truncated
}

// atEntryLimit reports whether an entry already holding n cached widths
// has hit the configured per-entry bound.
func (c *Cache) atEntryLimit(n int) bool {
	return c.maxPerEntry > 0 && n >= c.maxPerEntry
}

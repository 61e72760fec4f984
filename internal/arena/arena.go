// Package arena implements bump allocators backing the display cache and
// string intern table. Four fixed-capacity pools — cache entries,
// strings, truncated-version slots, and intern entries — are released en
// bloc when the viewer tears down; there is no per-entry free. Individual
// allocators degrade gracefully (ok=false) instead of panicking when
// their pool is exhausted.
package arena

// Config bounds each of the four pools. Values come from internal/config.
type Config struct {
	CacheEntryPoolSize   int
	StringPoolBytes      int
	TruncatedVersionPool int
	InternTableSize      int
}

// CacheEntry is the arena-owned record backing one display-cache bucket
// chain link (see internal/displaycache).
type CacheEntry struct {
	Hash            uint64
	Original        string
	DisplayWidth    int
	Truncated       []TruncatedVersion
	truncatedCursor int
	Next            *CacheEntry
}

// TruncatedVersion is one (width, string) pair cached on a CacheEntry.
type TruncatedVersion struct {
	Width int
	Str   string
}

// internEntry is one chained bucket link of the string intern table.
type internEntry struct {
	str  string
	next *internEntry
}

// Arena owns the four bump pools for one viewer session.
type Arena struct {
	cfg Config

	cacheEntries    []CacheEntry
	cacheEntryUsed  int
	truncVersions   []TruncatedVersion
	truncVersionUse int

	stringPool []byte
	stringUsed int

	internEntries    []internEntry
	internEntriesUse int
	internBuckets    []*internEntry
}

// New creates an Arena with the given pool capacities.
func New(cfg Config) *Arena {
	n := cfg.InternTableSize
	if n <= 0 {
		n = 1
	}
	return &Arena{
		cfg:           cfg,
		cacheEntries:  make([]CacheEntry, cfg.CacheEntryPoolSize),
		truncVersions: make([]TruncatedVersion, cfg.TruncatedVersionPool),
		stringPool:    make([]byte, cfg.StringPoolBytes),
		internEntries: make([]internEntry, n),
		internBuckets: make([]*internEntry, n),
	}
}

// AllocEntry returns a fresh zero-valued *CacheEntry, or ok=false if the
// cache-entry pool is exhausted.
func (a *Arena) AllocEntry() (*CacheEntry, bool) {
	if a.cacheEntryUsed >= len(a.cacheEntries) {
		return nil, false
	}
	e := &a.cacheEntries[a.cacheEntryUsed]
	a.cacheEntryUsed++
	*e = CacheEntry{}
	return e, true
}

// AllocTruncatedSlot reserves one TruncatedVersion slot and returns a
// pointer to it, or ok=false if the pool is exhausted.
func (a *Arena) AllocTruncatedSlot() (*TruncatedVersion, bool) {
	if a.truncVersionUse >= len(a.truncVersions) {
		return nil, false
	}
	v := &a.truncVersions[a.truncVersionUse]
	a.truncVersionUse++
	return v, true
}

// StrdupIntoPool copies s into the arena's string pool and returns those
// pool bytes converted to a new string, or ok=false (caller should fall back to keeping the original
// string) if the pool doesn't have room.
func (a *Arena) StrdupIntoPool(s string) (string, bool) {
	n := len(s)
	if a.stringUsed+n > len(a.stringPool) {
		return "", false
	}
	start := a.stringUsed
	copy(a.stringPool[start:start+n], s)
	a.stringUsed += n
	return string(a.stringPool[start : start+n]), true
}

// Intern deduplicates s: equal-content strings are guaranteed to return
// the same Go string header (backed by the same bytes) for the
// lifetime of the Arena, so callers can compare interned strings by
// pointer identity, not just content.
// When the intern or string pool is exhausted, Intern degrades to
// returning s unchanged — repeated calls with exhausted pools will not be
// deduplicated, which is an accepted degradation, not a correctness bug.
func (a *Arena) Intern(s string) string {
	h := fnv1a(s)
	bucket := int(h % uint64(len(a.internBuckets)))
	for e := a.internBuckets[bucket]; e != nil; e = e.next {
		if e.str == s {
			return e.str
		}
	}
	if a.internEntriesUse >= len(a.internEntries) {
		return s
	}
	copied, ok := a.StrdupIntoPool(s)
	if !ok {
		return s
	}
	e := &a.internEntries[a.internEntriesUse]
	a.internEntriesUse++
	e.str = copied
	e.next = a.internBuckets[bucket]
	a.internBuckets[bucket] = e
	return copied
}

// fnv1a is the 64-bit FNV-1a hash used by both the intern table and the
// display cache bucket index, kept small and unexported (see DESIGN.md
// "stdlib justifications").
func fnv1a(s string) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}

// Hash64 exposes fnv1a for callers outside the package (the display cache
// needs the same hash family to compute its own bucket index).
func Hash64(s string) uint64 { return fnv1a(s) }

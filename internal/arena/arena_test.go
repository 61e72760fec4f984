package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func testConfig() Config {
	return Config{
		CacheEntryPoolSize:   4,
		StringPoolBytes:      64,
		TruncatedVersionPool: 4,
		InternTableSize:      8,
	}
}

func TestInternPointerEquality(t *testing.T) {
	a := New(testConfig())
	s1 := a.Intern("hello")
	s2 := a.Intern("hello")
	assert.Equal(t, s1, s2)
	assert.True(t, unsafe.StringData(s1) == unsafe.StringData(s2))
	// Interning more content afterwards must not change the values already
	// returned.
	a.Intern("world")
	assert.Equal(t, "hello", s1)
	assert.Equal(t, "hello", s2)
}

func TestInternDistinctStrings(t *testing.T) {
	a := New(testConfig())
	assert.NotEqual(t, a.Intern("abc"), a.Intern("xyz"))
}

func TestAllocEntryExhaustion(t *testing.T) {
	a := New(testConfig())
	for i := 0; i < 4; i++ {
		_, ok := a.AllocEntry()
		assert.True(t, ok)
	}
	_, ok := a.AllocEntry()
	assert.False(t, ok)
}

func TestStrdupIntoPoolExhaustion(t *testing.T) {
	a := New(Config{StringPoolBytes: 8, InternTableSize: 1})
	s, ok := a.StrdupIntoPool("01234567")
	assert.True(t, ok)
	assert.Equal(t, "01234567", s)
	_, ok = a.StrdupIntoPool("x")
	assert.False(t, ok)
}

func TestInternDegradesOnPoolExhaustion(t *testing.T) {
	a := New(Config{StringPoolBytes: 4, InternTableSize: 4})
	got := a.Intern("toolong")
	assert.Equal(t, "toolong", got)
}

func TestHash64Deterministic(t *testing.T) {
	assert.Equal(t, Hash64("abc"), Hash64("abc"))
	assert.NotEqual(t, Hash64("abc"), Hash64("abd"))
}

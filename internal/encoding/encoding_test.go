package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/dsview/internal/config"
)

func TestDetectForced(t *testing.T) {
	cfg := config.Default()
	cfg.ForceEncoding = config.EncodingLatin1
	res := Detect([]byte("irrelevant"), cfg)
	assert.Equal(t, Latin1, res.Encoding)
	assert.Equal(t, 1.0, res.Confidence)
}

func TestDetectAutoDetectDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.AutoDetectEncoding = false
	res := Detect([]byte{0xFF, 0xFE}, cfg)
	assert.Equal(t, UTF8, res.Encoding)
	assert.True(t, res.Assumed)
}

func TestDetectBOM(t *testing.T) {
	cfg := config.Default()
	res := Detect([]byte{0xEF, 0xBB, 0xBF, 'a'}, cfg)
	assert.Equal(t, UTF8BOM, res.Encoding)
	assert.Equal(t, 3, res.BOMSize)
}

func TestDetectASCII(t *testing.T) {
	cfg := config.Default()
	res := Detect([]byte("plain ascii text"), cfg)
	assert.Equal(t, ASCII, res.Encoding)
}

func TestDetectUTF8Multibyte(t *testing.T) {
	cfg := config.Default()
	// "héllo wörld" repeated to get a confident sample.
	sample := []byte("héllo wörld héllo wörld héllo wörld")
	res := Detect(sample, cfg)
	assert.Equal(t, UTF8, res.Encoding)
}

func TestDetectLatin1HighBytes(t *testing.T) {
	cfg := config.Default()
	// 0xE9 is Latin-1 'é', not a valid UTF-8 lead/continuation pairing here.
	sample := []byte{0xE9, 0xE8, 0xE0, 0xE9, 0xE8, 0xE0}
	res := Detect(sample, cfg)
	assert.Equal(t, Latin1, res.Encoding)
}

func TestDisplayWidthASCII(t *testing.T) {
	assert.Equal(t, 5, DisplayWidth("hello", ASCII))
}

func TestDisplayWidthEastAsianWide(t *testing.T) {
	// U+4E2D (中) is east-asian-wide: width 2.
	assert.Equal(t, 2, DisplayWidth("中", UTF8))
}

func TestTruncateASCII(t *testing.T) {
	assert.Equal(t, "hel", Truncate("hello", 3, ASCII))
}

func TestTruncateNoOpWhenFits(t *testing.T) {
	assert.Equal(t, "hi", Truncate("hi", 10, ASCII))
}

func TestTruncateUTF8RespectsRuneBoundaries(t *testing.T) {
	s := "中中中"
	got := Truncate(s, 4, UTF8)
	assert.Equal(t, 4, DisplayWidth(got, UTF8))
	assert.Equal(t, "中中", got)
}

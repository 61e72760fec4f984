// Package encoding detects and measures the byte encoding of a DSV
// file's sampled bytes. The heuristic cascade runs force flag, disabled
// auto-detect, BOM sniff, then a multibyte/high-byte confidence score.
// Width and truncation for UTF-8 text use golang.org/x/text/width for
// east-asian-width classification and golang.org/x/text/encoding/charmap
// for the Windows-1252 printable-byte table.
package encoding

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/width"

	"github.com/grailbio/dsview/internal/config"
)

// Encoding is the detected byte encoding of a file.
type Encoding int

const (
	Unknown Encoding = iota
	ASCII
	UTF8
	UTF8BOM
	Latin1
	Win1252
)

func (e Encoding) String() string {
	switch e {
	case ASCII:
		return "ASCII"
	case UTF8:
		return "UTF-8"
	case UTF8BOM:
		return "UTF-8-BOM"
	case Latin1:
		return "Latin-1"
	case Win1252:
		return "Windows-1252"
	default:
		return "Unknown"
	}
}

// Result is the outcome of Detect.
type Result struct {
	Encoding   Encoding
	Confidence float64
	BOMSize    int
	Assumed    bool
}

// Detect runs the encoding-detection cascade described above.
func Detect(sample []byte, cfg config.Config) Result {
	if enc, ok := forcedEncoding(cfg.ForceEncoding); ok {
		return Result{Encoding: enc, Confidence: 1.0}
	}
	if !cfg.AutoDetectEncoding {
		return Result{Encoding: UTF8, Confidence: 1.0, Assumed: true}
	}
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return Result{Encoding: UTF8BOM, Confidence: 1.0, BOMSize: 3}
	}

	allLow := true
	for _, b := range sample {
		if b >= 0x80 {
			allLow = false
			break
		}
	}
	if allLow {
		return Result{Encoding: ASCII, Confidence: 1.0}
	}

	utf8Conf := utf8Confidence(sample)
	latin1Conf := latin1Confidence(sample)

	switch {
	case utf8Conf > 0.8:
		return Result{Encoding: UTF8, Confidence: utf8Conf}
	case latin1Conf > 0.7:
		return Result{Encoding: Latin1, Confidence: latin1Conf}
	default:
		return Result{Encoding: Latin1, Confidence: 0.5, Assumed: true}
	}
}

func forcedEncoding(name string) (Encoding, bool) {
	switch name {
	case config.EncodingASCII:
		return ASCII, true
	case config.EncodingUTF8:
		return UTF8, true
	case config.EncodingUTF8BOM:
		return UTF8BOM, true
	case config.EncodingLatin1:
		return Latin1, true
	case config.EncodingWin1252:
		return Win1252, true
	default:
		return Unknown, false
	}
}

// utf8Confidence is validUtf8MultibyteSequences / totalMultibyteStarts, as
// specified: a lead byte followed by the expected run of 10xxxxxx
// continuation bytes within the sample counts as valid.
func utf8Confidence(sample []byte) float64 {
	starts, valid := 0, 0
	i := 0
	for i < len(sample) {
		b := sample[i]
		if b < 0x80 {
			i++
			continue
		}
		n := leadByteLen(b)
		if n == 0 {
			i++
			continue
		}
		starts++
		if i+n <= len(sample) && allContinuations(sample[i+1:i+n]) {
			valid++
		}
		i += n
	}
	if starts == 0 {
		return 0
	}
	return float64(valid) / float64(starts)
}

// leadByteLen returns the expected total sequence length for a UTF-8 lead
// byte, or 0 if b isn't a valid lead byte.
func leadByteLen(b byte) int {
	switch {
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

func allContinuations(bs []byte) bool {
	for _, b := range bs {
		if b&0xC0 != 0x80 {
			return false
		}
	}
	return true
}

// latin1Confidence is printableHighBytes / totalHighBytes, where the
// printable set is [0xA0,0xFF] union the Windows-1252 printable subset of
// [0x80,0x9F] (driven by charmap.Windows1252, which maps those bytes to
// real runes only where cp1252 assigns them one).
func latin1Confidence(sample []byte) float64 {
	total, printable := 0, 0
	for _, b := range sample {
		if b < 0x80 {
			continue
		}
		total++
		if b >= 0xA0 {
			printable++
			continue
		}
		if isWin1252Printable(b) {
			printable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(printable) / float64(total)
}

func isWin1252Printable(b byte) bool {
	r := charmap.Windows1252.DecodeByte(b)
	return r != utf8.RuneError
}

// DisplayWidth returns the rendering width of s when decoded under enc.
// ASCII/Latin-1/Win-1252 are byte-counted; UTF-8 decodes runes and sums
// east-asian-width (control runes count as width 1).
func DisplayWidth(s string, enc Encoding) int {
	if enc != UTF8 && enc != UTF8BOM {
		return len(s)
	}
	total := 0
	for _, r := range s {
		total += runeWidth(r)
	}
	return total
}

func runeWidth(r rune) int {
	if r < 0x20 || r == 0x7F {
		return 1
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// Truncate returns a prefix of s whose DisplayWidth does not exceed target,
// per the detected encoding's truncation rule.
func Truncate(s string, target int, enc Encoding) string {
	if DisplayWidth(s, enc) <= target {
		return s
	}
	if enc != UTF8 && enc != UTF8BOM {
		if target < 0 {
			target = 0
		}
		if target > len(s) {
			target = len(s)
		}
		return s[:target]
	}
	acc := 0
	for i, r := range s {
		w := runeWidth(r)
		if acc+w > target {
			return s[:i]
		}
		acc += w
	}
	return s
}

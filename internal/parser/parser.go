// Package parser implements an RFC-4180-style field splitter and
// renderer. SplitLine walks a line byte-by-byte looking for
// delimiter-separated tokens, honoring quoting, much like a BED-line
// tokenizer walks whitespace-delimited fields; here the delimiter is
// configurable and quoting is honored.
package parser

import "strings"

// FieldDesc borrows a field's bytes from the owning buffer (the mmap'd
// file or an in-memory table's backing bytes) instead of copying.
// NeedsUnescape is true when the field contains a doubled quote ("")
// that Render must fold.
type FieldDesc struct {
	Data          []byte
	NeedsUnescape bool
}

// String renders fd with no unescaping concerns applied (used by callers
// that already know the field is a raw, already-rendered string, such as
// in-memory table cells).
func (fd FieldDesc) String() string { return string(fd.Data) }

// Empty reports whether fd designates an absent field (used for ragged
// rows in the file DataSource).
func (fd FieldDesc) Empty() bool { return len(fd.Data) == 0 }

// SplitLine splits one line (without its trailing newline) into FieldDesc
// records using delim, honoring RFC-4180 quoting. maxFields bounds runaway
// allocation on malformed input; fields beyond maxFields are dropped.
func SplitLine(line []byte, delim byte, maxFields int) []FieldDesc {
	fields := make([]FieldDesc, 0, 8)
	start := 0
	inQuotes := false
	needsUnescape := false

	i := 0
	for i < len(line) {
		b := line[i]
		switch {
		case b == '"':
			if !inQuotes {
				inQuotes = true
			} else if i+1 < len(line) && line[i+1] == '"' {
				needsUnescape = true
				i++ // consume both quote bytes of the doubled pair
			} else {
				inQuotes = false
			}
		case b == delim && !inQuotes:
			if len(fields) >= maxFields {
				return fields
			}
			fields = append(fields, FieldDesc{Data: line[start:i], NeedsUnescape: needsUnescape})
			start = i + 1
			needsUnescape = false
		}
		i++
	}
	if len(fields) < maxFields {
		fields = append(fields, FieldDesc{Data: line[start:], NeedsUnescape: needsUnescape})
	}
	return fields
}

// Render produces the logical field value for fd: a matching enclosing
// pair of `"` is stripped, `""` folds to `"`, and an embedded `\n` (legal
// only inside a quoted field) maps to a space for single-line display.
// Fields without NeedsUnescape and without surrounding quotes are returned
// unchanged, as a string copy of their bytes.
func Render(fd FieldDesc) string {
	data := fd.Data
	quoted := len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"'
	if quoted {
		data = data[1 : len(data)-1]
	}
	if !fd.NeedsUnescape && !quoted {
		return string(data)
	}
	s := string(data)
	if fd.NeedsUnescape {
		s = strings.ReplaceAll(s, `""`, `"`)
	}
	if quoted {
		s = strings.ReplaceAll(s, "\n", " ")
	}
	return s
}

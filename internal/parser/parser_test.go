package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLineSimple(t *testing.T) {
	fds := SplitLine([]byte("a,b,c"), ',', 16)
	assert.Len(t, fds, 3)
	assert.Equal(t, "a", Render(fds[0]))
	assert.Equal(t, "b", Render(fds[1]))
	assert.Equal(t, "c", Render(fds[2]))
}

func TestSplitLineEmptyFields(t *testing.T) {
	fds := SplitLine([]byte(",,"), ',', 16)
	assert.Len(t, fds, 3)
	for _, fd := range fds {
		assert.True(t, fd.Empty())
	}
}

func TestSplitLineQuotedWithEscapedQuote(t *testing.T) {
	// he said ""hi"" -> `he said "hi"` once rendered.
	fds := SplitLine([]byte(`"he said ""hi"""`), ',', 16)
	assert.Len(t, fds, 1)
	assert.True(t, fds[0].NeedsUnescape)
	assert.Equal(t, `he said "hi"`, Render(fds[0]))
}

func TestSplitLineQuotedFieldHidesDelimiter(t *testing.T) {
	fds := SplitLine([]byte(`a,"b,c",d`), ',', 16)
	assert.Len(t, fds, 3)
	assert.Equal(t, "a", Render(fds[0]))
	assert.Equal(t, "b,c", Render(fds[1]))
	assert.Equal(t, "d", Render(fds[2]))
}

func TestSplitLineMaxFieldsBounds(t *testing.T) {
	fds := SplitLine([]byte("a,b,c,d,e"), ',', 2)
	assert.Len(t, fds, 2)
}

func TestRenderUnquotedUnchanged(t *testing.T) {
	fd := FieldDesc{Data: []byte("plain")}
	assert.Equal(t, "plain", Render(fd))
}

func TestRenderQuotedNewlineFoldsToSpace(t *testing.T) {
	fd := FieldDesc{Data: []byte("\"line1\nline2\"")}
	assert.Equal(t, "line1 line2", Render(fd))
}

func TestStringAndEmpty(t *testing.T) {
	fd := FieldDesc{Data: []byte("x")}
	assert.Equal(t, "x", fd.String())
	assert.False(t, fd.Empty())
	assert.True(t, FieldDesc{}.Empty())
}

package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}

func TestParseIntoOverridesDefaults(t *testing.T) {
	cfg := Default()
	src := strings.NewReader("# a comment\nmax_cols = 10\nmax_column_width = 20\n\nforce_encoding = latin1\n")
	assert.NoError(t, parseInto(&cfg, src, "test"))
	assert.Equal(t, 10, cfg.MaxCols)
	assert.Equal(t, 20, cfg.MaxColumnWidth)
	assert.Equal(t, EncodingLatin1, cfg.ForceEncoding)
}

func TestParseIntoUnknownKeyKeepsDefaults(t *testing.T) {
	cfg := Default()
	want := cfg
	src := strings.NewReader("not_a_real_key = 5\n")
	assert.NoError(t, parseInto(&cfg, src, "test"))
	assert.Equal(t, want, cfg)
}

func TestParseIntoInvalidValueKeepsDefault(t *testing.T) {
	cfg := Default()
	want := cfg.MaxCols
	src := strings.NewReader("max_cols = not_a_number\n")
	assert.NoError(t, parseInto(&cfg, src, "test"))
	assert.Equal(t, want, cfg.MaxCols)
}

func TestParseIntoNonPositiveKeepsDefault(t *testing.T) {
	cfg := Default()
	want := cfg.MaxCols
	src := strings.NewReader("max_cols = 0\n")
	assert.NoError(t, parseInto(&cfg, src, "test"))
	assert.Equal(t, want, cfg.MaxCols)
}

func TestParseIntoBoolField(t *testing.T) {
	cfg := Default()
	src := strings.NewReader("auto_detect_encoding = 0\n")
	assert.NoError(t, parseInto(&cfg, src, "test"))
	assert.False(t, cfg.AutoDetectEncoding)
}

func TestValidateRejectsInvertedWidths(t *testing.T) {
	cfg := Default()
	cfg.MinColumnWidth = 100
	cfg.MaxColumnWidth = 10
	assert.Error(t, Validate(cfg))
}

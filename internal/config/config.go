// Package config loads the viewer's configuration file: a line-oriented
// `key = value` format with `#` comments. Unknown keys warn and are
// ignored; invalid values warn and keep their default.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/grailbio/dsview/internal/dsvlog"
)

// Encoding names accepted by force_encoding.
const (
	EncodingASCII    = "ascii"
	EncodingUTF8     = "utf8"
	EncodingUTF8BOM  = "utf8bom"
	EncodingLatin1   = "latin1"
	EncodingWin1252  = "win1252"
	EncodingNone     = "" // no override
)

// Config holds every tunable the viewer exposes. Field names map 1:1 to
// config-file keys (see applyKey).
type Config struct {
	MaxFieldLen      int
	MaxCols          int
	MaxColumnWidth   int
	MinColumnWidth   int
	BufferPoolSize   int

	CacheSize               int
	CacheStringPoolSize     int
	InternTableSize         int
	MaxTruncatedVersions    int
	CacheThresholdLines     int
	CacheThresholdCols      int

	BufferSize                    int
	DelimiterDetectionSampleSize  int
	LineEstimationSampleSize      int
	DefaultCharsPerLine           int

	ColumnAnalysisSampleLines int

	EncodingDetectionSampleSize int
	AutoDetectEncoding          bool
	ForceEncoding               string
}

// Default returns the built-in defaults, matching config_init_defaults in
// the original src/config.c (constants recovered from include/cache.h,
// include/buffer_pool.h, and src/parser.c's DELIMITER_DETECTION_SAMPLE_SIZE
// et al.).
func Default() Config {
	return Config{
		MaxFieldLen:    1024,
		MaxCols:        256,
		MaxColumnWidth: 50,
		MinColumnWidth: 3,
		BufferPoolSize: 5,

		CacheSize:            16384,
		CacheStringPoolSize:  4 * 1024 * 1024,
		InternTableSize:      4096,
		MaxTruncatedVersions: 8,
		CacheThresholdLines:  10000,
		CacheThresholdCols:   50,

		BufferSize:                   65536,
		DelimiterDetectionSampleSize: 1024,
		LineEstimationSampleSize:     65536,
		DefaultCharsPerLine:          80,

		ColumnAnalysisSampleLines: 1000,

		EncodingDetectionSampleSize: 8192,
		AutoDetectEncoding:          true,
		ForceEncoding:               EncodingNone,
	}
}

// Load reads a config file on top of Default(), warning (via dsvlog) on
// unknown keys and invalid values rather than failing.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	if err := parseInto(&cfg, f, path); err != nil {
		return cfg, err
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseInto(cfg *Config, r io.Reader, path string) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			dsvlog.Warnf("config: invalid format on line %d of %s", lineNum, path)
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		applyKey(cfg, key, value, lineNum, path)
	}
	return scanner.Err()
}

func applyKey(cfg *Config, key, value string, lineNum int, path string) {
	intField := func(dst *int) {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			dsvlog.Warnf("config: invalid value %q for %s on line %d of %s, keeping default", value, key, lineNum, path)
			return
		}
		*dst = n
	}
	boolField := func(dst *bool) {
		n, err := strconv.Atoi(value)
		if err != nil || (n != 0 && n != 1) {
			dsvlog.Warnf("config: invalid value %q for %s on line %d of %s, keeping default", value, key, lineNum, path)
			return
		}
		*dst = n == 1
	}

	switch key {
	case "max_field_len":
		intField(&cfg.MaxFieldLen)
	case "max_cols":
		intField(&cfg.MaxCols)
	case "max_column_width":
		intField(&cfg.MaxColumnWidth)
	case "min_column_width":
		intField(&cfg.MinColumnWidth)
	case "buffer_pool_size":
		intField(&cfg.BufferPoolSize)
	case "cache_size":
		intField(&cfg.CacheSize)
	case "cache_string_pool_size":
		intField(&cfg.CacheStringPoolSize)
	case "intern_table_size":
		intField(&cfg.InternTableSize)
	case "max_truncated_versions":
		intField(&cfg.MaxTruncatedVersions)
	case "cache_threshold_lines":
		intField(&cfg.CacheThresholdLines)
	case "cache_threshold_cols":
		intField(&cfg.CacheThresholdCols)
	case "buffer_size":
		intField(&cfg.BufferSize)
	case "delimiter_detection_sample_size":
		intField(&cfg.DelimiterDetectionSampleSize)
	case "line_estimation_sample_size":
		intField(&cfg.LineEstimationSampleSize)
	case "default_chars_per_line":
		intField(&cfg.DefaultCharsPerLine)
	case "column_analysis_sample_lines":
		intField(&cfg.ColumnAnalysisSampleLines)
	case "encoding_detection_sample_size":
		intField(&cfg.EncodingDetectionSampleSize)
	case "auto_detect_encoding":
		boolField(&cfg.AutoDetectEncoding)
	case "force_encoding":
		cfg.ForceEncoding = value
	default:
		dsvlog.Warnf("config: unknown key %q on line %d of %s, ignoring", key, lineNum, path)
	}
}

// Validate checks the cross-field invariant min_column_width <=
// max_column_width. All individual numeric fields are already
// guaranteed positive by applyKey/Default.
func Validate(cfg Config) error {
	if cfg.MinColumnWidth > cfg.MaxColumnWidth {
		return fmt.Errorf("config: min_column_width (%d) > max_column_width (%d)", cfg.MinColumnWidth, cfg.MaxColumnWidth)
	}
	return nil
}

// Package config handles application configuration and setup
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates the logger shared by all components, debug output
// takes precedence over quiet mode.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case debug:
		cfg.Level = log.DebugLevel
	case quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// ParseTileSize parses a tile size given as WxH. An empty string returns a
// zero size which selects the whole image.
func ParseTileSize(s string) (int, int, error) {
	if s == "" {
		return 0, 0, nil
	}

	width, height, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid tile size '%s', expected WxH", s)
	}
	w, err := strconv.Atoi(width)
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid tile width '%s'", width)
	}
	h, err := strconv.Atoi(height)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid tile height '%s'", height)
	}
	return w, h, nil
}

// ParseColor parses a color given as RRGGBB hex string with an optional #
// prefix.
func ParseColor(s string) (uint8, uint8, uint8, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color '%s', expected RRGGBB", s)
	}
	value, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parsing color '%s': %w", s, err)
	}
	return uint8(value >> 16), uint8(value >> 8), uint8(value), nil
}

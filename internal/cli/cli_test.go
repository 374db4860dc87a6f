package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/gbatactics/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = args
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
		err  string
	}{
		{
			name: "defaults",
			args: []string{"prog"},
			want: options.Program{Flags: options.Flags{Frontend: options.FrontendWindow, Frames: 60, Scale: 3}},
		},
		{
			name: "headless with screenshot",
			args: []string{"prog", "-frontend", "Headless", "-frames", "10", "-screenshot", "out.png", "-level", "l.tmx"},
			want: options.Program{
				Parameters: options.Parameters{Level: "l.tmx", Screenshot: "out.png"},
				Flags:      options.Flags{Frontend: options.FrontendHeadless, Frames: 10, Scale: 3},
			},
		},
		{
			name: "unknown frontend",
			args: []string{"prog", "-frontend", "sdl"},
			err:  "unsupported frontend: sdl",
		},
		{
			name: "invalid scale",
			args: []string{"prog", "-scale", "0"},
			err:  "invalid scale 0",
		},
		{
			name: "invalid headless frames",
			args: []string{"prog", "-frontend", "headless", "-frames", "0"},
			err:  "invalid frame count 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			got, err := ParseFlags()
			if tt.err != "" {
				assert.ErrorContains(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsPositionalArgument(t *testing.T) {
	setArgs(t, "prog", "level.tmx")

	_, err := ParseFlags()
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestParseConverterFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		want  options.Converter
		err   string
		usage bool
	}{
		{
			name: "input file",
			args: []string{"prog", "-o", "level.json", "-verify", "level.tmx"},
			want: options.Converter{
				ConverterParameters: options.ConverterParameters{Input: "level.tmx", Output: "level.json"},
				ConverterFlags:      options.ConverterFlags{Format: options.FormatJSON, Verify: true},
			},
		},
		{
			name: "batch",
			args: []string{"prog", "-batch", "*.tmx", "-format", "GO"},
			want: options.Converter{
				ConverterParameters: options.ConverterParameters{Batch: "*.tmx"},
				ConverterFlags:      options.ConverterFlags{Format: options.FormatGo},
			},
		},
		{
			name:  "missing input",
			args:  []string{"prog"},
			usage: true,
		},
		{
			name:  "flag after input",
			args:  []string{"prog", "level.tmx", "-q"},
			usage: true,
		},
		{
			name: "unknown format",
			args: []string{"prog", "-format", "yaml", "level.tmx"},
			err:  "unsupported format: yaml",
		},
		{
			name: "verify go output",
			args: []string{"prog", "-format", "go", "-verify", "level.tmx"},
			err:  "verification is only supported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			got, err := ParseConverterFlags()
			switch {
			case tt.usage:
				var usageErr *UsageError
				assert.True(t, errors.As(err, &usageErr))
			case tt.err != "":
				assert.ErrorContains(t, err, tt.err)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseGraphicsFlags(t *testing.T) {
	setArgs(t, "prog", "-tile", "16x16", "unit.png")

	got, err := ParseGraphicsFlags()
	assert.NoError(t, err)
	assert.Equal(t, options.Graphics{Input: "unit.png", TileSize: "16x16", Transparent: "FF00FF"}, got)

	setArgs(t, "prog")
	_, err = ParseGraphicsFlags()
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}

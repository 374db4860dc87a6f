// Package writer implements the level converter output file writing.
package writer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/retroenv/gbatactics/internal/level"
	"github.com/retroenv/gbatactics/internal/options"
)

const (
	packageName = "levels"
	importPath  = "github.com/retroenv/gbatactics/internal/level"
)

// Writer writes a converted level in one of the output formats.
type Writer struct {
	data    *level.Data
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	Format       string // options.FormatJSON or options.FormatGo
	VariableName string // name of the generated Go variable
}

// New creates a new writer.
func New(data *level.Data, writer io.Writer, options Options) *Writer {
	return &Writer{
		data:    data,
		options: options,
		writer:  writer,
	}
}

// Write writes the level in the configured format.
func (w Writer) Write() error {
	switch w.options.Format {
	case options.FormatJSON, "":
		if err := level.WriteJSON(w.writer, w.data); err != nil {
			return fmt.Errorf("writing json: %w", err)
		}
		return nil

	case options.FormatGo:
		return w.writeGo()

	default:
		return fmt.Errorf("unsupported output format '%s'", w.options.Format)
	}
}

func (w Writer) writeGo() error {
	name := w.options.VariableName
	if name == "" {
		name = "Level"
	}

	var sb strings.Builder
	sb.WriteString("// Code generated by levelconv. DO NOT EDIT.\n\n")
	fmt.Fprintf(&sb, "package %s\n\n", packageName)
	fmt.Fprintf(&sb, "import \"%s\"\n\n", importPath)
	fmt.Fprintf(&sb, "// %s is a converted level.\n", name)
	fmt.Fprintf(&sb, "var %s = %s", name, level.Format(w.data))

	if _, err := io.WriteString(w.writer, sb.String()); err != nil {
		return fmt.Errorf("writing go source: %w", err)
	}
	return nil
}

// VariableName returns an exported Go identifier for the file name,
// "debug-level.tmx" becomes "DebugLevel".
func VariableName(fileName string) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var sb strings.Builder
	upper := true
	for _, r := range base {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if sb.Len() == 0 && unicode.IsDigit(r) {
			sb.WriteString("Level")
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}

	if sb.Len() == 0 {
		return "Level"
	}
	return sb.String()
}

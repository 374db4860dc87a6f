// Package detector handles level file format detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// Format is a level file format.
type Format string

// Supported level file formats.
const (
	Unknown Format = ""
	TMX     Format = "tmx"  // Tiled map document
	JSON    Format = "json" // converted level asset
)

// Detector handles level format detection from file extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the level file format from the file name extension.
func (d *Detector) Detect(fileName string) Format {
	format := detectFromFile(fileName)
	d.logger.Debug("Detected level format",
		log.String("format", string(format)),
		log.String("file", fileName))
	return format
}

func detectFromFile(fileName string) Format {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".tmx", ".xml":
		return TMX
	case ".json":
		return JSON
	default:
		return Unknown
	}
}

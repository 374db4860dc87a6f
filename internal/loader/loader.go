// Package loader handles level file loading operations.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/gbatactics/internal/detector"
	"github.com/retroenv/gbatactics/internal/level"
	"github.com/retroenv/retrogolib/log"
)

// Loader handles loading level files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new level loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load loads a level file of the given format. Tiled map documents are
// converted to level data, converted levels are read as is.
func (l *Loader) Load(fileName string, format detector.Format) (*level.Data, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", fileName, err)
	}
	defer func() { _ = file.Close() }()

	switch format {
	case detector.TMX:
		doc, err := level.ParseTMX(file, filepath.Dir(fileName))
		if err != nil {
			return nil, fmt.Errorf("parsing map %s: %w", fileName, err)
		}
		data, err := level.Convert(l.logger, doc)
		if err != nil {
			return nil, fmt.Errorf("converting map %s: %w", fileName, err)
		}
		return data, nil

	case detector.JSON:
		data, err := level.ReadJSON(file)
		if err != nil {
			return nil, fmt.Errorf("reading level %s: %w", fileName, err)
		}
		return data, nil

	default:
		return nil, fmt.Errorf("unsupported level format of file %s", fileName)
	}
}

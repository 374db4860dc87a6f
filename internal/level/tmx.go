package level

import (
	"fmt"
	"io"

	"github.com/lafriks/go-tiled"
)

// ParseTMX parses a TMX map document. External tilesets are resolved
// relative to baseDir.
func ParseTMX(r io.Reader, baseDir string) (*tiled.Map, error) {
	m, err := tiled.LoadReader(baseDir, r)
	if err != nil {
		return nil, fmt.Errorf("parsing tmx document: %w", err)
	}
	return m, nil
}

// boolProperty returns the value of a boolean custom property, missing or
// untyped properties read as false.
func boolProperty(properties tiled.Properties, name string) bool {
	for _, prop := range properties {
		if prop.Name == name && prop.Type == "bool" {
			return prop.Value == "true"
		}
	}
	return false
}

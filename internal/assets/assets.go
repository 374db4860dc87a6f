// Package assets contains the embedded game resources.
package assets

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/retroenv/gbatactics/internal/gfx"
	"github.com/retroenv/gbatactics/internal/level"
	"github.com/retroenv/retrogolib/log"
)

//go:embed data
var files embed.FS

// Resources are the converted textures used by the game.
type Resources struct {
	Cursor  *gfx.Image
	Unit    *gfx.Image
	Tileset *gfx.Image
}

// image conversion settings per resource, 16x16 tiles for all grid sized
// textures and the whole image for the cursor corner.
var textures = []struct {
	file   string
	config gfx.Config
	target func(*Resources) **gfx.Image
}{
	{"data/cursor.png", gfx.NewConfig(), func(r *Resources) **gfx.Image { return &r.Cursor }},
	{"data/unit.png", gfx.NewConfig().WithTileSize(16, 16), func(r *Resources) **gfx.Image { return &r.Unit }},
	{"data/tiles.png", gfx.NewConfig().WithTileSize(16, 16), func(r *Resources) **gfx.Image { return &r.Tileset }},
}

// Load converts all embedded textures.
func Load() (*Resources, error) {
	res := &Resources{}
	for _, texture := range textures {
		data, err := files.ReadFile(texture.file)
		if err != nil {
			return nil, fmt.Errorf("reading embedded file '%s': %w", texture.file, err)
		}
		img, err := texture.config.ConvertReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("converting '%s': %w", texture.file, err)
		}
		*texture.target(res) = img
	}
	return res, nil
}

// DebugLevel converts the embedded debug level.
func DebugLevel(logger *log.Logger) (*level.Data, error) {
	data, err := files.ReadFile("data/debug-level.tmx")
	if err != nil {
		return nil, fmt.Errorf("reading embedded level: %w", err)
	}
	doc, err := level.ParseTMX(bytes.NewReader(data), "")
	if err != nil {
		return nil, err
	}
	return level.Convert(logger, doc)
}

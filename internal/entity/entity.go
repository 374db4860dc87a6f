// Package entity contains the drawable game objects: the map cursor and the
// selectable units.
package entity

import (
	"fmt"

	"github.com/retroenv/gbatactics/internal/gfx"
	"github.com/retroenv/gbatactics/internal/hardware"
	"github.com/retroenv/gbatactics/internal/vector"
)

// TileSize is the size of one grid cell in pixels.
const TileSize = 16

// Reserver hands out shadow sprite table entries for the current frame.
type Reserver interface {
	ReserveEntry() (*hardware.ObjAttr, error)
}

// TextureLoader allocates object textures in video memory.
type TextureLoader interface {
	AllocateObjectTiles(data []uint32) (uint16, error)
	AllocateObjectPalette(colors []hardware.Color) (uint16, error)
}

// Selectable is a drawable object positioned on the grid that the cursor
// can select.
type Selectable interface {
	Position() vector.Vector2D[int16]
	SetPosition(pos vector.Vector2D[int16])
	Draw(table Reserver, selected bool) error
}

// texture references an object texture and its palette in video memory.
type texture struct {
	tileID  uint16
	palette uint16
}

func loadTexture(loader TextureLoader, img *gfx.Image) (texture, error) {
	tileID, err := loader.AllocateObjectTiles(img.Tiles)
	if err != nil {
		return texture{}, fmt.Errorf("allocating tiles: %w", err)
	}
	palette, err := loader.AllocateObjectPalette(img.Palette)
	if err != nil {
		return texture{}, fmt.Errorf("allocating palette: %w", err)
	}
	return texture{tileID: tileID, palette: palette}, nil
}

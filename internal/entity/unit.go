package entity

import (
	"fmt"

	"github.com/retroenv/gbatactics/internal/gfx"
	"github.com/retroenv/gbatactics/internal/hardware"
	"github.com/retroenv/gbatactics/internal/vector"
)

// Tile offsets of the unit texture variants, each variant being one 16x16
// sprite of four tiles.
const (
	animationTileOffset = 4
	selectedTileOffset  = 8
	animationBit        = 0x10
)

// Unit is a 16x16 sprite on the grid with a two frame idle animation.
type Unit struct {
	Name   string
	IsBoss bool
	Level  uint8

	position       vector.Vector2D[int16]
	texture        texture
	animationTimer uint8
}

// NewUnit allocates the unit texture and returns a unit at the origin.
func NewUnit(loader TextureLoader, img *gfx.Image) (*Unit, error) {
	tex, err := loadTexture(loader, img)
	if err != nil {
		return nil, fmt.Errorf("loading unit texture: %w", err)
	}
	return &Unit{texture: tex}, nil
}

// Position returns the grid position of the unit.
func (u *Unit) Position() vector.Vector2D[int16] {
	return u.position
}

// SetPosition sets the grid position of the unit.
func (u *Unit) SetPosition(pos vector.Vector2D[int16]) {
	u.position = pos
}

// Draw reserves one table entry for the unit and advances its animation.
func (u *Unit) Draw(table Reserver, selected bool) error {
	entry, err := table.ReserveEntry()
	if err != nil {
		return fmt.Errorf("reserving unit sprite: %w", err)
	}

	pixel := u.position.Mul(TileSize)
	*entry = hardware.ObjAttr{
		Attr0: hardware.ObjAttr0(0).
			WithY(uint16(pixel.Y)),
		Attr1: hardware.ObjAttr1(0).
			WithX(uint16(pixel.X)).
			WithSize(hardware.S16x16),
		Attr2: hardware.ObjAttr2(0).
			WithTileID(u.tileID(selected)).
			WithPalbank(u.texture.palette),
	}

	u.animationTimer++
	return nil
}

// tileID returns the texture variant for the selection state and the
// current animation frame.
func (u *Unit) tileID(selected bool) uint16 {
	id := u.texture.tileID
	if selected {
		id += selectedTileOffset
	}
	if u.animationTimer&animationBit != 0 {
		id += animationTileOffset
	}
	return id
}

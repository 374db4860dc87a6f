package entity

import (
	"fmt"

	"github.com/retroenv/gbatactics/internal/gfx"
	"github.com/retroenv/gbatactics/internal/hardware"
	"github.com/retroenv/gbatactics/internal/vector"
)

// CursorState selects how the cursor corners are drawn.
type CursorState int

const (
	// CursorIdle bounces the corners in and out.
	CursorIdle CursorState = iota
	// CursorOpen holds the corners at the maximum offset, used when hovering a unit.
	CursorOpen
	// CursorClosed holds the corners at a small offset, used while a unit is selected.
	CursorClosed
)

func (s CursorState) String() string {
	switch s {
	case CursorIdle:
		return "idle"
	case CursorOpen:
		return "open"
	case CursorClosed:
		return "closed"
	default:
		return "unknown"
	}
}

const (
	bouncePeriod = 75
	// openTimer resumes the bounce from the end of the maximum offset window.
	openTimer    = 40
	openOffset   = 4
	closedOffset = 2
	cursorSpeed  = 4
)

// bounceWindows maps the start tick of each window to the corner offset.
var bounceWindows = []struct {
	start  uint8
	offset int16
}{
	{0, 0},
	{5, 1},
	{10, 2},
	{15, 3},
	{20, 4},
	{40, 3},
	{45, 2},
	{50, 1},
	{55, 0},
}

// Cursor marks a grid cell with four corner sprites mirrored from one 8x8 tile.
type Cursor struct {
	position       vector.Vector2D[int16] // grid
	spritePosition vector.Vector2D[int16] // pixels, chasing position
	texture        texture
	bounceTimer    uint8
}

// NewCursor allocates the cursor texture and returns a cursor at the origin.
func NewCursor(loader TextureLoader, img *gfx.Image) (*Cursor, error) {
	tex, err := loadTexture(loader, img)
	if err != nil {
		return nil, fmt.Errorf("loading cursor texture: %w", err)
	}
	return &Cursor{texture: tex}, nil
}

// Position returns the grid position of the cursor.
func (c *Cursor) Position() vector.Vector2D[int16] {
	return c.position
}

// SetPosition sets the grid position of the cursor. The sprite glides to
// the new position over the next frames.
func (c *Cursor) SetPosition(pos vector.Vector2D[int16]) {
	c.position = pos
}

// Move moves the grid position of the cursor by the given delta.
func (c *Cursor) Move(delta vector.Vector2D[int16]) {
	c.position.AddAssign(delta)
}

// SpritePosition returns the smoothed pixel position of the cursor.
func (c *Cursor) SpritePosition() vector.Vector2D[int16] {
	return c.spritePosition
}

// Draw advances the cursor animation and reserves one table entry per corner.
func (c *Cursor) Draw(table Reserver, state CursorState) error {
	c.spritePosition.MoveTowards(c.position.Mul(TileSize), cursorSpeed)

	var offset int16
	switch state {
	case CursorOpen:
		c.bounceTimer = openTimer
		offset = openOffset
	case CursorClosed:
		c.bounceTimer = 0
		offset = closedOffset
	default:
		offset = c.bounce()
	}

	corners := [4]struct {
		x, y         int16
		hflip, vflip bool
	}{
		{-offset, -offset, false, false},
		{8 + offset, -offset, true, false},
		{-offset, 8 + offset, false, true},
		{8 + offset, 8 + offset, true, true},
	}

	for _, corner := range corners {
		entry, err := table.ReserveEntry()
		if err != nil {
			return fmt.Errorf("reserving cursor corner: %w", err)
		}
		*entry = c.corner(corner.x, corner.y, corner.hflip, corner.vflip)
	}
	return nil
}

func (c *Cursor) corner(xOffset, yOffset int16, hflip, vflip bool) hardware.ObjAttr {
	return hardware.ObjAttr{
		Attr0: hardware.ObjAttr0(0).
			WithY(uint16(c.spritePosition.Y + yOffset)),
		Attr1: hardware.ObjAttr1(0).
			WithX(uint16(c.spritePosition.X + xOffset)).
			WithHFlip(hflip).
			WithVFlip(vflip).
			WithSize(hardware.S8x8),
		Attr2: hardware.ObjAttr2(0).
			WithTileID(c.texture.tileID).
			WithPalbank(c.texture.palette),
	}
}

// bounce returns the corner offset for the current timer and advances it.
func (c *Cursor) bounce() int16 {
	if c.bounceTimer >= bouncePeriod {
		c.bounceTimer = 0
	}
	offset := bounceOffset(c.bounceTimer)
	c.bounceTimer = (c.bounceTimer + 1) % bouncePeriod
	return offset
}

func bounceOffset(timer uint8) int16 {
	var offset int16
	for _, window := range bounceWindows {
		if timer < window.start {
			break
		}
		offset = window.offset
	}
	return offset
}

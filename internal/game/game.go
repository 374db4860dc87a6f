// Package game implements the game state that is ticked once per frame.
package game

import (
	"errors"
	"fmt"

	"github.com/retroenv/gbatactics/internal/assets"
	"github.com/retroenv/gbatactics/internal/entity"
	"github.com/retroenv/gbatactics/internal/gfx"
	"github.com/retroenv/gbatactics/internal/hardware"
	"github.com/retroenv/gbatactics/internal/input"
	"github.com/retroenv/gbatactics/internal/level"
	"github.com/retroenv/gbatactics/internal/vector"
)

// Screenblock is the text screenblock that holds the background map.
const Screenblock = 8

const (
	metaTileSize  = 2 // text entries per grid cell in each direction
	metaTileTiles = metaTileSize * metaTileSize
	defaultUnits  = 2
	noSelection   = -1
)

// ErrLevelTooLarge is returned for levels that do not fit into one text
// screenblock.
var ErrLevelTooLarge = errors.New("level does not fit into the screenblock")

// Allocator allocates tiles and palettes in video memory.
type Allocator interface {
	entity.TextureLoader
	Reset()
	AllocateBackgroundTiles(data []uint32) (uint16, error)
	AllocateBackgroundPalette(colors []hardware.Color) (uint16, error)
}

// Screen is the text mode background map memory.
type Screen interface {
	WriteTextEntry(screenblock, row, col int, entry hardware.TextEntry)
}

// Game owns the cursor, the units and the selection state.
type Game struct {
	cursor   *entity.Cursor
	units    []entity.Selectable
	selected int
	level    *level.Data

	tileset        uint16
	tilesetPalette uint16
}

// New resets the video memory, loads all textures and fills the background
// from the level. Without level data the background stays blank and two
// units are placed at the origin.
func New(alloc Allocator, screen Screen, data *level.Data, res *assets.Resources) (*Game, error) {
	alloc.Reset()
	g := &Game{
		selected: noSelection,
		level:    data,
	}

	// tile 0 stays blank so that unused map entries are transparent
	if _, err := alloc.AllocateBackgroundTiles(make([]uint32, 8)); err != nil {
		return nil, fmt.Errorf("allocating blank tile: %w", err)
	}

	if data != nil {
		if err := g.loadBackground(alloc, screen, data, res.Tileset); err != nil {
			return nil, err
		}
	}

	var err error
	g.cursor, err = entity.NewCursor(alloc, res.Cursor)
	if err != nil {
		return nil, fmt.Errorf("creating cursor: %w", err)
	}

	if err := g.createUnits(alloc, data, res); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) loadBackground(alloc Allocator, screen Screen, data *level.Data, tileset *gfx.Image) error {
	if int(data.Width)*metaTileSize > hardware.ScreenblockSize ||
		int(data.Height)*metaTileSize > hardware.ScreenblockSize {
		return fmt.Errorf("%w: %dx%d cells", ErrLevelTooLarge, data.Width, data.Height)
	}

	var err error
	g.tileset, err = alloc.AllocateBackgroundTiles(tileset.Tiles)
	if err != nil {
		return fmt.Errorf("allocating tileset: %w", err)
	}
	g.tilesetPalette, err = alloc.AllocateBackgroundPalette(tileset.Palette)
	if err != nil {
		return fmt.Errorf("allocating tileset palette: %w", err)
	}

	for y := 0; y < int(data.Height); y++ {
		for x := 0; x < int(data.Width); x++ {
			tile := uint16(data.Tile(x, y))
			if int(tile) >= tileset.TileCount {
				return fmt.Errorf("tile %d at %d,%d is outside of the tileset", tile, x, y)
			}
			g.writeMetaTile(screen, x, y, tile)
		}
	}
	return nil
}

// writeMetaTile writes the four text entries of one grid cell, the sub
// tiles of a 16x16 tileset tile are stored in row major order.
func (g *Game) writeMetaTile(screen Screen, x, y int, tile uint16) {
	base := g.tileset + tile*metaTileTiles
	for i := 0; i < metaTileTiles; i++ {
		entry := hardware.TextEntry(0).
			WithTile(base + uint16(i)).
			WithPalbank(g.tilesetPalette)
		screen.WriteTextEntry(Screenblock, y*metaTileSize+i/metaTileSize, x*metaTileSize+i%metaTileSize, entry)
	}
}

func (g *Game) createUnits(alloc Allocator, data *level.Data, res *assets.Resources) error {
	var placements []level.UnitData
	if data != nil {
		placements = data.Units
	} else {
		placements = make([]level.UnitData, defaultUnits)
	}

	for i, placement := range placements {
		unit, err := entity.NewUnit(alloc, res.Unit)
		if err != nil {
			return fmt.Errorf("creating unit %d: %w", i, err)
		}
		unit.Name = placement.Name
		unit.IsBoss = placement.IsBoss
		unit.Level = placement.Level
		unit.SetPosition(vector.New(int16(placement.X), int16(placement.Y)))
		g.units = append(g.units, unit)
	}
	return nil
}

// Tick processes the input of one frame and draws the cursor and all units
// into the shadow table.
func (g *Game) Tick(in *input.Snapshot, table entity.Reserver) error {
	if axis, ok := in.NewX(); ok {
		g.cursor.Move(vector.New(axis.Delta(), 0))
	}
	if axis, ok := in.NewY(); ok {
		g.cursor.Move(vector.New(0, axis.Delta()))
	}

	if in.New.A() {
		g.confirm()
	}

	if err := g.cursor.Draw(table, g.cursorState()); err != nil {
		return fmt.Errorf("drawing cursor: %w", err)
	}
	for i, unit := range g.units {
		if err := unit.Draw(table, i == g.selected); err != nil {
			return fmt.Errorf("drawing unit %d: %w", i, err)
		}
	}
	return nil
}

// confirm moves the selected unit to the cursor, or selects the first unit
// under the cursor if none is selected.
func (g *Game) confirm() {
	pos := g.cursor.Position()
	if g.selected != noSelection {
		g.units[g.selected].SetPosition(pos)
		g.selected = noSelection
		return
	}

	g.selected = g.unitAt(pos)
}

func (g *Game) cursorState() entity.CursorState {
	switch {
	case g.selected != noSelection:
		return entity.CursorClosed
	case g.unitAt(g.cursor.Position()) != noSelection:
		return entity.CursorOpen
	default:
		return entity.CursorIdle
	}
}

func (g *Game) unitAt(pos vector.Vector2D[int16]) int {
	for i, unit := range g.units {
		if unit.Position() == pos {
			return i
		}
	}
	return noSelection
}

// Selected returns the index of the selected unit.
func (g *Game) Selected() (int, bool) {
	return g.selected, g.selected != noSelection
}

// Cursor returns the map cursor.
func (g *Game) Cursor() *entity.Cursor {
	return g.cursor
}

// Units returns all units in draw order.
func (g *Game) Units() []entity.Selectable {
	return g.units
}

// Level returns the level data the game was created with, nil if none.
func (g *Game) Level() *level.Data {
	return g.level
}

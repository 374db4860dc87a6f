// Package video implements the video memory allocator for tiles and palettes.
package video

import (
	"errors"
	"fmt"

	"github.com/retroenv/gbatactics/internal/hardware"
)

// Allocation granularities.
const (
	TileWords    = 8  // 32 bit words of one 4 bits per pixel 8x8 tile
	BankColors   = 16 // colors of one palette bank
	paletteBanks = hardware.PaletteSize / BankColors
)

// ErrOutOfMemory is returned when an allocation does not fit into the
// remaining space of its memory region.
var ErrOutOfMemory = errors.New("out of video memory")

// Memory is the video memory that allocations are written to.
type Memory interface {
	WriteBGTileWord(index int, word uint32)
	WriteObjTileWord(index int, word uint32)
	WriteBGPalette(index int, c hardware.Color)
	WriteObjPalette(index int, c hardware.Color)
}

// Allocator is a bump allocator over the four video memory regions. Memory
// is never freed piecemeal, Reset makes all regions available again between
// major game states.
type Allocator struct {
	mem Memory

	bgTiles    region
	objTiles   region
	bgPalette  region
	objPalette region
}

// region is a cursor counting allocation units of one memory region.
type region struct {
	cursor   int
	capacity int
}

// New returns an allocator writing to the given memory.
func New(mem Memory) *Allocator {
	return &Allocator{
		mem:        mem,
		bgTiles:    region{capacity: hardware.BGTileWords / TileWords},
		objTiles:   region{capacity: hardware.ObjTileWords / TileWords},
		bgPalette:  region{capacity: paletteBanks},
		objPalette: region{capacity: paletteBanks},
	}
}

// Reset makes all memory regions available again. The previously written
// data is not cleared.
func (a *Allocator) Reset() {
	a.bgTiles.cursor = 0
	a.objTiles.cursor = 0
	a.bgPalette.cursor = 0
	a.objPalette.cursor = 0
}

// AllocateBackgroundTiles writes 4 bits per pixel tile data to background
// tile memory and returns the index of the first tile.
func (a *Allocator) AllocateBackgroundTiles(data []uint32) (uint16, error) {
	return allocateTiles(&a.bgTiles, data, a.mem.WriteBGTileWord)
}

// AllocateObjectTiles writes 4 bits per pixel tile data to object tile
// memory and returns the index of the first tile.
func (a *Allocator) AllocateObjectTiles(data []uint32) (uint16, error) {
	return allocateTiles(&a.objTiles, data, a.mem.WriteObjTileWord)
}

// AllocateBackgroundPalette writes colors to the background palette and
// returns the palette bank. The colors start at index 1 of the bank, index 0
// is the transparency key.
func (a *Allocator) AllocateBackgroundPalette(colors []hardware.Color) (uint16, error) {
	return allocatePalette(&a.bgPalette, colors, a.mem.WriteBGPalette)
}

// AllocateObjectPalette writes colors to the object palette and returns the
// palette bank. The colors start at index 1 of the bank, index 0 is the
// transparency key.
func (a *Allocator) AllocateObjectPalette(colors []hardware.Color) (uint16, error) {
	return allocatePalette(&a.objPalette, colors, a.mem.WriteObjPalette)
}

// Usage returns the cursors of all regions, in tiles for tile regions and
// in banks for palette regions.
func (a *Allocator) Usage() (bgTiles, objTiles, bgPalette, objPalette int) {
	return a.bgTiles.cursor, a.objTiles.cursor, a.bgPalette.cursor, a.objPalette.cursor
}

func allocateTiles(r *region, data []uint32, write func(int, uint32)) (uint16, error) {
	units := divCeil(len(data), TileWords)
	if r.cursor+units > r.capacity {
		return 0, fmt.Errorf("allocating %d tiles at tile %d: %w", units, r.cursor, ErrOutOfMemory)
	}

	id := r.cursor
	base := id * TileWords
	for i, word := range data {
		write(base+i, word)
	}
	r.cursor += units
	return uint16(id), nil
}

func allocatePalette(r *region, colors []hardware.Color, write func(int, hardware.Color)) (uint16, error) {
	id := r.cursor
	base := 1 + id*BankColors
	if r.cursor+divCeil(len(colors), BankColors) > r.capacity || base+len(colors) > hardware.PaletteSize {
		return 0, fmt.Errorf("allocating %d colors at bank %d: %w", len(colors), id, ErrOutOfMemory)
	}

	for i, c := range colors {
		write(base+i, c)
	}
	r.cursor += divCeil(len(colors), BankColors)
	return uint16(id), nil
}

func divCeil(n, d int) int {
	return (n + d - 1) / d
}

package gfx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/gbatactics/internal/hardware"
)

// WriteTiles writes tile words as little endian 32 bit values, the layout of
// tile data in video memory.
func WriteTiles(w io.Writer, tiles []uint32) error {
	if err := binary.Write(w, binary.LittleEndian, tiles); err != nil {
		return fmt.Errorf("writing tiles: %w", err)
	}
	return nil
}

// ReadTiles reads little endian 32 bit tile words until the end of the reader.
func ReadTiles(r io.Reader) ([]uint32, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading tiles: %w", err)
	}
	if len(data)%4 != 0 {
		return nil, errors.New("tile data is not a multiple of 4 bytes")
	}

	tiles := make([]uint32, len(data)/4)
	for i := range tiles {
		tiles[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return tiles, nil
}

// WritePalette writes colors as little endian 16 bit values.
func WritePalette(w io.Writer, colors []hardware.Color) error {
	if err := binary.Write(w, binary.LittleEndian, colors); err != nil {
		return fmt.Errorf("writing palette: %w", err)
	}
	return nil
}

// ReadPalette reads little endian 16 bit colors until the end of the reader.
func ReadPalette(r io.Reader) ([]hardware.Color, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading palette: %w", err)
	}
	if len(data)%2 != 0 {
		return nil, errors.New("palette data is not a multiple of 2 bytes")
	}

	colors := make([]hardware.Color, len(data)/2)
	for i := range colors {
		colors[i] = hardware.Color(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return colors, nil
}

// Package level contains the level data consumed by the game and its
// conversion from Tiled TMX map documents.
package level

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// UnitData is the placement of one unit on the grid.
type UnitData struct {
	Name   string `json:"name"`
	X      uint16 `json:"x"`
	Y      uint16 `json:"y"`
	IsBoss bool   `json:"is_boss"`
	Level  uint8  `json:"level"`
}

// Data is a converted level: a row major grid of tile indices and the unit
// placements.
type Data struct {
	Width  uint16     `json:"width"`
	Height uint16     `json:"height"`
	Map    []byte     `json:"map"`
	Units  []UnitData `json:"units"`
}

// Tile returns the tile index of the grid cell.
func (d *Data) Tile(x, y int) byte {
	return d.Map[y*int(d.Width)+x]
}

// WriteJSON writes the level in its serialized asset form.
func WriteJSON(w io.Writer, data *Data) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "\t")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding level: %w", err)
	}
	return nil
}

// ReadJSON reads a level in its serialized asset form.
func ReadJSON(r io.Reader) (*Data, error) {
	var data Data
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding level: %w", err)
	}
	if len(data.Map) != int(data.Width)*int(data.Height) {
		return nil, fmt.Errorf("map has %d cells, expected %dx%d", len(data.Map), data.Width, data.Height)
	}
	return &data, nil
}

// Format renders the level as a Go composite literal.
func Format(data *Data) string {
	var sb strings.Builder
	sb.WriteString("level.Data{\n")
	fmt.Fprintf(&sb, "\tWidth:  %d,\n", data.Width)
	fmt.Fprintf(&sb, "\tHeight: %d,\n", data.Height)

	sb.WriteString("\tMap: []byte{")
	for i, tile := range data.Map {
		if i%16 == 0 {
			sb.WriteString("\n\t\t")
		} else {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d,", tile)
	}
	sb.WriteString("\n\t},\n")

	sb.WriteString("\tUnits: []level.UnitData{\n")
	for _, unit := range data.Units {
		fmt.Fprintf(&sb, "\t\t{Name: %q, X: %d, Y: %d, IsBoss: %t, Level: %d},\n",
			unit.Name, unit.X, unit.Y, unit.IsBoss, unit.Level)
	}
	sb.WriteString("\t},\n}\n")
	return sb.String()
}

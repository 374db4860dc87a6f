package assets

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestLoad(t *testing.T) {
	res, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 1, res.Cursor.TileCount)
	assert.Len(t, res.Cursor.Tiles, 8)

	// idle, idle animated, selected and selected animated variants
	assert.Equal(t, 4, res.Unit.TileCount)
	assert.Len(t, res.Unit.Tiles, 4*4*8)

	assert.Equal(t, 4, res.Tileset.TileCount)
	assert.NotEmpty(t, res.Tileset.Palette)
}

func TestDebugLevel(t *testing.T) {
	data, err := DebugLevel(log.NewTestLogger(t))
	assert.NoError(t, err)

	assert.Equal(t, uint16(15), data.Width)
	assert.Equal(t, uint16(10), data.Height)
	assert.Len(t, data.Map, 150)
	assert.Equal(t, byte(1), data.Tile(0, 0))
	assert.Equal(t, byte(2), data.Tile(10, 2))

	assert.Len(t, data.Units, 4)
	assert.Equal(t, "Luvui", data.Units[0].Name)
	assert.Equal(t, uint16(2), data.Units[0].X)
	assert.Equal(t, uint16(3), data.Units[0].Y)
	assert.Equal(t, "Enemy", data.Units[2].Name)
	assert.True(t, data.Units[3].IsBoss)
	assert.Equal(t, uint16(2), data.Units[3].Y)
}

package video

import (
	"errors"
	"testing"

	"github.com/retroenv/gbatactics/internal/hardware"
	"github.com/retroenv/retrogolib/assert"
)

func TestTileAllocation(t *testing.T) {
	m := hardware.New(&hardware.FreeRunningClock{})
	a := New(m)

	tests := []struct {
		words int
		want  uint16
	}{
		{words: 8, want: 0},
		{words: 1, want: 1},
		{words: 9, want: 2},
		{words: 0, want: 4},
		{words: 32, want: 4},
		{words: 7, want: 8},
	}

	previous := uint16(0)
	for _, tt := range tests {
		data := make([]uint32, tt.words)
		for i := range data {
			data[i] = uint32(i + 1)
		}

		id, err := a.AllocateObjectTiles(data)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, id)
		assert.True(t, id >= previous)
		previous = id

		if tt.words > 0 {
			assert.Equal(t, uint32(1), m.ObjTileWord(int(id)*TileWords))
			assert.Equal(t, uint32(tt.words), m.ObjTileWord(int(id)*TileWords+tt.words-1))
		}
	}

	_, objTiles, _, _ := a.Usage()
	assert.Equal(t, 9, objTiles)

	// background tiles use their own cursor
	id, err := a.AllocateBackgroundTiles([]uint32{0xAABBCCDD})
	assert.NoError(t, err)
	assert.Equal(t, uint16(0), id)
	assert.Equal(t, uint32(0xAABBCCDD), m.BGTileWord(0))
}

func TestPaletteAllocation(t *testing.T) {
	m := hardware.New(&hardware.FreeRunningClock{})
	a := New(m)

	colors := []hardware.Color{hardware.Red, hardware.Green, hardware.Blue}
	id, err := a.AllocateObjectPalette(colors)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0), id)
	assert.Equal(t, hardware.Black, m.ObjPalette(0))
	assert.Equal(t, hardware.Red, m.ObjPalette(1))
	assert.Equal(t, hardware.Blue, m.ObjPalette(3))

	id, err = a.AllocateObjectPalette(make([]hardware.Color, 15))
	assert.NoError(t, err)
	assert.Equal(t, uint16(1), id)

	id, err = a.AllocateObjectPalette(make([]hardware.Color, 17))
	assert.NoError(t, err)
	assert.Equal(t, uint16(2), id)

	id, err = a.AllocateObjectPalette([]hardware.Color{hardware.White})
	assert.NoError(t, err)
	assert.Equal(t, uint16(4), id)
	assert.Equal(t, hardware.White, m.ObjPalette(4*BankColors+1))

	id, err = a.AllocateBackgroundPalette([]hardware.Color{hardware.White})
	assert.NoError(t, err)
	assert.Equal(t, uint16(0), id)
	assert.Equal(t, hardware.White, m.BGPalette(1))
}

func TestReset(t *testing.T) {
	m := hardware.New(&hardware.FreeRunningClock{})
	a := New(m)

	_, err := a.AllocateBackgroundTiles(make([]uint32, 24))
	assert.NoError(t, err)
	_, err = a.AllocateObjectTiles([]uint32{0x12345678})
	assert.NoError(t, err)
	_, err = a.AllocateBackgroundPalette(make([]hardware.Color, 4))
	assert.NoError(t, err)
	_, err = a.AllocateObjectPalette(make([]hardware.Color, 4))
	assert.NoError(t, err)

	a.Reset()

	bgTiles, objTiles, bgPalette, objPalette := a.Usage()
	assert.Equal(t, 0, bgTiles+objTiles+bgPalette+objPalette)

	id, err := a.AllocateObjectTiles(nil)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0), id)
	// reset does not clear memory
	assert.Equal(t, uint32(0x12345678), m.ObjTileWord(0))

	id, err = a.AllocateObjectPalette([]hardware.Color{hardware.Red})
	assert.NoError(t, err)
	assert.Equal(t, uint16(0), id)
	assert.Equal(t, hardware.Red, m.ObjPalette(1))
}

func TestOutOfMemory(t *testing.T) {
	m := hardware.New(&hardware.FreeRunningClock{})
	a := New(m)

	id, err := a.AllocateBackgroundTiles(make([]uint32, hardware.BGTileWords-TileWords))
	assert.NoError(t, err)
	assert.Equal(t, uint16(0), id)

	_, err = a.AllocateBackgroundTiles(make([]uint32, TileWords+1))
	assert.True(t, errors.Is(err, ErrOutOfMemory))

	// the failed allocation leaves the cursor unchanged
	id, err = a.AllocateBackgroundTiles(make([]uint32, TileWords))
	assert.NoError(t, err)
	assert.Equal(t, uint16(hardware.BGTileWords/TileWords-1), id)

	for i := 0; i < 15; i++ {
		_, err = a.AllocateObjectPalette(make([]hardware.Color, 15))
		assert.NoError(t, err)
	}
	_, err = a.AllocateObjectPalette(make([]hardware.Color, 16))
	assert.True(t, errors.Is(err, ErrOutOfMemory))
	id, err = a.AllocateObjectPalette(make([]hardware.Color, 15))
	assert.NoError(t, err)
	assert.Equal(t, uint16(15), id)
}

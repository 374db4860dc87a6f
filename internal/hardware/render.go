package hardware

import (
	"image"
)

// layerPixel is the output of a single layer for one screen pixel.
type layerPixel struct {
	color    Color
	priority int
	opaque   bool
}

// render composes the visible display from the current video memory state.
// Only mode 0 is supported, with 4 bits per pixel tiles for the first
// background layer and all non affine objects.
func render(m *Machine, img *image.RGBA) {
	var objLine [ScreenWidth]layerPixel

	for y := 0; y < ScreenHeight; y++ {
		renderObjLine(m, y, &objLine)

		for x := 0; x < ScreenWidth; x++ {
			pixel := m.bgPalette[0] // backdrop

			bg := renderBGPixel(m, 0, x, y)
			if bg.opaque {
				pixel = bg.color
			}
			obj := objLine[x]
			if obj.opaque && (!bg.opaque || obj.priority <= bg.priority) {
				pixel = obj.color
			}

			r, g, b := pixel.RGBA8()
			offset := img.PixOffset(x, y)
			img.Pix[offset] = r
			img.Pix[offset+1] = g
			img.Pix[offset+2] = b
			img.Pix[offset+3] = 0xFF
		}
	}
}

func renderBGPixel(m *Machine, layer, x, y int) layerPixel {
	if m.dispcnt.VideoMode() != VideoMode0 || !m.dispcnt.ShowBG(layer) {
		return layerPixel{}
	}

	cnt := m.bgcnt[layer]
	entry := TextEntry(m.bgVRAM[textEntryIndex(cnt.Screenblock(), y/8, x/8)])

	px, py := x%8, y%8
	if entry.HFlip() {
		px = 7 - px
	}
	if entry.VFlip() {
		py = 7 - py
	}

	base := cnt.Charblock()*0x2000 + int(entry.Tile())*16
	value := tileNibble(m.bgVRAM[:], base%bgVRAMHalfwords, px, py)
	if value == 0 {
		return layerPixel{}
	}
	return layerPixel{
		color:    m.bgPalette[int(entry.Palbank())*16+int(value)],
		priority: cnt.Priority(),
		opaque:   true,
	}
}

// renderObjLine renders all objects intersecting the given scanline. Lower
// OAM indexes are drawn on top of higher ones.
func renderObjLine(m *Machine, y int, line *[ScreenWidth]layerPixel) {
	*line = [ScreenWidth]layerPixel{}
	if !m.dispcnt.ShowObj() {
		return
	}

	for i := ObjCount - 1; i >= 0; i-- {
		obj := m.oam[i]
		style := obj.Attr0.Style()
		if style != ObjNormal {
			continue // hidden or affine, affine rendering is not supported
		}

		width, height := obj.Dimensions()
		top := wrapCoordinate(int(obj.Attr0.Y()), height, 256)
		row := y - top
		if row < 0 || row >= height {
			continue
		}
		if obj.Attr1.VFlip() {
			row = height - 1 - row
		}
		left := wrapCoordinate(int(obj.Attr1.X()), width, 512)

		for col := 0; col < width; col++ {
			x := left + col
			if x < 0 || x >= ScreenWidth {
				continue
			}
			tx := col
			if obj.Attr1.HFlip() {
				tx = width - 1 - tx
			}

			tile := int(obj.Attr2.TileID()) + objTileOffset(m.dispcnt.ObjVRAM1D(), width, tx/8, row/8)
			value := tileNibble(m.objVRAM[:], (tile*16)%objVRAMHalfwords, tx%8, row%8)
			if value == 0 {
				continue
			}
			line[x] = layerPixel{
				color:    m.objPalette[int(obj.Attr2.Palbank())*16+int(value)],
				priority: obj.Attr2.Priority(),
				opaque:   true,
			}
		}
	}
}

// objTileOffset returns the tile offset of a sub tile of an object. With
// 1D mapping the tiles of an object are consecutive, with 2D mapping each
// row of tiles starts 32 tiles after the previous one.
func objTileOffset(mapping1D bool, width, tileX, tileY int) int {
	if mapping1D {
		return tileY*(width/8) + tileX
	}
	return tileY*32 + tileX
}

// wrapCoordinate converts a hardware position to a screen position, objects
// that would extend past the end of the coordinate space are placed at
// negative positions.
func wrapCoordinate(pos, size, space int) int {
	if pos+size > space {
		return pos - space
	}
	return pos
}

// tileNibble returns the 4 bit color index of a pixel inside a tile starting
// at the given halfword offset. The lower nibble holds the left pixel.
func tileNibble(mem []uint16, base, x, y int) uint16 {
	halfword := mem[base+y*2+x/4]
	return halfword >> (uint(x%4) * 4) & 0xF
}

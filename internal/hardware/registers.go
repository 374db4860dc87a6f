package hardware

// Color is a 15 bit color with 5 bits per channel: bits 0-4 red, 5-9 green
// and 10-14 blue.
type Color uint16

// Predefined colors.
const (
	Black Color = 0
	Red   Color = 0x001F
	Green Color = 0x03E0
	Blue  Color = 0x7C00
	White Color = 0x7FFF
)

// MaxChannel is the maximum value of a single color channel.
const MaxChannel = 0x1F

// RGB returns the color for the given 5 bit channel values.
func RGB(r, g, b uint8) Color {
	return Color(r&MaxChannel) | Color(g&MaxChannel)<<5 | Color(b&MaxChannel)<<10
}

// RGB8 returns the color closest to the given 8 bit channel values.
func RGB8(r, g, b uint8) Color {
	return RGB(r>>3, g>>3, b>>3)
}

func (c Color) Red() uint8   { return uint8(c & MaxChannel) }
func (c Color) Green() uint8 { return uint8(c>>5) & MaxChannel }
func (c Color) Blue() uint8  { return uint8(c>>10) & MaxChannel }

// WithRed returns the color with the red channel replaced.
func (c Color) WithRed(v uint8) Color {
	return c&^MaxChannel | Color(v&MaxChannel)
}

// WithGreen returns the color with the green channel replaced.
func (c Color) WithGreen(v uint8) Color {
	return c&^(MaxChannel<<5) | Color(v&MaxChannel)<<5
}

// WithBlue returns the color with the blue channel replaced.
func (c Color) WithBlue(v uint8) Color {
	return c&^(MaxChannel<<10) | Color(v&MaxChannel)<<10
}

// RGBA8 expands the color to 8 bits per channel.
func (c Color) RGBA8() (r, g, b uint8) {
	expand := func(v uint8) uint8 { return v<<3 | v>>2 }
	return expand(c.Red()), expand(c.Green()), expand(c.Blue())
}

// VideoMode selects the background layout of the display.
type VideoMode uint16

// Video modes. Only mode 0 (four text backgrounds) is rendered by the scanout.
const (
	VideoMode0 VideoMode = iota
	VideoMode1
	VideoMode2
	VideoMode3
	VideoMode4
	VideoMode5
)

// DisplayControl is the DISPCNT register.
type DisplayControl uint16

const (
	dispcntObjVRAM1D = 1 << 6
	dispcntShowBG0   = 1 << 8
	dispcntShowObj   = 1 << 12
)

func (d DisplayControl) VideoMode() VideoMode { return VideoMode(d & 7) }
func (d DisplayControl) ObjVRAM1D() bool      { return d&dispcntObjVRAM1D != 0 }
func (d DisplayControl) ShowObj() bool        { return d&dispcntShowObj != 0 }

// ShowBG returns whether the given background layer is enabled.
func (d DisplayControl) ShowBG(layer int) bool {
	return d&(DisplayControl(dispcntShowBG0)<<layer) != 0
}

func (d DisplayControl) WithVideoMode(m VideoMode) DisplayControl {
	return d&^7 | DisplayControl(m&7)
}

func (d DisplayControl) WithObjVRAM1D(v bool) DisplayControl {
	return setBit(d, dispcntObjVRAM1D, v)
}

func (d DisplayControl) WithShowBG(layer int, v bool) DisplayControl {
	return setBit(d, DisplayControl(dispcntShowBG0)<<layer, v)
}

func (d DisplayControl) WithShowObj(v bool) DisplayControl {
	return setBit(d, dispcntShowObj, v)
}

// BackgroundControl is a BGxCNT register.
type BackgroundControl uint16

func (b BackgroundControl) Priority() int    { return int(b & 3) }
func (b BackgroundControl) Charblock() int   { return int(b>>2) & 3 }
func (b BackgroundControl) Screenblock() int { return int(b>>8) & 0x1F }

func (b BackgroundControl) WithPriority(v int) BackgroundControl {
	return b&^3 | BackgroundControl(v&3)
}

func (b BackgroundControl) WithCharblock(v int) BackgroundControl {
	return b&^(3<<2) | BackgroundControl(v&3)<<2
}

func (b BackgroundControl) WithScreenblock(v int) BackgroundControl {
	return b&^(0x1F<<8) | BackgroundControl(v&0x1F)<<8
}

// DisplayStatus is the DISPSTAT register.
type DisplayStatus uint16

const (
	dispstatVBlank    = 1 << 0
	dispstatHBlank    = 1 << 1
	dispstatIrqVBlank = 1 << 3
	dispstatIrqHBlank = 1 << 4
)

func (s DisplayStatus) InVBlank() bool  { return s&dispstatVBlank != 0 }
func (s DisplayStatus) InHBlank() bool  { return s&dispstatHBlank != 0 }
func (s DisplayStatus) IrqVBlank() bool { return s&dispstatIrqVBlank != 0 }
func (s DisplayStatus) IrqHBlank() bool { return s&dispstatIrqHBlank != 0 }

func (s DisplayStatus) WithIrqVBlank(v bool) DisplayStatus {
	return setBit(s, dispstatIrqVBlank, v)
}

func (s DisplayStatus) WithIrqHBlank(v bool) DisplayStatus {
	return setBit(s, dispstatIrqHBlank, v)
}

// IrqBits is the bit layout shared by the IE and IF registers.
type IrqBits uint16

const (
	irqVBlank = 1 << 0
	irqHBlank = 1 << 1
)

func (i IrqBits) VBlank() bool { return i&irqVBlank != 0 }
func (i IrqBits) HBlank() bool { return i&irqHBlank != 0 }

func (i IrqBits) WithVBlank(v bool) IrqBits { return setBit(i, irqVBlank, v) }
func (i IrqBits) WithHBlank(v bool) IrqBits { return setBit(i, irqHBlank, v) }

// TextEntry is one tile reference of a text mode screenblock.
type TextEntry uint16

func (e TextEntry) Tile() uint16    { return uint16(e & 0x3FF) }
func (e TextEntry) HFlip() bool     { return e&(1<<10) != 0 }
func (e TextEntry) VFlip() bool     { return e&(1<<11) != 0 }
func (e TextEntry) Palbank() uint16 { return uint16(e>>12) & 0xF }

func (e TextEntry) WithTile(v uint16) TextEntry {
	return e&^0x3FF | TextEntry(v&0x3FF)
}

func (e TextEntry) WithHFlip(v bool) TextEntry { return setBit(e, 1<<10, v) }
func (e TextEntry) WithVFlip(v bool) TextEntry { return setBit(e, 1<<11, v) }

func (e TextEntry) WithPalbank(v uint16) TextEntry {
	return e&^(0xF<<12) | TextEntry(v&0xF)<<12
}

func setBit[T ~uint16](value, mask T, set bool) T {
	if set {
		return value | mask
	}
	return value &^ mask
}

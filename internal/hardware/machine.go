// Package hardware models the memory mapped video, interrupt and key input
// hardware that the game drives.
package hardware

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"
)

// Hardware limits.
const (
	ScreenWidth  = 240
	ScreenHeight = 160

	ObjCount    = 128 // hardware sprite descriptors
	PaletteSize = 256 // colors per palette RAM

	// BGTileWords is the size of charblock 0 in 32 bit words, the area
	// holding background tiles in front of screenblock 8.
	BGTileWords = 0x1000
	// ObjTileWords is the size of the object tile VRAM in 32 bit words.
	ObjTileWords = 0x2000

	ScreenblockSize = 32 // entries per screenblock row and column
	Screenblocks    = 32

	bgVRAMHalfwords  = 0x8000
	objVRAMHalfwords = 0x4000
)

// ErrVBlankDisabled is returned when waiting for a vertical blank that can
// never be signaled because the interrupt is not enabled.
var ErrVBlankDisabled = errors.New("vblank interrupt is not enabled")

// ErrHBlankDisabled is returned when waiting for a horizontal blank that can
// never be signaled because the interrupt is not enabled.
var ErrHBlankDisabled = errors.New("hblank interrupt is not enabled")

// Machine is the memory mapped hardware. All memory and registers are owned
// by the single frame loop context, only the key register and the rendered
// frame are safe to access from other goroutines.
type Machine struct {
	clock Clock

	bgVRAM     [bgVRAMHalfwords]uint16
	objVRAM    [objVRAMHalfwords]uint16
	bgPalette  [PaletteSize]Color
	objPalette [PaletteSize]Color
	oam        [ObjCount]ObjAttr

	dispcnt  DisplayControl
	dispstat DisplayStatus
	bgcnt    [4]BackgroundControl
	ie       IrqBits
	iflags   IrqBits
	ime      bool

	keys   atomic.Uint32 // raw low active KEYINPUT value
	frames atomic.Uint64

	mu    sync.Mutex
	frame *image.RGBA
	back  *image.RGBA
}

// New returns a machine in its power on state that uses the given clock to
// pace the blanking periods.
func New(clock Clock) *Machine {
	m := &Machine{
		clock: clock,
		frame: image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight)),
		back:  image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight)),
	}
	m.keys.Store(uint32(Keys(0).Register()))
	return m
}

// DisplayControl returns the DISPCNT register.
func (m *Machine) DisplayControl() DisplayControl {
	return m.dispcnt
}

// SetDisplayControl writes the DISPCNT register.
func (m *Machine) SetDisplayControl(v DisplayControl) {
	m.dispcnt = v
}

// BackgroundControl returns the BGxCNT register of the given layer.
func (m *Machine) BackgroundControl(layer int) BackgroundControl {
	return m.bgcnt[layer]
}

// SetBackgroundControl writes the BGxCNT register of the given layer.
func (m *Machine) SetBackgroundControl(layer int, v BackgroundControl) {
	m.bgcnt[layer] = v
}

// DisplayStatus returns the DISPSTAT register.
func (m *Machine) DisplayStatus() DisplayStatus {
	return m.dispstat
}

// SetDisplayStatus writes the interrupt request bits of DISPSTAT, the
// blanking flags are read only.
func (m *Machine) SetDisplayStatus(v DisplayStatus) {
	const readOnly = dispstatVBlank | dispstatHBlank
	m.dispstat = m.dispstat&readOnly | v&^readOnly
}

// InterruptEnable returns the IE register.
func (m *Machine) InterruptEnable() IrqBits {
	return m.ie
}

// SetInterruptEnable writes the IE register.
func (m *Machine) SetInterruptEnable(v IrqBits) {
	m.ie = v
}

// InterruptFlags returns the IF register.
func (m *Machine) InterruptFlags() IrqBits {
	return m.iflags
}

// SetInterruptFlags writes the IF register. Writing a 1 bit acknowledges the
// corresponding interrupt.
func (m *Machine) SetInterruptFlags(v IrqBits) {
	m.iflags &^= v
}

// SetInterruptMasterEnable writes the IME register.
func (m *Machine) SetInterruptMasterEnable(v bool) {
	m.ime = v
}

// WriteBGTileWord writes a 32 bit word of background tile data to charblock 0.
func (m *Machine) WriteBGTileWord(index int, word uint32) {
	m.bgVRAM[index*2] = uint16(word)
	m.bgVRAM[index*2+1] = uint16(word >> 16)
}

// WriteObjTileWord writes a 32 bit word of object tile data.
func (m *Machine) WriteObjTileWord(index int, word uint32) {
	m.objVRAM[index*2] = uint16(word)
	m.objVRAM[index*2+1] = uint16(word >> 16)
}

// BGTileWord reads a 32 bit word of background tile data from charblock 0.
func (m *Machine) BGTileWord(index int) uint32 {
	return uint32(m.bgVRAM[index*2]) | uint32(m.bgVRAM[index*2+1])<<16
}

// ObjTileWord reads a 32 bit word of object tile data.
func (m *Machine) ObjTileWord(index int) uint32 {
	return uint32(m.objVRAM[index*2]) | uint32(m.objVRAM[index*2+1])<<16
}

// WriteTextEntry writes a text mode map entry to the given screenblock.
func (m *Machine) WriteTextEntry(screenblock, row, col int, entry TextEntry) {
	m.bgVRAM[textEntryIndex(screenblock, row, col)] = uint16(entry)
}

// TextEntry reads a text mode map entry from the given screenblock.
func (m *Machine) TextEntry(screenblock, row, col int) TextEntry {
	return TextEntry(m.bgVRAM[textEntryIndex(screenblock, row, col)])
}

func textEntryIndex(screenblock, row, col int) int {
	if row < 0 || row >= ScreenblockSize || col < 0 || col >= ScreenblockSize {
		panic("text entry outside of screenblock")
	}
	return screenblock*ScreenblockSize*ScreenblockSize + row*ScreenblockSize + col
}

// BGPalette returns a background palette color.
func (m *Machine) BGPalette(index int) Color {
	return m.bgPalette[index]
}

// WriteBGPalette writes a background palette color.
func (m *Machine) WriteBGPalette(index int, c Color) {
	m.bgPalette[index] = c
}

// ObjPalette returns an object palette color.
func (m *Machine) ObjPalette(index int) Color {
	return m.objPalette[index]
}

// WriteObjPalette writes an object palette color.
func (m *Machine) WriteObjPalette(index int, c Color) {
	m.objPalette[index] = c
}

// ObjAttr returns a sprite descriptor from OAM.
func (m *Machine) ObjAttr(index int) ObjAttr {
	return m.oam[index]
}

// WriteObjAttr writes a sprite descriptor to OAM.
func (m *Machine) WriteObjAttr(index int, attr ObjAttr) {
	m.oam[index] = attr
}

// KeyInput returns the raw low active KEYINPUT register.
func (m *Machine) KeyInput() uint16 {
	return uint16(m.keys.Load())
}

// SetKeys sets the buttons that are currently held down. It is safe to call
// from a frontend goroutine.
func (m *Machine) SetKeys(keys Keys) {
	m.keys.Store(uint32(keys.Register()))
}

// WaitVBlank blocks until the next vertical blanking period starts. The
// display scans out video memory right before that, so everything written
// after the wait returns becomes visible in the next frame only.
func (m *Machine) WaitVBlank() error {
	if !m.ime || !m.ie.VBlank() || !m.dispstat.IrqVBlank() {
		return ErrVBlankDisabled
	}

	m.dispstat &^= dispstatVBlank
	m.clock.WaitVBlank()
	m.scanout()
	m.dispstat |= dispstatVBlank
	m.frames.Add(1)
	return nil
}

// WaitHBlank blocks until the next horizontal blanking period starts.
func (m *Machine) WaitHBlank() error {
	if !m.ime || !m.ie.HBlank() || !m.dispstat.IrqHBlank() {
		return ErrHBlankDisabled
	}

	m.clock.WaitHBlank()
	m.dispstat |= dispstatHBlank
	return nil
}

// Frames returns the number of vertical blanks that occurred.
func (m *Machine) Frames() uint64 {
	return m.frames.Load()
}

// Frame returns a copy of the last displayed frame. It is safe to call from
// a frontend goroutine.
func (m *Machine) Frame() *image.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()

	img := image.NewRGBA(m.frame.Rect)
	copy(img.Pix, m.frame.Pix)
	return img
}

func (m *Machine) scanout() {
	render(m, m.back)

	m.mu.Lock()
	m.frame, m.back = m.back, m.frame
	m.mu.Unlock()
}

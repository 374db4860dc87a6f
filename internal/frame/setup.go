package frame

import (
	"github.com/retroenv/gbatactics/internal/game"
	"github.com/retroenv/gbatactics/internal/hardware"
)

// Display contains the registers configured once at startup.
type Display interface {
	SetDisplayControl(v hardware.DisplayControl)
	SetBackgroundControl(layer int, v hardware.BackgroundControl)
	SetInterruptFlags(v hardware.IrqBits)
	SetInterruptEnable(v hardware.IrqBits)
	SetInterruptMasterEnable(v bool)
	SetDisplayStatus(v hardware.DisplayStatus)
}

// Setup selects video mode 0 with background 0 and 1D mapped sprites and
// enables the blanking interrupts that the frame loop waits for.
func Setup(display Display) {
	display.SetDisplayControl(hardware.DisplayControl(0).
		WithVideoMode(hardware.VideoMode0).
		WithShowBG(0, true).
		WithShowObj(true).
		WithObjVRAM1D(true))

	display.SetBackgroundControl(0, hardware.BackgroundControl(0).
		WithCharblock(0).
		WithScreenblock(game.Screenblock))

	display.SetInterruptFlags(hardware.IrqBits(0).
		WithVBlank(true).
		WithHBlank(true))
	display.SetInterruptEnable(hardware.IrqBits(0).
		WithVBlank(true).
		WithHBlank(true))
	display.SetInterruptMasterEnable(true)
	display.SetDisplayStatus(hardware.DisplayStatus(0).
		WithIrqVBlank(true).
		WithIrqHBlank(true))
}

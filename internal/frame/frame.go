// Package frame implements the frame loop that synchronizes the game with
// the display blanking cycle.
package frame

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/gbatactics/internal/entity"
	"github.com/retroenv/gbatactics/internal/hardware"
	"github.com/retroenv/gbatactics/internal/input"
	"github.com/retroenv/gbatactics/internal/oam"
	"github.com/retroenv/retrogolib/log"
)

// ErrHalted is returned after the loop stopped processing frames because of
// a failed frame.
var ErrHalted = errors.New("frame loop halted")

// Hardware is the machine the loop drives.
type Hardware interface {
	input.KeyRegister
	oam.Registers
	BGPalette(index int) hardware.Color
	WriteBGPalette(index int, c hardware.Color)
	WaitVBlank() error
}

// Game is ticked once per frame.
type Game interface {
	Tick(in *input.Snapshot, table entity.Reserver) error
}

// Loop runs one game tick per displayed frame.
type Loop struct {
	logger *log.Logger
	hw     Hardware
	game   Game
	input  *input.Snapshot
	table  *oam.ShadowTable

	frames uint64
	halted error
}

// New returns a frame loop for the game. The hardware has to be set up
// using Setup before the first frame.
func New(logger *log.Logger, hw Hardware, game Game) *Loop {
	return &Loop{
		logger: logger,
		hw:     hw,
		game:   game,
		input:  input.NewSnapshot(hw),
		table:  oam.New(),
	}
}

// Run processes frames until the context is canceled. A failed frame halts
// the loop: no further frame is processed and Run blocks until the context
// is canceled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := l.Step(); err != nil {
			<-ctx.Done()
			return err
		}
	}
}

// Step processes a single frame. All sprite table writes of the frame happen
// before the vertical blank wait and the table is committed only after it.
func (l *Loop) Step() (err error) {
	if l.halted != nil {
		return l.halted
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("frame %d panicked: %v", l.frames, r)
		}
		if err != nil {
			l.logger.Error("Fatal error, halting frame loop",
				log.Int("frame", int(l.frames)),
				log.Err(err))
			err = fmt.Errorf("%w: %w", ErrHalted, err)
			l.halted = err
		}
	}()

	l.input.Update()
	l.table.Clean()

	if err := l.game.Tick(l.input, l.table); err != nil {
		return fmt.Errorf("ticking game: %w", err)
	}

	l.hw.WriteBGPalette(0, rotateColor(l.hw.BGPalette(0)))

	if err := l.hw.WaitVBlank(); err != nil {
		return fmt.Errorf("waiting for vblank: %w", err)
	}
	l.table.Commit(l.hw)

	l.frames++
	return nil
}

// Frames returns the number of completed frames.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// rotateColor walks the color wheel red, yellow, green, cyan, blue, magenta
// one channel step at a time. Colors off the wheel reset to red.
func rotateColor(c hardware.Color) hardware.Color {
	const full = hardware.MaxChannel
	r, g, b := c.Red(), c.Green(), c.Blue()

	switch {
	case g == full && b == 0 && r > 0: // red to green
		return c.WithRed(r - 1)
	case r == 0 && b == full && g > 0: // green to blue
		return c.WithGreen(g - 1)
	case r == full && g == 0 && b > 0: // blue to red
		return c.WithBlue(b - 1)
	case r == full && b == 0:
		return c.WithGreen(g + 1)
	case r == 0 && g == full:
		return c.WithBlue(b + 1)
	case g == 0 && b == full:
		return c.WithRed(r + 1)
	default:
		return hardware.Red
	}
}

// Package headless runs the game for a fixed number of frames without any
// display, optionally saving the last frame as screenshot.
package headless

import (
	"context"
	"fmt"
	"image/png"
	"os"

	"github.com/retroenv/gbatactics/internal/frontend"
	"github.com/retroenv/gbatactics/internal/hardware"
	"github.com/retroenv/retrogolib/log"
)

// Stepper processes single frames.
type Stepper interface {
	Step() error
}

// Script returns the buttons to hold for a frame.
type Script func(frame int) hardware.Keys

// Run processes the given number of frames. The machine should use a free
// running clock so that frames are processed as fast as possible.
func Run(ctx context.Context, logger *log.Logger, loop Stepper, machine frontend.Machine,
	frames int, script Script, screenshot string) error {

	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running frame %d: %w", i, err)
		}
		if script != nil {
			machine.SetKeys(script(i))
		}
		if err := loop.Step(); err != nil {
			return fmt.Errorf("running frame %d: %w", i, err)
		}
	}
	logger.Info("Frames processed", log.Int("frames", frames))

	if screenshot == "" {
		return nil
	}
	return writeScreenshot(logger, machine, screenshot)
}

func writeScreenshot(logger *log.Logger, machine frontend.Machine, fileName string) error {
	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating screenshot file '%s': %w", fileName, err)
	}

	if err := png.Encode(f, machine.Frame()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding screenshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing screenshot file '%s': %w", fileName, err)
	}
	logger.Info("Screenshot written", log.String("file", fileName))
	return nil
}

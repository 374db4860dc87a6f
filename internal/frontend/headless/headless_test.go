package headless

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/gbatactics/internal/assets"
	"github.com/retroenv/gbatactics/internal/frame"
	"github.com/retroenv/gbatactics/internal/game"
	"github.com/retroenv/gbatactics/internal/hardware"
	"github.com/retroenv/gbatactics/internal/video"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newLoop(t *testing.T) (*frame.Loop, *hardware.Machine, *game.Game) {
	t.Helper()
	logger := log.NewTestLogger(t)

	machine := hardware.New(&hardware.FreeRunningClock{})
	frame.Setup(machine)

	res, err := assets.Load()
	assert.NoError(t, err)
	data, err := assets.DebugLevel(logger)
	assert.NoError(t, err)

	g, err := game.New(video.New(machine), machine, data, res)
	assert.NoError(t, err)
	return frame.New(logger, machine, g), machine, g
}

func TestRunWithScreenshot(t *testing.T) {
	loop, machine, g := newLoop(t)
	screenshot := filepath.Join(t.TempDir(), "frame.png")

	// move the cursor right twice, pressing the button every other frame
	script := func(frame int) hardware.Keys {
		if frame < 4 && frame%2 == 0 {
			return hardware.KeyRight
		}
		return 0
	}

	err := Run(context.Background(), log.NewTestLogger(t), loop, machine, 30, script, screenshot)
	assert.NoError(t, err)
	assert.Equal(t, uint64(30), machine.Frames())
	assert.Equal(t, int16(2), g.Cursor().Position().X)

	f, err := os.Open(screenshot)
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	assert.NoError(t, err)
	assert.Equal(t, hardware.ScreenWidth, img.Bounds().Dx())
	assert.Equal(t, hardware.ScreenHeight, img.Bounds().Dy())
}

func TestRunCanceled(t *testing.T) {
	loop, machine, _ := newLoop(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, log.NewTestLogger(t), loop, machine, 10, nil, "")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, uint64(0), machine.Frames())
}

func TestRunScreenshotWriteError(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		errMsg string
	}{
		{"missing directory", filepath.Join(t.TempDir(), "missing", "frame.png"), "creating screenshot file"},
		{"device full", "/dev/full", "encoding screenshot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.file == "/dev/full" {
				if _, err := os.Stat(tt.file); err != nil {
					t.Skip("no /dev/full on this system")
				}
			}
			loop, machine, _ := newLoop(t)

			err := Run(context.Background(), log.NewTestLogger(t), loop, machine, 1, nil, tt.file)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

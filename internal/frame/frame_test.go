package frame

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/gbatactics/internal/entity"
	"github.com/retroenv/gbatactics/internal/game"
	"github.com/retroenv/gbatactics/internal/hardware"
	"github.com/retroenv/gbatactics/internal/input"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type gameFunc func(in *input.Snapshot, table entity.Reserver) error

func (f gameFunc) Tick(in *input.Snapshot, table entity.Reserver) error {
	return f(in, table)
}

// recordingHardware records the order of the hardware accesses of a frame.
type recordingHardware struct {
	calls   []string
	palette hardware.Color
}

func (h *recordingHardware) KeyInput() uint16 {
	h.calls = append(h.calls, "input")
	return hardware.Keys(0).Register()
}

func (h *recordingHardware) WriteObjAttr(int, hardware.ObjAttr) {
	if n := len(h.calls); n == 0 || h.calls[n-1] != "commit" {
		h.calls = append(h.calls, "commit")
	}
}

func (h *recordingHardware) BGPalette(int) hardware.Color {
	return h.palette
}

func (h *recordingHardware) WriteBGPalette(_ int, c hardware.Color) {
	h.calls = append(h.calls, "palette")
	h.palette = c
}

func (h *recordingHardware) WaitVBlank() error {
	h.calls = append(h.calls, "vblank")
	return nil
}

func TestStepOrder(t *testing.T) {
	hw := &recordingHardware{}
	loop := New(log.NewTestLogger(t), hw, gameFunc(func(_ *input.Snapshot, table entity.Reserver) error {
		hw.calls = append(hw.calls, "tick")
		_, err := table.ReserveEntry()
		return err
	}))

	assert.NoError(t, loop.Step())
	assert.Equal(t, []string{"input", "tick", "palette", "vblank", "commit"}, hw.calls)
	assert.Equal(t, uint64(1), loop.Frames())
	assert.Equal(t, hardware.Red, hw.palette)
}

func TestStepCommitsAfterVBlank(t *testing.T) {
	machine := hardware.New(&hardware.FreeRunningClock{})
	Setup(machine)

	attr := hardware.ObjAttr{
		Attr0: hardware.ObjAttr0(0).WithY(40),
		Attr1: hardware.ObjAttr1(0).WithX(60),
	}
	loop := New(log.NewTestLogger(t), machine, gameFunc(func(_ *input.Snapshot, table entity.Reserver) error {
		entry, err := table.ReserveEntry()
		if err != nil {
			return err
		}
		*entry = attr
		return nil
	}))

	assert.NoError(t, loop.Step())
	assert.Equal(t, uint64(1), machine.Frames())
	assert.Equal(t, attr, machine.ObjAttr(0))
	assert.True(t, machine.ObjAttr(1).Hidden())
}

func TestSetup(t *testing.T) {
	machine := hardware.New(&hardware.FreeRunningClock{})
	Setup(machine)

	dispcnt := machine.DisplayControl()
	assert.Equal(t, hardware.VideoMode0, dispcnt.VideoMode())
	assert.True(t, dispcnt.ShowBG(0))
	assert.False(t, dispcnt.ShowBG(1))
	assert.True(t, dispcnt.ShowObj())
	assert.True(t, dispcnt.ObjVRAM1D())

	bgcnt := machine.BackgroundControl(0)
	assert.Equal(t, 0, bgcnt.Charblock())
	assert.Equal(t, game.Screenblock, bgcnt.Screenblock())

	assert.True(t, machine.InterruptEnable().VBlank())
	assert.True(t, machine.InterruptEnable().HBlank())
	assert.True(t, machine.DisplayStatus().IrqVBlank())
	assert.True(t, machine.DisplayStatus().IrqHBlank())
	assert.NoError(t, machine.WaitHBlank())
}

func TestHaltOnError(t *testing.T) {
	tests := []struct {
		name string
		tick func() error
		msg  string
	}{
		{"error", func() error { return errors.New("out of sprites") }, "out of sprites"},
		{"panic", func() error { panic("index out of range") }, "index out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks := 0
			loop := New(log.NewTestLogger(t), &recordingHardware{}, gameFunc(func(*input.Snapshot, entity.Reserver) error {
				ticks++
				return tt.tick()
			}))

			err := loop.Step()
			assert.True(t, errors.Is(err, ErrHalted))
			assert.ErrorContains(t, err, tt.msg)

			err = loop.Step()
			assert.True(t, errors.Is(err, ErrHalted))
			assert.Equal(t, 1, ticks)
			assert.Equal(t, uint64(0), loop.Frames())
		})
	}
}

func TestHaltWithoutVBlankInterrupt(t *testing.T) {
	machine := hardware.New(&hardware.FreeRunningClock{})
	loop := New(log.NewTestLogger(t), machine, gameFunc(func(*input.Snapshot, entity.Reserver) error {
		return nil
	}))

	err := loop.Step()
	assert.True(t, errors.Is(err, ErrHalted))
	assert.True(t, errors.Is(err, hardware.ErrVBlankDisabled))
}

func TestRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hw := &recordingHardware{}
	ticks := 0
	loop := New(log.NewTestLogger(t), hw, gameFunc(func(*input.Snapshot, entity.Reserver) error {
		ticks++
		if ticks == 3 {
			cancel()
		}
		return nil
	}))

	assert.NoError(t, loop.Run(ctx))
	assert.Equal(t, 3, ticks)
	assert.Equal(t, uint64(3), loop.Frames())
}

func TestRunHalts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := New(log.NewTestLogger(t), &recordingHardware{}, gameFunc(func(*input.Snapshot, entity.Reserver) error {
		cancel()
		panic("broken")
	}))

	err := loop.Run(ctx)
	assert.True(t, errors.Is(err, ErrHalted))
}

func TestRotateColor(t *testing.T) {
	c := rotateColor(hardware.Black)
	assert.Equal(t, hardware.Red, c)

	checkpoints := map[int]hardware.Color{
		31:  hardware.RGB(31, 31, 0),
		62:  hardware.Green,
		93:  hardware.RGB(0, 31, 31),
		124: hardware.Blue,
		155: hardware.RGB(31, 0, 31),
		186: hardware.Red,
	}

	for step := 1; step <= 186; step++ {
		c = rotateColor(c)
		if expected, ok := checkpoints[step]; ok {
			assert.Equal(t, expected, c)
		}
		if step < 186 {
			assert.True(t, c != hardware.Red)
		}
	}

	assert.Equal(t, hardware.Red, rotateColor(hardware.RGB(5, 5, 5)))
	assert.Equal(t, hardware.Red, rotateColor(hardware.White))
}

// Package window hosts the game in a desktop window.
package window

import (
	"context"
	"errors"
	"sync"
	"time"

	"fyne.io/fyne"
	"fyne.io/fyne/app"
	"fyne.io/fyne/canvas"
	"fyne.io/fyne/driver/desktop"
	"github.com/retroenv/gbatactics/internal/frontend"
	"github.com/retroenv/gbatactics/internal/hardware"
	"github.com/retroenv/retrogolib/log"
)

const (
	title           = "GBA Tactics"
	refreshInterval = time.Second / 60
)

// keyMap maps keyboard keys to buttons.
var keyMap = map[fyne.KeyName]hardware.Keys{
	fyne.KeyUp:        hardware.KeyUp,
	fyne.KeyDown:      hardware.KeyDown,
	fyne.KeyLeft:      hardware.KeyLeft,
	fyne.KeyRight:     hardware.KeyRight,
	fyne.KeyZ:         hardware.KeyA,
	fyne.KeyX:         hardware.KeyB,
	fyne.KeyA:         hardware.KeyL,
	fyne.KeyS:         hardware.KeyR,
	fyne.KeyReturn:    hardware.KeyStart,
	fyne.KeyBackspace: hardware.KeySelect,
}

// Keyboard tracks the buttons held down on the keyboard.
type Keyboard struct {
	mu   sync.Mutex
	held hardware.Keys
}

// Press marks the button of the key as held and returns the held buttons.
func (k *Keyboard) Press(name fyne.KeyName) hardware.Keys {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.held |= keyMap[name]
	return k.held
}

// Release marks the button of the key as released and returns the held
// buttons.
func (k *Keyboard) Release(name fyne.KeyName) hardware.Keys {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.held &^= keyMap[name]
	return k.held
}

// Run shows the machine output in a window until the window is closed or
// the context is canceled. The frame loop runs in the background.
func Run(ctx context.Context, logger *log.Logger, loop frontend.Loop, machine frontend.Machine, scale int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := app.New()
	w := a.NewWindow(title)

	img := canvas.NewImageFromImage(frontend.Scale(machine.Frame(), scale))
	img.FillMode = canvas.ImageFillOriginal
	size := fyne.NewSize(hardware.ScreenWidth*scale, hardware.ScreenHeight*scale)
	img.SetMinSize(size)
	w.SetContent(img)
	w.Resize(size)
	w.SetFixedSize(true)

	keyboard := &Keyboard{}
	if deskCanvas, ok := w.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			machine.SetKeys(keyboard.Press(ev.Name))
		})
		deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			machine.SetKeys(keyboard.Release(ev.Name))
		})
	}

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- loop.Run(ctx)
	}()

	go refresh(ctx, a, img, machine, scale)

	logger.Debug("Opening window", log.Int("scale", scale))
	w.ShowAndRun()
	cancel()

	err := <-loopErr
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// refresh redraws the window content whenever the machine finished a new
// frame and quits the application once the context is canceled.
func refresh(ctx context.Context, a fyne.App, img *canvas.Image, machine frontend.Machine, scale int) {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	var shown uint64
	for {
		select {
		case <-ctx.Done():
			a.Quit()
			return

		case <-ticker.C:
			frames := machine.Frames()
			if frames == shown {
				continue
			}
			shown = frames
			img.Image = frontend.Scale(machine.Frame(), scale)
			canvas.Refresh(img)
		}
	}
}

// Package terminal hosts the game in a terminal using 24 bit ANSI colors and
// half block characters, two screen pixel rows per text row.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"sync"
	"time"

	"github.com/pkg/term"
	"github.com/retroenv/gbatactics/internal/frontend"
	"github.com/retroenv/gbatactics/internal/hardware"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	ttyDevice = "/dev/tty"
	// terminals report no key releases, a key counts as held for this many
	// frames after its last repeat.
	holdFrames      = 8
	refreshInterval = time.Second / 30
	// displayed size in pixels, halved to fit common terminal sizes
	width  = hardware.ScreenWidth / 2
	height = hardware.ScreenHeight / 2
)

const (
	keyInterrupt = 3
	keyEsc       = 27
	keyReturn    = 13
	keyBackspace = 127
	escCursor    = '['
)

// Keyboard converts the terminal byte stream into held buttons.
type Keyboard struct {
	mu      sync.Mutex
	hold    map[hardware.Keys]int
	escape  int
	quit    bool
	quitSet set.Set[byte]
}

// NewKeyboard returns a keyboard without held buttons.
func NewKeyboard() *Keyboard {
	quitSet := set.New[byte]()
	quitSet.Add('q')
	quitSet.Add(keyInterrupt)
	return &Keyboard{
		hold:    map[hardware.Keys]int{},
		quitSet: quitSet,
	}
}

// Feed processes bytes read from the terminal.
func (k *Keyboard) Feed(data []byte) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, b := range data {
		switch {
		case k.escape == 1 && b == escCursor:
			k.escape = 2
			continue
		case k.escape == 2:
			k.escape = 0
			k.pressCursor(b)
			continue
		}
		k.escape = 0

		switch {
		case b == keyEsc:
			k.escape = 1
		case k.quitSet.Contains(b):
			k.quit = true
		default:
			k.pressByte(b)
		}
	}
}

func (k *Keyboard) pressCursor(b byte) {
	switch b {
	case 'A':
		k.hold[hardware.KeyUp] = holdFrames
	case 'B':
		k.hold[hardware.KeyDown] = holdFrames
	case 'C':
		k.hold[hardware.KeyRight] = holdFrames
	case 'D':
		k.hold[hardware.KeyLeft] = holdFrames
	}
}

func (k *Keyboard) pressByte(b byte) {
	var key hardware.Keys
	switch b {
	case 'z', 'Z':
		key = hardware.KeyA
	case 'x', 'X':
		key = hardware.KeyB
	case 'a', 'A':
		key = hardware.KeyL
	case 's', 'S':
		key = hardware.KeyR
	case keyReturn:
		key = hardware.KeyStart
	case keyBackspace:
		key = hardware.KeySelect
	default:
		return
	}
	k.hold[key] = holdFrames
}

// Tick ages all held buttons by one frame and returns the buttons that are
// still held.
func (k *Keyboard) Tick() hardware.Keys {
	k.mu.Lock()
	defer k.mu.Unlock()

	var held hardware.Keys
	for key, frames := range k.hold {
		if frames <= 0 {
			delete(k.hold, key)
			continue
		}
		k.hold[key] = frames - 1
		held |= key
	}
	return held
}

// Quit returns whether a quit key was pressed.
func (k *Keyboard) Quit() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.quit
}

// Run renders the machine output to the terminal until a quit key is
// pressed or the context is canceled.
func Run(ctx context.Context, logger *log.Logger, loop frontend.Loop, machine frontend.Machine) error {
	tty, err := term.Open(ttyDevice, term.RawMode)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer func() {
		_ = tty.Restore()
		_ = tty.Close()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keyboard := NewKeyboard()
	go readInput(tty, keyboard)

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- loop.Run(ctx)
	}()

	out := bufio.NewWriter(os.Stdout)
	fmt.Fprint(out, "\x1b[2J\x1b[?25l")
	defer func() {
		fmt.Fprint(out, "\x1b[0m\x1b[?25h\r\n")
		_ = out.Flush()
	}()

	logger.Debug("Terminal frontend started")
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for !keyboard.Quit() {
		select {
		case <-ctx.Done():
			return waitLoop(loopErr)
		case <-ticker.C:
		}

		machine.SetKeys(keyboard.Tick())
		if err := Render(out, frontend.Shrink(machine.Frame(), width, height)); err != nil {
			cancel()
			return errors.Join(fmt.Errorf("rendering frame: %w", err), waitLoop(loopErr))
		}
	}

	cancel()
	return waitLoop(loopErr)
}

func waitLoop(loopErr <-chan error) error {
	err := <-loopErr
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func readInput(r io.Reader, keyboard *Keyboard) {
	buf := make([]byte, 32)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			keyboard.Feed(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

// Render writes the image at the top left of the terminal, each text cell
// showing two vertically stacked pixels.
func Render(w *bufio.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	if _, err := w.WriteString("\x1b[H"); err != nil {
		return err
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+1 < bounds.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			fmt.Fprintf(w, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		if _, err := w.WriteString("\x1b[0m\r\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

package terminal

import (
	"bufio"
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/retroenv/gbatactics/internal/hardware"
	"github.com/retroenv/retrogolib/assert"
)

func TestKeyboard(t *testing.T) {
	keyboard := NewKeyboard()

	keyboard.Feed([]byte{keyEsc, '[', 'C', 'z'})
	assert.Equal(t, hardware.KeyRight|hardware.KeyA, keyboard.Tick())
	assert.False(t, keyboard.Quit())

	// held until the hold time expired
	for i := 1; i < holdFrames; i++ {
		assert.Equal(t, hardware.KeyRight|hardware.KeyA, keyboard.Tick())
	}
	assert.Equal(t, hardware.Keys(0), keyboard.Tick())

	// a repeat refreshes the hold time
	keyboard.Feed([]byte{keyEsc, '[', 'A'})
	keyboard.Tick()
	keyboard.Feed([]byte{keyEsc, '[', 'A'})
	for i := 0; i < holdFrames; i++ {
		assert.Equal(t, hardware.KeyUp, keyboard.Tick())
	}

	keyboard.Feed([]byte("?q"))
	assert.True(t, keyboard.Quit())
}

func TestKeyboardSplitEscapeSequence(t *testing.T) {
	keyboard := NewKeyboard()
	keyboard.Feed([]byte{keyEsc})
	keyboard.Feed([]byte{'['})
	keyboard.Feed([]byte{'D'})
	assert.Equal(t, hardware.KeyLeft, keyboard.Tick())
}

func TestRender(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	assert.NoError(t, Render(w, img))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b[H\x1b[38;2;255;0;0m\x1b[48;2;0;0;255m▀"))
	assert.Equal(t, 4, strings.Count(out, "▀"))
	assert.Equal(t, 2, strings.Count(out, "\r\n"))
}

package hardware

import (
	"time"
)

// Display timing in CPU cycles of the 16.78 MHz system clock.
const (
	cpuFrequency   = 1 << 24
	cyclesPerLine  = 1232
	linesPerFrame  = 228
	cyclesPerFrame = cyclesPerLine * linesPerFrame
	framePeriod    = time.Second * cyclesPerFrame / cpuFrequency
	scanlinePeriod = time.Second * cyclesPerLine / cpuFrequency
	hblankStart    = 960 // cycles into a line
)

// Clock paces the blanking periods of the display.
type Clock interface {
	// WaitVBlank blocks until the next vertical blanking period starts.
	WaitVBlank()
	// WaitHBlank blocks until the next horizontal blanking period starts.
	WaitHBlank()
}

// RealtimeClock signals blanking periods at the speed of the real display,
// about 59.73 frames per second.
type RealtimeClock struct {
	start time.Time
	frame int64
}

// NewRealtimeClock returns a clock whose first frame starts now.
func NewRealtimeClock() *RealtimeClock {
	return &RealtimeClock{start: time.Now()}
}

// WaitVBlank sleeps until the end of the current frame. If the caller fell
// behind by more than a frame, the next frame starts immediately.
func (c *RealtimeClock) WaitVBlank() {
	c.frame++
	deadline := c.start.Add(time.Duration(c.frame) * framePeriod)
	wait := time.Until(deadline)
	if wait < -framePeriod {
		c.start = time.Now()
		c.frame = 0
		return
	}
	if wait > 0 {
		time.Sleep(wait)
	}
}

// WaitHBlank sleeps until the horizontal blank of the current scanline.
func (c *RealtimeClock) WaitHBlank() {
	elapsed := time.Since(c.start) % scanlinePeriod
	start := scanlinePeriod * hblankStart / cyclesPerLine
	wait := start - elapsed
	if wait < 0 {
		wait += scanlinePeriod
	}
	time.Sleep(wait)
}

// FreeRunningClock never blocks, every wait completes a blanking period
// immediately. It is used for headless runs and tests.
type FreeRunningClock struct {
	VBlanks uint64
	HBlanks uint64
}

// WaitVBlank counts the vertical blank and returns.
func (c *FreeRunningClock) WaitVBlank() {
	c.VBlanks++
}

// WaitHBlank counts the horizontal blank and returns.
func (c *FreeRunningClock) WaitHBlank() {
	c.HBlanks++
}

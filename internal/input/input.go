// Package input provides edge detected per frame button state.
package input

import (
	"github.com/retroenv/gbatactics/internal/hardware"
	"github.com/retroenv/gbatactics/internal/vector"
)

// KeyRegister is the hardware key state register.
type KeyRegister interface {
	KeyInput() uint16
}

// Snapshot contains the current frame's input state.
// It must be updated once, and only once, each frame by calling Update.
type Snapshot struct {
	Held     hardware.Keys // currently down
	New      hardware.Keys // pressed this frame
	Released hardware.Keys // released this frame

	register KeyRegister
	previous hardware.Keys
}

// NewSnapshot returns a snapshot reading from the given key register.
func NewSnapshot(register KeyRegister) *Snapshot {
	return &Snapshot{
		register: register,
	}
}

// Update reads the key register for this frame and recomputes the edges.
func (s *Snapshot) Update() {
	s.previous = s.Held
	s.Held = hardware.KeysFromRegister(s.register.KeyInput())
	s.New = s.Held &^ s.previous
	s.Released = s.previous &^ s.Held
}

// HeldDirection4 returns the held direction, if any.
func (s *Snapshot) HeldDirection4() (vector.Direction4, bool) {
	return direction4(s.Held)
}

// NewDirection4 returns the direction pressed this frame, if any.
func (s *Snapshot) NewDirection4() (vector.Direction4, bool) {
	return direction4(s.New)
}

// ReleasedDirection4 returns the direction released this frame, if any.
func (s *Snapshot) ReleasedDirection4() (vector.Direction4, bool) {
	return direction4(s.Released)
}

// HeldX returns the held horizontal direction, if any.
func (s *Snapshot) HeldX() (vector.AxisX, bool) {
	return axisX(s.Held)
}

// NewX returns the horizontal direction pressed this frame, if any.
func (s *Snapshot) NewX() (vector.AxisX, bool) {
	return axisX(s.New)
}

// ReleasedX returns the horizontal direction released this frame, if any.
func (s *Snapshot) ReleasedX() (vector.AxisX, bool) {
	return axisX(s.Released)
}

// HeldY returns the held vertical direction, if any.
func (s *Snapshot) HeldY() (vector.AxisY, bool) {
	return axisY(s.Held)
}

// NewY returns the vertical direction pressed this frame, if any.
func (s *Snapshot) NewY() (vector.AxisY, bool) {
	return axisY(s.New)
}

// ReleasedY returns the vertical direction released this frame, if any.
func (s *Snapshot) ReleasedY() (vector.AxisY, bool) {
	return axisY(s.Released)
}

// direction4 resolves multiple pressed directions clockwise starting at up.
func direction4(keys hardware.Keys) (vector.Direction4, bool) {
	switch {
	case keys.Up():
		return vector.Up, true
	case keys.Right():
		return vector.Right, true
	case keys.Down():
		return vector.Down, true
	case keys.Left():
		return vector.Left, true
	default:
		return 0, false
	}
}

func axisX(keys hardware.Keys) (vector.AxisX, bool) {
	switch {
	case keys.Left():
		return vector.AxisLeft, true
	case keys.Right():
		return vector.AxisRight, true
	default:
		return 0, false
	}
}

func axisY(keys hardware.Keys) (vector.AxisY, bool) {
	switch {
	case keys.Up():
		return vector.AxisUp, true
	case keys.Down():
		return vector.AxisDown, true
	default:
		return 0, false
	}
}

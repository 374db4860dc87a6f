// Package oam implements the shadow sprite attribute table that is built
// every frame and committed to the hardware during the vertical blank.
package oam

import (
	"errors"

	"github.com/retroenv/gbatactics/internal/hardware"
)

// Capacity is the number of hardware sprite descriptors.
const Capacity = hardware.ObjCount

// ErrTableFull is returned when more entries are reserved in a frame than
// the hardware supports.
var ErrTableFull = errors.New("shadow object table is full")

// Registers is the hardware sprite descriptor table.
type Registers interface {
	WriteObjAttr(index int, attr hardware.ObjAttr)
}

// ShadowTable is a working copy of the sprite descriptor table.
//
// The table keeps a ring of two generations: the number of entries reserved
// in the current frame and in the previous one. Clean hides the entries of
// the generation that is retired and Commit pushes the union of both, so a
// sprite that was visible last frame but is not drawn again is explicitly
// hidden without rewriting all entries every frame.
type ShadowTable struct {
	entries     [Capacity]hardware.ObjAttr
	generations [2]int
	current     int
}

// New returns a table whose first Clean hides every hardware entry.
func New() *ShadowTable {
	t := &ShadowTable{}
	t.generations[t.current] = Capacity
	return t
}

// Clean hides all entries drawn in the frame that just ended and starts a
// new frame. It must be called exactly once per frame, before any entry is
// reserved.
func (t *ShadowTable) Clean() {
	hidden := hardware.ObjAttr0(0).WithStyle(hardware.ObjNotDisplayed)
	for i := 0; i < t.generations[t.current]; i++ {
		t.entries[i].Attr0 = hidden
	}

	t.current ^= 1
	t.generations[t.current] = 0
}

// ReserveEntry returns the next free entry of this frame for the caller to
// fill in.
func (t *ShadowTable) ReserveEntry() (*hardware.ObjAttr, error) {
	n := t.generations[t.current]
	if n >= Capacity {
		return nil, ErrTableFull
	}

	t.generations[t.current]++
	return &t.entries[n], nil
}

// Commit pushes all entries used by this or the previous frame to the
// hardware. It does not modify the table.
func (t *ShadowTable) Commit(regs Registers) {
	n := max(t.Count(), t.Previous())
	for i := 0; i < n; i++ {
		regs.WriteObjAttr(i, t.entries[i])
	}
}

// Count returns the number of entries reserved in the current frame.
func (t *ShadowTable) Count() int {
	return t.generations[t.current]
}

// Previous returns the number of entries reserved in the previous frame.
func (t *ShadowTable) Previous() int {
	return t.generations[t.current^1]
}

// Entry returns a copy of the entry at the given index.
func (t *ShadowTable) Entry(index int) hardware.ObjAttr {
	return t.entries[index]
}

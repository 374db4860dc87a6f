package hardware

// Keys is a set of buttons, one bit per button with 1 meaning pressed.
// The KEYINPUT register itself is low active, see KeysFromRegister.
type Keys uint16

// Buttons in KEYINPUT bit order.
const (
	KeyA Keys = 1 << iota
	KeyB
	KeySelect
	KeyStart
	KeyRight
	KeyLeft
	KeyUp
	KeyDown
	KeyR
	KeyL

	AllKeys Keys = 1<<10 - 1
)

// KeysFromRegister converts a raw low active KEYINPUT value.
func KeysFromRegister(raw uint16) Keys {
	return Keys(^raw) & AllKeys
}

// Register returns the raw low active KEYINPUT encoding of the keys.
func (k Keys) Register() uint16 {
	return uint16(^k & AllKeys)
}

// Has returns whether all of the given keys are in the set.
func (k Keys) Has(keys Keys) bool {
	return k&keys == keys
}

func (k Keys) A() bool      { return k&KeyA != 0 }
func (k Keys) B() bool      { return k&KeyB != 0 }
func (k Keys) Select() bool { return k&KeySelect != 0 }
func (k Keys) Start() bool  { return k&KeyStart != 0 }
func (k Keys) Right() bool  { return k&KeyRight != 0 }
func (k Keys) Left() bool   { return k&KeyLeft != 0 }
func (k Keys) Up() bool     { return k&KeyUp != 0 }
func (k Keys) Down() bool   { return k&KeyDown != 0 }
func (k Keys) R() bool      { return k&KeyR != 0 }
func (k Keys) L() bool      { return k&KeyL != 0 }

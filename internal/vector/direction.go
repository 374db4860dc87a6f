package vector

// Direction4 represents one of four cardinal directions.
type Direction4 int

// Cardinal directions in clockwise order.
const (
	Up Direction4 = iota
	Right
	Down
	Left
)

var directionNames = [...]string{"up", "right", "down", "left"}

func (d Direction4) String() string {
	if d < Up || d > Left {
		return "unknown"
	}
	return directionNames[d]
}

// RotateRight returns the direction turned clockwise by 90 degrees.
func (d Direction4) RotateRight() Direction4 {
	return (d + 1) % 4
}

// RotateLeft returns the direction turned counter clockwise by 90 degrees.
func (d Direction4) RotateLeft() Direction4 {
	return (d + 3) % 4
}

// Rotate180 returns the opposite direction.
func (d Direction4) Rotate180() Direction4 {
	return (d + 2) % 4
}

// Vector returns the unit step of the direction in screen space, where y
// grows downwards.
func (d Direction4) Vector() Vector2D[int16] {
	switch d {
	case Up:
		return Vector2D[int16]{Y: -1}
	case Right:
		return Vector2D[int16]{X: 1}
	case Down:
		return Vector2D[int16]{Y: 1}
	case Left:
		return Vector2D[int16]{X: -1}
	default:
		return Vector2D[int16]{}
	}
}

// AxisX is a direction on the horizontal axis.
type AxisX int

// Horizontal axis directions.
const (
	AxisLeft AxisX = iota
	AxisRight
)

// Delta returns the signed step of the direction.
func (a AxisX) Delta() int16 {
	if a == AxisLeft {
		return -1
	}
	return 1
}

// AxisY is a direction on the vertical axis.
type AxisY int

// Vertical axis directions.
const (
	AxisUp AxisY = iota
	AxisDown
)

// Delta returns the signed step of the direction, up being negative.
func (a AxisY) Delta() int16 {
	if a == AxisUp {
		return -1
	}
	return 1
}

package hardware

// ObjDisplayStyle selects how an object is rendered.
type ObjDisplayStyle uint16

// Object display styles.
const (
	ObjNormal ObjDisplayStyle = iota
	ObjAffine
	ObjNotDisplayed
	ObjDoubleAffine
)

// ObjShape is the aspect ratio class of an object.
type ObjShape uint16

// Object shapes.
const (
	ShapeSquare ObjShape = iota
	ShapeHorizontal
	ShapeVertical
)

// Object size classes, interpreted together with the shape.
const (
	S8x8   uint16 = 0
	S16x16 uint16 = 1
	S32x32 uint16 = 2
	S64x64 uint16 = 3
	H16x8  uint16 = 0
	H32x8  uint16 = 1
	H32x16 uint16 = 2
	H64x32 uint16 = 3
	V8x16  uint16 = 0
	V8x32  uint16 = 1
	V16x32 uint16 = 2
	V32x64 uint16 = 3
)

// objDimensions is indexed by shape and size class and contains width and height in pixels.
var objDimensions = [3][4][2]int{
	{{8, 8}, {16, 16}, {32, 32}, {64, 64}},
	{{16, 8}, {32, 8}, {32, 16}, {64, 32}},
	{{8, 16}, {8, 32}, {16, 32}, {32, 64}},
}

// ObjAttr0 contains the vertical position, display style and shape of an object.
type ObjAttr0 uint16

func (a ObjAttr0) Y() uint16              { return uint16(a & 0xFF) }
func (a ObjAttr0) Style() ObjDisplayStyle { return ObjDisplayStyle(a>>8) & 3 }
func (a ObjAttr0) Shape() ObjShape        { return ObjShape(a>>14) & 3 }

func (a ObjAttr0) WithY(v uint16) ObjAttr0 {
	return a&^0xFF | ObjAttr0(v&0xFF)
}

func (a ObjAttr0) WithStyle(s ObjDisplayStyle) ObjAttr0 {
	return a&^(3<<8) | ObjAttr0(s&3)<<8
}

func (a ObjAttr0) WithShape(s ObjShape) ObjAttr0 {
	return a&^(3<<14) | ObjAttr0(s&3)<<14
}

// ObjAttr1 contains the horizontal position, flips and size class of an object.
type ObjAttr1 uint16

func (a ObjAttr1) X() uint16    { return uint16(a & 0x1FF) }
func (a ObjAttr1) HFlip() bool  { return a&(1<<12) != 0 }
func (a ObjAttr1) VFlip() bool  { return a&(1<<13) != 0 }
func (a ObjAttr1) Size() uint16 { return uint16(a>>14) & 3 }

func (a ObjAttr1) WithX(v uint16) ObjAttr1 {
	return a&^0x1FF | ObjAttr1(v&0x1FF)
}

func (a ObjAttr1) WithHFlip(v bool) ObjAttr1 { return setBit(a, 1<<12, v) }
func (a ObjAttr1) WithVFlip(v bool) ObjAttr1 { return setBit(a, 1<<13, v) }

func (a ObjAttr1) WithSize(v uint16) ObjAttr1 {
	return a&^(3<<14) | ObjAttr1(v&3)<<14
}

// ObjAttr2 contains the tile, priority and palette bank of an object.
type ObjAttr2 uint16

func (a ObjAttr2) TileID() uint16  { return uint16(a & 0x3FF) }
func (a ObjAttr2) Priority() int   { return int(a>>10) & 3 }
func (a ObjAttr2) Palbank() uint16 { return uint16(a>>12) & 0xF }

func (a ObjAttr2) WithTileID(v uint16) ObjAttr2 {
	return a&^0x3FF | ObjAttr2(v&0x3FF)
}

func (a ObjAttr2) WithPriority(v int) ObjAttr2 {
	return a&^(3<<10) | ObjAttr2(v&3)<<10
}

func (a ObjAttr2) WithPalbank(v uint16) ObjAttr2 {
	return a&^(0xF<<12) | ObjAttr2(v&0xF)<<12
}

// ObjAttr is one hardware sprite descriptor.
type ObjAttr struct {
	Attr0 ObjAttr0
	Attr1 ObjAttr1
	Attr2 ObjAttr2
}

// Hidden returns whether the object is not displayed.
func (o ObjAttr) Hidden() bool {
	return o.Attr0.Style() == ObjNotDisplayed
}

// Dimensions returns the width and height of the object in pixels.
func (o ObjAttr) Dimensions() (int, int) {
	shape := o.Attr0.Shape()
	if shape > ShapeVertical {
		shape = ShapeSquare
	}
	d := objDimensions[shape][o.Attr1.Size()]
	return d[0], d[1]
}

// Package gfx converts images into 4 bits per pixel tile data and 15 bit
// color palettes as consumed by the video memory allocator.
package gfx

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	// register decoders for the asset formats
	_ "image/gif"
	_ "image/png"
	"io"

	"github.com/retroenv/gbatactics/internal/hardware"
)

const (
	subTileSize = 8
	// MaxColors is the number of usable colors of a palette bank, slot 0 is
	// reserved for the transparency key.
	MaxColors = 15
)

var (
	// ErrInvalidTileSize is returned for tile sizes that are not a multiple
	// of 8 or that do not divide the image.
	ErrInvalidTileSize = errors.New("invalid tile size")
	// ErrTooManyColors is returned for images with more opaque colors than a
	// palette bank can hold.
	ErrTooManyColors = errors.New("too many colors")
)

// Config controls the image conversion.
type Config struct {
	TileWidth    int // 0 uses the image width
	TileHeight   int // 0 uses the image height
	Transparency color.RGBA
}

// Image is a converted image.
type Image struct {
	Tiles      []uint32         // 8 words per 8x8 tile, low nibble is the left pixel
	Palette    []hardware.Color // colors for palette slots 1 and up
	TileWidth  int
	TileHeight int
	TileCount  int // number of tiles of the configured tile size
}

// NewConfig returns the default configuration, converting the whole image
// as one tile with magenta as transparency color.
func NewConfig() Config {
	return Config{
		Transparency: color.RGBA{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF},
	}
}

// WithTileSize returns the configuration with the given tile size.
func (c Config) WithTileSize(width, height int) Config {
	c.TileWidth = width
	c.TileHeight = height
	return c
}

// WithTransparencyColor returns the configuration with the given
// transparency color.
func (c Config) WithTransparencyColor(r, g, b uint8) Config {
	c.Transparency = color.RGBA{R: r, G: g, B: b, A: 0xFF}
	return c
}

// ConvertReader decodes an image and converts it.
func (c Config) ConvertReader(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return c.Convert(img)
}

// Convert splits the image into tiles of the configured size, in row major
// order. Tiles larger than 8x8 are emitted as row major 8x8 sub tiles, which
// matches the layout of 1D mapped sprites and 2x2 background meta tiles.
func (c Config) Convert(img image.Image) (*Image, error) {
	bounds := img.Bounds()
	tileWidth, tileHeight := c.TileWidth, c.TileHeight
	if tileWidth == 0 {
		tileWidth = bounds.Dx()
	}
	if tileHeight == 0 {
		tileHeight = bounds.Dy()
	}
	if tileWidth <= 0 || tileHeight <= 0 ||
		tileWidth%subTileSize != 0 || tileHeight%subTileSize != 0 ||
		bounds.Dx()%tileWidth != 0 || bounds.Dy()%tileHeight != 0 {
		return nil, fmt.Errorf("%w: %dx%d tiles for %dx%d image",
			ErrInvalidTileSize, tileWidth, tileHeight, bounds.Dx(), bounds.Dy())
	}

	conv := &converter{
		img:          img,
		transparency: c.Transparency,
		indexes:      map[hardware.Color]uint32{},
	}
	result := &Image{
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
	}

	for ty := bounds.Min.Y; ty < bounds.Max.Y; ty += tileHeight {
		for tx := bounds.Min.X; tx < bounds.Max.X; tx += tileWidth {
			for sy := 0; sy < tileHeight; sy += subTileSize {
				for sx := 0; sx < tileWidth; sx += subTileSize {
					if err := conv.appendTile(tx+sx, ty+sy); err != nil {
						return nil, err
					}
				}
			}
			result.TileCount++
		}
	}

	result.Tiles = conv.tiles
	result.Palette = conv.palette
	return result, nil
}

type converter struct {
	img          image.Image
	transparency color.RGBA
	indexes      map[hardware.Color]uint32
	palette      []hardware.Color
	tiles        []uint32
}

func (c *converter) appendTile(x, y int) error {
	for row := 0; row < subTileSize; row++ {
		var word uint32
		for col := 0; col < subTileSize; col++ {
			index, err := c.colorIndex(c.img.At(x+col, y+row))
			if err != nil {
				return fmt.Errorf("converting pixel %d,%d: %w", x+col, y+row, err)
			}
			word |= index << (4 * col)
		}
		c.tiles = append(c.tiles, word)
	}
	return nil
}

// colorIndex returns the palette slot of the pixel color, adding new colors
// to the palette in order of appearance.
func (c *converter) colorIndex(col color.Color) (uint32, error) {
	rgba := color.RGBAModel.Convert(col).(color.RGBA)
	if rgba.A < 0x80 ||
		(rgba.R == c.transparency.R && rgba.G == c.transparency.G && rgba.B == c.transparency.B) {
		return 0, nil
	}

	converted := hardware.RGB8(rgba.R, rgba.G, rgba.B)
	if index, ok := c.indexes[converted]; ok {
		return index, nil
	}
	if len(c.palette) == MaxColors {
		return 0, fmt.Errorf("%w: more than %d opaque colors", ErrTooManyColors, MaxColors)
	}

	c.palette = append(c.palette, converted)
	index := uint32(len(c.palette))
	c.indexes[converted] = index
	return index, nil
}

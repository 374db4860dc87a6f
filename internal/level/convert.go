package level

import (
	"errors"
	"fmt"
	"math"

	"github.com/lafriks/go-tiled"
	"github.com/retroenv/retrogolib/log"
)

const (
	// DefaultUnitName is used for objects without a name.
	DefaultUnitName = "Enemy"
	// BossProperty is the boolean object property that marks a boss unit.
	BossProperty = "boss"

	defaultUnitLevel = 1
	gridSize         = 16
	// objects are offset by half a cell so that slightly misplaced objects
	// snap to the closest cell.
	centerOffset = gridSize / 2
)

// ErrNoTileLayer is returned for maps without a finite tile layer.
var ErrNoTileLayer = errors.New("no tile layer is defined")

// Convert extracts the level data of a parsed TMX map. The first finite
// tile layer is the map, every object of every top level object group
// becomes a unit. Unsupported layers are skipped with a warning.
func Convert(logger *log.Logger, m *tiled.Map) (*Data, error) {
	data := &Data{}
	hasTileLayer := false

	for _, layer := range m.Layers {
		if m.Infinite {
			logger.Warn("Infinite maps are not supported", log.String("layer", layer.Name))
			continue
		}
		if hasTileLayer {
			logger.Warn("More than one tile layer, skipping extra layer", log.String("layer", layer.Name))
			continue
		}
		hasTileLayer = true

		if err := convertTileLayer(logger, m, layer, data); err != nil {
			return nil, fmt.Errorf("converting tile layer '%s': %w", layer.Name, err)
		}
	}

	for _, group := range m.ObjectGroups {
		for _, object := range group.Objects {
			data.Units = append(data.Units, convertObject(object))
		}
	}
	for _, layer := range m.ImageLayers {
		logger.Warn("Image layers are not supported", log.String("layer", layer.Name))
	}
	for _, group := range m.Groups {
		logger.Warn("Group layers are not supported", log.String("layer", group.Name))
	}

	if !hasTileLayer {
		return nil, ErrNoTileLayer
	}
	return data, nil
}

func convertTileLayer(logger *log.Logger, m *tiled.Map, layer *tiled.Layer, data *Data) error {
	width, height := m.Width, m.Height
	if width <= 0 || height <= 0 || width > math.MaxUint16 || height > math.MaxUint16 {
		return fmt.Errorf("invalid layer size %dx%d", width, height)
	}
	if len(layer.Tiles) != width*height {
		return fmt.Errorf("layer has %d tiles, expected %dx%d", len(layer.Tiles), width, height)
	}

	data.Width = uint16(width)
	data.Height = uint16(height)
	data.Map = make([]byte, 0, len(layer.Tiles))

	for i, tile := range layer.Tiles {
		var id uint32
		if tile == nil || tile.IsNil() {
			logger.Warn("Tile is blank",
				log.String("layer", layer.Name),
				log.Int("x", i%width),
				log.Int("y", i/width))
		} else {
			id = tile.ID
		}
		data.Map = append(data.Map, byte(id))
	}
	return nil
}

func convertObject(object *tiled.Object) UnitData {
	name := object.Name
	if name == "" {
		name = DefaultUnitName
	}

	return UnitData{
		Name:   name,
		X:      gridCoordinate(object.X),
		Y:      gridCoordinate(object.Y),
		IsBoss: boolProperty(object.Properties, BossProperty),
		Level:  defaultUnitLevel,
	}
}

// gridCoordinate converts an object pixel coordinate to a grid coordinate,
// saturating pixel values outside of the 16 bit range.
func gridCoordinate(pixel float64) uint16 {
	v := math.Max(0, math.Min(pixel+centerOffset, math.MaxUint16))
	return uint16(v) / gridSize
}

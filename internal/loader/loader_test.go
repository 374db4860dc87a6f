package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/gbatactics/internal/detector"
	"github.com/retroenv/gbatactics/internal/level"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

const testMap = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="3" height="1" tilewidth="16" tileheight="16" infinite="0">
 <tileset firstgid="1" source="tiles.tsx"/>
 <layer id="1" name="ground" width="3" height="1">
  <data encoding="csv">1,2,3</data>
 </layer>
 <objectgroup id="2" name="units">
  <object id="1" name="Scout" x="16" y="0"/>
 </objectgroup>
</map>`

const testTileset = `<?xml version="1.0" encoding="UTF-8"?>
<tileset version="1.10" name="tiles" tilewidth="16" tileheight="16" tilecount="4" columns="4">
 <image source="tiles.png" width="64" height="16"/>
</tileset>`

func TestLoad(t *testing.T) {
	logger := log.NewTestLogger(t)
	expected := &level.Data{
		Width:  3,
		Height: 1,
		Map:    []byte{0, 1, 2},
		Units:  []level.UnitData{{Name: "Scout", X: 1, Y: 0, Level: 1}},
	}

	t.Run("load tiled map", func(t *testing.T) {
		fileName := createTempFile(t, "level.tmx", []byte(testMap))
		// the external tileset is resolved next to the map file
		tilesetFile := filepath.Join(filepath.Dir(fileName), "tiles.tsx")
		assert.NoError(t, os.WriteFile(tilesetFile, []byte(testTileset), 0600))

		data, err := New(logger).Load(fileName, detector.TMX)
		assert.NoError(t, err)
		assert.Equal(t, expected, data)
	})

	t.Run("load converted level", func(t *testing.T) {
		fileName := filepath.Join(t.TempDir(), "level.json")
		file, err := os.Create(fileName)
		assert.NoError(t, err)
		assert.NoError(t, level.WriteJSON(file, expected))
		assert.NoError(t, file.Close())

		data, err := New(logger).Load(fileName, detector.JSON)
		assert.NoError(t, err)
		assert.Equal(t, expected, data)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New(logger).Load("/nonexistent/level.tmx", detector.TMX)
		assert.Error(t, err)
	})

	t.Run("error on invalid map", func(t *testing.T) {
		fileName := createTempFile(t, "level.tmx", []byte("<map"))

		_, err := New(logger).Load(fileName, detector.TMX)
		assert.ErrorContains(t, err, "parsing map")
	})

	t.Run("error on map without tile layer", func(t *testing.T) {
		fileName := createTempFile(t, "level.tmx", []byte(`<map width="1" height="1"></map>`))

		_, err := New(logger).Load(fileName, detector.TMX)
		assert.ErrorContains(t, err, "converting map")
	})

	t.Run("error on unknown format", func(t *testing.T) {
		fileName := createTempFile(t, "level.bin", []byte{1, 2, 3})

		_, err := New(logger).Load(fileName, detector.Unknown)
		assert.ErrorContains(t, err, "unsupported level format")
	})
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}

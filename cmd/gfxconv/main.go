// Package main implements a converter of images into 4 bits per pixel tile
// data and 15 bit color palettes
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/gbatactics/internal/cli"
	"github.com/retroenv/gbatactics/internal/config"
	"github.com/retroenv/gbatactics/internal/fileprocessor"
	"github.com/retroenv/gbatactics/internal/gfx"
	"github.com/retroenv/gbatactics/internal/options"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts, err := cli.ParseGraphicsFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, "gfxconv", opts.Quiet, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, "gfxconv", opts.Quiet, version, commit, date)

	if err := convertImage(logger, opts); err != nil {
		logger.Error("Converting failed", log.String("file", opts.Input), log.Err(err))
		os.Exit(1)
	}
}

func convertImage(logger *log.Logger, opts options.Graphics) error {
	width, height, err := config.ParseTileSize(opts.TileSize)
	if err != nil {
		return err
	}
	r, g, b, err := config.ParseColor(opts.Transparent)
	if err != nil {
		return err
	}
	cfg := gfx.NewConfig().
		WithTileSize(width, height).
		WithTransparencyColor(r, g, b)

	file, err := os.Open(opts.Input)
	if err != nil {
		return fmt.Errorf("opening file '%s': %w", opts.Input, err)
	}
	img, err := cfg.ConvertReader(file)
	_ = file.Close()
	if err != nil {
		return fmt.Errorf("converting image: %w", err)
	}

	base := opts.Output
	if base == "" {
		base = opts.Input[:len(opts.Input)-len(filepath.Ext(opts.Input))]
	}

	if err := writeFile(base+".4bpp", func(f *os.File) error { return gfx.WriteTiles(f, img.Tiles) }); err != nil {
		return err
	}
	if err := writeFile(base+".pal", func(f *os.File) error { return gfx.WritePalette(f, img.Palette) }); err != nil {
		return err
	}

	logger.Info("Image converted",
		log.String("tiles", base+".4bpp"),
		log.Int("tile_count", img.TileCount),
		log.Int("colors", len(img.Palette)))
	return nil
}

func writeFile(fileName string, write func(f *os.File) error) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", fileName, err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing file '%s': %w", fileName, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file '%s': %w", fileName, err)
	}
	return nil
}

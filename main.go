// Package main implements the tactics game host, running the game on an
// emulated handheld in a window, a terminal or headless.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/gbatactics/internal/assets"
	"github.com/retroenv/gbatactics/internal/cli"
	"github.com/retroenv/gbatactics/internal/config"
	"github.com/retroenv/gbatactics/internal/detector"
	"github.com/retroenv/gbatactics/internal/fileprocessor"
	"github.com/retroenv/gbatactics/internal/frame"
	"github.com/retroenv/gbatactics/internal/frontend/headless"
	"github.com/retroenv/gbatactics/internal/frontend/terminal"
	"github.com/retroenv/gbatactics/internal/frontend/window"
	"github.com/retroenv/gbatactics/internal/game"
	"github.com/retroenv/gbatactics/internal/hardware"
	"github.com/retroenv/gbatactics/internal/level"
	"github.com/retroenv/gbatactics/internal/loader"
	"github.com/retroenv/gbatactics/internal/options"
	"github.com/retroenv/gbatactics/internal/statsview"
	"github.com/retroenv/gbatactics/internal/video"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, "gbatactics", opts.Quiet, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, "gbatactics", opts.Quiet, version, commit, date)

	if opts.Statsview {
		statsview.Launch(logger)
	}

	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Game stopped", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	var clock hardware.Clock = hardware.NewRealtimeClock()
	if opts.Frontend == options.FrontendHeadless {
		clock = &hardware.FreeRunningClock{}
	}
	machine := hardware.New(clock)
	frame.Setup(machine)

	res, err := assets.Load()
	if err != nil {
		return fmt.Errorf("loading assets: %w", err)
	}
	data, err := loadLevel(logger, opts.Level)
	if err != nil {
		return err
	}

	g, err := game.New(video.New(machine), machine, data, res)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	loop := frame.New(logger, machine, g)

	logger.Debug("Starting frontend", log.String("frontend", opts.Frontend))

	switch opts.Frontend {
	case options.FrontendHeadless:
		return headless.Run(ctx, logger, loop, machine, opts.Frames, nil, opts.Screenshot)
	case options.FrontendTerminal:
		return terminal.Run(ctx, logger, loop, machine)
	default:
		return window.Run(ctx, logger, loop, machine, opts.Scale)
	}
}

// loadLevel loads the level file, the embedded debug level is used if no
// file is given.
func loadLevel(logger *log.Logger, fileName string) (*level.Data, error) {
	if fileName == "" {
		data, err := assets.DebugLevel(logger)
		if err != nil {
			return nil, fmt.Errorf("loading debug level: %w", err)
		}
		return data, nil
	}

	format := detector.New(logger).Detect(fileName)
	data, err := loader.New(logger).Load(fileName, format)
	if err != nil {
		return nil, fmt.Errorf("loading level: %w", err)
	}
	return data, nil
}

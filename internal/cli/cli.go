// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/gbatactics/internal/options"
)

// ParseFlags parses the command line flags of the game.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readProgramFlags(flags, &opts)

	if err := flags.Parse(os.Args[1:]); err != nil || flags.NArg() > 0 {
		return opts, &UsageError{flags: flags, usage: "gbatactics [options]"}
	}

	opts.Frontend = strings.ToLower(opts.Frontend)
	if err := validateChoice("frontend", opts.Frontend,
		options.FrontendWindow, options.FrontendTerminal, options.FrontendHeadless); err != nil {
		return opts, err
	}
	if opts.Scale < 1 {
		return opts, fmt.Errorf("invalid scale %d, must be at least 1", opts.Scale)
	}
	if opts.Frontend == options.FrontendHeadless && opts.Frames < 1 {
		return opts, fmt.Errorf("invalid frame count %d, must be at least 1", opts.Frames)
	}
	return opts, nil
}

// ParseConverterFlags parses the command line flags of the level converter.
func ParseConverterFlags() (options.Converter, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Converter
	readConverterFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	usage := &UsageError{flags: flags, usage: "levelconv [options] <file to convert>"}
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, usage
	}

	if err := validateArgs(args, usage); err != nil {
		return opts, err
	}

	opts.Format = strings.ToLower(opts.Format)
	if err := validateChoice("format", opts.Format, options.FormatJSON, options.FormatGo); err != nil {
		return opts, err
	}
	if opts.Verify && opts.Format != options.FormatJSON {
		return opts, fmt.Errorf("verification is only supported for the %s format", options.FormatJSON)
	}

	if opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}
	return opts, nil
}

// ParseGraphicsFlags parses the command line flags of the image converter.
func ParseGraphicsFlags() (options.Graphics, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Graphics
	readGraphicsFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	usage := &UsageError{flags: flags, usage: "gfxconv [options] <image to convert>"}
	if err != nil || len(args) == 0 {
		return opts, usage
	}
	if err := validateArgs(args, usage); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	usage string
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: %s\n\n", e.usage)
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks that no flags follow the file argument.
func validateArgs(args []string, usage *UsageError) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			usage.msg = fmt.Sprintf("Potential argument %s found after input file, please pass the input file as last argument", arg)
			return usage
		}
	}
	return nil
}

func validateChoice(name, value string, valid ...string) error {
	for _, v := range valid {
		if value == v {
			return nil
		}
	}
	return fmt.Errorf("unsupported %s: %s. Valid options: %s", name, value, strings.Join(valid, ", "))
}

func readProgramFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Level, "level", "", "level file to load, .tmx or .json (default: embedded debug level)")
	flags.StringVar(&opts.Screenshot, "screenshot", "", "write the last frame as PNG file (headless frontend)")
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendWindow, "frontend to use (window/terminal/headless)")
	flags.IntVar(&opts.Frames, "frames", 60, "number of frames to run (headless frontend)")
	flags.IntVar(&opts.Scale, "scale", 3, "window scale factor")
	flags.BoolVar(&opts.Statsview, "statsview", false, "run the runtime statistics server")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readConverterFlags(flags *flag.FlagSet, opts *options.Converter) {
	flags.StringVar(&opts.Input, "i", "", "name of the input .tmx level file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically output file naming, for example *.tmx")
	flags.StringVar(&opts.Memviz, "memviz", "", "write a graphviz dot file of the converted level data")
	flags.StringVar(&opts.Format, "format", options.FormatJSON, "output format (json/go)")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the written output by reading it back and comparing it")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readGraphicsFlags(flags *flag.FlagSet, opts *options.Graphics) {
	flags.StringVar(&opts.Output, "o", "", "output base name, .4bpp and .pal are appended (default: input name)")
	flags.StringVar(&opts.TileSize, "tile", "", "tile size as WxH, for example 16x16 (default: whole image)")
	flags.StringVar(&opts.Transparent, "transparent", "FF00FF", "transparency color as RRGGBB")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

// Package verification verifies that the written level file recreates the
// converted level.
package verification

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/gbatactics/internal/level"
	"github.com/retroenv/gbatactics/internal/options"
	"github.com/retroenv/retrogolib/log"
)

const maxLoggedMismatches = 10

// VerifyOutput reads back the written output file and compares it with the
// converted level.
func VerifyOutput(logger *log.Logger, opts options.Converter, expected *level.Data) error {
	if opts.Output == "" {
		return errors.New("can not verify console output")
	}
	if opts.Format != options.FormatJSON {
		return fmt.Errorf("can not verify %s output", opts.Format)
	}

	file, err := os.Open(opts.Output)
	if err != nil {
		return fmt.Errorf("opening output file '%s': %w", opts.Output, err)
	}
	defer func() { _ = file.Close() }()

	written, err := level.ReadJSON(file)
	if err != nil {
		return fmt.Errorf("reading output file for comparison: %w", err)
	}

	return compareLevels(logger, expected, written)
}

func compareLevels(logger *log.Logger, expected, written *level.Data) error {
	if expected.Width != written.Width || expected.Height != written.Height {
		return fmt.Errorf("size mismatch, expected %dx%d but got %dx%d",
			expected.Width, expected.Height, written.Width, written.Height)
	}
	if err := checkBufferEqual(logger, expected.Map, written.Map); err != nil {
		return fmt.Errorf("map mismatch: %w", err)
	}
	if len(expected.Units) != len(written.Units) {
		return fmt.Errorf("unit count mismatch, expected %d but got %d", len(expected.Units), len(written.Units))
	}
	for i, unit := range expected.Units {
		if unit != written.Units[i] {
			return fmt.Errorf("unit %d mismatch, expected %+v but got %+v", i, unit, written.Units[i])
		}
	}
	return nil
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs int
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs < maxLoggedMismatches {
			logger.Error("Tile mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d tile mismatches", diffs)
}

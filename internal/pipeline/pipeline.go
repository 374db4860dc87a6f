// Package pipeline orchestrates the level conversion workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/retroenv/gbatactics/internal/detector"
	"github.com/retroenv/gbatactics/internal/level"
	"github.com/retroenv/gbatactics/internal/loader"
	"github.com/retroenv/gbatactics/internal/options"
	"github.com/retroenv/gbatactics/internal/verification"
	"github.com/retroenv/gbatactics/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete level conversion workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new level conversion pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(logger),
	}
}

// Execute runs the complete conversion pipeline: detect, load, write and
// optionally dump and verify the level.
func (p *Pipeline) Execute(ctx context.Context, opts options.Converter, w io.Writer) (*level.Data, error) {
	format := p.detector.Detect(opts.Input)
	if format == detector.Unknown {
		return nil, fmt.Errorf("unsupported level file '%s'", opts.Input)
	}

	data, err := p.loader.Load(opts.Input, format)
	if err != nil {
		return nil, fmt.Errorf("loading level: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("converting level: %w", err)
	}

	p.printInfo(opts, data)

	wr := writer.New(data, w, writer.Options{
		Format:       opts.Format,
		VariableName: writer.VariableName(opts.Input),
	})
	if err := wr.Write(); err != nil {
		return nil, fmt.Errorf("writing level: %w", err)
	}

	if opts.Memviz != "" {
		if err := writeMemoryGraph(opts.Memviz, data); err != nil {
			return nil, err
		}
	}

	if opts.Verify {
		if err := verification.VerifyOutput(p.logger, opts, data); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	return data, nil
}

// writeMemoryGraph writes a graphviz dot file of the level data structure.
func writeMemoryGraph(fileName string, data *level.Data) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating memory graph file '%s': %w", fileName, err)
	}
	memviz.Map(file, data)
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing memory graph file '%s': %w", fileName, err)
	}
	return nil
}

// printInfo prints information about the level being processed.
func (p *Pipeline) printInfo(opts options.Converter, data *level.Data) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing level",
		log.String("file", opts.Input),
		log.Uint16("width", data.Width),
		log.Uint16("height", data.Height),
		log.Int("units", len(data.Units)),
		log.String("format", opts.Format),
	)
}

package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docbind/internal/config"
	"git.home.luguber.info/inful/docbind/internal/foundation/errors"
	"git.home.luguber.info/inful/docbind/internal/logfields"
	"git.home.luguber.info/inful/docbind/internal/metrics"
	"git.home.luguber.info/inful/docbind/internal/pipeline"
)

// createOutput opens the --output target.
var createOutput = func(path string) (io.WriteCloser, error) { return os.Create(path) }

// ProcessCmd implements the 'process' command.
type ProcessCmd struct {
	Profile string `short:"p" help:"Process only this profile"`
	Format  string `short:"f" help:"Output format (yaml|json)" default:"yaml" enum:"yaml,yml,json"`
	Output  string `short:"o" help:"Write records to this file instead of stdout" type:"path"`
}

func (p *ProcessCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return p.process(ctx, g, cfg)
}

func (p *ProcessCmd) process(ctx context.Context, g *Global, cfg *config.Config) error {
	format, err := pipeline.ParseFormat(p.Format)
	if err != nil {
		return err
	}

	reg, recorder := newRecorder()
	runID := uuid.NewString()
	report, err := pipeline.Run(ctx, cfg, pipeline.Options{
		Logger:   g.Logger,
		Recorder: recorder,
		RunID:    runID,
		Profile:  p.Profile,
	})
	if err != nil {
		return err
	}

	if err := p.write(g, report, format); err != nil {
		return err
	}

	if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
		return errors.WrapError(err, errors.CategoryOutput, "failed to write metrics textfile").
			WithContext("path", cfg.Metrics.Textfile).
			Build()
	}
	g.Logger.Info("Run complete", logfields.RunID(runID), logfields.Count(len(report.Profiles)))
	return nil
}

func (p *ProcessCmd) write(g *Global, report *pipeline.Report, format pipeline.Format) (err error) {
	if p.Output == "" {
		return report.Encode(g.stdout(), format)
	}

	f, err := createOutput(p.Output)
	if err != nil {
		return errors.FileSystemError("failed to create output file").WithCause(err).WithContext("path", p.Output).Build()
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.FileSystemError("failed to close output file").WithCause(cerr).WithContext("path", p.Output).Build()
		}
	}()
	return report.Encode(f, format)
}

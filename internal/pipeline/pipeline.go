// Package pipeline runs documentation processing for the configured
// profiles and renders the resulting records.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docbind/internal/config"
	"git.home.luguber.info/inful/docbind/internal/docs"
	"git.home.luguber.info/inful/docbind/internal/enumname"
	"git.home.luguber.info/inful/docbind/internal/foundation/errors"
	"git.home.luguber.info/inful/docbind/internal/functions"
	"git.home.luguber.info/inful/docbind/internal/logfields"
	"git.home.luguber.info/inful/docbind/internal/metrics"
)

// Options configures a run.
type Options struct {
	Logger   *slog.Logger
	Recorder metrics.Recorder
	// RunID identifies the run in logs and reports. Empty generates one.
	RunID string
	// Profile restricts the run to one profile. Empty runs all of them.
	Profile string
}

// FunctionDoc is the documentation record of one function.
type FunctionDoc struct {
	Name       string           `yaml:"name" json:"name"`
	Summary    string           `yaml:"summary" json:"summary"`
	Parameters []docs.Parameter `yaml:"parameters" json:"parameters"`
}

// ProfileReport holds the records and counters of one profile.
type ProfileReport struct {
	Profile    string        `yaml:"profile" json:"profile"`
	Functions  []FunctionDoc `yaml:"functions" json:"functions"`
	Stats      docs.Stats    `yaml:"stats" json:"stats"`
	DurationMS float64       `yaml:"duration_ms" json:"duration_ms"`
}

// Report is the outcome of a run.
type Report struct {
	RunID    string          `yaml:"run_id" json:"run_id"`
	Profiles []ProfileReport `yaml:"profiles" json:"profiles"`
}

// Run processes every selected profile of cfg. A fresh documentation
// Context is created per profile so no state leaks between runs.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Report, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	profiles := cfg.Profiles
	if opts.Profile != "" {
		p, ok := cfg.Profile(opts.Profile)
		if !ok {
			return nil, errors.NotFoundError("unknown profile").WithContext("profile", opts.Profile).Build()
		}
		profiles = []config.Profile{p}
	}

	logger := opts.Logger.With(logfields.RunID(opts.RunID))
	report := &Report{RunID: opts.RunID, Profiles: make([]ProfileReport, 0, len(profiles))}
	for _, p := range profiles {
		pr, err := RunProfile(ctx, p, logger, opts.Recorder)
		if err != nil {
			return nil, err
		}
		report.Profiles = append(report.Profiles, *pr)
	}
	return report, nil
}

// RunProfile processes the function list of one profile in declared order.
func RunProfile(ctx context.Context, p config.Profile, logger *slog.Logger, recorder metrics.Recorder) (*ProfileReport, error) {
	started := time.Now()
	logger = logger.With(logfields.Profile(p.Name))

	fns, err := functions.Load(p.Functions)
	if err != nil {
		return nil, err
	}

	docCtx, err := docs.NewContext(ContextOptions(p, logger, recorder))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryDocs, "failed to index documentation").
			WithContext("profile", p.Name).
			Build()
	}
	tr := enumname.New(p.TranslatorOptions())

	report := &ProfileReport{Profile: p.Name, Functions: make([]FunctionDoc, 0, len(fns))}
	for _, fn := range fns {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapError(err, errors.CategoryRuntime, "run cancelled").Build()
		}
		doc := docCtx.Process(fn, tr)
		report.Functions = append(report.Functions, FunctionDoc{
			Name:       fn.Name,
			Summary:    doc.Summary,
			Parameters: doc.Parameters,
		})
	}
	report.Stats = docCtx.Stats()
	report.DurationMS = float64(time.Since(started).Microseconds()) / 1000

	logger.Info("Profile processed",
		logfields.Count(len(report.Functions)),
		slog.Int("missing", report.Stats.Missing),
		slog.Int("malformed", report.Stats.Malformed),
		logfields.DurationMS(report.DurationMS))
	return report, nil
}

// ContextOptions maps a profile onto documentation Context options.
func ContextOptions(p config.Profile, logger *slog.Logger, recorder metrics.Recorder) docs.ContextOptions {
	return docs.ContextOptions{
		Profile:     p.Name,
		PrimaryDir:  p.Documentation.Primary,
		FallbackDir: p.Documentation.Fallback,
		FilePrefix:  p.Documentation.FilePrefix,
		Extractor: docs.ExtractorOptions{
			RewriteConstants: p.Compatibility.RewriteConstants,
			ConstantPrefix:   p.Enums.ConstantPrefix,
		},
		Logger:   logger,
		Recorder: recorder,
	}
}

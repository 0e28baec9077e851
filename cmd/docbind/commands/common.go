package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docbind/internal/config"
	"git.home.luguber.info/inful/docbind/internal/foundation/errors"
	"git.home.luguber.info/inful/docbind/internal/metrics"
)

// Global carries state shared by all subcommands.
type Global struct {
	Logger *slog.Logger
	// Stdout receives command output. Nil means os.Stdout.
	Stdout io.Writer
}

func (g *Global) stdout() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docbind.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Process   ProcessCmd   `cmd:"" help:"Extract documentation records for the configured functions"`
	Index     IndexCmd     `cmd:"" help:"List the resolved documentation file index"`
	Translate TranslateCmd `cmd:"" help:"Translate constant tokens into generated enum names"`
	Watch     WatchCmd     `cmd:"" help:"Re-run process whenever documentation or function lists change"`
	Init      InitCmd      `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; it installs a bootstrap logger until
// the configuration is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig loads the configuration and replaces the bootstrap logger with
// the one the logging section describes.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	g.Logger = cfg.Logging.NewLogger(os.Stderr, root.Verbose)
	slog.SetDefault(g.Logger)
	return cfg, nil
}

// newRecorder returns a Prometheus recorder on a private registry.
func newRecorder() (*prometheus.Registry, *metrics.PrometheusRecorder) {
	reg := prometheus.NewRegistry()
	return reg, metrics.NewPrometheusRecorder(reg)
}

// selectProfiles returns the named profile or all profiles.
func selectProfiles(cfg *config.Config, name string) ([]config.Profile, error) {
	if name == "" {
		return cfg.Profiles, nil
	}
	p, ok := cfg.Profile(name)
	if !ok {
		return nil, errUnknownProfile(name)
	}
	return []config.Profile{p}, nil
}

func errUnknownProfile(name string) error {
	return errors.NotFoundError("unknown profile").WithContext("profile", name).Build()
}

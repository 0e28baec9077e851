package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docbind/internal/config"
	"git.home.luguber.info/inful/docbind/internal/logfields"
	"git.home.luguber.info/inful/docbind/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	ProcessCmd `embed:""`
	Debounce   time.Duration `help:"Quiet period before re-running" default:"500ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.process(ctx, g, cfg); err != nil {
		g.Logger.Error("Initial run failed", logfields.Error(err))
	}

	profiles, err := selectProfiles(cfg, w.Profile)
	if err != nil {
		return err
	}
	watcher, err := watch.New(watch.Options{
		Paths:      watchPaths(root.Config, profiles),
		Debounce:   w.Debounce,
		Extensions: []string{".xml"},
		Logger:     g.Logger,
	})
	if err != nil {
		return err
	}

	g.Logger.Info("Watching for changes", logfields.Count(len(profiles)))
	return watcher.Run(ctx, func(ctx context.Context) error {
		cfg, err := loadConfig(g, root)
		if err != nil {
			return err
		}
		return w.process(ctx, g, cfg)
	})
}

func watchPaths(configPath string, profiles []config.Profile) []string {
	paths := []string{configPath}
	for _, p := range profiles {
		paths = append(paths, p.Functions, p.Documentation.Primary)
		if p.Documentation.Fallback != "" {
			if _, err := os.Stat(p.Documentation.Fallback); err == nil {
				paths = append(paths, p.Documentation.Fallback)
			}
		}
	}
	return paths
}

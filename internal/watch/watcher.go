// Package watch re-runs documentation processing when the files that feed
// it change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docbind/internal/foundation/errors"
	"git.home.luguber.info/inful/docbind/internal/logfields"
)

// DefaultDebounce coalesces bursts of editor writes into one run.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Paths are files or directories to observe. Directories are watched
	// recursively; for files the parent directory is watched and events are
	// filtered by name.
	Paths    []string
	Debounce time.Duration
	// Extensions limits directory events to these file extensions. Empty
	// accepts all files.
	Extensions []string
	Logger     *slog.Logger
}

// Watcher calls a function after observed files change.
type Watcher struct {
	opts    Options
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	files   map[string]struct{}
	dirs    map[string]struct{}
	trigger chan struct{}
}

// New creates a Watcher and registers all paths.
func New(opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	w := &Watcher{
		opts:    opts,
		logger:  opts.Logger,
		watcher: fw,
		files:   make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		trigger: make(chan struct{}, 1),
	}
	for _, p := range opts.Paths {
		if p == "" {
			continue
		}
		if err := w.add(p); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.FileSystemError("failed to resolve watch path").WithCause(err).WithContext("path", path).Build()
	}
	info, err := os.Stat(abs)
	if err != nil {
		return errors.FileSystemError("failed to stat watch path").WithCause(err).WithContext("path", path).Build()
	}
	if !info.IsDir() {
		w.files[abs] = struct{}{}
		return w.addDir(filepath.Dir(abs))
	}
	w.dirs[abs] = struct{}{}
	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.addDir(p)
		}
		return nil
	})
}

func (w *Watcher) addDir(dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return errors.FileSystemError("failed to watch directory").WithCause(err).WithContext("path", dir).Build()
	}
	w.logger.Debug("Watching directory", logfields.Path(dir))
	return nil
}

// Run blocks until ctx is done, calling fn once per debounced batch of
// relevant changes. Errors from fn are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		case <-w.trigger:
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.opts.Debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			w.logger.Info("Change detected, processing")
			if err := fn(ctx); err != nil {
				w.logger.Error("Processing after change failed", logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create && w.underDir(event.Name) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addDir(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
			}
			return
		}
	}
	if !w.relevant(event.Name) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	w.logger.Debug("File change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

func (w *Watcher) relevant(name string) bool {
	if _, ok := w.files[name]; ok {
		return true
	}
	if !w.underDir(name) {
		return false
	}
	if len(w.opts.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range w.opts.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (w *Watcher) underDir(name string) bool {
	for dir := range w.dirs {
		if name == dir || strings.HasPrefix(name, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

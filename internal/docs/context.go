package docs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	derrors "git.home.luguber.info/inful/docbind/internal/docs/errors"
	"git.home.luguber.info/inful/docbind/internal/enumname"
	"git.home.luguber.info/inful/docbind/internal/logfields"
	"git.home.luguber.info/inful/docbind/internal/metrics"
)

// ContextOptions configures a documentation Context.
type ContextOptions struct {
	Profile     string
	PrimaryDir  string
	FallbackDir string
	// FilePrefix is prepended to function names to form file names ("gl").
	FilePrefix string
	Extractor  ExtractorOptions
	Logger     *slog.Logger
	Recorder   metrics.Recorder
}

// Stats counts Process outcomes for one run.
type Stats struct {
	Lookups   int `json:"lookups" yaml:"lookups"`
	CacheHits int `json:"cache_hits" yaml:"cache_hits"`
	Resolved  int `json:"resolved" yaml:"resolved"`
	Missing   int `json:"missing" yaml:"missing"`
	Malformed int `json:"malformed" yaml:"malformed"`
}

// lastFile is the single-slot cache of the most recently parsed file.
type lastFile struct {
	path string
	root *Node
	err  error
}

// Context owns the documentation state of one generation run: the file
// index, the per-function cache and the last-file slot. Create one per run
// and profile; it is not safe for concurrent use.
type Context struct {
	opts       ContextOptions
	index      *FileIndex
	normalizer *Normalizer
	extractor  *Extractor
	logger     *slog.Logger
	recorder   metrics.Recorder

	cache map[string]*Documentation
	last  lastFile
	stats Stats

	readFile func(string) ([]byte, error)
}

// NewContext scans the documentation directories and returns a Context ready
// to process functions.
func NewContext(opts ContextOptions) (*Context, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	logger := opts.Logger
	if opts.Profile != "" {
		logger = logger.With(logfields.Profile(opts.Profile))
	}

	index, err := BuildIndex(opts.PrimaryDir, opts.FallbackDir)
	if err != nil {
		return nil, err
	}
	opts.Recorder.SetIndexSize(opts.Profile, index.Len())
	logger.Info("Documentation index built",
		logfields.Count(index.Len()),
		slog.String("primary", opts.PrimaryDir),
		slog.String("fallback", opts.FallbackDir))

	return &Context{
		opts:       opts,
		index:      index,
		normalizer: NewNormalizer(logger, opts.Recorder),
		extractor:  NewExtractor(opts.Extractor),
		logger:     logger,
		recorder:   opts.Recorder,
		cache:      make(map[string]*Documentation),
		readFile:   os.ReadFile,
	}, nil
}

// Index returns the file index built for this run.
func (c *Context) Index() *FileIndex { return c.index }

// Stats returns the outcome counters accumulated so far.
func (c *Context) Stats() Stats { return c.stats }

// Process returns the documentation of fn. It never fails: functions without
// a usable documentation file get EmptyDocumentation. Results are cached by
// fn.Name, so repeated calls return the identical value.
func (c *Context) Process(fn Function, tr enumname.Translator) *Documentation {
	c.stats.Lookups++
	if doc, ok := c.cache[fn.Name]; ok {
		c.stats.CacheHits++
		c.recorder.IncLookup(c.opts.Profile, metrics.LookupCacheHit)
		return doc
	}

	doc, err := c.document(fn, tr)
	switch {
	case err == nil:
		c.stats.Resolved++
		c.recorder.IncLookup(c.opts.Profile, metrics.LookupResolved)
	case errors.Is(err, derrors.ErrMissingDocumentation):
		c.stats.Missing++
		c.recorder.IncLookup(c.opts.Profile, metrics.LookupMissing)
		c.logger.Debug("No documentation for function", logfields.Function(fn.Name))
		doc = EmptyDocumentation(fn)
	default:
		c.stats.Malformed++
		c.recorder.IncLookup(c.opts.Profile, metrics.LookupMalformed)
		c.logger.Error("Unusable documentation for function", logfields.Function(fn.Name), logfields.Error(err))
		doc = EmptyDocumentation(fn)
	}

	c.cache[fn.Name] = doc
	return doc
}

func (c *Context) document(fn Function, tr enumname.Translator) (*Documentation, error) {
	path, tier, ok := c.index.Resolve(c.opts.FilePrefix, fn)
	if !ok {
		return nil, fmt.Errorf("%w: %s", derrors.ErrMissingDocumentation, fn.Name)
	}
	c.recorder.IncResolveTier(c.opts.Profile, tier)

	root, err := c.load(path)
	if err != nil {
		return nil, err
	}
	doc, err := c.extractor.Extract(root, tr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// load reads, normalizes and parses path, reusing the previous result when
// the same file is requested twice in a row.
func (c *Context) load(path string) (*Node, error) {
	if c.last.path == path {
		return c.last.root, c.last.err
	}

	started := time.Now()
	root, err := c.parseFile(path)
	c.recorder.ObserveDocumentDuration(time.Since(started))

	c.last = lastFile{path: path, root: root, err: err}
	return root, err
}

func (c *Context) parseFile(path string) (*Node, error) {
	raw, err := c.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, path, err)
	}

	logger := c.logger.With(logfields.Path(path))
	normalized := c.normalizer.WithLogger(logger).Normalize(string(raw))

	root, err := Parse(normalized)
	if err != nil {
		logger.Error("Failed to parse normalized documentation",
			logfields.Error(err),
			logfields.Dump(normalized))
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

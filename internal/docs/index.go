package docs

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	derrors "git.home.luguber.info/inful/docbind/internal/docs/errors"
	"git.home.luguber.info/inful/docbind/internal/logfields"
)

// docExtension is the extension of indexed documentation files.
const docExtension = ".xml"

// FileIndex maps documentation file base names (glBindBuffer.xml) to
// absolute paths. It is built once and read-only afterwards.
type FileIndex struct {
	paths map[string]string
}

// BuildIndex scans primary, then fallback, and records every .xml file.
// The first occurrence of a base name wins, so primary entries shadow
// fallback entries. An empty or missing fallback directory is tolerated; a
// missing primary directory is an error.
func BuildIndex(primary, fallback string) (*FileIndex, error) {
	idx := &FileIndex{paths: make(map[string]string)}

	if err := idx.scan(primary); err != nil {
		return nil, err
	}

	if fallback == "" {
		return idx, nil
	}
	if _, err := os.Stat(fallback); os.IsNotExist(err) {
		slog.Warn("Fallback documentation directory not found", logfields.Path(fallback))
		return idx, nil
	}
	if err := idx.scan(fallback); err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *FileIndex) scan(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", derrors.ErrIndexScanFailed, dir, err)
	}

	added := 0
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), docExtension) {
			return nil
		}
		if _, exists := idx.paths[d.Name()]; exists {
			slog.Debug("Documentation file shadowed", logfields.File(d.Name()), logfields.Path(path))
			return nil
		}
		idx.paths[d.Name()] = path
		added++
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", derrors.ErrIndexScanFailed, dir, err)
	}

	slog.Debug("Indexed documentation directory", logfields.Path(abs), logfields.Count(added))
	return nil
}

// Lookup returns the absolute path recorded for a base name.
func (idx *FileIndex) Lookup(name string) (string, bool) {
	path, ok := idx.paths[name]
	return path, ok
}

// Len returns the number of indexed files.
func (idx *FileIndex) Len() int {
	return len(idx.paths)
}

// Names returns all indexed base names in sorted order.
func (idx *FileIndex) Names() []string {
	names := make([]string, 0, len(idx.paths))
	for name := range idx.paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Candidates returns the file names tried for fn, in resolution order:
// prefix+Name, prefix+TrimmedName, prefix+TrimmedName without trailing digits.
// Duplicates are omitted.
func Candidates(prefix string, fn Function) []string {
	stems := lookupStems(fn)
	out := make([]string, 0, len(stems))
	seen := make(map[string]struct{}, len(stems))
	for _, stem := range stems {
		if stem == "" {
			continue
		}
		name := prefix + stem + docExtension
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Resolve returns the first candidate of fn present in the index together
// with its 1-based tier (1 = full name, 2 = trimmed, 3 = digits removed).
func (idx *FileIndex) Resolve(prefix string, fn Function) (path string, tier int, ok bool) {
	for i, stem := range lookupStems(fn) {
		if stem == "" {
			continue
		}
		if p, found := idx.Lookup(prefix + stem + docExtension); found {
			return p, i + 1, true
		}
	}
	return "", 0, false
}

func lookupStems(fn Function) [3]string {
	trimmed := fn.Trimmed()
	return [3]string{fn.Name, trimmed, strings.TrimRight(trimmed, "0123456789")}
}

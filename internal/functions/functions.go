// Package functions loads the upstream function lists that drive a
// documentation run.
package functions

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docbind/internal/docs"
	"git.home.luguber.info/inful/docbind/internal/foundation/errors"
)

// Load reads a YAML function list from path.
func Load(path string) ([]docs.Function, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("function list not found").WithCause(err).WithContext("path", path).Build()
		}
		return nil, errors.FileSystemError("failed to read function list").WithCause(err).WithContext("path", path).Build()
	}
	fns, err := Decode(bytes.NewReader(data))
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("path", path)
		}
		return nil, err
	}
	return fns, nil
}

// Decode parses a YAML sequence of functions and validates it: every entry
// needs a name and names must be unique.
func Decode(r io.Reader) ([]docs.Function, error) {
	var fns []docs.Function
	if err := yaml.NewDecoder(r).Decode(&fns); err != nil && err != io.EOF {
		return nil, errors.ValidationError("invalid function list").WithCause(err).Build()
	}

	seen := make(map[string]struct{}, len(fns))
	for i, fn := range fns {
		if fn.Name == "" {
			return nil, errors.ValidationError("function name cannot be empty").WithContext("index", i).Build()
		}
		if _, dup := seen[fn.Name]; dup {
			return nil, errors.ValidationError("duplicate function name").WithContext("function", fn.Name).Build()
		}
		seen[fn.Name] = struct{}{}
	}
	if fns == nil {
		fns = []docs.Function{}
	}
	return fns, nil
}

package pipeline

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docbind/internal/foundation/errors"
	"git.home.luguber.info/inful/docbind/internal/foundation/normalization"
)

// Format is an output encoding of a Report.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var formatNormalizer = normalization.NewNormalizer(map[string]Format{
	"yaml": FormatYAML,
	"yml":  FormatYAML,
	"json": FormatJSON,
}, FormatYAML)

// ParseFormat validates an output format name. Empty selects YAML.
func ParseFormat(raw string) (Format, error) {
	f, err := formatNormalizer.NormalizeWithError(raw)
	if err != nil {
		return "", errors.ValidationError("invalid output format").WithCause(err).Build()
	}
	return f, nil
}

// Encode writes r to w in the given format.
func (r *Report) Encode(w io.Writer, format Format) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(r)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(r); err == nil {
			err = enc.Close()
		}
	}
	if err != nil {
		return errors.OutputError("failed to encode report").WithCause(err).Build()
	}
	return nil
}

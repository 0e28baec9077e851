package config

import (
	"git.home.luguber.info/inful/docbind/internal/foundation/errors"
)

// Validate checks the structural rules of a configuration.
func Validate(cfg *Config) error {
	if _, err := logLevelNormalizer.NormalizeWithError(cfg.Logging.Level); err != nil {
		return errors.ValidationError("invalid logging.level").WithCause(err).Build()
	}
	if _, err := logFormatNormalizer.NormalizeWithError(cfg.Logging.Format); err != nil {
		return errors.ValidationError("invalid logging.format").WithCause(err).Build()
	}

	if len(cfg.Profiles) == 0 {
		return errors.ValidationError("at least one profile must be configured").Build()
	}
	seen := make(map[string]struct{}, len(cfg.Profiles))
	for i, p := range cfg.Profiles {
		if p.Name == "" {
			return errors.ValidationError("profile name cannot be empty").WithContext("index", i).Build()
		}
		if _, dup := seen[p.Name]; dup {
			return errors.ValidationError("duplicate profile name").WithContext("profile", p.Name).Build()
		}
		seen[p.Name] = struct{}{}

		if p.Functions == "" {
			return errors.ValidationError("profile functions file is required").WithContext("profile", p.Name).Build()
		}
		if p.Documentation.Primary == "" {
			return errors.ValidationError("profile documentation.primary is required").WithContext("profile", p.Name).Build()
		}
	}
	return nil
}

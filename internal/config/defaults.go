package config

// applyDefaults normalizes the logging section. documentation.file_prefix has
// no default: an empty prefix looks up "<Name>.xml".
func applyDefaults(cfg *Config) {
	cfg.Logging.Level = string(NormalizeLogLevel(cfg.Logging.Level))
	cfg.Logging.Format = string(NormalizeLogFormat(cfg.Logging.Format))
}

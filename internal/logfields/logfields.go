package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyProfile    = "profile"
	KeyFunction   = "function"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyStage      = "stage"
	KeyToken      = "token"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyOffset     = "offset"
	KeyDump       = "document"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Profile(name string) slog.Attr   { return slog.String(KeyProfile, name) }
func Function(name string) slog.Attr  { return slog.String(KeyFunction, name) }
func File(name string) slog.Attr      { return slog.String(KeyFile, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Token(t string) slog.Attr        { return slog.String(KeyToken, t) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Offset(n int) slog.Attr          { return slog.Int(KeyOffset, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// maxDump bounds document dumps attached to parse failures.
const maxDump = 2048

// Dump attaches a best-effort excerpt of a document that failed to parse.
func Dump(text string) slog.Attr {
	if len(text) > maxDump {
		text = text[:maxDump] + "...(truncated)"
	}
	return slog.String(KeyDump, text)
}

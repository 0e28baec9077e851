package docs

import (
	"log/slog"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docbind/internal/metrics"
)

// namedEntities resolves the character references reference pages use
// without declaring them. Comparison operators map onto predefined XML
// entities so the text stays well-formed.
var namedEntities = strings.NewReplacer(
	"&epsi;", "epsilon",
	"&Epsi;", "epsilon",
	"&plusmn;", "+-",
	"&PlusMinus;", "+-",
	"&infin;", "infinity",
	"&copy;", "copyright",
	"&ge;", "&gt;=",
	"&le;", "&lt;=",
)

var (
	// linkPrefixes matches the xlink: and xi: prefixes on element and attribute names.
	linkPrefixes = regexp.MustCompile(`(</?|\s)(?:xlink|xi):`)
	xmlnsDecl    = regexp.MustCompile(`\s+xmlns\s*=\s*(?:"[^"]*"|'[^']*')`)
	entityRef    = regexp.MustCompile(`&[A-Za-z_][A-Za-z0-9._-]*;`)
)

// predefinedEntities survive entity removal; the XML decoder resolves them.
var predefinedEntities = map[string]struct{}{
	"&lt;": {}, "&gt;": {}, "&amp;": {}, "&quot;": {}, "&apos;": {},
}

// Normalizer strips markup noise from raw documentation text so that it can
// be parsed strictly without a DTD.
type Normalizer struct {
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewNormalizer creates a Normalizer. Nil arguments select slog.Default and
// metrics.NoopRecorder.
func NewNormalizer(logger *slog.Logger, recorder metrics.Recorder) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Normalizer{logger: logger, recorder: recorder}
}

// WithLogger returns a copy of n that logs to logger.
func (n *Normalizer) WithLogger(logger *slog.Logger) *Normalizer {
	cp := *n
	cp.logger = logger
	return &cp
}

// Normalize returns raw with named entities resolved, linking prefixes,
// DOCTYPE, default namespace declarations and undeclared entity references
// removed, and equation markup replaced by plain text.
func (n *Normalizer) Normalize(raw string) string {
	text := namedEntities.Replace(raw)
	text = linkPrefixes.ReplaceAllString(text, "$1")
	text = removeDoctype(text)
	text = xmlnsDecl.ReplaceAllString(text, "")
	text = removeUndeclaredEntities(text)
	return n.replaceEquations(text)
}

// removeDoctype deletes every <!DOCTYPE ...> declaration including an
// internal subset. Quotes and brackets are honoured when looking for the
// closing '>'; an unterminated declaration is removed up to the end.
func removeDoctype(text string) string {
	const marker = "<!DOCTYPE"
	for {
		start := strings.Index(text, marker)
		if start < 0 {
			return text
		}
		end := directiveEnd(text, start+len(marker))
		text = text[:start] + text[end:]
	}
}

// directiveEnd returns the offset just past the '>' closing a declaration
// whose body starts at from, or len(text).
func directiveEnd(text string, from int) int {
	depth := 0
	var quote byte
	for i := from; i < len(text); i++ {
		c := text[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			if depth > 0 {
				depth--
			}
		case c == '>' && depth == 0:
			return i + 1
		}
	}
	return len(text)
}

func removeUndeclaredEntities(text string) string {
	return entityRef.ReplaceAllStringFunc(text, func(ref string) string {
		if _, ok := predefinedEntities[ref]; ok {
			return ref
		}
		return ""
	})
}

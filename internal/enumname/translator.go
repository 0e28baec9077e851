package enumname

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EscapeMarker is prepended to names that would otherwise start with a digit
// or collide with a reserved word.
const EscapeMarker = "_"

// Translator maps a raw constant token to its canonical generated name.
// declaration reports whether the name is being declared (an enum member
// definition) rather than referenced.
type Translator interface {
	Translate(raw string, declaration bool) string
}

// Func adapts a plain function to the Translator interface.
type Func func(raw string, declaration bool) string

// Translate calls f.
func (f Func) Translate(raw string, declaration bool) string { return f(raw, declaration) }

// Options configures a Default translator.
type Options struct {
	// ConstantPrefix is stripped from tokens that start with it (e.g. "GL_").
	ConstantPrefix string
	// Reserved lists words that must be escaped in declaration context.
	// Nil selects GoKeywords.
	Reserved []string
}

// GoKeywords are the reserved words of the generated Go bindings.
var GoKeywords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type", "var",
}

// Default is the stock Translator. Results are memoized per (token, context);
// the memo is safe for concurrent use.
type Default struct {
	prefix   string
	reserved map[string]struct{}
	memo     *xsync.MapOf[string, string]
}

// New creates a Default translator.
func New(opts Options) *Default {
	words := opts.Reserved
	if words == nil {
		words = GoKeywords
	}
	reserved := make(map[string]struct{}, len(words))
	for _, w := range words {
		reserved[strings.ToLower(w)] = struct{}{}
	}
	return &Default{
		prefix:   opts.ConstantPrefix,
		reserved: reserved,
		memo:     xsync.NewMapOf[string, string](),
	}
}

// ConstantPrefix returns the configured prefix.
func (d *Default) ConstantPrefix() string { return d.prefix }

// Translate implements Translator.
func (d *Default) Translate(raw string, declaration bool) string {
	key := memoKey(raw, declaration)
	name, _ := d.memo.LoadOrCompute(key, func() string {
		return d.translate(raw, declaration)
	})
	return name
}

func memoKey(raw string, declaration bool) string {
	if declaration {
		return "d\x00" + raw
	}
	return "r\x00" + raw
}

func (d *Default) translate(raw string, declaration bool) string {
	token := strings.TrimSpace(raw)
	if d.prefix != "" {
		token = strings.TrimPrefix(token, d.prefix)
	}

	name := convert(token)
	if name == "" {
		return ""
	}
	if d.mustEscape(name, declaration) {
		return EscapeMarker + name
	}
	return name
}

func (d *Default) mustEscape(name string, declaration bool) bool {
	first, _ := utf8.DecodeRuneInString(name)
	if unicode.IsDigit(first) {
		return true
	}
	if !declaration {
		return false
	}
	_, ok := d.reserved[strings.ToLower(name)]
	return ok
}

// convert applies the naming convention to an underscore separated token.
// Each word is mapped by wordCase and the words are concatenated. When the
// concatenation would itself be recased on a second pass (all words are
// single letters or digit groups, as in "A_B"), the words stay joined by
// underscores instead, so convert(convert(x)) == convert(x).
// Casers are created per call because they carry state.
func convert(token string) string {
	words := strings.FieldsFunc(token, func(r rune) bool { return r == '_' })
	if len(words) == 0 {
		return ""
	}
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	for i, w := range words {
		words[i] = wordCase(w, upper, lower)
	}
	joined := strings.Join(words, "")
	if len(words) > 1 && wordCase(joined, upper, lower) != joined {
		return strings.Join(words, "_")
	}
	return joined
}

// wordCase upper-cases the first rune of w. Words whose remainder has no
// lower-case letter are treated as ALL-CAPS and the remainder is lowered.
// Words starting with a digit are kept verbatim. wordCase is a fixed point:
// wordCase(wordCase(w)) == wordCase(w).
func wordCase(w string, upper, lower cases.Caser) string {
	first, size := utf8.DecodeRuneInString(w)
	if unicode.IsDigit(first) {
		return w
	}
	head, rest := upper.String(w[:size]), w[size:]
	if hasLower(rest) {
		return head + rest
	}
	return head + lower.String(rest)
}

func hasLower(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

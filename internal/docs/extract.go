package docs

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	derrors "git.home.luguber.info/inful/docbind/internal/docs/errors"
	"git.home.luguber.info/inful/docbind/internal/enumname"
)

// DocBook element and attribute names the extractor relies on.
const (
	elemNameDiv      = "refnamediv"
	elemPurpose      = "refpurpose"
	elemSection      = "refsect1"
	elemEntry        = "varlistentry"
	elemTerm         = "term"
	elemParameter    = "parameter"
	elemVarname      = "varname"
	elemListItem     = "listitem"
	elemConstant     = "constant"
	parametersPrefix = "parameters"
)

var labelSeparators = regexp.MustCompile(`[\s,;]+`)

// ExtractorOptions configures an Extractor.
type ExtractorOptions struct {
	// RewriteConstants enables rewriting <constant> text into generated enum
	// member spelling.
	RewriteConstants bool
	// ConstantPrefix is stripped from constants before translation.
	ConstantPrefix string
}

// Extractor turns a parsed reference page into Documentation.
type Extractor struct {
	opts ExtractorOptions
}

// NewExtractor creates an Extractor.
func NewExtractor(opts ExtractorOptions) *Extractor {
	return &Extractor{opts: opts}
}

// Extract reads the summary from refnamediv/refpurpose and the parameter
// descriptions from every refsect1 whose id starts with "parameters".
// The tree is not modified. A missing summary is ErrMalformedDocument; a
// missing parameters section yields no parameters.
func (e *Extractor) Extract(root *Node, tr enumname.Translator) (*Documentation, error) {
	rewrite := e.constantRewriter(tr)

	purpose := root.Find(elemNameDiv).Find(elemPurpose)
	if purpose == nil {
		return nil, fmt.Errorf("%w: no %s/%s element", derrors.ErrMalformedDocument, elemNameDiv, elemPurpose)
	}

	doc := &Documentation{
		Summary:    capitalize(normalizeWhitespace(purpose.TextWith(rewrite))),
		Parameters: make([]Parameter, 0),
	}

	seen := make(map[Parameter]struct{})
	for _, section := range root.FindAll(elemSection) {
		if !isParametersSection(section) {
			continue
		}
		for _, entry := range section.FindAll(elemEntry) {
			for _, param := range entryParameters(entry, rewrite) {
				if _, dup := seen[param]; dup {
					continue
				}
				seen[param] = struct{}{}
				doc.Parameters = append(doc.Parameters, param)
			}
		}
	}
	return doc, nil
}

// constantRewriter renders <constant> elements through the translator so
// documented constants match the generated enum members.
func (e *Extractor) constantRewriter(tr enumname.Translator) func(*Node) (string, bool) {
	if !e.opts.RewriteConstants || tr == nil {
		return nil
	}
	return func(n *Node) (string, bool) {
		if n.Name != elemConstant {
			return "", false
		}
		token := strings.TrimSpace(n.InnerText())
		if token == "" {
			return "", false
		}
		if e.opts.ConstantPrefix != "" {
			token = strings.TrimPrefix(token, e.opts.ConstantPrefix)
		}
		return tr.Translate(token, false), true
	}
}

// isParametersSection matches on a fixed-length id prefix so that variants
// such as "parameters2" are accepted.
func isParametersSection(n *Node) bool {
	id := n.Attribute("id")
	return len(id) >= len(parametersPrefix) && id[:len(parametersPrefix)] == parametersPrefix
}

// entryParameters returns one Parameter per label of a varlistentry. An
// entry may carry several <term> elements, and a term may name several
// parameters ("<parameter>x</parameter>, <parameter>y</parameter>"); all of
// them share the listitem description.
func entryParameters(entry *Node, rewrite func(*Node) (string, bool)) []Parameter {
	var names []string
	for _, term := range entry.Children {
		if term.Name != elemTerm {
			continue
		}
		names = append(names, termLabels(term)...)
	}
	if len(names) == 0 {
		return nil
	}

	var description string
	if item := entry.Child(elemListItem); item != nil {
		description = normalizeWhitespace(item.TextWith(rewrite))
	}
	params := make([]Parameter, 0, len(names))
	for _, name := range names {
		params = append(params, Parameter{Name: name, Description: description})
	}
	return params
}

// termLabels returns the normalized <parameter> and <varname> labels of a
// term in document order, or the whole term text when it has neither.
func termLabels(term *Node) []string {
	var labels []string
	term.walk(func(n *Node) bool {
		if n.Name != elemParameter && n.Name != elemVarname {
			return true
		}
		if name := NormalizeParameterName(n.InnerText()); name != "" {
			labels = append(labels, name)
		}
		return false
	})
	if len(labels) > 0 {
		return labels
	}
	if name := NormalizeParameterName(term.InnerText()); name != "" {
		return []string{name}
	}
	return nil
}

// NormalizeParameterName collapses whitespace and separators in a documented
// parameter label and joins the remaining words with underscores, so
// "image depth" becomes "image_depth".
func NormalizeParameterName(raw string) string {
	collapsed := strings.TrimSpace(labelSeparators.ReplaceAllString(raw, " "))
	return strings.ReplaceAll(collapsed, " ", "_")
}

// normalizeWhitespace converts carriage returns to newlines, trims every
// line, drops empty lines and joins the rest with single spaces.
func normalizeWhitespace(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

package docs

import (
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	derrors "git.home.luguber.info/inful/docbind/internal/docs/errors"
	"git.home.luguber.info/inful/docbind/internal/foundation"
	"git.home.luguber.info/inful/docbind/internal/logfields"
	"git.home.luguber.info/inful/docbind/internal/metrics"
)

// eqnMarker opens the payload of a plain-text equation comment.
const eqnMarker = "eqn:"

var (
	equationOpen  = regexp.MustCompile(`<(mml:math|inlineequation)(?:\s[^>]*)?/?>`)
	equationClose = map[string]*regexp.Regexp{
		"mml:math":       regexp.MustCompile(`</\s*mml:math\s*>`),
		"inlineequation": regexp.MustCompile(`</\s*inlineequation\s*>`),
	}
)

var (
	markupTag = regexp.MustCompile(`<[^<>]*>`)
	// mathPrefixes matches the mml: prefix on the element and attribute
	// names of a single tag.
	mathPrefixes = regexp.MustCompile(`(^</?|\s)mml:`)
)

var errNoTrailer = errors.New("no eqn comment follows block")

// equationBlock is one matched equation markup span in the text.
type equationBlock struct {
	start, end int    // span to remove, including a trailing eqn comment
	markup     string // the element itself
	payload    string // eqn comment payload
	hasPayload bool
}

// replaceEquations repeatedly takes the leftmost equation block at or after
// the scan position, removes it and inserts its replacement. Scanning
// resumes after the inserted text, so every iteration consumes input and the
// loop ends after at most one iteration per block.
func (n *Normalizer) replaceEquations(text string) string {
	from := 0
	for {
		block, ok := findEquation(text, from)
		if !ok {
			return text
		}

		res := block.resolve()
		switch {
		case res.IsErr():
			n.recorder.IncEquation(metrics.EquationDropped)
			n.logger.Warn("Dropping equation markup",
				logfields.Offset(block.start),
				logfields.Error(res.UnwrapErr()))
		case block.hasPayload:
			n.recorder.IncEquation(metrics.EquationComment)
		default:
			n.recorder.IncEquation(metrics.EquationFragment)
		}
		replacement := res.UnwrapOr("")

		text = text[:block.start] + replacement + text[block.end:]
		from = block.start + len(replacement)
	}
}

// resolve prefers the eqn comment payload and falls back to the text
// content of the markup parsed as a standalone fragment.
func (b equationBlock) resolve() foundation.Result[string, error] {
	return b.fromComment().OrElse(func(error) foundation.Result[string, error] {
		return b.fromFragment()
	})
}

func (b equationBlock) fromComment() foundation.Result[string, error] {
	if !b.hasPayload {
		return foundation.Err[string, error](errNoTrailer)
	}
	return foundation.Ok[string, error](cdata(b.payload))
}

func (b equationBlock) fromFragment() foundation.Result[string, error] {
	return foundation.FromTuple(flattenFragment(b.markup))
}

// flattenFragment parses equation markup on its own, with the math prefix
// removed from element and attribute names, and returns its escaped text.
func flattenFragment(markup string) (string, error) {
	root, err := Parse(stripMathPrefixes(markup))
	if err != nil {
		return "", fmt.Errorf("%w: %w", derrors.ErrUnresolvableEquation, err)
	}
	var escaped strings.Builder
	if err := xml.EscapeText(&escaped, []byte(root.InnerText())); err != nil {
		return "", fmt.Errorf("%w: %w", derrors.ErrUnresolvableEquation, err)
	}
	return escaped.String(), nil
}

// stripMathPrefixes removes mml: from tag and attribute names, leaving
// character data untouched.
func stripMathPrefixes(markup string) string {
	return markupTag.ReplaceAllStringFunc(markup, func(tag string) string {
		return mathPrefixes.ReplaceAllString(tag, "$1")
	})
}

// findEquation locates the leftmost equation block starting at or after from.
// A block without a closing tag covers its opening tag only.
func findEquation(text string, from int) (equationBlock, bool) {
	loc := equationOpen.FindStringSubmatchIndex(text[from:])
	if loc == nil {
		return equationBlock{}, false
	}
	start, openEnd := from+loc[0], from+loc[1]
	name := text[from+loc[2] : from+loc[3]]

	end := openEnd
	if !strings.HasSuffix(text[start:openEnd], "/>") {
		if c := equationClose[name].FindStringIndex(text[openEnd:]); c != nil {
			end = openEnd + c[1]
		}
	}

	block := equationBlock{start: start, end: end, markup: text[start:end]}
	if payload, commentEnd, ok := eqnComment(text, end); ok {
		block.payload = payload
		block.hasPayload = true
		block.end = commentEnd
	}
	return block, true
}

// eqnComment recognizes "<!-- eqn: payload :-->" (or "-->") directly after
// at, allowing whitespace in between. It returns the trimmed payload and the
// offset just past the comment.
func eqnComment(text string, at int) (payload string, end int, ok bool) {
	i := skipSpace(text, at)
	if !strings.HasPrefix(text[i:], "<!--") {
		return "", 0, false
	}
	i = skipSpace(text, i+len("<!--"))
	if !strings.HasPrefix(text[i:], eqnMarker) {
		return "", 0, false
	}
	body := i + len(eqnMarker)
	closeAt := strings.Index(text[body:], "-->")
	if closeAt < 0 {
		return "", 0, false
	}
	raw := strings.TrimSuffix(strings.TrimSpace(text[body:body+closeAt]), ":")
	return strings.TrimSpace(raw), body + closeAt + len("-->"), true
}

func skipSpace(text string, i int) int {
	for i < len(text) && unicode.IsSpace(rune(text[i])) {
		i++
	}
	return i
}

func cdata(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}

package docs

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	derrors "git.home.luguber.info/inful/docbind/internal/docs/errors"
)

// Node is an element or text node of a parsed documentation file.
// Element names are local names; namespace prefixes are kept in Space.
type Node struct {
	Name     string
	Space    string
	Attr     []xml.Attr
	Text     string // text nodes only
	Children []*Node
}

// IsText reports whether n is character data.
func (n *Node) IsText() bool { return n.Name == "" }

// Attribute returns the value of the named attribute, or "".
func (n *Node) Attribute(name string) string {
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Child returns the first direct child element with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find returns the first descendant element (depth-first, document order)
// with the given name, including n itself.
func (n *Node) Find(name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant element with the given name in document order.
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	n.walk(func(c *Node) bool {
		if c.Name == name {
			out = append(out, c)
		}
		return true
	})
	return out
}

// InnerText concatenates all character data below n.
func (n *Node) InnerText() string {
	return n.TextWith(nil)
}

// TextWith concatenates character data below n. When rewrite is non-nil it
// is consulted for every element; returning ok replaces that element's whole
// subtree with the returned text.
func (n *Node) TextWith(rewrite func(*Node) (string, bool)) string {
	var b strings.Builder
	n.writeText(&b, rewrite)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder, rewrite func(*Node) (string, bool)) {
	if n == nil {
		return
	}
	if n.IsText() {
		b.WriteString(n.Text)
		return
	}
	if rewrite != nil {
		if text, ok := rewrite(n); ok {
			b.WriteString(text)
			return
		}
	}
	for _, c := range n.Children {
		c.writeText(b, rewrite)
	}
}

func (n *Node) walk(visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.walk(visit)
	}
}

// Parse parses normalized documentation text into a tree and returns the
// root element. The decoder is strict, has no entity table and ignores
// DOCTYPE directives: nothing external is ever fetched and no DTD validation
// happens. Failures wrap ErrMalformedDocument.
func Parse(text string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	doc := &Node{Name: "#document"}
	stack := []*Node{doc}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", derrors.ErrMalformedDocument, err)
		}

		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Node{Name: t.Name.Local, Space: t.Name.Space, Attr: append([]xml.Attr(nil), t.Attr...)}
			top.Children = append(top.Children, el)
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			top.Children = append(top.Children, &Node{Text: string(t)})
		}
		// Comments, processing instructions and directives (DOCTYPE) are dropped.
	}

	for _, c := range doc.Children {
		if !c.IsText() {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: no root element", derrors.ErrMalformedDocument)
}

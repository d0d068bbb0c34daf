// Package parse reads XML descriptors into dom trees.
//
// Parsing never resolves external entities or DTDs: document type
// declarations are skipped and only the five predefined XML entities are
// expanded.  Element and attribute names are resolved to namespace URIs
// while parsing and the prefix each name was written with is kept as a
// serialization hint.
package parse

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"unicode"

	"github.com/signadot/descmerge/debug"
	"github.com/signadot/descmerge/dom"

	"golang.org/x/text/encoding/ianaindex"
)

// Parse parses d into a document.
func Parse(d []byte, opts ...ParseOption) (*dom.Document, error) {
	o := &parseOpts{}
	for _, opt := range opts {
		opt(o)
	}
	dec := xml.NewDecoder(bytes.NewReader(d))
	dec.Strict = !o.lenient
	dec.CharsetReader = charsetReader

	p := &parser{opts: o}
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		if err := p.token(tok); err != nil {
			line, col := dec.InputPos()
			return nil, fmt.Errorf("line %d, column %d: %w", line, col, err)
		}
	}
	if p.root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}
	if len(p.stack) != 0 {
		return nil, fmt.Errorf("%w: unclosed element %s", ErrParse, p.stack[len(p.stack)-1].Name)
	}
	return &dom.Document{Root: p.root}, nil
}

type parser struct {
	opts       *parseOpts
	stack      []*dom.Element
	rawNames   []xml.Name
	ns         nsStack
	root       *dom.Element
	rootClosed bool
}

func (p *parser) token(tok xml.Token) error {
	switch t := tok.(type) {
	case xml.StartElement:
		return p.start(t)
	case xml.EndElement:
		return p.end(t)
	case xml.CharData:
		if len(p.stack) == 0 {
			if !isIgnorableOutsideRoot(t) {
				return fmt.Errorf("%w: character data outside root element", ErrParse)
			}
			return nil
		}
		top := p.stack[len(p.stack)-1]
		top.Text += string(t)
	case xml.Directive:
		if debug.Parse() {
			debug.Logf("skipping directive %q\n", abbrev(string(t)))
		}
	case xml.Comment, xml.ProcInst:
	}
	return nil
}

func (p *parser) start(t xml.StartElement) error {
	if p.rootClosed {
		return fmt.Errorf("%w: element %s after document end", ErrParse, t.Name.Local)
	}
	if p.opts.maxDepth > 0 && len(p.stack) >= p.opts.maxDepth {
		return ErrTooDeep
	}
	p.ns.push(collectScope(t.Attr))

	space, ok := p.ns.lookup(t.Name.Space)
	if !ok {
		return fmt.Errorf("%w %q on element %s", ErrUnboundPrefix, t.Name.Space, t.Name.Local)
	}
	elt := &dom.Element{
		Name:   dom.Name{Space: space, Local: t.Name.Local},
		Prefix: t.Name.Space,
	}
	for _, a := range t.Attr {
		if isNamespaceDecl(a.Name) {
			continue
		}
		attr := dom.Attr{Name: dom.Name{Local: a.Name.Local}, Prefix: a.Name.Space, Value: a.Value}
		if a.Name.Space != "" {
			attrSpace, ok := p.ns.lookup(a.Name.Space)
			if !ok {
				return fmt.Errorf("%w %q on attribute %s", ErrUnboundPrefix, a.Name.Space, a.Name.Local)
			}
			attr.Name.Space = attrSpace
		}
		elt.Attrs = append(elt.Attrs, attr)
	}

	if len(p.stack) == 0 {
		p.root = elt
	} else {
		parent := p.stack[len(p.stack)-1]
		parent.Children = append(parent.Children, elt)
	}
	p.stack = append(p.stack, elt)
	p.rawNames = append(p.rawNames, t.Name)
	return nil
}

func (p *parser) end(t xml.EndElement) error {
	if len(p.stack) == 0 {
		return fmt.Errorf("%w: unexpected end element %s", ErrParse, t.Name.Local)
	}
	n := len(p.stack) - 1
	if raw := p.rawNames[n]; raw != t.Name && !p.opts.lenient {
		return fmt.Errorf("%w: element <%s> closed by </%s>", ErrParse, qualified(raw), qualified(t.Name))
	}
	p.stack = p.stack[:n]
	p.rawNames = p.rawNames[:n]
	p.ns.pop()
	if n == 0 {
		p.rootClosed = true
	}
	return nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func isIgnorableOutsideRoot(data []byte) bool {
	for _, r := range string(data) {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func abbrev(s string) string {
	if len(s) > 64 {
		return s[:64] + "..."
	}
	return s
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("%w: charset %q: %w", ErrParse, label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: unsupported charset %q", ErrParse, label)
	}
	return enc.NewDecoder().Reader(input), nil
}

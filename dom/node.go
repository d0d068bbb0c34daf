package dom

import (
	"strings"
)

// XML namespaces with fixed meaning.
const (
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
	XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"
)

// Name is a namespace qualified name. Space is a URI, never a prefix.
type Name struct {
	Space string
	Local string
}

func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

// Namespace binds a prefix to a URI for serialization.
type Namespace struct {
	Prefix string
	URI    string
}

type Attr struct {
	Name   Name
	Prefix string
	Value  string
}

type Element struct {
	Name     Name
	Prefix   string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// Document is a parsed or synthesized descriptor.  Namespaces lists
// declarations to place on the root element in addition to those the
// encoder derives from the tree itself.
type Document struct {
	Root       *Element
	Namespaces []Namespace
}

func NewElement(space, local string) *Element {
	return &Element{Name: Name{Space: space, Local: local}}
}

func (e *Element) WithText(text string) *Element {
	e.Text = text
	return e
}

func (e *Element) WithPrefix(prefix string) *Element {
	e.Prefix = prefix
	return e
}

// Append adds children at the end of e's child list.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// SetAttr sets the attribute with the given name, replacing an existing value.
func (e *Element) SetAttr(name Name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// SetPrefixedAttr is SetAttr with a serialization prefix hint.
func (e *Element) SetPrefixedAttr(name Name, prefix, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Prefix = prefix
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Prefix: prefix, Value: value})
}

func (e *Element) Attr(name Name) (string, bool) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			return e.Attrs[i].Value, true
		}
	}
	return "", false
}

// AttrValue returns the value of the unqualified attribute local, or "".
func (e *Element) AttrValue(local string) string {
	v, _ := e.Attr(Name{Local: local})
	return v
}

// Is reports whether e has the given local name in one of spaces.
func (e *Element) Is(local string, spaces ...string) bool {
	if e.Name.Local != local {
		return false
	}
	for _, s := range spaces {
		if e.Name.Space == s {
			return true
		}
	}
	return false
}

// Child returns the first child with local name in one of spaces.
func (e *Element) Child(local string, spaces ...string) *Element {
	for _, c := range e.Children {
		if c.Is(local, spaces...) {
			return c
		}
	}
	return nil
}

// TextContent returns the text of e and all its descendants in document order.
func (e *Element) TextContent() string {
	if len(e.Children) == 0 {
		return e.Text
	}
	var sb strings.Builder
	e.collectText(&sb)
	return sb.String()
}

func (e *Element) collectText(sb *strings.Builder) {
	sb.WriteString(e.Text)
	for _, c := range e.Children {
		c.collectText(sb)
	}
}

// TrimmedText returns TextContent with leading and trailing white space removed.
func (e *Element) TrimmedText() string {
	return strings.TrimSpace(e.TextContent())
}

func (e *Element) Clone() *Element {
	res := &Element{}
	return e.CloneTo(res)
}

func (e *Element) CloneTo(dst *Element) *Element {
	dst.Name = e.Name
	dst.Prefix = e.Prefix
	dst.Text = e.Text
	dst.Attrs = nil
	if len(e.Attrs) != 0 {
		dst.Attrs = make([]Attr, len(e.Attrs))
		copy(dst.Attrs, e.Attrs)
	}
	dst.Children = nil
	if len(e.Children) != 0 {
		dst.Children = make([]*Element, len(e.Children))
		for i, c := range e.Children {
			dst.Children[i] = c.Clone()
		}
	}
	return dst
}

// Visit walks the subtree rooted at e.  f is called before (isPost false)
// and after (isPost true) the children of each element; returning false
// from the pre call skips the children.
func (e *Element) Visit(f func(e *Element, isPost bool) (bool, error)) error {
	dive, err := f(e, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range e.Children {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(e, true); err != nil {
		return err
	}
	return nil
}

// UsedNamespaces returns the distinct non-empty namespace URIs of the
// elements and attributes in the subtree, in first use order.
func (e *Element) UsedNamespaces() []string {
	seen := map[string]bool{}
	res := []string{}
	add := func(uri string) {
		if uri == "" || uri == XMLNamespace || seen[uri] {
			return
		}
		seen[uri] = true
		res = append(res, uri)
	}
	_ = e.Visit(func(x *Element, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		add(x.Name.Space)
		for i := range x.Attrs {
			add(x.Attrs[i].Name.Space)
		}
		return true, nil
	})
	return res
}

func (d *Document) Clone() *Document {
	res := &Document{}
	if d.Root != nil {
		res.Root = d.Root.Clone()
	}
	if len(d.Namespaces) != 0 {
		res.Namespaces = make([]Namespace, len(d.Namespaces))
		copy(res.Namespaces, d.Namespaces)
	}
	return res
}

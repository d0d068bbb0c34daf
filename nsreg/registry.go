// Package nsreg assigns one stable prefix to each namespace URI seen while
// merging descriptors.
//
// Content lifted out of different input documents may use arbitrary and
// conflicting prefixes for the same namespace.  A Registry records the
// first prefix offered for each URI, invents "x0", "x1", ... when that
// prefix is already taken, and rewrites imported subtrees so every node
// carries the registry prefix.  A Registry is append only until Reset.
package nsreg

import (
	"fmt"
	"strings"

	"github.com/signadot/descmerge/debug"
	"github.com/signadot/descmerge/dom"
)

type Registry struct {
	byURI   map[string]string
	used    map[string]bool
	order   []dom.Namespace
	counter int
	// attribute prefixes for namespaces bound to the empty prefix
	attrByURI map[string]string
}

func New() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

// Reset forgets every assignment.
func (r *Registry) Reset() {
	r.byURI = map[string]string{}
	r.used = map[string]bool{}
	r.attrByURI = map[string]string{}
	r.order = nil
	r.counter = 0
}

// Resolve returns the prefix assigned to uri, assigning one on first use.
// A blank uri is no namespace and always resolves to "" without being
// recorded.
func (r *Registry) Resolve(uri, preferred string) string {
	uri = maskBlank(uri)
	if uri == "" {
		return ""
	}
	if uri == dom.XMLNamespace {
		return "xml"
	}
	if p, ok := r.byURI[uri]; ok {
		return p
	}
	p := maskBlank(preferred)
	for r.used[p] || isReserved(p) {
		p = fmt.Sprintf("x%d", r.counter)
		r.counter++
	}
	r.byURI[uri] = p
	r.used[p] = true
	r.order = append(r.order, dom.Namespace{Prefix: p, URI: uri})
	if debug.Namespaces() {
		debug.Logf("nsreg: %q -> %q (preferred %q)\n", uri, p, preferred)
	}
	return p
}

// ResolveAttr is Resolve for attribute names.  An attribute cannot use
// the default namespace, so a uri bound to the empty prefix gets a second,
// non-empty prefix used only for attributes.
func (r *Registry) ResolveAttr(uri, preferred string) string {
	p := r.Resolve(uri, preferred)
	if p != "" || maskBlank(uri) == "" {
		return p
	}
	if a, ok := r.attrByURI[uri]; ok {
		return a
	}
	a := maskBlank(preferred)
	for a == "" || r.used[a] || isReserved(a) {
		a = fmt.Sprintf("x%d", r.counter)
		r.counter++
	}
	r.attrByURI[uri] = a
	r.used[a] = true
	r.order = append(r.order, dom.Namespace{Prefix: a, URI: uri})
	if debug.Namespaces() {
		debug.Logf("nsreg: attribute prefix %q -> %q (preferred %q)\n", uri, a, preferred)
	}
	return a
}

// Lookup returns the prefix assigned to uri without assigning one.
func (r *Registry) Lookup(uri string) (string, bool) {
	uri = maskBlank(uri)
	if uri == "" {
		return "", true
	}
	if uri == dom.XMLNamespace {
		return "xml", true
	}
	p, ok := r.byURI[uri]
	return p, ok
}

// Namespaces returns every assignment in assignment order, excluding the
// one bound to the empty prefix.
func (r *Registry) Namespaces() []dom.Namespace {
	res := make([]dom.Namespace, 0, len(r.order))
	for _, ns := range r.order {
		if ns.Prefix == "" {
			continue
		}
		res = append(res, ns)
	}
	return res
}

// Declarations returns the bindings for uris, in the order given, resolving
// any uri not yet seen.  A uri with an attribute prefix yields both
// bindings.  Unlike Namespaces the default namespace binding is
// included, so the result can be placed on a root element as is.
func (r *Registry) Declarations(uris ...string) []dom.Namespace {
	res := make([]dom.Namespace, 0, len(uris))
	seen := map[string]bool{}
	for _, uri := range uris {
		uri = maskBlank(uri)
		if uri == "" || uri == dom.XMLNamespace || seen[uri] {
			continue
		}
		seen[uri] = true
		res = append(res, dom.Namespace{Prefix: r.Resolve(uri, ""), URI: uri})
		if a, ok := r.attrByURI[uri]; ok {
			res = append(res, dom.Namespace{Prefix: a, URI: uri})
		}
	}
	return res
}

// Import returns a deep copy of e in which every element and namespaced
// attribute carries the registry prefix for its namespace.  The prefix
// each node was written with is offered as the preferred prefix.  e is not
// modified.
func (r *Registry) Import(e *dom.Element) *dom.Element {
	res := &dom.Element{
		Name:   dom.Name{Space: maskBlank(e.Name.Space), Local: e.Name.Local},
		Prefix: r.Resolve(e.Name.Space, e.Prefix),
		Text:   e.Text,
	}
	if len(e.Attrs) != 0 {
		res.Attrs = make([]dom.Attr, len(e.Attrs))
		for i, a := range e.Attrs {
			a.Name.Space = maskBlank(a.Name.Space)
			a.Prefix = r.ResolveAttr(a.Name.Space, a.Prefix)
			res.Attrs[i] = a
		}
	}
	if len(e.Children) != 0 {
		res.Children = make([]*dom.Element, len(e.Children))
		for i, c := range e.Children {
			res.Children[i] = r.Import(c)
		}
	}
	return res
}

func maskBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func isReserved(p string) bool {
	return len(p) >= 3 && strings.EqualFold(p[:3], "xml")
}

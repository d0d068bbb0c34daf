// Package order sorts sibling elements into the canonical order of a
// descriptor schema.
//
// A Comparator is built from the governing namespace, the schema's sibling
// name sequence and optional key extractors for same-named siblings.
// Elements outside the governing namespace are order neutral.
package order

import (
	"cmp"
	"slices"
	"strings"

	"github.com/signadot/descmerge/debug"
	"github.com/signadot/descmerge/dom"

	"golang.org/x/text/cases"
)

// KeyFunc extracts the comparison key of an element.
type KeyFunc func(e *dom.Element) string

type Comparator struct {
	namespace string
	index     map[string]int
	keys      map[string]KeyFunc
}

// New returns a comparator ordering elements in namespace by the position
// of their local name in names.  keys registers key extractors for
// same-named siblings; extractors for names not in names are ignored so
// that every unlisted name stays in one equivalence class.
func New(namespace string, names []string, keys map[string]KeyFunc) *Comparator {
	c := &Comparator{
		namespace: namespace,
		index:     make(map[string]int, len(names)),
		keys:      map[string]KeyFunc{},
	}
	for i, n := range names {
		if _, dup := c.index[n]; !dup {
			c.index[n] = i
		}
	}
	for n, f := range keys {
		if _, ok := c.index[n]; ok && f != nil {
			c.keys[n] = f
		}
	}
	return c
}

func (c *Comparator) Namespace() string {
	return c.namespace
}

func (c *Comparator) rank(local string) int {
	if i, ok := c.index[local]; ok {
		return i
	}
	return -1
}

// Compare returns -1, 0 or 1.  Elements outside the governing namespace
// compare equal to everything.
func (c *Comparator) Compare(a, b *dom.Element) int {
	if a.Name.Space != c.namespace || b.Name.Space != c.namespace {
		return 0
	}
	if a.Name.Local != b.Name.Local {
		return cmp.Compare(c.rank(a.Name.Local), c.rank(b.Name.Local))
	}
	key := c.keys[a.Name.Local]
	if key == nil {
		return 0
	}
	fold := cases.Fold()
	return strings.Compare(fold.String(key(a)), fold.String(key(b)))
}

type item struct {
	e    *dom.Element
	rank int
	key  string
}

// Sort stably sorts the governing namespace elements of elts and places
// the elements of other namespaces after them, in their original relative
// order.
func (c *Comparator) Sort(elts []*dom.Element) {
	fold := cases.Fold()
	items := make([]item, 0, len(elts))
	var foreign []*dom.Element
	for _, e := range elts {
		if e.Name.Space != c.namespace {
			foreign = append(foreign, e)
			continue
		}
		it := item{e: e, rank: c.rank(e.Name.Local)}
		if key := c.keys[e.Name.Local]; key != nil {
			it.key = fold.String(key(e))
		}
		items = append(items, it)
	}
	slices.SortStableFunc(items, func(a, b item) int {
		if r := cmp.Compare(a.rank, b.rank); r != 0 {
			return r
		}
		if a.e.Name.Local != b.e.Name.Local {
			return 0
		}
		return strings.Compare(a.key, b.key)
	})
	for i := range items {
		elts[i] = items[i].e
	}
	copy(elts[len(items):], foreign)
	if debug.Order() {
		names := make([]string, len(elts))
		for i, e := range elts {
			names[i] = e.Name.Local
		}
		debug.Logf("order %s: %v\n", c.namespace, names)
	}
}

// ChildText returns a KeyFunc yielding the trimmed text of the first child
// named local in namespace or in no namespace, or "" when there is none.
func ChildText(namespace, local string) KeyFunc {
	return func(e *dom.Element) string {
		if c := e.Child(local, namespace, ""); c != nil {
			return c.TrimmedText()
		}
		return ""
	}
}

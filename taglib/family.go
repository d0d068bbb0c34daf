// Package taglib merges facelet tag library descriptors.
//
// Libraries declaring the same namespace, after namespace rewrite rules
// are applied, are combined into one descriptor written to
// META-INF/<id>.taglib.xml, where id is the last path segment of the
// namespace.  Libraries declaring no namespace are written back unchanged
// under their own path.
package taglib

import (
	"log/slog"
	"strings"

	"github.com/signadot/descmerge/dom"
	"github.com/signadot/descmerge/merge"
	"github.com/signadot/descmerge/nsreg"
	"github.com/signadot/descmerge/order"
)

const (
	Ext = ".taglib.xml"

	rootName     = "facelet-taglib"
	namespaceElt = "namespace"
)

type passThrough struct {
	doc  *dom.Document
	hash uint64
}

type Family struct {
	schema     merge.Schema
	log        *slog.Logger
	rules      []Rule
	compiled   []*rule
	reg        *nsreg.Registry
	comparator *order.Comparator

	passThrough map[string]passThrough
	groups      map[string][]*dom.Element
	groupFiles  map[string][]string
}

type Option func(*Family)

func WithLogger(l *slog.Logger) Option {
	return func(f *Family) { f.log = l }
}

func WithSchema(s merge.Schema) Option {
	return func(f *Family) { f.schema = s }
}

// WithRules sets the namespace rewrite rules, applied in order; the first
// matching rule wins.
func WithRules(rules ...Rule) Option {
	return func(f *Family) { f.rules = append(f.rules, rules...) }
}

func New(opts ...Option) (*Family, error) {
	f := &Family{
		log: slog.New(slog.DiscardHandler),
		reg: nsreg.New(),
	}
	f.schema, _ = Profile("")
	for _, opt := range opts {
		opt(f)
	}
	compiled, err := compileRules(f.rules)
	if err != nil {
		return nil, err
	}
	f.compiled = compiled
	f.comparator = newComparator(f.schema.Namespace)
	f.Reset()
	return f, nil
}

func (f *Family) Name() string { return "taglib" }

func (f *Family) Schema() merge.Schema { return f.schema }

func (f *Family) Matches(path string) bool {
	name, ok := merge.MetaInfName(path)
	return ok && strings.HasSuffix(name, Ext)
}

func (f *Family) Reset() {
	f.reg.Reset()
	f.reg.Resolve(f.schema.Namespace, "")
	f.reg.Resolve(dom.XSINamespace, "xsi")
	f.passThrough = map[string]passThrough{}
	f.groups = map[string][]*dom.Element{}
	f.groupFiles = map[string][]string{}
}

// ShortName returns the last path segment of a library namespace.
func ShortName(namespace string) string {
	namespace = strings.TrimRight(namespace, "/")
	if i := strings.LastIndexByte(namespace, '/'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// OutputPath is where the merged library for namespace is written.
func OutputPath(namespace string) string {
	return merge.MetaInf + ShortName(namespace) + Ext
}

func newComparator(ns string) *order.Comparator {
	names := []string{
		"description", "display-name", "icon", "library-class",
		namespaceElt, "composite-library-name", "tag", "function",
		"taglib-extension",
	}
	return order.New(ns, names, map[string]order.KeyFunc{
		"tag":      order.ChildText(ns, "tag-name"),
		"function": order.ChildText(ns, "function-name"),
	})
}

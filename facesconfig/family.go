// Package facesconfig merges faces-config.xml registry descriptors.
//
// Top level content of each input is classified: the name singleton is
// conflict checked, application, factory and lifecycle contents are
// pooled into one wrapper each, render-kit contents are grouped by
// render-kit-id, ordering directives are dropped and everything else is
// carried over as is.  The merged document is written to
// META-INF/faces-config.xml in canonical schema order.
package facesconfig

import (
	"log/slog"
	"strings"

	"github.com/signadot/descmerge/dom"
	"github.com/signadot/descmerge/merge"
	"github.com/signadot/descmerge/nsreg"
	"github.com/signadot/descmerge/order"
)

const (
	FileName = "faces-config.xml"
	Path     = merge.MetaInf + FileName

	rootName         = "faces-config"
	nameElt          = "name"
	renderKitElt     = "render-kit"
	renderKitIDElt   = "render-kit-id"
	metadataComplete = "metadata-complete"
)

var (
	categories = map[string]bool{"application": true, "factory": true, "lifecycle": true}
	ignored    = map[string]bool{"ordering": true, "absolute-ordering": true}
)

type Family struct {
	schema     merge.Schema
	log        *slog.Logger
	reg        *nsreg.Registry
	comparator *order.Comparator

	name             string
	nameFile         string
	passThrough      []*dom.Element
	categories       map[string][]*dom.Element
	renderKits       map[string][]*dom.Element
	metadataComplete merge.TriState
}

type Option func(*Family)

func WithLogger(l *slog.Logger) Option {
	return func(f *Family) { f.log = l }
}

// WithSchema sets the schema merged documents are written in, see Profile.
func WithSchema(s merge.Schema) Option {
	return func(f *Family) { f.schema = s }
}

func New(opts ...Option) *Family {
	f := &Family{
		log: slog.New(slog.DiscardHandler),
		reg: nsreg.New(),
	}
	f.schema, _ = Profile("")
	for _, opt := range opts {
		opt(f)
	}
	f.comparator = newComparator(f.schema.Namespace)
	f.Reset()
	return f
}

func (f *Family) Name() string { return "faces-config" }

func (f *Family) Schema() merge.Schema { return f.schema }

func (f *Family) Matches(path string) bool {
	name, ok := merge.MetaInfName(path)
	return ok && (name == FileName || strings.HasSuffix(name, "."+FileName))
}

func (f *Family) Reset() {
	f.reg.Reset()
	f.reg.Resolve(f.schema.Namespace, "")
	f.reg.Resolve(dom.XSINamespace, "xsi")
	f.name = ""
	f.nameFile = ""
	f.passThrough = nil
	f.categories = map[string][]*dom.Element{}
	f.renderKits = map[string][]*dom.Element{}
	f.metadataComplete = merge.Unset
}

func newComparator(ns string) *order.Comparator {
	names := []string{
		"application", "ordering", "absolute-ordering", "factory",
		"component", "converter", "managed-bean", "name",
		"navigation-rule", "referenced-bean", "render-kit", "lifecycle",
		"validator", "behavior", "faces-config-extension",
		// lifecycle contents
		"phase-listener", "lifecycle-extension",
		// render-kit contents
		"description", "display-name", "icon", "render-kit-id",
		"render-kit-class", "renderer", "client-behavior-renderer",
		"render-kit-extension",
	}
	return order.New(ns, names, map[string]order.KeyFunc{
		"component": order.ChildText(ns, "component-type"),
		"converter": order.ChildText(ns, "converter-id"),
		"validator": order.ChildText(ns, "validator-id"),
		"behavior":  order.ChildText(ns, "behavior-id"),
	})
}

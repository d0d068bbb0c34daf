package facesconfig

import (
	"maps"
	"slices"
	"strconv"

	"github.com/signadot/descmerge/dom"
	"github.com/signadot/descmerge/merge"
)

func (f *Family) Finalize() ([]merge.Output, error) {
	ns := f.schema.Namespace
	prefix := f.reg.Resolve(ns, "")
	elt := func(local string) *dom.Element {
		return dom.NewElement(ns, local).WithPrefix(prefix)
	}

	root := elt(rootName)
	root.SetAttr(dom.Name{Local: "version"}, f.schema.Version)
	if f.metadataComplete != merge.Unset {
		root.SetAttr(dom.Name{Local: metadataComplete}, strconv.FormatBool(f.metadataComplete == merge.True))
	}
	root.SetPrefixedAttr(merge.SchemaLocationAttr, f.reg.Resolve(dom.XSINamespace, "xsi"), f.schema.SchemaLocation())

	var children []*dom.Element
	if f.name != "" {
		children = append(children, elt(nameElt).WithText(f.name))
	}
	children = append(children, f.passThrough...)
	for _, k := range slices.Sorted(maps.Keys(f.categories)) {
		elts := slices.Clone(f.categories[k])
		f.comparator.Sort(elts)
		children = append(children, elt(k).Append(elts...))
	}
	for _, k := range slices.Sorted(maps.Keys(f.renderKits)) {
		elts := slices.Clone(f.renderKits[k])
		if k != "" {
			elts = append(elts, elt(renderKitIDElt).WithText(k))
		}
		f.comparator.Sort(elts)
		children = append(children, elt(renderKitElt).Append(elts...))
	}
	f.comparator.Sort(children)
	root.Append(children...)

	doc := &dom.Document{
		Root:       root,
		Namespaces: f.reg.Declarations(root.UsedNamespaces()...),
	}
	return []merge.Output{{Path: Path, Doc: doc}}, nil
}

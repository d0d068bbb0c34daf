package taglib

import (
	"fmt"

	"github.com/signadot/descmerge/debug"
	"github.com/signadot/descmerge/dom"
	"github.com/signadot/descmerge/merge"
)

func (f *Family) Accept(path string, doc *dom.Document) error {
	if doc == nil || doc.Root == nil {
		return &merge.MalformedInputError{File: path, Reason: "document has no root element"}
	}
	if doc.Root.Name.Local != rootName {
		return &merge.MalformedInputError{File: path, Element: doc.Root.Name, Reason: "root element must be " + rootName}
	}
	if !f.schema.Accepts(doc.Root.Name.Space) {
		return &merge.MalformedInputError{
			File:    path,
			Element: doc.Root.Name,
			Reason:  fmt.Sprintf("root element must be in namespace %s or in no namespace", f.schema.Namespace),
		}
	}
	ns := f.schema.Namespace
	root := f.schema.Adopt(doc.Root)

	declared := ""
	if e := root.Child(namespaceElt, ns, ""); e != nil {
		declared = e.TrimmedText()
	}
	if declared == "" {
		f.acceptPassThrough(path, doc)
		return nil
	}
	target, err := apply(f.compiled, declared, path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if ShortName(target) == "" {
		return &merge.MalformedInputError{
			File:    path,
			Element: dom.Name{Space: ns, Local: namespaceElt},
			Reason:  fmt.Sprintf("cannot derive a library id from namespace %q", target),
		}
	}
	group := f.groups[target]
	for _, c := range root.Children {
		if c.Is(namespaceElt, ns, "") {
			continue
		}
		group = append(group, f.reg.Import(c))
	}
	f.groups[target] = group
	f.groupFiles[target] = append(f.groupFiles[target], path)
	if debug.Accept() {
		debug.Logf("taglib %s: namespace %s -> %s (%d elements)\n", path, declared, target, len(group))
	}
	return nil
}

func (f *Family) acceptPassThrough(path string, doc *dom.Document) {
	h := doc.Root.Hash()
	if prev, ok := f.passThrough[path]; ok && prev.hash != h {
		f.log.Warn("replacing tag library with different content", "file", path)
	}
	f.passThrough[path] = passThrough{doc: doc.Clone(), hash: h}
	if debug.Accept() {
		debug.Logf("taglib %s: no namespace, passing through\n", path)
	}
}

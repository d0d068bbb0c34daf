package facesconfig

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
	root := doc.Root
	if root.Name.Local != rootName {
		return &merge.MalformedInputError{File: path, Element: root.Name, Reason: "root element must be " + rootName}
	}
	if !f.schema.Accepts(root.Name.Space) {
		return &merge.MalformedInputError{
			File:    path,
			Element: root.Name,
			Reason:  fmt.Sprintf("root element must be in namespace %s or in no namespace", f.schema.Namespace),
		}
	}
	root = f.schema.Adopt(root)
	ns := f.schema.Namespace

	f.metadataComplete = f.metadataComplete.And(root.AttrValue(metadataComplete) == "true")

	for _, c := range root.Children {
		if c.Name.Space != ns {
			f.passThrough = append(f.passThrough, f.reg.Import(c))
			continue
		}
		name := c.Name.Local
		switch {
		case ignored[name]:
			f.log.Warn("dropping element",
				"file", path,
				"element", name,
				"err", &merge.UnsupportedContentError{File: path, Element: c.Name})
		case name == nameElt:
			if err := f.acceptName(path, c); err != nil {
				return err
			}
		case categories[name]:
			bucket := f.categories[name]
			for _, cc := range c.Children {
				bucket = append(bucket, f.reg.Import(cc))
			}
			f.categories[name] = bucket
		case name == renderKitElt:
			id := ""
			if k := c.Child(renderKitIDElt, ns, ""); k != nil {
				id = k.TrimmedText()
			}
			bucket := f.renderKits[id]
			for _, cc := range c.Children {
				if cc.Is(renderKitIDElt, ns, "") {
					continue
				}
				bucket = append(bucket, f.reg.Import(cc))
			}
			f.renderKits[id] = bucket
		default:
			f.passThrough = append(f.passThrough, f.reg.Import(c))
		}
	}
	if debug.Accept() {
		debug.Logf("faces-config %s: name=%q metadata-complete=%s pass-through=%d categories=%d render-kits=%d\n",
			path, f.name, f.metadataComplete, len(f.passThrough), len(f.categories), len(f.renderKits))
	}
	return nil
}

// acceptName keeps the first non-empty name; a later different non-empty
// name is a conflict.
func (f *Family) acceptName(path string, e *dom.Element) error {
	v := e.TrimmedText()
	if v == "" {
		return nil
	}
	if f.name == "" {
		f.name = v
		f.nameFile = path
		return nil
	}
	if f.name != v {
		return &merge.ConflictingValueError{
			Field:      nameElt,
			First:      f.name,
			FirstFile:  f.nameFile,
			Second:     v,
			SecondFile: path,
		}
	}
	return nil
}

package taglib

import (
	"maps"
	"slices"

	"github.com/signadot/descmerge/dom"
	"github.com/signadot/descmerge/merge"
)

func (f *Family) Finalize() ([]merge.Output, error) {
	var res []merge.Output
	type source struct{ value, file string }
	sources := map[string]source{}
	claim := func(path, value, file string) error {
		if prev, ok := sources[path]; ok {
			return &merge.ConflictingValueError{
				Field:      "output " + path,
				First:      prev.value,
				FirstFile:  prev.file,
				Second:     value,
				SecondFile: file,
			}
		}
		sources[path] = source{value: value, file: file}
		return nil
	}

	for _, path := range slices.Sorted(maps.Keys(f.passThrough)) {
		if err := claim(path, path, path); err != nil {
			return nil, err
		}
		res = append(res, merge.Output{Path: path, Doc: f.passThrough[path].doc})
	}

	ns := f.schema.Namespace
	prefix := f.reg.Resolve(ns, "")
	for _, target := range slices.Sorted(maps.Keys(f.groups)) {
		path := OutputPath(target)
		if err := claim(path, target, f.groupFiles[target][0]); err != nil {
			return nil, err
		}
		root := dom.NewElement(ns, rootName).WithPrefix(prefix)
		root.SetAttr(dom.Name{Local: "version"}, f.schema.Version)
		root.SetPrefixedAttr(merge.SchemaLocationAttr, f.reg.Resolve(dom.XSINamespace, "xsi"), f.schema.SchemaLocation())
		root.SetAttr(dom.Name{Local: "id"}, ShortName(target))

		children := []*dom.Element{dom.NewElement(ns, namespaceElt).WithPrefix(prefix).WithText(target)}
		children = append(children, f.groups[target]...)
		f.comparator.Sort(children)
		root.Append(children...)

		res = append(res, merge.Output{
			Path: path,
			Doc: &dom.Document{
				Root:       root,
				Namespaces: f.reg.Declarations(root.UsedNamespaces()...),
			},
		})
	}
	return res, nil
}

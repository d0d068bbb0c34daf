// Package dom provides the in-memory element tree used by descmerge.
//
// # Overview
//
// Descriptor fragments are parsed into a small, data-oriented tree of
// [Element] values rooted in a [Document]. The tree carries exactly what the
// merge engine needs: qualified names, attributes, child elements and the
// text directly inside each element. Comments, processing instructions and
// the interleaving of text with child elements are not represented.
//
// # Names
//
// Every element and attribute carries a [Name] whose Space field is a
// resolved namespace URI. The empty URI means "no namespace". Prefixes are
// never used for identity; the Prefix fields on [Element] and [Attr] are
// serialization hints only, recording the prefix a source document used (or
// the prefix a namespace registry assigned).
//
// Namespace declarations (xmlns and xmlns:p attributes) are never stored as
// attributes. The encoder derives declarations from the names in the tree and
// from [Document.Namespaces].
//
// # Ownership
//
// Trees are plain values linked by pointers without parent links, so a
// subtree may be detached or moved by reslicing Children. [Element.Clone]
// produces a deep copy sharing nothing with its source; code that keeps
// content lifted out of a transient input tree must keep a clone.
//
// # Creating Trees
//
//	root := dom.NewElement(ns, "faces-config")
//	root.SetAttr(dom.Name{Local: "version"}, "2.0")
//	root.Append(dom.NewElement(ns, "name").WithText("ui"))
//	doc := &dom.Document{Root: root}
package dom

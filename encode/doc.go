// Package encode writes dom trees as XML text.
//
// # Usage
//
//	doc := &dom.Document{Root: dom.NewElement(ns, "faces-config")}
//	err := encode.Encode(doc, os.Stdout)
//
//	// two space indent, no XML declaration
//	err := encode.Encode(doc, w, encode.EncodeIndent(2), encode.EncodeDeclaration(false))
//
// # Namespaces
//
// The declarations in Document.Namespaces are written on the root element
// in order.  Any namespace used by an element or attribute that is not in
// scope where it is used is declared on that element, preferring the prefix
// hint recorded on the node.  Elements in no namespace beneath a default
// namespace declaration get xmlns="".  Namespaced attributes always carry a
// non-empty prefix.
//
// # Related Packages
//
//   - github.com/signadot/descmerge/dom - the tree representation
//   - github.com/signadot/descmerge/parse - parse XML text to dom trees
package encode

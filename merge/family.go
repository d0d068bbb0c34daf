// Package merge holds what descriptor families share: the Family
// contract, the Session that drives one through a package build, the
// error taxonomy and small helpers for schemas and paths.
//
// A session accepts parsed documents one at a time and finalizes into
// zero or more finished documents.  Families are single threaded and keep
// only copies of the input content they accept.
package merge

import (
	"github.com/signadot/descmerge/dom"
)

// Output is a finished document and the archive path it belongs at.
type Output struct {
	Path string
	Doc  *dom.Document
}

// Family accumulates and merges one kind of descriptor.
type Family interface {
	Name() string
	// Matches reports whether the archive path holds a descriptor of
	// this family.
	Matches(path string) bool
	// Accept classifies and accumulates doc.  The family does not
	// retain or modify doc.
	Accept(path string, doc *dom.Document) error
	Finalize() ([]Output, error)
	// Reset discards all accumulated state.
	Reset()
}

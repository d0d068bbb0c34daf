package merge

import (
	"errors"
	"fmt"

	"github.com/signadot/descmerge/dom"
)

var (
	ErrMalformedInput     = errors.New("malformed input")
	ErrConflictingValue   = errors.New("conflicting value")
	ErrUnsupportedContent = errors.New("unsupported content")
)

// MalformedInputError reports an input whose root element does not have the
// shape the family requires.
type MalformedInputError struct {
	File    string
	Element dom.Name
	Reason  string
}

func (e *MalformedInputError) Error() string {
	if e.Element.Local == "" {
		return fmt.Sprintf("%s: %s: %s", ErrMalformedInput, e.File, e.Reason)
	}
	return fmt.Sprintf("%s: %s: element %s: %s", ErrMalformedInput, e.File, e.Element, e.Reason)
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// ConflictingValueError reports two inputs declaring different values for a
// field that must be unique across a merge.
type ConflictingValueError struct {
	Field      string
	First      string
	FirstFile  string
	Second     string
	SecondFile string
}

func (e *ConflictingValueError) Error() string {
	return fmt.Sprintf("%s: %s: %q (%s) and %q (%s)",
		ErrConflictingValue, e.Field, e.First, e.FirstFile, e.Second, e.SecondFile)
}

func (e *ConflictingValueError) Unwrap() error { return ErrConflictingValue }

// UnsupportedContentError describes recognized content that is dropped.  It
// is logged, never returned from Accept.
type UnsupportedContentError struct {
	File    string
	Element dom.Name
}

func (e *UnsupportedContentError) Error() string {
	return fmt.Sprintf("%s: %s: element %s is not merged", ErrUnsupportedContent, e.File, e.Element)
}

func (e *UnsupportedContentError) Unwrap() error { return ErrUnsupportedContent }

package merge

import (
	"fmt"

	"github.com/signadot/descmerge/debug"
	"github.com/signadot/descmerge/dom"
)

type State int

const (
	Empty State = iota
	Accumulating
	Failed
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Accumulating:
		return "accumulating"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session drives one Family through a package build.  After a failed
// Accept the session refuses further input until it is finalized or reset.
// Finalize always leaves the session and its family empty.
//
// A Session is not safe for concurrent use.
type Session struct {
	family   Family
	state    State
	err      error
	accepted []string
}

func NewSession(f Family) *Session {
	return &Session{family: f}
}

func (s *Session) Family() Family { return s.family }

func (s *Session) State() State { return s.state }

// Accepted returns the paths accepted since the last reset.
func (s *Session) Accepted() []string { return s.accepted }

func (s *Session) Matches(path string) bool {
	return s.family.Matches(path)
}

func (s *Session) Accept(path string, doc *dom.Document) error {
	if s.state == Failed {
		return fmt.Errorf("%s session already failed: %w", s.family.Name(), s.err)
	}
	if err := s.family.Accept(path, doc); err != nil {
		s.state = Failed
		s.err = err
		return err
	}
	s.state = Accumulating
	s.accepted = append(s.accepted, path)
	if debug.Accept() {
		debug.Logf("%s: accepted %s (%d so far)\n", s.family.Name(), path, len(s.accepted))
	}
	return nil
}

// Finalize returns the merged documents.  A session that accepted nothing
// yields no outputs; a failed session returns the error that failed it.
func (s *Session) Finalize() ([]Output, error) {
	defer s.Reset()
	switch s.state {
	case Empty:
		return nil, nil
	case Failed:
		return nil, s.err
	}
	res, err := s.family.Finalize()
	if err != nil {
		return nil, fmt.Errorf("finalizing %s: %w", s.family.Name(), err)
	}
	return res, nil
}

// Reset abandons the session.
func (s *Session) Reset() {
	s.family.Reset()
	s.state = Empty
	s.err = nil
	s.accepted = nil
}

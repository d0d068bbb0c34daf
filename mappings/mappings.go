// Package mappings merges resource mapping property files.
//
// Each input file is kept whole, line endings normalized to "\n".  The
// merged file is the sorted set of distinct inputs, concatenated.
package mappings

import (
	"maps"
	"slices"
	"strings"

	"github.com/signadot/descmerge/debug"
)

const DefaultPath = "META-INF/richfaces/resource-mappings.properties"

type Set struct {
	path    string
	records map[string]bool
}

type Option func(*Set)

// WithPath sets the archive path of the files to merge.
func WithPath(p string) Option {
	return func(s *Set) {
		if p != "" {
			s.path = p
		}
	}
}

func New(opts ...Option) *Set {
	s := &Set{path: DefaultPath}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

func (s *Set) Name() string { return "resource-mappings" }

func (s *Set) Path() string { return s.path }

func (s *Set) Matches(path string) bool {
	return path == s.path
}

func (s *Set) Add(path string, data []byte) {
	rec := normalize(string(data))
	if debug.Accept() {
		debug.Logf("mappings %s: %d bytes, duplicate=%v\n", path, len(rec), s.records[rec])
	}
	s.records[rec] = true
}

func (s *Set) Len() int { return len(s.records) }

// Finish returns the merged file and resets the set.  ok is false when
// nothing was added.
func (s *Set) Finish() (data []byte, ok bool) {
	defer s.Reset()
	if len(s.records) == 0 {
		return nil, false
	}
	var sb strings.Builder
	for _, rec := range slices.Sorted(maps.Keys(s.records)) {
		sb.WriteString(rec)
	}
	return []byte(sb.String()), true
}

func (s *Set) Reset() {
	s.records = map[string]bool{}
}

func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

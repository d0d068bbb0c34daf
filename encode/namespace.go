package encode

import (
	"fmt"
	"strings"

	"github.com/signadot/descmerge/dom"
)

type binding struct {
	prefix, uri string
}

// frame holds the declarations written on one element, in order.
type frame struct {
	decls []binding
}

type scope struct {
	frames []frame
}

func (s *scope) push() {
	s.frames = append(s.frames, frame{})
}

func (s *scope) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *scope) top() *frame {
	return &s.frames[len(s.frames)-1]
}

func (s *scope) lookup(prefix string) (string, bool) {
	if prefix == "xml" {
		return dom.XMLNamespace, true
	}
	for i := len(s.frames) - 1; i >= 0; i-- {
		for _, b := range s.frames[i].decls {
			if b.prefix == prefix {
				return b.uri, true
			}
		}
	}
	if prefix == "" {
		return "", true
	}
	return "", false
}

func (s *scope) bound(prefix, uri string) bool {
	u, ok := s.lookup(prefix)
	return ok && u == uri
}

func (s *scope) declaredHere(prefix string) bool {
	for _, b := range s.top().decls {
		if b.prefix == prefix {
			return true
		}
	}
	return false
}

func (s *scope) declare(prefix, uri string) {
	top := s.top()
	for i := range top.decls {
		if top.decls[i].prefix == prefix {
			top.decls[i].uri = uri
			return
		}
	}
	top.decls = append(top.decls, binding{prefix: prefix, uri: uri})
}

// prefixFor finds a prefix currently resolving to uri, innermost
// declaration first.
func (s *scope) prefixFor(uri string, allowDefault bool) (string, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		decls := s.frames[i].decls
		for j := len(decls) - 1; j >= 0; j-- {
			b := decls[j]
			if b.uri != uri || (b.prefix == "" && !allowDefault) {
				continue
			}
			if s.bound(b.prefix, uri) {
				return b.prefix, true
			}
		}
	}
	return "", false
}

func (s *scope) elementPrefix(uri, hint string) string {
	if uri == "" {
		if def, _ := s.lookup(""); def != "" {
			s.declare("", "")
		}
		return ""
	}
	if uri == dom.XMLNamespace {
		return "xml"
	}
	if s.bound(hint, uri) {
		return hint
	}
	if p, ok := s.prefixFor(uri, true); ok {
		return p
	}
	p := hint
	if isReservedPrefix(p) || s.declaredHere(p) {
		p = s.fresh()
	}
	s.declare(p, uri)
	return p
}

func (s *scope) attrPrefix(uri, hint string) string {
	if uri == "" {
		return ""
	}
	if uri == dom.XMLNamespace {
		return "xml"
	}
	if hint != "" && s.bound(hint, uri) {
		return hint
	}
	if p, ok := s.prefixFor(uri, false); ok {
		return p
	}
	p := hint
	if p == "" || isReservedPrefix(p) || s.declaredHere(p) {
		p = s.fresh()
	}
	s.declare(p, uri)
	return p
}

func (s *scope) fresh() string {
	for n := 0; ; n++ {
		p := fmt.Sprintf("ns%d", n)
		if _, ok := s.lookup(p); !ok && !s.declaredHere(p) {
			return p
		}
	}
}

func isReservedPrefix(p string) bool {
	return len(p) >= 3 && strings.EqualFold(p[:3], "xml")
}

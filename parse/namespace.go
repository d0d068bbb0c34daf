package parse

import (
	"encoding/xml"

	"github.com/signadot/descmerge/dom"
)

type nsScope struct {
	prefixes   map[string]string
	defaultNS  string
	defaultSet bool
}

type nsStack struct {
	scopes []nsScope
}

func (s *nsStack) push(scope nsScope) {
	s.scopes = append(s.scopes, scope)
}

func (s *nsStack) pop() {
	if len(s.scopes) == 0 {
		return
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// lookup resolves prefix against the innermost scope declaring it.  The
// empty prefix resolves to the default namespace, or to no namespace when
// none is declared.
func (s *nsStack) lookup(prefix string) (string, bool) {
	switch prefix {
	case "xml":
		return dom.XMLNamespace, true
	case "":
		for i := len(s.scopes) - 1; i >= 0; i-- {
			if s.scopes[i].defaultSet {
				return s.scopes[i].defaultNS, true
			}
		}
		return "", true
	}
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if ns, ok := s.scopes[i].prefixes[prefix]; ok {
			return ns, true
		}
	}
	return "", false
}

func collectScope(attrs []xml.Attr) nsScope {
	scope := nsScope{}
	for _, a := range attrs {
		switch {
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			scope.defaultNS = a.Value
			scope.defaultSet = true
		case a.Name.Space == "xmlns":
			if a.Name.Local == "xml" || a.Name.Local == "xmlns" {
				continue
			}
			if scope.prefixes == nil {
				scope.prefixes = make(map[string]string, 1)
			}
			scope.prefixes[a.Name.Local] = a.Value
		}
	}
	return scope
}

func isNamespaceDecl(n xml.Name) bool {
	return n.Space == "xmlns" || (n.Space == "" && n.Local == "xmlns")
}

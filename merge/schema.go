package merge

import (
	"fmt"
	"slices"
	"strings"

	"github.com/signadot/descmerge/dom"
)

// Schema describes the namespace and version merged documents are written
// in.  Documents whose root is in no namespace or in one of the Legacy
// namespaces are read as if written in Namespace.
type Schema struct {
	Name      string
	Namespace string
	Version   string
	Location  string
	Legacy    []string
}

// SchemaLocation is the xsi:schemaLocation value for the schema.
func (s *Schema) SchemaLocation() string {
	return s.Namespace + " " + s.Location
}

// Accepts reports whether a root element in space can be merged.
func (s *Schema) Accepts(space string) bool {
	return space == "" || space == s.Namespace || slices.Contains(s.Legacy, space)
}

// Adopt returns root unchanged when it is in the schema namespace.
// Otherwise it returns a copy in which every element in root's namespace
// is moved into the schema namespace.
func (s *Schema) Adopt(root *dom.Element) *dom.Element {
	from := root.Name.Space
	if from == s.Namespace {
		return root
	}
	res := root.Clone()
	_ = res.Visit(func(e *dom.Element, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		if e.Name.Space == from {
			e.Name.Space = s.Namespace
			if from == "" {
				e.Prefix = ""
			}
		}
		return true, nil
	})
	return res
}

// SchemaLocationAttr is the name of xsi:schemaLocation.
var SchemaLocationAttr = dom.Name{Space: dom.XSINamespace, Local: "schemaLocation"}

// Namespaces of the descriptor schema generations.
const (
	JavaEENamespace  = "http://java.sun.com/xml/ns/javaee"
	JCPNamespace     = "http://xmlns.jcp.org/xml/ns/javaee"
	JakartaNamespace = "https://jakarta.ee/xml/ns/jakartaee"
)

// FindSchema returns the schema called name from schemas; an empty name
// selects the first.
func FindSchema(kind string, schemas []Schema, name string) (Schema, error) {
	if len(schemas) == 0 {
		return Schema{}, fmt.Errorf("no %s schemas", kind)
	}
	if name == "" {
		name = schemas[0].Name
	}
	names := make([]string, len(schemas))
	for i, s := range schemas {
		if s.Name == name {
			s.Legacy = slices.Clone(s.Legacy)
			return s, nil
		}
		names[i] = s.Name
	}
	return Schema{}, fmt.Errorf("unknown %s schema %q (want one of %s)", kind, name, strings.Join(names, ", "))
}

package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/descmerge/dom"
	"github.com/signadot/descmerge/encode"
)

// Logf writes to stderr.  Element and document arguments are rendered
// as XML.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *dom.Element:
			args[i] = render(&dom.Document{Root: x})
		case *dom.Document:
			args[i] = render(x)
		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

func render(doc *dom.Document) string {
	if doc == nil || doc.Root == nil {
		return "<nil>"
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, buf, encode.EncodeDeclaration(false)); err != nil {
		return fmt.Sprintf("[raw *dom.Element] %v", doc.Root.Name)
	}
	return buf.String()
}

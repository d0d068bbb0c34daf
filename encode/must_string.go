package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/descmerge/dom"
)

func MustString(doc *dom.Document, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

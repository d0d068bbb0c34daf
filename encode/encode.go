package encode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/descmerge/dom"
)

var ErrEncoding = errors.New("encoding error")

const xmlDecl = `<?xml version="1.0" encoding="UTF-8"?>`

type EncState struct {
	depth, indent int
	declaration   bool

	scope scope
	Color func(ColorAttr, string) string
}

func Encode(doc *dom.Document, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent:      4,
		declaration: true,
	}
	for _, opt := range opts {
		opt(es)
	}
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("%w: document has no root element", ErrEncoding)
	}
	bw := bufio.NewWriter(w)
	if es.declaration {
		bw.WriteString(es.color(DeclColor, xmlDecl))
		bw.WriteString("\n")
	}
	if err := es.element(bw, doc.Root, doc.Namespaces); err != nil {
		return err
	}
	bw.WriteString("\n")
	return bw.Flush()
}

func (es *EncState) element(w *bufio.Writer, e *dom.Element, rootDecls []dom.Namespace) error {
	if e.Name.Local == "" {
		return fmt.Errorf("%w: element without a local name", ErrEncoding)
	}
	es.scope.push()
	defer es.scope.pop()
	for _, ns := range rootDecls {
		if ns.URI == "" || isReservedPrefix(ns.Prefix) {
			continue
		}
		es.scope.declare(ns.Prefix, ns.URI)
	}

	qname := qualify(es.scope.elementPrefix(e.Name.Space, e.Prefix), e.Name.Local)
	attrNames := make([]string, len(e.Attrs))
	for i := range e.Attrs {
		a := &e.Attrs[i]
		if a.Name.Local == "" {
			return fmt.Errorf("%w: attribute without a local name on %s", ErrEncoding, e.Name)
		}
		attrNames[i] = qualify(es.scope.attrPrefix(a.Name.Space, a.Prefix), a.Name.Local)
	}

	w.WriteString(es.color(PunctColor, "<"))
	w.WriteString(es.color(ElementColor, qname))
	for _, b := range es.scope.top().decls {
		name := "xmlns"
		if b.prefix != "" {
			name += ":" + b.prefix
		}
		es.writeAttr(w, NamespaceColor, name, b.uri)
	}
	for i := range e.Attrs {
		es.writeAttr(w, AttrNameColor, attrNames[i], e.Attrs[i].Value)
	}

	if len(e.Children) == 0 {
		if e.Text == "" {
			w.WriteString(es.color(PunctColor, "/>"))
			return nil
		}
		w.WriteString(es.color(PunctColor, ">"))
		w.WriteString(es.color(TextColor, textEscaper.Replace(e.Text)))
		es.writeEnd(w, qname)
		return nil
	}
	w.WriteString(es.color(PunctColor, ">"))
	es.depth++
	if t := strings.TrimSpace(e.Text); t != "" {
		es.writeNL(w)
		w.WriteString(es.color(TextColor, textEscaper.Replace(t)))
	}
	for _, c := range e.Children {
		es.writeNL(w)
		if err := es.element(w, c, nil); err != nil {
			return err
		}
	}
	es.depth--
	es.writeNL(w)
	es.writeEnd(w, qname)
	return nil
}

func (es *EncState) writeAttr(w *bufio.Writer, attr ColorAttr, name, value string) {
	w.WriteString(" ")
	w.WriteString(es.color(attr, name))
	w.WriteString(es.color(PunctColor, "="))
	w.WriteString(es.color(AttrValueColor, `"`+attrEscaper.Replace(value)+`"`))
}

func (es *EncState) writeEnd(w *bufio.Writer, qname string) {
	w.WriteString(es.color(PunctColor, "</"))
	w.WriteString(es.color(ElementColor, qname))
	w.WriteString(es.color(PunctColor, ">"))
}

func (es *EncState) writeNL(w *bufio.Writer) {
	if es.indent <= 0 {
		return
	}
	w.WriteString("\n")
	w.WriteString(strings.Repeat(" ", es.indent*es.depth))
}

func (es *EncState) color(a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(a, s)
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;")
)

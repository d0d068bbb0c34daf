package encode_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/signadot/descmerge/dom"
	"github.com/signadot/descmerge/encode"
	"github.com/signadot/descmerge/parse"

	"github.com/google/go-cmp/cmp"
)

const (
	javaee = "http://java.sun.com/xml/ns/javaee"
	cdk    = "http://richfaces.org/cdk/extensions"
)

func TestEncodeDeclaredNamespaces(t *testing.T) {
	root := dom.NewElement(javaee, "faces-config")
	root.SetPrefixedAttr(dom.Name{Space: dom.XSINamespace, Local: "schemaLocation"}, "xsi", javaee+" x.xsd")
	root.SetAttr(dom.Name{Local: "version"}, "2.0")
	root.Append(
		dom.NewElement(javaee, "name").WithText("a & b"),
		dom.NewElement(javaee, "component").Append(
			dom.NewElement(cdk, "tag").WithText("x")),
	)
	doc := &dom.Document{
		Root: root,
		Namespaces: []dom.Namespace{
			{Prefix: "", URI: javaee},
			{Prefix: "xsi", URI: dom.XSINamespace},
			{Prefix: "x0", URI: cdk},
		},
	}
	got := encode.MustString(doc)
	want := `<?xml version="1.0" encoding="UTF-8"?>
<faces-config xmlns="http://java.sun.com/xml/ns/javaee" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:x0="http://richfaces.org/cdk/extensions" xsi:schemaLocation="http://java.sun.com/xml/ns/javaee x.xsd" version="2.0">
    <name>a &amp; b</name>
    <component>
        <x0:tag>x</x0:tag>
    </component>
</faces-config>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeAutoDeclares(t *testing.T) {
	tests := []struct {
		name string
		doc  *dom.Document
		want string
	}{
		{
			name: "hint prefix",
			doc: &dom.Document{Root: dom.NewElement("", "a").Append(
				dom.NewElement(cdk, "b").WithPrefix("cdk"))},
			want: `<a><cdk:b xmlns:cdk="http://richfaces.org/cdk/extensions"/></a>`,
		},
		{
			name: "default undeclared",
			doc: &dom.Document{
				Root:       dom.NewElement(javaee, "a").Append(dom.NewElement("", "b")),
				Namespaces: []dom.Namespace{{URI: javaee}},
			},
			want: `<a xmlns="http://java.sun.com/xml/ns/javaee"><b xmlns=""/></a>`,
		},
		{
			name: "attribute needs a prefix",
			doc: func() *dom.Document {
				a := dom.NewElement(cdk, "a")
				a.SetAttr(dom.Name{Space: cdk, Local: "k"}, `"v"`)
				return &dom.Document{Root: a}
			}(),
			want: `<a xmlns="http://richfaces.org/cdk/extensions" xmlns:ns0="http://richfaces.org/cdk/extensions" ns0:k="&quot;v&quot;"/>`,
		},
		{
			name: "reserved hint replaced",
			doc:  &dom.Document{Root: dom.NewElement(cdk, "a").WithPrefix("xmlfoo")},
			want: `<ns0:a xmlns:ns0="http://richfaces.org/cdk/extensions"/>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encode.MustString(tt.doc, encode.EncodeIndent(0), encode.EncodeDeclaration(false))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	in := `<?xml version="1.0" encoding="UTF-8"?>
<facelet-taglib xmlns="http://java.sun.com/xml/ns/javaee" version="2.0">
    <namespace>http://richfaces.org/a4j</namespace>
    <tag>
        <tag-name>log</tag-name>
        <j:extra xmlns:j="urn:j" j:mode="x &lt; y">t</j:extra>
        <plain xmlns="">p</plain>
    </tag>
</facelet-taglib>`
	doc, err := parse.Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, buf); err != nil {
		t.Fatal(err)
	}
	again, err := parse.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("re-parse: %v\n%s", err, buf.String())
	}
	if doc.Root.Hash() != again.Root.Hash() {
		t.Errorf("round trip changed the tree:\n%s", buf.String())
	}
	if got := strings.TrimSpace(buf.String()); got != in {
		t.Errorf("round trip mismatch (-want +got):\n%s", cmp.Diff(in, got))
	}
}

func TestEncodeNoRoot(t *testing.T) {
	if err := encode.Encode(&dom.Document{}, bytes.NewBuffer(nil)); err == nil {
		t.Error("expected error")
	}
}

package facesconfig

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/signadot/descmerge/dom"
	"github.com/signadot/descmerge/encode"
	"github.com/signadot/descmerge/merge"
	"github.com/signadot/descmerge/parse"

	"github.com/google/go-cmp/cmp"
)

type input struct {
	path, xml string
}

func mustParse(t *testing.T, in string) *dom.Document {
	t.Helper()
	doc, err := parse.Parse([]byte(in))
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, in)
	}
	return doc
}

func run(t *testing.T, f *Family, inputs ...input) ([]merge.Output, error) {
	t.Helper()
	s := merge.NewSession(f)
	for _, in := range inputs {
		if err := s.Accept(in.path, mustParse(t, in.xml)); err != nil {
			s.Reset()
			return nil, err
		}
	}
	return s.Finalize()
}

func render(t *testing.T, outs []merge.Output) string {
	t.Helper()
	if len(outs) != 1 {
		t.Fatalf("got %d outputs, want 1", len(outs))
	}
	if outs[0].Path != Path {
		t.Errorf("output path %q", outs[0].Path)
	}
	return encode.MustString(outs[0].Doc)
}

const fcA = `<?xml version="1.0" encoding="UTF-8"?>
<faces-config xmlns="http://java.sun.com/xml/ns/javaee"
    xmlns:cdk="http://richfaces.org/cdk/extensions"
    version="2.0" metadata-complete="true">
  <name>richfaces</name>
  <ordering><after><others/></after></ordering>
  <application>
    <resource-handler>a.ResourceHandler</resource-handler>
  </application>
  <component>
    <component-type>b.Component</component-type>
    <component-class>b.UIComponent</component-class>
  </component>
  <render-kit>
    <render-kit-id>HTML_BASIC</render-kit-id>
    <renderer><renderer-type>r1</renderer-type></renderer>
  </render-kit>
  <cdk:extra>x</cdk:extra>
</faces-config>`

const fcB = `<faces-config>
  <name> richfaces </name>
  <application><el-resolver>b.Resolver</el-resolver></application>
  <component>
    <component-type>A.Component</component-type>
    <component-class>a.UIComponent</component-class>
  </component>
  <render-kit>
    <render-kit-id> HTML_BASIC </render-kit-id>
    <renderer><renderer-type>r2</renderer-type></renderer>
  </render-kit>
  <render-kit>
    <renderer><component-family>g</component-family></renderer>
  </render-kit>
  <factory><faces-context-factory>F</faces-context-factory></factory>
</faces-config>`

const fcMerged = `<?xml version="1.0" encoding="UTF-8"?>
<faces-config xmlns="http://java.sun.com/xml/ns/javaee" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:cdk="http://richfaces.org/cdk/extensions" version="2.0" metadata-complete="false" xsi:schemaLocation="http://java.sun.com/xml/ns/javaee http://java.sun.com/xml/ns/javaee/web-facesconfig_2_0.xsd">
    <application>
        <resource-handler>a.ResourceHandler</resource-handler>
        <el-resolver>b.Resolver</el-resolver>
    </application>
    <factory>
        <faces-context-factory>F</faces-context-factory>
    </factory>
    <component>
        <component-type>A.Component</component-type>
        <component-class>a.UIComponent</component-class>
    </component>
    <component>
        <component-type>b.Component</component-type>
        <component-class>b.UIComponent</component-class>
    </component>
    <name>richfaces</name>
    <render-kit>
        <renderer>
            <component-family>g</component-family>
        </renderer>
    </render-kit>
    <render-kit>
        <render-kit-id>HTML_BASIC</render-kit-id>
        <renderer>
            <renderer-type>r1</renderer-type>
        </renderer>
        <renderer>
            <renderer-type>r2</renderer-type>
        </renderer>
    </render-kit>
    <cdk:extra>x</cdk:extra>
</faces-config>`

func TestMerge(t *testing.T) {
	logBuf := bytes.NewBuffer(nil)
	f := New(WithLogger(slog.New(slog.NewTextHandler(logBuf, nil))))
	outs, err := run(t, f,
		input{"META-INF/a.faces-config.xml", fcA},
		input{"META-INF/faces-config.xml", fcB})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(fcMerged, render(t, outs)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(logBuf.String(), "element=ordering") {
		t.Errorf("ordering directive not logged: %s", logBuf.String())
	}
}

func TestOrderIndependence(t *testing.T) {
	inputs := []input{
		{"META-INF/1.faces-config.xml", `<faces-config xmlns="http://java.sun.com/xml/ns/javaee">
  <component><component-type>z</component-type></component>
  <validator><validator-id>v2</validator-id></validator>
  <render-kit><render-kit-id>k2</render-kit-id><renderer><renderer-type>a</renderer-type></renderer></render-kit>
  <lifecycle><phase-listener>P</phase-listener></lifecycle>
  <cdk:extra xmlns:cdk="http://richfaces.org/cdk/extensions">x</cdk:extra>
</faces-config>`},
		{"META-INF/2.faces-config.xml", `<faces-config xmlns="http://java.sun.com/xml/ns/javaee">
  <name>lib</name>
  <converter><converter-id>c</converter-id></converter>
  <component><component-type>M</component-type></component>
  <render-kit><render-kit-id>k1</render-kit-id><renderer><renderer-type>b</renderer-type></renderer></render-kit>
</faces-config>`},
		{"META-INF/faces-config.xml", `<faces-config>
  <component><component-type>a</component-type></component>
  <validator><validator-id>V1</validator-id></validator>
  <behavior><behavior-id>b</behavior-id></behavior>
  <application><locale-config/></application>
  <managed-bean><managed-bean-name>m1</managed-bean-name></managed-bean>
  <managed-bean><managed-bean-name>m2</managed-bean-name></managed-bean>
</faces-config>`},
	}
	var first string
	for _, perm := range permutations(len(inputs)) {
		var ordered []input
		for _, i := range perm {
			ordered = append(ordered, inputs[i])
		}
		outs, err := run(t, New(), ordered...)
		if err != nil {
			t.Fatal(err)
		}
		got := render(t, outs)
		if first == "" {
			first = got
			continue
		}
		if diff := cmp.Diff(first, got); diff != "" {
			t.Errorf("order %v changed the output (-first +got):\n%s", perm, diff)
		}
	}
}

func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var res [][]int
	for _, p := range permutations(n - 1) {
		for i := 0; i <= len(p); i++ {
			q := slices.Insert(slices.Clone(p), i, n-1)
			res = append(res, q)
		}
	}
	return res
}

func TestName(t *testing.T) {
	doc := func(name string) string {
		return `<faces-config xmlns="http://java.sun.com/xml/ns/javaee"><name>` + name + `</name></faces-config>`
	}
	tests := []struct {
		name  string
		names []string
		want  string
		err   error
	}{
		{"conflict", []string{"a", "b"}, "", merge.ErrConflictingValue},
		{"same", []string{"a", " a "}, "a", nil},
		{"empty first", []string{"", "b"}, "b", nil},
		{"empty later", []string{"a", ""}, "a", nil},
		{"none", []string{"", ""}, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inputs []input
			for i, n := range tt.names {
				inputs = append(inputs, input{path: "META-INF/" + string(rune('a'+i)) + ".faces-config.xml", xml: doc(n)})
			}
			outs, err := run(t, New(), inputs...)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("got %v want %v", err, tt.err)
				}
				var cv *merge.ConflictingValueError
				if !errors.As(err, &cv) || cv.FirstFile != inputs[0].path || cv.SecondFile != inputs[1].path {
					t.Errorf("conflict does not name both files: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			got := ""
			if e := outs[0].Doc.Root.Child("name", javaeeNS); e != nil {
				got = e.Text
			}
			if got != tt.want {
				t.Errorf("name %q want %q", got, tt.want)
			}
		})
	}
}

func TestMetadataComplete(t *testing.T) {
	doc := func(v string) string {
		if v == "" {
			return `<faces-config/>`
		}
		return `<faces-config metadata-complete="` + v + `"/>`
	}
	tests := []struct {
		name   string
		values []string
		want   string
		set    bool
	}{
		{"all true", []string{"true", "true"}, "true", true},
		{"true absent", []string{"true", ""}, "false", true},
		{"absent true", []string{"", "true"}, "false", true},
		{"not exactly true", []string{"TRUE"}, "false", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inputs []input
			for _, v := range tt.values {
				inputs = append(inputs, input{"META-INF/faces-config.xml", doc(v)})
			}
			outs, err := run(t, New(), inputs...)
			if err != nil {
				t.Fatal(err)
			}
			got, ok := outs[0].Doc.Root.Attr(dom.Name{Local: metadataComplete})
			if got != tt.want || ok != tt.set {
				t.Errorf("got %q, %v", got, ok)
			}
		})
	}
	outs, err := New().Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := outs[0].Doc.Root.Attr(dom.Name{Local: metadataComplete}); ok {
		t.Errorf("metadata-complete set with no inputs")
	}
}

func TestRenderKitGroups(t *testing.T) {
	rk := func(id, renderer string) string {
		return `<faces-config xmlns="http://java.sun.com/xml/ns/javaee"><render-kit><render-kit-id>` + id +
			`</render-kit-id><render-kit-class>C` + id + `</render-kit-class><renderer><renderer-type>` + renderer +
			`</renderer-type></renderer></render-kit></faces-config>`
	}
	outs, err := run(t, New(),
		input{"META-INF/a.faces-config.xml", rk("K", "r1")},
		input{"META-INF/b.faces-config.xml", rk("K", "r2")},
		input{"META-INF/c.faces-config.xml", rk("L", "r3")})
	if err != nil {
		t.Fatal(err)
	}
	var got [][]string
	for _, kit := range outs[0].Doc.Root.Children {
		var names []string
		for _, c := range kit.Children {
			names = append(names, c.Name.Local+"="+c.TrimmedText())
		}
		got = append(got, names)
	}
	want := [][]string{
		{"render-kit-id=K", "render-kit-class=CK", "render-kit-class=CK", "renderer=r1", "renderer=r2"},
		{"render-kit-id=L", "render-kit-class=CL", "renderer=r3"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("render-kit mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	in := mustParse(t, fcA)
	outs, err := run(t, New(), input{"META-INF/faces-config.xml", fcA})
	if err != nil {
		t.Fatal(err)
	}
	// every leaf of the input except the dropped ordering directive
	// survives the merge
	want := leaves(in.Root)
	want = slices.DeleteFunc(want, func(s string) bool { return strings.HasPrefix(s, "ordering/") })
	got := leaves(outs[0].Doc.Root)
	for _, w := range want {
		if !slices.Contains(got, w) {
			t.Errorf("%s lost in merge; got %v", w, got)
		}
	}
}

func leaves(root *dom.Element) []string {
	var res []string
	var walk func(prefix string, e *dom.Element)
	walk = func(prefix string, e *dom.Element) {
		p := prefix + e.Name.String()
		if len(e.Children) == 0 {
			res = append(res, p+"="+e.TrimmedText())
			return
		}
		for _, c := range e.Children {
			walk(p+"/", c)
		}
	}
	for _, c := range root.Children {
		walk("", c)
	}
	for i, s := range res {
		res[i] = strings.ReplaceAll(s, "{"+javaeeNS+"}", "")
	}
	return res
}

func TestMalformedRoot(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"wrong name", `<faces-configuration/>`},
		{"wrong namespace", `<faces-config xmlns="urn:other"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, New(), input{"META-INF/faces-config.xml", tt.xml})
			if !errors.Is(err, merge.ErrMalformedInput) {
				t.Errorf("got %v", err)
			}
		})
	}
}

func TestGoverningAttributes(t *testing.T) {
	in := `<faces-config xmlns="http://java.sun.com/xml/ns/javaee" xmlns:j="http://java.sun.com/xml/ns/javaee">
  <component j:foo="1"><component-type>a</component-type></component>
  <component j:foo="2"><component-type>b</component-type></component>
</faces-config>`
	outs, err := run(t, New(), input{Path, in})
	if err != nil {
		t.Fatal(err)
	}
	got := render(t, outs)
	if n := strings.Count(got, `xmlns:j="http://java.sun.com/xml/ns/javaee"`); n != 1 {
		t.Errorf("attribute prefix declared %d times:\n%s", n, got)
	}
	for _, want := range []string{`<component j:foo="1">`, `<component j:foo="2">`} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in\n%s", want, got)
		}
	}
	if strings.Contains(got, "xmlns:ns") {
		t.Errorf("namespace redeclared per element:\n%s", got)
	}
}

func TestSessionReuse(t *testing.T) {
	f := New()
	s := merge.NewSession(f)
	bad := mustParse(t, `<faces-config><name>a</name></faces-config>`)
	conflict := mustParse(t, `<faces-config><name>b</name></faces-config>`)
	if err := s.Accept("META-INF/faces-config.xml", bad); err != nil {
		t.Fatal(err)
	}
	if err := s.Accept("META-INF/x.faces-config.xml", conflict); err == nil {
		t.Fatal("expected conflict")
	}
	if _, err := s.Finalize(); err == nil {
		t.Fatal("expected error from failed session")
	}
	if err := s.Accept("META-INF/faces-config.xml", conflict); err != nil {
		t.Fatalf("state leaked into next session: %v", err)
	}
	outs, err := s.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if got := outs[0].Doc.Root.Child("name", javaeeNS).Text; got != "b" {
		t.Errorf("name %q", got)
	}
}

func TestProfiles(t *testing.T) {
	schema, err := Profile("jakarta-3.0")
	if err != nil {
		t.Fatal(err)
	}
	outs, err := run(t, New(WithSchema(schema)),
		input{"META-INF/faces-config.xml", `<faces-config xmlns="http://java.sun.com/xml/ns/javaee"><name>a</name></faces-config>`},
		input{"META-INF/b.faces-config.xml", `<faces-config xmlns="http://xmlns.jcp.org/xml/ns/javaee"><component><component-type>t</component-type></component></faces-config>`})
	if err != nil {
		t.Fatal(err)
	}
	root := outs[0].Doc.Root
	if root.Name.Space != merge.JakartaNamespace || root.AttrValue("version") != "3.0" {
		t.Errorf("root %v version %q", root.Name, root.AttrValue("version"))
	}
	for _, c := range root.Children {
		if c.Name.Space != merge.JakartaNamespace {
			t.Errorf("%v not moved into %s", c.Name, merge.JakartaNamespace)
		}
	}
	if _, err := Profile("nope"); err == nil {
		t.Errorf("expected error for unknown profile")
	}
}

func TestMatches(t *testing.T) {
	f := New()
	tests := []struct {
		path string
		want bool
	}{
		{"META-INF/faces-config.xml", true},
		{"META-INF/richfaces.faces-config.xml", true},
		{"META-INF/faces-config.xml.bak", false},
		{"META-INF/sub/faces-config.xml", false},
		{"WEB-INF/faces-config.xml", false},
		{"META-INF/myfaces-config.xml", false},
	}
	for _, tt := range tests {
		if got := f.Matches(tt.path); got != tt.want {
			t.Errorf("Matches(%q) = %v", tt.path, got)
		}
	}
}

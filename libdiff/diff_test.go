package libdiff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	from := "a\nb\nc\nd\n"
	to := "a\nc\nd\ne\n"
	got := Lines(from, to)
	want := []Hunk{
		{Op: Equal, Lines: []string{"a"}},
		{Op: Delete, Lines: []string{"b"}},
		{Op: Equal, Lines: []string{"c", "d"}},
		{Op: Insert, Lines: []string{"e"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("hunks mismatch (-want +got):\n%s", diff)
	}
	if !Changed(got) {
		t.Errorf("expected change")
	}
	if Changed(Lines(from, from)) {
		t.Errorf("identical input reported as changed")
	}
}

func TestWrite(t *testing.T) {
	var from, to []string
	for _, c := range "abcdefghij" {
		from = append(from, string(c))
		to = append(to, string(c))
	}
	to[0] = "A"
	to[9] = "J"
	buf := bytes.NewBuffer(nil)
	if err := Write(buf, Lines(strings.Join(from, "\n"), strings.Join(to, "\n")), WriteContext(2)); err != nil {
		t.Fatal(err)
	}
	want := `- a
+ A
  b
  c
@@ 4 unchanged lines @@
  h
  i
- j
+ J
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteColors(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if err := Write(buf, Lines("x\n", "y\n"), WriteColors(true)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected escape sequences in %q", buf.String())
	}
}

package mappings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMerge(t *testing.T) {
	s := New()
	if !s.Matches(DefaultPath) || s.Matches("META-INF/resource-mappings.properties") {
		t.Errorf("unexpected Matches result")
	}
	s.Add("b", []byte("b.js=x/b.js\r\nc.js=x/c.js"))
	s.Add("a", []byte("a.css=x/a.css\n"))
	s.Add("b2", []byte("b.js=x/b.js\nc.js=x/c.js\n"))
	data, ok := s.Finish()
	if !ok {
		t.Fatal("expected output")
	}
	want := "a.css=x/a.css\nb.js=x/b.js\nc.js=x/c.js\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if s.Len() != 0 {
		t.Errorf("set not reset after Finish")
	}
	if _, ok := s.Finish(); ok {
		t.Errorf("empty set produced output")
	}
}

func TestWithPath(t *testing.T) {
	s := New(WithPath("META-INF/custom.properties"))
	if !s.Matches("META-INF/custom.properties") || s.Matches(DefaultPath) {
		t.Errorf("path option ignored")
	}
	if New(WithPath("")).Path() != DefaultPath {
		t.Errorf("empty path must keep the default")
	}
}

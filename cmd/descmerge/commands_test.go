package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"
)

type testOut struct {
	bytes.Buffer
}

func (*testOut) Close() error { return nil }

func testContext() (*cli.Context, *testOut) {
	out := &testOut{}
	return &cli.Context{
		In:  io.NopCloser(strings.NewReader("")),
		Out: out,
		Err: &testOut{},
		Env: os.Environ(),
		Go:  context.Background(),
	}, out
}

func TestMainCommand(t *testing.T) {
	cmd := MainCommand()
	var names []string
	for _, sub := range cmd.Children {
		names = append(names, sub.Name)
	}
	if diff := cmp.Diff([]string{"merge", "check", "assemble", "schemas"}, names); diff != "" {
		t.Errorf("subcommands (-want +got):\n%s", diff)
	}
	cc, out := testContext()
	for alias, want := range map[string]string{"m": "merge", "c": "check", "a": "assemble"} {
		sub := cmd.FindSub(cc, alias)
		if sub == nil || sub.Name != want {
			t.Errorf("alias %q: got %v, want %s", alias, sub, want)
		}
	}
	if err := cmd.Run(cc, []string{"schemas"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "faces-config\t") || !strings.Contains(out.String(), "taglib\t") {
		t.Errorf("schemas output:\n%s", out.String())
	}
}

const (
	checkA = `<faces-config xmlns="http://java.sun.com/xml/ns/javaee" version="2.0">
  <component>
    <component-type>a</component-type>
    <component-class>A</component-class>
  </component>
</faces-config>`
	checkB = `<faces-config xmlns="http://java.sun.com/xml/ns/javaee" version="2.0">
  <component>
    <component-type>b</component-type>
    <component-class>B</component-class>
  </component>
</faces-config>`
)

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.xml", checkA)
	b := writeFile(t, dir, "b.xml", checkB)
	sel := familySel{family: "faces"}
	opts := (&MainConfig{Indent: 4}).fileEncOpts()
	log := newLog(io.Discard, true)

	both, err := mergeFiles(sel, log, opts, []string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	matching := writeFile(t, dir, "want.xml", string(both[0].Data))
	cc, out := testContext()
	if err := MainCommand().Run(cc, []string{"-q", "check", "-family", "faces", matching, a, b}); err != nil {
		t.Fatalf("matching check: %v\n%s", err, out.String())
	}
	if out.Len() != 0 {
		t.Errorf("matching check wrote output:\n%s", out.String())
	}

	one, err := mergeFiles(sel, log, opts, []string{a})
	if err != nil {
		t.Fatal(err)
	}
	differing := writeFile(t, dir, "stale.xml", string(one[0].Data))
	cc, out = testContext()
	err = MainCommand().Run(cc, []string{"-q", "c", differing, a, b})
	var code cli.ExitCodeErr
	if !errors.As(err, &code) || code != 1 {
		t.Fatalf("differing check: got %v, want exit code 1", err)
	}
	diff := out.String()
	if !strings.Contains(diff, "+ ") || !strings.Contains(diff, "<component-type>b</component-type>") {
		t.Errorf("diff does not show the added component:\n%s", diff)
	}
}

// Package libdiff computes and renders line diffs of encoded documents.
package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

// Hunk is a run of lines sharing an Op.
type Hunk struct {
	Op    Op
	Lines []string
}

// Lines diffs from and to line by line.
func Lines(from, to string) []Hunk {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	res := make([]Hunk, 0, len(diffs))
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		ls := splitLines(d.Text)
		if len(ls) == 0 {
			continue
		}
		if n := len(res); n > 0 && res[n-1].Op == op {
			res[n-1].Lines = append(res[n-1].Lines, ls...)
			continue
		}
		res = append(res, Hunk{Op: op, Lines: ls})
	}
	return res
}

// Changed reports whether any hunk is not Equal.
func Changed(hunks []Hunk) bool {
	for i := range hunks {
		if hunks[i].Op != Equal {
			return true
		}
	}
	return false
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

package cavif

import (
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"testing/iotest"
)

func TestReadLinesHasNoLengthLimit(t *testing.T) {
	long := strings.Repeat("x", 1<<20)
	var got []string
	readLines(strings.NewReader(long+"\nshort\r\ntail"), func(line string) {
		got = append(got, line)
	}, nil)

	want := []string{long, "short", "tail"}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected lines: got %d lines, first len %d", len(got), len(got[0]))
	}
}

func TestReadLinesReportsReadError(t *testing.T) {
	r := io.MultiReader(strings.NewReader("first\n"), iotest.ErrReader(errors.New("boom")))

	var lines, errs []string
	readLines(r, func(line string) { lines = append(lines, line) }, func(msg string) { errs = append(errs, msg) })

	if !slices.Equal(lines, []string{"first"}) {
		t.Fatalf("unexpected lines %q", lines)
	}
	if len(errs) != 1 || errs[0] != "read output: boom" {
		t.Fatalf("unexpected errors %q", errs)
	}
}

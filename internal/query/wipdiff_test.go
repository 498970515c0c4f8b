package query

import (
	"testing"

	difflib "github.com/ianbruene/go-difflib/difflib"
)

func TestDetectLineEndingPicksCRLFWhenDominant(t *testing.T) {
	text := "a\r\nb\r\nc\r\nd\n"
	if got := detectLineEnding(text); got != "\r\n" {
		t.Fatalf("expected \\r\\n, got %q", got)
	}
}

func TestDetectLineEndingDefaultsToLF(t *testing.T) {
	text := "a\nb\nc\nd\r\n"
	if got := detectLineEnding(text); got != "\n" {
		t.Fatalf("expected \\n, got %q", got)
	}
}

func TestConvertLinesToHunksGroupsNearbyChanges(t *testing.T) {
	oldLines := []string{"1\n", "2\n", "3\n", "4\n", "5\n", "6\n", "7\n", "8\n", "9\n", "10\n"}
	newLines := []string{"1\n", "2\n", "CHANGED\n", "4\n", "5\n", "6\n", "7\n", "8\n", "CHANGED2\n", "10\n"}

	differ := difflib.NewMatcherWithJunk(oldLines, newLines, true, nil)
	hunks := convertLinesToHunks(oldLines, newLines, differ.GetOpCodes(), "\n")

	if len(hunks) != 1 {
		t.Fatalf("expected the two nearby changes to merge into one hunk, got %d hunks", len(hunks))
	}
	for _, h := range hunks {
		for _, l := range h.Lines {
			if l.HunkIndex != h.Index {
				t.Fatalf("line hunk_index %d does not match enclosing hunk index %d", l.HunkIndex, h.Index)
			}
		}
	}
}

func TestConvertLinesToHunksNoChangesIsEmpty(t *testing.T) {
	lines := []string{"a\n", "b\n"}
	differ := difflib.NewMatcherWithJunk(lines, lines, true, nil)
	hunks := convertLinesToHunks(lines, lines, differ.GetOpCodes(), "\n")
	if len(hunks) != 0 {
		t.Fatalf("expected no hunks for identical input, got %d", len(hunks))
	}
}

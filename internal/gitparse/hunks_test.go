package gitparse

import "testing"

func TestHunkHeaderRanges(t *testing.T) {
	cases := []struct {
		header              string
		oldStart, oldLen    int
		newStart, newLen    int
	}{
		{"@@ -0,0 +1,26 @@", 0, 0, 1, 26},
		{"@@ -1 +1,2 @@", 1, 1, 1, 2},
	}
	for _, c := range cases {
		hunks, isBinary := ParseHunks(c.header + "\n+line one\n")
		if isBinary {
			t.Fatalf("unexpected binary for %q", c.header)
		}
		if len(hunks) != 1 {
			t.Fatalf("expected 1 hunk for %q, got %d", c.header, len(hunks))
		}
		h := hunks[0]
		if h.OldRange.Start != c.oldStart || h.OldRange.Length != c.oldLen {
			t.Fatalf("%q: old range got %+v", c.header, h.OldRange)
		}
		if h.NewRange.Start != c.newStart || h.NewRange.Length != c.newLen {
			t.Fatalf("%q: new range got %+v", c.header, h.NewRange)
		}
	}
}

func TestParseHunksBinary(t *testing.T) {
	hunks, isBinary := ParseHunks("diff --git a/x.png b/x.png\nBinary files a/x.png and b/x.png differ\n")
	if !isBinary {
		t.Fatalf("expected binary detection")
	}
	if len(hunks) != 0 {
		t.Fatalf("expected zero hunks for binary diff")
	}
}

func TestFlattenHunksIndexing(t *testing.T) {
	hunks, _ := ParseHunks("@@ -1,2 +1,2 @@\n-old\n+new\n unchanged\n")
	flat := FlattenHunks(hunks)
	if len(flat) == 0 {
		t.Fatalf("expected flattened lines")
	}
	last := flat[len(flat)-1]
	if last.Status != "HeaderStart" || last.HunkIndex != -1 {
		t.Fatalf("expected terminal HeaderStart(-1) sentinel, got %+v", last)
	}
	for _, l := range flat {
		if l.Status != "HeaderStart" && l.Status != "HeaderEnd" && l.HunkIndex != hunks[0].Index {
			t.Fatalf("line %+v hunk_index does not match enclosing hunk", l)
		}
	}
}

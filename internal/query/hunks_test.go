package query

import (
	"testing"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

func TestSplitViewPadsShorterSide(t *testing.T) {
	hunk := gitfiend.Hunk{
		Index: 0,
		Lines: []gitfiend.HunkLine{
			{Status: gitfiend.LineRemoved, Text: "old 1"},
			{Status: gitfiend.LineRemoved, Text: "old 2"},
			{Status: gitfiend.LineAdded, Text: "new 1"},
			{Status: gitfiend.LineUnchanged, Text: "shared"},
		},
	}
	left, right := SplitView(hunk)
	if len(left.Lines) != len(right.Lines) {
		t.Fatalf("expected aligned columns, got left=%d right=%d", len(left.Lines), len(right.Lines))
	}
	// two removed, one added -> right padded with one Skip before the
	// shared unchanged line.
	if right.Lines[1].Status != gitfiend.LineSkip {
		t.Fatalf("expected padding Skip on the right, got %+v", right.Lines[1])
	}
}

func TestSplitViewEmptyWhenOnlyTrivialUnchanged(t *testing.T) {
	hunk := gitfiend.Hunk{
		Lines: []gitfiend.HunkLine{
			{Status: gitfiend.LineUnchanged, Text: ""},
		},
	}
	left, right := SplitView(hunk)
	if len(left.Lines) != 0 || len(right.Lines) != 0 {
		t.Fatalf("expected empty streams, got left=%+v right=%+v", left, right)
	}
}

func TestSplitViewNonTrivialUnchangedIsKept(t *testing.T) {
	hunk := gitfiend.Hunk{
		Lines: []gitfiend.HunkLine{
			{Status: gitfiend.LineUnchanged, Text: "real content"},
		},
	}
	left, right := SplitView(hunk)
	if len(left.Lines) != 1 || len(right.Lines) != 1 {
		t.Fatalf("expected content kept on both sides, got left=%+v right=%+v", left, right)
	}
}

package query

import (
	"testing"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

func TestLoadRefDiffsComputesFourCounts(t *testing.T) {
	commits := []gitfiend.Commit{
		{ID: "H", ParentIDs: []string{"A"}},
		{ID: "L1", ParentIDs: []string{"A"}},
		{ID: "R1", ParentIDs: []string{"B"}},
		{ID: "A", ParentIDs: []string{"B"}},
		{ID: "B", ParentIDs: nil},
	}
	refs := []gitfiend.RefInfo{
		{ID: "refs/heads/main", RefType: gitfiend.RefBranch, Location: gitfiend.Local, Head: true, CommitID: "H", SiblingID: ""},
		{ID: "refs/heads/feature", RefType: gitfiend.RefBranch, Location: gitfiend.Local, CommitID: "L1", SiblingID: "refs/remotes/origin/feature"},
		{ID: "refs/remotes/origin/feature", RefType: gitfiend.RefBranch, Location: gitfiend.Remote, RemoteName: "origin", CommitID: "R1", SiblingID: "refs/heads/feature"},
	}

	diffs, err := LoadRefDiffs(nil, nil, "", commits, refs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diffs) != 1 {
		t.Fatalf("expected 1 diff, got %d: %+v", len(diffs), diffs)
	}
	d := diffs[0]
	if d.LocalID != "refs/heads/feature" || d.RemoteID != "refs/remotes/origin/feature" {
		t.Fatalf("unexpected ids: %+v", d)
	}
	if d.LocalAheadOfRemote != 2 {
		t.Fatalf("expected LocalAheadOfRemote=2, got %d", d.LocalAheadOfRemote)
	}
	if d.LocalBehindRemote != 1 {
		t.Fatalf("expected LocalBehindRemote=1, got %d", d.LocalBehindRemote)
	}
	if d.LocalAheadOfHead != 1 {
		t.Fatalf("expected LocalAheadOfHead=1, got %d", d.LocalAheadOfHead)
	}
	if d.LocalBehindHead != 1 {
		t.Fatalf("expected LocalBehindHead=1, got %d", d.LocalBehindHead)
	}
}

func TestLoadRefDiffsSkipsBranchesWithoutSibling(t *testing.T) {
	commits := []gitfiend.Commit{{ID: "H"}}
	refs := []gitfiend.RefInfo{
		{ID: "refs/heads/main", RefType: gitfiend.RefBranch, Location: gitfiend.Local, Head: true, CommitID: "H"},
	}
	diffs, err := LoadRefDiffs(nil, nil, "", commits, refs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diffs) != 0 {
		t.Fatalf("expected no diffs, got %d", len(diffs))
	}
}

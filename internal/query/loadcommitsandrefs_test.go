package query

import (
	"testing"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

func dated(id string, ms int64) gitfiend.Commit {
	return gitfiend.Commit{ID: id, Date: gitfiend.Date{Ms: ms}}
}

func TestMergeStashesByDateInterleaves(t *testing.T) {
	commits := []gitfiend.Commit{dated("c3", 300), dated("c1", 100)}
	stashes := []gitfiend.Commit{dated("s1", 200)}

	merged := mergeStashesByDate(commits, stashes)
	if len(merged) != 3 {
		t.Fatalf("expected 3 commits, got %d", len(merged))
	}
	if merged[0].ID != "c3" || merged[1].ID != "s1" || merged[2].ID != "c1" {
		t.Fatalf("expected descending-date order c3,s1,c1, got %+v", ids(merged))
	}
}

func TestMergeStashesByDateNoStashesReturnsSameOrder(t *testing.T) {
	commits := []gitfiend.Commit{dated("c1", 100), dated("c2", 50)}
	merged := mergeStashesByDate(commits, nil)
	if len(merged) != 2 || merged[0].ID != "c1" || merged[1].ID != "c2" {
		t.Fatalf("expected original order preserved, got %+v", ids(merged))
	}
}

func ids(commits []gitfiend.Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.ID
	}
	return out
}

package query

import (
	"testing"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

func TestTextSearchMatchesMessageCaseInsensitively(t *testing.T) {
	commits := []gitfiend.Commit{
		{ID: "abc123", Author: "Alice", Email: "a@x.com", Message: "Fix WIDGET rendering"},
		{ID: "def456", Author: "Bob", Email: "b@x.com", Message: "unrelated"},
	}
	results := TextSearch(commits, nil, noPatches, "widget", 10)
	if len(results) != 1 || results[0].CommitID != "abc123" {
		t.Fatalf("expected one match on abc123, got %+v", results)
	}
	if !results[0].MatchMsg {
		t.Fatalf("expected MatchMsg true, got %+v", results[0])
	}
}

func TestTextSearchStopsAtNumResults(t *testing.T) {
	commits := []gitfiend.Commit{
		{ID: "a1", Message: "needle"},
		{ID: "a2", Message: "needle"},
		{ID: "a3", Message: "needle"},
	}
	results := TextSearch(commits, nil, noPatches, "needle", 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestTextSearchMatchesFileName(t *testing.T) {
	commits := []gitfiend.Commit{{ID: "c1", Message: "unrelated"}}
	patchesOf := func(id string) []gitfiend.Patch {
		return []gitfiend.Patch{{CommitID: id, NewFile: "src/Widget.go", PatchType: gitfiend.PatchModified}}
	}
	results := TextSearch(commits, nil, patchesOf, "widget", 10)
	if len(results) != 1 || len(results[0].Files) != 1 {
		t.Fatalf("expected one file match, got %+v", results)
	}
}

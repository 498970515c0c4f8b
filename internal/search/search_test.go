package search

import (
	"testing"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

func TestParseSearchResultsSplitsPerCommit(t *testing.T) {
	output := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa,\x00M\x00file1.go\x00" +
		"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb,\x00A\x00file2.go\x00"

	results := parseSearchResults(output)
	if len(results) != 2 {
		t.Fatalf("expected 2 commit results, got %d: %+v", len(results), results)
	}
	if results[0].CommitID != "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" {
		t.Fatalf("unexpected first commit id: %s", results[0].CommitID)
	}
	if len(results[0].Matches) != 1 || results[0].Matches[0].FileName != "file1.go" {
		t.Fatalf("expected one match file1.go, got %+v", results[0].Matches)
	}
	if len(results[1].Matches) != 1 || results[1].Matches[0].FileName != "file2.go" {
		t.Fatalf("expected one match file2.go, got %+v", results[1].Matches)
	}
}

func TestControllerIDsAreMonotonicFromOne(t *testing.T) {
	c := NewController(nil)
	first := c.nextID()
	second := c.nextID()
	if first != 1 || second != 2 {
		t.Fatalf("expected ids 1,2, got %d,%d", first, second)
	}
}

func TestClearCompletedSearchesRemovesOnlyCompleted(t *testing.T) {
	c := NewController(nil)
	// Populate entries directly rather than via StartDiffSearch, which
	// spawns a background worker that needs a real Env.
	c.searches[1] = &gitfiend.DiffSearch{SearchID: 1, Completed: true}
	c.searches[2] = &gitfiend.DiffSearch{SearchID: 2, Completed: false}

	c.ClearCompletedSearches()

	if _, _, found := c.PollDiffSearch(1); found {
		t.Fatalf("expected completed search removed")
	}
	if _, _, found := c.PollDiffSearch(2); !found {
		t.Fatalf("expected pending search to remain")
	}
}

package store

import (
	"testing"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

func TestSetCommitsReplacesWholesale(t *testing.T) {
	s := New()
	s.SetCommits("/repo", []gitfiend.Commit{{ID: "a"}, {ID: "b"}})
	got, ok := s.Commits("/repo")
	if !ok || len(got) != 2 {
		t.Fatalf("expected 2 commits, got %+v ok=%v", got, ok)
	}

	s.SetCommits("/repo", []gitfiend.Commit{{ID: "c"}})
	got, ok = s.Commits("/repo")
	if !ok || len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("expected wholesale replacement, got %+v", got)
	}
}

func TestCommitsSnapshotIsIndependent(t *testing.T) {
	s := New()
	s.SetCommits("/repo", []gitfiend.Commit{{ID: "a"}})
	got, _ := s.Commits("/repo")
	got[0].ID = "mutated"

	fresh, _ := s.Commits("/repo")
	if fresh[0].ID != "a" {
		t.Fatalf("mutating a snapshot must not affect the store, got %q", fresh[0].ID)
	}
}

func TestPatchesInsertPerKey(t *testing.T) {
	s := New()
	s.SetPatches("/repo", "c1", []gitfiend.Patch{{ID: "p1"}})
	s.SetPatches("/repo", "c2", []gitfiend.Patch{{ID: "p2"}})

	all := s.AllPatches("/repo")
	if len(all) != 2 {
		t.Fatalf("expected 2 commit entries, got %d", len(all))
	}

	p, ok := s.Patches("/repo", "c1")
	if !ok || len(p) != 1 || p[0].ID != "p1" {
		t.Fatalf("unexpected patches for c1: %+v", p)
	}
}

func TestClearCacheIsIdempotent(t *testing.T) {
	s := New()
	s.SetCommits("/repo", []gitfiend.Commit{{ID: "a"}})
	s.SetPatches("/repo", "c1", []gitfiend.Patch{{ID: "p1"}})

	s.ClearCache("/repo")
	if _, ok := s.Commits("/repo"); ok {
		t.Fatalf("expected commits cleared")
	}
	if _, ok := s.Patches("/repo", "c1"); ok {
		t.Fatalf("expected patches cleared")
	}

	// idempotent: clearing again must not panic
	s.ClearCache("/repo")
}

func TestClearAllCaches(t *testing.T) {
	s := New()
	s.SetCommits("/repoA", []gitfiend.Commit{{ID: "a"}})
	s.SetCommits("/repoB", []gitfiend.Commit{{ID: "b"}})

	s.ClearAllCaches()
	if _, ok := s.Commits("/repoA"); ok {
		t.Fatalf("expected repoA cleared")
	}
	if _, ok := s.Commits("/repoB"); ok {
		t.Fatalf("expected repoB cleared")
	}
}

func TestDirtyFlag(t *testing.T) {
	s := New()
	if s.IsDirty("/repo") {
		t.Fatalf("expected clean by default")
	}
	s.SetDirty("/repo", true)
	if !s.IsDirty("/repo") {
		t.Fatalf("expected dirty after SetDirty(true)")
	}
	s.ClearCache("/repo")
	if s.IsDirty("/repo") {
		t.Fatalf("expected clear after ClearCache")
	}
}

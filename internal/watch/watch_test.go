package watch

import "testing"

func TestShouldTrackPathFiltersIndexAndObjects(t *testing.T) {
	cases := map[string]bool{
		"/repo/.git/index":          false,
		"/repo/.git/objects/ab/cd":  false,
		"/repo/.git/HEAD":           true,
		"/repo/.git/ORIG_HEAD":      true,
		"/repo/.git/logs/HEAD":      false,
		"/repo/src/main.go":         true,
	}
	for path, want := range cases {
		if got := shouldTrackPath(path); got != want {
			t.Errorf("shouldTrackPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestLongestWatchedPrefixPicksDeepestRepo(t *testing.T) {
	r := &Registry{dirty: map[string]bool{
		"/work":          false,
		"/work/sub/repo": false,
	}}
	got := r.longestWatchedPrefix("/work/sub/repo/.git/HEAD")
	if got != "/work/sub/repo" {
		t.Fatalf("expected /work/sub/repo, got %q", got)
	}
}

func TestRepoChangedFlagLifecycle(t *testing.T) {
	r := NewRegistry()
	r.dirty["/repo"] = false
	if r.RepoHasChanged("/repo") {
		t.Fatalf("expected clean flag initially")
	}
	r.dirty["/repo"] = true
	if !r.RepoHasChanged("/repo") {
		t.Fatalf("expected dirty flag set")
	}
	r.ClearRepoChangedStatus("/repo")
	if r.RepoHasChanged("/repo") {
		t.Fatalf("expected flag cleared")
	}
}

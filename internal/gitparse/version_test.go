package gitparse

import "testing"

func TestParseGitVersion(t *testing.T) {
	cases := []struct {
		in                     string
		major, minor, patch int
	}{
		{"git version 2.32.0", 2, 32, 0},
		{"git version 2.32", 2, 32, 0},
		{"git version 2.32.1 (Apple Git-133)", 2, 32, 1},
		{"git version 2.37.3.windows.1", 2, 37, 3},
	}
	for _, c := range cases {
		got, ok := ParseGitVersion(c.in)
		if !ok {
			t.Fatalf("%q: expected a parse", c.in)
		}
		if got.Major != c.major || got.Minor != c.minor || got.Patch != c.patch {
			t.Fatalf("%q: got %+v, want (%d,%d,%d)", c.in, got, c.major, c.minor, c.patch)
		}
	}
}

func TestParseGitVersionRejectsGarbage(t *testing.T) {
	if _, ok := ParseGitVersion("not a version string"); ok {
		t.Fatalf("expected no parse for garbage input")
	}
}

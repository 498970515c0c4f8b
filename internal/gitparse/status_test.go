package gitparse

import "testing"

func TestParseNameStatusZRename(t *testing.T) {
	patches := ParseNameStatusZ("R100\x00src/a.ts\x00src/b.ts\x00", "c1")
	if len(patches) != 1 {
		t.Fatalf("expected 1 patch, got %d", len(patches))
	}
	p := patches[0]
	if p.PatchType != "R" || p.OldFile != "src/a.ts" || p.NewFile != "src/b.ts" || p.ID != "src/b.ts-R100" {
		t.Fatalf("got %+v", p)
	}
}

func TestParseStatusZPorcelainRename(t *testing.T) {
	patches := ParseStatusZ("R  src/a.ts\x00src/b.ts\x00")
	if len(patches) != 1 {
		t.Fatalf("expected 1 patch, got %d", len(patches))
	}
	p := patches[0]
	if p.StagedType != "R" || p.UnStagedType != "" {
		t.Fatalf("got staged=%q unstaged=%q", p.StagedType, p.UnStagedType)
	}
	if p.OldFile != "src/b.ts" || p.NewFile != "src/a.ts" {
		t.Fatalf("got old=%q new=%q", p.OldFile, p.NewFile)
	}
}

func TestIsConflict(t *testing.T) {
	cases := []struct {
		staged, unstaged byte
		want             bool
	}{
		{'U', ' ', true},
		{' ', 'U', true},
		{'A', 'A', true},
		{'D', 'D', true},
		{'M', ' ', false},
		{'A', 'D', false},
	}
	for _, c := range cases {
		if got := isConflict(c.staged, c.unstaged); got != c.want {
			t.Fatalf("isConflict(%q,%q)=%v want %v", c.staged, c.unstaged, got, c.want)
		}
	}
}

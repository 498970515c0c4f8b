package gitparse

import "testing"

func canonicalRow(author, email string, seconds int64, offset, id string, parents []string, message string) string {
	row := author + ";" + email + ";"
	row += itoa(seconds) + " " + offset + ";"
	row += id + ";"
	for i, p := range parents {
		if i > 0 {
			row += " "
		}
		row += p
	}
	row += ";" + message + MessageSentinel
	return row
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	if neg {
		buf = append([]byte{'-'}, buf...)
	}
	return string(buf)
}

func TestParseCommitRowGrammar(t *testing.T) {
	row := canonicalRow("A", "E", 1000, "+0000", "I", []string{"P1", "P2"}, "M")
	commit, refs, err := ParseCommitRow(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if commit.Date.Ms != 1000*1000 {
		t.Fatalf("got date.ms=%d want %d", commit.Date.Ms, 1000*1000)
	}
	if !commit.IsMerge {
		t.Fatalf("expected IsMerge=true for two parents")
	}
	if len(commit.Refs) != 0 || len(refs) != 0 {
		t.Fatalf("expected no refs, got %v", refs)
	}
	if commit.Author != "A" || commit.Email != "E" || commit.ID != "I" || commit.Message != "M" {
		t.Fatalf("got %+v", commit)
	}
	if len(commit.ParentIDs) != 2 || commit.ParentIDs[0] != "P1" || commit.ParentIDs[1] != "P2" {
		t.Fatalf("got parents %v", commit.ParentIDs)
	}
}

func TestParseCommitRowWithDecoration(t *testing.T) {
	row := "Jane;jane@x.com;1700000000 -0500;abc123;;hello" + MessageSentinel +
		"(HEAD -> refs/heads/main, refs/remotes/origin/main, tag: refs/tags/v1.0)"
	commit, refs, err := ParseCommitRow(row)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(commit.ParentIDs) != 0 {
		t.Fatalf("expected root commit, got %v", commit.ParentIDs)
	}
	if commit.IsMerge {
		t.Fatalf("root commit must not be a merge")
	}
	if len(refs) != 3 {
		t.Fatalf("expected 3 decorated refs, got %d: %+v", len(refs), refs)
	}
	if !refs[0].Ref.Head {
		t.Fatalf("expected first ref (local branch) to be head")
	}
	if refs[1].Ref.RemoteName != "origin" {
		t.Fatalf("expected remote name origin, got %q", refs[1].Ref.RemoteName)
	}
	if refs[2].Ref.ShortName != "v1.0" {
		t.Fatalf("expected tag short name v1.0, got %q", refs[2].Ref.ShortName)
	}
	if commit.Date.TzOffsetMins != -300 {
		t.Fatalf("expected -300 minute offset, got %d", commit.Date.TzOffsetMins)
	}
}

func TestParseCommitLogMultipleRecords(t *testing.T) {
	log := canonicalRow("A", "E", 1, "+0000", "I1", nil, "first\nsecond line") + "\n" +
		canonicalRow("B", "F", 2, "+0000", "I2", []string{"I1"}, "third") + "\n"
	commits, _, err := ParseCommitLog(log)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if commits[0].Message != "first\nsecond line" {
		t.Fatalf("expected multiline message preserved, got %q", commits[0].Message)
	}
	if commits[0].Index != 0 || commits[1].Index != 1 {
		t.Fatalf("expected sequential index, got %d %d", commits[0].Index, commits[1].Index)
	}
}

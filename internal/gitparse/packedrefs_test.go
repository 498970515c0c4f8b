package gitparse

import "testing"

const samplePackedRefs = `# pack-refs with: peeled fully-peeled sorted
1111111111111111111111111111111111111111 refs/heads/main
2222222222222222222222222222222222222222 refs/remotes/origin/main
3333333333333333333333333333333333333333 refs/tags/v1.0.0
^4444444444444444444444444444444444444444
5555555555555555555555555555555555555555 refs/heads/feature/x
`

func TestParsePackedRefs(t *testing.T) {
	refs := ParsePackedRefs(samplePackedRefs)
	if len(refs) != 4 {
		t.Fatalf("expected 4 refs (peel line ignored), got %d", len(refs))
	}

	var sawLocalMain, sawRemoteMain, sawTag, sawNested bool
	for _, r := range refs {
		switch {
		case r.Ref.ShortName == "main" && r.Ref.Location == "Local":
			sawLocalMain = true
		case r.Ref.ShortName == "main" && r.Ref.Location == "Remote":
			sawRemoteMain = true
			if r.Ref.RemoteName != "origin" {
				t.Fatalf("expected remote origin, got %q", r.Ref.RemoteName)
			}
			if r.Ref.CommitID != "2222222222222222222222222222222222222222" {
				t.Fatalf("unexpected commit id %q", r.Ref.CommitID)
			}
		case r.Ref.RefType == "Tag":
			sawTag = true
			if r.Ref.ShortName != "v1.0.0" {
				t.Fatalf("unexpected tag name %q", r.Ref.ShortName)
			}
		case r.Ref.ShortName == "feature/x":
			sawNested = true
		}
	}
	if !sawLocalMain || !sawRemoteMain || !sawTag || !sawNested {
		t.Fatalf("missing expected ref kinds: local=%v remote=%v tag=%v nested=%v",
			sawLocalMain, sawRemoteMain, sawTag, sawNested)
	}
}

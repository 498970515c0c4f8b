package query

import (
	"testing"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

func TestPairRefsDefaultsToOrigin(t *testing.T) {
	refs := []gitfiend.RefInfo{
		{ID: "local-main", ShortName: "main", RefType: gitfiend.RefBranch, Location: gitfiend.Local},
		{ID: "origin-main", ShortName: "main", RefType: gitfiend.RefBranch, Location: gitfiend.Remote, RemoteName: "origin"},
	}
	PairRefs(refs, gitfiend.NewGitConfig())

	if refs[0].SiblingID != "origin-main" || refs[1].SiblingID != "local-main" {
		t.Fatalf("expected mutual pairing, got %+v", refs)
	}
}

func TestPairRefsHonorsPushremote(t *testing.T) {
	cfg := gitfiend.NewGitConfig()
	cfg.Entries["branch.main.pushremote"] = "upstream"

	refs := []gitfiend.RefInfo{
		{ID: "local-main", ShortName: "main", RefType: gitfiend.RefBranch, Location: gitfiend.Local},
		{ID: "origin-main", ShortName: "main", RefType: gitfiend.RefBranch, Location: gitfiend.Remote, RemoteName: "origin"},
		{ID: "upstream-main", ShortName: "main", RefType: gitfiend.RefBranch, Location: gitfiend.Remote, RemoteName: "upstream"},
	}
	PairRefs(refs, cfg)

	if refs[0].SiblingID != "upstream-main" {
		t.Fatalf("expected pairing via pushremote, got %+v", refs[0])
	}
	if refs[1].SiblingID != "" {
		t.Fatalf("expected origin ref to stay unpaired, got %+v", refs[1])
	}
}

func TestPairRefsNoMatchLeavesSiblingEmpty(t *testing.T) {
	refs := []gitfiend.RefInfo{
		{ID: "local-feature", ShortName: "feature", RefType: gitfiend.RefBranch, Location: gitfiend.Local},
	}
	PairRefs(refs, gitfiend.NewGitConfig())
	if refs[0].SiblingID != "" {
		t.Fatalf("expected no pairing, got %+v", refs[0])
	}
}

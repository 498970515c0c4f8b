package query

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
	"gitlab.com/gitfiend/gitfiend-core/internal/runner"
)

// HeadInfo is the current-branch/sibling summary derived from a loaded
// commit window.
type HeadInfo struct {
	BranchID      string
	SiblingID     string
	AheadCount    int
	BehindCount   int
}

// LoadHeadInfo finds the HEAD ref among refs and, if it has a sibling,
// counts how far ahead/behind it is. When HEAD isn't in the loaded
// window (a shallow load, or a window that doesn't reach the tip), it
// falls back to reading the branch's top commit directly and running
// count-between against the configured tracking ref.
func LoadHeadInfo(ctx context.Context, env *runner.Env, repoPath string, commits []gitfiend.Commit, refs []gitfiend.RefInfo) (HeadInfo, error) {
	var head *gitfiend.RefInfo
	for i := range refs {
		if refs[i].Head {
			head = &refs[i]
			break
		}
	}
	if head == nil {
		return HeadInfo{}, nil
	}

	info := HeadInfo{BranchID: head.ID, SiblingID: head.SiblingID}
	if head.SiblingID == "" {
		return info, nil
	}
	siblingCommitID := commitIDForRef(refs, head.SiblingID)
	if siblingCommitID == "" {
		return info, nil
	}

	ahead, err := CountBetween(ctx, env, repoPath, commits, siblingCommitID, head.CommitID)
	if err != nil {
		return info, err
	}
	behind, err := CountBetween(ctx, env, repoPath, commits, head.CommitID, siblingCommitID)
	if err != nil {
		return info, err
	}
	info.AheadCount = ahead
	info.BehindCount = behind
	return info, nil
}

// commitIDForRef resolves a RefInfo.ID (the ref's full name, e.g.
// "refs/heads/main") to the commit it currently points at. RefInfo.ID
// and RefInfo.SiblingID are ref identities, not commit ids, so any
// ahead/behind computation must go through this lookup before calling
// CountBetween.
func commitIDForRef(refs []gitfiend.RefInfo, refID string) string {
	for _, r := range refs {
		if r.ID == refID {
			return r.CommitID
		}
	}
	return ""
}

// RebaseInProgress reports whether <gitDir>/rebase-merge exists.
func RebaseInProgress(gitDir string) bool {
	_, err := os.Stat(filepath.Join(gitDir, "rebase-merge"))
	return err == nil
}

// MergeHead reads <gitDir>/MERGE_HEAD, falling back to AUTO_MERGE, and
// returns "" when neither is present (no merge in progress).
func MergeHead(gitDir string) string {
	for _, name := range []string{"MERGE_HEAD", "AUTO_MERGE"} {
		data, err := os.ReadFile(filepath.Join(gitDir, name))
		if err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}

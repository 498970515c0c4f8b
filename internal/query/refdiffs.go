package query

import (
	"context"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
	"gitlab.com/gitfiend/gitfiend-core/internal/runner"
)

// LoadRefDiffs computes the four ahead/behind counts spec.md's ref-diffs
// operation names for every local branch paired with a remote sibling:
// how far the local branch leads/trails that remote, and how far it
// leads/trails the current HEAD. Each count is CountBetween's BFS over
// the loaded window, falling back to `rev-list --count` when a branch
// tip falls outside it.
func LoadRefDiffs(ctx context.Context, env *runner.Env, repoPath string, commits []gitfiend.Commit, refs []gitfiend.RefInfo) ([]gitfiend.RefDiff, error) {
	var head *gitfiend.RefInfo
	for i := range refs {
		if refs[i].Head {
			head = &refs[i]
			break
		}
	}

	var out []gitfiend.RefDiff
	for _, r := range refs {
		if r.RefType != gitfiend.RefBranch || r.Location != gitfiend.Local || r.SiblingID == "" {
			continue
		}
		remoteCommitID := commitIDForRef(refs, r.SiblingID)
		if remoteCommitID == "" {
			continue
		}
		diff := gitfiend.RefDiff{LocalID: r.ID, RemoteID: r.SiblingID}

		aheadRemote, err := CountBetween(ctx, env, repoPath, commits, remoteCommitID, r.CommitID)
		if err != nil {
			return nil, err
		}
		behindRemote, err := CountBetween(ctx, env, repoPath, commits, r.CommitID, remoteCommitID)
		if err != nil {
			return nil, err
		}
		diff.LocalAheadOfRemote = aheadRemote
		diff.LocalBehindRemote = behindRemote

		if head != nil && head.ID != r.ID {
			aheadHead, err := CountBetween(ctx, env, repoPath, commits, head.CommitID, r.CommitID)
			if err != nil {
				return nil, err
			}
			behindHead, err := CountBetween(ctx, env, repoPath, commits, r.CommitID, head.CommitID)
			if err != nil {
				return nil, err
			}
			diff.LocalAheadOfHead = aheadHead
			diff.LocalBehindHead = behindHead
		}

		out = append(out, diff)
	}
	return out, nil
}

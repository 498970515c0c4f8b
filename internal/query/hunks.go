package query

import (
	"context"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
	"gitlab.com/gitfiend/gitfiend-core/internal/gitparse"
	"gitlab.com/gitfiend/gitfiend-core/internal/runner"
)

// LoadHunks builds and runs the diff command for (commit, patch),
// per spec.md §4.G: a merge diffs both parents with "...", a normal
// commit diffs its first parent with "..", a root commit diffs the
// empty tree; the path arguments follow, with the new name appended
// only for a rename.
func LoadHunks(ctx context.Context, env *runner.Env, repoPath string, commit gitfiend.Commit, patch gitfiend.Patch) ([]gitfiend.HunkLine, error) {
	args := []string{"diff", "--no-color"}
	switch {
	case commit.IsMerge && len(commit.ParentIDs) >= 2:
		args = append(args, commit.ParentIDs[0]+"..."+commit.ParentIDs[1])
	case len(commit.ParentIDs) > 0:
		args = append(args, commit.ParentIDs[0]+".."+commit.ID)
	default:
		args = append(args, gitfiend.EmptyTreeID+".."+commit.ID)
	}
	args = append(args, "--", patch.OldFile)
	if patch.PatchType == gitfiend.PatchRenamed {
		args = append(args, patch.NewFile)
	}

	res, actionErr := env.RunAndCollect(ctx, repoPath, args...)
	if actionErr != nil {
		return nil, actionErr
	}
	hunks, _ := gitparse.ParseHunks(res.Stdout)
	return gitparse.FlattenHunks(hunks), nil
}

// SplitSide is one column (left or right) of a split diff view.
type SplitSide struct {
	Lines []gitfiend.HunkLine
}

// SplitView produces left/right line streams for one hunk: Removed
// lines appear only on the left, Added only on the right, Unchanged
// on both. Before each Unchanged line, the shorter side is padded
// with Skip placeholders so the two columns stay aligned.
func SplitView(hunk gitfiend.Hunk) (SplitSide, SplitSide) {
	var left, right []gitfiend.HunkLine
	hasChange := false
	onlyTrivialUnchanged := true

	flushPadding := func() {
		for len(left) < len(right) {
			left = append(left, gitfiend.HunkLine{Status: gitfiend.LineSkip, HunkIndex: hunk.Index})
		}
		for len(right) < len(left) {
			right = append(right, gitfiend.HunkLine{Status: gitfiend.LineSkip, HunkIndex: hunk.Index})
		}
	}

	for _, line := range hunk.Lines {
		switch line.Status {
		case gitfiend.LineRemoved:
			hasChange = true
			left = append(left, line)
		case gitfiend.LineAdded:
			hasChange = true
			right = append(right, line)
		case gitfiend.LineUnchanged:
			trimmed := line.Text
			if trimmed != "" && trimmed != "\\ No newline at end of file" {
				onlyTrivialUnchanged = false
			}
			flushPadding()
			left = append(left, line)
			right = append(right, line)
		}
	}
	flushPadding()

	if !hasChange && onlyTrivialUnchanged {
		return SplitSide{}, SplitSide{}
	}
	return SplitSide{Lines: left}, SplitSide{Lines: right}
}

package gitparse

import (
	"strings"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

// ParsePatchListFromUnifiedDiff extracts the changed-file list from a
// full `git diff --no-color` unified diff, used for the stash/merge
// targeted fetch path in the patch cache loader (spec.md §4.F step 5),
// which has no `--name-status` form. Each file section starts with a
// "diff --git a/<old> b/<new>" line; the subsequent "---"/"+++" lines
// and a following "rename from/to" or "new/deleted file mode" line
// classify the change.
func ParsePatchListFromUnifiedDiff(diff string, commitID string) []gitfiend.Patch {
	var patches []gitfiend.Patch
	lines := strings.Split(diff, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !strings.HasPrefix(line, "diff --git a/") {
			continue
		}
		oldFile, newFile, ok := splitDiffGitLine(line)
		if !ok {
			continue
		}
		pt := gitfiend.PatchModified
		for j := i + 1; j < len(lines) && !strings.HasPrefix(lines[j], "diff --git a/"); j++ {
			switch {
			case strings.HasPrefix(lines[j], "new file mode"):
				pt = gitfiend.PatchAdded
			case strings.HasPrefix(lines[j], "deleted file mode"):
				pt = gitfiend.PatchDeleted
			case strings.HasPrefix(lines[j], "rename from"):
				pt = gitfiend.PatchRenamed
			case strings.HasPrefix(lines[j], "copy from"):
				pt = gitfiend.PatchCopied
			}
		}
		patches = append(patches, gitfiend.NewPatch(commitID, oldFile, newFile, pt))
	}
	return patches
}

func splitDiffGitLine(line string) (oldFile, newFile string, ok bool) {
	rest := strings.TrimPrefix(line, "diff --git a/")
	idx := strings.Index(rest, " b/")
	if idx < 0 {
		return "", "", false
	}
	return rest[:idx], rest[idx+len(" b/"):], true
}

package gitparse

import (
	"strings"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

// ParseStatusZ parses the NUL-terminated output of `git status --porcelain
// -uall -z`: each entry is a two-character status code, a space, and a
// path, NUL-terminated; rename/copy entries (status starting with R or
// C) carry one extra NUL-terminated path - the old name - after the new
// one.
func ParseStatusZ(output string) []gitfiend.WipPatch {
	fields := splitNul(output)
	var patches []gitfiend.WipPatch
	for i := 0; i < len(fields); i++ {
		entry := fields[i]
		if entry == "" {
			continue
		}
		if len(entry) < 3 {
			continue
		}
		stagedCode, unstagedCode := entry[0], entry[1]
		path := entry[3:]

		oldPath := path
		newPath := path
		if stagedCode == 'R' || stagedCode == 'C' {
			i++
			if i < len(fields) {
				oldPath = fields[i]
			}
		}

		staged := statusCodeToPatchType(stagedCode)
		unstaged := statusCodeToPatchType(unstagedCode)

		patches = append(patches, gitfiend.WipPatch{
			OldFile:      oldPath,
			NewFile:      newPath,
			PatchType:    combinedPatchType(staged, unstaged),
			StagedType:   staged,
			UnStagedType: unstaged,
			Conflicted:   isConflict(stagedCode, unstagedCode),
			IsImage:      false,
			ID:           newPath + "-" + string(staged) + string(unstaged),
		})
	}
	return patches
}

func splitNul(output string) []string {
	var out []string
	for _, part := range strings.Split(output, "\x00") {
		out = append(out, part)
	}
	// drop a single trailing empty element produced by a terminal NUL
	if len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func statusCodeToPatchType(code byte) gitfiend.PatchType {
	switch code {
	case ' ':
		return gitfiend.PatchUnchangedEmpty
	case 'A':
		return gitfiend.PatchAdded
	case 'D':
		return gitfiend.PatchDeleted
	case 'M':
		return gitfiend.PatchModified
	case 'R':
		return gitfiend.PatchRenamed
	case 'C':
		return gitfiend.PatchCopied
	case 'T':
		return gitfiend.PatchTypeChanged
	case 'U':
		return gitfiend.PatchUnmerged
	case '?', '!':
		return gitfiend.PatchAdded
	default:
		return gitfiend.PatchUnknown
	}
}

// combinedPatchType picks the "headline" type for a WIP entry when a
// single PatchType is wanted: the staged side wins when present.
func combinedPatchType(staged, unstaged gitfiend.PatchType) gitfiend.PatchType {
	if staged != gitfiend.PatchUnchangedEmpty {
		return staged
	}
	return unstaged
}

// isConflict implements spec.md §4.B's rule: either side U, or both
// sides A, or both sides D.
func isConflict(staged, unstaged byte) bool {
	if staged == 'U' || unstaged == 'U' {
		return true
	}
	if staged == 'A' && unstaged == 'A' {
		return true
	}
	if staged == 'D' && unstaged == 'D' {
		return true
	}
	return false
}

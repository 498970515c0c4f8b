package gitparse

import "gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"

// ParseNameStatusZ parses the NUL-terminated output of
// `git show --name-status -z` (or `git diff --name-status -z`) for one
// commit: a status code (possibly with a trailing similarity score,
// e.g. "R100"), then one path, or for renames/copies two paths - old,
// then new.
//
// The status code's first character selects the PatchType; the whole
// code (score included) feeds the patch id, matching the worked
// example in spec.md §8: "R100\0src/a.ts\0src/b.ts\0" yields
// id "src/b.ts-R100".
func ParseNameStatusZ(output string, commitID string) []gitfiend.Patch {
	fields := splitNul(output)
	var patches []gitfiend.Patch
	for i := 0; i < len(fields); i++ {
		code := fields[i]
		if code == "" {
			continue
		}
		pt := statusCodeToPatchType(code[0])
		if code[0] == 'R' || code[0] == 'C' {
			if i+2 >= len(fields) {
				break
			}
			oldFile := fields[i+1]
			newFile := fields[i+2]
			i += 2
			patches = append(patches, gitfiend.Patch{
				CommitID: commitID, OldFile: oldFile, NewFile: newFile,
				PatchType: pt, IsImage: isImageName(newFile),
				ID: newFile + "-" + code,
			})
			continue
		}
		if i+1 >= len(fields) {
			break
		}
		path := fields[i+1]
		i++
		patches = append(patches, gitfiend.Patch{
			CommitID: commitID, OldFile: path, NewFile: path,
			PatchType: pt, IsImage: isImageName(path),
			ID: path + "-" + code,
		})
	}
	return patches
}

func isImageName(name string) bool {
	p := gitfiend.NewPatch("", "", name, gitfiend.PatchModified)
	return p.IsImage
}

package gitparse

import (
	"strings"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

// ParsePackedRefs parses a .git/packed-refs file: lines of
// "<commit_id> refs/heads/<name>" or "<commit_id> refs/remotes/<remote>/<name>",
// a leading "# pack-refs with: ..." comment line, and "^<commit_id>"
// peel lines for annotated tags - both ignored, the latter because the
// peeled target is never what a ref list needs.
func ParsePackedRefs(text string) []DecoratedRef {
	var refs []DecoratedRef
	for _, line := range strings.Split(text, "\n") {
		if line == "" || line[0] == '#' || line[0] == '^' {
			continue
		}
		sp := strings.IndexByte(line, ' ')
		if sp < 0 {
			continue
		}
		commitID := line[:sp]
		refPath := line[sp+1:]

		ref, ok := packedRefFromPath(commitID, refPath)
		if ok {
			refs = append(refs, DecoratedRef{Ref: ref})
		}
	}
	return refs
}

func packedRefFromPath(commitID, refPath string) (gitfiend.RefInfo, bool) {
	switch {
	case strings.HasPrefix(refPath, "refs/heads/"):
		name := strings.TrimPrefix(refPath, "refs/heads/")
		return gitfiend.RefInfo{
			ID: refPath, FullName: refPath, ShortName: name,
			Location: gitfiend.Local, RefType: gitfiend.RefBranch,
			CommitID: commitID,
		}, true
	case strings.HasPrefix(refPath, "refs/remotes/"):
		rest := strings.TrimPrefix(refPath, "refs/remotes/")
		slash := strings.IndexByte(rest, '/')
		if slash < 0 {
			return gitfiend.RefInfo{}, false
		}
		remote := rest[:slash]
		name := rest[slash+1:]
		return gitfiend.RefInfo{
			ID: refPath, FullName: refPath, ShortName: name,
			Location: gitfiend.Remote, RemoteName: remote, RefType: gitfiend.RefBranch,
			CommitID: commitID,
		}, true
	case strings.HasPrefix(refPath, "refs/tags/"):
		name := strings.TrimPrefix(refPath, "refs/tags/")
		return gitfiend.RefInfo{
			ID: refPath, FullName: refPath, ShortName: name,
			Location: gitfiend.Local, RefType: gitfiend.RefTag,
			CommitID: commitID,
		}, true
	default:
		return gitfiend.RefInfo{}, false
	}
}

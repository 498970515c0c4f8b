package gitparse

import (
	"strings"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

// DecoratedRef pairs a parsed RefInfo with the commit id it was
// decorated onto - ParseCommitRow needs both to resolve RefInfo.ID
// while only returning ref ids on the Commit itself.
type DecoratedRef struct {
	Ref gitfiend.RefInfo
}

// ParseRefDecoration extracts refs from a `(...)` decorate block, e.g.
// "HEAD -> refs/heads/main, refs/remotes/origin/main, tag: refs/tags/v1.0".
// Entries are comma-separated; the current branch is marked with a
// "HEAD -> " prefix and trailing "^{}" peels are stripped.
func ParseRefDecoration(decorate string, commitID string) []DecoratedRef {
	var out []DecoratedRef
	for _, raw := range strings.Split(decorate, ",") {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		ref, ok := parseOneDecoratedRef(entry, commitID)
		if ok {
			out = append(out, DecoratedRef{Ref: ref})
		}
	}
	return out
}

func parseOneDecoratedRef(entry, commitID string) (gitfiend.RefInfo, bool) {
	head := false
	if strings.HasPrefix(entry, "HEAD -> ") {
		head = true
		entry = strings.TrimPrefix(entry, "HEAD -> ")
	}
	if entry == "HEAD" {
		// Detached HEAD marker on its own carries no ref identity.
		return gitfiend.RefInfo{}, false
	}
	entry = strings.TrimPrefix(entry, "tag: ")
	entry = strings.TrimSuffix(entry, "^{}")

	switch {
	case strings.HasPrefix(entry, "refs/heads/"):
		name := strings.TrimPrefix(entry, "refs/heads/")
		return gitfiend.RefInfo{
			ID: entry, FullName: entry, ShortName: name,
			Location: gitfiend.Local, RefType: gitfiend.RefBranch,
			Head: head, CommitID: commitID,
		}, true
	case strings.HasPrefix(entry, "refs/remotes/"):
		rest := strings.TrimPrefix(entry, "refs/remotes/")
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) != 2 {
			return gitfiend.RefInfo{}, false
		}
		return gitfiend.RefInfo{
			ID: entry, FullName: entry, ShortName: parts[1],
			Location: gitfiend.Remote, RemoteName: parts[0], RefType: gitfiend.RefBranch,
			Head: head, CommitID: commitID,
		}, true
	case strings.HasPrefix(entry, "refs/tags/"):
		name := strings.TrimPrefix(entry, "refs/tags/")
		return gitfiend.RefInfo{
			ID: entry, FullName: entry, ShortName: name,
			Location: gitfiend.Local, RefType: gitfiend.RefTag,
			Head: head, CommitID: commitID,
		}, true
	case entry == "refs/stash" || entry == "stash":
		return gitfiend.RefInfo{
			ID: entry, FullName: entry, ShortName: "stash",
			Location: gitfiend.Local, RefType: gitfiend.RefStash,
			Head: false, CommitID: commitID,
		}, true
	default:
		return gitfiend.RefInfo{}, false
	}
}

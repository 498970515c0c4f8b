package query

import (
	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

// Filter narrows a loaded commit list. Multiple filters intersect.
type Filter interface {
	keep(commits []gitfiend.Commit, patchesOf func(commitID string) []gitfiend.Patch) map[string]bool
}

// BranchFilter keeps every ancestor of any ref in RefIDs, plus any
// stash whose parent is kept. Commit.Refs stores full ref ids, not
// short names, so the caller resolves ShortName to ids (via the refs
// list returned alongside the commit log) before building this
// filter - see NewBranchFilter.
type BranchFilter struct{ RefIDs map[string]bool }

// NewBranchFilter resolves shortName against refs and returns a
// BranchFilter rooted at every matching ref.
func NewBranchFilter(refs []gitfiend.RefInfo, shortName string) BranchFilter {
	ids := map[string]bool{}
	for _, r := range refs {
		if r.ShortName == shortName {
			ids[r.ID] = true
		}
	}
	return BranchFilter{RefIDs: ids}
}

// UserFilter keeps commits whose author matches exactly.
type UserFilter struct{ Author string }

// CommitFilter keeps only the one named commit.
type CommitFilter struct{ ID string }

// FileFilter keeps commits whose patch set touches the named file
// under either its old or new name.
type FileFilter struct{ Name string }

func (f BranchFilter) keep(commits []gitfiend.Commit, _ func(string) []gitfiend.Patch) map[string]bool {
	byID := map[string]gitfiend.Commit{}
	for _, c := range commits {
		byID[c.ID] = c
	}
	roots := map[string]bool{}
	for _, c := range commits {
		for _, ref := range c.Refs {
			if f.RefIDs[ref] {
				roots[c.ID] = true
			}
		}
	}
	kept := map[string]bool{}
	var visit func(id string)
	visit = func(id string) {
		if kept[id] {
			return
		}
		c, ok := byID[id]
		if !ok {
			return
		}
		kept[id] = true
		for _, p := range c.ParentIDs {
			visit(p)
		}
	}
	for id := range roots {
		visit(id)
	}
	for _, c := range commits {
		if c.StashID != "" && kept[firstParent(c)] {
			kept[c.ID] = true
		}
	}
	return kept
}

func firstParent(c gitfiend.Commit) string {
	if len(c.ParentIDs) == 0 {
		return ""
	}
	return c.ParentIDs[0]
}

func (f UserFilter) keep(commits []gitfiend.Commit, _ func(string) []gitfiend.Patch) map[string]bool {
	kept := map[string]bool{}
	for _, c := range commits {
		if c.Author == f.Author {
			kept[c.ID] = true
		}
	}
	return kept
}

func (f CommitFilter) keep(commits []gitfiend.Commit, _ func(string) []gitfiend.Patch) map[string]bool {
	kept := map[string]bool{}
	for _, c := range commits {
		if c.ID == f.ID {
			kept[c.ID] = true
		}
	}
	return kept
}

func (f FileFilter) keep(commits []gitfiend.Commit, patchesOf func(string) []gitfiend.Patch) map[string]bool {
	kept := map[string]bool{}
	for _, c := range commits {
		for _, p := range patchesOf(c.ID) {
			if p.OldFile == f.Name || p.NewFile == f.Name {
				kept[c.ID] = true
				break
			}
		}
	}
	return kept
}

// ApplyFilters intersects every filter's kept set, re-indexes the
// result, and sets NumSkipped on each kept commit to the number of
// skipped commits between it and its predecessor.
func ApplyFilters(commits []gitfiend.Commit, filters []Filter, patchesOf func(commitID string) []gitfiend.Patch) []gitfiend.Commit {
	if len(filters) == 0 {
		return commits
	}
	keep := map[string]bool{}
	for _, c := range commits {
		keep[c.ID] = true
	}
	for _, f := range filters {
		sub := f.keep(commits, patchesOf)
		for id := range keep {
			if !sub[id] {
				delete(keep, id)
			}
		}
	}

	var out []gitfiend.Commit
	skipped := uint32(0)
	for _, c := range commits {
		if !keep[c.ID] {
			skipped++
			continue
		}
		c.Index = len(out)
		c.NumSkipped = skipped
		c.Filtered = false
		out = append(out, c)
		skipped = 0
	}
	return out
}

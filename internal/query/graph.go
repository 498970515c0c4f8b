package query

import (
	"context"
	"strconv"
	"strings"

	orderedset "github.com/emirpasic/gods/sets/linkedhashset"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
	"gitlab.com/gitfiend/gitfiend-core/internal/runner"
)

// parentGraph is the in-memory parent adjacency built from a loaded
// commit window, used to answer ahead/behind and ancestor questions
// without shelling back out to the VCS when both endpoints are inside
// the window. Ancestor sets are built with an ordered set the same way
// reposurgeon's selectionSet wraps github.com/emirpasic/gods's
// linkedhashset (surgeon/selection.go), since both need membership
// tests and stable iteration.
type parentGraph struct {
	parentsOf map[string][]string
}

func newParentGraph(commits []gitfiend.Commit) parentGraph {
	g := parentGraph{parentsOf: make(map[string][]string, len(commits))}
	for _, c := range commits {
		g.parentsOf[c.ID] = c.ParentIDs
	}
	return g
}

func (g parentGraph) has(id string) bool {
	_, ok := g.parentsOf[id]
	return ok
}

// ancestors runs a breadth-first walk from id over the parent edges,
// returning every commit id reachable (id itself included).
func (g parentGraph) ancestors(id string) *orderedset.Set {
	seen := orderedset.New()
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen.Contains(cur) {
			continue
		}
		seen.Add(cur)
		queue = append(queue, g.parentsOf[cur]...)
	}
	return seen
}

// countBetween returns how many commits are reachable from b
// (inclusive) but not from a, following every parent, using only the
// in-memory graph. ok is false when either endpoint falls outside the
// loaded window or the walk from b reaches a commit outside it, and the
// caller should fall back to `rev-list --count`.
func (g parentGraph) countBetween(a, b string) (count int, ok bool) {
	if !g.has(a) || !g.has(b) {
		return 0, false
	}
	excluded := g.ancestors(a)
	reachable := orderedset.New()
	queue := []string{b}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == a || reachable.Contains(cur) || excluded.Contains(cur) {
			continue
		}
		if !g.has(cur) {
			// walked off the edge of the window; can't trust the count
			return 0, false
		}
		reachable.Add(cur)
		queue = append(queue, g.parentsOf[cur]...)
	}
	return reachable.Size(), true
}

// CountBetween answers "how many commits separate a and b" (a
// exclusive, b inclusive), using the loaded window when possible and
// falling back to `rev-list --count a..b` otherwise.
func CountBetween(ctx context.Context, env *runner.Env, repoPath string, commits []gitfiend.Commit, a, b string) (int, error) {
	g := newParentGraph(commits)
	if n, ok := g.countBetween(a, b); ok {
		return n, nil
	}
	res, actionErr := env.RunAndCollect(ctx, repoPath, "rev-list", "--count", a+".."+b)
	if actionErr != nil {
		return 0, actionErr
	}
	n, err := strconv.Atoi(strings.TrimSpace(res.Stdout))
	if err != nil {
		return 0, err
	}
	return n, nil
}

// UnpushedCommits returns the ids of commits reachable from head but
// not from sibling (head's upstream), using the in-memory graph when
// both are loaded and falling back to `log head --not --remotes`
// otherwise, per spec.md's unpushed-commits operation.
func UnpushedCommits(ctx context.Context, env *runner.Env, repoPath string, commits []gitfiend.Commit, head, sibling string) ([]string, error) {
	g := newParentGraph(commits)
	if g.has(head) && (sibling == "" || g.has(sibling)) {
		ahead := g.ancestors(head)
		var behind *orderedset.Set
		if sibling != "" {
			behind = g.ancestors(sibling)
		}
		var out []string
		for _, v := range ahead.Values() {
			id := v.(string)
			if behind != nil && behind.Contains(id) {
				continue
			}
			out = append(out, id)
		}
		return out, nil
	}

	args := []string{"log", head, "--not", "--remotes", "--pretty=format:%H"}
	res, actionErr := env.RunAndCollect(ctx, repoPath, args...)
	if actionErr != nil {
		return nil, actionErr
	}
	var out []string
	for _, line := range strings.Split(res.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

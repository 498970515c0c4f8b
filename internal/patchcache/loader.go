package patchcache

import (
	"context"
	"strconv"
	"strings"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
	"gitlab.com/gitfiend/gitfiend-core/internal/gitparse"
	"gitlab.com/gitfiend/gitfiend-core/internal/runner"
	"gitlab.com/gitfiend/gitfiend-core/internal/store"
)

// missThreshold is the cutover point between fetching missing normal
// commits individually via `show` and harvesting them in bulk via
// `log --no-merges`.
const missThreshold = 20

// RequestedCommit is the minimal shape the loader needs per commit:
// its id, parents, and whether it is a stash (both stash and merge
// commits are routed through a targeted `diff` rather than the bulk
// `show`/`log` path).
type RequestedCommit struct {
	ID        string
	ParentIDs []string
	IsStash   bool
}

func (c RequestedCommit) isMerge() bool { return len(c.ParentIDs) > 1 }

// FillCache fills in the store's patch cache for every requested
// commit, consulting the on-disk cache first and only invoking the
// VCS for misses. It implements spec.md §4.F's algorithm in step
// order: partition normal vs stash/merge, consult the cache, batch
// the normal misses, target the stash/merge misses individually, then
// persist.
func FillCache(ctx context.Context, env *runner.Env, st *store.Store, repoPath string, commits []RequestedCommit) error {
	cached := mergedCache(repoPath, st)

	var normal, special []RequestedCommit
	for _, c := range commits {
		if c.IsStash || c.isMerge() {
			special = append(special, c)
		} else {
			normal = append(normal, c)
		}
	}

	var normalMisses []RequestedCommit
	for _, c := range normal {
		if _, ok := cached[c.ID]; !ok {
			normalMisses = append(normalMisses, c)
		}
	}

	if len(normalMisses) > 0 {
		var err error
		if len(normalMisses) <= missThreshold {
			err = fetchByShow(ctx, env, repoPath, normalMisses, st, cached)
		} else {
			err = fetchByLog(ctx, env, repoPath, len(normal), st, cached)
		}
		if err != nil {
			return err
		}
	}

	for _, c := range special {
		if _, ok := cached[c.ID]; ok {
			continue
		}
		if err := fetchTargeted(ctx, env, repoPath, c, st, cached); err != nil {
			return err
		}
	}

	Save(repoPath, cached)
	return nil
}

// mergedCache returns the union of the in-memory store's patch cache
// and the on-disk cache for repoPath, preferring the in-memory copy
// on conflict since it is always at least as fresh.
func mergedCache(repoPath string, st *store.Store) map[string][]gitfiend.Patch {
	merged := map[string][]gitfiend.Patch{}
	if onDisk, ok := Load(repoPath); ok {
		for k, v := range onDisk {
			merged[k] = v
		}
	}
	for k, v := range st.AllPatches(repoPath) {
		merged[k] = v
	}
	return merged
}

func fetchByShow(ctx context.Context, env *runner.Env, repoPath string, misses []RequestedCommit, st *store.Store, cached map[string][]gitfiend.Patch) error {
	ids := make([]string, len(misses))
	for i, c := range misses {
		ids[i] = c.ID
	}
	args := append([]string{"show", "--name-status", "--pretty=format:%H,", "-z"}, ids...)
	res, actionErr := env.RunAndCollect(ctx, repoPath, args...)
	if actionErr != nil {
		return actionErr
	}
	applyNameStatusBlocks(res.Stdout, st, repoPath, cached)
	return nil
}

func fetchByLog(ctx context.Context, env *runner.Env, repoPath string, n int, st *store.Store, cached map[string][]gitfiend.Patch) error {
	args := []string{"log", "--no-merges", "--name-status", "--pretty=format:%H,", "-z", "-n", strconv.Itoa(n)}
	res, actionErr := env.RunAndCollect(ctx, repoPath, args...)
	if actionErr != nil {
		return actionErr
	}
	applyNameStatusBlocks(res.Stdout, st, repoPath, cached)
	return nil
}

func fetchTargeted(ctx context.Context, env *runner.Env, repoPath string, c RequestedCommit, st *store.Store, cached map[string][]gitfiend.Patch) error {
	var args []string
	switch {
	case c.isMerge():
		args = []string{"diff", "--no-color", c.ParentIDs[0] + "..." + c.ParentIDs[1]}
	case c.IsStash:
		parent := gitfiend.EmptyTreeID
		if len(c.ParentIDs) > 0 {
			parent = c.ParentIDs[0]
		}
		args = []string{"diff", "--no-color", parent + ".." + c.ID}
	default:
		return nil
	}
	res, actionErr := env.RunAndCollect(ctx, repoPath, args...)
	if actionErr != nil {
		return actionErr
	}
	patches := gitparse.ParsePatchListFromUnifiedDiff(res.Stdout, c.ID)
	st.SetPatches(repoPath, c.ID, patches)
	cached[c.ID] = patches
	return nil
}

// applyNameStatusBlocks splits a "%H,\0<name-status -z block>" stream
// per commit (the trailing comma after %H distinguishes the id line
// from a path) and feeds each block to the name-status parser.
func applyNameStatusBlocks(output string, st *store.Store, repoPath string, cached map[string][]gitfiend.Patch) {
	fields := strings.Split(output, "\x00")
	var commitID string
	var block strings.Builder
	flush := func() {
		if commitID == "" {
			return
		}
		patches := gitparse.ParseNameStatusZ(block.String(), commitID)
		st.SetPatches(repoPath, commitID, patches)
		cached[commitID] = patches
		block.Reset()
	}
	for _, f := range fields {
		if len(f) == 41 && strings.HasSuffix(f, ",") {
			flush()
			commitID = strings.TrimSuffix(f, ",")
			continue
		}
		if f == "" {
			continue
		}
		block.WriteString(f)
		block.WriteByte('\x00')
	}
	flush()
}

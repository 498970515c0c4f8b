package query

import (
	"context"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
	"gitlab.com/gitfiend/gitfiend-core/internal/gitparse"
	"gitlab.com/gitfiend/gitfiend-core/internal/runner"
	"gitlab.com/gitfiend/gitfiend-core/internal/store"
)

// prettyFormat is the fixed commit-log format every log invocation
// uses, matching gitparse.PrettyFormat so ParseCommitLog can consume
// the output unmodified.
const prettyFormat = gitparse.PrettyFormat

// LoadCommitsAndRefs returns up to n newest commits plus decorated
// refs for repoPath. When fast is true it is served entirely from
// st; otherwise it runs the stash reflog and the branch/tag/remote
// log in parallel via an errgroup, merges stashes into the commit
// list by descending date, re-indexes, and finalizes ref pairing.
func LoadCommitsAndRefs(ctx context.Context, env *runner.Env, st *store.Store, repoPath string, n int, filters []Filter, fast bool) ([]gitfiend.Commit, []gitfiend.RefInfo, error) {
	if fast {
		commits, _ := st.Commits(repoPath)
		refs, _ := st.Refs(repoPath)
		return finalize(commits, refs, filters, repoPath, st), refs, nil
	}

	var logOut, stashOut string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, actionErr := env.RunAndCollect(gctx, repoPath,
			"log", "--branches", "--tags", "--remotes", "--decorate=full",
			"--date=raw", "--pretty=format:"+prettyFormat, "-n", strconv.Itoa(n))
		if actionErr != nil {
			return actionErr
		}
		logOut = res.Stdout
		return nil
	})
	g.Go(func() error {
		res, actionErr := env.RunAndCollect(gctx, repoPath,
			"reflog", "show", "stash", "-z", "--date=raw", "--pretty=format:"+prettyFormat)
		if actionErr != nil {
			// stash reflog is absent in a repo with no stashes; that is
			// not a failure of the overall load.
			return nil
		}
		stashOut = res.Stdout
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	commits, refsByID, err := gitparse.ParseCommitLog(logOut)
	if err != nil {
		return nil, nil, err
	}
	stashCommits, _, _ := gitparse.ParseCommitLog(stashOut)
	for i := range stashCommits {
		stashCommits[i].StashID = stashCommits[i].ID
	}

	merged := mergeStashesByDate(commits, stashCommits)
	for i := range merged {
		merged[i].Index = i
	}

	refs := make([]gitfiend.RefInfo, 0, len(refsByID))
	for _, r := range refsByID {
		refs = append(refs, r)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })

	cfg, _ := st.Config(repoPath)
	PairRefs(refs, cfg)

	st.SetCommits(repoPath, merged)
	st.SetRefs(repoPath, refs)

	return finalize(merged, refs, filters, repoPath, st), refs, nil
}

func finalize(commits []gitfiend.Commit, refs []gitfiend.RefInfo, filters []Filter, repoPath string, st *store.Store) []gitfiend.Commit {
	return ApplyFilters(commits, filters, func(id string) []gitfiend.Patch {
		patches, _ := st.Patches(repoPath, id)
		return patches
	})
}

// mergeStashesByDate inserts each stash commit into the main sequence
// at the position matching its date, descending; ties and commits
// that can't be placed confidently keep the non-stash order as a
// stable fallback.
func mergeStashesByDate(commits, stashes []gitfiend.Commit) []gitfiend.Commit {
	if len(stashes) == 0 {
		return commits
	}
	sorted := append([]gitfiend.Commit(nil), stashes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Ms > sorted[j].Date.Ms
	})
	out := make([]gitfiend.Commit, 0, len(commits)+len(sorted))
	next := 0
	for _, c := range commits {
		for next < len(sorted) && sorted[next].Date.Ms > c.Date.Ms {
			out = append(out, sorted[next])
			next++
		}
		out = append(out, c)
	}
	return append(out, sorted[next:]...)
}

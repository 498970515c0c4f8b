package main

import (
	"context"
	"encoding/json"

	"gitlab.com/gitfiend/gitfiend-core/internal/actions"
	"gitlab.com/gitfiend/gitfiend-core/internal/dispatch"
	"gitlab.com/gitfiend/gitfiend-core/internal/gitparse"
	"gitlab.com/gitfiend/gitfiend-core/internal/query"
	"gitlab.com/gitfiend/gitfiend-core/internal/runner"
	"gitlab.com/gitfiend/gitfiend-core/internal/search"
	"gitlab.com/gitfiend/gitfiend-core/internal/store"
	"gitlab.com/gitfiend/gitfiend-core/internal/watch"
)

// buildTable wires every collaborator the daemon owns into the
// dispatch table. It is intentionally small next to the full handler
// list spec.md §6 enumerates: these are the operations this build
// exercises end to end, registered the way spec.md §4.J/§9 directs —
// an explicit table entry per name, no macro/reflection lookup.
func buildTable(env *runner.Env, st *store.Store, watcher *watch.Registry, searchCtl *search.Controller, actionReg *actions.Registry) dispatch.Table {
	table := dispatch.Table{}

	table["gitVersion"] = func(raw json.RawMessage) (interface{}, error) {
		res, actionErr := env.RunAndCollect(context.Background(), ".", "--version")
		if actionErr != nil {
			return nil, actionErr
		}
		v, ok := gitparse.ParseGitVersion(res.Stdout)
		if !ok {
			return nil, &versionParseError{res.Stdout}
		}
		return v, nil
	}

	table["repoHasChanged"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			RepoPath string `json:"repoPath"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		return watcher.RepoHasChanged(opts.RepoPath), nil
	}

	table["clearRepoChangedStatus"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			RepoPath string `json:"repoPath"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		watcher.ClearRepoChangedStatus(opts.RepoPath)
		return nil, nil
	}

	table["watchRepo"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			RepoPaths   []string `json:"repoPaths"`
			RootRepo    string   `json:"rootRepo"`
			StartChanged bool    `json:"startChanged"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		repos := make([]watch.WatchedRepo, len(opts.RepoPaths))
		for i, p := range opts.RepoPaths {
			repos[i] = watch.WatchedRepo{RepoPath: p, StartChanged: opts.StartChanged}
		}
		return nil, watcher.WatchRepo(repos, opts.RootRepo)
	}

	table["startDiffSearch"] = func(raw json.RawMessage) (interface{}, error) {
		var opts search.Options
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		return searchCtl.StartDiffSearch(opts), nil
	}

	table["pollDiffSearch"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			SearchID uint32 `json:"searchId"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		complete, results, found := searchCtl.PollDiffSearch(opts.SearchID)
		return map[string]interface{}{
			"complete": complete,
			"results":  results,
			"found":    found,
		}, nil
	}

	table["clearCompletedSearches"] = func(raw json.RawMessage) (interface{}, error) {
		searchCtl.ClearCompletedSearches()
		return nil, nil
	}

	table["clearCache"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			RepoPath string `json:"repoPath"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		st.ClearCache(opts.RepoPath)
		searchCtl.ClearCompletedSearches()
		return nil, nil
	}

	table["pollAction"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			ActionID uint32 `json:"actionId"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		state, ok := actionReg.Poll(opts.ActionID)
		if !ok {
			return nil, nil
		}
		return state, nil
	}

	table["loadCommitsAndRefs"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			RepoPath string `json:"repoPath"`
			NumCommits int  `json:"numCommits"`
			Fast     bool   `json:"fast"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		commits, refs, err := query.LoadCommitsAndRefs(context.Background(), env, st, opts.RepoPath, opts.NumCommits, nil, opts.Fast)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"commits": commits, "refs": refs}, nil
	}

	table["loadHeadInfo"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			RepoPath string `json:"repoPath"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		commits, _ := st.Commits(opts.RepoPath)
		refs, _ := st.Refs(opts.RepoPath)
		return query.LoadHeadInfo(context.Background(), env, opts.RepoPath, commits, refs)
	}

	table["loadRefDiffs"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			RepoPath string `json:"repoPath"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		commits, _ := st.Commits(opts.RepoPath)
		refs, _ := st.Refs(opts.RepoPath)
		return query.LoadRefDiffs(context.Background(), env, opts.RepoPath, commits, refs)
	}

	table["loadConflictedFile"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			FilePath string `json:"filePath"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		return query.LoadConflictedFile(opts.FilePath)
	}

	// autoComplete is a deliberate stub: the Trie auto-complete index
	// (commit-message / branch-name completion) is out of scope here,
	// but the handler name stays in the table so the dispatcher's
	// handler set is complete against the front-end's call list.
	table["autoComplete"] = func(raw json.RawMessage) (interface{}, error) {
		return []string{}, nil
	}

	table["startAdd"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			RepoPath string   `json:"repoPath"`
			Files    []string `json:"files"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		return env.StartAdd(actionReg, opts.RepoPath, opts.Files), nil
	}

	table["startCreateRepo"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			RepoPath string `json:"repoPath"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		return env.StartCreateRepo(actionReg, opts.RepoPath), nil
	}

	table["startFetchAll"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			RepoPath string `json:"repoPath"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		return env.StartFetchAll(actionReg, opts.RepoPath), nil
	}

	table["startCloneRepo"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			RepoPath string `json:"repoPath"`
			Url      string `json:"url"`
			DestDir  string `json:"destDir"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		return env.StartCloneRepo(actionReg, opts.RepoPath, opts.Url, opts.DestDir), nil
	}

	table["startStashChanges"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			RepoPath string `json:"repoPath"`
			Message  string `json:"message"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		return env.StartStashChanges(actionReg, opts.RepoPath, opts.Message), nil
	}

	table["startStashStaged"] = func(raw json.RawMessage) (interface{}, error) {
		var opts struct {
			RepoPath string `json:"repoPath"`
		}
		if err := dispatch.DecodeOptions(raw, &opts); err != nil {
			return nil, err
		}
		return env.StartStashStaged(actionReg, opts.RepoPath), nil
	}

	return table
}

type versionParseError struct{ raw string }

func (e *versionParseError) Error() string { return "could not parse git version output: " + e.raw }

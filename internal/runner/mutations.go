package runner

import "gitlab.com/gitfiend/gitfiend-core/internal/actions"

// StartAdd stages paths (or everything, when paths is empty) as a
// tracked action, the way original_source's actions/add.rs exposes a
// fire-and-poll `git add`.
func (e *Env) StartAdd(reg *actions.Registry, dir string, paths []string) uint32 {
	args := []string{"add"}
	if len(paths) == 0 {
		args = append(args, "-A")
	} else {
		args = append(args, "--")
		args = append(args, paths...)
	}
	return e.RunAsAction(reg, dir, args...)
}

// StartCreateRepo runs `git init` in dir as a tracked action, matching
// original_source's actions/create_repo.rs.
func (e *Env) StartCreateRepo(reg *actions.Registry, dir string) uint32 {
	return e.RunAsAction(reg, dir, "init")
}

// StartFetchAll fetches every remote as a tracked action. Fetch talks
// to a remote and may need to authenticate, so the credential-helper
// override CredentialHelperArgs builds is prepended, matching
// original_source's actions/fetch.rs.
func (e *Env) StartFetchAll(reg *actions.Registry, dir string) uint32 {
	args := append(e.CredentialHelperArgs(), "fetch", "--all")
	return e.RunAsAction(reg, dir, args...)
}

// StartCloneRepo clones url into destDir (relative to dir) as a
// tracked action. Like fetch, clone may need to authenticate against
// the remote, so the credential-helper override is prepended, matching
// original_source's actions/clone.rs.
func (e *Env) StartCloneRepo(reg *actions.Registry, dir, url, destDir string) uint32 {
	args := append(e.CredentialHelperArgs(), "clone", url, destDir)
	return e.RunAsAction(reg, dir, args...)
}

// StartStashChanges stashes the full working-tree state (tracked
// modifications, optionally with a message), matching
// original_source's actions/stash.rs.
func (e *Env) StartStashChanges(reg *actions.Registry, dir, message string) uint32 {
	args := []string{"stash", "push"}
	if message != "" {
		args = append(args, "-m", message)
	}
	return e.RunAsAction(reg, dir, args...)
}

// StartStashStaged stashes only the currently staged changes, leaving
// unstaged modifications in the working tree, matching
// original_source's actions/stash.rs stash-staged variant.
func (e *Env) StartStashStaged(reg *actions.Registry, dir string) uint32 {
	return e.RunAsAction(reg, dir, "stash", "push", "--staged")
}

// Package query composes the runner, parsers, and store into the
// higher-level operations the dispatcher exposes: loading commits and
// refs, hunk/split/WIP diffs, ref diffs, unpushed commits, text
// search, head info, and merge/rebase state.
package query

import "gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"

// remoteForBranch resolves the remote a local branch pairs with, in
// spec.md §4.G's priority order: branch.<b>.pushremote,
// remote.pushdefault, branch.<b>.remote, else "origin".
func remoteForBranch(cfg *gitfiend.GitConfig, branch string) string {
	if cfg == nil {
		return "origin"
	}
	if v, ok := cfg.Entries["branch."+branch+".pushremote"]; ok && v != "" {
		return v
	}
	if v, ok := cfg.Entries["remote.pushdefault"]; ok && v != "" {
		return v
	}
	if v, ok := cfg.Entries["branch."+branch+".remote"]; ok && v != "" {
		return v
	}
	return "origin"
}

// PairRefs sets RefInfo.SiblingID on every local branch and its
// tracking remote ref, mutating refs in place. A local branch b pairs
// with the remote ref named refs/remotes/<remote>/<b>, where remote
// is resolved by remoteForBranch; pairing requires both the resolved
// remote name and the short name to match.
func PairRefs(refs []gitfiend.RefInfo, cfg *gitfiend.GitConfig) {
	byRemoteAndName := map[string]int{}
	for i, r := range refs {
		if r.RefType == gitfiend.RefBranch && r.Location == gitfiend.Remote {
			byRemoteAndName[r.RemoteName+"/"+r.ShortName] = i
		}
	}
	for i := range refs {
		local := refs[i]
		if local.RefType != gitfiend.RefBranch || local.Location != gitfiend.Local {
			continue
		}
		remote := remoteForBranch(cfg, local.ShortName)
		key := remote + "/" + local.ShortName
		j, ok := byRemoteAndName[key]
		if !ok {
			continue
		}
		refs[i].SiblingID = refs[j].ID
		refs[j].SiblingID = local.ID
	}
}

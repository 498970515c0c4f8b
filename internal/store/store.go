// Package store is the process's in-memory cache of everything the
// query engine has learned about a repository: commits, refs, config,
// and patches, keyed by repo path. The teacher names a concurrent map
// with per-bucket locking as the right shape for this kind of cache
// (surgeon/svnread.go's remark on parallelizing with
// "a concurrent-map implementation that has per-bucket locking") but
// never wires the dependency up; this package is where that happens.
package store

import (
	"sync"

	cmap "github.com/orcaman/concurrent-map"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

// Store holds one process's whole cache. Commits, refs, config and
// the resolved .git directory are "whole-repo" data: every update
// replaces a repo's entry atomically, so readers always see a
// complete pre- or post-update snapshot. Patches are looked up and
// invalidated one commit at a time, so they live behind their own
// lock rather than the concurrent map.
type Store struct {
	commits cmap.ConcurrentMap
	refs    cmap.ConcurrentMap
	config  cmap.ConcurrentMap
	gitDirs cmap.ConcurrentMap

	patchMu sync.RWMutex
	patches map[string]map[string][]gitfiend.Patch

	dirtyMu sync.RWMutex
	dirty   map[string]bool
}

// New builds an empty Store.
func New() *Store {
	return &Store{
		commits: cmap.New(),
		refs:    cmap.New(),
		config:  cmap.New(),
		gitDirs: cmap.New(),
		patches: map[string]map[string][]gitfiend.Patch{},
		dirty:   map[string]bool{},
	}
}

// SetCommits atomically replaces the commit list for repoPath.
func (s *Store) SetCommits(repoPath string, commits []gitfiend.Commit) {
	snapshot := append([]gitfiend.Commit(nil), commits...)
	s.commits.Set(repoPath, snapshot)
}

// Commits returns a clone of the cached commit list, so the caller
// may mutate (filter, re-index) without racing a concurrent writer.
func (s *Store) Commits(repoPath string) ([]gitfiend.Commit, bool) {
	v, ok := s.commits.Get(repoPath)
	if !ok {
		return nil, false
	}
	commits := v.([]gitfiend.Commit)
	return append([]gitfiend.Commit(nil), commits...), true
}

// SetRefs atomically replaces the ref list for repoPath.
func (s *Store) SetRefs(repoPath string, refs []gitfiend.RefInfo) {
	snapshot := append([]gitfiend.RefInfo(nil), refs...)
	s.refs.Set(repoPath, snapshot)
}

// Refs returns a clone of the cached ref list.
func (s *Store) Refs(repoPath string) ([]gitfiend.RefInfo, bool) {
	v, ok := s.refs.Get(repoPath)
	if !ok {
		return nil, false
	}
	refs := v.([]gitfiend.RefInfo)
	return append([]gitfiend.RefInfo(nil), refs...), true
}

// SetConfig atomically replaces the parsed config for repoPath.
func (s *Store) SetConfig(repoPath string, cfg *gitfiend.GitConfig) {
	s.config.Set(repoPath, cfg)
}

// Config returns the cached config, or nil if absent.
func (s *Store) Config(repoPath string) (*gitfiend.GitConfig, bool) {
	v, ok := s.config.Get(repoPath)
	if !ok {
		return nil, false
	}
	return v.(*gitfiend.GitConfig), true
}

// SetGitDir records the resolved .git directory for repoPath.
func (s *Store) SetGitDir(repoPath, gitDir string) {
	s.gitDirs.Set(repoPath, gitDir)
}

// GitDir returns the resolved .git directory for repoPath.
func (s *Store) GitDir(repoPath string) (string, bool) {
	v, ok := s.gitDirs.Get(repoPath)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// SetPatches inserts or replaces the patch list for one commit.
func (s *Store) SetPatches(repoPath, commitID string, patches []gitfiend.Patch) {
	s.patchMu.Lock()
	defer s.patchMu.Unlock()
	repoPatches, ok := s.patches[repoPath]
	if !ok {
		repoPatches = map[string][]gitfiend.Patch{}
		s.patches[repoPath] = repoPatches
	}
	repoPatches[commitID] = append([]gitfiend.Patch(nil), patches...)
}

// Patches returns the cached patch list for one commit.
func (s *Store) Patches(repoPath, commitID string) ([]gitfiend.Patch, bool) {
	s.patchMu.RLock()
	defer s.patchMu.RUnlock()
	repoPatches, ok := s.patches[repoPath]
	if !ok {
		return nil, false
	}
	patches, ok := repoPatches[commitID]
	if !ok {
		return nil, false
	}
	return append([]gitfiend.Patch(nil), patches...), true
}

// AllPatches returns every cached commit_id -> patches pair for
// repoPath, used by the patch-cache loader to decide what's missing.
func (s *Store) AllPatches(repoPath string) map[string][]gitfiend.Patch {
	s.patchMu.RLock()
	defer s.patchMu.RUnlock()
	out := map[string][]gitfiend.Patch{}
	for id, patches := range s.patches[repoPath] {
		out[id] = append([]gitfiend.Patch(nil), patches...)
	}
	return out
}

// SetDirty marks repoPath as changed since it was last cleared.
func (s *Store) SetDirty(repoPath string, dirty bool) {
	s.dirtyMu.Lock()
	defer s.dirtyMu.Unlock()
	s.dirty[repoPath] = dirty
}

// IsDirty reports whether repoPath has changed since it was last
// cleared.
func (s *Store) IsDirty(repoPath string) bool {
	s.dirtyMu.RLock()
	defer s.dirtyMu.RUnlock()
	return s.dirty[repoPath]
}

// ClearCache purges commit/ref/config/patch state for one repo; the
// next query must repopulate from the VCS. The on-disk patch cache is
// untouched and may still satisfy a subset of the rebuild.
func (s *Store) ClearCache(repoPath string) {
	s.commits.Remove(repoPath)
	s.refs.Remove(repoPath)
	s.config.Remove(repoPath)
	s.gitDirs.Remove(repoPath)

	s.patchMu.Lock()
	delete(s.patches, repoPath)
	s.patchMu.Unlock()

	s.dirtyMu.Lock()
	delete(s.dirty, repoPath)
	s.dirtyMu.Unlock()
}

// ClearAllCaches purges every repo's in-memory state.
func (s *Store) ClearAllCaches() {
	for _, k := range s.commits.Keys() {
		s.commits.Remove(k)
	}
	for _, k := range s.refs.Keys() {
		s.refs.Remove(k)
	}
	for _, k := range s.config.Keys() {
		s.config.Remove(k)
	}
	for _, k := range s.gitDirs.Keys() {
		s.gitDirs.Remove(k)
	}

	s.patchMu.Lock()
	s.patches = map[string]map[string][]gitfiend.Patch{}
	s.patchMu.Unlock()

	s.dirtyMu.Lock()
	s.dirty = map[string]bool{}
	s.dirtyMu.Unlock()
}

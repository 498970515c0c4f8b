// Package watch implements the recursive filesystem watcher that
// backs the front-end's dirty-repo indicator: one process-wide
// watcher rooted at a single directory, a path filter that ignores
// VCS-internal churn, and per-repo dirty flags that the dispatcher
// exposes through repo_has_changed/clear_repo_changed_status.
package watch

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// WatchedRepo pairs a repo path with its initial dirty flag.
type WatchedRepo struct {
	RepoPath     string
	StartChanged bool
}

// Registry tracks the active watched-repo set and their dirty flags,
// plus the single running fsnotify watcher (if any). Only one watcher
// may be active; re-invoking WatchRepo with a different root tears
// down the old one and starts a fresh one at the new root.
type Registry struct {
	mu      sync.RWMutex
	dirty   map[string]bool
	watcher *fsnotify.Watcher
	root    string
	done    chan struct{}
}

func NewRegistry() *Registry {
	return &Registry{dirty: map[string]bool{}}
}

// WatchRepo replaces the registered repo set and (re)starts the
// single recursive watcher at root, per spec.md's watch_repo
// operation.
func (r *Registry) WatchRepo(repos []WatchedRepo, root string) error {
	r.mu.Lock()
	if r.watcher != nil {
		r.watcher.Close()
		close(r.done)
	}

	dirty := make(map[string]bool, len(repos))
	for _, rp := range repos {
		dirty[rp.RepoPath] = rp.StartChanged
	}
	r.dirty = dirty
	r.root = root

	w, err := fsnotify.NewWatcher()
	if err != nil {
		r.mu.Unlock()
		return err
	}
	if err := addRecursive(w, root); err != nil {
		w.Close()
		r.mu.Unlock()
		return err
	}
	r.watcher = w
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	go r.run(w, done)
	return nil
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}

func (r *Registry) run(w *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			r.handleEvent(w, ev)
		case _, ok := <-w.Errors:
			if !ok {
				return
			}
		}
	}
}

func (r *Registry) handleEvent(w *fsnotify.Watcher, ev fsnotify.Event) {
	if ev.Op&(fsnotify.Create) != 0 {
		if info, err := filepath.Abs(ev.Name); err == nil {
			_ = w.Add(info) // best-effort: extend the watch to any new directory
		}
	}
	if !shouldTrackPath(ev.Name) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	repoPath := r.longestWatchedPrefix(ev.Name)
	if repoPath != "" {
		r.dirty[repoPath] = true
	}
}

// longestWatchedPrefix finds the longest registered repo path that is
// a prefix of eventPath, implementing spec.md's dirty-propagation
// rule. Callers must hold r.mu.
func (r *Registry) longestWatchedPrefix(eventPath string) string {
	var best string
	for repoPath := range r.dirty {
		if strings.HasPrefix(eventPath, repoPath) && len(repoPath) > len(best) {
			best = repoPath
		}
	}
	return best
}

// shouldTrackPath implements spec.md's watcher path filter: an event
// path is ignored iff every ancestor includes a .git component and
// the path does not end in HEAD (outside .git/logs/) or ORIG_HEAD.
func shouldTrackPath(path string) bool {
	parts := strings.Split(filepath.ToSlash(path), "/")
	hasGitAncestor := false
	for _, p := range parts {
		if p == ".git" {
			hasGitAncestor = true
			break
		}
	}
	if !hasGitAncestor {
		return true
	}

	base := parts[len(parts)-1]
	if base == "ORIG_HEAD" {
		return true
	}
	if base == "HEAD" {
		// .git/logs/HEAD churns on every commit/checkout just like the
		// index does; only the top-level .git/HEAD (and submodule
		// equivalents) actually flips on a branch switch.
		inLogs := false
		seenGit := false
		for _, p := range parts {
			if p == ".git" {
				seenGit = true
			}
			if seenGit && p == "logs" {
				inLogs = true
				break
			}
		}
		return !inLogs
	}
	return false
}

// RepoHasChanged returns the dirty flag for repoPath.
func (r *Registry) RepoHasChanged(repoPath string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dirty[repoPath]
}

// ClearRepoChangedStatus resets repoPath's dirty flag.
func (r *Registry) ClearRepoChangedStatus(repoPath string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dirty[repoPath] = false
}

// WatchedRepos returns the currently registered repo paths, sorted,
// for diagnostics.
func (r *Registry) WatchedRepos() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.dirty))
	for k := range r.dirty {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Package search implements the diff-text search controller: a
// monotonic search id, a background worker per search that the
// controller can cooperatively cancel by bumping the current id, and
// a non-deleting poll interface. Modeled on the append-log-under-lock
// shape internal/actions borrows from reposurgeon's Baton, but with a
// "cancel by superseding id" twist the action registry doesn't need.
package search

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
	"gitlab.com/gitfiend/gitfiend-core/internal/gitparse"
	"gitlab.com/gitfiend/gitfiend-core/internal/runner"
)

// Options describes one diff-text search request.
type Options struct {
	RepoPath   string `json:"repoPath"`
	SearchText string `json:"searchText"`
	// FirstID/LastID bound the commit window to search: FirstID is the
	// newest end and LastID the oldest, searched as LastID..FirstID.
	FirstID    string `json:"firstId"`
	LastID     string `json:"lastId"`
	NumResults int    `json:"numResults"`
}

// Controller owns the monotonic search id and the registry of
// in-flight/completed searches.
type Controller struct {
	mu       sync.RWMutex
	currentID uint32
	searches map[uint32]*gitfiend.DiffSearch
	env      *runner.Env
}

func NewController(env *runner.Env) *Controller {
	return &Controller{searches: map[uint32]*gitfiend.DiffSearch{}, env: env}
}

// nextID returns previous+1, starting at 1.
func (c *Controller) nextID() uint32 {
	return atomic.AddUint32(&c.currentID, 1)
}

// current returns the latest allocated id.
func (c *Controller) current() uint32 {
	return atomic.LoadUint32(&c.currentID)
}

// StartDiffSearch allocates a new id, registers a pending search, and
// spawns its background worker without blocking the caller.
func (c *Controller) StartDiffSearch(opts Options) uint32 {
	id := c.nextID()
	entry := &gitfiend.DiffSearch{
		RepoPath:   opts.RepoPath,
		SearchText: opts.SearchText,
		SearchID:   id,
	}
	c.mu.Lock()
	c.searches[id] = entry
	c.mu.Unlock()

	go c.run(id, opts)
	return id
}

func (c *Controller) run(id uint32, opts Options) {
	cancelled := func() bool { return c.current() != id }
	if cancelled() {
		return
	}

	n := opts.NumResults
	if n <= 0 {
		n = 100
	}
	args := []string{
		"log", opts.LastID + ".." + opts.FirstID,
		"-S", opts.SearchText,
		"--name-status", "--pretty=format:%H,", "-z",
		"-n", strconv.Itoa(n),
	}
	res, ok, actionErr := c.env.RunWithCancellation(context.Background(), opts.RepoPath, cancelled, args...)
	if !ok || actionErr != nil {
		// Cancelled (superseded by a newer search) or failed: leave the
		// registry entry as an incomplete pending record either way.
		return
	}

	results := parseSearchResults(res.Stdout)

	c.mu.Lock()
	defer c.mu.Unlock()
	entry, exists := c.searches[id]
	if !exists {
		return
	}
	entry.Result = results
	entry.Completed = true
}

// parseSearchResults splits a "%H,\0<name-status -z block>" stream
// per commit (the same shape the patch-cache loader batches with
// `show`/`log --name-status`) and turns each block's patches into the
// file-match list for that commit.
func parseSearchResults(output string) []gitfiend.SearchCommitResult {
	fields := strings.Split(output, "\x00")
	var out []gitfiend.SearchCommitResult
	var commitID string
	var block strings.Builder

	flush := func() {
		if commitID == "" {
			return
		}
		patches := gitparse.ParseNameStatusZ(block.String(), commitID)
		matches := make([]gitfiend.FileMatch, 0, len(patches))
		for _, p := range patches {
			name := p.NewFile
			if name == "" {
				name = p.OldFile
			}
			matches = append(matches, gitfiend.FileMatch{FileName: name})
		}
		out = append(out, gitfiend.SearchCommitResult{CommitID: commitID, Matches: matches})
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
	return out
}

// PollDiffSearch returns the current snapshot of a search without
// deleting it, so the caller may poll repeatedly while it streams in.
func (c *Controller) PollDiffSearch(id uint32) (complete bool, results []gitfiend.SearchCommitResult, found bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.searches[id]
	if !ok {
		return false, nil, false
	}
	return entry.Completed, entry.Result, true
}

// ClearCompletedSearches removes every completed entry in one pass.
func (c *Controller) ClearCompletedSearches() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, entry := range c.searches {
		if entry.Completed {
			delete(c.searches, id)
		}
	}
}

// Package actions is the process-wide registry of long-running
// mutating operations (spec.md §4.D), a keyed map from action id to
// ActionState. It is grounded on reposurgeon's Baton (surgeon/inner.go)
// for the append-log-under-lock shape and golang-dep's cmd.go for the
// underlying poll loop the runner drives.
package actions

import (
	"sync"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

// Registry holds every in-flight or completed (not yet polled) action.
type Registry struct {
	mu      sync.RWMutex
	nextID  uint32
	actions map[uint32]*gitfiend.ActionState
}

// NewRegistry builds an empty registry. Id 0 is reserved as an error
// sentinel, so the counter starts at 1.
func NewRegistry() *Registry {
	return &Registry{nextID: 1, actions: map[uint32]*gitfiend.ActionState{}}
}

// Start allocates the next id, inserts an empty ActionState, and
// returns the id to the caller.
func (r *Registry) Start() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.actions[id] = &gitfiend.ActionState{Stdout: []string{}, Stderr: []string{}}
	return id
}

// AppendStdout pushes a chunk onto the action's stdout log.
func (r *Registry) AppendStdout(id uint32, chunk string) {
	if chunk == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.actions[id]; ok {
		a.Stdout = append(a.Stdout, chunk)
	}
}

// AppendStderr pushes a chunk onto the action's stderr log.
func (r *Registry) AppendStderr(id uint32, chunk string) {
	if chunk == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.actions[id]; ok {
		a.Stderr = append(a.Stderr, chunk)
	}
}

// SetDone flips the action's done flag.
func (r *Registry) SetDone(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.actions[id]; ok {
		a.Done = true
	}
}

// SetError records the action's error and marks it done in one step.
func (r *Registry) SetError(id uint32, err *gitfiend.ActionError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.actions[id]; ok {
		a.Error = err
		a.Done = true
	}
}

// Poll returns a snapshot of the action's current state. When the
// action is done, the entry is removed so memory is reclaimed once
// the client has observed completion.
func (r *Registry) Poll(id uint32) (gitfiend.ActionState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.actions[id]
	if !ok {
		return gitfiend.ActionState{}, false
	}
	snapshot := gitfiend.ActionState{
		Stdout: append([]string(nil), a.Stdout...),
		Stderr: append([]string(nil), a.Stderr...),
		Done:   a.Done,
		Error:  a.Error,
	}
	if a.Done {
		delete(r.actions, id)
	}
	return snapshot, true
}

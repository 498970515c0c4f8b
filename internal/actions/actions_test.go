package actions

import (
	"testing"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

func TestStartAllocatesFromOne(t *testing.T) {
	r := NewRegistry()
	if id := r.Start(); id != 1 {
		t.Fatalf("expected first id 1, got %d", id)
	}
	if id := r.Start(); id != 2 {
		t.Fatalf("expected second id 2, got %d", id)
	}
}

func TestAppendAndPoll(t *testing.T) {
	r := NewRegistry()
	id := r.Start()
	r.AppendStdout(id, "hello ")
	r.AppendStdout(id, "world")
	r.AppendStderr(id, "warn")

	state, ok := r.Poll(id)
	if !ok {
		t.Fatalf("expected action to be present")
	}
	if len(state.Stdout) != 2 || state.Stdout[0] != "hello " || state.Stdout[1] != "world" {
		t.Fatalf("unexpected stdout %+v", state.Stdout)
	}
	if state.Done {
		t.Fatalf("expected not done")
	}

	r.SetDone(id)
	state, ok = r.Poll(id)
	if !ok || !state.Done {
		t.Fatalf("expected done snapshot, got %+v ok=%v", state, ok)
	}

	if _, ok := r.Poll(id); ok {
		t.Fatalf("expected entry removed after done was observed")
	}
}

func TestSetErrorMarksDone(t *testing.T) {
	r := NewRegistry()
	id := r.Start()
	r.SetError(id, &gitfiend.ActionError{Kind: gitfiend.ErrorCredential, Message: "bad creds"})

	state, ok := r.Poll(id)
	if !ok || !state.Done {
		t.Fatalf("expected done, got %+v", state)
	}
	if state.Error == nil || state.Error.Kind != gitfiend.ErrorCredential {
		t.Fatalf("expected credential error, got %+v", state.Error)
	}
}

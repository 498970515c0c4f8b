package runner

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"

	"gitlab.com/gitfiend/gitfiend-core/internal/actions"
	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

// Result is the outcome of a run-and-collect invocation.
type Result struct {
	Stdout string
	Stderr string
	Status int
}

// RunAndCollect spawns "git <args...>" in dir, waits for it to exit,
// and classifies any failure per spec.md §7: a non-zero exit with a
// credential-failure signature in stderr is Credential, any other
// non-zero exit is Git, and a spawn/wait failure is IO.
func (e *Env) RunAndCollect(ctx context.Context, dir string, args ...string) (Result, *gitfiend.ActionError) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = e.baseEnv

	mc := newMonitoredCmd(ctx, cmd, 5*time.Minute)
	err := mc.run()
	stdout := mc.stdout.String()
	stderr := mc.stderr.String()
	status := -1
	if cmd.ProcessState != nil {
		status = cmd.ProcessState.ExitCode()
	}

	if err == nil {
		return Result{Stdout: stdout, Stderr: stderr, Status: status}, nil
	}
	if _, ok := err.(*exec.ExitError); ok {
		if isCredentialFailure(stderr) {
			return Result{Stdout: stdout, Stderr: stderr, Status: status},
				&gitfiend.ActionError{Kind: gitfiend.ErrorCredential, Message: strings.TrimSpace(stderr)}
		}
		return Result{Stdout: stdout, Stderr: stderr, Status: status},
			&gitfiend.ActionError{Kind: gitfiend.ErrorGit, Message: strings.TrimSpace(stderr)}
	}
	return Result{Stdout: stdout, Stderr: stderr, Status: status},
		&gitfiend.ActionError{Kind: gitfiend.ErrorIO, Message: err.Error()}
}

// RunWithCancellation behaves like RunAndCollect but polls cancelled
// on each tick; when it returns true, the child is killed and the
// call returns ok=false ("None" in spec.md §4.C). Used by the diff
// search controller.
func (e *Env) RunWithCancellation(ctx context.Context, dir string, cancelled func() bool, args ...string) (Result, bool, *gitfiend.ActionError) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = e.baseEnv

	stdout, stderr := newActivityBuffer(), newActivityBuffer()
	cmd.Stdout, cmd.Stderr = stdout, stderr

	if err := cmd.Start(); err != nil {
		return Result{}, true, &gitfiend.ActionError{Kind: gitfiend.ErrorIO, Message: err.Error()}
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if cancelled() {
				_ = cmd.Process.Kill()
				return Result{}, false, nil
			}
		case err := <-done:
			status := cmd.ProcessState.ExitCode()
			out, errOut := stdout.String(), stderr.String()
			if err == nil {
				return Result{Stdout: out, Stderr: errOut, Status: status}, true, nil
			}
			if isCredentialFailure(errOut) {
				return Result{Stdout: out, Stderr: errOut, Status: status}, true,
					&gitfiend.ActionError{Kind: gitfiend.ErrorCredential, Message: strings.TrimSpace(errOut)}
			}
			return Result{Stdout: out, Stderr: errOut, Status: status}, true,
				&gitfiend.ActionError{Kind: gitfiend.ErrorGit, Message: strings.TrimSpace(errOut)}
		}
	}
}

// RunAsAction allocates a new action id from reg, spawns "git
// <args...>" in dir, and drives it on a background goroutine that
// appends stdout/stderr into the action's log buffers as the child
// produces them, then on exit records done and any error
// classification. It returns the id immediately.
func (e *Env) RunAsAction(reg *actions.Registry, dir string, args ...string) uint32 {
	id := reg.Start()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = e.baseEnv

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		reg.SetError(id, &gitfiend.ActionError{Kind: gitfiend.ErrorIO, Message: err.Error()})
		return id
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		reg.SetError(id, &gitfiend.ActionError{Kind: gitfiend.ErrorIO, Message: err.Error()})
		return id
	}

	if err := cmd.Start(); err != nil {
		reg.SetError(id, &gitfiend.ActionError{Kind: gitfiend.ErrorIO, Message: err.Error()})
		return id
	}

	go driveAction(reg, id, cmd, stdoutPipe, stderrPipe)
	return id
}

type readerLike interface {
	Read(p []byte) (int, error)
}

// driveAction continuously appends whatever the child writes to the
// action's logs until both pipes are closed, then waits for exit and
// records the final state. The 50ms poll cadence named in spec.md
// §4.C describes the client's observation rate, not ours: appending
// as bytes arrive gives the same observable log with less latency.
func driveAction(reg *actions.Registry, id uint32, cmd *exec.Cmd, stdout, stderr readerLike) {
	var stderrAll strings.Builder
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		drainInto(stdout, func(chunk string) { reg.AppendStdout(id, chunk) })
	}()
	go func() {
		defer wg.Done()
		drainInto(stderr, func(chunk string) {
			reg.AppendStderr(id, chunk)
			stderrAll.WriteString(chunk)
		})
	}()
	wg.Wait()

	err := cmd.Wait()
	if err == nil {
		reg.SetDone(id)
		return
	}
	if isCredentialFailure(stderrAll.String()) {
		reg.SetError(id, &gitfiend.ActionError{Kind: gitfiend.ErrorCredential, Message: strings.TrimSpace(stderrAll.String())})
		return
	}
	reg.SetError(id, &gitfiend.ActionError{Kind: gitfiend.ErrorGit, Message: strings.TrimSpace(stderrAll.String())})
}

func drainInto(r readerLike, append func(string)) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			append(string(buf[:n]))
		}
		if err != nil {
			return
		}
	}
}

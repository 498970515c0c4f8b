// Package replshell is a small debug console for poking at a running
// daemon's watcher and store state from a terminal, built the way
// reposurgeon wires kommandant.Kmdt up to its Reposurgeon command set
// (surgeon/reposurgeon.go's SetCore/DoQuit/DoShell/newReposurgeon):
// a struct of Do<Name> methods kommandant discovers by reflection,
// tokenized with anmitsu/go-shlex the way reposurgeon's newLineParse
// does.
package replshell

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	shlex "github.com/anmitsu/go-shlex"
	kommandant "gitlab.com/ianbruene/kommandant"

	"gitlab.com/gitfiend/gitfiend-core/internal/search"
	"gitlab.com/gitfiend/gitfiend-core/internal/store"
	"gitlab.com/gitfiend/gitfiend-core/internal/watch"
)

// Shell is the command set exposed to the console; its Do<Name>
// methods are what kommandant dispatches typed commands to.
type Shell struct {
	cmd       *kommandant.Kmdt
	store     *store.Store
	watcher   *watch.Registry
	searchCtl *search.Controller
}

func New(st *store.Store, watcher *watch.Registry, searchCtl *search.Controller) *Shell {
	return &Shell{store: st, watcher: watcher, searchCtl: searchCtl}
}

// SetCore is kommandant's housekeeping hook for handing the shell its
// own Kmdt instance back, mirroring Reposurgeon.SetCore.
func (s *Shell) SetCore(k *kommandant.Kmdt) {
	s.cmd = k
}

// Run starts the read-eval-print loop on stdin until "quit" or EOF.
func Run(st *store.Store, watcher *watch.Registry, searchCtl *search.Controller) {
	ctx := context.Background()
	shell := New(st, watcher, searchCtl)
	interpreter := kommandant.NewKommandant(shell)
	interpreter.CmdLoop(ctx, "")
}

// DoWatched lists the currently watched repo paths and their dirty
// flags.
func (s *Shell) DoWatched(line string) bool {
	for _, repoPath := range s.watcher.WatchedRepos() {
		fmt.Printf("%s\tchanged=%v\n", repoPath, s.watcher.RepoHasChanged(repoPath))
	}
	return false
}

// DoClear clears the in-memory cache for one repo path, or every repo
// when called with no argument.
func (s *Shell) DoClear(line string) bool {
	fields, err := shlex.Split(line, true)
	if err != nil {
		fmt.Println("clear: ", err)
		return false
	}
	if len(fields) == 0 {
		s.store.ClearAllCaches()
		return false
	}
	s.store.ClearCache(fields[0])
	return false
}

// DoShell runs a shell command, honoring $SHELL, the same shortcut
// reposurgeon's "!" command offers.
func (s *Shell) DoShell(line string) bool {
	shellBin := os.Getenv("SHELL")
	if shellBin == "" {
		shellBin = "/bin/sh"
	}
	cmd := exec.Command(shellBin, "-c", line)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "spawn of %s returned error: %v\n", shellBin, err)
	}
	return false
}

// DoQuit exits the console.
func (s *Shell) DoQuit(line string) bool { return true }

// DoEOF treats EOF (ctrl-D) the same as "quit".
func (s *Shell) DoEOF(line string) bool { return true }

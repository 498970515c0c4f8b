// Package runner is the only package in this module allowed to spawn
// the underlying git binary. It exposes run-and-collect,
// run-as-action and run-with-cancellation, grounded on golang-dep's
// monitoredCmd/activityBuffer pattern (_examples/golang-dep/cmd.go)
// for process supervision and reposurgeon's captureFromProcess
// (surgeon/inner.go) for output capture.
package runner

import (
	"os"
	"runtime"
	"strings"
)

// credentialSignatures are substring matches against stderr that
// classify a failed run as a Credential error rather than a plain Git
// error.
var credentialSignatures = []string{
	"could not read Username",
	"Invalid username or password",
	"Authentication failed for",
}

func isCredentialFailure(stderr string) bool {
	for _, sig := range credentialSignatures {
		if strings.Contains(stderr, sig) {
			return true
		}
	}
	return false
}

// Env holds the process-wide runner configuration, built once at
// startup by NewEnv.
type Env struct {
	AskpassPath string
	GitVersion  [3]int
	baseEnv     []string
}

// NewEnv configures the runner environment: GIT_TERMINAL_PROMPT=0
// suppresses interactive prompts, askpassPath points GIT_ASKPASS at
// the companion helper binary, and on macOS /usr/local/bin is
// appended to PATH when absent (Homebrew's git is often not on the
// login PATH of an app launched from Finder).
func NewEnv(askpassPath string) *Env {
	env := os.Environ()
	env = append(env, "GIT_TERMINAL_PROMPT=0")
	if askpassPath != "" {
		env = append(env, "GIT_ASKPASS="+askpassPath)
	}
	if runtime.GOOS == "darwin" {
		env = appendToPathIfAbsent(env, "/usr/local/bin")
	}
	return &Env{AskpassPath: askpassPath, baseEnv: env}
}

func appendToPathIfAbsent(env []string, dir string) []string {
	for i, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			parts := strings.Split(strings.TrimPrefix(kv, "PATH="), string(os.PathListSeparator))
			for _, p := range parts {
				if p == dir {
					return env
				}
			}
			env[i] = kv + string(os.PathListSeparator) + dir
			return env
		}
	}
	return append(env, "PATH="+dir)
}

// CredentialHelperArgs returns the "-c credential.helper=..." override
// pair prepended to mutating commands. On Windows it is "manager-core"
// when the VCS is 2.29 or newer, else "manager"; on Linux it is
// "store"; on macOS no override is needed, since the system keychain
// helper is already the default.
func (e *Env) CredentialHelperArgs() []string {
	switch runtime.GOOS {
	case "windows":
		helper := "manager"
		if e.GitVersion[0] > 2 || (e.GitVersion[0] == 2 && e.GitVersion[1] >= 29) {
			helper = "manager-core"
		}
		return []string{"-c", "credential.helper=" + helper}
	case "linux":
		return []string{"-c", "credential.helper=store"}
	default:
		return nil
	}
}

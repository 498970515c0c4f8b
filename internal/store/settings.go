package store

import "sync"

// settingsMu guards the single process-wide Settings value. It is
// supplemented from the original implementation's git_settings.rs,
// which keeps one global, swappable settings object rather than
// threading configuration through every call.
var (
	settingsMu sync.RWMutex
	settings   gitfiendSettings
)

type gitfiendSettings struct {
	gitHomeOverride string
	username        string
	password        string
}

// SetGitHomeOverride records an explicit git executable's home
// directory. The runner does not consult it; it always runs `git`
// from PATH.
func SetGitHomeOverride(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings.gitHomeOverride = path
}

// GitHomeOverride returns the configured override, if any.
func GitHomeOverride() string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings.gitHomeOverride
}

// SetCredentials records GITFIEND_USERNAME/GITFIEND_PASSWORD-equivalent
// values in process memory. The askpass helper does not read them; it
// reads its own GITFIEND_USERNAME/GITFIEND_PASSWORD environment
// variables.
func SetCredentials(username, password string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings.username = username
	settings.password = password
}

// Credentials returns the currently configured username/password.
func Credentials() (string, string) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings.username, settings.password
}

// Package patchcache persists the commit_id -> []Patch map for each
// repository to disk, in the OS-appropriate user cache directory,
// so patch history survives a restart without a full re-walk of the
// VCS log. Grounded on reposurgeon's best-effort-I/O style throughout
// surgeon/inner.go: a failed read is swallowed and treated as a miss,
// never surfaced as an error to the caller.
package patchcache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

const vendorDir = "gitfiend-core"

// Dir returns the cache directory for patch files, creating it if
// necessary.
func Dir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, vendorDir, "patches")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// fileName derives a unique, separator-free filename for repoPath by
// dropping every path separator and drive-letter colon, then
// appending ".json".
func fileName(repoPath string) string {
	var b strings.Builder
	for _, r := range repoPath {
		switch r {
		case '/', '\\', ':':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String() + ".json"
}

// Load reads the persisted commit_id -> []Patch map for repoPath. Any
// I/O or decode error is swallowed and reported as a miss (ok=false);
// the patch-loading algorithm treats that identically to "not yet
// cached".
func Load(repoPath string) (map[string][]gitfiend.Patch, bool) {
	dir, err := Dir()
	if err != nil {
		return nil, false
	}
	raw, err := os.ReadFile(filepath.Join(dir, fileName(repoPath)))
	if err != nil {
		return nil, false
	}
	var m map[string][]gitfiend.Patch
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	return m, true
}

// Save persists the commit_id -> []Patch map for repoPath. Errors are
// swallowed: a failed write just means the next process start
// rebuilds from the VCS again.
func Save(repoPath string, patches map[string][]gitfiend.Patch) {
	dir, err := Dir()
	if err != nil {
		return
	}
	raw, err := json.Marshal(patches)
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(dir, fileName(repoPath)), raw, 0o644)
}

// Clear removes the whole patch cache directory.
func Clear() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.RemoveAll(dir)
}

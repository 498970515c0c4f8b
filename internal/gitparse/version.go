package gitparse

import (
	"strconv"
	"strings"
)

// GitVersion is a parsed (major, minor, patch) triple, with missing
// trailing components defaulting to zero per spec.md §8's round-trip
// law: "2.32" parses the same as "2.32.0".
type GitVersion struct {
	Major, Minor, Patch int
}

// ParseGitVersion parses the output of `git version`, e.g.
// "git version 2.32.0", "git version 2.32", "git version 2.32.1
// (Apple Git-133)", or "git version 2.37.3.windows.1". Anything past
// the first three dot-separated numeric components - vendor suffixes,
// parenthesised build info - is ignored.
func ParseGitVersion(output string) (GitVersion, bool) {
	line := strings.TrimSpace(output)
	const prefix = "git version "
	idx := strings.Index(line, prefix)
	if idx < 0 {
		return GitVersion{}, false
	}
	rest := line[idx+len(prefix):]
	if sp := strings.IndexByte(rest, ' '); sp >= 0 {
		rest = rest[:sp]
	}

	parts := strings.Split(rest, ".")
	nums := make([]int, 3)
	for i := 0; i < 3 && i < len(parts); i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			break
		}
		nums[i] = n
	}
	return GitVersion{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}

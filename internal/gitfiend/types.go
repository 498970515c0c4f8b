// Package gitfiend holds the domain types shared across the core: the
// commit/ref/patch/hunk model the query engine builds and the store
// caches, plus the action and search bookkeeping types. Kept in one
// package, the way reposurgeon keeps its Commit/Tag/Reset/FileOp types
// together in a single file (surgeon/inner.go), rather than spread one
// type per file.
//
// Copyright by Eric S. Raymond
// SPDX-License-Identifier: BSD-2-Clause
package gitfiend

import "path/filepath"

// RefLocation distinguishes a local branch from a remote-tracking one.
type RefLocation string

const (
	Local  RefLocation = "Local"
	Remote RefLocation = "Remote"
)

// EmptyTreeID is the well-known empty-tree object id, the "old" side
// of a diff for a commit or stash with no usable parent.
const EmptyTreeID = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// RefType names the kind of ref.
type RefType string

const (
	RefBranch RefType = "Branch"
	RefTag    RefType = "Tag"
	RefStash  RefType = "Stash"
)

// PatchType mirrors the single-letter status codes the underlying VCS
// uses to describe a file-level change.
type PatchType string

const (
	PatchAdded          PatchType = "A"
	PatchCopied         PatchType = "C" // (B slot is reserved but unused by git; kept for completeness)
	PatchDeleted        PatchType = "D"
	PatchModified       PatchType = "M"
	PatchRenamed        PatchType = "R"
	PatchTypeChanged    PatchType = "T"
	PatchUnmerged       PatchType = "U"
	PatchUnknown        PatchType = "X"
	PatchBroken         PatchType = "B"
	PatchUnchangedEmpty PatchType = ""
)

// Date is a commit timestamp, stored as both the millisecond epoch and
// the author's original timezone offset so the front-end can render in
// either the viewer's or the author's local time.
type Date struct {
	Ms            int64 `json:"ms"`
	TzOffsetMins  int   `json:"tzOffsetMinutes"`
}

// Commit is a single entry in a commit log.
type Commit struct {
	ID         string   `json:"id"`
	Index      int      `json:"index"`
	Author     string   `json:"author"`
	Email      string   `json:"email"`
	Date       Date     `json:"date"`
	ParentIDs  []string `json:"parentIds"`
	IsMerge    bool     `json:"isMerge"`
	Message    string   `json:"message"`
	StashID    string   `json:"stashId,omitempty"`
	Refs       []string `json:"refs"`
	Filtered   bool     `json:"filtered"`
	NumSkipped uint32   `json:"numSkipped"`
}

// RefInfo describes a single named pointer to a commit.
type RefInfo struct {
	ID         string      `json:"id"`
	FullName   string      `json:"fullName"`
	ShortName  string      `json:"shortName"`
	Location   RefLocation `json:"location"`
	RemoteName string      `json:"remoteName,omitempty"`
	RefType    RefType     `json:"type"`
	Head       bool        `json:"head"`
	CommitID   string      `json:"commitId"`
	SiblingID  string      `json:"siblingId,omitempty"`
	Time       int64       `json:"time"`
}

// Patch is a file-level change between two commits.
type Patch struct {
	CommitID  string    `json:"commitId"`
	OldFile   string    `json:"oldFile"`
	NewFile   string    `json:"newFile"`
	PatchType PatchType `json:"patchType"`
	IsImage   bool      `json:"isImage"`
	ID        string    `json:"id"`
}

// NewPatch builds a Patch, deriving IsImage and ID the way spec.md §3
// requires (ID stable per file+type; IsImage from the new file's
// extension, falling back to the old file for deletions).
func NewPatch(commitID, oldFile, newFile string, pt PatchType) Patch {
	name := newFile
	if name == "" {
		name = oldFile
	}
	return Patch{
		CommitID:  commitID,
		OldFile:   oldFile,
		NewFile:   newFile,
		PatchType: pt,
		IsImage:   isImagePath(name),
		ID:        newFile + "-" + string(pt),
	}
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".webp": true, ".svg": true, ".ico": true,
}

func isImagePath(name string) bool {
	return imageExtensions[lowerExt(name)]
}

func lowerExt(name string) string {
	ext := filepath.Ext(name)
	out := make([]rune, 0, len(ext))
	for _, r := range ext {
		if r >= 'A' && r <= 'Z' {
			r = r - 'A' + 'a'
		}
		out = append(out, r)
	}
	return string(out)
}

// WipPatch is a working-tree change: a file with possibly distinct
// staged and unstaged status codes.
type WipPatch struct {
	OldFile       string    `json:"oldFile"`
	NewFile       string    `json:"newFile"`
	PatchType     PatchType `json:"patchType"`
	StagedType    PatchType `json:"stagedType"`
	UnStagedType  PatchType `json:"unStagedType"`
	Conflicted    bool      `json:"conflicted"`
	IsImage       bool      `json:"isImage"`
	ID            string    `json:"id"`
}

// LineRange is a contiguous run of lines in one side of a diff.
type LineRange struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// ConflictSection is one <<<<<<< / ||||||| / ======= / >>>>>>> region
// a merge conflict leaves in a working-tree file. BaseLines is only
// populated for diff3-style markers.
type ConflictSection struct {
	OursLabel   string   `json:"oursLabel"`
	OursLines   []string `json:"oursLines"`
	BaseLines   []string `json:"baseLines,omitempty"`
	TheirsLines []string `json:"theirsLines"`
	TheirsLabel string   `json:"theirsLabel"`
	StartLine   int      `json:"startLine"`
}

// ConflictedFile is a working-tree file split into its raw lines plus
// the conflict regions found within it.
type ConflictedFile struct {
	FilePath string            `json:"filePath"`
	Lines    []string          `json:"lines"`
	Sections []ConflictSection `json:"sections"`
}

// RefDiff holds the four ahead/behind counts spec.md's ref-diffs
// operation computes for one local branch paired with its remote
// sibling: how far the local branch leads/trails its remote, and how
// far it leads/trails the current HEAD.
type RefDiff struct {
	LocalID            string `json:"localId"`
	RemoteID           string `json:"remoteId"`
	LocalAheadOfRemote int    `json:"localAheadOfRemote"`
	LocalBehindRemote  int    `json:"localBehindRemote"`
	LocalAheadOfHead   int    `json:"localAheadOfHead"`
	LocalBehindHead    int    `json:"localBehindHead"`
}

// HunkLineStatus names what a single line within a hunk represents.
type HunkLineStatus string

const (
	LineAdded       HunkLineStatus = "Added"
	LineRemoved     HunkLineStatus = "Removed"
	LineUnchanged   HunkLineStatus = "Unchanged"
	LineHeaderStart HunkLineStatus = "HeaderStart"
	LineHeaderEnd   HunkLineStatus = "HeaderEnd"
	LineSkip        HunkLineStatus = "Skip"
)

// HunkLine is one line of a diff hunk, or a bracketing marker.
type HunkLine struct {
	Status    HunkLineStatus `json:"status"`
	OldNum    *int           `json:"oldNum,omitempty"`
	NewNum    *int           `json:"newNum,omitempty"`
	HunkIndex int            `json:"hunkIndex"`
	Text      string         `json:"text"`
	LineEnding string        `json:"lineEnding"`
	Index     int            `json:"index"`
}

// Hunk is a contiguous region of a diff.
type Hunk struct {
	OldRange    LineRange  `json:"oldRange"`
	NewRange    LineRange  `json:"newRange"`
	ContextLine string     `json:"contextLine"`
	Lines       []HunkLine `json:"lines"`
	Index       int        `json:"index"`
}

// GitConfig is the parsed form of a repository's config, plus the
// derived remote name -> url map callers most often want.
type GitConfig struct {
	Entries map[string]string `json:"entries"`
	Remotes map[string]string `json:"remotes"`
}

func NewGitConfig() *GitConfig {
	return &GitConfig{Entries: map[string]string{}, Remotes: map[string]string{}}
}

// ActionErrorKind is the error taxonomy from spec.md §7.
type ActionErrorKind string

const (
	ErrorCredential ActionErrorKind = "Credential"
	ErrorGit        ActionErrorKind = "Git"
	ErrorIO         ActionErrorKind = "IO"
)

// ActionError is the typed error an action or a run-and-collect call
// can terminate with.
type ActionError struct {
	Kind    ActionErrorKind `json:"kind"`
	Message string          `json:"message,omitempty"`
}

func (e *ActionError) Error() string {
	if e.Message != "" {
		return string(e.Kind) + ": " + e.Message
	}
	return string(e.Kind)
}

// ActionState is the live state of one long-running mutating operation.
type ActionState struct {
	Stdout []string     `json:"stdout"`
	Stderr []string     `json:"stderr"`
	Done   bool         `json:"done"`
	Error  *ActionError `json:"error,omitempty"`
}

// FileMatch names one matching location within a patch's content, used
// by the diff-text search.
type FileMatch struct {
	FileName string `json:"fileName"`
}

// SearchCommitResult pairs a commit id with the files in it that matched.
type SearchCommitResult struct {
	CommitID string      `json:"commitId"`
	Matches  []FileMatch `json:"matches"`
}

// DiffSearch is the bookkeeping for one text search across a commit
// window.
type DiffSearch struct {
	RepoPath   string                `json:"repoPath"`
	SearchText string                `json:"searchText"`
	SearchID   uint32                `json:"searchId"`
	Result     []SearchCommitResult  `json:"result,omitempty"`
	StartedAt  int64                 `json:"startedAt"`
	Completed  bool                  `json:"completed"`
}

// Settings is the small process-wide settings bag referenced by
// set_credentials/override_git_home in the original source's handler
// list (original_source/src/git/git_settings.rs): credential overrides
// and a git-home directory override. The runner does not read this
// type; it always runs `git` from PATH.
type Settings struct {
	GitHomeOverride string
	Username        string
	Password        string
}

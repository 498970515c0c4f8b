package query

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	difflib "github.com/ianbruene/go-difflib/difflib"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
	"gitlab.com/gitfiend/gitfiend-core/internal/runner"
)

// The convert_lines_to_hunks constants are asymmetric on purpose: a
// hunk opens 3 lines of context before its first change and closes 3
// after its last, but two change groups merge into one hunk whenever
// fewer than hunkMergeGap unchanged lines separate them.
const (
	hunkOpenContext  = 3
	hunkCloseContext = 3
	hunkMergeGap     = 6
)

// detectLineEnding picks \r\n when its count exceeds half the \n
// count, else \n, the majority rule spec.md's WIP diff uses to decide
// which ending to re-append on save.
func detectLineEnding(text string) string {
	crlf := strings.Count(text, "\r\n")
	lf := strings.Count(text, "\n")
	if crlf > lf/2 {
		return "\r\n"
	}
	return "\n"
}

// oldSideForWipPatch obtains the "old" (HEAD) side of a working-tree
// patch: empty for an added file, the blob content at HEAD otherwise.
func oldSideForWipPatch(ctx context.Context, env *runner.Env, repoPath, head string, patch gitfiend.WipPatch) (string, error) {
	if patch.PatchType == gitfiend.PatchAdded {
		return "", nil
	}
	res, actionErr := env.RunAndCollect(ctx, repoPath, "show", head+":"+patch.OldFile)
	if actionErr != nil {
		// No HEAD history for this path (e.g. newly tracked) isn't worth
		// failing the whole diff over; treat it as an empty old side.
		return "", nil
	}
	return res.Stdout, nil
}

// newSideForWipPatch reads the working-tree content for the "new"
// side, returning empty for a deleted file.
func newSideForWipPatch(repoPath string, patch gitfiend.WipPatch) (string, error) {
	if patch.PatchType == gitfiend.PatchDeleted {
		return "", nil
	}
	data, err := os.ReadFile(filepath.Join(repoPath, patch.NewFile))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadWipHunks builds the hunk list for one working-tree patch: read
// disk content, fetch the HEAD-side blob, diff line by line the way
// reposurgeon diffs changelog blobs with difflib.NewMatcherWithJunk
// (surgeon/inner.go), and group the result with convert_lines_to_hunks's
// context windowing.
func LoadWipHunks(ctx context.Context, env *runner.Env, repoPath, head string, patch gitfiend.WipPatch) ([]gitfiend.Hunk, error) {
	oldText, err := oldSideForWipPatch(ctx, env, repoPath, head, patch)
	if err != nil {
		return nil, err
	}
	newText, err := newSideForWipPatch(repoPath, patch)
	if err != nil {
		return nil, err
	}

	oldLines := difflib.SplitLines(oldText)
	newLines := difflib.SplitLines(newText)
	differ := difflib.NewMatcherWithJunk(oldLines, newLines, true, nil)
	ending := detectLineEnding(newText)
	return convertLinesToHunks(oldLines, newLines, differ.GetOpCodes(), ending), nil
}

type flatLine struct {
	status gitfiend.HunkLineStatus
	text   string
	oldNum int
	newNum int
	hasOld bool
	hasNew bool
}

func flattenOpcodes(oldLines, newLines []string, opcodes []difflib.OpCode) []flatLine {
	var flat []flatLine
	for _, op := range opcodes {
		switch op.Tag {
		case 'e':
			for i := 0; i < op.I2-op.I1; i++ {
				flat = append(flat, flatLine{
					status: gitfiend.LineUnchanged, text: oldLines[op.I1+i],
					oldNum: op.I1 + i + 1, hasOld: true,
					newNum: op.J1 + i + 1, hasNew: true,
				})
			}
		case 'd', 'r':
			for i := op.I1; i < op.I2; i++ {
				flat = append(flat, flatLine{status: gitfiend.LineRemoved, text: oldLines[i], oldNum: i + 1, hasOld: true})
			}
			fallthrough
		case 'i':
			if op.Tag == 'i' || op.Tag == 'r' {
				for j := op.J1; j < op.J2; j++ {
					flat = append(flat, flatLine{status: gitfiend.LineAdded, text: newLines[j], newNum: j + 1, hasNew: true})
				}
			}
		}
	}
	return flat
}

// convertLinesToHunks groups a flattened opcode stream into hunks:
// find the changed-line spans, merge adjacent spans separated by
// fewer than hunkMergeGap unchanged lines, then pad each merged span
// with up to hunkOpenContext/hunkCloseContext lines of surrounding
// context.
func convertLinesToHunks(oldLines, newLines []string, opcodes []difflib.OpCode, lineEnding string) []gitfiend.Hunk {
	flat := flattenOpcodes(oldLines, newLines, opcodes)

	var changedIdx []int
	for i, fl := range flat {
		if fl.status != gitfiend.LineUnchanged {
			changedIdx = append(changedIdx, i)
		}
	}
	if len(changedIdx) == 0 {
		return nil
	}

	type span struct{ start, end int }
	var spans []span
	cur := span{changedIdx[0], changedIdx[0]}
	for _, idx := range changedIdx[1:] {
		if idx-cur.end <= hunkMergeGap {
			cur.end = idx
		} else {
			spans = append(spans, cur)
			cur = span{idx, idx}
		}
	}
	spans = append(spans, cur)

	var hunks []gitfiend.Hunk
	for _, sp := range spans {
		start := sp.start - hunkOpenContext
		if start < 0 {
			start = 0
		}
		end := sp.end + hunkCloseContext + 1
		if end > len(flat) {
			end = len(flat)
		}

		hunkIndex := len(hunks)
		var lines []gitfiend.HunkLine
		var firstOld, lastOld, firstNew, lastNew int
		for k := start; k < end; k++ {
			fl := flat[k]
			line := gitfiend.HunkLine{Status: fl.status, Text: fl.text, HunkIndex: hunkIndex, Index: k - start, LineEnding: lineEnding}
			if fl.hasOld {
				n := fl.oldNum
				line.OldNum = &n
				if firstOld == 0 {
					firstOld = n
				}
				lastOld = n
			}
			if fl.hasNew {
				n := fl.newNum
				line.NewNum = &n
				if firstNew == 0 {
					firstNew = n
				}
				lastNew = n
			}
			lines = append(lines, line)
		}
		hunks = append(hunks, gitfiend.Hunk{
			OldRange: gitfiend.LineRange{Start: firstOld, Length: rangeLength(firstOld, lastOld)},
			NewRange: gitfiend.LineRange{Start: firstNew, Length: rangeLength(firstNew, lastNew)},
			Lines:    lines,
			Index:    hunkIndex,
		})
	}
	return hunks
}

func rangeLength(first, last int) int {
	if first == 0 {
		return 0
	}
	return last - first + 1
}

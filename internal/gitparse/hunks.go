package gitparse

import (
	"strconv"
	"strings"
	"unicode"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
	"gitlab.com/gitfiend/gitfiend-core/internal/parse"
)

// hunkHeader is the parsed form of an "@@ -a,b +c,d @@ context" line.
type hunkHeader struct {
	OldStart, OldLen int
	NewStart, NewLen int
	Context          string
}

func hunkHeaderParser() parse.Parser[hunkHeader] {
	number := parse.Map(parse.TakeWhile(unicode.IsDigit), func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	})
	rangePart := func(sign rune) parse.Parser[[2]int] {
		return func(in *parse.Input) ([2]int, bool) {
			start := in.Position()
			if _, ok := parse.Character(sign)(in); !ok {
				in.SetPosition(start)
				return [2]int{}, false
			}
			a, ok := number(in)
			if !ok {
				in.SetPosition(start)
				return [2]int{}, false
			}
			length := 1
			if _, ok := parse.Character(',')(in); ok {
				n, ok2 := number(in)
				if !ok2 {
					in.SetPosition(start)
					return [2]int{}, false
				}
				length = n
			}
			return [2]int{a, length}, true
		}
	}

	return func(in *parse.Input) (hunkHeader, bool) {
		start := in.Position()
		if _, ok := parse.Word("@@ ")(in); !ok {
			in.SetPosition(start)
			return hunkHeader{}, false
		}
		oldR, ok := rangePart('-')(in)
		if !ok {
			in.SetPosition(start)
			return hunkHeader{}, false
		}
		if _, ok := parse.Character(' ')(in); !ok {
			in.SetPosition(start)
			return hunkHeader{}, false
		}
		newR, ok := rangePart('+')(in)
		if !ok {
			in.SetPosition(start)
			return hunkHeader{}, false
		}
		if _, ok := parse.Word(" @@")(in); !ok {
			in.SetPosition(start)
			return hunkHeader{}, false
		}
		context, _ := parse.OptionalTakeWhile(func(r rune) bool { return true })(in)
		return hunkHeader{
			OldStart: oldR[0], OldLen: oldR[1],
			NewStart: newR[0], NewLen: newR[1],
			Context: strings.TrimPrefix(context, " "),
		}, true
	}
}

// ParseHunks parses the body of a single-file diff (the part after the
// "diff --git"/"---"/"+++" preamble, or the whole thing - leading lines
// that are not hunk headers or body lines are skipped). A "Binary"
// marker line short-circuits to zero hunks, matching spec.md §4.B.
func ParseHunks(diffText string) ([]gitfiend.Hunk, bool) {
	lines := strings.Split(diffText, "\n")
	for _, line := range lines {
		if strings.Contains(line, "Binary files") || strings.HasPrefix(line, "Binary") {
			return nil, true
		}
	}

	var hunks []gitfiend.Hunk
	var cur *gitfiend.Hunk
	oldNum, newNum := 0, 0
	hunkIndex := -1
	lineIndex := 0

	flush := func() {
		if cur != nil {
			hunks = append(hunks, *cur)
			cur = nil
		}
	}

	for _, raw := range lines {
		if header, err := parse.ParseAll(hunkHeaderParser(), raw); err == nil {
			flush()
			hunkIndex++
			oldNum = header.OldStart
			newNum = header.NewStart
			cur = &gitfiend.Hunk{
				OldRange:    gitfiend.LineRange{Start: header.OldStart, Length: header.OldLen},
				NewRange:    gitfiend.LineRange{Start: header.NewStart, Length: header.NewLen},
				ContextLine: header.Context,
				Index:       hunkIndex,
			}
			continue
		}
		if cur == nil {
			continue
		}
		if raw == "" {
			continue
		}
		status, text := classifyHunkBodyLine(raw)
		line := gitfiend.HunkLine{
			Status: status, HunkIndex: hunkIndex, Text: text,
			LineEnding: "\n", Index: lineIndex,
		}
		switch status {
		case gitfiend.LineAdded:
			n := newNum
			line.NewNum = &n
			newNum++
		case gitfiend.LineRemoved:
			n := oldNum
			line.OldNum = &n
			oldNum++
		case gitfiend.LineUnchanged:
			o, n := oldNum, newNum
			line.OldNum = &o
			line.NewNum = &n
			oldNum++
			newNum++
		case gitfiend.LineSkip:
			// "\ No newline at end of file" - does not advance counters.
		}
		cur.Lines = append(cur.Lines, line)
		lineIndex++
	}
	flush()
	return hunks, false
}

func classifyHunkBodyLine(line string) (gitfiend.HunkLineStatus, string) {
	if line == "" {
		return gitfiend.LineUnchanged, ""
	}
	switch line[0] {
	case '+':
		return gitfiend.LineAdded, line[1:]
	case '-':
		return gitfiend.LineRemoved, line[1:]
	case '\\':
		return gitfiend.LineSkip, line
	default:
		if strings.HasPrefix(line, " ") {
			return gitfiend.LineUnchanged, line[1:]
		}
		return gitfiend.LineUnchanged, line
	}
}

// FlattenHunks concatenates a file's hunks into a single bracketed line
// stream: each hunk's lines are preceded by a HeaderStart and followed
// by a HeaderEnd marker, with a final HeaderStart(-1) sentinel
// terminating the whole stream, per spec.md §4.G "Hunk loading".
func FlattenHunks(hunks []gitfiend.Hunk) []gitfiend.HunkLine {
	var out []gitfiend.HunkLine
	idx := 0
	for _, h := range hunks {
		out = append(out, gitfiend.HunkLine{Status: gitfiend.LineHeaderStart, HunkIndex: h.Index, Index: idx})
		idx++
		for _, l := range h.Lines {
			l.Index = idx
			out = append(out, l)
			idx++
		}
		out = append(out, gitfiend.HunkLine{Status: gitfiend.LineHeaderEnd, HunkIndex: h.Index, Index: idx})
		idx++
	}
	out = append(out, gitfiend.HunkLine{Status: gitfiend.LineHeaderStart, HunkIndex: -1, Index: idx})
	return out
}

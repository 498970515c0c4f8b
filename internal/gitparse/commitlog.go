// Package gitparse composes internal/parse combinators into the
// domain-specific parsers spec.md §4.B names: commit log, ref
// decoration, diff hunks, porcelain status, config files,
// packed-refs, and the version string. None of these call back into
// the process runner - they are pure functions over captured VCS
// output, the same separation reposurgeon keeps between its stream
// parser (surgeon/inner.go) and its process-spawning code
// (surgeon/inner.go's captureFromProcess).
//
// Copyright by Eric S. Raymond
// SPDX-License-Identifier: BSD-2-Clause
package gitparse

import (
	"strconv"
	"strings"
	"unicode"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
	"gitlab.com/gitfiend/gitfiend-core/internal/parse"
)

// MessageSentinel is the GUID used to terminate a commit message in the
// fixed pretty-format, chosen because it is vanishingly unlikely to
// appear in real commit text - it lets messages span multiple lines
// without ambiguity.
const MessageSentinel = "4a41380f-a4e8-4251-9ca2-bf55186ed32a"

// PrettyFormat is the format string passed to `git log --date=raw
// --pretty=format:` to produce rows this parser understands:
// author;email;epoch offset;id; space-separated parents;body then the
// sentinel, then the decorate list wrapped in parentheses ("()" for a
// commit with no refs), one record per line (bodies may still contain
// embedded newlines; only the sentinel terminates a record). %ad with
// --date=raw emits "<seconds> <tz>", matching commitRowParser's date
// field exactly; %B (not %s) carries the full multiline message the
// sentinel is there to bound. %D is used rather than %d because %d
// puts a space before the opening parenthesis.
const PrettyFormat = `%an;%ae;%ad;%H;%P;%B` + MessageSentinel + `(%D)`

func notSemicolon(r rune) bool { return r != ';' }

func notSpace(r rune) bool { return !unicode.IsSpace(r) && r != ';' }

// ParseCommitRow parses a single commit record of the form:
//
//	author;email;seconds offset;id;parent1 parent2 ...;messageSENTINEL(decorate)
//
// returning the commit with Refs set to the ids of the refs decorated
// on this row, together with those refs as parsed by ParseRefDecoration.
func ParseCommitRow(text string) (gitfiend.Commit, []DecoratedRef, error) {
	p := commitRowParser()
	val, err := parse.ParseAll(p, text)
	if err != nil {
		return gitfiend.Commit{}, nil, err
	}
	return val.commit, val.refs, nil
}

type commitRowResult struct {
	commit gitfiend.Commit
	refs   []DecoratedRef
}

func commitRowParser() parse.Parser[commitRowResult] {
	semicolon := parse.Character(';')
	field := parse.TakeWhile(notSemicolon)

	return func(in *parse.Input) (commitRowResult, bool) {
		start := in.Position()
		author, ok := field(in)
		if !ok || !advance(in, semicolon) {
			in.SetPosition(start)
			return commitRowResult{}, false
		}
		email, ok := field(in)
		if !ok || !advance(in, semicolon) {
			in.SetPosition(start)
			return commitRowResult{}, false
		}
		seconds, ok := parse.TakeWhile(unicode.IsDigit)(in)
		if !ok {
			in.SetPosition(start)
			return commitRowResult{}, false
		}
		if _, ok := parse.Character(' ')(in); !ok {
			in.SetPosition(start)
			return commitRowResult{}, false
		}
		offsetStr, ok := parse.TakeWhile(func(r rune) bool {
			return r == '+' || r == '-' || unicode.IsDigit(r)
		})(in)
		if !ok || !advance(in, semicolon) {
			in.SetPosition(start)
			return commitRowResult{}, false
		}
		id, ok := field(in)
		if !ok || !advance(in, semicolon) {
			in.SetPosition(start)
			return commitRowResult{}, false
		}
		parentsField, _ := parse.OptionalTakeWhile(notSemicolon)(in)
		if !advance(in, semicolon) {
			in.SetPosition(start)
			return commitRowResult{}, false
		}
		message, ok := parse.UntilParserKeepHappy(parse.Word(MessageSentinel))(in)
		if !ok {
			in.SetPosition(start)
			return commitRowResult{}, false
		}
		// Consume the sentinel itself if present (it may be absent at
		// true end-of-stream in a speculative/partial parse).
		parse.Optional(parse.Word(MessageSentinel))(in)

		var refs []DecoratedRef
		if decorate, ok := parse.Optional(decorateBlock())(in); ok && decorate != "" {
			refs = ParseRefDecoration(decorate, id)
		}

		secondsNum, _ := strconv.ParseInt(seconds, 10, 64)
		tzMinutes := parseTZOffsetMinutes(offsetStr)

		parentIDs := []string{}
		for _, p := range strings.Fields(parentsField) {
			parentIDs = append(parentIDs, p)
		}

		refIDs := make([]string, 0, len(refs))
		for _, r := range refs {
			refIDs = append(refIDs, r.Ref.ID)
		}

		commit := gitfiend.Commit{
			ID:        id,
			Author:    author,
			Email:     email,
			Date:      gitfiend.Date{Ms: secondsNum * 1000, TzOffsetMins: tzMinutes},
			ParentIDs: parentIDs,
			IsMerge:   len(parentIDs) >= 2,
			Message:   message,
			Refs:      refIDs,
		}
		return commitRowResult{commit: commit, refs: refs}, true
	}
}

func advance[T any](in *parse.Input, p parse.Parser[T]) bool {
	_, ok := p(in)
	return ok
}

// decorateBlock matches a parenthesized "(...)" decorate list, returning
// its inner text without the parens.
func decorateBlock() parse.Parser[string] {
	return func(in *parse.Input) (string, bool) {
		start := in.Position()
		if _, ok := parse.Character('(')(in); !ok {
			in.SetPosition(start)
			return "", false
		}
		inner, ok := parse.UntilParser(parse.Character(')'))(in)
		if !ok {
			in.SetPosition(start)
			return "", false
		}
		if _, ok := parse.Character(')')(in); !ok {
			in.SetPosition(start)
			return "", false
		}
		return inner, true
	}
}

func parseTZOffsetMinutes(offset string) int {
	if len(offset) < 5 {
		return 0
	}
	sign := 1
	rest := offset
	if offset[0] == '+' || offset[0] == '-' {
		if offset[0] == '-' {
			sign = -1
		}
		rest = offset[1:]
	}
	if len(rest) < 4 {
		return 0
	}
	hh, err1 := strconv.Atoi(rest[0:2])
	mm, err2 := strconv.Atoi(rest[2:4])
	if err1 != nil || err2 != nil {
		return 0
	}
	return sign * (hh*60 + mm)
}

// ParseCommitLog splits a full `git log` stream into individual
// records (each terminated by the sentinel and an optional decorate
// block followed by a newline) and parses each one.
func ParseCommitLog(output string) ([]gitfiend.Commit, map[string]gitfiend.RefInfo, error) {
	var commits []gitfiend.Commit
	refsByID := map[string]gitfiend.RefInfo{}

	records := splitCommitRecords(output)
	for index, record := range records {
		if strings.TrimSpace(record) == "" {
			continue
		}
		commit, refs, err := ParseCommitRow(record)
		if err != nil {
			return nil, nil, err
		}
		commit.Index = index
		commits = append(commits, commit)
		for _, r := range refs {
			refsByID[r.Ref.ID] = r.Ref
		}
	}
	return commits, refsByID, nil
}

// splitCommitRecords breaks a multi-commit log stream apart on the
// sentinel (plus whatever decorate block and newline follows it), since
// naive newline-splitting would break on multiline commit messages.
func splitCommitRecords(output string) []string {
	marker := MessageSentinel
	var records []string
	rest := output
	for {
		idx := strings.Index(rest, marker)
		if idx < 0 {
			if strings.TrimSpace(rest) != "" {
				records = append(records, rest)
			}
			break
		}
		end := idx + len(marker)
		// consume an optional "(...)" decorate block right after the marker
		if end < len(rest) && rest[end] == '(' {
			if close := strings.IndexByte(rest[end:], ')'); close >= 0 {
				end += close + 1
			}
		}
		records = append(records, rest[:end])
		// skip the newline that separates this record from the next, if any
		if end < len(rest) && rest[end] == '\n' {
			end++
		}
		rest = rest[end:]
	}
	return records
}

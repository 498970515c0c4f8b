package query

import (
	"strings"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

// TextMatch is one commit's match record: which fields matched, plus
// the matching ref ids and patch file names.
type TextMatch struct {
	CommitID    string
	MatchID     bool
	MatchAuthor bool
	MatchEmail  bool
	MatchMsg    bool
	RefIDs      []string
	Files       []string
}

// TextSearch scans the loaded commit window for a lowercase substring
// match against a commit's id, author, email, or message, plus any
// refs or patch file names naming the same substring, per spec.md's
// text-search operation. Results stop once numResults commits have
// matched.
func TextSearch(commits []gitfiend.Commit, refs []gitfiend.RefInfo, patchesOf func(string) []gitfiend.Patch, query string, numResults int) []TextMatch {
	q := strings.ToLower(query)
	if q == "" {
		return nil
	}

	refsByID := make(map[string][]gitfiend.RefInfo)
	for _, r := range refs {
		refsByID[r.CommitID] = append(refsByID[r.CommitID], r)
	}

	var out []TextMatch
	for _, c := range commits {
		if len(out) >= numResults {
			break
		}
		m := TextMatch{
			CommitID:    c.ID,
			MatchID:     strings.Contains(strings.ToLower(c.ID), q),
			MatchAuthor: strings.Contains(strings.ToLower(c.Author), q),
			MatchEmail:  strings.Contains(strings.ToLower(c.Email), q),
			MatchMsg:    strings.Contains(strings.ToLower(c.Message), q),
		}
		for _, r := range refsByID[c.ID] {
			if strings.Contains(strings.ToLower(r.ShortName), q) {
				m.RefIDs = append(m.RefIDs, r.ID)
			}
		}
		for _, p := range patchesOf(c.ID) {
			if strings.Contains(strings.ToLower(p.NewFile), q) || strings.Contains(strings.ToLower(p.OldFile), q) {
				name := p.NewFile
				if name == "" {
					name = p.OldFile
				}
				m.Files = append(m.Files, name)
			}
		}
		if m.MatchID || m.MatchAuthor || m.MatchEmail || m.MatchMsg || len(m.RefIDs) > 0 || len(m.Files) > 0 {
			out = append(out, m)
		}
	}
	return out
}

package query

import (
	"os"
	"strings"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

const (
	conflictOursMarker   = "<<<<<<<"
	conflictBaseMarker   = "|||||||"
	conflictSepMarker    = "======="
	conflictTheirsMarker = ">>>>>>>"
)

// LoadConflictedFile reads path off disk and splits it into its raw
// lines plus conflict regions, the query-engine operation
// original_source's conflicts/api.rs and conflicts/conflicted_file.rs
// expose as load_conflicted_file.
func LoadConflictedFile(path string) (gitfiend.ConflictedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gitfiend.ConflictedFile{}, err
	}
	return parseConflictedFile(path, strings.Split(string(data), "\n")), nil
}

// parseConflictedFile is the pure parser underneath LoadConflictedFile,
// separated out so it can be unit tested without disk IO, the same
// split internal/gitparse keeps between parsing and the process runner.
func parseConflictedFile(path string, lines []string) gitfiend.ConflictedFile {
	file := gitfiend.ConflictedFile{FilePath: path, Lines: lines}

	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(lines[i], conflictOursMarker) {
			i++
			continue
		}
		section := gitfiend.ConflictSection{
			OursLabel: strings.TrimSpace(strings.TrimPrefix(lines[i], conflictOursMarker)),
			StartLine: i,
		}
		i++
		for i < len(lines) && !strings.HasPrefix(lines[i], conflictBaseMarker) && !strings.HasPrefix(lines[i], conflictSepMarker) {
			section.OursLines = append(section.OursLines, lines[i])
			i++
		}
		if i < len(lines) && strings.HasPrefix(lines[i], conflictBaseMarker) {
			i++
			for i < len(lines) && !strings.HasPrefix(lines[i], conflictSepMarker) {
				section.BaseLines = append(section.BaseLines, lines[i])
				i++
			}
		}
		if i < len(lines) && strings.HasPrefix(lines[i], conflictSepMarker) {
			i++
		}
		for i < len(lines) && !strings.HasPrefix(lines[i], conflictTheirsMarker) {
			section.TheirsLines = append(section.TheirsLines, lines[i])
			i++
		}
		if i < len(lines) {
			section.TheirsLabel = strings.TrimSpace(strings.TrimPrefix(lines[i], conflictTheirsMarker))
			i++
		}
		file.Sections = append(file.Sections, section)
	}
	return file
}

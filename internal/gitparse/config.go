package gitparse

import (
	"strings"

	"gitlab.com/gitfiend/gitfiend-core/internal/gitfiend"
)

// ParseGitConfig reads a repository's config file: "[section]" and
// "[section \"subsection\"]" headings followed by indented
// "key = value" rows. Comments ("#", ";") and unrecognized lines are
// ignored - they carry no information the query engine needs, unlike
// reposurgeon's config-preserving passthrough objects, since this
// layer only ever reads config, never rewrites it. The result is a
// flat "section[.sub].key = value" map, plus the derived remote name
// -> url map.
func ParseGitConfig(text string) *gitfiend.GitConfig {
	cfg := gitfiend.NewGitConfig()
	section := ""
	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = parseSectionHeading(line)
			continue
		}
		key, value, ok := parseConfigKeyValue(line)
		if !ok || section == "" {
			continue
		}
		fullKey := section + "." + key
		cfg.Entries[fullKey] = value
		if strings.HasPrefix(section, "remote.") && key == "url" {
			remoteName := strings.TrimPrefix(section, "remote.")
			cfg.Remotes[remoteName] = value
		}
	}
	return cfg
}

func parseSectionHeading(line string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
	inner = strings.TrimSpace(inner)
	spaceIdx := strings.IndexByte(inner, ' ')
	if spaceIdx < 0 {
		return inner
	}
	name := inner[:spaceIdx]
	sub := strings.TrimSpace(inner[spaceIdx+1:])
	sub = strings.Trim(sub, `"`)
	return name + "." + sub
}

func parseConfigKeyValue(line string) (string, string, bool) {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:eq])
	value := strings.TrimSpace(line[eq+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

// ParseConfigList parses the fallback `git config --list` output, one
// "section.key=value" per line, used when the config file cannot be
// read directly.
func ParseConfigList(text string) *gitfiend.GitConfig {
	cfg := gitfiend.NewGitConfig()
	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		fullKey := line[:eq]
		value := line[eq+1:]
		cfg.Entries[fullKey] = value
		if strings.HasPrefix(fullKey, "remote.") && strings.HasSuffix(fullKey, ".url") {
			remoteName := strings.TrimSuffix(strings.TrimPrefix(fullKey, "remote."), ".url")
			cfg.Remotes[remoteName] = value
		}
	}
	return cfg
}

// RenderGitConfig writes a GitConfig back out in file form, used only
// to test the parser's parse -> render -> parse idempotence law
// (spec.md §8); it is not needed by any runtime consumer, since this
// layer never rewrites the repository's config.
func RenderGitConfig(cfg *gitfiend.GitConfig) string {
	sections := map[string]map[string]string{}
	var order []string
	for fullKey, value := range cfg.Entries {
		dot := strings.LastIndexByte(fullKey, '.')
		if dot < 0 {
			continue
		}
		section := fullKey[:dot]
		key := fullKey[dot+1:]
		if _, ok := sections[section]; !ok {
			sections[section] = map[string]string{}
			order = append(order, section)
		}
		sections[section][key] = value
	}
	var b strings.Builder
	for _, section := range order {
		b.WriteString("[" + renderSectionHeading(section) + "]\n")
		for key, value := range sections[section] {
			b.WriteString("\t" + key + " = " + value + "\n")
		}
	}
	return b.String()
}

func renderSectionHeading(section string) string {
	parts := strings.SplitN(section, ".", 2)
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + ` "` + parts[1] + `"`
}

package gitparse

import "testing"

const sampleConfig = `[core]
	repositoryformatversion = 0
	filemode = true
[remote "origin"]
	url = git@github.com:example/repo.git
	fetch = +refs/heads/*:refs/remotes/origin/*
[branch "main"]
	remote = origin
	merge = refs/heads/main
`

func TestParseGitConfigSections(t *testing.T) {
	cfg := ParseGitConfig(sampleConfig)
	if cfg.Entries["core.filemode"] != "true" {
		t.Fatalf("expected core.filemode=true, got %q", cfg.Entries["core.filemode"])
	}
	if cfg.Entries["remote.origin.url"] != "git@github.com:example/repo.git" {
		t.Fatalf("unexpected remote.origin.url %q", cfg.Entries["remote.origin.url"])
	}
	if cfg.Entries["branch.main.remote"] != "origin" {
		t.Fatalf("unexpected branch.main.remote %q", cfg.Entries["branch.main.remote"])
	}
	if cfg.Remotes["origin"] != "git@github.com:example/repo.git" {
		t.Fatalf("expected derived remotes map to contain origin, got %+v", cfg.Remotes)
	}
}

func TestParseGitConfigIgnoresComments(t *testing.T) {
	cfg := ParseGitConfig("[core]\n\t# a comment\n\t; also a comment\n\tbare = 1\n")
	if cfg.Entries["core.bare"] != "1" {
		t.Fatalf("expected core.bare=1, got %+v", cfg.Entries)
	}
	if len(cfg.Entries) != 1 {
		t.Fatalf("expected comments to be ignored, got %+v", cfg.Entries)
	}
}

func TestParseGitConfigIdempotentUnderRender(t *testing.T) {
	cfg := ParseGitConfig(sampleConfig)
	rendered := RenderGitConfig(cfg)
	reparsed := ParseGitConfig(rendered)
	for k, v := range cfg.Entries {
		if reparsed.Entries[k] != v {
			t.Fatalf("parse -> render -> parse lost %q: want %q got %q", k, v, reparsed.Entries[k])
		}
	}
}

func TestParseConfigListFallback(t *testing.T) {
	cfg := ParseConfigList("core.bare=false\nremote.origin.url=https://example.com/repo.git\n")
	if cfg.Entries["core.bare"] != "false" {
		t.Fatalf("unexpected core.bare %q", cfg.Entries["core.bare"])
	}
	if cfg.Remotes["origin"] != "https://example.com/repo.git" {
		t.Fatalf("expected derived remote, got %+v", cfg.Remotes)
	}
}

package config

import "time"

const (
	defaultRepoRoot     = "."
	defaultDocsDir      = "docs"
	defaultSiteDir      = "site"
	defaultVersionsFile = "versions/toolchain_versions.json"
	defaultSummaryFile  = "SUMMARY.md"
	defaultDebounce     = 300 * time.Millisecond
	defaultSubject      = "sitegen.runs"
)

// defaultAliases are the legacy short paths published since before the
// docs moved under /docs/. An explicit empty list in the config disables them.
func defaultAliases() []Alias {
	return []Alias{
		{From: "/install", To: "/docs/getting-started/install"},
		{From: "/docs/cli", To: "/docs/toolchain/cli"},
		{From: "/docs/worlds/os", To: "/docs/worlds/os-worlds"},
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.RepoRoot == "" {
		cfg.RepoRoot = defaultRepoRoot
	}
	if cfg.DocsDir == "" {
		cfg.DocsDir = defaultDocsDir
	}
	if cfg.SiteDir == "" {
		cfg.SiteDir = defaultSiteDir
	}
	if cfg.VersionsFile == "" {
		cfg.VersionsFile = defaultVersionsFile
	}
	if cfg.SummaryFile == "" {
		cfg.SummaryFile = defaultSummaryFile
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = Duration(defaultDebounce)
	}
	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = defaultSubject
	}
	if cfg.Redirects.Aliases == nil {
		cfg.Redirects.Aliases = defaultAliases()
	}
}

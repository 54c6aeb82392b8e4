package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sitegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, ".", cfg.RepoRoot)
	require.Equal(t, "docs", cfg.DocsDir)
	require.Equal(t, "site", cfg.SiteDir)
	require.Equal(t, "versions/toolchain_versions.json", cfg.VersionsFile)
	require.Equal(t, "SUMMARY.md", cfg.SummaryFile)
	require.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce.Std())
	require.Zero(t, cfg.Watch.Interval)
	require.Empty(t, cfg.HistoryPath())
	require.Equal(t, defaultAliases(), cfg.Redirects.Aliases)
}

func TestLoad_EmptyAliasListDisablesLegacyAliases(t *testing.T) {
	cfg, err := Load(writeConfig(t, "redirects:\n  aliases: []\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Redirects.Aliases)
	require.Empty(t, cfg.Redirects.Aliases)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("SITEGEN_TEST_SITE", "website")
	path := writeConfig(t, `
repo_root: /repo
site_dir: ${SITEGEN_TEST_SITE}
watch:
  debounce: 1s
  interval: 5m
history:
  path: .sitegen/history.db
redirects:
  aliases:
    - from: /docs/old
      to: /docs/new
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "website", cfg.SiteDir)
	require.Equal(t, filepath.Join("/repo", "website"), cfg.SitePath())
	require.Equal(t, filepath.Join("/repo", "docs"), cfg.DocsPath())
	require.Equal(t, filepath.Join("/repo", ".sitegen/history.db"), cfg.HistoryPath())
	require.Equal(t, time.Second, cfg.Watch.Debounce.Std())
	require.Equal(t, 5*time.Minute, cfg.Watch.Interval.Std())
	require.Equal(t, []Alias{{From: "/docs/old", To: "/docs/new"}}, cfg.Redirects.Aliases)
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("SITEGEN_TEST_DOCS=fromenvfile\nSITEGEN_TEST_SITE=fromenvfile\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sitegen.yaml"),
		[]byte("docs_dir: ${SITEGEN_TEST_DOCS}\nsite_dir: ${SITEGEN_TEST_SITE}\n"), 0o600))
	t.Setenv("SITEGEN_TEST_SITE", "fromprocess")
	t.Setenv("SITEGEN_TEST_DOCS", "")
	require.NoError(t, os.Unsetenv("SITEGEN_TEST_DOCS"))

	cfg, err := Load(filepath.Join(dir, "sitegen.yaml"))
	require.NoError(t, err)
	require.Equal(t, "fromenvfile", cfg.DocsDir)
	require.Equal(t, "fromprocess", cfg.SiteDir)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown field", "docs_directory: docs\n"},
		{"bad duration", "watch:\n  debounce: soon\n"},
		{"negative interval", "watch:\n  interval: -1s\n"},
		{"nested summary file", "summary_file: sub/SUMMARY.md\n"},
		{"parent dir summary file", "summary_file: \"..\"\n"},
		{"current dir summary file", "summary_file: \".\"\n"},
		{"relative alias", "redirects:\n  aliases:\n    - from: docs/a\n      to: /docs/b\n"},
		{"alias outside docs", "redirects:\n  aliases:\n    - from: /a\n      to: /blog/b\n"},
		{"self alias", "redirects:\n  aliases:\n    - from: /docs/a\n      to: /docs/a\n"},
		{"duplicate alias", "redirects:\n  aliases:\n    - from: /a\n      to: /docs/a\n    - from: /a\n      to: /docs/b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			require.True(t, errors.HasCategory(err, errors.CategoryConfig), "got %v", err)
		})
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitegen.yaml")
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
	require.NoError(t, Init(path, true))

	t.Setenv("SITEGEN_NATS_URL", "nats://127.0.0.1:4222")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "nats://127.0.0.1:4222", cfg.Notify.NATSURL)
	require.Equal(t, 10*time.Minute, cfg.Watch.Interval.Std())
	require.Len(t, cfg.Redirects.Aliases, 3)
	require.Equal(t, Alias{From: "/docs/cli", To: "/docs/toolchain/cli"}, cfg.Redirects.Aliases[1])
}

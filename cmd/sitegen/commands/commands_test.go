package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

// fixture creates a repository layout with a config file and returns the
// config path.
func fixture(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "docs/latest/SUMMARY.md", "# Guide\n\n- [Intro](intro.md)\n")
	writeFile(t, root, "docs/latest/intro.md", "# Intro\n")
	writeFile(t, root, "versions/toolchain_versions.json", `{"versions":[]}`)
	cfgPath := filepath.Join(root, "sitegen.yaml")
	writeFile(t, root, "sitegen.yaml", "repo_root: "+root+"\n")
	return root, cfgPath
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("sitegen"), kong.Vars{"version": "test"}, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx.Run(&Global{Context: context.Background()}, &cli)
}

func TestGenerate_ThenCheck(t *testing.T) {
	root, cfg := fixture(t)
	metricsFile := filepath.Join(root, "metrics.prom")

	require.NoError(t, run(t, "-c", cfg, "--metrics-file", metricsFile, "generate"))
	require.FileExists(t, filepath.Join(root, "site", "sidebars.generated.ts"))
	require.FileExists(t, filepath.Join(root, "site", "docs", "intro.md"))

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "sitegen_run_outcomes_total")

	require.NoError(t, run(t, "-c", cfg, "generate", "--check"))

	writeFile(t, root, "docs/latest/intro.md", "# Intro changed\n")
	err = run(t, "-c", cfg, "generate", "--check")
	require.Error(t, err)
	require.Equal(t, errors.CategoryCheck, errors.GetCategory(err))
}

func TestGenerate_RecordsHistory(t *testing.T) {
	root, cfg := fixture(t)
	writeFile(t, root, "sitegen.yaml", "repo_root: "+root+"\nhistory:\n  path: .sitegen/history.db\n")

	require.NoError(t, run(t, "-c", cfg, "generate"))
	require.FileExists(t, filepath.Join(root, ".sitegen", "history.db"))
	require.NoError(t, run(t, "-c", cfg, "history", "-n", "5"))
}

func TestHistory_Disabled(t *testing.T) {
	_, cfg := fixture(t)
	err := run(t, "-c", cfg, "history")
	require.Equal(t, errors.CategoryConfig, errors.GetCategory(err))
}

func TestSidebar(t *testing.T) {
	root, cfg := fixture(t)
	require.NoError(t, run(t, "-c", cfg, "sidebar", "-o", "yaml"))
	require.NoError(t, run(t, "-c", cfg, "sidebar", "--file", filepath.Join(root, "docs/latest/SUMMARY.md"), "-q", ".[0].label"))

	writeFile(t, root, "bad.md", "just text\n")
	err := run(t, "-c", cfg, "sidebar", "--file", filepath.Join(root, "bad.md"))
	require.Equal(t, errors.CategorySummary, errors.GetCategory(err))
}

func TestLint(t *testing.T) {
	root, cfg := fixture(t)
	require.NoError(t, run(t, "-c", cfg, "lint"))

	writeFile(t, root, "docs/latest/SUMMARY.md", "# Guide\n\n- [Intro](intro.md)\n- [Gone](gone.md)\n")
	err := run(t, "-c", cfg, "lint", "latest", "-f", "json")
	require.Equal(t, errors.CategoryLint, errors.GetCategory(err))

	err = run(t, "-c", cfg, "lint", "9.9.9")
	require.Equal(t, errors.CategoryConfig, errors.GetCategory(err))
}

func TestStatus_NotARepository(t *testing.T) {
	_, cfg := fixture(t)
	err := run(t, "-c", cfg, "status")
	require.Equal(t, errors.CategoryGit, errors.GetCategory(err))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "sitegen.yaml")
	require.NoError(t, run(t, "-c", cfg, "init"))
	require.FileExists(t, cfg)
	require.Error(t, run(t, "-c", cfg, "init"))
	require.NoError(t, run(t, "-c", cfg, "init", "--force"))
}

package sitegen

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

const latestSummary = `# Getting Started
- [Install](getting-started/install.md)
- Concepts
  - [Worlds](./concepts/worlds.md#top)

# Reference
- [CLI](toolchain/cli.mdx)
`

const versionSummary = `- [Intro](intro.md)
`

// fixture is a repository layout with docs/latest, versioned trees and a
// versions file.
type fixture struct {
	t    *testing.T
	root string
	cfg  *config.Config
}

func newFixture(t *testing.T, versions ...string) *fixture {
	t.Helper()
	f := &fixture{t: t, root: t.TempDir()}
	f.cfg = config.Default()
	f.cfg.RepoRoot = f.root

	f.write("docs/latest/SUMMARY.md", latestSummary)
	f.write("docs/latest/getting-started/install.md", "# Install\n")
	f.write("docs/latest/concepts/worlds.md", "# Worlds\n")
	f.write("docs/latest/toolchain/cli.mdx", "# CLI\n")
	f.write("docs/latest/_generated/index.json", "{}\n")
	for _, v := range versions {
		f.write("docs/v"+v+"/SUMMARY.md", versionSummary)
		f.write("docs/v"+v+"/intro.md", "# Intro "+v+"\n")
	}
	f.setVersions(versions...)
	return f
}

func (f *fixture) path(rel string) string {
	return filepath.Join(f.root, filepath.FromSlash(rel))
}

func (f *fixture) write(rel, content string) {
	f.t.Helper()
	p := f.path(rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(f.t, os.WriteFile(p, []byte(content), 0o644))
}

func (f *fixture) read(rel string) string {
	f.t.Helper()
	data, err := os.ReadFile(f.path(rel))
	require.NoError(f.t, err)
	return string(data)
}

func (f *fixture) setVersions(versions ...string) {
	entries := make([]string, 0, len(versions))
	for _, v := range versions {
		entries = append(entries, `{"toolchain_version":"`+v+`"}`)
	}
	f.write("versions/toolchain_versions.json", `{"versions":[`+strings.Join(entries, ",")+`]}`)
}

func (f *fixture) generator(opts ...Option) *Generator {
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(f.cfg, opts...)
}

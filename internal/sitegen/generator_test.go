package sitegen

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/summary"
)

const wantSidebarsTS = `/**
 * THIS FILE IS GENERATED by sitegen
 * DO NOT EDIT BY HAND.
 */
import type {SidebarsConfig} from '@docusaurus/plugin-content-docs';

const sidebars: SidebarsConfig = {
  docs: [
  {
    "type": "category",
    "label": "Getting Started",
    "collapsed": false,
    "items": [
      {
        "type": "doc",
        "id": "getting-started/install",
        "label": "Install"
      },
      {
        "type": "category",
        "label": "Concepts",
        "collapsed": false,
        "items": [
          {
            "type": "doc",
            "id": "concepts/worlds",
            "label": "Worlds"
          }
        ]
      }
    ]
  },
  {
    "type": "category",
    "label": "Reference",
    "collapsed": false,
    "items": [
      {
        "type": "doc",
        "id": "toolchain/cli",
        "label": "CLI"
      }
    ]
  }
],
};

export default sidebars;
`

const wantVersionSidebar = `{
  "docs": [
    {
      "id": "intro",
      "label": "Intro",
      "type": "doc"
    }
  ]
}
`

func TestGenerate_WritesAllOutputs(t *testing.T) {
	f := newFixture(t, "0.1.9", "0.1.10")
	report, err := f.generator().Generate(context.Background())
	require.NoError(t, err)

	require.Equal(t, OutcomeSuccess, report.Outcome)
	require.Equal(t, []string{"0.1.10", "0.1.9"}, report.Versions)
	require.NotEmpty(t, report.RunID)
	require.Equal(t, []StageName{
		StageSyncLatest, StageSyncVersioned, StagePruneStale, StageVersionsJSON,
		StageSidebars, StageVersionedSidebars, StageRedirects,
	}, report.Stages)

	require.Equal(t, "[\n  \"0.1.10\",\n  \"0.1.9\"\n]\n", f.read("site/versions.json"))
	require.Equal(t, wantSidebarsTS, f.read("site/sidebars.generated.ts"))
	require.Equal(t, wantVersionSidebar, f.read("site/versioned_sidebars/version-0.1.9-sidebars.json"))
	require.Equal(t, "# Intro 0.1.10\n", f.read("site/versioned_docs/version-0.1.10/intro.md"))
	require.Equal(t, "# CLI\n", f.read("site/docs/toolchain/cli.mdx"))

	require.NoFileExists(t, f.path("site/docs/SUMMARY.md"))
	require.NoDirExists(t, f.path("site/docs/_generated"))
	require.NoFileExists(t, f.path("site/versioned_docs/version-0.1.9/SUMMARY.md"))

	require.ElementsMatch(t, []string{
		"site/versions.json",
		"site/sidebars.generated.ts",
		"site/versioned_sidebars/version-0.1.10-sidebars.json",
		"site/versioned_sidebars/version-0.1.9-sidebars.json",
		"site/redirects.generated.ts",
	}, report.Written)
	require.ElementsMatch(t, []string{
		"site/docs",
		"site/versioned_docs/version-0.1.10",
		"site/versioned_docs/version-0.1.9",
	}, report.Synced)
}

func TestGenerate_SecondRunIsNoop(t *testing.T) {
	f := newFixture(t, "0.1.0")
	gen := f.generator()
	_, err := gen.Generate(context.Background())
	require.NoError(t, err)

	report, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Empty(t, report.Changed())
	require.Equal(t, 6, report.Unchanged) // 2 trees + 4 generated files

	report, err = gen.Check(context.Background())
	require.NoError(t, err)
	require.Equal(t, ModeCheck, report.Mode)
	require.Equal(t, OutcomeSuccess, report.Outcome)
}

func TestGenerate_CRLFOutputIsUpToDate(t *testing.T) {
	f := newFixture(t)
	_, err := f.generator().Generate(context.Background())
	require.NoError(t, err)

	content := f.read("site/redirects.generated.ts")
	f.write("site/redirects.generated.ts", strings.ReplaceAll(content, "\n", "\r\n"))
	_, err = f.generator().Check(context.Background())
	require.NoError(t, err)
}

func TestCheck_DetectsDrift(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *fixture)
		want   string
	}{
		{
			name:   "file differs",
			mutate: func(f *fixture) { f.write("site/docs/concepts/worlds.md", "# Edited\n") },
			want:   "[CHECK] file differs: ",
		},
		{
			name:   "extra file",
			mutate: func(f *fixture) { f.write("site/docs/extra.md", "x\n") },
			want:   "[CHECK] directory out of date: ",
		},
		{
			name:   "missing tree",
			mutate: func(f *fixture) { require.NoError(f.t, os.RemoveAll(f.path("site/versioned_docs/version-0.1.0"))) },
			want:   "[CHECK] expected directory missing: ",
		},
		{
			name:   "stale sidebar",
			mutate: func(f *fixture) { f.write("docs/latest/SUMMARY.md", "# Only\n- [Install](getting-started/install.md)\n") },
			want:   "sidebars.generated.ts is out of date (run sitegen generate).",
		},
		{
			name:   "missing generated file",
			mutate: func(f *fixture) { require.NoError(f.t, os.Remove(f.path("site/versions.json"))) },
			want:   "versions.json missing (run sitegen generate).",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "0.1.0")
			_, err := f.generator().Generate(context.Background())
			require.NoError(t, err)

			tt.mutate(f)
			before := f.read("site/versioned_sidebars/version-0.1.0-sidebars.json")
			report, err := f.generator().Check(context.Background())
			require.Error(t, err)
			require.True(t, errors.HasCategory(err, errors.CategoryCheck), "got %v", err)
			require.Contains(t, err.Error(), tt.want)
			require.Equal(t, OutcomeFailed, report.Outcome)
			require.Empty(t, report.Changed())
			require.Equal(t, before, f.read("site/versioned_sidebars/version-0.1.0-sidebars.json"))
		})
	}
}

func TestGenerate_PrunesStaleVersions(t *testing.T) {
	f := newFixture(t, "0.1.0", "0.2.0")
	_, err := f.generator().Generate(context.Background())
	require.NoError(t, err)

	f.setVersions("0.2.0")
	f.write("site/versioned_sidebars/notes.txt", "kept\n")

	// Check mode reports the drift but leaves stale outputs in place.
	_, err = f.generator().Check(context.Background())
	require.ErrorContains(t, err, "versions.json is out of date")
	require.DirExists(t, f.path("site/versioned_docs/version-0.1.0"))

	report, err := f.generator().Generate(context.Background())
	require.NoError(t, err)
	require.NoDirExists(t, f.path("site/versioned_docs/version-0.1.0"))
	require.NoFileExists(t, f.path("site/versioned_sidebars/version-0.1.0-sidebars.json"))
	require.FileExists(t, f.path("site/versioned_sidebars/notes.txt"))
	require.ElementsMatch(t, []string{
		"site/versioned_docs/version-0.1.0",
		"site/versioned_sidebars/version-0.1.0-sidebars.json",
	}, report.Pruned)
}

func TestGenerate_SummaryParseError(t *testing.T) {
	f := newFixture(t)
	f.write("docs/latest/SUMMARY.md", "# Guide\n- [Ext](https://example.com/x.md)\n")

	report, err := f.generator().Generate(context.Background())
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategorySummary))
	require.ErrorIs(t, err, summary.ErrExternalLinkNotAllowed)

	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t,
		"SUMMARY parse error in "+f.path("docs/latest/SUMMARY.md")+": line 2: external link not allowed in SUMMARY.md sidebar: https://example.com/x.md",
		ce.Detail())

	var se *StageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, StageSidebars, se.Stage)
	require.Equal(t, StageErrorFatal, report.StageErrorKinds[StageSidebars])
	require.NotContains(t, report.Stages, StageRedirects)
}

func TestGenerate_MissingInputs(t *testing.T) {
	t.Run("docs/latest", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, os.RemoveAll(f.path("docs/latest")))
		_, err := f.generator().Generate(context.Background())
		require.True(t, errors.HasCategory(err, errors.CategoryConfig))
		require.ErrorContains(t, err, "missing docs/latest")
	})
	t.Run("versions file", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, os.Remove(f.path("versions/toolchain_versions.json")))
		_, err := f.generator().Generate(context.Background())
		require.True(t, errors.HasCategory(err, errors.CategoryConfig))
	})
	t.Run("versioned tree", func(t *testing.T) {
		f := newFixture(t, "0.1.0")
		require.NoError(t, os.RemoveAll(f.path("docs/v0.1.0")))
		_, err := f.generator().Generate(context.Background())
		require.ErrorContains(t, err, "source directory missing")
	})
	t.Run("versioned outline", func(t *testing.T) {
		f := newFixture(t, "0.1.0")
		require.NoError(t, os.Remove(f.path("docs/v0.1.0/SUMMARY.md")))
		_, err := f.generator().Generate(context.Background())
		require.ErrorContains(t, err, "missing SUMMARY.md in")
	})
}

func TestGenerate_Canceled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := f.generator().Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, OutcomeCanceled, report.Outcome)
	require.Equal(t, StageErrorCanceled, report.StageErrorKinds[StageSyncLatest])
}

type captureSink struct{ reports []*Report }

func (c *captureSink) RecordRun(_ context.Context, r *Report) error {
	c.reports = append(c.reports, r)
	return nil
}

type countingRecorder struct {
	metrics.NoopRecorder
	outcomes map[string]int
	parses   map[string]int
}

func (c *countingRecorder) IncRunOutcome(mode, outcome string) { c.outcomes[mode+"/"+outcome]++ }

func (c *countingRecorder) IncSummaryParse(version string, ok bool) {
	if ok {
		c.parses[version]++
	}
}

func TestGenerate_NotifiesSinksAndRecorder(t *testing.T) {
	f := newFixture(t, "0.1.0")
	sink := &captureSink{}
	rec := &countingRecorder{outcomes: map[string]int{}, parses: map[string]int{}}
	gen := f.generator(WithRunSink(sink), WithRecorder(rec))
	gen.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	_, err := gen.Generate(context.Background())
	require.NoError(t, err)
	_, err = gen.Check(context.Background())
	require.NoError(t, err)

	require.Len(t, sink.reports, 2)
	require.NotEqual(t, sink.reports[0].RunID, sink.reports[1].RunID)
	require.Equal(t, 1, rec.outcomes["write/success"])
	require.Equal(t, 1, rec.outcomes["check/success"])
	require.Equal(t, 2, rec.parses["latest"])
	require.Equal(t, 2, rec.parses["0.1.0"])
}

func TestGenerate_RedirectAliases(t *testing.T) {
	f := newFixture(t)
	f.cfg.Redirects = config.Example().Redirects
	_, err := f.generator().Generate(context.Background())
	require.NoError(t, err)

	got := f.read("site/redirects.generated.ts")
	require.Contains(t, got, "export const TOOLCHAIN_VERSIONS: readonly string[] = [] as const;")
	require.Contains(t, got, "    const redirects = [`/docs/latest${existingPath.slice('/docs'.length)}`];\n\n"+
		"    if (existingPath === '/docs/getting-started/install') {\n"+
		"      redirects.push('/install');\n"+
		"    }\n"+
		"    if (existingPath === '/docs/toolchain/cli') {\n"+
		"      redirects.push('/docs/cli');\n"+
		"    }\n"+
		"    if (existingPath === '/docs/worlds/os-worlds') {\n"+
		"      redirects.push('/docs/worlds/os');\n"+
		"    }\n\n"+
		"    return redirects;\n")
}

func TestGenerate_DefaultConfigEmitsLegacyAliases(t *testing.T) {
	f := newFixture(t)
	_, err := f.generator().Generate(context.Background())
	require.NoError(t, err)

	got := f.read("site/redirects.generated.ts")
	require.Contains(t, got, "      redirects.push('/install');\n")
	require.Contains(t, got, "      redirects.push('/docs/cli');\n")
	require.Contains(t, got, "      redirects.push('/docs/worlds/os');\n")
}

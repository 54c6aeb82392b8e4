package sitegen

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/summary"
)

func stageSyncLatest(ctx context.Context, rs *runState) error {
	changed, err := rs.syncTree(ctx, rs.paths.latest, rs.paths.siteDocs)
	if err != nil {
		return err
	}
	if changed {
		logStage(rs, "Synced latest docs", logfields.Path(rs.rel(rs.paths.siteDocs)))
	}
	return nil
}

func stageSyncVersioned(ctx context.Context, rs *runState) error {
	for _, v := range rs.versions {
		changed, err := rs.syncTree(ctx, rs.versionSource(v), rs.versionDocsDir(v))
		if err != nil {
			return err
		}
		if changed {
			logStage(rs, "Synced versioned docs", logfields.Version(v))
		}
	}
	return nil
}

// stagePruneStale removes versioned docs and sidebars for versions that are
// no longer listed. Check mode leaves stale outputs alone.
func stagePruneStale(_ context.Context, rs *runState) error {
	if rs.check {
		return nil
	}
	if entries, err := os.ReadDir(rs.paths.versionedDocs); err == nil {
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			v, ok := strings.CutPrefix(e.Name(), "version-")
			if ok && slices.Contains(rs.versions, v) {
				continue
			}
			if err := rs.prune(filepath.Join(rs.paths.versionedDocs, e.Name())); err != nil {
				return err
			}
		}
	} else if !os.IsNotExist(err) {
		return fsError(err, "failed to list versioned docs", rs.paths.versionedDocs)
	}

	if entries, err := os.ReadDir(rs.paths.versionedSidebars); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			v, ok := sidebarFileVersion(e.Name())
			if !ok || slices.Contains(rs.versions, v) {
				continue
			}
			if err := rs.prune(filepath.Join(rs.paths.versionedSidebars, e.Name())); err != nil {
				return err
			}
		}
	} else if !os.IsNotExist(err) {
		return fsError(err, "failed to list versioned sidebars", rs.paths.versionedSidebars)
	}
	return nil
}

// sidebarFileVersion extracts X.Y.Z from version-X.Y.Z-sidebars.json.
func sidebarFileVersion(name string) (string, bool) {
	v, ok := strings.CutPrefix(name, "version-")
	if !ok {
		return "", false
	}
	return strings.CutSuffix(v, "-sidebars.json")
}

func (rs *runState) prune(p string) error {
	if err := os.RemoveAll(p); err != nil {
		return fsError(err, "failed to remove stale output", p)
	}
	rs.report.Pruned = append(rs.report.Pruned, rs.rel(p))
	logStage(rs, "Pruned stale output", logfields.Path(rs.rel(p)))
	return nil
}

func stageVersionsJSON(_ context.Context, rs *runState) error {
	return rs.writeJSONIfChanged(rs.paths.versionsJSON, rs.versions)
}

func stageSidebars(_ context.Context, rs *runState) error {
	items, err := rs.sidebarItems("latest", rs.paths.latest)
	if err != nil {
		return err
	}
	content, err := renderSidebarsTS(items)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to render sidebars module").Build()
	}
	return rs.writeIfChanged(rs.paths.sidebarsTS, content)
}

func stageVersionedSidebars(ctx context.Context, rs *runState) error {
	for _, v := range rs.versions {
		if err := ctx.Err(); err != nil {
			return err
		}
		items, err := rs.sidebarItems(v, rs.versionSource(v))
		if err != nil {
			return err
		}
		if err := rs.writeJSONIfChanged(rs.versionSidebarFile(v), map[string]any{"docs": items}); err != nil {
			return err
		}
	}
	return nil
}

func stageRedirects(_ context.Context, rs *runState) error {
	content, err := renderRedirectsTS(rs.versions, rs.gen.cfg.Redirects.Aliases)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to render redirects module").Build()
	}
	return rs.writeIfChanged(rs.paths.redirectsTS, content)
}

// sidebarItems parses the outline of one version tree. label names the
// version in errors and metrics ("latest" or X.Y.Z).
func (rs *runState) sidebarItems(label, dir string) ([]summary.Item, error) {
	items, err := LoadSidebar(dir, rs.gen.cfg.SummaryFile)
	rs.gen.recorder.IncSummaryParse(label, err == nil)
	if err != nil {
		return nil, err
	}
	n := 0
	countItems(items, &n)
	rs.gen.recorder.SetSidebarItems(label, n)
	return items, nil
}

func countItems(items []summary.Item, n *int) {
	for _, it := range items {
		*n++
		countItems(it.Items, n)
	}
}

package sitegen

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/summary"
)

// LoadOutline reads and parses the outline file of one version tree.
func LoadOutline(dir, summaryFile string) ([]summary.Node, error) {
	p := filepath.Join(dir, summaryFile)
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("missing " + summaryFile + " in " + dir + ": " + p).
				WithPath(p).
				Build()
		}
		return nil, fsError(err, "failed to read outline", p)
	}
	return ParseOutline(p, data)
}

// ParseOutline parses outline text read from p, classifying parse errors.
func ParseOutline(p string, data []byte) ([]summary.Node, error) {
	nodes, err := summary.Parse(string(data))
	if err != nil {
		var pe *summary.ParseError
		if stderrors.As(err, &pe) {
			return nil, pe.Classified(p)
		}
		return nil, err
	}
	return nodes, nil
}

// LoadSidebar reads the outline of one version tree and renders its sidebar items.
func LoadSidebar(dir, summaryFile string) ([]summary.Item, error) {
	nodes, err := LoadOutline(dir, summaryFile)
	if err != nil {
		return nil, err
	}
	return summary.Render(nodes), nil
}

// VersionDir returns the source tree of a version: "latest" or X.Y.Z.
func VersionDir(docsDir, version string) string {
	if version == "" || version == "latest" {
		return filepath.Join(docsDir, "latest")
	}
	return filepath.Join(docsDir, "v"+strings.TrimPrefix(version, "v"))
}

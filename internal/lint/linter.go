package lint

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/sitegen"
)

const generatedDir = "_generated"

// Linter performs linting operations on a version tree.
type Linter struct {
	cfg   *Config
	rules []Rule
}

// NewLinter creates a new linter with the given configuration.
func NewLinter(cfg *Config) *Linter {
	if cfg == nil {
		cfg = &Config{Format: "text"}
	}

	return &Linter{
		cfg: cfg,
		rules: []Rule{
			&MissingDocRule{},
			&DuplicateDocRule{},
			&BrokenLinkRule{},
			&OrphanDocRule{},
		},
	}
}

// LintTree lints the version tree rooted at root. An unparsable outline is
// returned as an error, not as an issue.
func (l *Linter) LintTree(root, summaryFile string) (*Result, error) {
	tree, err := LoadTree(root, summaryFile)
	if err != nil {
		return nil, err
	}

	result := &Result{Root: root, Issues: []Issue{}, FilesTotal: len(tree.Files)}
	for _, rule := range l.rules {
		issues, err := rule.Check(tree)
		if err != nil {
			return nil, err
		}
		for _, issue := range issues {
			if l.cfg.Quiet && issue.Severity < SeverityError {
				continue
			}
			result.Issues = append(result.Issues, issue)
		}
	}
	slices.SortStableFunc(result.Issues, func(a, b Issue) int {
		if c := strings.Compare(a.FilePath, b.FilePath); c != 0 {
			return c
		}
		return a.Line - b.Line
	})
	return result, nil
}

// LoadTree reads the outline and every Markdown file of a version tree.
// Hidden entries and _generated subtrees are skipped.
func LoadTree(root, summaryFile string) (*Tree, error) {
	outline, err := sitegen.LoadOutline(root, summaryFile)
	if err != nil {
		return nil, err
	}

	tree := &Tree{
		Root:        root,
		SummaryFile: summaryFile,
		Outline:     outline,
		Sources:     make(map[string][]byte),
	}
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == generatedDir) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsDocFile(p) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		// Outlines are never synced, at any depth.
		if path.Base(rel) == summaryFile {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		tree.Files = append(tree.Files, rel)
		tree.Sources[rel] = data
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read docs tree").
			WithPath(root).
			Build()
	}
	slices.Sort(tree.Files)
	return tree, nil
}

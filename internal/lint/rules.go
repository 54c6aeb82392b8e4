package lint

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/markdown"
	"git.home.luguber.info/inful/sitegen/internal/summary"
)

const (
	RuleMissingDoc   = "missing_doc"
	RuleDuplicateDoc = "duplicate_doc"
	RuleOrphanDoc    = "orphan_doc"
	RuleBrokenLink   = "broken_link"
)

// MissingDocRule reports sidebar entries whose page does not exist.
type MissingDocRule struct{}

func (r *MissingDocRule) Name() string { return RuleMissingDoc }

func (r *MissingDocRule) Check(tree *Tree) ([]Issue, error) {
	ids := docIDSet(tree.Files)
	var issues []Issue
	for _, id := range summary.DocIDs(tree.Outline) {
		if ids[id] {
			continue
		}
		issues = append(issues, Issue{
			FilePath:    tree.SummaryFile,
			Severity:    SeverityError,
			Rule:        r.Name(),
			Message:     fmt.Sprintf("Sidebar entry %q has no page", id),
			Explanation: fmt.Sprintf("Neither %s.md nor %s.mdx exists in the version tree.", id, id),
			Fix:         "Create the page or remove the entry from " + tree.SummaryFile,
		})
	}
	return issues, nil
}

// DuplicateDocRule reports pages listed more than once in the sidebar.
type DuplicateDocRule struct{}

func (r *DuplicateDocRule) Name() string { return RuleDuplicateDoc }

func (r *DuplicateDocRule) Check(tree *Tree) ([]Issue, error) {
	seen := make(map[string]int)
	var issues []Issue
	for _, id := range summary.DocIDs(tree.Outline) {
		seen[id]++
		if seen[id] != 2 {
			continue
		}
		issues = append(issues, Issue{
			FilePath: tree.SummaryFile,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("Sidebar entry %q is listed more than once", id),
			Fix:      "Keep a single entry per page",
		})
	}
	return issues, nil
}

// OrphanDocRule reports pages not reachable from the sidebar.
type OrphanDocRule struct{}

func (r *OrphanDocRule) Name() string { return RuleOrphanDoc }

func (r *OrphanDocRule) Check(tree *Tree) ([]Issue, error) {
	listed := make(map[string]bool)
	for _, id := range summary.DocIDs(tree.Outline) {
		listed[id] = true
	}
	var issues []Issue
	for _, f := range tree.Files {
		if listed[DocID(f)] {
			continue
		}
		issues = append(issues, Issue{
			FilePath: f,
			Severity: SeverityWarning,
			Rule:     r.Name(),
			Message:  "Page is not listed in the sidebar",
			Fix:      "Add an entry to " + tree.SummaryFile + " or move the page out of the docs tree",
		})
	}
	return issues, nil
}

// BrokenLinkRule reports relative Markdown links whose target page is missing.
type BrokenLinkRule struct{}

func (r *BrokenLinkRule) Name() string { return RuleBrokenLink }

func (r *BrokenLinkRule) Check(tree *Tree) ([]Issue, error) {
	files := make(map[string]bool, len(tree.Files)+1)
	for _, f := range tree.Files {
		files[f] = true
	}
	files[tree.SummaryFile] = true

	var issues []Issue
	for _, f := range tree.Files {
		links, err := markdown.ExtractLinks(tree.Sources[f], markdown.Options{SkipFrontmatter: true})
		if err != nil {
			return nil, err
		}
		for _, link := range links {
			if link.Kind == markdown.LinkKindAuto {
				continue
			}
			target, ok := resolveLink(f, link.Destination)
			if !ok || files[target] {
				continue
			}
			issues = append(issues, Issue{
				FilePath: f,
				Severity: SeverityError,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("Broken link to %s", link.Destination),
				Explanation: fmt.Sprintf("The link resolves to %s, which does not exist in the version tree.",
					target),
				Fix:  "Point the link at an existing page",
				Line: link.Line,
			})
		}
	}
	return issues, nil
}

// resolveLink resolves a relative page link found in from. It reports false
// for links that are not relative .md/.mdx references.
func resolveLink(from, dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return "", false
	}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
		return "", false
	}
	if i := strings.IndexByte(dest, '#'); i >= 0 {
		dest = dest[:i]
	}
	if i := strings.IndexByte(dest, '?'); i >= 0 {
		dest = dest[:i]
	}
	if unescaped, err := url.PathUnescape(dest); err == nil {
		dest = unescaped
	}
	if !IsDocFile(dest) {
		return "", false
	}
	return path.Join(path.Dir(from), dest), true
}

func docIDSet(files []string) map[string]bool {
	ids := make(map[string]bool, len(files))
	for _, f := range files {
		ids[DocID(f)] = true
	}
	return ids
}

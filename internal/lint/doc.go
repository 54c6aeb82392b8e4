// Package lint checks a documentation version tree against its SUMMARY.md
// outline: every sidebar entry must resolve to a file, no entry may appear
// twice, relative Markdown links must resolve, and every page should be
// reachable from the sidebar.
package lint

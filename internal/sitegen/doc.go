// Package sitegen produces the Docusaurus inputs of a versioned documentation
// tree.
//
// A run executes a fixed sequence of stages (see stage_names.go): the latest
// and versioned doc trees are mirrored into the site directory, versions.json
// is written, each version's SUMMARY.md outline is parsed into a sidebar, and
// a redirect module is generated for legacy URLs.
//
// In check mode nothing is written; the first generated file or mirrored tree
// that differs from what a write run would produce fails the run with a
// CategoryCheck error. Every run produces a Report.
package sitegen

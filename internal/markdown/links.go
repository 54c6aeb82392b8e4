package markdown

// Options controls how Markdown is parsed for link analysis.
type Options struct {
	// SkipFrontmatter blanks a leading YAML front matter block before parsing.
	// Line numbers are preserved.
	SkipFrontmatter bool
}

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a link-like construct found in a Markdown body. Line is 1-based and
// zero for reference definitions.
type Link struct {
	Kind        LinkKind
	Destination string
	Line        int
}

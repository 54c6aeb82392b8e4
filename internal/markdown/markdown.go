// Package markdown extracts links from Markdown documents using goldmark.
// Code spans and code blocks are never reported.
package markdown

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ExtractLinks parses a Markdown body and extracts link-like constructs in
// document order, followed by reference definitions sorted by label.
func ExtractLinks(body []byte, opts Options) ([]Link, error) {
	if opts.SkipFrontmatter {
		body = blankFrontmatter(body)
	}
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body)), Line: lineOf(node, body)})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination), Line: lineOf(node, body)})
		case *gmast.Link:
			// Reference-style links resolve to Link nodes with a Destination.
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination), Line: lineOf(node, body)})
		}
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	// Reference definitions live in the parse context, not in the AST.
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}
	return links, nil
}

// lineOf returns the 1-based line of the block containing an inline node.
func lineOf(n gmast.Node, body []byte) int {
	for p := n; p != nil; p = p.Parent() {
		if p.Type() != gmast.TypeBlock {
			continue
		}
		lines := p.Lines()
		if lines == nil || lines.Len() == 0 {
			continue
		}
		return bytes.Count(body[:lines.At(0).Start], []byte("\n")) + 1
	}
	return 0
}

// blankFrontmatter replaces a leading "---" delimited block with empty lines.
func blankFrontmatter(body []byte) []byte {
	if !bytes.HasPrefix(body, []byte("---\n")) && !bytes.HasPrefix(body, []byte("---\r\n")) {
		return body
	}
	lines := bytes.SplitAfter(body, []byte("\n"))
	for i := 1; i < len(lines); i++ {
		if string(bytes.TrimRight(lines[i], "\r\n")) != "---" {
			continue
		}
		out := make([]byte, 0, len(body))
		for j := 0; j <= i; j++ {
			out = append(out, '\n')
		}
		for _, l := range lines[i+1:] {
			out = append(out, l...)
		}
		return out
	}
	return body
}

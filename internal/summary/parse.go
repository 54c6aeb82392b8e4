package summary

import (
	"strings"
	"unicode"
)

// frame maps an indentation level to the child list new bullets at that level
// are appended to.
type frame struct {
	level    int
	children *[]Node
}

// section accumulates the nodes under one heading. The preamble before the
// first heading is a section without a title.
type section struct {
	title    string
	titled   bool
	children []Node
}

type builder struct {
	root    []Node
	current *section
	stack   []frame
}

// Parse converts SUMMARY.md text into an ordered forest of nodes.
//
// Parsing stops at the first problem and returns a *ParseError; no partial
// tree is returned.
func Parse(text string) ([]Node, error) {
	b := &builder{root: []Node{}}
	b.startSection("", false)

	for i, raw := range splitLines(text) {
		line := strings.TrimRightFunc(raw, unicode.IsSpace)
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := b.consume(classify(line), i+1, line); err != nil {
			return nil, err
		}
	}

	b.flush()
	return b.root, nil
}

func (b *builder) consume(cl classifiedLine, lineNo int, line string) error {
	switch cl.kind {
	case lineHeading:
		b.flush()
		b.startSection(cl.title, true)
		return nil
	case lineBullet:
		return b.addBullet(cl, lineNo, line)
	default:
		return (&ParseError{Kind: KindUnsupportedLine}).at(lineNo, line)
	}
}

func (b *builder) startSection(title string, titled bool) {
	b.current = &section{title: title, titled: titled, children: []Node{}}
	b.stack = []frame{{level: 0, children: &b.current.children}}
}

// flush moves the current section into root: titled sections become a
// category, the untitled preamble is spliced in as top-level nodes.
func (b *builder) flush() {
	if b.current == nil {
		return
	}
	if b.current.titled {
		b.root = append(b.root, &Category{Label: b.current.title, Children: b.current.children})
	} else {
		b.root = append(b.root, b.current.children...)
	}
	b.current = nil
	b.stack = nil
}

func (b *builder) addBullet(cl classifiedLine, lineNo int, line string) error {
	for len(b.stack) > 0 && b.stack[len(b.stack)-1].level > cl.level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	if len(b.stack) == 0 {
		return (&ParseError{Kind: KindIndentationUnderflow}).at(lineNo, line)
	}
	top := b.stack[len(b.stack)-1]
	if top.level < cl.level {
		return (&ParseError{Kind: KindInvalidIndentationJump}).at(lineNo, line)
	}

	if label, href, ok := splitLink(cl.body); ok {
		id, err := NormalizeDocID(href)
		if err != nil {
			pe := err.(*ParseError)
			return pe.at(lineNo, line)
		}
		*top.children = append(*top.children, &Doc{Label: label, DocID: id})
		return nil
	}

	cat := &Category{Label: cl.body, Children: []Node{}}
	*top.children = append(*top.children, cat)
	b.stack = append(b.stack, frame{level: cl.level + 1, children: &cat.Children})
	return nil
}

// splitLines normalizes line endings and splits text into lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

package summary

import (
	"regexp"
	"strings"
)

var (
	headingRE = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)
	bulletRE  = regexp.MustCompile(`^([ \t]*)([-*+])\s+(.+?)\s*$`)
	linkRE    = regexp.MustCompile(`^\[([^\]]+)\]\(([^)]+)\)\s*$`)
)

type lineKind int

const (
	lineUnrecognized lineKind = iota
	lineHeading
	lineBullet
)

// classifiedLine is one non-blank outline line after classification.
type classifiedLine struct {
	kind lineKind

	// heading
	depth int
	title string

	// bullet
	level int
	body  string
}

// classify categorizes a line whose trailing whitespace is already trimmed.
func classify(line string) classifiedLine {
	if m := headingRE.FindStringSubmatch(line); m != nil {
		return classifiedLine{
			kind:  lineHeading,
			depth: len(m[1]),
			title: strings.TrimSpace(m[2]),
		}
	}
	if m := bulletRE.FindStringSubmatch(line); m != nil {
		return classifiedLine{
			kind:  lineBullet,
			level: indentLevel(m[1]),
			body:  strings.TrimSpace(m[3]),
		}
	}
	return classifiedLine{kind: lineUnrecognized}
}

// indentLevel converts a run of spaces and tabs into a nesting level.
// A tab is 4 units, a space 1, and each level is 2 units.
func indentLevel(indent string) int {
	units := 0
	for _, ch := range indent {
		if ch == '\t' {
			units += 4
		} else {
			units++
		}
	}
	return units / 2
}

// splitLink returns the label and href of a bullet body written as an inline
// Markdown link.
func splitLink(body string) (label, href string, ok bool) {
	m := linkRE.FindStringSubmatch(body)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

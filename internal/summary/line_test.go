package summary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line  string
		kind  lineKind
		title string
		depth int
		level int
		body  string
	}{
		{line: "# Guide", kind: lineHeading, title: "Guide", depth: 1},
		{line: "###### Deep  ", kind: lineHeading, title: "Deep", depth: 6},
		{line: "- Item", kind: lineBullet, body: "Item"},
		{line: "  * Item", kind: lineBullet, level: 1, body: "Item"},
		{line: "\t+ Item", kind: lineBullet, level: 2, body: "Item"},
		{line: " - Item", kind: lineBullet, level: 0, body: "Item"},
		{line: "text", kind: lineUnrecognized},
		{line: "-Item", kind: lineUnrecognized},
		{line: "1. Item", kind: lineUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := classify(tt.line)
			require.Equal(t, tt.kind, got.kind)
			require.Equal(t, tt.title, got.title)
			require.Equal(t, tt.depth, got.depth)
			require.Equal(t, tt.level, got.level)
			require.Equal(t, tt.body, got.body)
		})
	}
}

func TestIndentLevel(t *testing.T) {
	require.Equal(t, 0, indentLevel(""))
	require.Equal(t, 0, indentLevel(" "))
	require.Equal(t, 1, indentLevel("  "))
	require.Equal(t, 1, indentLevel("   "))
	require.Equal(t, 2, indentLevel("    "))
	require.Equal(t, 2, indentLevel("\t"))
	require.Equal(t, 3, indentLevel("\t  "))
	require.Equal(t, 4, indentLevel("\t\t"))
}

func TestSplitLink(t *testing.T) {
	label, href, ok := splitLink("[ Intro ]( intro.md )")
	require.True(t, ok)
	require.Equal(t, "Intro", label)
	require.Equal(t, "intro.md", href)

	_, _, ok = splitLink("[Intro](intro.md) trailing")
	require.False(t, ok)

	_, _, ok = splitLink("Just a label")
	require.False(t, ok)
}

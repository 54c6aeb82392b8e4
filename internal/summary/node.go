package summary

// Kind identifies the variant of a Node.
type Kind string

const (
	KindDoc      Kind = "doc"
	KindCategory Kind = "category"
)

// Node is an element of the parsed outline: either a *Doc or a *Category.
type Node interface {
	Kind() Kind
	NodeLabel() string
	isNode()
}

// Doc references a single document page. DocID is never empty.
type Doc struct {
	Label string
	DocID string
}

// Category groups child nodes under a label. Children keeps source order and
// is never nil for nodes produced by Parse.
type Category struct {
	Label    string
	Children []Node
}

// Kind reports KindDoc.
func (*Doc) Kind() Kind { return KindDoc }

// NodeLabel returns the display label.
func (d *Doc) NodeLabel() string { return d.Label }

func (*Doc) isNode() {}

// Kind reports KindCategory.
func (*Category) Kind() Kind { return KindCategory }

// NodeLabel returns the display label.
func (c *Category) NodeLabel() string { return c.Label }

func (*Category) isNode() {}

// Walk visits nodes depth-first in source order. depth is 0 for top-level nodes.
func Walk(nodes []Node, fn func(n Node, depth int)) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(n Node, depth int)) {
	for _, n := range nodes {
		fn(n, depth)
		if c, ok := n.(*Category); ok {
			walk(c.Children, depth+1, fn)
		}
	}
}

// DocIDs returns every doc id in the forest, in source order. Duplicates are kept.
func DocIDs(nodes []Node) []string {
	var ids []string
	Walk(nodes, func(n Node, _ int) {
		if d, ok := n.(*Doc); ok {
			ids = append(ids, d.DocID)
		}
	})
	return ids
}

package summary

import (
	"bytes"
	"encoding/json"
)

// Item is one rendered sidebar entry. Doc items use ID and Label; category
// items use Label, Collapsed and Items.
type Item struct {
	Type      Kind
	ID        string
	Label     string
	Collapsed bool
	Items     []Item
}

type docItemJSON struct {
	Type  Kind   `json:"type"`
	ID    string `json:"id"`
	Label string `json:"label"`
}

type categoryItemJSON struct {
	Type      Kind   `json:"type"`
	Label     string `json:"label"`
	Collapsed bool   `json:"collapsed"`
	Items     []Item `json:"items"`
}

// MarshalJSON encodes the item with keys in sidebar order:
// type, id, label for docs and type, label, collapsed, items for categories.
func (i Item) MarshalJSON() ([]byte, error) {
	if i.Type == KindDoc {
		return marshalRaw(docItemJSON{Type: i.Type, ID: i.ID, Label: i.Label})
	}
	items := i.Items
	if items == nil {
		items = []Item{}
	}
	return marshalRaw(categoryItemJSON{Type: i.Type, Label: i.Label, Collapsed: i.Collapsed, Items: items})
}

// marshalRaw is json.Marshal without HTML escaping.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Value returns the item as generic JSON data (maps and slices), suitable for
// sorted-key encoding and jq evaluation.
func (i Item) Value() map[string]any {
	if i.Type == KindDoc {
		return map[string]any{"type": string(i.Type), "id": i.ID, "label": i.Label}
	}
	return map[string]any{
		"type":      string(i.Type),
		"label":     i.Label,
		"collapsed": i.Collapsed,
		"items":     Values(i.Items),
	}
}

// Values converts items to generic JSON data, preserving order.
func Values(items []Item) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, it.Value())
	}
	return out
}

// Render maps parsed nodes to sidebar items. Categories always render expanded.
func Render(nodes []Node) []Item {
	items := make([]Item, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, renderNode(n))
	}
	return items
}

func renderNode(n Node) Item {
	switch v := n.(type) {
	case *Doc:
		return Item{Type: KindDoc, ID: v.DocID, Label: v.Label}
	case *Category:
		return Item{Type: KindCategory, Label: v.Label, Collapsed: false, Items: Render(v.Children)}
	}
	panic("summary: unknown node type")
}

// ParseAndRender parses SUMMARY.md text and renders it in one step.
func ParseAndRender(text string) ([]Item, error) {
	nodes, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Render(nodes), nil
}

// EncodeJSON encodes items with two-space indentation and keys in sidebar order.
// HTML characters are not escaped. The result has no trailing newline.
func EncodeJSON(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	return encodeIndented(items)
}

// EncodeSortedJSON encodes v with two-space indentation and every object's keys
// sorted. Item values are converted to generic data first.
func EncodeSortedJSON(v any) ([]byte, error) {
	return encodeIndented(toGeneric(v))
}

func toGeneric(v any) any {
	switch t := v.(type) {
	case []Item:
		return Values(t)
	case Item:
		return t.Value()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = toGeneric(val)
		}
		return out
	default:
		return v
	}
}

func encodeIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

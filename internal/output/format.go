// Package output prints rendered sidebars for the sidebar command.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitegen/internal/summary"
)

// Format selects the output encoding.
type Format string

const (
	// FormatText is an indented outline for humans.
	FormatText Format = "text"
	// FormatJSON is indented JSON with keys in sidebar order.
	FormatJSON Format = "json"
	// FormatNDJSON emits one top-level item per line.
	FormatNDJSON Format = "ndjson"
	// FormatYAML is YAML with keys in sidebar order.
	FormatYAML Format = "yaml"
)

// ParseFormat converts a flag value to a Format. Empty means json.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatText, FormatJSON, FormatNDJSON, FormatYAML:
		return f, nil
	default:
		return "", errors.New("invalid --output format (expected text|json|ndjson|yaml)")
	}
}

// Printer writes sidebar items in one format, optionally filtered through a
// jq query.
type Printer struct {
	w      io.Writer
	format Format
	query  *gojq.Code
}

// NewPrinter creates a Printer. An empty query prints items unfiltered.
func NewPrinter(w io.Writer, format Format, query string) (*Printer, error) {
	p := &Printer{w: w, format: format}
	if strings.TrimSpace(query) == "" {
		return p, nil
	}
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	p.query = code
	return p, nil
}

// Print writes the items.
func (p *Printer) Print(items []summary.Item) error {
	if p.query != nil {
		return p.printQuery(items)
	}
	switch p.format {
	case FormatJSON:
		data, err := summary.EncodeJSON(items)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.w, "%s\n", data)
		return err
	case FormatNDJSON:
		enc := json.NewEncoder(p.w)
		enc.SetEscapeHTML(false)
		for _, it := range items {
			if err := enc.Encode(it); err != nil {
				return err
			}
		}
		return nil
	case FormatYAML:
		return p.encodeYAML(itemsNode(items))
	case FormatText:
		return p.printText(items, 0)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// printQuery runs the jq query over the generic form of the items. Each
// result is printed on its own; text falls back to compact JSON.
func (p *Printer) printQuery(items []summary.Item) error {
	iter := p.query.Run(summary.Values(items))
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	if p.format == FormatJSON {
		enc.SetIndent("", "  ")
	}
	for {
		v, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, isErr := v.(error); isErr {
			return fmt.Errorf("query error: %w", err)
		}
		if p.format == FormatYAML {
			if err := p.encodeYAML(v); err != nil {
				return err
			}
			continue
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
}

func (p *Printer) encodeYAML(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (p *Printer) printText(items []summary.Item, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, it := range items {
		var err error
		if it.Type == summary.KindDoc {
			_, err = fmt.Fprintf(p.w, "%s- %s (%s)\n", indent, it.Label, it.ID)
		} else {
			_, err = fmt.Fprintf(p.w, "%s+ %s\n", indent, it.Label)
			if err == nil {
				err = p.printText(it.Items, depth+1)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// itemsNode builds a YAML sequence keeping sidebar key order, which a plain
// map encoding would sort.
func itemsNode(items []summary.Item) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, it := range items {
		seq.Content = append(seq.Content, itemNode(it))
	}
	return seq
}

func itemNode(it summary.Item) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(key string, value *yaml.Node) {
		m.Content = append(m.Content, scalar("!!str", key), value)
	}
	add("type", scalar("!!str", string(it.Type)))
	if it.Type == summary.KindDoc {
		add("id", scalar("!!str", it.ID))
		add("label", scalar("!!str", it.Label))
		return m
	}
	add("label", scalar("!!str", it.Label))
	add("collapsed", scalar("!!bool", fmt.Sprint(it.Collapsed)))
	add("items", itemsNode(it.Items))
	return m
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

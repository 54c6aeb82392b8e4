// Package summary parses SUMMARY.md outline documents into a navigation tree
// and renders that tree into Docusaurus sidebar items.
//
// Supported outline subset:
//   - Headings (# .. ######) each open a new top-level category. Heading depth
//     does not nest categories.
//   - Bullets (-, *, +) whose body is an inline link [Label](path/to/doc.md)
//     become doc items.
//   - Bullets with any other body become categories; deeper-indented bullets
//     that follow become their children.
//
// Indentation counts a tab as 4 units and a space as 1; every 2 units is one
// nesting level. The parser is strict: any other construct, a skipped
// indentation level or an external link fails the whole parse, and output
// ordering always follows source order.
package summary

package summary

import "strings"

// NormalizeDocID converts a Markdown link target into a Docusaurus doc id.
//
// Query and fragment suffixes are dropped, leading "./" segments removed,
// backslashes turned into slashes and the .md/.mdx extension stripped.
// External http(s) links, other extensions and empty results are errors.
func NormalizeDocID(href string) (string, error) {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	if i := strings.IndexByte(href, '?'); i >= 0 {
		href = href[:i]
	}
	href = strings.TrimSpace(href)

	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return "", &ParseError{Kind: KindExternalLinkNotAllowed, Href: href}
	}

	for strings.HasPrefix(href, "./") {
		href = href[2:]
	}
	href = strings.ReplaceAll(href, `\`, "/")

	switch {
	case strings.HasSuffix(href, ".md"):
		href = strings.TrimSuffix(href, ".md")
	case strings.HasSuffix(href, ".mdx"):
		href = strings.TrimSuffix(href, ".mdx")
	default:
		return "", &ParseError{Kind: KindInvalidDocExtension, Href: href}
	}

	if href == "" {
		return "", &ParseError{Kind: KindEmptyDocID}
	}
	return href, nil
}

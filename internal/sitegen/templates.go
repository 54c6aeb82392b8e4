package sitegen

import (
	"bytes"
	"embed"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/summary"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

var tsTemplates = template.Must(template.New("ts").
	Funcs(template.FuncMap{"quote": tsSingleQuote}).
	ParseFS(embeddedTemplates, "templates/*.tmpl"))

// tsSingleQuote renders s as a single-quoted TypeScript string literal.
func tsSingleQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}

// renderSidebarsTS renders the TypeScript sidebar module for the latest docs.
func renderSidebarsTS(items []summary.Item) ([]byte, error) {
	encoded, err := summary.EncodeJSON(items)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = tsTemplates.ExecuteTemplate(&buf, "sidebars.ts.tmpl", struct{ Items string }{string(encoded)})
	return buf.Bytes(), err
}

// renderRedirectsTS renders the redirect module for the given versions
// (newest first) and extra aliases.
func renderRedirectsTS(versions []string, aliases []config.Alias) ([]byte, error) {
	encoded, err := summary.EncodeSortedJSON(versions)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = tsTemplates.ExecuteTemplate(&buf, "redirects.ts.tmpl", struct {
		Versions string
		Aliases  []config.Alias
	}{string(encoded), aliases})
	return buf.Bytes(), err
}

package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"sync"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// ColorScheme holds the CSS colors used by the HTML and PDF output.
type ColorScheme struct {
	Primary   template.CSS
	Secondary template.CSS
	Text      template.CSS
	Accent    template.CSS
}

// Named color schemes
const (
	SchemeProfessional = "professional"
	SchemeModern       = "modern"
	SchemeClassic      = "classic"
)

var colorSchemes = map[string]ColorScheme{
	SchemeProfessional: {Primary: "#00008b", Secondary: "#808080", Text: "#000000", Accent: "#0000ff"},
	SchemeModern:       {Primary: "#000000", Secondary: "#808080", Text: "#000000", Accent: "#00008b"},
	SchemeClassic:      {Primary: "#000000", Secondary: "#000000", Text: "#000000", Accent: "#000000"},
}

// LookupColorScheme returns the named scheme, or the professional scheme for unknown names.
func LookupColorScheme(name string) (ColorScheme, bool) {
	scheme, ok := colorSchemes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return colorSchemes[SchemeProfessional], false
	}
	return scheme, true
}

type htmlPage struct {
	Title  string
	Class  string
	Colors ColorScheme
	Blocks []Block
}

var (
	htmlOnce sync.Once
	htmlTmpl *template.Template
	htmlErr  error
)

func htmlTemplate() (*template.Template, error) {
	htmlOnce.Do(func() {
		htmlTmpl, htmlErr = template.New("document.html.tmpl").Funcs(template.FuncMap{
			"breaks": func(s string) template.HTML {
				return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>\n")) //nolint:gosec // input is escaped first
			},
		}).ParseFS(templateFiles, "templates/document.html.tmpl")
	})
	if htmlErr != nil {
		return nil, &TemplateError{Message: "failed to parse HTML template", Cause: htmlErr}
	}
	return htmlTmpl, nil
}

// RenderHTML writes blocks as a standalone HTML page styled with colors.
// class is set on the body element ("resume" or "letter").
func RenderHTML(blocks []Block, colors ColorScheme, class string) ([]byte, error) {
	tmpl, err := htmlTemplate()
	if err != nil {
		return nil, err
	}

	page := htmlPage{Class: class, Colors: colors, Blocks: blocks}
	if len(blocks) > 0 {
		page.Title = blocks[0].Text
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return nil, &TemplateError{Message: "failed to execute HTML template", Cause: err}
	}
	return buf.Bytes(), nil
}

package rendering

import (
	"strings"
	"sync"
	"text/template"
)

// texBlock groups consecutive bullets into one itemize list.
type texBlock struct {
	Kind  string
	Text  string
	Items []string
}

type texDocument struct {
	Margin string
	Blocks []texBlock
}

var (
	texOnce sync.Once
	texTmpl *template.Template
	texErr  error
)

func latexTemplate() (*template.Template, error) {
	texOnce.Do(func() {
		texTmpl, texErr = template.New("document.tex.tmpl").Funcs(template.FuncMap{
			"escape": EscapeLaTeX,
			"lines": func(s string) string {
				parts := strings.Split(s, "\n")
				for i, p := range parts {
					parts[i] = EscapeLaTeX(p)
				}
				return strings.Join(parts, "\\\\\n")
			},
		}).ParseFS(templateFiles, "templates/document.tex.tmpl")
	})
	if texErr != nil {
		return nil, &TemplateError{Message: "failed to parse LaTeX template", Cause: texErr}
	}
	return texTmpl, nil
}

// RenderLaTeX writes blocks as a LaTeX source document with the given page margin in inches.
func RenderLaTeX(blocks []Block, margin string) ([]byte, error) {
	tmpl, err := latexTemplate()
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, texDocument{Margin: margin, Blocks: groupBullets(blocks)}); err != nil {
		return nil, &TemplateError{Message: "failed to execute LaTeX template", Cause: err}
	}
	return []byte(buf.String()), nil
}

func groupBullets(blocks []Block) []texBlock {
	var result []texBlock
	for _, b := range blocks {
		if b.Kind != BlockBullet {
			result = append(result, texBlock{Kind: string(b.Kind), Text: b.Text})
			continue
		}
		item := strings.TrimSpace(strings.TrimPrefix(b.Text, bulletMarker))
		if n := len(result); n > 0 && result[n-1].Kind == "list" {
			result[n-1].Items = append(result[n-1].Items, item)
			continue
		}
		result = append(result, texBlock{Kind: "list", Items: []string{item}})
	}
	return result
}

// EscapeLaTeX escapes special LaTeX characters in text
// Special characters: \ { } $ & % # ^ _ ~ and the bullet sign
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{', '}', '$', '&', '%', '#', '_':
			result.WriteByte('\\')
			result.WriteRune(r)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		case '•':
			result.WriteString(`\textbullet{}`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

package rendering

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/jonathan/resume-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
}

func testDocument() *types.CanonicalDocument {
	return &types.CanonicalDocument{
		Name:       "John Doe",
		Contact:    "john@example.com | 555-0100",
		Summary:    "Backend developer focused on reliability.",
		Skills:     "Go\nPostgreSQL",
		Experience: "Senior Engineer at Acme\nBuilt payment APIs",
		Education:  "BS Computer Science",
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"", FormatPDF},
		{"PDF", FormatPDF},
		{"html", FormatHTML},
		{"latex", FormatLaTeX},
		{"tex", FormatLaTeX},
		{"txt", FormatText},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormat_ContentTypeAndExtension(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "text/html; charset=utf-8", FormatHTML.ContentType())
	assert.Equal(t, "txt", FormatText.Extension())
	assert.Equal(t, "tex", FormatLaTeX.Extension())
}

func TestRenderer_RenderText(t *testing.T) {
	r := New(Options{Now: fixedNow})

	out, err := r.Render(context.Background(), testDocument(), nil, FormatText)
	require.NoError(t, err)

	expected := `John Doe
john@example.com | 555-0100

PROFESSIONAL SUMMARY
Backend developer focused on reliability.

TECHNICAL SKILLS
• Go
• PostgreSQL

PROFESSIONAL EXPERIENCE
Senior Engineer at Acme
• Built payment APIs

EDUCATION
BS Computer Science
`
	assert.Equal(t, expected, string(out))
}

func TestRenderer_RenderCoverLetterText(t *testing.T) {
	r := New(Options{Now: fixedNow})
	profile := &types.Profile{Name: "John Doe", Email: "john@example.com"}

	out, err := r.RenderCoverLetter(context.Background(), "Dear Hiring Manager,\n\nHello.\n\nSincerely,\nJohn Doe", profile, FormatText)
	require.NoError(t, err)

	expected := `John Doe
john@example.com

January 15, 2024

Dear Hiring Manager,

Hello.

Sincerely,
John Doe
`
	assert.Equal(t, expected, string(out))
}

func TestRenderer_RenderHTMLAndLaTeX(t *testing.T) {
	r := New(Options{ColorScheme: SchemeModern, Now: fixedNow})

	html, err := r.Render(context.Background(), testDocument(), nil, FormatHTML)
	require.NoError(t, err)
	doc := parseHTML(t, html)
	assert.Equal(t, 4, doc.Find("h2").Length())
	assert.Equal(t, "Senior Engineer at Acme", doc.Find("p.job-title").Text())

	tex, err := r.Render(context.Background(), testDocument(), nil, FormatLaTeX)
	require.NoError(t, err)
	assert.Contains(t, string(tex), `\section*{EDUCATION}`)

	letter, err := r.RenderCoverLetter(context.Background(), "Hello.", nil, FormatLaTeX)
	require.NoError(t, err)
	assert.Contains(t, string(letter), "margin=1.00in")
}

func TestRenderer_UnsupportedFormat(t *testing.T) {
	r := New(Options{})

	_, err := r.Render(context.Background(), testDocument(), nil, Format("docx"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestRenderer_RenderPDF(t *testing.T) {
	chrome := ""
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if path, err := exec.LookPath(name); err == nil {
			chrome = path
			break
		}
	}
	if chrome == "" {
		t.Skip("no Chrome/Chromium binary found")
	}

	r := New(Options{ChromePath: chrome, PDFTimeout: time.Minute, Now: fixedNow})

	pdf, err := r.Render(context.Background(), testDocument(), nil, FormatPDF)
	require.NoError(t, err)
	assert.True(t, len(pdf) > 4 && string(pdf[:4]) == "%PDF")
}

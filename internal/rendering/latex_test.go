package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain", "Go developer", "Go developer"},
		{"ampersand", "R&D", `R\&D`},
		{"percent", "30%", `30\%`},
		{"dollar", "$5M", `\$5M`},
		{"hash and underscore", "#1 snake_case", `\#1 snake\_case`},
		{"braces", "{x}", `\{x\}`},
		{"backslash", `a\b`, `a\textbackslash{}b`},
		{"caret and tilde", "^~", `\textasciicircum{}\textasciitilde{}`},
		{"bullet", "• item", `\textbullet{} item`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeLaTeX(tt.input))
		})
	}
}

func TestRenderLaTeX(t *testing.T) {
	blocks := []Block{
		{Kind: BlockTitle, Text: "John Doe"},
		{Kind: BlockContact, Text: "john@example.com | 555-0100"},
		{Kind: BlockSectionHeader, Text: "TECHNICAL SKILLS"},
		{Kind: BlockBullet, Text: "• Go"},
		{Kind: BlockBullet, Text: "• C & C++"},
		{Kind: BlockSectionHeader, Text: "PROFESSIONAL EXPERIENCE"},
		{Kind: BlockJobTitle, Text: "Engineer at R&D Labs"},
		{Kind: BlockBullet, Text: "• Cut latency 40%"},
		{Kind: BlockBody, Text: "line one\nline two"},
	}

	out, err := RenderLaTeX(blocks, "0.75")
	require.NoError(t, err)
	tex := string(out)

	assert.True(t, strings.HasPrefix(tex, `\documentclass[10pt]{article}`))
	assert.Contains(t, tex, `margin=0.75in`)
	assert.Contains(t, tex, `{\LARGE\bfseries John Doe }`)
	assert.Contains(t, tex, `\section*{TECHNICAL SKILLS}`)
	assert.Contains(t, tex, "\\item Go\n\\item C \\& C++")
	assert.Contains(t, tex, `\textbf{Engineer at R\&D Labs}`)
	assert.Contains(t, tex, `\item Cut latency 40\%`)
	assert.Contains(t, tex, "line one\\\\\nline two")
	assert.Equal(t, 2, strings.Count(tex, `\begin{itemize}`))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(tex), `\end{document}`))
}

func TestGroupBullets(t *testing.T) {
	grouped := groupBullets([]Block{
		{Kind: BlockBullet, Text: "• a"},
		{Kind: BlockBullet, Text: "• b"},
		{Kind: BlockBody, Text: "c"},
		{Kind: BlockBullet, Text: "• d"},
	})

	require.Len(t, grouped, 3)
	assert.Equal(t, []string{"a", "b"}, grouped[0].Items)
	assert.Equal(t, "body", grouped[1].Kind)
	assert.Equal(t, []string{"d"}, grouped[2].Items)
}

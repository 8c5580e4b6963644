package rendering

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, data []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	return doc
}

func TestRenderHTML_Structure(t *testing.T) {
	blocks := []Block{
		{Kind: BlockTitle, Text: "John Doe"},
		{Kind: BlockContact, Text: "john@example.com"},
		{Kind: BlockSectionHeader, Text: "PROFESSIONAL EXPERIENCE"},
		{Kind: BlockJobTitle, Text: "Engineer | Acme"},
		{Kind: BlockBullet, Text: "• Built <fast> APIs"},
		{Kind: BlockBody, Text: "first\nsecond"},
	}

	out, err := RenderHTML(blocks, colorSchemes[SchemeProfessional], "resume")
	require.NoError(t, err)
	doc := parseHTML(t, out)

	assert.Equal(t, "John Doe", doc.Find("title").Text())
	assert.Equal(t, "John Doe", doc.Find("h1").Text())
	assert.Equal(t, "john@example.com", doc.Find("p.contact").Text())
	assert.Equal(t, "PROFESSIONAL EXPERIENCE", doc.Find("h2").Text())
	assert.Equal(t, "Engineer | Acme", doc.Find("p.job-title").Text())
	assert.Equal(t, "• Built <fast> APIs", doc.Find("p.bullet").Text())
	assert.Equal(t, 1, doc.Find("p.body br").Length())
	assert.True(t, doc.Find("body").HasClass("resume"))
	assert.Contains(t, string(out), "#00008b")
	assert.NotContains(t, string(out), "<fast>")
}

func TestLookupColorScheme(t *testing.T) {
	scheme, ok := LookupColorScheme("Modern")
	assert.True(t, ok)
	assert.Equal(t, colorSchemes[SchemeModern], scheme)

	scheme, ok = LookupColorScheme("neon")
	assert.False(t, ok)
	assert.Equal(t, colorSchemes[SchemeProfessional], scheme)
}

func TestRenderHTML_ClassicSchemeIsMonochrome(t *testing.T) {
	out, err := RenderHTML([]Block{{Kind: BlockTitle, Text: "A"}}, colorSchemes[SchemeClassic], "letter")
	require.NoError(t, err)

	assert.NotContains(t, string(out), "#00008b")
	assert.True(t, parseHTML(t, out).Find("body").HasClass("letter"))
}

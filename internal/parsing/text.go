package parsing

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	tagPattern    = regexp.MustCompile(`<\s*/?\s*[a-zA-Z][a-zA-Z0-9]*[^>]*>`)
	spacePattern  = regexp.MustCompile(`[ \t]+`)
	blankPattern  = regexp.MustCompile(`\n{3,}`)
	blockElements = "p, div, li, h1, h2, h3, h4, h5, h6, tr, section, article, ul, ol"
)

// PlainText reduces a pasted job description to plain text. HTML markup is
// parsed with goquery; plain text only has its whitespace normalized.
func PlainText(input string) (string, error) {
	if !tagPattern.MatchString(input) {
		return CleanText(input), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return "", &ParseError{Message: "failed to parse HTML job description", Cause: err}
	}

	doc.Find("script, style, noscript, nav, footer, header, iframe").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("• ")
	doc.Find(blockElements).AppendHtml("\n")

	return CleanText(doc.Find("body").Text()), nil
}

// CleanText normalizes line endings, collapses runs of spaces within lines and
// limits consecutive blank lines to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	lines := splitLines(content)
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spacePattern.ReplaceAllString(line, " "))
	}

	result := strings.Join(lines, "\n")
	result = blankPattern.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

package rendering

import "strings"

// RenderText writes blocks as plain text with a blank line before each heading.
// With spaced set, body blocks are also separated by blank lines, as in a letter.
func RenderText(blocks []Block, spaced bool) []byte {
	var sb strings.Builder
	for _, b := range blocks {
		switch {
		case b.Kind == BlockSectionHeader, b.Kind == BlockDate:
			sb.WriteString("\n")
		case b.Kind == BlockBody && spaced:
			sb.WriteString("\n")
		}
		sb.WriteString(b.Text)
		sb.WriteString("\n")
	}
	return []byte(strings.TrimSpace(sb.String()) + "\n")
}

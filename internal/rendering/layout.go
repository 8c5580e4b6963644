package rendering

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-assistant/internal/types"
)

// BlockKind identifies the visual style of a layout block.
type BlockKind string

// Block kinds
const (
	BlockTitle         BlockKind = "title"
	BlockContact       BlockKind = "contact"
	BlockDate          BlockKind = "date"
	BlockSectionHeader BlockKind = "section_header"
	BlockJobTitle      BlockKind = "job_title"
	BlockBullet        BlockKind = "bullet"
	BlockBody          BlockKind = "body"
)

// Block is one styled paragraph of a rendered document.
type Block struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text"`
}

// bulletMarker prefixes every bullet block.
const bulletMarker = "• "

// minSectionLength is the trimmed length a section must exceed to be rendered.
const minSectionLength = 5

// sectionTitles are the headings printed above each body section.
var sectionTitles = map[types.Section]string{
	types.SectionSummary:    "PROFESSIONAL SUMMARY",
	types.SectionSkills:     "TECHNICAL SKILLS",
	types.SectionExperience: "PROFESSIONAL EXPERIENCE",
	types.SectionEducation:  "EDUCATION",
	types.SectionAdditional: "ADDITIONAL QUALIFICATIONS",
}

// roleKeywords mark the first line of an experience paragraph as a job heading.
var roleKeywords = []string{"DEVELOPER", "ENGINEER", "ANALYST", "MANAGER"}

// Layout arranges a resume into blocks: title, contact, then each section with
// enough content, in the order summary, skills, experience, education, additional.
func Layout(doc *types.CanonicalDocument, profile *types.Profile) []Block {
	if doc == nil {
		doc = &types.CanonicalDocument{}
	}

	blocks := headerBlocks(doc.Name, doc.Contact, profile)

	for _, section := range types.BodySections() {
		content := strings.TrimSpace(doc.Get(section))
		if utf8.RuneCountInString(content) <= minSectionLength {
			continue
		}

		blocks = append(blocks, Block{Kind: BlockSectionHeader, Text: sectionTitles[section]})
		switch section {
		case types.SectionSkills:
			blocks = append(blocks, skillBlocks(content)...)
		case types.SectionExperience:
			blocks = append(blocks, experienceBlocks(content)...)
		default:
			blocks = append(blocks, paragraphBlocks(content)...)
		}
	}

	return blocks
}

// CoverLetterLayout arranges a letter as title, contact, date and one body block per paragraph.
func CoverLetterLayout(text string, profile *types.Profile, date time.Time) []Block {
	blocks := headerBlocks("", "", profile)
	blocks = append(blocks, Block{Kind: BlockDate, Text: date.Format("January 2, 2006")})

	for _, paragraph := range paragraphs(text) {
		blocks = append(blocks, Block{Kind: BlockBody, Text: strings.Join(paragraph, "\n")})
	}
	return blocks
}

func headerBlocks(name, contact string, profile *types.Profile) []Block {
	name = strings.TrimSpace(name)
	if name == "" && profile != nil {
		name = strings.TrimSpace(profile.Name)
	}
	if name == "" {
		name = "Your Name"
	}

	contact = strings.TrimSpace(contact)
	if contact == "" {
		contact = profile.ContactLine()
	}

	blocks := []Block{{Kind: BlockTitle, Text: name}}
	if contact != "" {
		blocks = append(blocks, Block{Kind: BlockContact, Text: contact})
	}
	return blocks
}

func skillBlocks(content string) []Block {
	var blocks []Block
	for _, line := range nonEmptyLines(content) {
		blocks = append(blocks, Block{Kind: BlockBullet, Text: asBullet(line)})
	}
	return blocks
}

func experienceBlocks(content string) []Block {
	var blocks []Block
	for _, paragraph := range paragraphs(content) {
		if !isJobHeading(paragraph[0]) {
			blocks = append(blocks, lineBlocks(paragraph)...)
			continue
		}
		blocks = append(blocks, Block{Kind: BlockJobTitle, Text: stripBullet(paragraph[0])})
		for _, line := range paragraph[1:] {
			blocks = append(blocks, Block{Kind: BlockBullet, Text: asBullet(line)})
		}
	}
	return blocks
}

func paragraphBlocks(content string) []Block {
	var blocks []Block
	for _, paragraph := range paragraphs(content) {
		blocks = append(blocks, lineBlocks(paragraph)...)
	}
	return blocks
}

// lineBlocks keeps bulleted lines as bullets and everything else as body text.
func lineBlocks(lines []string) []Block {
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		if isBulleted(line) {
			blocks = append(blocks, Block{Kind: BlockBullet, Text: asBullet(line)})
			continue
		}
		blocks = append(blocks, Block{Kind: BlockBody, Text: line})
	}
	return blocks
}

func isJobHeading(line string) bool {
	if strings.Contains(line, "|") {
		return true
	}
	upper := strings.ToUpper(line)
	for _, keyword := range roleKeywords {
		if strings.Contains(upper, keyword) {
			return true
		}
	}
	return false
}

func isBulleted(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ")
}

func stripBullet(line string) string {
	for _, prefix := range []string{"•", "- ", "* "} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return line
}

func asBullet(line string) string {
	return bulletMarker + stripBullet(line)
}

// paragraphs splits text on blank lines into groups of trimmed, non-empty lines.
func paragraphs(text string) [][]string {
	var (
		result  [][]string
		current []string
	)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current) > 0 {
				result = append(result, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		result = append(result, current)
	}
	return result
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, paragraph := range paragraphs(text) {
		lines = append(lines, paragraph...)
	}
	return lines
}

// Package parsing turns free-form generated text into a CanonicalDocument.
package parsing

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/resume-assistant/internal/types"
)

// bulletArtifact is a UTF-8 bullet that was decoded as Windows-1252 somewhere upstream.
const bulletArtifact = "â€¢"

// HeaderLabel maps a heading keyword to the section it opens.
type HeaderLabel struct {
	Label   string
	Section types.Section
}

// DefaultHeaders returns the recognized headings in match order.
// Longer labels come first so the more specific heading wins.
func DefaultHeaders() []HeaderLabel {
	return []HeaderLabel{
		{Label: "PROFESSIONAL SUMMARY", Section: types.SectionSummary},
		{Label: "TECHNICAL SKILLS", Section: types.SectionSkills},
		{Label: "SKILLS", Section: types.SectionSkills},
		{Label: "PROFESSIONAL EXPERIENCE", Section: types.SectionExperience},
		{Label: "EXPERIENCE", Section: types.SectionExperience},
		{Label: "EDUCATION", Section: types.SectionEducation},
		{Label: "ADDITIONAL QUALIFICATIONS", Section: types.SectionAdditional},
	}
}

// Normalizer splits raw text into document sections using a fixed set of heading labels.
// It never fails: malformed input degrades to a document built from the profile.
type Normalizer struct {
	headers []HeaderLabel
	logger  *slog.Logger
}

// NewNormalizer creates a Normalizer. A nil or empty header list uses DefaultHeaders.
func NewNormalizer(headers []HeaderLabel, logger *slog.Logger) *Normalizer {
	if len(headers) == 0 {
		headers = DefaultHeaders()
	}
	if logger == nil {
		logger = slog.Default()
	}
	upper := make([]HeaderLabel, len(headers))
	for i, h := range headers {
		upper[i] = HeaderLabel{Label: strings.ToUpper(h.Label), Section: h.Section}
	}
	return &Normalizer{headers: upper, logger: logger}
}

// Normalize classifies each line of raw as a heading, the name, the contact line,
// section body or overflow, and fills missing name and contact from profile.
func (n *Normalizer) Normalize(raw string, profile *types.Profile) (doc *types.CanonicalDocument) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("normalizer recovered from panic", "panic", fmt.Sprint(r))
			doc = FromProfile(profile)
		}
	}()

	doc = &types.CanonicalDocument{}
	var (
		current types.Section
		acc     []string
		named   bool
		seen    int
	)

	flush := func() {
		if current != "" && len(acc) > 0 {
			doc.Append(current, strings.Join(acc, "\n"))
		}
		acc = nil
	}

	for _, line := range splitLines(raw) {
		line = strings.TrimSpace(strings.ReplaceAll(line, bulletArtifact, ""))
		if isNoise(line) {
			continue
		}
		seen++

		if section, ok := n.matchHeader(line); ok {
			flush()
			current = section
			continue
		}

		if !named && !strings.Contains(line, "@") && !strings.Contains(strings.ToLower(line), "http") {
			doc.Name = line
			named = true
			continue
		}

		if isContact(line) {
			doc.Contact = cleanContact(line)
			continue
		}

		if current != "" {
			acc = append(acc, line)
			continue
		}
		doc.Append(types.SectionAdditional, line)
	}
	flush()

	if seen == 0 {
		return FromProfile(profile)
	}

	if doc.Name == "" && profile != nil {
		doc.Name = strings.TrimSpace(profile.Name)
	}
	if doc.Contact == "" {
		doc.Contact = profile.ContactLine()
	}
	return doc
}

// Format serializes doc as heading-delimited text that Normalize maps back to the same sections.
// Overflow text is written between the contact line and the first heading.
func (n *Normalizer) Format(doc *types.CanonicalDocument) string {
	if doc == nil {
		return ""
	}

	var sb strings.Builder
	writeLines := func(text string) {
		for _, line := range splitLines(text) {
			if strings.TrimSpace(line) != "" {
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
	}

	writeLines(doc.Name)
	writeLines(doc.Contact)
	writeLines(doc.Additional)

	for _, section := range []types.Section{
		types.SectionSummary, types.SectionSkills, types.SectionExperience, types.SectionEducation,
	} {
		body := strings.TrimSpace(doc.Get(section))
		label := n.labelFor(section)
		if body == "" || label == "" {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(label)
		sb.WriteString("\n")
		writeLines(body)
	}

	return strings.TrimSpace(sb.String())
}

// FromProfile builds the minimal document used when raw text yields nothing usable.
func FromProfile(profile *types.Profile) *types.CanonicalDocument {
	if profile == nil {
		return &types.CanonicalDocument{}
	}
	return &types.CanonicalDocument{
		Name:       strings.TrimSpace(profile.Name),
		Contact:    profile.ContactLine(),
		Summary:    strings.TrimSpace(profile.CurrentTitle),
		Skills:     strings.TrimSpace(profile.Skills),
		Experience: strings.TrimSpace(profile.Experience),
		Education:  strings.TrimSpace(profile.Education),
	}
}

// matchHeader returns the section of the first label contained in line, ignoring case.
func (n *Normalizer) matchHeader(line string) (types.Section, bool) {
	upper := strings.ToUpper(line)
	for _, h := range n.headers {
		if strings.Contains(upper, h.Label) {
			return h.Section, true
		}
	}
	return "", false
}

// labelFor returns the first label that opens section.
func (n *Normalizer) labelFor(section types.Section) string {
	for _, h := range n.headers {
		if h.Section == section {
			return h.Label
		}
	}
	return ""
}

// isNoise reports whether a trimmed line is empty, only braces, or a pipe separator row.
func isNoise(line string) bool {
	if line == "" {
		return true
	}
	for _, r := range line {
		switch r {
		case '{', '}', '|', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

func isContact(line string) bool {
	return strings.Contains(line, "@") ||
		strings.Contains(line, "|") ||
		strings.Contains(line, "Phone") ||
		strings.Contains(line, "Email")
}

// cleanContact drops bullet characters and collapses the spacing they leave behind.
func cleanContact(line string) string {
	line = strings.ReplaceAll(line, "•", "")
	return strings.Join(strings.Fields(line), " ")
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

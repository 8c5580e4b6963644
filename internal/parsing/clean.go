package parsing

import (
	"strings"
)

// trailingTriggers mark commentary a completion model appends after the document body.
var trailingTriggers = []string{
	"this code",
	"note that",
	"note:",
	"recommended to use",
	"simple implementation",
	"the above is",
	"the above resume",
	"i hope this",
}

// closingPhrases end a cover letter; the line after one of them is the signature.
var closingPhrases = []string{"Sincerely,", "Best regards,", "Yours truly,", "Kind regards,"}

// codeMarkers identify fenced blocks that hold program text rather than prose.
var codeMarkers = []string{"def ", "print(", "class ", "func ", "return ", "import "}

// CleanResume strips conversational wrapping and markup from a generated resume.
// name anchors the start of the document when the model opens with a preamble.
func CleanResume(raw, name string) string {
	text := strings.TrimSpace(raw)
	text = stripCommentWrapper(text)
	text = pickFencedBlock(text, func(block string) bool { return !looksLikeCode(block) })
	text = cutPreamble(text, func(line string) bool {
		return strings.HasPrefix(line, "**") ||
			(name != "" && strings.HasPrefix(strings.ToLower(line), strings.ToLower(name))) ||
			strings.Contains(line, "Dear")
	})
	text = cutTrailing(text)
	text = stripMarkup(text)
	text = strings.NewReplacer("{", "", "}", "").Replace(text)
	return strings.TrimSpace(text)
}

// CleanCoverLetter strips wrapping from a generated cover letter and drops
// everything after the closing phrase and signature line.
func CleanCoverLetter(raw string) string {
	text := strings.TrimSpace(raw)
	text = stripCommentWrapper(text)
	text = pickFencedBlock(text, func(block string) bool {
		return strings.HasPrefix(block, "Dear") || strings.Contains(block, "Hiring Manager")
	})
	text = cutPreamble(text, func(line string) bool { return strings.HasPrefix(line, "Dear") })

	lines := splitLines(text)
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && len(trimmed) < 80 {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}

	return strings.TrimSpace(strings.Join(cutAfterSignature(kept), "\n"))
}

func stripCommentWrapper(text string) string {
	if strings.HasPrefix(text, "/*") {
		text = strings.TrimSpace(text[2:])
	}
	if strings.HasSuffix(text, "*/") {
		text = strings.TrimSpace(text[:len(text)-2])
	}
	return text
}

// pickFencedBlock returns the first fenced block accepted by keep, with any
// language tag removed. Text without fences is returned unchanged.
func pickFencedBlock(text string, keep func(string) bool) string {
	if !strings.Contains(text, "```") {
		return text
	}
	parts := strings.Split(text, "```")
	// Odd-numbered parts sit inside a fence.
	for i := 1; i < len(parts); i += 2 {
		block := strings.TrimSpace(dropLanguageTag(parts[i]))
		if block != "" && keep(block) {
			return block
		}
	}
	return strings.TrimSpace(strings.ReplaceAll(text, "```", ""))
}

// dropLanguageTag removes a leading identifier such as "markdown" or "text" from a fenced block.
func dropLanguageTag(block string) string {
	idx := strings.Index(block, "\n")
	if idx < 0 {
		return block
	}
	first := strings.TrimSpace(block[:idx])
	if first != "" && len(first) < 20 && !strings.ContainsAny(first, " {:") {
		return block[idx+1:]
	}
	return block
}

func looksLikeCode(block string) bool {
	for _, marker := range codeMarkers {
		if strings.Contains(block, marker) {
			return true
		}
	}
	return false
}

// cutPreamble drops lines before the first anchor line. Text with no anchor is returned unchanged.
func cutPreamble(text string, anchor func(string) bool) string {
	lines := splitLines(text)
	for i, line := range lines {
		if anchor(strings.TrimSpace(line)) {
			return strings.Join(lines[i:], "\n")
		}
	}
	return text
}

// cutTrailing drops the first line containing a trailing trigger and everything after it.
func cutTrailing(text string) string {
	lines := splitLines(text)
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, trigger := range trailingTriggers {
			if strings.Contains(lower, trigger) {
				return strings.Join(lines[:i], "\n")
			}
		}
	}
	return text
}

// stripMarkup removes markdown heading and emphasis markers, keeping the text.
func stripMarkup(text string) string {
	lines := splitLines(text)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		trimmed = strings.ReplaceAll(trimmed, "**", "")
		trimmed = strings.ReplaceAll(trimmed, "__", "")
		lines[i] = trimmed
	}
	return strings.Join(lines, "\n")
}

// cutAfterSignature keeps lines up to the first closing phrase plus the next non-empty line.
func cutAfterSignature(lines []string) []string {
	for i, line := range lines {
		if !hasClosingPhrase(strings.TrimSpace(line)) {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) != "" {
				return lines[:j+1]
			}
		}
		return lines
	}
	return lines
}

func hasClosingPhrase(line string) bool {
	for _, phrase := range closingPhrases {
		if strings.HasPrefix(line, phrase) {
			return true
		}
	}
	return false
}

// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxSectionLines is the number of lines shown per document section
	maxSectionLines = 3
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintProfile outputs a summary of the saved profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Contact:  %s\n", profile.ContactLine()))
	if profile.CurrentTitle != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", profile.CurrentTitle))
	}
	if profile.LinkedIn != "" {
		sb.WriteString(fmt.Sprintf("LinkedIn: %s\n", profile.LinkedIn))
	}
	if profile.Skills != "" {
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", profile.Skills))
	}
	if profile.UpdatedAt != "" {
		sb.WriteString(fmt.Sprintf("Updated:  %s\n", profile.UpdatedAt))
	}

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocument outputs the first lines of each non-empty section of a resume.
func (p *Printer) PrintDocument(doc *types.CanonicalDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.Name))
	sb.WriteString(fmt.Sprintf("Contact:  %s\n", doc.Contact))

	for _, section := range types.BodySections() {
		text := strings.TrimSpace(doc.Get(section))
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		sb.WriteString(fmt.Sprintf("\n%s (%d lines):\n", strings.ToUpper(string(section)), len(lines)))
		count := min(len(lines), maxSectionLines)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %s\n", strings.TrimSpace(lines[i])))
		}
		if len(lines) > maxSectionLines {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(lines)-maxSectionLines))
		}
	}

	p.printBox("RESUME DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGeneration outputs how a document was produced.
func (p *Printer) PrintGeneration(source, fallbackReason, warning string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:   %s", source))
	if fallbackReason != "" {
		sb.WriteString(fmt.Sprintf("\nFallback: %s", fallbackReason))
	}
	if warning != "" {
		sb.WriteString(fmt.Sprintf("\n⚠ %s", warning))
	}
	p.printBox("GENERATION", sb.String())
}

// PrintApplications outputs tracked applications, most recent last.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintApplications(entries []types.ApplicationEntry) {
	if len(entries) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "No applications tracked yet")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("#%d  %s | %s\n", e.Index, e.CompanyName, e.PositionTitle))
		sb.WriteString(fmt.Sprintf("    Status: %s", e.EffectiveStatus()))
		if date := dateOnly(e.ApplicationDate); date != "" {
			sb.WriteString(fmt.Sprintf("  Applied: %s", date))
		}
		sb.WriteString("\n")
		if len(e.DocumentsGenerated) > 0 {
			sb.WriteString(fmt.Sprintf("    Documents: %s\n", strings.Join(e.DocumentsGenerated, ", ")))
		}
		if i < len(entries)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("APPLICATIONS (%d)", len(entries)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStats outputs application counts per status.
func (p *Printer) PrintStats(stats types.ApplicationStats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total:      %d\n\n", stats.Total))
	for _, row := range []struct {
		status types.Status
		count  int
	}{
		{types.StatusPending, stats.Pending},
		{types.StatusInterview, stats.Interview},
		{types.StatusRejected, stats.Rejected},
		{types.StatusOffered, stats.Offered},
		{types.StatusAccepted, stats.Accepted},
	} {
		sb.WriteString(fmt.Sprintf("%-11s %d\n", string(row.status)+":", row.count))
	}
	p.printBox("APPLICATION STATS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestions outputs numbered interview questions.
func (p *Printer) PrintQuestions(position string, questions []string) {
	if len(questions) == 0 {
		return
	}

	var sb strings.Builder
	for i, q := range questions {
		sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, q))
	}
	p.printBox("INTERVIEW QUESTIONS: "+strings.ToUpper(position), strings.TrimSuffix(sb.String(), "\n"))
}

// dateOnly returns the date part of an RFC 3339 timestamp, or the input unchanged.
func dateOnly(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i == len("2006-01-02") {
		return ts[:i]
	}
	return ts
}

// Package rendering lays out resumes and cover letters and writes them as PDF, HTML, LaTeX or text.
package rendering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-assistant/internal/types"
)

// Format is an output document format.
type Format string

// Output formats
const (
	FormatPDF   Format = "pdf"
	FormatHTML  Format = "html"
	FormatLaTeX Format = "tex"
	FormatText  Format = "text"
)

// ParseFormat accepts a format name or common alias. Empty input means PDF.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "pdf":
		return FormatPDF, nil
	case "html", "htm":
		return FormatHTML, nil
	case "tex", "latex":
		return FormatLaTeX, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatLaTeX:
		return "application/x-tex"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Page margins in inches
const (
	resumeMargin = 0.75
	letterMargin = 1.0
)

// Options configures a Renderer.
type Options struct {
	ColorScheme string
	ChromePath  string
	PDFTimeout  time.Duration
	Now         func() time.Time
}

// Renderer turns canonical documents and letter text into downloadable documents.
type Renderer struct {
	colors ColorScheme
	pdf    *PDFPrinter
	now    func() time.Time
}

// New creates a Renderer. Unknown color schemes fall back to the professional scheme.
func New(opts Options) *Renderer {
	colors, _ := LookupColorScheme(opts.ColorScheme)
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Renderer{
		colors: colors,
		pdf:    NewPDFPrinter(opts.ChromePath, opts.PDFTimeout),
		now:    now,
	}
}

// Render writes a resume in the requested format.
func (r *Renderer) Render(ctx context.Context, doc *types.CanonicalDocument, profile *types.Profile, format Format) ([]byte, error) {
	return r.write(ctx, Layout(doc, profile), format, "resume", resumeMargin)
}

// RenderCoverLetter writes a letter, split into paragraphs on blank lines, in the requested format.
func (r *Renderer) RenderCoverLetter(ctx context.Context, text string, profile *types.Profile, format Format) ([]byte, error) {
	return r.write(ctx, CoverLetterLayout(text, profile, r.now()), format, "letter", letterMargin)
}

func (r *Renderer) write(ctx context.Context, blocks []Block, format Format, class string, margin float64) ([]byte, error) {
	switch format {
	case FormatText:
		return RenderText(blocks, class == "letter"), nil
	case FormatLaTeX:
		return RenderLaTeX(blocks, fmt.Sprintf("%.2f", margin))
	case FormatHTML:
		return RenderHTML(blocks, r.colors, class)
	case FormatPDF:
		html, err := RenderHTML(blocks, r.colors, class)
		if err != nil {
			return nil, err
		}
		return r.pdf.Print(ctx, html, margin)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-assistant/internal/assistant"
	"github.com/jonathan/resume-assistant/internal/rendering"
	"github.com/jonathan/resume-assistant/internal/types"
	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Generate a resume tailored to a job description",
	Long: `Generate a resume from the saved profile tailored to a job description and record
the application. Without --out the resume text is printed; with --out it is rendered
in the format given by --format or the file extension (pdf, html, tex, txt).`,
	Args: cobra.NoArgs,
	RunE: runResume,
}

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Generate a cover letter for a company and position",
	Args:  cobra.NoArgs,
	RunE:  runCoverLetter,
}

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Suggest interview questions for a position",
	Args:  cobra.NoArgs,
	RunE:  runQuestions,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render existing resume or cover letter text to a document",
	Long: `Render resume or cover letter text, for example an edited copy of generated output,
to PDF, HTML, LaTeX or plain text. Nothing is recorded in the application tracker.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

var (
	genCompany     string
	genPosition    string
	genDescription string
	genJobFile     string
	genOut         string
	genFormat      string
	questionsJSON  bool
	renderKind     string
	renderIn       string
)

func addJobFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&genCompany, "company", "", "Company name")
	cmd.Flags().StringVar(&genPosition, "position", "", "Position title")
	cmd.Flags().StringVarP(&genDescription, "job-description", "j", "", "Job description text (may be HTML)")
	cmd.Flags().StringVar(&genJobFile, "job-file", "", "Read the job description from a file, or - for stdin")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&genOut, "out", "o", "", "Write a rendered document to this path")
	cmd.Flags().StringVar(&genFormat, "format", "", "Document format: pdf, html, tex or text (default from --out extension)")
}

func init() {
	addJobFlags(resumeCmd)
	addOutputFlags(resumeCmd)

	addJobFlags(coverLetterCmd)
	addOutputFlags(coverLetterCmd)

	addJobFlags(questionsCmd)
	questionsCmd.Flags().BoolVar(&questionsJSON, "json", false, "Print the questions as a JSON array")

	renderCmd.Flags().StringVar(&renderKind, "kind", "resume", "Document kind: resume or cover-letter")
	renderCmd.Flags().StringVarP(&renderIn, "in", "i", "", "Path to the text to render, or - for stdin")
	addOutputFlags(renderCmd)
	_ = renderCmd.MarkFlagRequired("in")
	_ = renderCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(resumeCmd, coverLetterCmd, questionsCmd, renderCmd)
}

func runResume(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat(genOut, genFormat)
	if err != nil {
		return err
	}
	description, err := readInput(cmd, genDescription, genJobFile)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.service.GenerateResume(cmd.Context(), types.ResumeRequest{
		CompanyName:    genCompany,
		PositionTitle:  genPosition,
		JobDescription: description,
	})
	if err != nil {
		return err
	}
	reportGeneration(cmd, a, out)
	if appConfig.Verbose {
		a.printer.PrintDocument(out.Document)
	}

	if genOut == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
		return nil
	}
	doc, err := a.service.RenderResumeDocument(cmd.Context(), out.Document, format)
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}
	return writeDocument(cmd, doc, "resume")
}

func runCoverLetter(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat(genOut, genFormat)
	if err != nil {
		return err
	}
	description, err := readInput(cmd, genDescription, genJobFile)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.service.GenerateCoverLetter(cmd.Context(), types.CoverLetterRequest{
		CompanyName:    genCompany,
		PositionTitle:  genPosition,
		JobDescription: description,
	})
	if err != nil {
		return err
	}
	reportGeneration(cmd, a, out)

	if genOut == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
		return nil
	}
	doc, err := a.service.RenderCoverLetter(cmd.Context(), out.Text, format)
	if err != nil {
		return fmt.Errorf("failed to render cover letter: %w", err)
	}
	return writeDocument(cmd, doc, "cover letter")
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	description, err := readInput(cmd, genDescription, genJobFile)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	questions, err := a.service.InterviewQuestions(cmd.Context(), types.InterviewQuestionsRequest{
		PositionTitle:  genPosition,
		JobDescription: description,
	})
	if err != nil {
		return err
	}

	switch {
	case questionsJSON:
		return writeJSON(cmd, questions)
	case appConfig.Verbose:
		a.printer.PrintQuestions(genPosition, questions)
	default:
		for i, q := range questions {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, q)
		}
	}
	return nil
}

func runRender(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat(genOut, genFormat)
	if err != nil {
		return err
	}
	text, err := readInput(cmd, "", renderIn)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	var doc *assistant.RenderedDocument
	switch strings.ToLower(renderKind) {
	case "resume":
		doc, err = a.service.RenderResume(cmd.Context(), text, format)
	case "cover-letter", "cover_letter", "letter":
		doc, err = a.service.RenderCoverLetter(cmd.Context(), text, format)
	default:
		return fmt.Errorf("unknown --kind %q (want resume or cover-letter)", renderKind)
	}
	if err != nil {
		return err
	}
	return writeDocument(cmd, doc, strings.ReplaceAll(renderKind, "-", " "))
}

// outputFormat resolves the document format from --format, then the --out extension.
// Without either it is PDF.
func outputFormat(outPath, explicit string) (rendering.Format, error) {
	if explicit != "" {
		return rendering.ParseFormat(explicit)
	}
	return rendering.ParseFormat(strings.TrimPrefix(filepath.Ext(outPath), "."))
}

// readInput returns text, or the contents of path when text is empty. A path of "-"
// reads standard input.
func readInput(cmd *cobra.Command, text, path string) (string, error) {
	if text != "" || path == "" {
		return text, nil
	}
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func reportGeneration(cmd *cobra.Command, a *app, out *assistant.GenerationOutput) {
	if out.Warning != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", out.Warning)
	}
	if appConfig.Verbose {
		a.printer.PrintGeneration(string(out.Source), string(out.FallbackReason), out.Warning)
	}
	if out.Application == nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Warning: the application could not be recorded")
	}
}

func writeDocument(cmd *cobra.Command, doc *assistant.RenderedDocument, kind string) error {
	if dir := filepath.Dir(genOut); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(genOut, doc.Data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote %s to %s\n", kind, genOut)
	return nil
}

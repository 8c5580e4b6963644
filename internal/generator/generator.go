// Package generator produces resume and cover letter text, preferring a hosted
// completion model and falling back to deterministic templates built from the profile.
package generator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/resume-assistant/internal/llm"
	"github.com/jonathan/resume-assistant/internal/parsing"
	"github.com/jonathan/resume-assistant/internal/prompts"
	"github.com/jonathan/resume-assistant/internal/types"
)

// DefaultTimeout bounds a single remote completion call.
const DefaultTimeout = 60 * time.Second

var (
	resumeParams = llm.Params{MaxTokens: 1000, Temperature: 0.7, TopP: 0.9}
	letterParams = llm.Params{MaxTokens: 600, Temperature: 0.8, TopP: 0.9}
)

// Completer is the remote text source.
type Completer interface {
	Complete(ctx context.Context, prompt string, params llm.Params) (string, error)
}

// Options configures a Generator.
type Options struct {
	// Timeout bounds each remote call. Zero means DefaultTimeout.
	Timeout time.Duration
	// Normalizer splits resume text into sections. Nil uses the default headings.
	Normalizer *parsing.Normalizer
	Logger     *slog.Logger
}

// Generator selects between the remote text source and the local templates.
type Generator struct {
	client     Completer
	normalizer *parsing.Normalizer
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a Generator. A nil client means every call uses the templates.
func New(client Completer, opts Options) *Generator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Normalizer == nil {
		opts.Normalizer = parsing.NewNormalizer(nil, opts.Logger)
	}
	return &Generator{
		client:     client,
		normalizer: opts.Normalizer,
		timeout:    opts.Timeout,
		logger:     opts.Logger,
	}
}

// Normalizer returns the normalizer used for resume text.
func (g *Generator) Normalizer() *parsing.Normalizer {
	return g.normalizer
}

// Resume produces a tailored resume document for jobDescription.
func (g *Generator) Resume(ctx context.Context, profile *types.Profile, jobDescription string) *Result {
	prompt, err := prompts.Render(prompts.KeyResume, profileData(profile, map[string]string{
		"JobDescription": jobDescription,
	}))
	if err != nil {
		return g.resumeFallback(profile, FallbackRemoteError, err)
	}

	raw, reason, err := g.complete(ctx, prompt, resumeParams)
	if reason != FallbackNone {
		return g.resumeFallback(profile, reason, err)
	}

	cleaned := parsing.CleanResume(raw, nameOf(profile))
	if cleaned == "" {
		return g.resumeFallback(profile, FallbackEmptyResponse, nil)
	}

	doc := g.normalizer.Normalize(cleaned, profile)
	return &Result{
		Text:     g.normalizer.Format(doc),
		Document: doc,
		Source:   SourceRemote,
	}
}

// CoverLetter produces a cover letter for position at company.
func (g *Generator) CoverLetter(ctx context.Context, profile *types.Profile, company, position, jobDescription string) *Result {
	prompt, err := prompts.Render(prompts.KeyCoverLetter, profileData(profile, map[string]string{
		"Company":        company,
		"Position":       position,
		"JobDescription": jobDescription,
	}))
	if err != nil {
		return g.letterFallback(profile, company, position, FallbackRemoteError, err)
	}

	raw, reason, err := g.complete(ctx, prompt, letterParams)
	if reason != FallbackNone {
		return g.letterFallback(profile, company, position, reason, err)
	}

	letter := parsing.CleanCoverLetter(raw)
	if letter == "" {
		return g.letterFallback(profile, company, position, FallbackEmptyResponse, nil)
	}

	return &Result{Text: letter, Source: SourceRemote}
}

// complete runs one remote call under the configured timeout.
func (g *Generator) complete(ctx context.Context, prompt string, params llm.Params) (string, FallbackReason, error) {
	if g.client == nil {
		return "", FallbackNoCredential, nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	raw, err := g.client.Complete(ctx, prompt, params)
	if err != nil {
		return "", FallbackRemoteError, err
	}
	g.logger.Debug("remote completion finished", "duration", time.Since(start), "chars", len(raw))

	if strings.TrimSpace(raw) == "" {
		return "", FallbackEmptyResponse, nil
	}
	return raw, FallbackNone, nil
}

// TemplateResume builds the deterministic resume document from the profile alone.
func (g *Generator) TemplateResume(profile *types.Profile) *types.CanonicalDocument {
	doc := parsing.FromProfile(profile)
	if profile != nil && strings.TrimSpace(profile.Skills) != "" {
		if summary, err := prompts.Render(prompts.KeyResumeSummary, map[string]string{
			"Skills": strings.TrimSpace(profile.Skills),
		}); err == nil {
			doc.Summary = summary
		}
	}
	return doc
}

// TemplateCoverLetter fills the fixed cover letter with profile fields.
func (g *Generator) TemplateCoverLetter(profile *types.Profile, company, position string) string {
	data := profileData(profile, map[string]string{
		"Company":  company,
		"Position": position,
	})
	if profile == nil || strings.TrimSpace(profile.Skills) == "" {
		data["Skills"] = "a range of technical skills"
	}
	if profile == nil || strings.TrimSpace(profile.Experience) == "" {
		data["Experience"] = "several years of experience"
	}

	letter, err := prompts.Render(prompts.KeyCoverLetterFallback, data)
	if err != nil {
		// The template is embedded; this only happens if the build is broken.
		g.logger.Error("cover letter template unavailable", "error", err)
		return ""
	}
	return letter
}

func (g *Generator) resumeFallback(profile *types.Profile, reason FallbackReason, err error) *Result {
	g.logFallback("resume", reason, err)
	doc := g.TemplateResume(profile)
	return &Result{
		Text:           g.normalizer.Format(doc),
		Document:       doc,
		Source:         SourceTemplate,
		FallbackReason: reason,
		Err:            err,
	}
}

func (g *Generator) letterFallback(profile *types.Profile, company, position string, reason FallbackReason, err error) *Result {
	g.logFallback("cover_letter", reason, err)
	return &Result{
		Text:           g.TemplateCoverLetter(profile, company, position),
		Source:         SourceTemplate,
		FallbackReason: reason,
		Err:            err,
	}
}

func (g *Generator) logFallback(kind string, reason FallbackReason, err error) {
	attrs := []any{"document", kind, "reason", string(reason)}
	if err != nil {
		attrs = append(attrs, "error", err)
		if errors.Is(err, context.DeadlineExceeded) {
			attrs = append(attrs, "timeout", g.timeout)
		}
	}
	if reason == FallbackNoCredential {
		g.logger.Info("using template generation", attrs...)
		return
	}
	g.logger.Warn("remote generation failed, using template", attrs...)
}

// profileData maps profile fields to prompt placeholders, with defaults for blanks.
func profileData(profile *types.Profile, extra map[string]string) map[string]string {
	if profile == nil {
		profile = &types.Profile{}
	}
	data := map[string]string{
		"Name":       orDefault(profile.Name, "Your Name"),
		"Email":      orDefault(profile.Email, "Not specified"),
		"Phone":      orDefault(profile.Phone, "Not specified"),
		"Location":   orDefault(profile.Location, "Not specified"),
		"Title":      orDefault(profile.CurrentTitle, "Professional"),
		"Skills":     orDefault(profile.Skills, "Not specified"),
		"Experience": orDefault(profile.Experience, "Not specified"),
		"Education":  orDefault(profile.Education, "Not specified"),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func nameOf(profile *types.Profile) string {
	if profile == nil {
		return ""
	}
	return strings.TrimSpace(profile.Name)
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// Package assistant implements the job seeker's use cases: maintaining the profile,
// generating resumes, cover letters and interview questions, rendering documents
// and tracking applications. The HTTP server and the CLI both drive this package.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/resume-assistant/internal/generator"
	"github.com/jonathan/resume-assistant/internal/parsing"
	"github.com/jonathan/resume-assistant/internal/rendering"
	"github.com/jonathan/resume-assistant/internal/types"
)

// maxStoredDescription is the number of characters of a job description kept on the application record.
const maxStoredDescription = 500

// Defaults recorded when a resume is generated without company or position.
const (
	UnknownCompany  = "Unknown Company"
	UnknownPosition = "Unknown Position"
)

// ProfileRepository stores the single profile.
type ProfileRepository interface {
	Load(ctx context.Context) (*types.Profile, error)
	Save(ctx context.Context, profile *types.Profile) error
}

// ApplicationRepository stores tracked applications.
type ApplicationRepository interface {
	List(ctx context.Context) ([]types.ApplicationEntry, error)
	Append(ctx context.Context, app types.Application) (types.ApplicationEntry, error)
	UpdateStatus(ctx context.Context, index int, status types.Status) (types.ApplicationEntry, error)
	Delete(ctx context.Context, index int) error
	Stats(ctx context.Context) (types.ApplicationStats, error)
	Search(ctx context.Context, term string) ([]types.ApplicationEntry, error)
	Recent(ctx context.Context, limit int) ([]types.ApplicationEntry, error)
}

// TextGenerator produces resume and cover letter text.
type TextGenerator interface {
	Resume(ctx context.Context, profile *types.Profile, jobDescription string) *generator.Result
	CoverLetter(ctx context.Context, profile *types.Profile, company, position, jobDescription string) *generator.Result
}

// DocumentRenderer turns documents into output bytes.
type DocumentRenderer interface {
	Render(ctx context.Context, doc *types.CanonicalDocument, profile *types.Profile, format rendering.Format) ([]byte, error)
	RenderCoverLetter(ctx context.Context, text string, profile *types.Profile, format rendering.Format) ([]byte, error)
}

// Deps are the collaborators of a Service.
type Deps struct {
	Profiles     ProfileRepository
	Applications ApplicationRepository
	Generator    TextGenerator
	Renderer     DocumentRenderer
	// Normalizer parses resume text supplied for rendering. Nil uses the default headings.
	Normalizer *parsing.Normalizer
	Logger     *slog.Logger
}

// Service coordinates the stores, the generator and the renderer.
type Service struct {
	profiles     ProfileRepository
	applications ApplicationRepository
	generator    TextGenerator
	renderer     DocumentRenderer
	normalizer   *parsing.Normalizer
	logger       *slog.Logger
}

// New creates a Service.
func New(deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Normalizer == nil {
		deps.Normalizer = parsing.NewNormalizer(nil, deps.Logger)
	}
	return &Service{
		profiles:     deps.Profiles,
		applications: deps.Applications,
		generator:    deps.Generator,
		renderer:     deps.Renderer,
		normalizer:   deps.Normalizer,
		logger:       deps.Logger,
	}
}

// GenerationOutput is the result of generating a resume or cover letter.
type GenerationOutput struct {
	Text           string                   `json:"text"`
	Document       *types.CanonicalDocument `json:"document,omitempty"`
	Source         generator.Source         `json:"source"`
	FallbackReason generator.FallbackReason `json:"fallback_reason,omitempty"`
	Warning        string                   `json:"warning,omitempty"`
	Application    *types.ApplicationEntry  `json:"application,omitempty"`
}

// RenderedDocument is a document ready to be written or served.
type RenderedDocument struct {
	Data     []byte
	Format   rendering.Format
	Filename string
}

// Profile returns the saved profile or ErrProfileMissing.
func (s *Service) Profile(ctx context.Context) (*types.Profile, error) {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileMissing
	}
	return profile, nil
}

// SaveProfile validates and stores profile, replacing any previous one.
func (s *Service) SaveProfile(ctx context.Context, profile *types.Profile) (*types.Profile, error) {
	if profile == nil {
		return nil, &ValidationError{Field: "profile", Message: "is required"}
	}
	trimProfile(profile)
	if err := profile.Validate(); err != nil {
		return nil, toValidationError(err)
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.Info("profile saved", "name", profile.Name)
	return profile, nil
}

// GenerateResume creates a tailored resume and records the application.
func (s *Service) GenerateResume(ctx context.Context, req types.ResumeRequest) (*GenerationOutput, error) {
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.PositionTitle = strings.TrimSpace(req.PositionTitle)
	description, err := plainDescription(req.JobDescription)
	if err != nil {
		return nil, err
	}
	req.JobDescription = description
	if err := req.Validate(); err != nil {
		return nil, toValidationError(err)
	}

	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}

	result := s.generator.Resume(ctx, profile, req.JobDescription)
	out := newOutput(result)
	out.Application = s.record(ctx, types.Application{
		CompanyName:        orDefault(req.CompanyName, UnknownCompany),
		PositionTitle:      orDefault(req.PositionTitle, UnknownPosition),
		Status:             types.StatusPending,
		JobDescription:     truncateDescription(req.JobDescription),
		DocumentsGenerated: []string{types.DocumentResume},
	})
	return out, nil
}

// GenerateCoverLetter creates a cover letter and records the application.
func (s *Service) GenerateCoverLetter(ctx context.Context, req types.CoverLetterRequest) (*GenerationOutput, error) {
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.PositionTitle = strings.TrimSpace(req.PositionTitle)
	description, err := plainDescription(req.JobDescription)
	if err != nil {
		return nil, err
	}
	req.JobDescription = description
	if err := req.Validate(); err != nil {
		return nil, toValidationError(err)
	}

	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}

	prompt := req.JobDescription
	if prompt == "" {
		prompt = "No specific job description provided."
	}
	result := s.generator.CoverLetter(ctx, profile, req.CompanyName, req.PositionTitle, prompt)
	out := newOutput(result)
	out.Application = s.record(ctx, types.Application{
		CompanyName:        req.CompanyName,
		PositionTitle:      req.PositionTitle,
		Status:             types.StatusPending,
		JobDescription:     truncateDescription(req.JobDescription),
		DocumentsGenerated: []string{types.DocumentCoverLetter},
	})
	return out, nil
}

// InterviewQuestions returns likely interview questions for the position.
func (s *Service) InterviewQuestions(ctx context.Context, req types.InterviewQuestionsRequest) ([]string, error) {
	req.PositionTitle = strings.TrimSpace(req.PositionTitle)
	if err := req.Validate(); err != nil {
		return nil, toValidationError(err)
	}

	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.JobDescription)
	if description == "" {
		description = fmt.Sprintf("Standard %s position requirements.", req.PositionTitle)
	}
	return generator.InterviewQuestions(profile, req.PositionTitle, description), nil
}

// RenderResume parses resume text and renders it in format.
func (s *Service) RenderResume(ctx context.Context, text string, format rendering.Format) (*RenderedDocument, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "is required"}
	}
	profile := s.optionalProfile(ctx)
	return s.RenderResumeDocument(ctx, s.normalizer.Normalize(text, profile), format)
}

// RenderResumeDocument renders an already-structured resume in format.
func (s *Service) RenderResumeDocument(ctx context.Context, doc *types.CanonicalDocument, format rendering.Format) (*RenderedDocument, error) {
	if doc == nil {
		return nil, &ValidationError{Field: "document", Message: "is required"}
	}
	profile := s.optionalProfile(ctx)
	data, err := s.renderer.Render(ctx, doc, profile, format)
	if err != nil {
		return nil, err
	}
	return &RenderedDocument{Data: data, Format: format, Filename: filename("resume", doc.Name, format)}, nil
}

// RenderCoverLetter renders cover letter text in format.
func (s *Service) RenderCoverLetter(ctx context.Context, text string, format rendering.Format) (*RenderedDocument, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "is required"}
	}
	profile := s.optionalProfile(ctx)
	data, err := s.renderer.RenderCoverLetter(ctx, text, profile, format)
	if err != nil {
		return nil, err
	}
	name := ""
	if profile != nil {
		name = profile.Name
	}
	return &RenderedDocument{Data: data, Format: format, Filename: filename("cover_letter", name, format)}, nil
}

// Applications lists tracked applications. A non-empty query filters by company or
// position; a positive limit keeps only the newest matches by application date, newest first.
func (s *Service) Applications(ctx context.Context, query string, limit int) ([]types.ApplicationEntry, error) {
	query = strings.TrimSpace(query)
	switch {
	case query != "":
		entries, err := s.applications.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		if limit > 0 {
			types.SortNewestFirst(entries)
			if len(entries) > limit {
				entries = entries[:limit]
			}
		}
		return entries, nil
	case limit > 0:
		return s.applications.Recent(ctx, limit)
	default:
		return s.applications.List(ctx)
	}
}

// ApplicationStats counts applications per status.
func (s *Service) ApplicationStats(ctx context.Context) (types.ApplicationStats, error) {
	return s.applications.Stats(ctx)
}

// UpdateApplicationStatus changes the status of the application at index.
func (s *Service) UpdateApplicationStatus(ctx context.Context, index int, req types.StatusUpdateRequest) (types.ApplicationEntry, error) {
	if err := req.Validate(); err != nil {
		return types.ApplicationEntry{}, toValidationError(err)
	}
	status, err := types.ParseStatus(req.Status)
	if err != nil {
		return types.ApplicationEntry{}, &ValidationError{Field: "status", Message: err.Error()}
	}
	return s.applications.UpdateStatus(ctx, index, status)
}

// DeleteApplication removes the application at index.
func (s *Service) DeleteApplication(ctx context.Context, index int) error {
	return s.applications.Delete(ctx, index)
}

// record appends app, logging instead of failing so a generated document is never lost.
func (s *Service) record(ctx context.Context, app types.Application) *types.ApplicationEntry {
	entry, err := s.applications.Append(ctx, app)
	if err != nil {
		s.logger.Warn("failed to record application", "company", app.CompanyName, "position", app.PositionTitle, "error", err)
		return nil
	}
	return &entry
}

func (s *Service) optionalProfile(ctx context.Context) *types.Profile {
	profile, err := s.Profile(ctx)
	if err != nil {
		if !errors.Is(err, ErrProfileMissing) {
			s.logger.Warn("rendering without profile", "error", err)
		}
		return nil
	}
	return profile
}

func newOutput(result *generator.Result) *GenerationOutput {
	out := &GenerationOutput{
		Text:           result.Text,
		Document:       result.Document,
		Source:         result.Source,
		FallbackReason: result.FallbackReason,
	}
	switch result.FallbackReason {
	case generator.FallbackNoCredential:
		out.Warning = "No API key configured; used template-based generation."
	case generator.FallbackRemoteError, generator.FallbackEmptyResponse:
		out.Warning = "Remote generation failed; used template-based generation."
	}
	return out
}

// plainDescription reduces a pasted job posting, which may be HTML, to plain text.
func plainDescription(input string) (string, error) {
	text, err := parsing.PlainText(input)
	if err != nil {
		return "", &ValidationError{Field: "job_description", Message: err.Error()}
	}
	return text, nil
}

func truncateDescription(description string) string {
	r := []rune(description)
	if len(r) <= maxStoredDescription {
		return description
	}
	return string(r[:maxStoredDescription]) + "..."
}

func trimProfile(p *types.Profile) {
	for _, f := range []*string{
		&p.Name, &p.Email, &p.Phone, &p.Location, &p.CurrentTitle,
		&p.LinkedIn, &p.Skills, &p.Experience, &p.Education,
	} {
		*f = strings.TrimSpace(*f)
	}
}

func filename(kind, name string, format rendering.Format) string {
	slug := strings.Join(strings.Fields(strings.ToLower(name)), "_")
	var sb strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return kind + "." + format.Extension()
	}
	return kind + "_" + sb.String() + "." + format.Extension()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

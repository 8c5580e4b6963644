package assistant

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-assistant/internal/generator"
	"github.com/jonathan/resume-assistant/internal/rendering"
	"github.com/jonathan/resume-assistant/internal/store"
	"github.com/jonathan/resume-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := func() time.Time { return time.Date(2024, time.May, 2, 10, 0, 0, 0, time.UTC) }

	backend := store.NewFileBackend(t.TempDir())
	opts := store.Options{Logger: logger, Now: now}
	return New(Deps{
		Profiles:     store.NewProfileStore(backend, opts),
		Applications: store.NewApplicationStore(backend, opts),
		Generator:    generator.New(nil, generator.Options{Logger: logger}),
		Renderer:     rendering.New(rendering.Options{Now: now}),
		Logger:       logger,
	})
}

func saveTestProfile(t *testing.T, s *Service) *types.Profile {
	t.Helper()
	profile, err := s.SaveProfile(context.Background(), &types.Profile{
		Name:       " Jane Doe ",
		Email:      "jane@example.com",
		Skills:     "Go, SQL",
		Experience: "Six years of backend work",
		Education:  "BS Computer Science",
	})
	require.NoError(t, err)
	return profile
}

func TestService_ProfileMissing(t *testing.T) {
	s := newTestService(t)

	_, err := s.Profile(context.Background())
	assert.ErrorIs(t, err, ErrProfileMissing)

	_, err = s.GenerateResume(context.Background(), types.ResumeRequest{JobDescription: "Go role"})
	assert.ErrorIs(t, err, ErrProfileMissing)

	_, err = s.InterviewQuestions(context.Background(), types.InterviewQuestionsRequest{PositionTitle: "Engineer"})
	assert.ErrorIs(t, err, ErrProfileMissing)
}

func TestService_SaveProfile(t *testing.T) {
	s := newTestService(t)

	saved := saveTestProfile(t, s)
	assert.Equal(t, "Jane Doe", saved.Name)
	assert.Equal(t, "2024-05-02T10:00:00Z", saved.UpdatedAt)

	loaded, err := s.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestService_SaveProfileValidation(t *testing.T) {
	tests := []struct {
		name    string
		profile *types.Profile
		field   string
	}{
		{"nil", nil, "profile"},
		{"missing name", &types.Profile{Name: "  ", Email: "a@b.com"}, "name"},
		{"missing email", &types.Profile{Name: "Jane"}, "email"},
		{"bad email", &types.Profile{Name: "Jane", Email: "not-an-email"}, "email"},
		{"bad linkedin", &types.Profile{Name: "Jane", Email: "a@b.com", LinkedIn: "nope"}, "linkedin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService(t).SaveProfile(context.Background(), tt.profile)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestService_GenerateResume(t *testing.T) {
	s := newTestService(t)
	saveTestProfile(t, s)

	out, err := s.GenerateResume(context.Background(), types.ResumeRequest{
		JobDescription: "<p>We need a <b>Go</b> engineer.</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, generator.SourceTemplate, out.Source)
	assert.Equal(t, generator.FallbackNoCredential, out.FallbackReason)
	assert.NotEmpty(t, out.Warning)
	require.NotNil(t, out.Document)
	assert.Equal(t, "Jane Doe", out.Document.Name)

	require.NotNil(t, out.Application)
	assert.Equal(t, 0, out.Application.Index)
	assert.Equal(t, UnknownCompany, out.Application.CompanyName)
	assert.Equal(t, UnknownPosition, out.Application.PositionTitle)
	assert.Equal(t, types.StatusPending, out.Application.Status)
	assert.Equal(t, "We need a Go engineer.", out.Application.JobDescription)
	assert.Equal(t, []string{types.DocumentResume}, out.Application.DocumentsGenerated)
}

func TestService_GenerateResumeRequiresDescription(t *testing.T) {
	s := newTestService(t)
	saveTestProfile(t, s)

	_, err := s.GenerateResume(context.Background(), types.ResumeRequest{JobDescription: "   "})

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "job_description", validationErr.Field)

	entries, err := s.Applications(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestService_DescriptionTruncated(t *testing.T) {
	s := newTestService(t)
	saveTestProfile(t, s)

	long := strings.Repeat("é", 600)
	out, err := s.GenerateResume(context.Background(), types.ResumeRequest{
		CompanyName:    "Acme",
		PositionTitle:  "Engineer",
		JobDescription: long,
	})
	require.NoError(t, err)

	stored := out.Application.JobDescription
	assert.Equal(t, strings.Repeat("é", 500)+"...", stored)
	assert.Equal(t, "Acme", out.Application.CompanyName)
}

func TestService_GenerateCoverLetter(t *testing.T) {
	s := newTestService(t)
	saveTestProfile(t, s)

	_, err := s.GenerateCoverLetter(context.Background(), types.CoverLetterRequest{CompanyName: "Acme"})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "position_title", validationErr.Field)

	out, err := s.GenerateCoverLetter(context.Background(), types.CoverLetterRequest{
		CompanyName:   "Acme",
		PositionTitle: "Engineer",
	})
	require.NoError(t, err)
	assert.Contains(t, out.Text, "the Engineer position at Acme")
	assert.Nil(t, out.Document)
	require.NotNil(t, out.Application)
	assert.Equal(t, []string{types.DocumentCoverLetter}, out.Application.DocumentsGenerated)
	assert.Empty(t, out.Application.JobDescription)
}

func TestService_InterviewQuestions(t *testing.T) {
	s := newTestService(t)
	saveTestProfile(t, s)

	_, err := s.InterviewQuestions(context.Background(), types.InterviewQuestionsRequest{})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))

	questions, err := s.InterviewQuestions(context.Background(), types.InterviewQuestionsRequest{PositionTitle: "Engineer"})
	require.NoError(t, err)
	assert.Len(t, questions, generator.MaxQuestions)
	assert.Equal(t, "Explain your experience with Go.", questions[2])
}

func TestService_RenderResume(t *testing.T) {
	s := newTestService(t)
	saveTestProfile(t, s)

	doc, err := s.RenderResume(context.Background(), "Jane Doe\nEDUCATION\nBS Computer Science", rendering.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "resume_jane_doe.txt", doc.Filename)
	assert.Equal(t, "Jane Doe\njane@example.com\n\nEDUCATION\nBS Computer Science\n", string(doc.Data))

	_, err = s.RenderResume(context.Background(), " ", rendering.FormatText)
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestService_RenderCoverLetterWithoutProfile(t *testing.T) {
	s := newTestService(t)

	doc, err := s.RenderCoverLetter(context.Background(), "Dear Hiring Manager,\n\nHello.", rendering.FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, "cover_letter.html", doc.Filename)
	assert.Contains(t, string(doc.Data), "Dear Hiring Manager,")
}

func TestService_ApplicationLifecycle(t *testing.T) {
	s := newTestService(t)
	saveTestProfile(t, s)
	ctx := context.Background()

	for _, company := range []string{"Acme", "Globex", "Initech"} {
		_, err := s.GenerateCoverLetter(ctx, types.CoverLetterRequest{CompanyName: company, PositionTitle: "Engineer"})
		require.NoError(t, err)
	}

	entry, err := s.UpdateApplicationStatus(ctx, 1, types.StatusUpdateRequest{Status: "Interview"})
	require.NoError(t, err)
	assert.Equal(t, types.StatusInterview, entry.Status)

	_, err = s.UpdateApplicationStatus(ctx, 1, types.StatusUpdateRequest{Status: "ghosted"})
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))

	_, err = s.UpdateApplicationStatus(ctx, 9, types.StatusUpdateRequest{Status: "offered"})
	assert.ErrorIs(t, err, store.ErrIndexOutOfRange)

	stats, err := s.ApplicationStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.Interview)

	found, err := s.Applications(ctx, "glob", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].Index)

	require.NoError(t, s.DeleteApplication(ctx, 0))
	assert.ErrorIs(t, s.DeleteApplication(ctx, 5), store.ErrIndexOutOfRange)

	remaining, err := s.Applications(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "Globex", remaining[0].CompanyName)

	limited, err := s.Applications(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestService_SearchWithLimitKeepsNewest(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	apps := store.NewApplicationStore(store.NewFileBackend(t.TempDir()), store.Options{Logger: logger})
	s := New(Deps{Applications: apps, Logger: logger})
	ctx := context.Background()

	for _, app := range []types.Application{
		{CompanyName: "Acme Corp", ApplicationDate: "2024-05-01 09:00:00"},
		{CompanyName: "Globex", ApplicationDate: "2024-06-01 09:00:00"},
		{CompanyName: "Acme Labs", ApplicationDate: "2024-03-01 09:00:00"},
		{CompanyName: "Acme Inc", ApplicationDate: "2024-04-01 09:00:00"},
	} {
		_, err := apps.Append(ctx, app)
		require.NoError(t, err)
	}

	found, err := s.Applications(ctx, "acme", 2)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Acme Corp", found[0].CompanyName)
	assert.Equal(t, 0, found[0].Index)
	assert.Equal(t, "Acme Inc", found[1].CompanyName)
	assert.Equal(t, 3, found[1].Index)

	recent, err := s.Applications(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Globex", recent[0].CompanyName)
	assert.Equal(t, "Acme Corp", recent[1].CompanyName)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "resume_jane_odoe.pdf", filename("resume", "Jane O'Doe", rendering.FormatPDF))
	assert.Equal(t, "cover_letter.tex", filename("cover_letter", "", rendering.FormatLaTeX))
}

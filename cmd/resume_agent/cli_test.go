package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-assistant/internal/assistant"
	"github.com/jonathan/resume-assistant/internal/rendering"
	"github.com/jonathan/resume-assistant/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so commands can run repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// cli runs resume_agent in-process against a private data directory.
type cli struct {
	t       *testing.T
	dataDir string
	stdin   string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	for _, key := range []string{"TOGETHER_API_KEY", "GEMINI_API_KEY", "RESUME_API_KEY", "DATABASE_URL", "RESUME_DATA_DIR", "PORT"} {
		t.Setenv(key, "")
	}
	return &cli{t: t, dataDir: t.TempDir()}
}

func (c *cli) run(args ...string) (stdout, stderr string, err error) {
	c.t.Helper()
	resetFlags(rootCmd)
	appConfig, logger = nil, nil

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(c.stdin))
	rootCmd.SetArgs(append([]string{"--data-dir", c.dataDir}, args...))
	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	stdout, stderr, err := c.run(args...)
	require.NoError(c.t, err, stderr)
	return stdout
}

func (c *cli) saveProfile() {
	c.t.Helper()
	c.mustRun("profile", "set",
		"--name", "Jane Doe",
		"--email", "jane@example.com",
		"--skills", "Go, SQL",
		"--experience", "Six years of backend work",
		"--education", "BS Computer Science",
	)
}

func TestProfileCommands(t *testing.T) {
	c := newCLI(t)

	_, _, err := c.run("profile", "show")
	assert.ErrorIs(t, err, assistant.ErrProfileMissing)

	out := c.mustRun("profile", "set", "--name", "Jane Doe", "--email", "jane@example.com")
	assert.Contains(t, out, "Successfully saved profile")

	// A later set keeps fields that are not given.
	c.mustRun("profile", "set", "--title", "Backend Engineer")

	var profile types.Profile
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("profile", "show", "--json")), &profile))
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, "jane@example.com", profile.Email)
	assert.Equal(t, "Backend Engineer", profile.CurrentTitle)

	out = c.mustRun("profile", "show")
	assert.Contains(t, out, "PROFILE")
	assert.Contains(t, out, "Backend Engineer")
}

func TestProfileSet_FromFile(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "Jane Doe", "email": "jane@example.com", "skills": "Go"}`), 0644))

	c.mustRun("profile", "set", "--from", path, "--skills", "Go, Rust")

	var profile types.Profile
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("profile", "show", "--json")), &profile))
	assert.Equal(t, "Go, Rust", profile.Skills)
}

func TestProfileSet_Invalid(t *testing.T) {
	c := newCLI(t)

	_, _, err := c.run("profile", "set", "--name", "Jane Doe")
	var validationErr *assistant.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "email", validationErr.Field)
}

func TestResumeCommand(t *testing.T) {
	c := newCLI(t)

	_, _, err := c.run("resume", "-j", "Go engineer")
	assert.ErrorIs(t, err, assistant.ErrProfileMissing)

	c.saveProfile()
	stdout, stderr, err := c.run("resume", "-j", "<p>Go engineer</p>", "--company", "Acme")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Jane Doe")
	assert.Contains(t, stderr, "Warning: No API key configured")

	var entries []types.ApplicationEntry
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("applications", "list", "--json")), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Acme", entries[0].CompanyName)
	assert.Equal(t, assistant.UnknownPosition, entries[0].PositionTitle)
	assert.Equal(t, "Go engineer", entries[0].JobDescription)
}

func TestResumeCommand_JobFileAndOutput(t *testing.T) {
	c := newCLI(t)
	c.saveProfile()

	c.stdin = "Senior Go engineer"
	outPath := filepath.Join(t.TempDir(), "out", "resume.txt")
	stdout := c.mustRun("resume", "--job-file", "-", "--out", outPath)
	assert.Contains(t, stdout, "Successfully wrote resume to "+outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Jane Doe\n"))
}

func TestResumeCommand_BadFormatRecordsNothing(t *testing.T) {
	c := newCLI(t)
	c.saveProfile()

	_, _, err := c.run("resume", "-j", "Go engineer", "--out", filepath.Join(t.TempDir(), "resume.docx"))
	assert.ErrorIs(t, err, rendering.ErrUnsupportedFormat)

	assert.Equal(t, "[]\n", c.mustRun("applications", "list", "--json"))
}

func TestCoverLetterCommand(t *testing.T) {
	c := newCLI(t)
	c.saveProfile()

	_, _, err := c.run("cover-letter", "--company", "Acme")
	var validationErr *assistant.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "position_title", validationErr.Field)

	stdout := c.mustRun("cover-letter", "--company", "Acme", "--position", "Engineer")
	assert.Contains(t, stdout, "the Engineer position at Acme")

	outPath := filepath.Join(t.TempDir(), "letter.tex")
	c.mustRun("cover-letter", "--company", "Globex", "--position", "SRE", "--out", outPath)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `\documentclass`)
}

func TestQuestionsCommand(t *testing.T) {
	c := newCLI(t)
	c.saveProfile()

	stdout := c.mustRun("questions", "--position", "Engineer")
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, "3. Explain your experience with Go.", lines[2])

	var questions []string
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("questions", "--position", "Engineer", "--json")), &questions))
	assert.Len(t, questions, 10)
}

func TestRenderCommand(t *testing.T) {
	c := newCLI(t)
	in := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(in, []byte("Jane Doe\nEDUCATION\nBS Computer Science"), 0644))
	outPath := filepath.Join(t.TempDir(), "resume.html")

	c.mustRun("render", "--in", in, "--out", outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Jane Doe")
	assert.Contains(t, string(data), "BS Computer Science")

	_, _, err = c.run("render", "--in", in, "--out", outPath, "--kind", "memo")
	assert.Error(t, err)
}

func TestApplicationsCommands(t *testing.T) {
	c := newCLI(t)
	c.saveProfile()
	for _, company := range []string{"Acme", "Globex", "Initech"} {
		c.mustRun("cover-letter", "--company", company, "--position", "Engineer")
	}

	out := c.mustRun("applications", "status", "1", "Interview")
	assert.Contains(t, out, "Successfully updated Globex (Engineer) to interview")

	_, _, err := c.run("applications", "status", "1", "ghosted")
	assert.Error(t, err)
	_, _, err = c.run("applications", "status", "x", "offered")
	assert.Error(t, err)

	var stats types.ApplicationStats
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("applications", "stats", "--json")), &stats))
	assert.Equal(t, types.ApplicationStats{Total: 3, Pending: 2, Interview: 1}, stats)

	out = c.mustRun("applications", "list", "-q", "init")
	assert.Contains(t, out, "Initech")
	assert.NotContains(t, out, "Acme")

	out = c.mustRun("applications", "delete", "0")
	assert.Contains(t, out, "Successfully deleted application 0")
	_, _, err = c.run("applications", "delete", "5")
	assert.Error(t, err)

	var entries []types.ApplicationEntry
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("applications", "list", "--json")), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Globex", entries[0].CompanyName)
}

func TestConfigFile(t *testing.T) {
	c := newCLI(t)
	otherDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data_dir: "+otherDir+"\ncolor_scheme: modern\n"), 0644))

	// --data-dir given by the harness wins over the file.
	c.mustRun("--config", cfgPath, "profile", "set", "--name", "Jane", "--email", "jane@example.com")
	assert.FileExists(t, filepath.Join(c.dataDir, "user_profiles.json"))
	assert.NoFileExists(t, filepath.Join(otherDir, "user_profiles.json"))
	assert.Equal(t, "modern", appConfig.ColorScheme)
}

func TestInvalidConfiguration(t *testing.T) {
	c := newCLI(t)

	_, _, err := c.run("--storage", "s3", "applications", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage")

	_, _, err = c.run("--provider", "openai", "applications", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		out, explicit string
		want          rendering.Format
	}{
		{"resume.pdf", "", rendering.FormatPDF},
		{"resume.HTML", "", rendering.FormatHTML},
		{"resume.txt", "", rendering.FormatText},
		{"resume", "", rendering.FormatPDF},
		{"resume.pdf", "tex", rendering.FormatLaTeX},
	}
	for _, tt := range tests {
		got, err := outputFormat(tt.out, tt.explicit)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.out)
	}

	_, err := outputFormat("resume.docx", "")
	assert.ErrorIs(t, err, rendering.ErrUnsupportedFormat)
}

func TestParseIndex(t *testing.T) {
	index, err := parseIndex("3")
	require.NoError(t, err)
	assert.Equal(t, 3, index)

	for _, bad := range []string{"-1", "one", ""} {
		_, err := parseIndex(bad)
		assert.Error(t, err, bad)
	}
}

// Package main provides the resume assistant CLI and HTTP API server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jonathan/resume-assistant/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	logJSON    bool

	// Overrides for config file values
	dataDir     string
	storage     string
	databaseURL string
	provider    string
	model       string
	apiKey      string
	timeout     string
	colorScheme string
	chromePath  string
)

// Set by the root command before any subcommand runs.
var (
	appConfig *config.Config
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "resume_agent",
	Short: "Resume, cover letter and interview preparation assistant",
	Long: `resume_agent keeps a job seeker's profile, generates tailored resumes and cover letters
from job descriptions, suggests interview questions and tracks submitted applications.
Text is generated by a hosted model when an API key is configured, and from built-in
templates otherwise.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print detailed output and debug logs")
	flags.BoolVar(&logJSON, "log-json", false, "Write logs as JSON")

	flags.StringVar(&dataDir, "data-dir", "", "Directory holding user_profiles.json and job_applications.json")
	flags.StringVar(&storage, "storage", "", "Storage backend: file or postgres")
	flags.StringVar(&databaseURL, "db-url", "", "PostgreSQL connection URL (overrides DATABASE_URL)")
	flags.StringVar(&provider, "provider", "", "Text generation provider: together or gemini")
	flags.StringVar(&model, "model", "", "Model name for the provider")
	flags.StringVar(&apiKey, "api-key", "", "Provider API key (overrides TOGETHER_API_KEY / GEMINI_API_KEY)")
	flags.StringVar(&timeout, "timeout", "", "Timeout for each remote generation call, e.g. 60s")
	flags.StringVar(&colorScheme, "color-scheme", "", "Document color scheme: professional, modern or classic")
	flags.StringVar(&chromePath, "chrome-path", "", "Chrome or Chromium executable used for PDF output")
}

// setup loads configuration, applies flag overrides and configures logging.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath, os.Getenv)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	for name, field := range map[string]*string{
		"data-dir":     &cfg.DataDir,
		"storage":      &cfg.Storage,
		"db-url":       &cfg.DatabaseURL,
		"provider":     &cfg.Provider,
		"model":        &cfg.Model,
		"api-key":      &cfg.APIKey,
		"timeout":      &cfg.RequestTimeout,
		"color-scheme": &cfg.ColorScheme,
		"chrome-path":  &cfg.ChromePath,
	} {
		if flags.Changed(name) {
			*field, _ = flags.GetString(name)
		}
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	logger = newLogger(cmd.ErrOrStderr(), cfg.Verbose, logJSON)
	slog.SetDefault(logger)
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

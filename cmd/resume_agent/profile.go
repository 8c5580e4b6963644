package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/resume-assistant/internal/assistant"
	"github.com/jonathan/resume-assistant/internal/types"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the saved profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the profile",
	Long: `Create or update the profile. Values start from the saved profile, then the
--from file if given, then any individual flags. Name and email are required.`,
	Args: cobra.NoArgs,
	RunE: runProfileSet,
}

var (
	profileJSON bool
	profileFrom string
	profileSet  types.Profile
)

func init() {
	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "Print the profile as JSON")

	f := profileSetCmd.Flags()
	f.StringVar(&profileFrom, "from", "", "Path to a profile JSON file")
	f.StringVar(&profileSet.Name, "name", "", "Full name")
	f.StringVar(&profileSet.Email, "email", "", "Email address")
	f.StringVar(&profileSet.Phone, "phone", "", "Phone number")
	f.StringVar(&profileSet.Location, "location", "", "City, region or country")
	f.StringVar(&profileSet.CurrentTitle, "title", "", "Current job title")
	f.StringVar(&profileSet.LinkedIn, "linkedin", "", "LinkedIn profile URL")
	f.StringVar(&profileSet.Skills, "skills", "", "Comma-separated skills")
	f.StringVar(&profileSet.Experience, "experience", "", "Work experience, free text")
	f.StringVar(&profileSet.Education, "education", "", "Education, free text")

	profileCmd.AddCommand(profileShowCmd, profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	profile, err := a.service.Profile(cmd.Context())
	if err != nil {
		return err
	}
	if profileJSON {
		return writeJSON(cmd, profile)
	}
	a.printer.PrintProfile(profile)
	return nil
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	profile, err := a.service.Profile(cmd.Context())
	switch {
	case errors.Is(err, assistant.ErrProfileMissing):
		profile = &types.Profile{}
	case err != nil:
		return err
	}

	if profileFrom != "" {
		data, err := os.ReadFile(profileFrom)
		if err != nil {
			return fmt.Errorf("failed to read profile file: %w", err)
		}
		if err := json.Unmarshal(data, profile); err != nil {
			return fmt.Errorf("failed to parse profile file: %w", err)
		}
	}

	flags := cmd.Flags()
	for name, pair := range map[string][2]*string{
		"name":       {&profile.Name, &profileSet.Name},
		"email":      {&profile.Email, &profileSet.Email},
		"phone":      {&profile.Phone, &profileSet.Phone},
		"location":   {&profile.Location, &profileSet.Location},
		"title":      {&profile.CurrentTitle, &profileSet.CurrentTitle},
		"linkedin":   {&profile.LinkedIn, &profileSet.LinkedIn},
		"skills":     {&profile.Skills, &profileSet.Skills},
		"experience": {&profile.Experience, &profileSet.Experience},
		"education":  {&profile.Education, &profileSet.Education},
	} {
		if flags.Changed(name) {
			*pair[0] = *pair[1]
		}
	}

	saved, err := a.service.SaveProfile(cmd.Context(), profile)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Successfully saved profile")
	if appConfig.Verbose {
		a.printer.PrintProfile(saved)
	}
	return nil
}

// writeJSON prints v as indented JSON on the command's output.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

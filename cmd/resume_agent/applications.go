package main

import (
	"fmt"
	"strconv"

	"github.com/jonathan/resume-assistant/internal/types"
	"github.com/spf13/cobra"
)

var applicationsCmd = &cobra.Command{
	Use:     "applications",
	Aliases: []string{"apps"},
	Short:   "List and manage tracked job applications",
}

var applicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked applications",
	Args:  cobra.NoArgs,
	RunE:  runApplicationsList,
}

var applicationsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count applications per status",
	Args:  cobra.NoArgs,
	RunE:  runApplicationsStats,
}

var applicationsStatusCmd = &cobra.Command{
	Use:   "status <index> <status>",
	Short: "Change the status of an application",
	Long:  "Change the status of the application at index to one of: pending, interview, rejected, offered, accepted.",
	Args:  cobra.ExactArgs(2),
	RunE:  runApplicationsStatus,
}

var applicationsDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete an application; later applications shift down by one",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplicationsDelete,
}

var (
	appsQuery string
	appsLimit int
	appsJSON  bool
)

func init() {
	applicationsListCmd.Flags().StringVarP(&appsQuery, "query", "q", "", "Only show applications whose company or position contains this text")
	applicationsListCmd.Flags().IntVarP(&appsLimit, "limit", "n", 0, "Show at most this many of the most recent applications")
	applicationsListCmd.Flags().BoolVar(&appsJSON, "json", false, "Print as JSON")
	applicationsStatsCmd.Flags().BoolVar(&appsJSON, "json", false, "Print as JSON")

	applicationsCmd.AddCommand(applicationsListCmd, applicationsStatsCmd, applicationsStatusCmd, applicationsDeleteCmd)
	rootCmd.AddCommand(applicationsCmd)
}

func runApplicationsList(cmd *cobra.Command, _ []string) error {
	if appsLimit < 0 {
		return fmt.Errorf("--limit must be non-negative")
	}

	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.service.Applications(cmd.Context(), appsQuery, appsLimit)
	if err != nil {
		return err
	}
	if appsJSON {
		if entries == nil {
			entries = []types.ApplicationEntry{}
		}
		return writeJSON(cmd, entries)
	}
	a.printer.PrintApplications(entries)
	return nil
}

func runApplicationsStats(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.service.ApplicationStats(cmd.Context())
	if err != nil {
		return err
	}
	if appsJSON {
		return writeJSON(cmd, stats)
	}
	a.printer.PrintStats(stats)
	return nil
}

func runApplicationsStatus(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	entry, err := a.service.UpdateApplicationStatus(cmd.Context(), index, types.StatusUpdateRequest{Status: args[1]})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully updated %s (%s) to %s\n", entry.CompanyName, entry.PositionTitle, entry.Status)
	return nil
}

func runApplicationsDelete(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.service.DeleteApplication(cmd.Context(), index); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully deleted application %d\n", index)
	return nil
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid index %q: must be a non-negative integer", arg)
	}
	return index, nil
}

// Package cli exposes the archive pipeline as an interactive menu and
// a set of scriptable subcommands.
package cli

import (
	"fmt"

	"github.com/nuchoate/league-archive/internal/app"
	"github.com/spf13/cobra"
)

func NewRootCommand(a *app.Application) *cobra.Command {
	root := &cobra.Command{
		Use:           "league-archive",
		Short:         "Archive a Sleeper fantasy league and publish its history",
		Long:          "league-archive snapshots every season of a Sleeper league, flattens the raw data into readable records, and renders them as a static HTML site.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd.Context(), a, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	root.AddCommand(
		newFetchCommand(a),
		newPlayersCommand(a),
		newMungeCommand(a),
		newReportCommand(a),
		newPublishCommand(a),
		newServeCommand(a),
	)

	return root
}

func newFetchCommand(a *app.Application) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch every season of the configured league into the raw store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fetchWarning) {
				fmt.Fprintln(cmd.OutOrStdout(), "Fetch cancelled.")
				return nil
			}

			seasons, err := a.Fetch.FetchAllSeasons(cmd.Context(), a.Config.LeagueID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %d season(s): %v\n", len(seasons), seasons)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func newPlayersCommand(a *app.Application) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "players",
		Short: "Download the global NFL player index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), playersWarning) {
				fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled.")
				return nil
			}
			return a.Fetch.ImportPlayers(cmd.Context())
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func newMungeCommand(a *app.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "munge [season|all]",
		Short: "Flatten raw snapshots into readable season records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			season := "all"
			if len(args) == 1 {
				season = args[0]
			}
			return runMunge(a, season, cmd.OutOrStdout())
		},
	}
}

func newReportCommand(a *app.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Render the munged records as a static HTML site",
		RunE: func(*cobra.Command, []string) error {
			return a.Report.GenerateAll()
		},
	}
}

func newPublishCommand(a *app.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Copy the generated reports into the publish directory",
		RunE: func(*cobra.Command, []string) error {
			return a.Publish.CopyReports()
		},
	}
}

func newServeCommand(a *app.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated reports locally for review",
		RunE: func(*cobra.Command, []string) error {
			return a.Preview.ListenAndServe()
		},
	}
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nuchoate/league-archive/internal/app"
	"github.com/nuchoate/league-archive/internal/domain/recap"
)

const (
	fetchWarning = "This walks the whole league history and issues one request per endpoint and week.\nSleeper asks clients to stay under 1000 calls per minute. Proceed?"

	playersWarning = "The player index is a very large download that rarely changes.\nSleeper asks that it be fetched at most once per day. Proceed?"

	menuText = `
League Archive
  1) Fetch league data
  2) Import player index
  3) Munge season data
  4) Generate HTML reports
  5) Publish reports
  6) Preview reports in browser
  7) Exit
`
)

// runMenu drives the interactive numbered menu until the user exits or
// stdin closes. Every action maps to the same service call the
// subcommands use.
func runMenu(ctx context.Context, a *app.Application, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, menuText)
		fmt.Fprint(out, "Choose an option: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			if !confirmWith(scanner, out, fetchWarning) {
				fmt.Fprintln(out, "Fetch cancelled.")
				continue
			}
			seasons, err := a.Fetch.FetchAllSeasons(ctx, a.Config.LeagueID)
			if err != nil {
				fmt.Fprintf(out, "Fetch failed: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Archived %d season(s): %v\n", len(seasons), seasons)
		case "2":
			if !confirmWith(scanner, out, playersWarning) {
				fmt.Fprintln(out, "Import cancelled.")
				continue
			}
			if err := a.Fetch.ImportPlayers(ctx); err != nil {
				fmt.Fprintf(out, "Import failed: %v\n", err)
				continue
			}
			fmt.Fprintln(out, "Player index imported.")
		case "3":
			fmt.Fprint(out, "Season to munge (blank for all): ")
			season := "all"
			if scanner.Scan() {
				if v := strings.TrimSpace(scanner.Text()); v != "" {
					season = v
				}
			}
			if err := runMunge(a, season, out); err != nil {
				fmt.Fprintf(out, "Munge failed: %v\n", err)
			}
		case "4":
			if err := a.Report.GenerateAll(); err != nil {
				fmt.Fprintf(out, "Report generation failed: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Reports written to %s\n", a.Config.ReportsDir)
		case "5":
			if err := a.Publish.CopyReports(); err != nil {
				fmt.Fprintf(out, "Publish failed: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Reports published to %s\n", a.Config.PublishDir)
		case "6":
			fmt.Fprintf(out, "Serving %s on http://%s (Ctrl-C to stop)\n", a.Config.ReportsDir, a.Config.PreviewAddr)
			if err := a.Preview.ListenAndServe(); err != nil {
				fmt.Fprintf(out, "Preview failed: %v\n", err)
			}
		case "7", "q", "quit", "exit":
			return nil
		default:
			fmt.Fprintln(out, "Unknown option.")
		}
	}
}

// runMunge processes one season or all of them, then prints the final
// standings of everything it touched.
func runMunge(a *app.Application, season string, out io.Writer) error {
	seasons := []string{season}
	if season == "all" {
		if err := a.Munge.ProcessAllSeasons(); err != nil {
			return err
		}
		var err error
		if seasons, err = a.Munge.Seasons(); err != nil {
			return err
		}
	} else {
		if err := a.Munge.ProcessSeason(season); err != nil {
			return err
		}
	}

	for _, s := range seasons {
		rec, err := a.Library.ReadSeasonRecap(s)
		if err != nil {
			continue
		}
		printStandings(out, rec)
	}

	return nil
}

func printStandings(out io.Writer, rec recap.SeasonRecap) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("%s %s (through week %d)", rec.LeagueName, rec.Season, rec.Weeks))
	t.AppendHeader(table.Row{"#", "Team", "W", "L", "T", "PF", "PA", "Moves"})
	for _, row := range rec.Standings {
		t.AppendRow(table.Row{
			row.Rank,
			row.TeamName,
			row.Wins,
			row.Losses,
			row.Ties,
			fmt.Sprintf("%.2f", row.PointsFor),
			fmt.Sprintf("%.2f", row.PointsAgainst),
			row.Transactions,
		})
	}
	t.Render()
}

func confirm(in io.Reader, out io.Writer, message string) bool {
	return confirmWith(bufio.NewScanner(in), out, message)
}

func confirmWith(scanner *bufio.Scanner, out io.Writer, message string) bool {
	fmt.Fprintf(out, "\n%s [y/N]: ", message)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

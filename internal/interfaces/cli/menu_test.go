package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nuchoate/league-archive/internal/app"
	"github.com/nuchoate/league-archive/internal/domain/recap"
)

func TestConfirmWith(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		scanner := bufio.NewScanner(strings.NewReader(tc.input))
		if got := confirmWith(scanner, &out, "Proceed?"); got != tc.want {
			t.Fatalf("confirmWith(%q) = %v, want %v", tc.input, got, tc.want)
		}
		if !strings.Contains(out.String(), "[y/N]") {
			t.Fatalf("prompt missing default marker: %q", out.String())
		}
	}
}

func TestRunMenu_ExitChoices(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"7\n", "q\n", "exit\n", "bogus\n7\n"} {
		var out bytes.Buffer
		err := runMenu(context.Background(), &app.Application{}, strings.NewReader(input), &out)
		if err != nil {
			t.Fatalf("menu with input %q: %v", input, err)
		}
		if !strings.Contains(out.String(), "League Archive") {
			t.Fatalf("menu header not printed for input %q", input)
		}
	}
}

func TestRunMenu_EOFExitsCleanly(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := runMenu(context.Background(), &app.Application{}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("menu on closed stdin: %v", err)
	}
}

func TestPrintStandings_RendersEveryTeam(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	printStandings(&out, recap.SeasonRecap{
		Season:     "2024",
		LeagueName: "Backyard Football League",
		Weeks:      14,
		Standings: []recap.StandingRow{
			{Rank: 1, TeamName: "Sharks", Wins: 11, Losses: 3, PointsFor: 1700.25, PointsAgainst: 1500},
			{Rank: 2, TeamName: "Team bob", Wins: 9, Losses: 5, PointsFor: 1650.5, PointsAgainst: 1580.75},
		},
	})

	rendered := out.String()
	for _, want := range []string{"Sharks", "Team bob", "1700.25", "Backyard Football League"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("standings table missing %q:\n%s", want, rendered)
		}
	}
}

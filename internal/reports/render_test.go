package reports

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/nuchoate/league-archive/internal/domain/recap"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, body []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestRenderWeekly_StandingsTableKeepsSortOrder(t *testing.T) {
	t.Parallel()

	body, err := RenderWeekly(WeeklyPage{
		Season: "2024",
		Week:   2,
		Recap: recap.WeeklyRecap{
			Season: "2024",
			Week:   2,
			Standings: []recap.StandingRow{
				{Rank: 1, TeamName: "Team bob", Wins: 2, PointsFor: 250.5},
				{Rank: 2, TeamName: "Sharks", Wins: 1, PointsFor: 260},
				{Rank: 3, TeamName: "Team u3", Wins: 0, PointsFor: 180},
			},
		},
	})
	require.NoError(t, err)

	doc := parseHTML(t, body)
	var teams []string
	doc.Find("table.standings tbody tr").Each(func(_ int, row *goquery.Selection) {
		teams = append(teams, row.Find("td").Eq(1).Text())
	})
	require.Equal(t, []string{"Team bob", "Sharks", "Team u3"}, teams)
}

func TestRenderWeekly_WinnerMarkedAndTransactionsListed(t *testing.T) {
	t.Parallel()

	body, err := RenderWeekly(WeeklyPage{
		Season: "2024",
		Week:   1,
		Recap: recap.WeeklyRecap{
			Matchups: []recap.MatchupResult{{
				MatchupID: 1,
				TeamOne:   recap.TeamMatchup{TeamName: "Sharks", Points: 120.5},
				TeamTwo:   recap.TeamMatchup{TeamName: "Team bob", Points: 95.25},
				Winner:    "Sharks",
				Margin:    25.25,
			}},
		},
		Transactions: []recap.MappedTransaction{{
			TransactionID: "t1",
			Type:          "waiver",
			Status:        "complete",
			Created:       1726167600000,
			Creator:       "u1",
			Teams:         []string{"Sharks"},
			Adds:          map[string]string{"Jahmyr Gibbs": "Sharks"},
			Drops:         map[string]string{},
			WaiverBid:     10,
		}},
	})
	require.NoError(t, err)

	doc := parseHTML(t, body)
	require.Equal(t, 1, doc.Find("table.matchup td.winner").Length())

	transactions := doc.Find("table.transactions tbody tr")
	require.Equal(t, 1, transactions.Length())
	require.Contains(t, transactions.Text(), "Jahmyr Gibbs")
	require.Contains(t, transactions.Text(), "$10")
	require.Contains(t, transactions.Text(), "Sep 12, 2024")
}

func TestRenderSeason_DraftBoardAndWeekLinks(t *testing.T) {
	t.Parallel()

	body, err := RenderSeason(SeasonPage{
		Season:     "2024",
		LeagueName: "Backyard Football League",
		Champion:   "Sharks",
		Standings: []recap.StandingRow{
			{Rank: 1, TeamName: "Sharks", Wins: 10, PointsFor: 1500},
		},
		Weeks:         []WeekLink{{Week: 1, Href: "week_1.html"}, {Week: 2, Href: "week_2.html"}},
		HasPostseason: true,
		Draft: recap.SeasonDraft{
			Season: "2024",
			Teams: []recap.TeamDraft{{
				RosterID: 1,
				TeamName: "Sharks",
				Picks: []recap.DraftPick{
					{Round: 1, PickNo: 1, PlayerID: "qb1", PlayerName: "Josh Allen", Position: "QB"},
				},
			}},
		},
	})
	require.NoError(t, err)

	doc := parseHTML(t, body)
	require.Contains(t, doc.Find("h1").Text(), "Backyard Football League")
	require.Contains(t, doc.Find("p.champion").Text(), "Sharks")

	links := doc.Find("p.nav a")
	hrefs := make([]string, 0, links.Length())
	links.Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		hrefs = append(hrefs, href)
	})
	require.Contains(t, hrefs, "week_1.html")
	require.Contains(t, hrefs, "postseason.html")

	require.Contains(t, doc.Find("table.draft").Text(), "Josh Allen")
}

func TestRenderIndex_ListsSeasonsWithChampions(t *testing.T) {
	t.Parallel()

	body, err := RenderIndex(IndexPage{Seasons: []SeasonLink{
		{Season: "2023", Href: "2023/index.html"},
		{Season: "2024", Href: "2024/index.html", Champion: "Sharks"},
	}})
	require.NoError(t, err)

	doc := parseHTML(t, body)
	items := doc.Find("ul.seasons li")
	require.Equal(t, 2, items.Length())
	require.False(t, strings.Contains(items.Eq(0).Text(), "champion"))
	require.Contains(t, items.Eq(1).Text(), "champion: Sharks")
}

func TestRenderPostseason_BracketRows(t *testing.T) {
	t.Parallel()

	body, err := RenderPostseason(PostseasonPage{
		Season: "2024",
		Recap: recap.PostseasonRecap{
			Season:   "2024",
			Champion: "Sharks",
			RunnerUp: "Team bob",
			WinnersBracket: []recap.BracketGame{
				{Round: 1, Match: 1, TeamOne: "Sharks", TeamTwo: "Team bob", Winner: "Sharks", Position: 1},
			},
		},
	})
	require.NoError(t, err)

	doc := parseHTML(t, body)
	rows := doc.Find("table.bracket tbody tr")
	require.Equal(t, 1, rows.Length())
	require.Contains(t, rows.Text(), "Sharks vs Team bob")
}

func TestRenderAllTime_StandingsAndBoards(t *testing.T) {
	t.Parallel()

	body, err := RenderAllTime(AllTimePage{Recap: recap.AllTimeRecap{
		Standings: []recap.ManagerRecord{
			{
				Manager: "alice", Seasons: 2, GamesPlayed: 28, Wins: 18, Losses: 10,
				WinPct: 64.29, PointsFor: 3250.75,
				HighScore: recap.GameRef{Value: 171.4, Season: "2023", Week: 9},
			},
			{Manager: "bob", Seasons: 2, GamesPlayed: 28, Wins: 10, Losses: 18, WinPct: 35.71},
		},
		HeadToHead: []recap.ManagerVersus{
			{Manager: "alice", Opponents: []recap.HeadToHead{{Opponent: "bob", Wins: 3, Losses: 1}}},
		},
		WeeklyHighScores: []recap.TeamScore{
			{Points: 171.4, Season: "2023", Week: 9, TeamName: "Sharks"},
		},
		PlayerHighScores: []recap.PlayerScore{
			{Points: 48.2, PlayerName: "Josh Allen", Season: "2023", Week: 9, TeamName: "Sharks"},
		},
	}})
	require.NoError(t, err)

	doc := parseHTML(t, body)

	standings := doc.Find("table.alltime tbody tr")
	require.Equal(t, 2, standings.Length())
	require.Contains(t, standings.Eq(0).Text(), "alice")
	require.Contains(t, standings.Eq(0).Text(), "64.3%")
	require.Contains(t, standings.Eq(0).Text(), "171.40 (2023 Wk9)")

	h2h := doc.Find("table.h2h tbody tr")
	require.Equal(t, 1, h2h.Length())
	require.Contains(t, h2h.Text(), "3-1")

	require.Contains(t, doc.Find("table.high-scores").Text(), "Sharks")
	require.Contains(t, doc.Find("table.player-scores").Text(), "Josh Allen")
}

func TestRenderWeekly_EscapesTeamNames(t *testing.T) {
	t.Parallel()

	body, err := RenderWeekly(WeeklyPage{
		Season: "2024",
		Week:   1,
		Recap: recap.WeeklyRecap{
			Standings: []recap.StandingRow{{Rank: 1, TeamName: `<script>alert(1)</script>`}},
		},
	})
	require.NoError(t, err)
	require.NotContains(t, string(body), "<script>alert(1)</script>")
}

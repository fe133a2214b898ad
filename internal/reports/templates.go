package reports

import (
	"html/template"
	"time"
)

var pageTemplates = template.Must(template.New("reports").
	Funcs(template.FuncMap{
		"pct": func(rating float64) float64 { return rating * 100 },
		"inc": func(i int) int { return i + 1 },
		"msdate": func(ms int64) string {
			if ms <= 0 {
				return ""
			}
			return time.UnixMilli(ms).UTC().Format("Jan 2, 2006")
		},
	}).
	Parse(baseTemplates))

const baseTemplates = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.}}</title>
<style>
body { font-family: Georgia, serif; margin: 2rem auto; max-width: 60rem; padding: 0 1rem; color: #222; }
h1, h2, h3 { font-family: Helvetica, Arial, sans-serif; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #f0f0f0; }
tr:nth-child(even) { background: #fafafa; }
.winner { font-weight: bold; }
.nav a { margin-right: 1rem; }
.award { margin: 0.2rem 0; }
</style>
</head>
<body>
{{end}}

{{define "foot"}}</body>
</html>
{{end}}

{{define "standings_table"}}<table class="standings">
<thead>
<tr><th>Rank</th><th>Team</th><th>W</th><th>L</th><th>T</th><th>PF</th><th>PA</th><th>Moves</th></tr>
</thead>
<tbody>
{{range .}}<tr><td>{{.Rank}}</td><td>{{.TeamName}}</td><td>{{.Wins}}</td><td>{{.Losses}}</td><td>{{.Ties}}</td><td>{{printf "%.2f" .PointsFor}}</td><td>{{printf "%.2f" .PointsAgainst}}</td><td>{{.Transactions}}</td></tr>
{{end}}</tbody>
</table>
{{end}}

{{define "main_index"}}{{template "head" "League Archive"}}
<h1>League Archive</h1>
<ul class="seasons">
{{range .Seasons}}<li><a href="{{.Href}}">{{.Season}}</a>{{if .Champion}} &mdash; champion: {{.Champion}}{{end}}</li>
{{end}}</ul>
{{if .HasAllTime}}<p class="nav"><a href="all_time/index.html">All-Time Records</a></p>{{end}}
{{template "foot"}}{{end}}

{{define "season_index"}}{{template "head" (printf "%s Season" .Season)}}
<p class="nav"><a href="../index.html">All seasons</a></p>
<h1>{{.LeagueName}} &mdash; {{.Season}}</h1>
{{if .Champion}}<p class="champion">Champion: <strong>{{.Champion}}</strong></p>{{end}}
<h2>Final Regular Season Standings</h2>
{{template "standings_table" .Standings}}
<h2>Weeks</h2>
<p class="nav">
{{range .Weeks}}<a href="{{.Href}}">Week {{.Week}}</a>
{{end}}{{if .HasPostseason}}<a href="postseason.html">Postseason</a>{{end}}
</p>
{{if .Draft.Teams}}<h2>Draft Board</h2>
{{range .Draft.Teams}}<h3>{{.TeamName}}</h3>
<table class="draft">
<thead><tr><th>Round</th><th>Pick</th><th>Player</th><th>Pos</th></tr></thead>
<tbody>
{{range .Picks}}<tr><td>{{.Round}}</td><td>{{.PickNo}}</td><td>{{.PlayerName}}</td><td>{{.Position}}</td></tr>
{{end}}</tbody>
</table>
{{end}}{{end}}
{{template "foot"}}{{end}}

{{define "weekly_page"}}{{template "head" (printf "%s Week %d" .Season .Week)}}
<p class="nav"><a href="index.html">{{.Season}} season</a></p>
<h1>{{.Season}} &mdash; Week {{.Week}}</h1>
<h2>Standings</h2>
{{template "standings_table" .Recap.Standings}}
<h2>Matchups</h2>
{{range .Recap.Matchups}}<table class="matchup">
<thead><tr><th colspan="2">{{.TeamOne.TeamName}} {{printf "%.2f" .TeamOne.Points}} &ndash; {{printf "%.2f" .TeamTwo.Points}} {{.TeamTwo.TeamName}}</th></tr></thead>
<tbody>
<tr>
<td{{if eq .Winner .TeamOne.TeamName}} class="winner"{{end}}>
{{range .TeamOne.Starters}}{{.Name}} ({{printf "%.2f" .Points}})<br>{{end}}
</td>
<td{{if eq .Winner .TeamTwo.TeamName}} class="winner"{{end}}>
{{range .TeamTwo.Starters}}{{.Name}} ({{printf "%.2f" .Points}})<br>{{end}}
</td>
</tr>
</tbody>
</table>
{{end}}
<h2>Awards</h2>
<p class="award">Highest score: {{.Recap.Awards.TopScoreTeam}} ({{printf "%.2f" .Recap.Awards.TopScore}})</p>
<p class="award">Lowest score: {{.Recap.Awards.LowScoreTeam}} ({{printf "%.2f" .Recap.Awards.LowScore}})</p>
<p class="award">Best manager: {{.Recap.Awards.BestManagerTeam}} ({{printf "%.1f%%" (pct .Recap.Awards.BestManagerRating)}} of optimal)</p>
<p class="award">Worst manager: {{.Recap.Awards.WorstManagerTeam}} ({{printf "%.1f%%" (pct .Recap.Awards.WorstManagerRating)}} of optimal)</p>
{{if .Recap.Awards.HighestLossTeam}}<p class="award">Toughest loss: {{.Recap.Awards.HighestLossTeam}} ({{printf "%.2f" .Recap.Awards.HighestLossScore}})</p>{{end}}
{{if .Recap.Awards.LowestWinTeam}}<p class="award">Narrowest win: {{.Recap.Awards.LowestWinTeam}} ({{printf "%.2f" .Recap.Awards.LowestWinScore}})</p>{{end}}
{{if .Transactions}}<h2>Transactions</h2>
<table class="transactions">
<thead><tr><th>Date</th><th>Type</th><th>Teams</th><th>Added</th><th>Dropped</th><th>Bid</th></tr></thead>
<tbody>
{{range .Transactions}}<tr>
<td>{{msdate .Created}}</td>
<td>{{.Type}}</td>
<td>{{range $i, $t := .Teams}}{{if $i}}, {{end}}{{$t}}{{end}}</td>
<td>{{range $p, $t := .Adds}}{{$p}} ({{$t}})<br>{{end}}</td>
<td>{{range $p, $t := .Drops}}{{$p}} ({{$t}})<br>{{end}}</td>
<td>{{if .WaiverBid}}${{.WaiverBid}}{{end}}</td>
</tr>
{{end}}</tbody>
</table>
{{end}}
{{template "foot"}}{{end}}

{{define "postseason_page"}}{{template "head" (printf "%s Postseason" .Season)}}
<p class="nav"><a href="index.html">{{.Season}} season</a></p>
<h1>{{.Season}} &mdash; Postseason</h1>
{{if .Recap.Champion}}<p>Champion: <strong>{{.Recap.Champion}}</strong></p>{{end}}
{{if .Recap.RunnerUp}}<p>Runner-up: {{.Recap.RunnerUp}}</p>{{end}}
{{if .Recap.ThirdPlace}}<p>Third place: {{.Recap.ThirdPlace}}</p>{{end}}
<h2>Winners Bracket</h2>
{{template "bracket_table" .Recap.WinnersBracket}}
{{if .Recap.LosersBracket}}<h2>Losers Bracket</h2>
{{template "bracket_table" .Recap.LosersBracket}}{{end}}
{{range .Weeks}}<h2>Week {{.Week}}</h2>
{{range .Matchups}}<p>{{.TeamOne.TeamName}} {{printf "%.2f" .TeamOne.Points}} &ndash; {{printf "%.2f" .TeamTwo.Points}} {{.TeamTwo.TeamName}}{{if .Winner}} ({{.Winner}} wins){{end}}</p>
{{end}}{{end}}
{{template "foot"}}{{end}}

{{define "game_ref"}}{{printf "%.2f" .Value}}{{if .Season}} ({{.Season}} Wk{{.Week}}){{end}}{{end}}

{{define "all_time_page"}}{{template "head" "All-Time Records"}}
<p class="nav"><a href="../index.html">All seasons</a></p>
<h1>All-Time Records</h1>
<h2>Career Standings</h2>
<table class="alltime">
<thead>
<tr><th>Rank</th><th>Manager</th><th>Seasons</th><th>GP</th><th>W</th><th>L</th><th>Win %</th><th>PF</th><th>Avg PF</th><th>PA</th><th>Avg PA</th><th>Avg Margin</th><th>High Score</th><th>Low Score</th><th>Median Win %</th><th>Lucky Ws</th><th>Unlucky Ls</th><th>StDev</th></tr>
</thead>
<tbody>
{{range $i, $row := .Recap.Standings}}<tr><td>{{inc $i}}</td><td>{{$row.Manager}}</td><td>{{$row.Seasons}}</td><td>{{$row.GamesPlayed}}</td><td>{{$row.Wins}}</td><td>{{$row.Losses}}</td><td>{{printf "%.1f%%" $row.WinPct}}</td><td>{{printf "%.2f" $row.PointsFor}}</td><td>{{printf "%.2f" $row.AvgPointsFor}}</td><td>{{printf "%.2f" $row.PointsAgainst}}</td><td>{{printf "%.2f" $row.AvgPointsAgainst}}</td><td>{{printf "%.2f" $row.AvgMargin}}</td><td>{{template "game_ref" $row.HighScore}}</td><td>{{template "game_ref" $row.LowScore}}</td><td>{{printf "%.1f%%" $row.MedianWinPct}}</td><td>{{$row.LuckyWins}}</td><td>{{$row.UnluckyLosses}}</td><td>{{printf "%.2f" $row.PointsStdev}}</td></tr>
{{end}}</tbody>
</table>
<h2>Head-to-Head Records</h2>
<table class="h2h">
<thead><tr><th>Manager</th><th>Opponent</th><th>Record</th></tr></thead>
<tbody>
{{range .Recap.HeadToHead}}{{$manager := .Manager}}{{range .Opponents}}<tr><td>{{$manager}}</td><td>{{.Opponent}}</td><td>{{.Wins}}-{{.Losses}}</td></tr>
{{end}}{{end}}</tbody>
</table>
<h2>Weekly High Scores</h2>
<table class="high-scores">
<thead><tr><th>Rank</th><th>Points</th><th>Season</th><th>Week</th><th>Team</th></tr></thead>
<tbody>
{{range $i, $s := .Recap.WeeklyHighScores}}<tr><td>{{inc $i}}</td><td>{{printf "%.2f" $s.Points}}</td><td>{{$s.Season}}</td><td>{{$s.Week}}</td><td>{{$s.TeamName}}</td></tr>
{{end}}</tbody>
</table>
<h2>Player High Scores</h2>
<table class="player-scores">
<thead><tr><th>Rank</th><th>Points</th><th>Player</th><th>Season</th><th>Week</th><th>Team</th></tr></thead>
<tbody>
{{range $i, $s := .Recap.PlayerHighScores}}<tr><td>{{inc $i}}</td><td>{{printf "%.2f" $s.Points}}</td><td>{{$s.PlayerName}}</td><td>{{$s.Season}}</td><td>{{$s.Week}}</td><td>{{$s.TeamName}}</td></tr>
{{end}}</tbody>
</table>
{{template "foot"}}{{end}}

{{define "bracket_table"}}<table class="bracket">
<thead><tr><th>Round</th><th>Matchup</th><th>Winner</th></tr></thead>
<tbody>
{{range .}}<tr><td>{{.Round}}</td><td>{{.TeamOne}} vs {{.TeamTwo}}</td><td>{{.Winner}}</td></tr>
{{end}}</tbody>
</table>
{{end}}
`

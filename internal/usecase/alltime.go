package usecase

import (
	"fmt"
	"math"
	"sort"

	"github.com/nuchoate/league-archive/external/sleeper"
	"github.com/nuchoate/league-archive/internal/domain/recap"
	"github.com/nuchoate/league-archive/internal/domain/snapshot"
)

// allTimeBoardSize caps the weekly and player high-score boards.
const allTimeBoardSize = 10

// managerGame is one head-to-head result attributed to a manager.
// A tie is recorded as not won for both sides.
type managerGame struct {
	season    string
	week      int
	points    float64
	oppPoints float64
	opponent  string
	won       bool
}

// managerTally accumulates one manager's games across every season.
// Keyed by owner user id so the record survives roster-id reshuffles.
type managerTally struct {
	name             string
	seasons          map[string]bool
	games            []managerGame
	weeksAboveMedian int
	luckyWins        int
	unluckyLosses    int
	topScoreWeeks    int
	lowScoreWeeks    int
}

// ProcessAllTime folds every archived season into one cross-season
// record: career standings per manager, head-to-head records and the
// all-time weekly and player high-score boards.
func (s *MungeService) ProcessAllTime() error {
	seasons, err := s.raw.Seasons()
	if err != nil {
		return fmt.Errorf("list raw seasons: %w", err)
	}
	if len(seasons) == 0 {
		return fmt.Errorf("%w: no archived seasons", ErrNotFound)
	}

	var players map[string]sleeper.Player
	if err := s.decode(snapshot.Key{Endpoint: snapshot.EndpointPlayers}, &players); err != nil {
		s.logger.Warn("player index unavailable, all-time boards fall back to ids", "error", err)
	}

	tallies := make(map[string]*managerTally)
	var teamScores []recap.TeamScore
	var playerScores []recap.PlayerScore

	for _, season := range seasons {
		s.collectAllTimeSeason(season, players, tallies, &teamScores, &playerScores)
	}

	rec := recap.AllTimeRecap{
		Standings:        allTimeStandings(tallies),
		HeadToHead:       headToHeadRecords(tallies),
		WeeklyHighScores: topTeamScores(teamScores),
		PlayerHighScores: topPlayerScores(playerScores),
	}

	if err := s.library.WriteAllTime(rec); err != nil {
		return fmt.Errorf("write all-time recap: %w", err)
	}

	s.logger.Info("munged all-time records",
		"seasons", len(seasons),
		"managers", len(rec.Standings),
	)

	return nil
}

func (s *MungeService) collectAllTimeSeason(
	season string,
	players map[string]sleeper.Player,
	tallies map[string]*managerTally,
	teamScores *[]recap.TeamScore,
	playerScores *[]recap.PlayerScore,
) {
	var league sleeper.League
	if err := s.decode(snapshot.Key{Season: season, Endpoint: snapshot.EndpointLeagueInfo}, &league); err != nil {
		s.logger.Warn("all-time: season skipped, league info unavailable", "season", season, "error", err)
		return
	}

	var users []sleeper.User
	if err := s.decode(snapshot.Key{Season: season, Endpoint: snapshot.EndpointUsers}, &users); err != nil {
		s.logger.Warn("all-time: users snapshot unavailable", "season", season, "error", err)
	}

	var rosters []sleeper.Roster
	if err := s.decode(snapshot.Key{Season: season, Endpoint: snapshot.EndpointRosters}, &rosters); err != nil {
		s.logger.Warn("all-time: season skipped, rosters unavailable", "season", season, "error", err)
		return
	}

	names := buildNameTable(players, users, rosters)

	rosterToUser := make(map[int]string, len(rosters))
	for _, roster := range rosters {
		if roster.RosterID == 0 || roster.OwnerID == "" {
			continue
		}
		rosterToUser[roster.RosterID] = roster.OwnerID
		ensureTally(tallies, roster.OwnerID).seasons[season] = true
	}
	for _, user := range users {
		if tally, ok := tallies[user.UserID]; ok && user.DisplayName != "" {
			tally.name = user.DisplayName
		}
	}

	lastWeek := league.Settings.LastScoredLeg
	playoffStart := league.Settings.PlayoffWeekStart

	lastRegularWeek := lastWeek
	if playoffStart > 0 && playoffStart <= lastWeek {
		lastRegularWeek = playoffStart - 1
	}

	for week := 1; week <= lastWeek; week++ {
		var matchups []sleeper.Matchup
		if err := s.decode(snapshot.Key{Season: season, Week: week, Endpoint: snapshot.EndpointMatchups}, &matchups); err != nil {
			continue
		}

		collectHighScores(matchups, season, week, names, teamScores, playerScores)

		// Standings and head-to-head cover the regular season only.
		if week <= lastRegularWeek {
			tallyWeek(matchups, season, week, rosterToUser, tallies)
		}
	}
}

// collectHighScores records every team total and player line of a week
// for the all-time boards, postseason included.
func collectHighScores(
	matchups []sleeper.Matchup,
	season string,
	week int,
	names nameTable,
	teamScores *[]recap.TeamScore,
	playerScores *[]recap.PlayerScore,
) {
	for _, m := range matchups {
		if m.RosterID == 0 {
			continue
		}
		team := names.teamName(m.RosterID)
		*teamScores = append(*teamScores, recap.TeamScore{
			Points:   round2(m.Points),
			Season:   season,
			Week:     week,
			TeamName: team,
		})

		playerIDs := make([]string, 0, len(m.PlayersPoints))
		for playerID := range m.PlayersPoints {
			playerIDs = append(playerIDs, playerID)
		}
		sort.Strings(playerIDs)
		for _, playerID := range playerIDs {
			*playerScores = append(*playerScores, recap.PlayerScore{
				Points:     round2(m.PlayersPoints[playerID]),
				PlayerName: names.playerName(playerID),
				Season:     season,
				Week:       week,
				TeamName:   team,
			})
		}
	}
}

// tallyWeek folds one regular-season week into the manager tallies:
// the game itself plus the median, lucky-win and extreme-score counts.
func tallyWeek(
	matchups []sleeper.Matchup,
	season string,
	week int,
	rosterToUser map[int]string,
	tallies map[string]*managerTally,
) {
	type weekSide struct {
		tally *managerTally
		game  managerGame
	}

	var sides []weekSide
	var weekScores []float64
	for _, pair := range pairMatchups(matchups) {
		userOne, okOne := rosterToUser[pair[0].RosterID]
		userTwo, okTwo := rosterToUser[pair[1].RosterID]
		if !okOne || !okTwo {
			continue
		}

		weekScores = append(weekScores, pair[0].Points, pair[1].Points)
		sides = append(sides,
			weekSide{ensureTally(tallies, userOne), managerGame{
				season: season, week: week,
				points: pair[0].Points, oppPoints: pair[1].Points,
				opponent: userTwo, won: pair[0].Points > pair[1].Points,
			}},
			weekSide{ensureTally(tallies, userTwo), managerGame{
				season: season, week: week,
				points: pair[1].Points, oppPoints: pair[0].Points,
				opponent: userOne, won: pair[1].Points > pair[0].Points,
			}},
		)
	}
	if len(weekScores) == 0 {
		return
	}

	median := medianOf(weekScores)
	weekMax, weekMin := weekScores[0], weekScores[0]
	for _, score := range weekScores[1:] {
		if score > weekMax {
			weekMax = score
		}
		if score < weekMin {
			weekMin = score
		}
	}

	for _, side := range sides {
		tally, game := side.tally, side.game
		tally.games = append(tally.games, game)
		if game.points > median {
			tally.weeksAboveMedian++
		}
		if game.won && game.points < median {
			tally.luckyWins++
		}
		if !game.won && game.points > median {
			tally.unluckyLosses++
		}
		if game.points == weekMax {
			tally.topScoreWeeks++
		}
		if game.points == weekMin {
			tally.lowScoreWeeks++
		}
	}
}

func ensureTally(tallies map[string]*managerTally, userID string) *managerTally {
	tally, ok := tallies[userID]
	if !ok {
		tally = &managerTally{name: userID, seasons: make(map[string]bool)}
		tallies[userID] = tally
	}
	return tally
}

// record turns the tally into a career line. Returns false for a
// manager who never played a counted game.
func (t *managerTally) record() (recap.ManagerRecord, bool) {
	games := len(t.games)
	if games == 0 {
		return recap.ManagerRecord{}, false
	}

	rec := recap.ManagerRecord{
		Manager:       t.name,
		Seasons:       len(t.seasons),
		GamesPlayed:   games,
		LuckyWins:     t.luckyWins,
		UnluckyLosses: t.unluckyLosses,
		TopScoreWeeks: t.topScoreWeeks,
		LowScoreWeeks: t.lowScoreWeeks,
	}

	var pf, pa, winMarginSum, lossMarginSum float64
	wins := 0
	for i, game := range t.games {
		pf += game.points
		pa += game.oppPoints
		margin := game.points - game.oppPoints

		if game.won {
			wins++
			winMarginSum += margin
			if rec.LargestWin.Season == "" || margin > rec.LargestWin.Value {
				rec.LargestWin = recap.GameRef{Value: round2(margin), Season: game.season, Week: game.week}
			}
		} else {
			lossMarginSum += margin
			if rec.LargestLoss.Season == "" || margin < rec.LargestLoss.Value {
				rec.LargestLoss = recap.GameRef{Value: round2(margin), Season: game.season, Week: game.week}
			}
		}

		if i == 0 || game.points > rec.HighScore.Value {
			rec.HighScore = recap.GameRef{Value: round2(game.points), Season: game.season, Week: game.week}
		}
		if i == 0 || game.points < rec.LowScore.Value {
			rec.LowScore = recap.GameRef{Value: round2(game.points), Season: game.season, Week: game.week}
		}
	}
	losses := games - wins

	rec.Wins = wins
	rec.Losses = losses
	rec.WinPct = round2(float64(wins) / float64(games) * 100)
	rec.PointsFor = round2(pf)
	rec.AvgPointsFor = round2(pf / float64(games))
	rec.PointsAgainst = round2(pa)
	rec.AvgPointsAgainst = round2(pa / float64(games))
	rec.AvgMargin = round2((pf - pa) / float64(games))
	if wins > 0 {
		rec.AvgWinMargin = round2(winMarginSum / float64(wins))
	}
	if losses > 0 {
		rec.AvgLossMargin = round2(lossMarginSum / float64(losses))
	}
	rec.MedianWinPct = round2(float64(t.weeksAboveMedian) / float64(games) * 100)
	rec.PointsStdev = round2(t.pointsStdev())

	return rec, true
}

func (t *managerTally) pointsStdev() float64 {
	n := len(t.games)
	if n < 2 {
		return 0
	}

	var sum float64
	for _, game := range t.games {
		sum += game.points
	}
	mean := sum / float64(n)

	var variance float64
	for _, game := range t.games {
		diff := game.points - mean
		variance += diff * diff
	}

	return math.Sqrt(variance / float64(n-1))
}

// allTimeStandings sorts careers by win percentage, then points for,
// then manager name for a stable total order.
func allTimeStandings(tallies map[string]*managerTally) []recap.ManagerRecord {
	out := make([]recap.ManagerRecord, 0, len(tallies))
	for _, tally := range tallies {
		if rec, ok := tally.record(); ok {
			out = append(out, rec)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].WinPct != out[j].WinPct {
			return out[i].WinPct > out[j].WinPct
		}
		if out[i].PointsFor != out[j].PointsFor {
			return out[i].PointsFor > out[j].PointsFor
		}
		return out[i].Manager < out[j].Manager
	})

	return out
}

// headToHeadRecords builds every manager's record against the
// opponents they actually faced, both axes sorted by manager name.
func headToHeadRecords(tallies map[string]*managerTally) []recap.ManagerVersus {
	byName := func(a, b string) bool {
		nameA, nameB := tallies[a].name, tallies[b].name
		if nameA != nameB {
			return nameA < nameB
		}
		return a < b
	}

	userIDs := make([]string, 0, len(tallies))
	for userID, tally := range tallies {
		if len(tally.games) > 0 {
			userIDs = append(userIDs, userID)
		}
	}
	sort.SliceStable(userIDs, func(i, j int) bool { return byName(userIDs[i], userIDs[j]) })

	out := make([]recap.ManagerVersus, 0, len(userIDs))
	for _, userID := range userIDs {
		tally := tallies[userID]

		byOpponent := make(map[string]*recap.HeadToHead)
		var opponentIDs []string
		for _, game := range tally.games {
			h2h, ok := byOpponent[game.opponent]
			if !ok {
				h2h = &recap.HeadToHead{Opponent: tallies[game.opponent].name}
				byOpponent[game.opponent] = h2h
				opponentIDs = append(opponentIDs, game.opponent)
			}
			if game.won {
				h2h.Wins++
			} else {
				h2h.Losses++
			}
		}
		sort.SliceStable(opponentIDs, func(i, j int) bool { return byName(opponentIDs[i], opponentIDs[j]) })

		opponents := make([]recap.HeadToHead, 0, len(opponentIDs))
		for _, opponentID := range opponentIDs {
			opponents = append(opponents, *byOpponent[opponentID])
		}
		out = append(out, recap.ManagerVersus{Manager: tally.name, Opponents: opponents})
	}

	return out
}

func topTeamScores(scores []recap.TeamScore) []recap.TeamScore {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Points != scores[j].Points {
			return scores[i].Points > scores[j].Points
		}
		if scores[i].Season != scores[j].Season {
			return scores[i].Season < scores[j].Season
		}
		if scores[i].Week != scores[j].Week {
			return scores[i].Week < scores[j].Week
		}
		return scores[i].TeamName < scores[j].TeamName
	})
	if len(scores) > allTimeBoardSize {
		scores = scores[:allTimeBoardSize]
	}
	return scores
}

func topPlayerScores(scores []recap.PlayerScore) []recap.PlayerScore {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Points != scores[j].Points {
			return scores[i].Points > scores[j].Points
		}
		if scores[i].Season != scores[j].Season {
			return scores[i].Season < scores[j].Season
		}
		if scores[i].Week != scores[j].Week {
			return scores[i].Week < scores[j].Week
		}
		if scores[i].PlayerName != scores[j].PlayerName {
			return scores[i].PlayerName < scores[j].PlayerName
		}
		return scores[i].TeamName < scores[j].TeamName
	})
	if len(scores) > allTimeBoardSize {
		scores = scores[:allTimeBoardSize]
	}
	return scores
}

func medianOf(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

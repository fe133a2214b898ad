package usecase

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/nuchoate/league-archive/external/sleeper"
	"github.com/nuchoate/league-archive/internal/domain/recap"
	"github.com/nuchoate/league-archive/internal/domain/snapshot"
	"github.com/nuchoate/league-archive/internal/platform/logging"
)

// MungeService flattens raw snapshots into readable records. It is a
// pure function of the raw tree: running it twice over the same
// snapshots produces byte-identical munged files.
type MungeService struct {
	raw     snapshot.Store
	library recap.Library
	logger  *logging.Logger
}

func NewMungeService(raw snapshot.Store, library recap.Library, logger *logging.Logger) *MungeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MungeService{raw: raw, library: library, logger: logger}
}

// Seasons lists the seasons present in the raw tree.
func (s *MungeService) Seasons() ([]string, error) {
	return s.raw.Seasons()
}

func (s *MungeService) ProcessAllSeasons() error {
	seasons, err := s.raw.Seasons()
	if err != nil {
		return fmt.Errorf("list raw seasons: %w", err)
	}
	if len(seasons) == 0 {
		return fmt.Errorf("%w: no archived seasons", ErrNotFound)
	}

	var errs []error
	for _, season := range seasons {
		if err := s.ProcessSeason(season); err != nil {
			s.logger.Error("munge season failed", "season", season, "error", err)
			errs = append(errs, fmt.Errorf("season %s: %w", season, err))
		}
	}

	if err := s.ProcessAllTime(); err != nil {
		s.logger.Error("munge all-time records failed", "error", err)
		errs = append(errs, fmt.Errorf("all-time: %w", err))
	}

	return errors.Join(errs...)
}

func (s *MungeService) ProcessSeason(season string) error {
	season = strings.TrimSpace(season)
	if season == "" {
		return fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if !s.raw.HasSeason(season) {
		return fmt.Errorf("%w: season %s has no raw snapshots", ErrNotFound, season)
	}

	var league sleeper.League
	if err := s.decode(snapshot.Key{Season: season, Endpoint: snapshot.EndpointLeagueInfo}, &league); err != nil {
		return fmt.Errorf("load league info: %w", err)
	}

	names := s.loadNameTable(season)

	lastWeek := league.Settings.LastScoredLeg
	playoffStart := league.Settings.PlayoffWeekStart

	lastRegularWeek := lastWeek
	if playoffStart > 0 && playoffStart <= lastWeek {
		lastRegularWeek = playoffStart - 1
	}

	book := newStandingsBook(names)
	for week := 1; week <= lastRegularWeek; week++ {
		if err := s.mungeWeek(season, week, names, league.RosterPositions, book, false); err != nil {
			return err
		}
	}

	finalStandings := book.standings()
	if err := s.library.WriteSeasonRecap(recap.SeasonRecap{
		Season:     season,
		LeagueName: league.Name,
		Weeks:      lastRegularWeek,
		Standings:  finalStandings,
	}); err != nil {
		return fmt.Errorf("write season recap: %w", err)
	}

	if playoffStart > 0 && playoffStart <= lastWeek {
		for week := playoffStart; week <= lastWeek; week++ {
			if err := s.mungeWeek(season, week, names, league.RosterPositions, book, true); err != nil {
				return err
			}
		}
		if err := s.mungeBrackets(season, names); err != nil {
			return err
		}
	}

	if err := s.mungeDraft(season, names); err != nil {
		return err
	}

	s.logger.Info("munged season",
		"season", season,
		"regular_weeks", lastRegularWeek,
		"teams", len(finalStandings),
	)

	return nil
}

// mungeWeek maps one week of matchups and transactions. A missing or
// unreadable matchups snapshot skips the week; write failures are fatal.
func (s *MungeService) mungeWeek(season string, week int, names nameTable, rosterPositions []string, book *standingsBook, postseason bool) error {
	var matchups []sleeper.Matchup
	if err := s.decode(snapshot.Key{Season: season, Week: week, Endpoint: snapshot.EndpointMatchups}, &matchups); err != nil {
		s.logger.Warn("skip week: matchups unavailable", "season", season, "week", week, "error", err)
		return nil
	}

	var transactions []sleeper.Transaction
	if err := s.decode(snapshot.Key{Season: season, Week: week, Endpoint: snapshot.EndpointTransactions}, &transactions); err != nil {
		s.logger.Warn("week has no readable transactions", "season", season, "week", week, "error", err)
		transactions = nil
	}

	rec := recap.WeeklyRecap{
		Season:   season,
		Week:     week,
		Matchups: mapMatchupResults(matchups, names),
	}

	if postseason {
		if err := s.library.WritePostseasonWeek(season, week, rec); err != nil {
			return fmt.Errorf("write postseason week %d: %w", week, err)
		}
		return nil
	}

	book.applyMatchups(matchups)
	book.applyTransactions(transactions)
	rec.Standings = book.standings()
	rec.Awards = calculateAwards(matchups, names, rosterPositions)

	if err := s.library.WriteWeeklyRecap(season, week, rec); err != nil {
		return fmt.Errorf("write weekly recap %d: %w", week, err)
	}
	if err := s.library.WriteWeeklyTransactions(season, week, mapTransactions(transactions, names)); err != nil {
		return fmt.Errorf("write weekly transactions %d: %w", week, err)
	}

	return nil
}

func (s *MungeService) mungeBrackets(season string, names nameTable) error {
	var winners, losers []sleeper.BracketGame
	winnersErr := s.decode(snapshot.Key{Season: season, Endpoint: snapshot.EndpointWinnersBracket}, &winners)
	losersErr := s.decode(snapshot.Key{Season: season, Endpoint: snapshot.EndpointLosersBracket}, &losers)
	if winnersErr != nil && losersErr != nil {
		s.logger.Warn("skip postseason recap: no readable brackets", "season", season, "error", winnersErr)
		return nil
	}

	rec := recap.PostseasonRecap{
		Season:         season,
		WinnersBracket: mapBracket(winners, names),
		LosersBracket:  mapBracket(losers, names),
	}
	rec.Champion, rec.RunnerUp, rec.ThirdPlace = bracketPlacements(winners, names)

	if err := s.library.WritePostseasonRecap(rec); err != nil {
		return fmt.Errorf("write postseason recap: %w", err)
	}

	return nil
}

func (s *MungeService) mungeDraft(season string, names nameTable) error {
	raw, err := s.raw.ReadRaw(snapshot.Key{Season: season, Endpoint: snapshot.EndpointDraft})
	if err != nil {
		s.logger.Debug("season has no draft snapshot", "season", season)
		return nil
	}

	var doc draftSnapshot
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("skip draft: snapshot undecodable", "season", season, "error", err)
		return nil
	}

	if err := s.library.WriteDraft(mapDraft(season, doc.Picks, names)); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}

	return nil
}

func (s *MungeService) loadNameTable(season string) nameTable {
	var players map[string]sleeper.Player
	if err := s.decode(snapshot.Key{Endpoint: snapshot.EndpointPlayers}, &players); err != nil {
		s.logger.Warn("player index unavailable, names fall back to ids", "error", err)
	}

	var users []sleeper.User
	if err := s.decode(snapshot.Key{Season: season, Endpoint: snapshot.EndpointUsers}, &users); err != nil {
		s.logger.Warn("users snapshot unavailable, team names fall back to roster ids", "season", season, "error", err)
	}

	var rosters []sleeper.Roster
	if err := s.decode(snapshot.Key{Season: season, Endpoint: snapshot.EndpointRosters}, &rosters); err != nil {
		s.logger.Warn("rosters snapshot unavailable, team names fall back to roster ids", "season", season, "error", err)
	}

	return buildNameTable(players, users, rosters)
}

func (s *MungeService) decode(key snapshot.Key, target any) error {
	raw, err := s.raw.ReadRaw(key)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s snapshot: %w", key.Endpoint, err)
	}
	return nil
}

// draftSnapshot is the combined raw document the fetcher assembles from
// the drafts and picks endpoints.
type draftSnapshot struct {
	Drafts []sleeper.Draft     `json:"drafts"`
	Picks  []sleeper.DraftPick `json:"picks"`
}

func mapMatchupResults(matchups []sleeper.Matchup, names nameTable) []recap.MatchupResult {
	pairs := pairMatchups(matchups)
	out := make([]recap.MatchupResult, 0, len(pairs))
	for _, pair := range pairs {
		result := recap.MatchupResult{
			MatchupID: pair[0].MatchupID,
			TeamOne:   mapTeamMatchup(pair[0], names),
			TeamTwo:   mapTeamMatchup(pair[1], names),
			Margin:    round2(absFloat(pair[0].Points - pair[1].Points)),
		}
		switch {
		case pair[0].Points > pair[1].Points:
			result.Winner = result.TeamOne.TeamName
		case pair[1].Points > pair[0].Points:
			result.Winner = result.TeamTwo.TeamName
		}
		out = append(out, result)
	}
	return out
}

func mapTeamMatchup(m sleeper.Matchup, names nameTable) recap.TeamMatchup {
	starters := make(map[string]bool, len(m.Starters))
	starterLines := make([]recap.PlayerLine, 0, len(m.Starters))
	for _, playerID := range m.Starters {
		starters[playerID] = true
		starterLines = append(starterLines, mapPlayerLine(playerID, m.PlayersPoints, names))
	}

	bench := make([]string, 0, len(m.Players))
	for _, playerID := range m.Players {
		if !starters[playerID] {
			bench = append(bench, playerID)
		}
	}
	sort.Strings(bench)

	benchLines := make([]recap.PlayerLine, 0, len(bench))
	for _, playerID := range bench {
		benchLines = append(benchLines, mapPlayerLine(playerID, m.PlayersPoints, names))
	}

	return recap.TeamMatchup{
		RosterID: m.RosterID,
		TeamName: names.teamName(m.RosterID),
		Points:   round2(m.Points),
		Starters: starterLines,
		Bench:    benchLines,
	}
}

func mapPlayerLine(playerID string, points map[string]float64, names nameTable) recap.PlayerLine {
	return recap.PlayerLine{
		PlayerID:  playerID,
		Name:      names.playerName(playerID),
		Points:    round2(points[playerID]),
		Positions: names.positions(playerID),
	}
}

func calculateAwards(matchups []sleeper.Matchup, names nameTable, rosterPositions []string) recap.Awards {
	var awards recap.Awards
	first := true
	bestRating, worstRating := 0.0, 0.0

	for _, m := range matchups {
		if m.RosterID == 0 {
			continue
		}
		team := names.teamName(m.RosterID)

		if first || m.Points > awards.TopScore {
			awards.TopScore = m.Points
			awards.TopScoreTeam = team
		}
		if first || m.Points < awards.LowScore {
			awards.LowScore = m.Points
			awards.LowScoreTeam = team
		}

		rating := lineupRating(m, names, rosterPositions)
		if first || rating > bestRating {
			bestRating = rating
			awards.BestManagerTeam = team
		}
		if first || rating < worstRating {
			worstRating = rating
			awards.WorstManagerTeam = team
		}

		first = false
	}

	awards.TopScore = round2(awards.TopScore)
	awards.LowScore = round2(awards.LowScore)
	awards.BestManagerRating = round4(bestRating)
	awards.WorstManagerRating = round4(worstRating)

	// Hard-luck awards need an outcome, so only paired matchups count.
	// A tie is treated as a loss for both sides.
	for _, pair := range pairMatchups(matchups) {
		for i := range pair {
			side, opp := pair[i], pair[1-i]
			team := names.teamName(side.RosterID)
			if side.Points > opp.Points {
				if awards.LowestWinTeam == "" || side.Points < awards.LowestWinScore {
					awards.LowestWinTeam = team
					awards.LowestWinScore = round2(side.Points)
				}
			} else {
				if awards.HighestLossTeam == "" || side.Points > awards.HighestLossScore {
					awards.HighestLossTeam = team
					awards.HighestLossScore = round2(side.Points)
				}
			}
		}
	}

	return awards
}

// lineupRating is actual starter points over the optimal lineup total,
// so 1.0 means no points were left on the bench.
func lineupRating(m sleeper.Matchup, names nameTable, rosterPositions []string) float64 {
	optimal := optimalLineupPoints(m.PlayersPoints, names, rosterPositions)
	if optimal <= 0 {
		return 1
	}

	actual := 0.0
	for _, points := range m.StartersPoints {
		actual += points
	}
	if actual == 0 && len(m.StartersPoints) == 0 {
		actual = m.Points
	}

	return actual / optimal
}

// mapTransactions flattens every transaction subtype into one uniform
// row. The subtype string is copied verbatim so new provider types show
// up unchanged instead of failing.
func mapTransactions(transactions []sleeper.Transaction, names nameTable) []recap.MappedTransaction {
	out := make([]recap.MappedTransaction, 0, len(transactions))
	for _, tx := range transactions {
		row := recap.MappedTransaction{
			TransactionID: tx.TransactionID,
			Type:          tx.Type,
			Status:        tx.Status,
			Created:       tx.Created,
			Creator:       tx.Creator,
			Teams:         make([]string, 0, len(tx.RosterIDs)),
			Adds:          make(map[string]string, len(tx.Adds)),
			Drops:         make(map[string]string, len(tx.Drops)),
			WaiverBid:     tx.Settings.WaiverBid,
		}
		// The first roster id is the initiating side.
		if len(tx.RosterIDs) > 0 {
			row.CreatorTeamName = names.teamName(tx.RosterIDs[0])
		}
		for _, rosterID := range tx.RosterIDs {
			row.Teams = append(row.Teams, names.teamName(rosterID))
		}
		for playerID, rosterID := range tx.Adds {
			row.Adds[names.playerName(playerID)] = names.teamName(rosterID)
		}
		for playerID, rosterID := range tx.Drops {
			row.Drops[names.playerName(playerID)] = names.teamName(rosterID)
		}
		out = append(out, row)
	}
	return out
}

func mapBracket(games []sleeper.BracketGame, names nameTable) []recap.BracketGame {
	out := make([]recap.BracketGame, 0, len(games))
	for _, game := range games {
		out = append(out, recap.BracketGame{
			Round:    game.Round,
			Match:    game.Match,
			TeamOne:  bracketTeamName(game.Team1, names),
			TeamTwo:  bracketTeamName(game.Team2, names),
			Winner:   bracketTeamName(game.Winner, names),
			Loser:    bracketTeamName(game.Loser, names),
			Position: game.Position,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].Match < out[j].Match
	})
	return out
}

func bracketTeamName(rosterID *int, names nameTable) string {
	if rosterID == nil {
		return ""
	}
	return names.teamName(*rosterID)
}

// bracketPlacements reads the championship and third-place games out of
// the winners bracket. Falls back to the deepest round when the
// provider omits placement markers.
func bracketPlacements(winners []sleeper.BracketGame, names nameTable) (champion, runnerUp, thirdPlace string) {
	var final, third *sleeper.BracketGame
	for i := range winners {
		game := &winners[i]
		switch game.Position {
		case 1:
			final = game
		case 3:
			third = game
		}
	}

	if final == nil {
		for i := range winners {
			game := &winners[i]
			if game.Winner == nil {
				continue
			}
			if final == nil || game.Round > final.Round {
				final = game
			}
		}
	}

	if final != nil {
		champion = bracketTeamName(final.Winner, names)
		runnerUp = bracketTeamName(final.Loser, names)
	}
	if third != nil {
		thirdPlace = bracketTeamName(third.Winner, names)
	}

	return champion, runnerUp, thirdPlace
}

func mapDraft(season string, picks []sleeper.DraftPick, names nameTable) recap.SeasonDraft {
	byRoster := make(map[int][]recap.DraftPick)
	for _, pick := range picks {
		byRoster[pick.RosterID] = append(byRoster[pick.RosterID], recap.DraftPick{
			Round:      pick.Round,
			PickNo:     pick.PickNo,
			PlayerID:   pick.PlayerID,
			PlayerName: draftPickName(pick, names),
			Position:   pick.Metadata.Position,
		})
	}

	rosterIDs := make([]int, 0, len(byRoster))
	for rosterID := range byRoster {
		rosterIDs = append(rosterIDs, rosterID)
	}
	sort.Ints(rosterIDs)

	teams := make([]recap.TeamDraft, 0, len(rosterIDs))
	for _, rosterID := range rosterIDs {
		teamPicks := byRoster[rosterID]
		sort.SliceStable(teamPicks, func(i, j int) bool {
			if teamPicks[i].Round != teamPicks[j].Round {
				return teamPicks[i].Round < teamPicks[j].Round
			}
			return teamPicks[i].PickNo < teamPicks[j].PickNo
		})
		teams = append(teams, recap.TeamDraft{
			RosterID: rosterID,
			TeamName: names.teamName(rosterID),
			Picks:    teamPicks,
		})
	}

	return recap.SeasonDraft{Season: season, Teams: teams}
}

func draftPickName(pick sleeper.DraftPick, names nameTable) string {
	if name, ok := names.playerNames[pick.PlayerID]; ok {
		return name
	}
	if pick.Metadata.FirstName != "" || pick.Metadata.LastName != "" {
		return strings.TrimSpace(pick.Metadata.FirstName + " " + pick.Metadata.LastName)
	}
	return pick.PlayerID
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

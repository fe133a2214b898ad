package recap

// Flattened, human-readable records produced from raw snapshots. These
// are the shapes written to the munged tree and consumed by the report
// generator, so field order here is part of the output contract.

// StandingRow is one team's cumulative line through a given week.
type StandingRow struct {
	Rank          int     `json:"rank"`
	TeamName      string  `json:"team_name"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
	Transactions  int     `json:"transactions"`
}

// PlayerLine is one rostered player with the points he scored that week.
type PlayerLine struct {
	PlayerID  string   `json:"player_id"`
	Name      string   `json:"name"`
	Points    float64  `json:"points"`
	Positions []string `json:"positions,omitempty"`
}

// TeamMatchup is one side of a head-to-head pairing.
type TeamMatchup struct {
	RosterID int          `json:"roster_id"`
	TeamName string       `json:"team_name"`
	Points   float64      `json:"points"`
	Starters []PlayerLine `json:"starters"`
	Bench    []PlayerLine `json:"bench"`
}

// MatchupResult pairs both sides of a matchup with its outcome.
type MatchupResult struct {
	MatchupID int         `json:"matchup_id"`
	TeamOne   TeamMatchup `json:"team_one"`
	TeamTwo   TeamMatchup `json:"team_two"`
	Winner    string      `json:"winner"`
	Margin    float64     `json:"margin"`
}

// MappedTransaction is the uniform row every transaction subtype maps
// to. Adds and drops are keyed by player name and resolve to the team
// that gained or lost the player; unknown subtypes keep the provider's
// type string and empty maps.
type MappedTransaction struct {
	TransactionID   string            `json:"transaction_id"`
	Type            string            `json:"type"`
	Status          string            `json:"status"`
	Created         int64             `json:"created,omitempty"`
	Creator         string            `json:"creator,omitempty"`
	CreatorTeamName string            `json:"creator_team_name,omitempty"`
	Teams           []string          `json:"teams"`
	Adds            map[string]string `json:"adds"`
	Drops           map[string]string `json:"drops"`
	WaiverBid       int               `json:"waiver_bid,omitempty"`
}

// Awards names the weekly superlatives. The loss/win pair singles out
// the hard-luck teams: the most points that still lost and the fewest
// that still won.
type Awards struct {
	TopScoreTeam       string  `json:"top_score_team"`
	TopScore           float64 `json:"top_score"`
	LowScoreTeam       string  `json:"low_score_team"`
	LowScore           float64 `json:"low_score"`
	BestManagerTeam    string  `json:"best_manager_team"`
	BestManagerRating  float64 `json:"best_manager_rating"`
	WorstManagerTeam   string  `json:"worst_manager_team"`
	WorstManagerRating float64 `json:"worst_manager_rating"`
	HighestLossTeam    string  `json:"highest_loss_team,omitempty"`
	HighestLossScore   float64 `json:"highest_loss_score,omitempty"`
	LowestWinTeam      string  `json:"lowest_win_team,omitempty"`
	LowestWinScore     float64 `json:"lowest_win_score,omitempty"`
}

// WeeklyRecap is the per-week munged record for one season.
type WeeklyRecap struct {
	Season    string          `json:"season"`
	Week      int             `json:"week"`
	Standings []StandingRow   `json:"standings"`
	Matchups  []MatchupResult `json:"matchups"`
	Awards    Awards          `json:"awards"`
}

// DraftPick is one selection on a team's draft board.
type DraftPick struct {
	Round      int    `json:"round"`
	PickNo     int    `json:"pick_no"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Position   string `json:"position"`
}

// TeamDraft groups a team's picks, sorted by round then pick number.
type TeamDraft struct {
	RosterID int         `json:"roster_id"`
	TeamName string      `json:"team_name"`
	Picks    []DraftPick `json:"picks"`
}

// SeasonDraft is the munged draft board for one season.
type SeasonDraft struct {
	Season string      `json:"season"`
	Teams  []TeamDraft `json:"teams"`
}

// BracketGame is one playoff game with roster ids resolved to names.
type BracketGame struct {
	Round    int    `json:"round"`
	Match    int    `json:"match"`
	TeamOne  string `json:"team_one"`
	TeamTwo  string `json:"team_two"`
	Winner   string `json:"winner"`
	Loser    string `json:"loser"`
	Position int    `json:"position,omitempty"`
}

// PostseasonRecap maps both brackets and the final placements.
type PostseasonRecap struct {
	Season         string        `json:"season"`
	WinnersBracket []BracketGame `json:"winners_bracket"`
	LosersBracket  []BracketGame `json:"losers_bracket"`
	Champion       string        `json:"champion"`
	RunnerUp       string        `json:"runner_up"`
	ThirdPlace     string        `json:"third_place,omitempty"`
}

// SeasonRecap is the regular-season summary written once per season.
type SeasonRecap struct {
	Season     string        `json:"season"`
	LeagueName string        `json:"league_name"`
	Weeks      int           `json:"weeks"`
	Standings  []StandingRow `json:"standings"`
}

// GameRef pins a single-game value to the week it happened.
type GameRef struct {
	Value  float64 `json:"value"`
	Season string  `json:"season"`
	Week   int     `json:"week"`
}

// ManagerRecord is one manager's line across every season they played.
// Records are keyed by manager, not roster, so they follow an owner
// through roster-id changes between seasons.
type ManagerRecord struct {
	Manager          string  `json:"manager"`
	Seasons          int     `json:"seasons"`
	GamesPlayed      int     `json:"games_played"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	WinPct           float64 `json:"win_pct"`
	PointsFor        float64 `json:"points_for"`
	AvgPointsFor     float64 `json:"avg_points_for"`
	PointsAgainst    float64 `json:"points_against"`
	AvgPointsAgainst float64 `json:"avg_points_against"`
	AvgMargin        float64 `json:"avg_margin"`
	AvgWinMargin     float64 `json:"avg_win_margin"`
	AvgLossMargin    float64 `json:"avg_loss_margin"`
	HighScore        GameRef `json:"high_score"`
	LowScore         GameRef `json:"low_score"`
	LargestWin       GameRef `json:"largest_win"`
	LargestLoss      GameRef `json:"largest_loss"`
	MedianWinPct     float64 `json:"median_win_pct"`
	LuckyWins        int     `json:"lucky_wins"`
	UnluckyLosses    int     `json:"unlucky_losses"`
	PointsStdev      float64 `json:"points_stdev"`
	TopScoreWeeks    int     `json:"top_score_weeks"`
	LowScoreWeeks    int     `json:"low_score_weeks"`
}

// HeadToHead is one directional record between two managers.
type HeadToHead struct {
	Opponent string `json:"opponent"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// ManagerVersus lists one manager's record against everyone they faced.
type ManagerVersus struct {
	Manager   string       `json:"manager"`
	Opponents []HeadToHead `json:"opponents"`
}

// TeamScore is one weekly team total, used for the high-score board.
type TeamScore struct {
	Points   float64 `json:"points"`
	Season   string  `json:"season"`
	Week     int     `json:"week"`
	TeamName string  `json:"team_name"`
}

// PlayerScore is one player's weekly total, starter or bench.
type PlayerScore struct {
	Points     float64 `json:"points"`
	PlayerName string  `json:"player_name"`
	Season     string  `json:"season"`
	Week       int     `json:"week"`
	TeamName   string  `json:"team_name"`
}

// AllTimeRecap aggregates every archived season: career standings,
// head-to-head records and the all-time high-score boards.
type AllTimeRecap struct {
	Standings        []ManagerRecord `json:"standings"`
	HeadToHead       []ManagerVersus `json:"head_to_head"`
	WeeklyHighScores []TeamScore     `json:"weekly_high_scores"`
	PlayerHighScores []PlayerScore   `json:"player_high_scores"`
}

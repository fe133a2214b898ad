package sleeper

// Envelope structs for the Sleeper public API. Fields mirror the
// provider's snake_case payloads; anything not listed is ignored on
// decode and preserved only in the raw snapshot.

type League struct {
	LeagueID         string         `json:"league_id"`
	Name             string         `json:"name"`
	Season           string         `json:"season"`
	Status           string         `json:"status"`
	PreviousLeagueID string         `json:"previous_league_id"`
	DraftID          string         `json:"draft_id"`
	TotalRosters     int            `json:"total_rosters"`
	RosterPositions  []string       `json:"roster_positions"`
	Settings         LeagueSettings `json:"settings"`
}

type LeagueSettings struct {
	Leg              int `json:"leg"`
	LastScoredLeg    int `json:"last_scored_leg"`
	PlayoffWeekStart int `json:"playoff_week_start"`
	NumTeams         int `json:"num_teams"`
}

type User struct {
	UserID      string       `json:"user_id"`
	DisplayName string       `json:"display_name"`
	Metadata    UserMetadata `json:"metadata"`
}

type UserMetadata struct {
	TeamName string `json:"team_name"`
}

type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	Players  []string       `json:"players"`
	Starters []string       `json:"starters"`
	Settings RosterSettings `json:"settings"`
}

type RosterSettings struct {
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	Ties          int `json:"ties"`
	Fpts          int `json:"fpts"`
	FptsDecimal   int `json:"fpts_decimal"`
	FptsAgainst   int `json:"fpts_against"`
	FptsAgDecimal int `json:"fpts_against_decimal"`
}

type Matchup struct {
	RosterID       int                `json:"roster_id"`
	MatchupID      int                `json:"matchup_id"`
	Points         float64            `json:"points"`
	Players        []string           `json:"players"`
	Starters       []string           `json:"starters"`
	PlayersPoints  map[string]float64 `json:"players_points"`
	StartersPoints []float64          `json:"starters_points"`
}

type Transaction struct {
	TransactionID string              `json:"transaction_id"`
	Type          string              `json:"type"`
	Status        string              `json:"status"`
	Created       int64               `json:"created"`
	Creator       string              `json:"creator"`
	RosterIDs     []int               `json:"roster_ids"`
	Adds          map[string]int      `json:"adds"`
	Drops         map[string]int      `json:"drops"`
	Settings      TransactionSettings `json:"settings"`
}

type TransactionSettings struct {
	WaiverBid int `json:"waiver_bid"`
}

// BracketGame is one playoff bracket slot. Team and result fields are
// pointers because the provider omits them until the slot resolves.
type BracketGame struct {
	Round    int  `json:"r"`
	Match    int  `json:"m"`
	Team1    *int `json:"t1"`
	Team2    *int `json:"t2"`
	Winner   *int `json:"w"`
	Loser    *int `json:"l"`
	Position int  `json:"p"`
}

type Draft struct {
	DraftID    string         `json:"draft_id"`
	Type       string         `json:"type"`
	Status     string         `json:"status"`
	Season     string         `json:"season"`
	DraftOrder map[string]int `json:"draft_order"`
}

type DraftPick struct {
	Round    int          `json:"round"`
	PickNo   int          `json:"pick_no"`
	RosterID int          `json:"roster_id"`
	DraftID  string       `json:"draft_id"`
	PlayerID string       `json:"player_id"`
	PickedBy string       `json:"picked_by"`
	Metadata PickMetadata `json:"metadata"`
}

type PickMetadata struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
}

type Player struct {
	PlayerID         string   `json:"player_id"`
	FullName         string   `json:"full_name"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Position         string   `json:"position"`
	FantasyPositions []string `json:"fantasy_positions"`
	Team             string   `json:"team"`
	Status           string   `json:"status"`
}

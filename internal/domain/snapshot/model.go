package snapshot

// Endpoint names one archived Sleeper payload kind. The value doubles
// as the snapshot file name (without extension).
type Endpoint string

const (
	EndpointLeagueInfo     Endpoint = "league_info"
	EndpointUsers          Endpoint = "users"
	EndpointRosters        Endpoint = "rosters"
	EndpointMatchups       Endpoint = "matchups"
	EndpointTransactions   Endpoint = "transactions"
	EndpointWinnersBracket Endpoint = "winners_bracket"
	EndpointLosersBracket  Endpoint = "losers_bracket"
	EndpointDraft          Endpoint = "draft"
	EndpointPlayers        Endpoint = "players"
)

// Key addresses one snapshot file. Week 0 means a season-level payload;
// the players index is global and carries an empty season.
type Key struct {
	Season   string
	Week     int
	Endpoint Endpoint
}

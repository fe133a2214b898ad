package sleeper

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	crerr "github.com/cockroachdb/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
	})
	return client, srv
}

func TestGetLeague_DecodesAndReturnsVerbatimBody(t *testing.T) {
	t.Parallel()

	body := []byte(`{
	  "league_id": "1100",
	  "name": "Dynasty Degenerates",
	  "season": "2024",
	  "previous_league_id": "900",
	  "draft_id": "d-1",
	  "settings": {"last_scored_leg": 14, "playoff_week_start": 15}
	}`)

	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write(body)
	}))

	league, raw, err := client.GetLeague(context.Background(), "1100")
	if err != nil {
		t.Fatalf("get league: %v", err)
	}
	if gotPath != "/league/1100" {
		t.Fatalf("unexpected request path: %q", gotPath)
	}
	if league.Name != "Dynasty Degenerates" || league.Season != "2024" {
		t.Fatalf("unexpected league decode: %+v", league)
	}
	if league.Settings.LastScoredLeg != 14 || league.Settings.PlayoffWeekStart != 15 {
		t.Fatalf("unexpected league settings: %+v", league.Settings)
	}
	if !bytes.Equal(raw, body) {
		t.Fatalf("raw bytes were not returned verbatim")
	}
}

func TestGetMatchups_FormatsWeekPath(t *testing.T) {
	t.Parallel()

	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[{"roster_id": 3, "matchup_id": 1, "points": 112.54, "players_points": {"4046": 28.1}}]`))
	}))

	matchups, _, err := client.GetMatchups(context.Background(), "1100", 7)
	if err != nil {
		t.Fatalf("get matchups: %v", err)
	}
	if gotPath != "/league/1100/matchups/7" {
		t.Fatalf("unexpected request path: %q", gotPath)
	}
	if len(matchups) != 1 || matchups[0].Points != 112.54 {
		t.Fatalf("unexpected matchups decode: %+v", matchups)
	}
	if matchups[0].PlayersPoints["4046"] != 28.1 {
		t.Fatalf("unexpected players_points decode: %+v", matchups[0].PlayersPoints)
	}
}

func TestGetMatchups_RejectsNonPositiveWeek(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:0"})
	if _, _, err := client.GetMatchups(context.Background(), "1100", 0); err == nil {
		t.Fatalf("expected error for week 0")
	}
}

func TestDoJSON_NonSuccessStatusIsError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	_, _, err := client.GetUsers(context.Background(), "1100")
	if err == nil {
		t.Fatalf("expected error for 404 response")
	}
	if !crerr.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got: %v", err)
	}
}

func TestGetPlayers_DecodesIndex(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/players/nfl" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"4046": {"player_id": "4046", "full_name": "Patrick Mahomes", "position": "QB", "fantasy_positions": ["QB"], "team": "KC"}}`))
	}))

	players, raw, err := client.GetPlayers(context.Background())
	if err != nil {
		t.Fatalf("get players: %v", err)
	}
	if len(raw) == 0 {
		t.Fatalf("expected raw body alongside decode")
	}
	if players["4046"].FullName != "Patrick Mahomes" {
		t.Fatalf("unexpected player decode: %+v", players["4046"])
	}
}

func TestGetDraftPicks_RequiresDraftID(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:0"})
	if _, _, err := client.GetDraftPicks(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty draft id")
	}
}

func TestGetWinnersBracket_DecodesNullableSlots(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"r": 1, "m": 1, "t1": 1, "t2": 4, "w": null, "l": null}, {"r": 2, "m": 3, "p": 1}]`))
	}))

	games, _, err := client.GetWinnersBracket(context.Background(), "1100")
	if err != nil {
		t.Fatalf("get winners bracket: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("unexpected game count: %d", len(games))
	}
	if games[0].Winner != nil || games[0].Team1 == nil || *games[0].Team1 != 1 {
		t.Fatalf("unexpected bracket decode: %+v", games[0])
	}
	if games[1].Position != 1 {
		t.Fatalf("expected placement game position 1, got %d", games[1].Position)
	}
}

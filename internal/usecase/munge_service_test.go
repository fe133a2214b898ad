package usecase

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nuchoate/league-archive/internal/domain/snapshot"
	"github.com/nuchoate/league-archive/internal/infrastructure/store"
	"github.com/nuchoate/league-archive/internal/platform/logging"
)

// seedRawSeason writes a small but complete 2024 season: two regular
// weeks, one postseason week, four teams, a draft and both brackets.
func seedRawSeason(t *testing.T, raw *store.RawStore) {
	t.Helper()

	write := func(key snapshot.Key, body string) {
		t.Helper()
		if err := raw.WriteRaw(key, []byte(body)); err != nil {
			t.Fatalf("seed %v: %v", key, err)
		}
	}

	write(snapshot.Key{Endpoint: snapshot.EndpointPlayers}, `{
	  "qb1": {"player_id": "qb1", "full_name": "Josh Allen", "fantasy_positions": ["QB"]},
	  "qb2": {"player_id": "qb2", "full_name": "Jalen Hurts", "fantasy_positions": ["QB"]},
	  "rb1": {"player_id": "rb1", "full_name": "Bijan Robinson", "fantasy_positions": ["RB"]},
	  "rb2": {"player_id": "rb2", "full_name": "Jahmyr Gibbs", "fantasy_positions": ["RB"]}
	}`)

	write(snapshot.Key{Season: "2024", Endpoint: snapshot.EndpointLeagueInfo}, `{
	  "league_id": "L24",
	  "name": "Backyard Football League",
	  "season": "2024",
	  "roster_positions": ["QB", "RB", "FLEX", "BN"],
	  "settings": {"last_scored_leg": 3, "playoff_week_start": 3}
	}`)

	write(snapshot.Key{Season: "2024", Endpoint: snapshot.EndpointUsers}, `[
	  {"user_id": "u1", "display_name": "alice", "metadata": {"team_name": "Sharks"}},
	  {"user_id": "u2", "display_name": "bob", "metadata": {}}
	]`)

	write(snapshot.Key{Season: "2024", Endpoint: snapshot.EndpointRosters}, `[
	  {"roster_id": 1, "owner_id": "u1"},
	  {"roster_id": 2, "owner_id": "u2"},
	  {"roster_id": 3, "owner_id": "u3"},
	  {"roster_id": 4, "owner_id": "u4"}
	]`)

	write(snapshot.Key{Season: "2024", Week: 1, Endpoint: snapshot.EndpointMatchups}, `[
	  {"roster_id": 1, "matchup_id": 1, "points": 120.5,
	   "players": ["qb1", "rb1", "rb2"], "starters": ["qb1", "rb1"],
	   "players_points": {"qb1": 30.0, "rb1": 20.0, "rb2": 25.0},
	   "starters_points": [30.0, 20.0]},
	  {"roster_id": 2, "matchup_id": 1, "points": 95.25,
	   "players": ["qb2"], "starters": ["qb2"],
	   "players_points": {"qb2": 22.0}, "starters_points": [22.0]},
	  {"roster_id": 3, "matchup_id": 2, "points": 88.0},
	  {"roster_id": 4, "matchup_id": 2, "points": 110.0}
	]`)

	write(snapshot.Key{Season: "2024", Week: 1, Endpoint: snapshot.EndpointTransactions}, `[
	  {"transaction_id": "t1", "type": "waiver", "status": "complete",
	   "created": 1726167600000, "creator": "u1",
	   "roster_ids": [1], "adds": {"rb2": 1}, "settings": {"waiver_bid": 10}},
	  {"transaction_id": "t2", "type": "commissioner_veto", "status": "complete", "roster_ids": [2]},
	  {"transaction_id": "t3", "type": "waiver", "status": "failed", "roster_ids": [3]}
	]`)

	write(snapshot.Key{Season: "2024", Week: 2, Endpoint: snapshot.EndpointMatchups}, `[
	  {"roster_id": 1, "matchup_id": 1, "points": 100.0},
	  {"roster_id": 2, "matchup_id": 1, "points": 130.0},
	  {"roster_id": 3, "matchup_id": 2, "points": 105.0},
	  {"roster_id": 4, "matchup_id": 2, "points": 80.0}
	]`)
	write(snapshot.Key{Season: "2024", Week: 2, Endpoint: snapshot.EndpointTransactions}, `[]`)

	write(snapshot.Key{Season: "2024", Week: 3, Endpoint: snapshot.EndpointMatchups}, `[
	  {"roster_id": 1, "matchup_id": 1, "points": 150.0},
	  {"roster_id": 2, "matchup_id": 1, "points": 140.0}
	]`)
	write(snapshot.Key{Season: "2024", Week: 3, Endpoint: snapshot.EndpointTransactions}, `[]`)

	write(snapshot.Key{Season: "2024", Endpoint: snapshot.EndpointWinnersBracket},
		`[{"r": 1, "m": 1, "t1": 1, "t2": 2, "w": 1, "l": 2, "p": 1}]`)
	write(snapshot.Key{Season: "2024", Endpoint: snapshot.EndpointLosersBracket}, `[]`)

	write(snapshot.Key{Season: "2024", Endpoint: snapshot.EndpointDraft}, `{
	  "drafts": [{"draft_id": "d1"}],
	  "picks": [
	    {"round": 2, "pick_no": 5, "roster_id": 1, "player_id": "rb1"},
	    {"round": 1, "pick_no": 1, "roster_id": 1, "player_id": "qb1"},
	    {"round": 1, "pick_no": 2, "roster_id": 2, "player_id": "qb2"}
	  ]
	}`)
}

func newMungeFixture(t *testing.T) (*MungeService, *store.MungedStore, string) {
	t.Helper()

	raw := store.NewRawStore(t.TempDir())
	seedRawSeason(t, raw)

	mungedRoot := t.TempDir()
	munged := store.NewMungedStore(mungedRoot)
	return NewMungeService(raw, munged, logging.NewNop()), munged, mungedRoot
}

func TestProcessSeason_CumulativeStandingsSortedByWinsThenPF(t *testing.T) {
	t.Parallel()

	svc, munged, _ := newMungeFixture(t)
	if err := svc.ProcessSeason("2024"); err != nil {
		t.Fatalf("process season: %v", err)
	}

	week1, err := munged.ReadWeeklyRecap("2024", 1)
	if err != nil {
		t.Fatalf("read week 1 recap: %v", err)
	}
	if week1.Standings[0].TeamName != "Sharks" || week1.Standings[0].Rank != 1 {
		t.Fatalf("unexpected week 1 leader: %+v", week1.Standings[0])
	}
	if week1.Standings[1].TeamName != "Team u4" {
		t.Fatalf("unexpected week 1 runner-up: %+v", week1.Standings[1])
	}

	week2, err := munged.ReadWeeklyRecap("2024", 2)
	if err != nil {
		t.Fatalf("read week 2 recap: %v", err)
	}
	// Everyone is 1-1 after week 2, so points-for decides the order.
	if week2.Standings[0].TeamName != "Team bob" {
		t.Fatalf("expected PF tiebreak leader Team bob, got %+v", week2.Standings[0])
	}
	if week2.Standings[0].PointsFor != 225.25 {
		t.Fatalf("unexpected cumulative PF: %+v", week2.Standings[0])
	}
	if week2.Standings[1].TeamName != "Sharks" {
		t.Fatalf("unexpected second place: %+v", week2.Standings[1])
	}
}

func TestProcessSeason_SeasonRecapCoversRegularSeasonOnly(t *testing.T) {
	t.Parallel()

	svc, munged, _ := newMungeFixture(t)
	if err := svc.ProcessSeason("2024"); err != nil {
		t.Fatalf("process season: %v", err)
	}

	rec, err := munged.ReadSeasonRecap("2024")
	if err != nil {
		t.Fatalf("read season recap: %v", err)
	}
	if rec.LeagueName != "Backyard Football League" {
		t.Fatalf("unexpected league name: %q", rec.LeagueName)
	}
	if rec.Weeks != 2 {
		t.Fatalf("expected 2 regular-season weeks, got %d", rec.Weeks)
	}
	// Week 3 is the playoff opener and must not count toward records.
	if rec.Standings[0].Wins+rec.Standings[0].Losses+rec.Standings[0].Ties != 2 {
		t.Fatalf("postseason leaked into season record: %+v", rec.Standings[0])
	}
}

func TestProcessSeason_TransactionsMappedToNames(t *testing.T) {
	t.Parallel()

	svc, munged, _ := newMungeFixture(t)
	if err := svc.ProcessSeason("2024"); err != nil {
		t.Fatalf("process season: %v", err)
	}

	rows, err := munged.ReadWeeklyTransactions("2024", 1)
	if err != nil {
		t.Fatalf("read transactions: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 mapped rows, got %d", len(rows))
	}

	waiver := rows[0]
	if waiver.Adds["Jahmyr Gibbs"] != "Sharks" {
		t.Fatalf("add not mapped to names: %+v", waiver.Adds)
	}
	if waiver.WaiverBid != 10 {
		t.Fatalf("waiver bid lost: %+v", waiver)
	}
	if waiver.Created != 1726167600000 || waiver.Creator != "u1" {
		t.Fatalf("timestamp or creator lost: %+v", waiver)
	}
	if waiver.CreatorTeamName != "Sharks" {
		t.Fatalf("creator not attributed to a team: %+v", waiver)
	}

	// Unknown subtype still maps to a uniform row.
	veto := rows[1]
	if veto.Type != "commissioner_veto" {
		t.Fatalf("subtype not copied verbatim: %+v", veto)
	}
	if len(veto.Adds) != 0 || len(veto.Drops) != 0 {
		t.Fatalf("expected empty adds/drops for unknown subtype: %+v", veto)
	}
	if len(veto.Teams) != 1 || veto.Teams[0] != "Team bob" {
		t.Fatalf("unexpected teams: %+v", veto.Teams)
	}
}

func TestProcessSeason_WeeklyAwards(t *testing.T) {
	t.Parallel()

	svc, munged, _ := newMungeFixture(t)
	if err := svc.ProcessSeason("2024"); err != nil {
		t.Fatalf("process season: %v", err)
	}

	week1, err := munged.ReadWeeklyRecap("2024", 1)
	if err != nil {
		t.Fatalf("read week 1 recap: %v", err)
	}
	if week1.Awards.TopScoreTeam != "Sharks" || week1.Awards.TopScore != 120.5 {
		t.Fatalf("unexpected top score award: %+v", week1.Awards)
	}
	if week1.Awards.LowScoreTeam != "Team u3" || week1.Awards.LowScore != 88 {
		t.Fatalf("unexpected low score award: %+v", week1.Awards)
	}
	// Roster 1 left its best RB on the bench; roster 2 started everyone.
	if week1.Awards.WorstManagerTeam != "Sharks" {
		t.Fatalf("unexpected worst manager: %+v", week1.Awards)
	}
	if week1.Awards.BestManagerRating <= week1.Awards.WorstManagerRating {
		t.Fatalf("ratings out of order: %+v", week1.Awards)
	}
	// Team bob lost with more points than the other loser scored.
	if week1.Awards.HighestLossTeam != "Team bob" || week1.Awards.HighestLossScore != 95.25 {
		t.Fatalf("unexpected toughest loss: %+v", week1.Awards)
	}
	if week1.Awards.LowestWinTeam != "Team u4" || week1.Awards.LowestWinScore != 110 {
		t.Fatalf("unexpected narrowest win: %+v", week1.Awards)
	}
}

func TestProcessSeason_PostseasonBracketAndWeeks(t *testing.T) {
	t.Parallel()

	svc, munged, _ := newMungeFixture(t)
	if err := svc.ProcessSeason("2024"); err != nil {
		t.Fatalf("process season: %v", err)
	}

	post, err := munged.ReadPostseasonRecap("2024")
	if err != nil {
		t.Fatalf("read postseason recap: %v", err)
	}
	if post.Champion != "Sharks" || post.RunnerUp != "Team bob" {
		t.Fatalf("unexpected placements: %+v", post)
	}
	if len(post.WinnersBracket) != 1 || post.WinnersBracket[0].Winner != "Sharks" {
		t.Fatalf("bracket not mapped to names: %+v", post.WinnersBracket)
	}

	week3, err := munged.ReadPostseasonWeek("2024", 3)
	if err != nil {
		t.Fatalf("read postseason week: %v", err)
	}
	if len(week3.Matchups) != 1 || week3.Matchups[0].Winner != "Sharks" {
		t.Fatalf("unexpected postseason matchup: %+v", week3.Matchups)
	}
	if len(week3.Standings) != 0 {
		t.Fatalf("postseason weeks carry no standings: %+v", week3.Standings)
	}
}

func TestProcessSeason_DraftPicksSortedPerTeam(t *testing.T) {
	t.Parallel()

	svc, munged, _ := newMungeFixture(t)
	if err := svc.ProcessSeason("2024"); err != nil {
		t.Fatalf("process season: %v", err)
	}

	draft, err := munged.ReadDraft("2024")
	if err != nil {
		t.Fatalf("read draft: %v", err)
	}
	if len(draft.Teams) != 2 {
		t.Fatalf("expected 2 drafting teams, got %d", len(draft.Teams))
	}

	sharks := draft.Teams[0]
	if sharks.TeamName != "Sharks" || len(sharks.Picks) != 2 {
		t.Fatalf("unexpected first team: %+v", sharks)
	}
	if sharks.Picks[0].PlayerName != "Josh Allen" || sharks.Picks[1].PlayerName != "Bijan Robinson" {
		t.Fatalf("picks not sorted by round and pick number: %+v", sharks.Picks)
	}
}

func TestProcessSeason_RepeatedRunsAreByteIdentical(t *testing.T) {
	t.Parallel()

	svc, _, mungedRoot := newMungeFixture(t)

	readTree := func() map[string][]byte {
		t.Helper()
		tree := make(map[string][]byte)
		err := filepath.Walk(mungedRoot, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			body, readErr := os.ReadFile(path)
			if readErr != nil {
				return readErr
			}
			tree[path] = body
			return nil
		})
		if err != nil {
			t.Fatalf("walk munged tree: %v", err)
		}
		return tree
	}

	if err := svc.ProcessSeason("2024"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := readTree()
	if len(first) == 0 {
		t.Fatalf("no munged files written")
	}

	if err := svc.ProcessSeason("2024"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := readTree()

	if len(first) != len(second) {
		t.Fatalf("file count changed between runs: %d vs %d", len(first), len(second))
	}
	for path, body := range first {
		if !bytes.Equal(body, second[path]) {
			t.Fatalf("file %s changed between identical runs", path)
		}
	}
}

func TestProcessSeason_UnknownSeason(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMungeFixture(t)
	if err := svc.ProcessSeason("1999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProcessAllSeasons_RequiresArchivedData(t *testing.T) {
	t.Parallel()

	raw := store.NewRawStore(t.TempDir())
	svc := NewMungeService(raw, store.NewMungedStore(t.TempDir()), logging.NewNop())
	if err := svc.ProcessAllSeasons(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

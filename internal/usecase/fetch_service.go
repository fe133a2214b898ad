package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/nuchoate/league-archive/external/sleeper"
	"github.com/nuchoate/league-archive/internal/domain/snapshot"
	"github.com/nuchoate/league-archive/internal/platform/logging"
)

// SleeperClient is the slice of the provider client the fetcher needs.
type SleeperClient interface {
	GetLeague(ctx context.Context, leagueID string) (sleeper.League, []byte, error)
	GetUsers(ctx context.Context, leagueID string) ([]sleeper.User, []byte, error)
	GetRosters(ctx context.Context, leagueID string) ([]sleeper.Roster, []byte, error)
	GetMatchups(ctx context.Context, leagueID string, week int) ([]sleeper.Matchup, []byte, error)
	GetTransactions(ctx context.Context, leagueID string, week int) ([]sleeper.Transaction, []byte, error)
	GetWinnersBracket(ctx context.Context, leagueID string) ([]sleeper.BracketGame, []byte, error)
	GetLosersBracket(ctx context.Context, leagueID string) ([]sleeper.BracketGame, []byte, error)
	GetDrafts(ctx context.Context, leagueID string) ([]sleeper.Draft, []byte, error)
	GetDraftPicks(ctx context.Context, draftID string) ([]sleeper.DraftPick, []byte, error)
	GetPlayers(ctx context.Context) (map[string]sleeper.Player, []byte, error)
}

// FetchService archives league data season by season. Starting from
// the configured league it walks previous_league_id back through every
// earlier season and snapshots each endpoint verbatim.
type FetchService struct {
	client SleeperClient
	raw    snapshot.Store
	logger *logging.Logger
}

func NewFetchService(client SleeperClient, raw snapshot.Store, logger *logging.Logger) *FetchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FetchService{client: client, raw: raw, logger: logger}
}

// FetchAllSeasons archives the league chain rooted at leagueID and
// returns the seasons reached. A failed endpoint fetch abandons the
// rest of that season but keeps walking the chain; a failed league
// lookup or filesystem write stops the run.
func (s *FetchService) FetchAllSeasons(ctx context.Context, leagueID string) ([]string, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	seasons := make([]string, 0, 4)
	for id := leagueID; id != ""; {
		if err := ctx.Err(); err != nil {
			return seasons, err
		}

		league, err := s.fetchSeason(ctx, id)
		if err != nil {
			return seasons, err
		}

		seasons = append(seasons, league.Season)
		id = league.PreviousLeagueID
	}

	s.logger.Info("archive complete", "seasons", len(seasons))
	return seasons, nil
}

// ImportPlayers snapshots the global NFL player index. The index is
// league-independent, so it lives at the raw root and one copy serves
// every season.
func (s *FetchService) ImportPlayers(ctx context.Context) error {
	_, raw, err := s.client.GetPlayers(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	if err := s.raw.WriteRaw(snapshot.Key{Endpoint: snapshot.EndpointPlayers}, raw); err != nil {
		return fmt.Errorf("persist player index: %w", err)
	}

	s.logger.Info("player index imported", "bytes", len(raw))
	return nil
}

func (s *FetchService) fetchSeason(ctx context.Context, leagueID string) (sleeper.League, error) {
	league, leagueRaw, err := s.client.GetLeague(ctx, leagueID)
	if err != nil {
		return sleeper.League{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	if league.Season == "" {
		return sleeper.League{}, fmt.Errorf("%w: league %s has no season", ErrInvalidInput, leagueID)
	}

	season := league.Season
	s.logger.Info("archiving season", "season", season, "league_id", leagueID, "name", league.Name)

	if err := s.raw.WriteRaw(snapshot.Key{Season: season, Endpoint: snapshot.EndpointLeagueInfo}, leagueRaw); err != nil {
		return sleeper.League{}, err
	}

	abort := func(stage string, err error) {
		s.logger.Warn("abandoning remaining season fetches",
			"season", season,
			"stage", stage,
			"error", err,
		)
	}

	_, usersRaw, err := s.client.GetUsers(ctx, leagueID)
	if err != nil {
		abort("users", err)
		return league, nil
	}
	if err := s.raw.WriteRaw(snapshot.Key{Season: season, Endpoint: snapshot.EndpointUsers}, usersRaw); err != nil {
		return sleeper.League{}, err
	}

	_, rostersRaw, err := s.client.GetRosters(ctx, leagueID)
	if err != nil {
		abort("rosters", err)
		return league, nil
	}
	if err := s.raw.WriteRaw(snapshot.Key{Season: season, Endpoint: snapshot.EndpointRosters}, rostersRaw); err != nil {
		return sleeper.League{}, err
	}

	for week := 1; week <= league.Settings.LastScoredLeg; week++ {
		_, matchupsRaw, err := s.client.GetMatchups(ctx, leagueID, week)
		if err != nil {
			abort(fmt.Sprintf("matchups week %d", week), err)
			return league, nil
		}
		if err := s.raw.WriteRaw(snapshot.Key{Season: season, Week: week, Endpoint: snapshot.EndpointMatchups}, matchupsRaw); err != nil {
			return sleeper.League{}, err
		}

		_, transactionsRaw, err := s.client.GetTransactions(ctx, leagueID, week)
		if err != nil {
			abort(fmt.Sprintf("transactions week %d", week), err)
			return league, nil
		}
		if err := s.raw.WriteRaw(snapshot.Key{Season: season, Week: week, Endpoint: snapshot.EndpointTransactions}, transactionsRaw); err != nil {
			return sleeper.League{}, err
		}
	}

	if hasPlayoffs(league) {
		_, winnersRaw, err := s.client.GetWinnersBracket(ctx, leagueID)
		if err != nil {
			abort("winners bracket", err)
			return league, nil
		}
		if err := s.raw.WriteRaw(snapshot.Key{Season: season, Endpoint: snapshot.EndpointWinnersBracket}, winnersRaw); err != nil {
			return sleeper.League{}, err
		}

		_, losersRaw, err := s.client.GetLosersBracket(ctx, leagueID)
		if err != nil {
			abort("losers bracket", err)
			return league, nil
		}
		if err := s.raw.WriteRaw(snapshot.Key{Season: season, Endpoint: snapshot.EndpointLosersBracket}, losersRaw); err != nil {
			return sleeper.League{}, err
		}
	}

	if err := s.fetchDraft(ctx, leagueID, league, season); err != nil {
		return sleeper.League{}, err
	}

	return league, nil
}

// fetchDraft combines the drafts and picks endpoints into one snapshot
// document. Both member payloads stay verbatim inside it.
func (s *FetchService) fetchDraft(ctx context.Context, leagueID string, league sleeper.League, season string) error {
	drafts, draftsRaw, err := s.client.GetDrafts(ctx, leagueID)
	if err != nil {
		s.logger.Warn("abandoning draft fetch", "season", season, "error", err)
		return nil
	}

	draftID := league.DraftID
	if draftID == "" && len(drafts) > 0 {
		draftID = drafts[0].DraftID
	}

	picksRaw := []byte("[]")
	if draftID != "" {
		_, raw, err := s.client.GetDraftPicks(ctx, draftID)
		if err != nil {
			s.logger.Warn("abandoning draft picks fetch", "season", season, "draft_id", draftID, "error", err)
			return nil
		}
		picksRaw = raw
	}

	var doc bytes.Buffer
	doc.Grow(len(draftsRaw) + len(picksRaw) + 32)
	doc.WriteString(`{"drafts":`)
	doc.Write(draftsRaw)
	doc.WriteString(`,"picks":`)
	doc.Write(picksRaw)
	doc.WriteString("}")

	return s.raw.WriteRaw(snapshot.Key{Season: season, Endpoint: snapshot.EndpointDraft}, doc.Bytes())
}

func hasPlayoffs(league sleeper.League) bool {
	start := league.Settings.PlayoffWeekStart
	return start > 0 && league.Settings.LastScoredLeg >= start
}

package sleeper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/nuchoate/league-archive/internal/platform/logging"
)

const (
	defaultBaseURL = "https://api.sleeper.app/v1"

	// The global NFL player index is the largest payload Sleeper serves,
	// well north of 10 MB. Everything else fits in a fraction of this.
	maxBodyBytes = 64 << 20
)

// ErrUnexpectedStatus marks non-2xx provider responses. No retries:
// the caller logs the failure and moves on.
var ErrUnexpectedStatus = crerr.New("sleeper unexpected status")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client is a read-only Sleeper API client. Every getter returns the
// decoded value together with the verbatim response bytes so snapshots
// persist exactly what the provider sent.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

func (c *Client) GetLeague(ctx context.Context, leagueID string) (League, []byte, error) {
	var out League
	raw, err := c.doJSON(ctx, "/league/"+leagueID, &out)
	if err != nil {
		return League{}, nil, fmt.Errorf("fetch league league_id=%s: %w", leagueID, err)
	}
	return out, raw, nil
}

func (c *Client) GetUsers(ctx context.Context, leagueID string) ([]User, []byte, error) {
	var out []User
	raw, err := c.doJSON(ctx, "/league/"+leagueID+"/users", &out)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch users league_id=%s: %w", leagueID, err)
	}
	return out, raw, nil
}

func (c *Client) GetRosters(ctx context.Context, leagueID string) ([]Roster, []byte, error) {
	var out []Roster
	raw, err := c.doJSON(ctx, "/league/"+leagueID+"/rosters", &out)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch rosters league_id=%s: %w", leagueID, err)
	}
	return out, raw, nil
}

func (c *Client) GetMatchups(ctx context.Context, leagueID string, week int) ([]Matchup, []byte, error) {
	if week <= 0 {
		return nil, nil, fmt.Errorf("week must be greater than zero")
	}

	var out []Matchup
	raw, err := c.doJSON(ctx, fmt.Sprintf("/league/%s/matchups/%d", leagueID, week), &out)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch matchups league_id=%s week=%d: %w", leagueID, week, err)
	}
	return out, raw, nil
}

func (c *Client) GetTransactions(ctx context.Context, leagueID string, week int) ([]Transaction, []byte, error) {
	if week <= 0 {
		return nil, nil, fmt.Errorf("week must be greater than zero")
	}

	var out []Transaction
	raw, err := c.doJSON(ctx, fmt.Sprintf("/league/%s/transactions/%d", leagueID, week), &out)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch transactions league_id=%s week=%d: %w", leagueID, week, err)
	}
	return out, raw, nil
}

func (c *Client) GetWinnersBracket(ctx context.Context, leagueID string) ([]BracketGame, []byte, error) {
	var out []BracketGame
	raw, err := c.doJSON(ctx, "/league/"+leagueID+"/winners_bracket", &out)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch winners bracket league_id=%s: %w", leagueID, err)
	}
	return out, raw, nil
}

func (c *Client) GetLosersBracket(ctx context.Context, leagueID string) ([]BracketGame, []byte, error) {
	var out []BracketGame
	raw, err := c.doJSON(ctx, "/league/"+leagueID+"/losers_bracket", &out)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch losers bracket league_id=%s: %w", leagueID, err)
	}
	return out, raw, nil
}

func (c *Client) GetDrafts(ctx context.Context, leagueID string) ([]Draft, []byte, error) {
	var out []Draft
	raw, err := c.doJSON(ctx, "/league/"+leagueID+"/drafts", &out)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch drafts league_id=%s: %w", leagueID, err)
	}
	return out, raw, nil
}

func (c *Client) GetDraftPicks(ctx context.Context, draftID string) ([]DraftPick, []byte, error) {
	if strings.TrimSpace(draftID) == "" {
		return nil, nil, fmt.Errorf("draft id must not be empty")
	}

	var out []DraftPick
	raw, err := c.doJSON(ctx, "/draft/"+draftID+"/picks", &out)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch draft picks draft_id=%s: %w", draftID, err)
	}
	return out, raw, nil
}

// GetPlayers downloads the global NFL player index keyed by player id.
func (c *Client) GetPlayers(ctx context.Context) (map[string]Player, []byte, error) {
	var out map[string]Player
	raw, err := c.doJSON(ctx, "/players/nfl", &out)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch player index: %w", err)
	}
	return out, raw, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) ([]byte, error) {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("sleeper request failed", "url", fullURL, "error", err)
		return nil, fmt.Errorf("send request: %w", err)
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("read response body: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("sleeper request rejected", "url", fullURL, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrUnexpectedStatus, resp.StatusCode, abbreviateBody(raw))
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}

	return raw, nil
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

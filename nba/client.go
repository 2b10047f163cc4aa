package nba

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"courtside/types"
)

const (
	defaultBaseURL = "https://stats.nba.com/stats"

	// queryDateLayout is the MM/DD/YYYY format the stats API expects.
	queryDateLayout = "01/02/2006"
)

// Client fetches finished games from the league game-finder endpoint. The
// endpoint returns one team-level row per side; GamesByDate joins the two
// halves into one row per game.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a schedule client. An empty baseURL selects the public
// stats endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// statsResponse mirrors the tabular resultSets shape of the stats API.
type statsResponse struct {
	ResultSets []struct {
		Name    string          `json:"name"`
		Headers []string        `json:"headers"`
		RowSet  [][]interface{} `json:"rowSet"`
	} `json:"resultSets"`
}

// teamRow is one decoded team-level line.
type teamRow struct {
	gameID  string
	date    string
	team    string
	matchup string
	points  int
}

// GamesByDate returns the joined home/away results for one date, sorted by
// home team. Rows with missing or non-numeric points are skipped. Zero games
// is a normal outcome, not an error.
func (c *Client) GamesByDate(ctx context.Context, date time.Time) ([]types.Game, error) {
	q := url.Values{}
	q.Set("PlayerOrTeam", "T")
	q.Set("LeagueID", "00")
	q.Set("DateFrom", date.Format(queryDateLayout))
	q.Set("DateTo", date.Format(queryDateLayout))

	endpoint := c.baseURL + "/leaguegamefinder?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	// The stats endpoint rejects requests without browser-like headers.
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch games: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats api returned %d", resp.StatusCode)
	}

	var parsed statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode stats response: %w", err)
	}
	if len(parsed.ResultSets) == 0 {
		return nil, fmt.Errorf("stats response has no result sets")
	}

	rs := parsed.ResultSets[0]
	col := map[string]int{}
	for i, h := range rs.Headers {
		col[h] = i
	}
	for _, required := range []string{"GAME_ID", "GAME_DATE", "TEAM_NAME", "MATCHUP", "PTS"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("stats response missing column %s", required)
		}
	}

	var home, away []teamRow
	for _, row := range rs.RowSet {
		r, ok := decodeRow(row, col)
		if !ok {
			continue
		}
		switch {
		case strings.Contains(r.matchup, "vs."):
			home = append(home, r)
		case strings.Contains(r.matchup, "@"):
			away = append(away, r)
		}
	}

	games := joinGames(home, away)
	sort.Slice(games, func(i, j int) bool { return games[i].HomeTeam < games[j].HomeTeam })
	return games, nil
}

// decodeRow pulls the needed columns out of one rowSet line; rows with
// missing fields or non-numeric points are rejected.
func decodeRow(row []interface{}, col map[string]int) (teamRow, bool) {
	get := func(name string) (interface{}, bool) {
		i := col[name]
		if i >= len(row) {
			return nil, false
		}
		return row[i], true
	}

	var r teamRow
	for name, dst := range map[string]*string{
		"GAME_ID":   &r.gameID,
		"GAME_DATE": &r.date,
		"TEAM_NAME": &r.team,
		"MATCHUP":   &r.matchup,
	} {
		v, ok := get(name)
		if !ok {
			return teamRow{}, false
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return teamRow{}, false
		}
		*dst = s
	}

	v, ok := get("PTS")
	if !ok {
		return teamRow{}, false
	}
	pts, ok := toInt(v)
	if !ok {
		return teamRow{}, false
	}
	r.points = pts
	return r, true
}

// joinGames inner-joins home and away rows on game id. The home side is
// listed first; the winner is the home team only when its points are
// strictly greater.
func joinGames(home, away []teamRow) []types.Game {
	awayByID := make(map[string]teamRow, len(away))
	for _, r := range away {
		awayByID[r.gameID] = r
	}

	var games []types.Game
	for _, h := range home {
		a, ok := awayByID[h.gameID]
		if !ok {
			continue
		}
		g := types.Game{
			Date:       h.date,
			HomeTeam:   h.team,
			AwayTeam:   a.team,
			HomePoints: h.points,
			AwayPoints: a.points,
		}
		g.Score = g.ScoreLine()
		if h.points > a.points {
			g.Winner = h.team
		} else {
			g.Winner = a.team
		}
		games = append(games, g)
	}
	return games
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

package nba

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const fixtureResponse = `{
  "resultSets": [
    {
      "name": "LeagueGameFinderResults",
      "headers": ["GAME_ID", "GAME_DATE", "TEAM_NAME", "MATCHUP", "PTS"],
      "rowSet": [
        ["0022300511", "2024-01-05", "Boston Celtics", "BOS vs. UTA", 126],
        ["0022300511", "2024-01-05", "Utah Jazz", "UTA @ BOS", 97],
        ["0022300512", "2024-01-05", "Denver Nuggets", "DEN vs. ORL", 113],
        ["0022300512", "2024-01-05", "Orlando Magic", "ORL @ DEN", 115],
        ["0022300513", "2024-01-05", "Phoenix Suns", "PHX vs. MIA", null],
        ["0022300513", "2024-01-05", "Miami Heat", "MIA @ PHX", 108],
        ["0022300999", "2024-01-05", "Lone Row Team", "LRT vs. XXX", 100]
      ]
    }
  ]
}`

func TestGamesByDate(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fixtureResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	games, err := c.GamesByDate(context.Background(), date)
	if err != nil {
		t.Fatalf("GamesByDate: %v", err)
	}

	// The Suns row has null points and is skipped; the lone home row has no
	// away half and drops out of the join.
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2: %+v", len(games), games)
	}

	// Sorted by home team: Boston before Denver.
	bos, den := games[0], games[1]
	if bos.HomeTeam != "Boston Celtics" || bos.AwayTeam != "Utah Jazz" {
		t.Errorf("join mismatch: %+v", bos)
	}
	if bos.Score != "Boston Celtics 126 - 97 Utah Jazz" {
		t.Errorf("score line = %q", bos.Score)
	}
	if bos.Winner != "Boston Celtics" {
		t.Errorf("winner = %q", bos.Winner)
	}
	// Away side wins when home points are not strictly greater.
	if den.Winner != "Orlando Magic" {
		t.Errorf("winner = %q, want away team", den.Winner)
	}

	for _, want := range []string{"DateFrom=01%2F05%2F2024", "DateTo=01%2F05%2F2024", "PlayerOrTeam=T"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestGamesByDateEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resultSets":[{"headers":["GAME_ID","GAME_DATE","TEAM_NAME","MATCHUP","PTS"],"rowSet":[]}]}`))
	}))
	defer srv.Close()

	games, err := NewClient(srv.URL).GamesByDate(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("zero games must not be an error: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("got %d games", len(games))
	}
}

func TestGamesByDateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).GamesByDate(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

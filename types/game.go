package types

import "fmt"

// Game is one joined home/away result row for a single date.
type Game struct {
	Date       string `json:"date"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	HomePoints int    `json:"home_points"`
	AwayPoints int    `json:"away_points"`
	Score      string `json:"score"`
	Winner     string `json:"winner"`
}

// ScoreLine formats the conventional "Home 120 - 110 Away" line.
func (g Game) ScoreLine() string {
	return fmt.Sprintf("%s %d - %d %s", g.HomeTeam, g.HomePoints, g.AwayPoints, g.AwayTeam)
}

// NewsArticle is one relevance-filtered article attached to a game.
type NewsArticle struct {
	Title     string `json:"title"`
	Source    string `json:"source"`
	Body      string `json:"body"`
	URL       string `json:"url"`
	Relevance int    `json:"relevance"`
}

// GameNews pairs a game with its deduplicated articles.
type GameNews struct {
	Game     Game          `json:"game"`
	Articles []NewsArticle `json:"articles"`
}

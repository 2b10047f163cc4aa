package news

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"courtside/config"
	"courtside/types"
)

const defaultEREndpoint = "https://eventregistry.org/api/v1/article/getArticles"

// Source produces the deduplicated, relevance-filtered articles for one
// game. Implementations degrade to an empty slice on upstream failure; they
// never fail the pipeline.
type Source interface {
	GameNews(ctx context.Context, game types.Game) ([]types.NewsArticle, error)
}

// EventRegistry queries the Event Registry complex-query API for articles
// covering both teams of a game.
type EventRegistry struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewEventRegistry creates an Event Registry source. An empty endpoint
// selects the public API.
func NewEventRegistry(apiKey, endpoint string) *EventRegistry {
	if endpoint == "" {
		endpoint = defaultEREndpoint
	}
	return &EventRegistry{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// erResponse mirrors the articles envelope of the getArticles endpoint.
type erResponse struct {
	Articles struct {
		Results []struct {
			Title     string  `json:"title"`
			URL       string  `json:"url"`
			Body      string  `json:"body"`
			Relevance float64 `json:"relevance"`
			Source    struct {
				Title string `json:"title"`
			} `json:"source"`
		} `json:"results"`
	} `json:"articles"`
}

// GameNews fetches US basketball coverage naming both teams within the
// [game date, game date + 1 day) window, keeps articles at or above the
// relevance floor, and drops duplicates by title and by URL.
func (e *EventRegistry) GameNews(ctx context.Context, game types.Game) ([]types.NewsArticle, error) {
	dateStart := game.Date
	dateEnd := dateStart
	if d, err := time.Parse("2006-01-02", game.Date); err == nil {
		dateEnd = d.AddDate(0, 0, 1).Format("2006-01-02")
	}

	query := map[string]interface{}{
		"$query": map[string]interface{}{
			"$and": []interface{}{
				map[string]string{"conceptUri": conceptURI(game.HomeTeam)},
				map[string]string{"conceptUri": conceptURI(game.AwayTeam)},
				map[string]string{"categoryUri": "dmoz/Sports/Basketball"},
				map[string]string{"locationUri": "http://en.wikipedia.org/wiki/United_States"},
				map[string]string{
					"dateStart": dateStart,
					"dateEnd":   dateEnd,
					"lang":      "eng",
				},
			},
		},
		"$filter": map[string]interface{}{
			"dataType":    []string{"news", "pr", "blog"},
			"isDuplicate": "skipDuplicates",
		},
	}

	payload := map[string]interface{}{
		"query":             query,
		"resultType":        "articles",
		"articlesSortBy":    "rel",
		"articlesCount":     20,
		"includeArticleEml": false,
		"apiKey":            e.apiKey,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch articles for %s vs %s: %w", game.HomeTeam, game.AwayTeam, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("event registry returned %d", resp.StatusCode)
	}

	var parsed erResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode event registry response: %w", err)
	}

	articles := make([]types.NewsArticle, 0, len(parsed.Articles.Results))
	for _, r := range parsed.Articles.Results {
		if int(r.Relevance) < config.MinRelevance {
			continue
		}
		articles = append(articles, types.NewsArticle{
			Title:     r.Title,
			Source:    r.Source.Title,
			Body:      r.Body,
			URL:       r.URL,
			Relevance: int(r.Relevance),
		})
	}

	// Deduplicated but uncapped: the pipeline drops already-used articles
	// before applying the per-game cap.
	return Dedupe(articles), nil
}

// conceptURI maps a team name to its Wikipedia concept URI.
func conceptURI(team string) string {
	return "http://en.wikipedia.org/wiki/" + strings.ReplaceAll(team, " ", "_")
}

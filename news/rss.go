package news

import (
	"context"
	"log"
	"strings"

	"courtside/config"
	"courtside/types"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
)

const defaultFeedURL = "https://www.espn.com/espn/rss/nba/news"

// RSSSource is the fallback news source used when Event Registry is not
// configured: a league feed filtered to items mentioning either team, with
// full text pulled through readability extraction.
type RSSSource struct {
	feedURL string
	parser  *gofeed.Parser
}

// NewRSSSource creates the fallback source. An empty feedURL selects the
// default league feed.
func NewRSSSource(feedURL string) *RSSSource {
	if feedURL == "" {
		feedURL = defaultFeedURL
	}
	return &RSSSource{feedURL: feedURL, parser: gofeed.NewParser()}
}

// GameNews fetches the feed and keeps items mentioning the home or away
// team. Extraction failures degrade to the item summary; feed failure is
// returned for the caller to log and continue.
func (s *RSSSource) GameNews(ctx context.Context, game types.Game) ([]types.NewsArticle, error) {
	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, err
	}

	var articles []types.NewsArticle
	for _, item := range feed.Items {
		if !mentionsTeam(item, game.HomeTeam) && !mentionsTeam(item, game.AwayTeam) {
			continue
		}

		body := item.Description
		if item.Link != "" {
			if extracted, err := readability.FromURL(item.Link, config.ExtractTimeout); err == nil {
				body = extracted.TextContent
			} else {
				log.Printf("Warning: extraction failed for %s: %v", item.Link, err)
			}
		}

		source := ""
		if item.Author != nil {
			source = item.Author.Name
		}
		if source == "" {
			source = feed.Title
		}

		articles = append(articles, types.NewsArticle{
			Title:     item.Title,
			Source:    source,
			Body:      body,
			URL:       item.Link,
			Relevance: config.MinRelevance,
		})
	}

	return Dedupe(articles), nil
}

func mentionsTeam(item *gofeed.Item, team string) bool {
	if team == "" {
		return false
	}
	needle := strings.ToLower(team)
	return strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.Description), needle)
}

package news

import (
	"strings"

	"courtside/types"
)

// Dedupe drops articles repeating a normalized title or a URL. The two keys
// are independent: an article is kept only when both are unseen. Order is
// preserved.
func Dedupe(articles []types.NewsArticle) []types.NewsArticle {
	seenTitles := make(map[string]bool, len(articles))
	seenURLs := make(map[string]bool, len(articles))

	out := make([]types.NewsArticle, 0, len(articles))
	for _, a := range articles {
		title := normalizeTitle(a.Title)
		url := strings.TrimSpace(a.URL)
		if seenTitles[title] || seenURLs[url] {
			continue
		}
		seenTitles[title] = true
		seenURLs[url] = true
		out = append(out, a)
	}
	return out
}

// Cap trims the slice to the per-game article limit. Callers apply it after
// every per-article filter (dedup, seen) so dropped articles free their slot
// for the next candidate.
func Cap(articles []types.NewsArticle, max int) []types.NewsArticle {
	if len(articles) > max {
		return articles[:max]
	}
	return articles
}

func normalizeTitle(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

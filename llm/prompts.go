package llm

import (
	"fmt"
	"strings"

	"courtside/config"
	"courtside/types"
)

// SystemJournalist is the system role for summary and recap completions.
const SystemJournalist = "You are a professional sports journalist writing NBA game summaries."

// SystemImagePrompt is the system role for deriving a header image prompt
// from a finished article.
const SystemImagePrompt = `You are an expert at creating detailed, engaging image prompts for blog articles.
Generate a concise, visually descriptive image prompt (maximum 50 words) that captures the essence and main theme of the article.

The image should be suitable for a blog header image (16:9 aspect ratio).
Focus on the key visual elements that represent the article's topic.
No text should be in the image.
Do not include any NBA players in the image. Do not make up any players.
You can include NBA logos, uniforms, and other NBA elements, but not players.
Do not overcomplicate the image. Simple and clean is best.
Return ONLY the image prompt, nothing else.`

// NoArticlesPlaceholder stands in when a game has no usable coverage;
// missing articles degrade the prompt, never the pipeline.
const NoArticlesPlaceholder = "No detailed articles available for this game."

// FormatArticles renders up to MaxArticlesPerGame articles for embedding in
// a prompt, bodies truncated to the prompt budget.
func FormatArticles(articles []types.NewsArticle) string {
	if len(articles) == 0 {
		return NoArticlesPlaceholder
	}

	var formatted []string
	for i, a := range articles {
		if i == config.MaxArticlesPerGame {
			break
		}
		body := a.Body
		if runes := []rune(body); len(runes) > config.ArticleBodyLimit {
			body = string(runes[:config.ArticleBodyLimit])
		}
		formatted = append(formatted, fmt.Sprintf(
			"Article %d:\nTitle: %s\nSource: %s\nContent: %s...\n\n",
			i+1, a.Title, a.Source, body))
	}
	return strings.Join(formatted, "\n")
}

// GameSummaryPrompt asks for a 2-3 paragraph summary of one game grounded in
// the supplied articles.
func GameSummaryPrompt(game types.Game, articlesText string) string {
	return fmt.Sprintf(`You are a sports journalist writing a concise summary of an NBA game.

Game Details:
- Teams: %s (Home) vs %s (Away)
- Final Score: %s
- Winner: %s

News Articles Available:
%s

Write a 2-3 paragraph summary of this game that includes:
1. The final score and winning team
2. Key highlights and standout performances mentioned in the articles
3. Any notable storylines or context

Keep it professional, engaging, and factual. Do not make up information not present in the articles.

Summary:`, game.HomeTeam, game.AwayTeam, game.Score, game.Winner, articlesText)
}

// DailyRecapPrompt asks for the full-day recap article. The date must appear
// in the generated title.
func DailyRecapPrompt(date, gameSummaries string) string {
	return fmt.Sprintf(`You are a sports journalist writing a daily NBA recap article.

Date: %s

Individual Game Summaries:
%s

Write a comprehensive article (4-6 paragraphs) that:
1. Starts with an engaging introduction about the day's NBA action
2. Highlights the most exciting or significant games
3. Mentions standout individual performances
4. Includes any notable trends or storylines
5. Mentions the other games that were played that day and weren't mentioned before
6. Ends with a brief conclusion

IMPORTANT: The article title MUST include the date %s in the title. Format it as part of an engaging and professional title (e.g., "NBA Recap %s: Title Text" or similar format).

Article:`, date, gameSummaries, date, date)
}

// ImagePromptUser builds the user turn for image prompt derivation, content
// truncated to the prompt budget.
func ImagePromptUser(title, content string) string {
	if runes := []rune(content); len(runes) > config.ImagePromptContentLimit {
		content = string(runes[:config.ImagePromptContentLimit])
	}
	return fmt.Sprintf(`Article Title: %s
Article Content: %s...
Generate a compelling image prompt for this article.
Do not overcomplicate the image. Simple and clean is best.
NO TEXT SHOULD BE IN THE IMAGE.`, title, content)
}

// FallbackImagePrompt is used when no provider is configured or the
// derivation call fails.
func FallbackImagePrompt(title string) string {
	return "A professional image representing " + title
}

// UnwrapBoldTitle strips a fully-bold markdown first line, which the recap
// model sometimes emits despite instructions.
func UnwrapBoldTitle(article string) string {
	lines := strings.Split(article, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "**") && strings.HasSuffix(lines[0], "**") {
		lines[0] = strings.Trim(lines[0], "*")
	}
	return strings.Join(lines, "\n")
}

// SplitTitleContent separates the recap into its first-line title and the
// remaining body. A markdown heading prefix on the title is trimmed.
func SplitTitleContent(article string) (title, content string) {
	trimmed := strings.TrimSpace(article)
	lines := strings.SplitN(trimmed, "\n", 2)
	title = strings.TrimSpace(strings.TrimLeft(lines[0], "#"))
	if len(lines) > 1 {
		content = lines[1]
	} else {
		content = trimmed
	}
	return title, content
}

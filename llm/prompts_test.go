package llm

import (
	"strings"
	"testing"

	"courtside/config"
	"courtside/types"
)

func TestFormatArticlesPlaceholder(t *testing.T) {
	if got := FormatArticles(nil); got != NoArticlesPlaceholder {
		t.Fatalf("got %q", got)
	}
}

func TestFormatArticlesTruncatesBodies(t *testing.T) {
	long := strings.Repeat("x", config.ArticleBodyLimit+500)
	got := FormatArticles([]types.NewsArticle{
		{Title: "T1", Source: "S1", Body: long},
	})

	if strings.Count(got, "x") != config.ArticleBodyLimit {
		t.Errorf("body not truncated to limit")
	}
	for _, want := range []string{"Article 1:", "Title: T1", "Source: S1"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestFormatArticlesCapped(t *testing.T) {
	articles := make([]types.NewsArticle, 5)
	got := FormatArticles(articles)
	if strings.Contains(got, "Article 4:") {
		t.Error("more than three articles formatted")
	}
}

func TestGameSummaryPromptFields(t *testing.T) {
	game := types.Game{
		HomeTeam: "Boston Celtics", AwayTeam: "Utah Jazz",
		Score: "Boston Celtics 126 - 97 Utah Jazz", Winner: "Boston Celtics",
	}
	got := GameSummaryPrompt(game, NoArticlesPlaceholder)

	for _, want := range []string{
		"Boston Celtics (Home) vs Utah Jazz (Away)",
		"Final Score: Boston Celtics 126 - 97 Utah Jazz",
		"Winner: Boston Celtics",
		NoArticlesPlaceholder,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestDailyRecapPromptRequiresDate(t *testing.T) {
	got := DailyRecapPrompt("2024-01-05", "## summaries")
	if strings.Count(got, "2024-01-05") < 3 {
		t.Errorf("date should appear in context and title instruction:\n%s", got)
	}
}

func TestImagePromptUserTruncates(t *testing.T) {
	long := strings.Repeat("y", config.ImagePromptContentLimit+100)
	got := ImagePromptUser("Title", long)
	if strings.Count(got, "y") != config.ImagePromptContentLimit {
		t.Error("content not truncated for image prompt")
	}
}

func TestUnwrapBoldTitle(t *testing.T) {
	in := "**NBA Recap 2024-01-05: Thunder Roll**\n\nBody text."
	got := UnwrapBoldTitle(in)
	if !strings.HasPrefix(got, "NBA Recap 2024-01-05: Thunder Roll\n") {
		t.Errorf("bold title not unwrapped: %q", got)
	}

	plain := "Plain title\nBody"
	if UnwrapBoldTitle(plain) != plain {
		t.Error("plain title should pass through")
	}
}

func TestSplitTitleContent(t *testing.T) {
	title, content := SplitTitleContent("# NBA Recap 2024-01-05\nFirst paragraph.\nSecond.")
	if title != "NBA Recap 2024-01-05" {
		t.Errorf("title = %q", title)
	}
	if !strings.HasPrefix(content, "First paragraph.") {
		t.Errorf("content = %q", content)
	}

	// Single line articles fall back to using the whole text as content.
	title, content = SplitTitleContent("Only a title")
	if title != "Only a title" || content != "Only a title" {
		t.Errorf("single line split: %q / %q", title, content)
	}
}

package config

import "time"

// Content Constants
const (
	// ExcerptMaxLength bounds the excerpt derived from article content
	ExcerptMaxLength = 200

	// ExcerptEllipsis is appended when the excerpt falls back to hard truncation
	ExcerptEllipsis = "..."
)

// Remote Store Constants
const (
	// ConnectTimeout bounds the SFTP dial; there is no retry, a single
	// attempt is the complete contract
	ConnectTimeout = 30 * time.Second

	// RecordDateLayout prefixes remote record filenames (UTC)
	RecordDateLayout = "20060102"
)

// News Constants
const (
	// MaxArticlesPerGame caps the deduplicated articles attached to a game
	MaxArticlesPerGame = 3

	// MinRelevance is the provider relevance floor for keeping an article
	MinRelevance = 100

	// ExtractTimeout bounds full-text extraction for a single RSS item
	ExtractTimeout = 30 * time.Second
)

// Completion Constants
const (
	// CompletionTemperature is fixed for all completion calls
	CompletionTemperature = 0.7

	// CompletionMaxTokens bounds summary and recap output
	CompletionMaxTokens = 2000

	// ImagePromptMaxTokens bounds image prompt derivation output
	ImagePromptMaxTokens = 100

	// ArticleBodyLimit truncates article bodies embedded in prompts
	ArticleBodyLimit = 800

	// ImagePromptContentLimit truncates article content embedded in image prompts
	ImagePromptContentLimit = 500
)

// Blog Constants
const (
	// DefaultAuthor is the byline used when the caller supplies none
	DefaultAuthor = "Jordan Taylor"

	// DefaultRemoteDir is the blog directory under the remote base path
	DefaultRemoteDir = "/blog"

	// ImagesSubdir holds header images under the blog directory
	ImagesSubdir = "images"
)

// Package orchestrator drives the recap pipeline state machine: fetch the
// day's games, gather coverage, summarize, write the recap, render a header
// image, then publish on demand.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"courtside/blog"
	"courtside/config"
	"courtside/content"
	"courtside/images"
	"courtside/llm"
	"courtside/mirror"
	"courtside/nba"
	"courtside/news"
	"courtside/notify"
	"courtside/types"
	"courtside/upload"
)

// ErrRunActive is returned when a generation run is already in flight.
var ErrRunActive = errors.New("a generation run is already in flight")

// ErrNoDraft is returned when publish is requested with no recap ready.
var ErrNoDraft = errors.New("no recap draft is ready to publish")

// ErrNoProvider is returned when no completion provider is configured.
var ErrNoProvider = errors.New("no completion provider configured")

// GamesProvider fetches final scores for a date.
type GamesProvider interface {
	GamesByDate(ctx context.Context, date time.Time) ([]types.Game, error)
}

// ImageGenerator renders a header image for a recap.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt, slug string) (string, error)
	Regenerate(ctx context.Context, prompt, slug string) (string, error)
}

// RecordPublisher assembles and uploads one article record.
type RecordPublisher interface {
	BuildAndPublish(p blog.BuildParams) types.PublishResult
}

// FilePublisher uploads a local file to a remote directory.
type FilePublisher interface {
	PublishFile(localPath, remoteDir string) (types.UploadInfo, []string, error)
}

// SeenFilter drops articles already used by a previous run and learns the
// articles of a successful one.
type SeenFilter interface {
	Filter(articles []types.NewsArticle) []types.NewsArticle
	Record(articles []types.NewsArticle) error
}

// ImageMirror copies published header images to secondary storage.
type ImageMirror interface {
	PutImage(ctx context.Context, name string, data []byte) error
}

// Runner executes the pipeline over the state manager. All collaborators
// except games, publisher and state are optional; missing ones degrade the
// run instead of failing it.
type Runner struct {
	state     *Manager
	games     GamesProvider
	news      news.Source
	provider  llm.Provider
	images    ImageGenerator
	publisher   RecordPublisher
	files       FilePublisher
	imageMirror ImageMirror
	seen        SeenFilter
	blog        config.BlogConfig
}

// NewRunner wires a Runner from explicit collaborators.
func NewRunner(state *Manager, games GamesProvider, source news.Source, provider llm.Provider,
	gen ImageGenerator, publisher RecordPublisher, files FilePublisher,
	imageMirror ImageMirror, seen SeenFilter, blogCfg config.BlogConfig) *Runner {
	return &Runner{
		state:       state,
		games:       games,
		news:        source,
		provider:    provider,
		images:      gen,
		publisher:   publisher,
		files:       files,
		imageMirror: imageMirror,
		seen:        seen,
		blog:        blogCfg,
	}
}

// FromEnv builds a fully wired Runner from the environment. Optional
// collaborators (news provider, LLM, image generator, seen filter, mirror,
// notifications) are enabled only when their configuration is present.
func FromEnv(ctx context.Context, state *Manager) (*Runner, error) {
	pipeline := config.PipelineFromEnv()
	blogCfg := config.BlogFromEnv()
	sftpCfg := config.SFTPFromEnv()

	var source news.Source
	if pipeline.EventRegistryKey != "" {
		source = news.NewEventRegistry(pipeline.EventRegistryKey, "")
	} else {
		source = news.NewRSSSource("")
		log.Println("EVENTREGISTRY_API_KEY not set, falling back to RSS news")
	}

	var gen ImageGenerator
	if pipeline.GoogleKey != "" {
		gen = images.NewGenerator(pipeline.GoogleKey, "", pipeline.ImageDir)
	}

	var seen SeenFilter
	if sf, err := news.NewSeenFilterFromEnv(); err != nil {
		return nil, fmt.Errorf("connect seen filter: %w", err)
	} else if sf != nil {
		seen = sf
	}

	var hooks []blog.Hook
	var imageMirror ImageMirror
	m, err := mirror.NewFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("configure mirror: %w", err)
	}
	if m != nil {
		hooks = append(hooks, m.Hook())
		imageMirror = m
	}

	producer, err := notify.NewProducerFromEnv()
	if err != nil {
		return nil, fmt.Errorf("configure notifications: %w", err)
	}
	if producer != nil {
		hooks = append(hooks, producer.Hook())
	}

	uploader := blog.NewBuilder(sftpCfg, hooks...)
	files := upload.NewPublisher(sftpCfg)

	return NewRunner(state, nba.NewClient(""), source, llm.NewDefaultProvider(""),
		gen, uploader, files, imageMirror, seen, blogCfg), nil
}

// Start launches a generation run for the date in the background and returns
// its run id. The state transition happens before the goroutine is spawned,
// so only one run may be in flight at a time even under concurrent callers.
func (r *Runner) Start(date time.Time) (string, error) {
	runID := uuid.New().String()
	if !r.state.StartRun(runID) {
		return "", ErrRunActive
	}
	go func() {
		if err := r.run(context.Background(), date); err != nil {
			log.Printf("Run %s failed: %v", runID, err)
		}
	}()
	return runID, nil
}

// Generate runs the pipeline through the ready state, synchronously. Zero
// games is a normal outcome: the run logs it and returns to idle without an
// error. Failures are recorded on the state manager and returned.
func (r *Runner) Generate(ctx context.Context, runID string, date time.Time) error {
	if !r.state.StartRun(runID) {
		return ErrRunActive
	}
	return r.run(ctx, date)
}

// run executes the pipeline stages. The caller has already claimed the
// state manager via StartRun.
func (r *Runner) run(ctx context.Context, date time.Time) error {
	day := date.Format("January 2, 2006")
	r.state.AddLog(fmt.Sprintf("Fetching games for %s...", day))

	games, err := r.games.GamesByDate(ctx, date)
	if err != nil {
		err = fmt.Errorf("fetch games: %w", err)
		r.state.SetError(err)
		return err
	}
	if len(games) == 0 {
		r.state.AddLog(fmt.Sprintf("No games found for %s", day))
		r.state.SetState(types.StateIdle)
		return nil
	}
	r.state.SetGames(games)
	r.state.AddLog(fmt.Sprintf("Found %d games", len(games)))

	r.state.SetState(types.StateFetchingNews)
	gameNews := r.fetchNews(ctx, games)
	r.state.SetNews(gameNews)

	if r.provider == nil {
		r.state.SetError(ErrNoProvider)
		return ErrNoProvider
	}

	r.state.SetState(types.StateSummarizing)
	summaries, err := r.summarize(ctx, gameNews)
	if err != nil {
		r.state.SetError(err)
		return err
	}

	r.state.SetState(types.StateWriting)
	r.state.AddLog("Writing the daily recap...")
	draft, err := r.writeRecap(ctx, day, date, summaries)
	if err != nil {
		r.state.SetError(err)
		return err
	}
	r.state.SetDraft(draft)
	r.state.AddLog(fmt.Sprintf("Draft ready: %s", draft.Title))

	if r.images != nil {
		r.state.SetState(types.StateImaging)
		r.state.AddLog("Generating header image...")
		path := r.generateImage(ctx, draft, false)
		r.state.SetImagePath(path)
		if path == "" {
			r.state.AddLog("No header image; the article will publish without one")
		} else {
			r.state.AddLog(fmt.Sprintf("Header image saved to %s", path))
		}
	}

	r.state.SetState(types.StateReady)
	r.state.AddLog("Recap ready to publish")
	return nil
}

// fetchNews gathers per-game coverage. A provider failure for one game
// degrades that game to the no-articles placeholder rather than failing the
// run.
func (r *Runner) fetchNews(ctx context.Context, games []types.Game) []types.GameNews {
	gameNews := make([]types.GameNews, 0, len(games))
	for _, game := range games {
		r.state.AddLog(fmt.Sprintf("Fetching news for %s vs %s...", game.HomeTeam, game.AwayTeam))

		var articles []types.NewsArticle
		if r.news != nil {
			var err error
			articles, err = r.news.GameNews(ctx, game)
			if err != nil {
				r.state.AddLog(fmt.Sprintf("News lookup failed for %s vs %s: %v", game.HomeTeam, game.AwayTeam, err))
				articles = nil
			}
		}
		// Seen articles drop before the cap so a game whose top coverage
		// was used by a prior run falls through to the next unseen articles.
		if r.seen != nil {
			articles = r.seen.Filter(articles)
		}
		articles = news.Cap(articles, config.MaxArticlesPerGame)

		gameNews = append(gameNews, types.GameNews{Game: game, Articles: articles})
		r.state.AddLog(fmt.Sprintf("Found %d articles", len(articles)))
	}
	return gameNews
}

// summarize produces one summary per game.
func (r *Runner) summarize(ctx context.Context, gameNews []types.GameNews) ([]string, error) {
	summaries := make([]string, 0, len(gameNews))
	for _, gn := range gameNews {
		r.state.AddLog(fmt.Sprintf("Summarizing %s vs %s...", gn.Game.HomeTeam, gn.Game.AwayTeam))

		summary, err := r.provider.Complete(ctx, llm.Request{
			System: llm.SystemJournalist,
			User:   llm.GameSummaryPrompt(gn.Game, llm.FormatArticles(gn.Articles)),
		})
		if err != nil {
			return nil, fmt.Errorf("summarize %s vs %s: %w", gn.Game.HomeTeam, gn.Game.AwayTeam, err)
		}
		summaries = append(summaries, fmt.Sprintf("=== %s ===\n%s", gn.Game.ScoreLine(), summary))
	}
	return summaries, nil
}

// writeRecap turns the game summaries into the final titled draft.
func (r *Runner) writeRecap(ctx context.Context, day string, date time.Time, summaries []string) (Draft, error) {
	article, err := r.provider.Complete(ctx, llm.Request{
		System: llm.SystemJournalist,
		User:   llm.DailyRecapPrompt(day, strings.Join(summaries, "\n\n")),
	})
	if err != nil {
		return Draft{}, fmt.Errorf("write recap: %w", err)
	}

	title, body := llm.SplitTitleContent(llm.UnwrapBoldTitle(article))
	if title == "" {
		return Draft{}, errors.New("recap came back without a title")
	}
	return Draft{Title: title, Content: body, Date: date}, nil
}

// generateImage derives an image prompt from the draft and renders the
// header image. Any failure returns an empty path; a missing image never
// blocks the pipeline.
func (r *Runner) generateImage(ctx context.Context, draft Draft, regenerate bool) string {
	prompt, err := r.provider.Complete(ctx, llm.Request{
		System:    llm.SystemImagePrompt,
		User:      llm.ImagePromptUser(draft.Title, draft.Content),
		MaxTokens: config.ImagePromptMaxTokens,
	})
	if err != nil || strings.TrimSpace(prompt) == "" {
		prompt = llm.FallbackImagePrompt(draft.Title)
	}

	slug := content.Slugify(draft.Title)
	var path string
	if regenerate {
		path, err = r.images.Regenerate(ctx, prompt, slug)
	} else {
		path, err = r.images.Generate(ctx, prompt, slug)
	}
	if err != nil {
		r.state.AddLog(fmt.Sprintf("Image generation failed: %v", err))
		return ""
	}
	return path
}

// RegenerateImage discards the current header image and renders a new one
// for the ready draft.
func (r *Runner) RegenerateImage(ctx context.Context) (string, error) {
	draft := r.state.Draft()
	if draft.Title == "" {
		return "", ErrNoDraft
	}
	if r.images == nil {
		return "", errors.New("no image generator configured")
	}
	if r.provider == nil {
		return "", ErrNoProvider
	}

	r.state.AddLog("Regenerating header image...")
	path := r.generateImage(ctx, draft, true)
	r.state.SetImagePath(path)
	return path, nil
}

// Publish uploads the header image (when present), then builds and publishes
// the article record. The seen filter learns the run's articles only after a
// successful publish so a failed attempt can be retried with the same news.
func (r *Runner) Publish(ctx context.Context) (types.PublishResult, error) {
	draft := r.state.Draft()
	if draft.Title == "" {
		return types.PublishResult{}, ErrNoDraft
	}

	r.state.SetState(types.StatePublishing)
	r.state.AddLog("Publishing recap...")

	imageURL := r.publishImage(ctx)

	result := r.publisher.BuildAndPublish(blog.BuildParams{
		Title:     draft.Title,
		Content:   draft.Content,
		Author:    r.blog.Author,
		BaseURL:   r.blog.BaseURL,
		RemoteDir: r.blog.RemotePath(),
		ImageURL:  imageURL,
	})
	for _, w := range result.Warnings {
		r.state.AddLog(fmt.Sprintf("Warning: %s", w))
	}
	r.state.SetResult(&result)

	if !result.Success {
		r.state.AddLog(fmt.Sprintf("Publish failed: %s", result.Error))
		r.state.SetState(types.StateReady)
		return result, nil
	}

	r.recordSeen()
	r.state.SetState(types.StatePublished)
	r.state.AddLog(fmt.Sprintf("Published %s", result.UploadInfo.Filename))
	return result, nil
}

// publishImage uploads the generated header image and returns its public
// URL, or empty when there is no image or the upload fails. A successful
// upload is also copied to the mirror, best-effort.
func (r *Runner) publishImage(ctx context.Context) string {
	imagePath := r.state.ImagePath()
	if imagePath == "" || r.files == nil {
		return ""
	}

	info, warnings, err := r.files.PublishFile(imagePath, r.blog.ImagesRemotePath())
	for _, w := range warnings {
		r.state.AddLog(fmt.Sprintf("Warning: %s", w))
	}
	if err != nil {
		r.state.AddLog(fmt.Sprintf("Image upload failed, publishing without image: %v", err))
		return ""
	}
	r.state.AddLog(fmt.Sprintf("Uploaded image %s", info.Filename))

	if r.imageMirror != nil {
		if data, err := os.ReadFile(imagePath); err != nil {
			r.state.AddLog(fmt.Sprintf("Image mirror skipped: %v", err))
		} else if err := r.imageMirror.PutImage(ctx, filepath.Base(imagePath), data); err != nil {
			r.state.AddLog(fmt.Sprintf("Image mirror failed: %v", err))
		}
	}

	return r.blog.ImageBaseURL + "/" + filepath.Base(imagePath)
}

// PublishArticle builds and publishes an ad-hoc article through the
// configured publisher and hooks, independent of the pipeline state. Empty
// destination fields default to the blog configuration.
func (r *Runner) PublishArticle(p blog.BuildParams) types.PublishResult {
	if p.BaseURL == "" {
		p.BaseURL = r.blog.BaseURL
	}
	if p.RemoteDir == "" {
		p.RemoteDir = r.blog.RemotePath()
	}
	if p.Author == "" {
		p.Author = r.blog.Author
	}
	return r.publisher.BuildAndPublish(p)
}

// recordSeen teaches the seen filter this run's articles.
func (r *Runner) recordSeen() {
	if r.seen == nil {
		return
	}
	var all []types.NewsArticle
	for _, gn := range r.state.News() {
		all = append(all, gn.Articles...)
	}
	if err := r.seen.Record(all); err != nil {
		log.Printf("Recording seen articles: %v", err)
	}
}

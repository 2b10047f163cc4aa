package blog

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"courtside/config"
	"courtside/content"
	"courtside/types"
	"courtside/upload"
)

// ErrEmptyTitle is the precondition failure for a title that yields no slug.
var ErrEmptyTitle = errors.New("article title is empty")

// BuildParams carries everything needed to assemble and publish one record.
type BuildParams struct {
	Title     string
	Content   string
	Author    string
	BaseURL   string
	RemoteDir string
	// ImageURL is the public URL of an already-uploaded header image.
	// Empty means the record carries no image; absence never blocks.
	ImageURL string
}

// recordPublisher is the slice of the upload package the builder needs.
type recordPublisher interface {
	PublishJSON(record types.ArticleRecord, remoteDir string) (types.UploadInfo, []string, error)
}

// Hook observes a successfully published record. Hooks are best-effort side
// channels (mirror, notification); they run after the transfer and cannot
// fail it.
type Hook func(record types.ArticleRecord, info types.UploadInfo)

// Builder assembles immutable article records and hands them to the
// publisher. One record is constructed per publish attempt and never
// mutated afterwards.
type Builder struct {
	pub   recordPublisher
	hooks []Hook
}

// NewBuilder creates a Builder publishing over SFTP with the given config.
func NewBuilder(cfg config.SFTPConfig, hooks ...Hook) *Builder {
	return &Builder{pub: upload.NewPublisher(cfg), hooks: hooks}
}

// BuildRecord assembles the record from normalized fields. The slug doubles
// as the id; a title with no usable characters is a caller precondition
// violation.
func BuildRecord(p BuildParams, now time.Time) (types.ArticleRecord, error) {
	if strings.TrimSpace(p.Title) == "" {
		return types.ArticleRecord{}, ErrEmptyTitle
	}
	slug := content.Slugify(p.Title)
	if slug == "" {
		return types.ArticleRecord{}, fmt.Errorf("%w: no usable characters in %q", ErrEmptyTitle, p.Title)
	}

	author := p.Author
	if author == "" {
		author = config.DefaultAuthor
	}

	return types.ArticleRecord{
		ID:          slug,
		Slug:        slug,
		Title:       p.Title,
		Excerpt:     content.Excerpt(p.Content, config.ExcerptMaxLength),
		Image:       p.ImageURL,
		Author:      author,
		PublishedAt: now.UTC(),
		URL:         p.BaseURL + "/" + slug,
		ContentHTML: content.ConvertMarkdown(p.Content),
	}, nil
}

// BuildAndPublish assembles the record and publishes it as JSON. The record
// and upload info are returned even when the transfer fails so the caller
// can retry or inspect; Success mirrors the transfer outcome only. A failed
// transfer leaves no partial remote artifact.
func (b *Builder) BuildAndPublish(p BuildParams) types.PublishResult {
	record, err := BuildRecord(p, time.Now())
	if err != nil {
		return types.PublishResult{Error: err.Error()}
	}

	info, warnings, err := b.pub.PublishJSON(record, p.RemoteDir)
	result := types.PublishResult{
		Record:     &record,
		UploadInfo: &info,
		Warnings:   warnings,
	}
	if err != nil {
		result.Error = err.Error()
		log.Printf("Publish failed for %s: %v", record.Slug, err)
		return result
	}

	result.Success = true
	log.Printf("Published %s to %s", info.Filename, info.RemotePath)
	for _, hook := range b.hooks {
		hook(record, info)
	}
	return result
}

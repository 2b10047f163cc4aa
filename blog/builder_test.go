package blog

import (
	"errors"
	"strings"
	"testing"
	"time"

	"courtside/types"
)

type fakePublisher struct {
	published []types.ArticleRecord
	remoteDir string
	err       error
}

func (f *fakePublisher) PublishJSON(record types.ArticleRecord, remoteDir string) (types.UploadInfo, []string, error) {
	f.published = append(f.published, record)
	f.remoteDir = remoteDir
	info := types.UploadInfo{
		Filename:   "20240105-" + record.Slug + ".json",
		RemotePath: remoteDir + "/20240105-" + record.Slug + ".json",
		Host:       "example.com",
	}
	return info, nil, f.err
}

func TestBuildRecord(t *testing.T) {
	now := time.Date(2024, 1, 5, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	record, err := BuildRecord(BuildParams{
		Title:   "Future of AI",
		Content: "## Intro\n\nHello **world**.",
		Author:  "Jordan Taylor",
		BaseURL: "/home/user/site",
	}, now)
	if err != nil {
		t.Fatalf("BuildRecord: %v", err)
	}

	if record.Slug != "future-of-ai" || record.ID != record.Slug {
		t.Errorf("slug/id = %q/%q", record.Slug, record.ID)
	}
	if record.Title != "Future of AI" {
		t.Errorf("title mutated: %q", record.Title)
	}
	if record.URL != "/home/user/site/future-of-ai" {
		t.Errorf("url = %q", record.URL)
	}
	if !strings.Contains(record.ContentHTML, "<h2>Intro</h2>") ||
		!strings.Contains(record.ContentHTML, "<strong>world</strong>") {
		t.Errorf("content html missing converted markup:\n%s", record.ContentHTML)
	}
	if n := strings.Count(record.ContentHTML, `<div class="mr-article">`); n != 1 {
		t.Errorf("expected one container, got %d", n)
	}
	if record.PublishedAt.Location() != time.UTC {
		t.Errorf("published_at not UTC: %v", record.PublishedAt)
	}
}

func TestBuildRecordEmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "!!!"} {
		if _, err := BuildRecord(BuildParams{Title: title}, time.Now()); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("title %q: err = %v, want ErrEmptyTitle", title, err)
		}
	}
}

func TestBuildAndPublishSuccess(t *testing.T) {
	pub := &fakePublisher{}
	var hooked int
	b := &Builder{pub: pub, hooks: []Hook{func(types.ArticleRecord, types.UploadInfo) { hooked++ }}}

	result := b.BuildAndPublish(BuildParams{
		Title:     "NBA Recap 2024-01-05",
		Content:   "The Celtics won.",
		BaseURL:   "/home/user/site",
		RemoteDir: "/home/user/site/blog",
	})

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Record == nil || result.Record.Image != "" {
		t.Errorf("record with no image key should have empty image field: %+v", result.Record)
	}
	if pub.remoteDir != "/home/user/site/blog" {
		t.Errorf("remoteDir = %q", pub.remoteDir)
	}
	if hooked != 1 {
		t.Errorf("hooks ran %d times, want 1", hooked)
	}
}

func TestBuildAndPublishTransferFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("transfer /blog/x.json: broken pipe")}
	var hooked int
	b := &Builder{pub: pub, hooks: []Hook{func(types.ArticleRecord, types.UploadInfo) { hooked++ }}}

	result := b.BuildAndPublish(BuildParams{Title: "Future of AI", Content: "x", RemoteDir: "/blog"})

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Record == nil {
		t.Fatal("record must be returned even on publish failure")
	}
	if result.UploadInfo == nil || result.UploadInfo.Host != "example.com" {
		t.Errorf("upload info must be computed regardless of outcome: %+v", result.UploadInfo)
	}
	if !strings.Contains(result.Error, "transfer") {
		t.Errorf("error does not identify the stage: %q", result.Error)
	}
	if hooked != 0 {
		t.Error("hooks must not run on failed publish")
	}
}

func TestBuildAndPublishPreconditionSkipsPublisher(t *testing.T) {
	pub := &fakePublisher{}
	b := &Builder{pub: pub}

	result := b.BuildAndPublish(BuildParams{Title: "  "})

	if result.Success || result.Record != nil {
		t.Fatalf("precondition violation should not build or publish: %+v", result)
	}
	if len(pub.published) != 0 {
		t.Error("publisher was called despite empty title")
	}
}

func TestBuildAndPublishDefaultsAuthor(t *testing.T) {
	pub := &fakePublisher{}
	b := &Builder{pub: pub}

	result := b.BuildAndPublish(BuildParams{Title: "Future of AI", RemoteDir: "/blog"})
	if result.Record.Author == "" {
		t.Error("author should default when unset")
	}
}

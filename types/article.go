package types

import "time"

// ArticleRecord is the immutable structured record for one published post.
// It is serialized once to the remote store and never read back.
type ArticleRecord struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Image       string    `json:"image"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
	URL         string    `json:"url"`
	ContentHTML string    `json:"content_html"`
}

// UploadInfo identifies where a record was (or would have been) written.
// It is computed for every publish attempt, including failed ones, so the
// caller can diagnose the target.
type UploadInfo struct {
	Filename   string `json:"filename"`
	RemotePath string `json:"remote_path"`
	Host       string `json:"sftp_host"`
}

// PublishResult aggregates the outcome of a build-and-publish attempt.
// Record is present whenever the record was assembled, even when the
// transfer failed, so callers can retry or inspect it.
type PublishResult struct {
	Success    bool           `json:"success"`
	Record     *ArticleRecord `json:"record,omitempty"`
	UploadInfo *UploadInfo    `json:"upload_info,omitempty"`
	Warnings   []string       `json:"warnings,omitempty"`
	Error      string         `json:"error,omitempty"`
}

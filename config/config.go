package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvOrDefault returns the environment variable value or a default when unset.
func EnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// SFTPConfig holds credentials for the remote blog store. There are no
// process-wide defaults; every remote-facing call receives one of these.
type SFTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Addr returns the host:port dial target.
func (c SFTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SFTPFromEnv builds an SFTPConfig from SFTP_HOST, SFTP_PORT, SFTP_USERNAME
// and SFTP_PASSWORD. The password has no default; a missing password is a
// precondition failure at publish time, not here.
func SFTPFromEnv() SFTPConfig {
	port := 22
	if v := os.Getenv("SFTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			port = p
		}
	}
	return SFTPConfig{
		Host:     EnvOrDefault("SFTP_HOST", "iad1-shared-b7-30.dreamhost.com"),
		Port:     port,
		Username: EnvOrDefault("SFTP_USERNAME", "dh_dncxkw"),
		Password: os.Getenv("SFTP_PASSWORD"),
	}
}

// BlogConfig describes where records land and how their public URLs are built.
type BlogConfig struct {
	// BaseURL is the remote base path; record URLs are BaseURL/slug.
	BaseURL string
	// RemoteDir is the blog directory joined under BaseURL.
	RemoteDir string
	// ImageBaseURL is the public URL prefix for uploaded header images.
	ImageBaseURL string
	// Author is the default byline.
	Author string
}

// RemotePath joins BaseURL and RemoteDir into the full remote directory.
func (b BlogConfig) RemotePath() string {
	if b.BaseURL == "" || b.RemoteDir == "" {
		return b.RemoteDir
	}
	if strings.HasPrefix(b.RemoteDir, "/") {
		return b.BaseURL + b.RemoteDir
	}
	return b.BaseURL + "/" + b.RemoteDir
}

// ImagesRemotePath is the remote directory holding header images.
func (b BlogConfig) ImagesRemotePath() string {
	return b.RemotePath() + "/" + ImagesSubdir
}

// BlogFromEnv builds a BlogConfig from BLOG_* environment variables.
func BlogFromEnv() BlogConfig {
	return BlogConfig{
		BaseURL:      EnvOrDefault("BLOG_BASE_URL", "/home/dh_dncxkw/nb.casinoxtra.com"),
		RemoteDir:    EnvOrDefault("BLOG_REMOTE_DIR", DefaultRemoteDir),
		ImageBaseURL: EnvOrDefault("BLOG_IMAGE_BASE_URL", "https://nb.casinoxtra.com/blog/images"),
		Author:       EnvOrDefault("BLOG_AUTHOR", DefaultAuthor),
	}
}

// PipelineConfig collects the upstream service credentials. Empty values mean
// the corresponding collaborator is unconfigured and its stage degrades.
type PipelineConfig struct {
	EventRegistryKey string
	OpenAIKey        string
	CohereKey        string
	GoogleKey        string
	// ImageDir is the local directory for generated header images.
	ImageDir string
}

// PipelineFromEnv builds a PipelineConfig from environment variables.
func PipelineFromEnv() PipelineConfig {
	return PipelineConfig{
		EventRegistryKey: os.Getenv("EVENTREGISTRY_API_KEY"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		CohereKey:        os.Getenv("COHERE_API_KEY"),
		GoogleKey:        os.Getenv("GOOGLE_API_KEY"),
		ImageDir:         EnvOrDefault("IMAGE_OUTPUT_DIR", "images"),
	}
}

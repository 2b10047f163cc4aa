package upload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"courtside/config"
	"courtside/types"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Precondition errors: reported before any network call is attempted.
var (
	ErrMissingHost     = errors.New("sftp host not configured")
	ErrMissingUsername = errors.New("sftp username not configured")
	ErrMissingPassword = errors.New("sftp password not provided")
)

// RemoteFS is the slice of an SFTP session the publisher uses. It exists so
// the directory-ensure and transfer logic can be exercised without a server.
type RemoteFS interface {
	ReadDir(path string) ([]os.FileInfo, error)
	Mkdir(path string) error
	Create(path string) (io.WriteCloser, error)
}

type sftpFS struct {
	client *sftp.Client
}

func (f sftpFS) ReadDir(path string) ([]os.FileInfo, error) { return f.client.ReadDir(path) }
func (f sftpFS) Mkdir(path string) error                    { return f.client.Mkdir(path) }
func (f sftpFS) Create(path string) (io.WriteCloser, error) { return f.client.Create(path) }

// dialSFTP is swapped out in tests to prove the precondition path performs
// zero network calls.
var dialSFTP = dial

// Publisher writes article records and images to the remote store. Every
// call opens its own scoped connection and closes it on all exit paths;
// there is no pooling, no retry, and no at-most-once coordination between
// concurrent callers (last write wins).
type Publisher struct {
	cfg config.SFTPConfig
}

// NewPublisher creates a Publisher for the given remote store.
func NewPublisher(cfg config.SFTPConfig) *Publisher {
	return &Publisher{cfg: cfg}
}

// JSONUploadInfo computes the deterministic target for a record: a
// UTC-date-prefixed filename under remoteDir. It is pure so callers can
// report the target even when the transfer never happens.
func JSONUploadInfo(cfg config.SFTPConfig, remoteDir, slug string, now time.Time) types.UploadInfo {
	filename := now.UTC().Format(config.RecordDateLayout) + "-" + slug + ".json"
	return types.UploadInfo{
		Filename:   filename,
		RemotePath: remoteDir + "/" + filename,
		Host:       cfg.Host,
	}
}

// PublishJSON serializes the record with two-space indentation and writes it
// to its deterministic path under remoteDir, ensuring the directory first.
// The returned warnings carry best-effort directory issues; the error names
// the stage that failed.
func (p *Publisher) PublishJSON(record types.ArticleRecord, remoteDir string) (types.UploadInfo, []string, error) {
	info := JSONUploadInfo(p.cfg, remoteDir, record.Slug, time.Now())

	if err := validate(p.cfg); err != nil {
		return info, nil, err
	}

	body, err := encodeRecord(record)
	if err != nil {
		return info, nil, fmt.Errorf("encode record: %w", err)
	}

	warnings, err := p.transfer(info.RemotePath, remoteDir, body)
	return info, warnings, err
}

// encodeRecord serializes the record with two-space indentation and raw
// HTML characters. The blog front end reads content_html byte-for-byte, so
// the default `<` / `>` / `&` escaping is disabled.
func encodeRecord(record types.ArticleRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// PublishFile writes a local file (typically a PNG header image) to
// remoteDir, keeping its base name.
func (p *Publisher) PublishFile(localPath, remoteDir string) (types.UploadInfo, []string, error) {
	filename := localPath
	if i := strings.LastIndexByte(localPath, '/'); i >= 0 {
		filename = localPath[i+1:]
	}
	info := types.UploadInfo{
		Filename:   filename,
		RemotePath: remoteDir + "/" + filename,
		Host:       p.cfg.Host,
	}

	if err := validate(p.cfg); err != nil {
		return info, nil, err
	}

	body, err := os.ReadFile(localPath)
	if err != nil {
		return info, nil, fmt.Errorf("read local file %s: %w", localPath, err)
	}

	warnings, err := p.transfer(info.RemotePath, remoteDir, body)
	return info, warnings, err
}

// transfer opens a scoped connection, ensures the directory and writes the
// payload. The connection is closed on every exit path.
func (p *Publisher) transfer(remotePath, remoteDir string, body []byte) ([]string, error) {
	conn, client, err := dialSFTP(p.cfg)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	defer client.Close()

	fs := sftpFS{client: client}
	warnings := EnsurePath(fs, remoteDir)

	log.Printf("Uploading %s", remotePath)
	if err := putBytes(fs, remotePath, body); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// EnsurePath creates any missing segments of remotePath, best-effort. Each
// cumulative prefix is listed first; if listing fails the segment is
// created; if creation also fails a warning is recorded and the walk
// continues. Already-exists, permission-denied and parent-missing are not
// distinguished here; partial failures surface later as a transfer
// error. The aggregated warnings are the only output.
func EnsurePath(fs RemoteFS, remotePath string) []string {
	var warnings []string

	isAbsolute := strings.HasPrefix(remotePath, "/")
	current := ""
	for _, part := range strings.Split(remotePath, "/") {
		if part == "" {
			continue
		}
		switch {
		case current == "" && isAbsolute:
			current = "/" + part
		case current != "":
			current = current + "/" + part
		default:
			current = part
		}

		if _, err := fs.ReadDir(current); err == nil {
			continue
		}
		if err := fs.Mkdir(current); err != nil {
			warnings = append(warnings, fmt.Sprintf("directory %s exists or cannot be created: %v", current, err))
			continue
		}
		log.Printf("Created remote directory: %s", current)
	}

	if _, err := fs.ReadDir(remotePath); err != nil {
		warnings = append(warnings, fmt.Sprintf("cannot verify directory %s: %v", remotePath, err))
	}
	return warnings
}

// putBytes creates the remote file and writes the payload through it.
func putBytes(fs RemoteFS, remotePath string, body []byte) error {
	f, err := fs.Create(remotePath)
	if err != nil {
		return fmt.Errorf("create remote file %s: %w", remotePath, err)
	}
	if _, err := f.Write(body); err != nil {
		f.Close()
		return fmt.Errorf("transfer %s: %w", remotePath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("transfer %s: %w", remotePath, err)
	}
	return nil
}

// validate reports the first missing credential without touching the network.
func validate(cfg config.SFTPConfig) error {
	if cfg.Host == "" {
		return ErrMissingHost
	}
	if cfg.Username == "" {
		return ErrMissingUsername
	}
	if cfg.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

// dial opens an SSH connection and an SFTP session over it. Unknown host
// keys are accepted automatically, matching the trust-on-first-use policy of
// the deployment this store belongs to; there is no pinning.
func dial(cfg config.SFTPConfig) (*ssh.Client, *sftp.Client, error) {
	sshCfg := &ssh.ClientConfig{
		User:            cfg.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         config.ConnectTimeout,
	}

	log.Printf("Connecting to SFTP server: %s", cfg.Addr())
	conn, err := ssh.Dial("tcp", cfg.Addr(), sshCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", cfg.Addr(), err)
	}

	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open sftp session: %w", err)
	}
	return conn, client, nil
}

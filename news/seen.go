package news

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"courtside/types"

	"github.com/redis/go-redis/v9"
)

// SeenFilter is a Redis-backed Bloom filter suppressing articles already
// used by a previous successful run, so consecutive recaps don't quote the
// same coverage. It uses the RedisBloom BF.ADD/BF.EXISTS commands with a
// sliding TTL on the key.
type SeenFilter struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewSeenFilterFromEnv creates a SeenFilter when REDIS_ADDR is set; an unset
// address means the filter is unconfigured and callers get (nil, nil).
// Optional: REDIS_PASS, SEEN_KEY, SEEN_TTL_SECONDS.
func NewSeenFilterFromEnv() (*SeenFilter, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	key := os.Getenv("SEEN_KEY")
	if key == "" {
		key = "courtside:news:seen"
	}
	ttl := 7 * 24 * time.Hour
	if t := os.Getenv("SEEN_TTL_SECONDS"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &SeenFilter{client: client, key: key, ttl: ttl}, nil
}

// Close closes the underlying Redis client.
func (s *SeenFilter) Close() error {
	return s.client.Close()
}

// Filter drops articles recorded by a previous run. Lookup errors are
// treated as not-seen so a degraded Redis never blocks the pipeline. A nil
// filter passes everything through.
func (s *SeenFilter) Filter(articles []types.NewsArticle) []types.NewsArticle {
	if s == nil {
		return articles
	}

	out := make([]types.NewsArticle, 0, len(articles))
	for _, a := range articles {
		seen, err := s.exists(hashArticle(a))
		if err != nil || !seen {
			out = append(out, a)
		}
	}
	return out
}

// Record marks the articles as used. Called after a successful publish only.
func (s *SeenFilter) Record(articles []types.NewsArticle) error {
	if s == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, a := range articles {
		if err := s.client.Do(ctx, "BF.ADD", s.key, hashArticle(a)).Err(); err != nil {
			return err
		}
	}
	// Sliding TTL: the filter stays alive for ttl after the latest insert.
	return s.client.Expire(ctx, s.key, s.ttl).Err()
}

func (s *SeenFilter) exists(hash string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := s.client.Do(ctx, "BF.EXISTS", s.key, hash).Result()
	if err != nil {
		return false, err
	}
	switch v := res.(type) {
	case int64:
		return v == 1, nil
	case string:
		return v == "1", nil
	default:
		return false, fmt.Errorf("unexpected BF.EXISTS response type %T: %v", res, res)
	}
}

// hashArticle keys an article by its normalized title and URL.
func hashArticle(a types.NewsArticle) string {
	combined := strings.TrimSpace(a.URL) + "|" + normalizeTitle(a.Title)
	h := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(h[:])
}

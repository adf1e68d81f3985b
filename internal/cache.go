package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TranscriptCache memoizes resolved transcripts on disk, keyed by video
// ID. Entries older than the TTL are treated as misses; each request
// re-resolves at most once per TTL window.
type TranscriptCache struct {
	dir     string
	ttl     time.Duration
	verbose bool
}

// NewTranscriptCache creates a cache rooted at dir. A zero TTL means
// entries never expire.
func NewTranscriptCache(dir string, ttl time.Duration, verbose bool) *TranscriptCache {
	return &TranscriptCache{dir: dir, ttl: ttl, verbose: verbose}
}

func (c *TranscriptCache) path(videoID string) string {
	return filepath.Join(c.dir, videoID+".txt")
}

// Get returns the cached transcript for a video, if present and fresh.
func (c *TranscriptCache) Get(videoID string) (string, bool) {
	path := c.path(videoID)
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		if c.verbose {
			fmt.Printf("Cached transcript for %s is stale, re-fetching\n", videoID)
		}
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Put stores a transcript for a video, creating the cache directory if
// needed.
func (c *TranscriptCache) Put(videoID, transcript string) error {
	if err := EnsureDirs(c.dir); err != nil {
		return fmt.Errorf("creating transcripts directory: %w", err)
	}
	if err := os.WriteFile(c.path(videoID), []byte(transcript), 0644); err != nil {
		return fmt.Errorf("saving transcript: %w", err)
	}
	return nil
}

package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptCacheRoundtrip(t *testing.T) {
	cache := NewTranscriptCache(t.TempDir(), time.Hour, false)

	_, ok := cache.Get("dQw4w9WgXcQ")
	assert.False(t, ok, "empty cache should miss")

	require.NoError(t, cache.Put("dQw4w9WgXcQ", "cached transcript text"))

	got, ok := cache.Get("dQw4w9WgXcQ")
	require.True(t, ok)
	assert.Equal(t, "cached transcript text", got)
}

func TestTranscriptCacheExpiry(t *testing.T) {
	dir := t.TempDir()
	cache := NewTranscriptCache(dir, time.Hour, false)

	require.NoError(t, cache.Put("dQw4w9WgXcQ", "old transcript"))

	// Age the entry past the TTL
	stale := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "dQw4w9WgXcQ.txt"), stale, stale))

	_, ok := cache.Get("dQw4w9WgXcQ")
	assert.False(t, ok, "stale entry should miss")
}

func TestTranscriptCacheZeroTTLNeverExpires(t *testing.T) {
	dir := t.TempDir()
	cache := NewTranscriptCache(dir, 0, false)

	require.NoError(t, cache.Put("dQw4w9WgXcQ", "transcript"))

	stale := time.Now().Add(-24 * 365 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "dQw4w9WgXcQ.txt"), stale, stale))

	got, ok := cache.Get("dQw4w9WgXcQ")
	require.True(t, ok)
	assert.Equal(t, "transcript", got)
}

func TestTranscriptCacheCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "transcripts")
	cache := NewTranscriptCache(dir, time.Hour, false)

	require.NoError(t, cache.Put("dQw4w9WgXcQ", "text"))
	assert.True(t, FileExists(filepath.Join(dir, "dQw4w9WgXcQ.txt")))
}

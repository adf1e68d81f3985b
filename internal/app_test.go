package internal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTranscripts fails after serving its first resolve, so tests can
// tell cache hits from fresh fetches.
type countingTranscripts struct {
	text  string
	calls int
}

func (c *countingTranscripts) Resolve(ctx context.Context, videoID string) (string, error) {
	c.calls++
	if c.calls > 1 {
		return "", errors.New("resolver called again, cache miss")
	}
	return c.text, nil
}

func newTestApp(t *testing.T, transcripts TranscriptService, notes NotesGenerator) *App {
	t.Helper()
	config := &Config{
		TranscriptsDir: t.TempDir(),
		CacheTTL:       time.Hour,
		Quiet:          true,
	}
	return NewApp(config, WithTranscripts(transcripts), WithNotes(notes))
}

func TestGenerateNotes(t *testing.T) {
	app := newTestApp(t,
		stubTranscripts{text: "transcript text"},
		stubNotes{notes: "- a note"},
	)

	result, err := app.GenerateNotes(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", result.VideoID)
	assert.Equal(t, ThumbnailURL("dQw4w9WgXcQ"), result.Thumbnail)
	assert.Equal(t, "- a note", result.Notes)
}

func TestGenerateNotesAcceptsBareID(t *testing.T) {
	app := newTestApp(t,
		stubTranscripts{text: "transcript text"},
		stubNotes{notes: "- a note"},
	)

	result, err := app.GenerateNotes(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", result.VideoID)
}

func TestGenerateNotesInvalidInput(t *testing.T) {
	app := newTestApp(t, stubTranscripts{}, stubNotes{})

	_, err := app.GenerateNotes(context.Background(), "definitely not a video")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.Equal(t, FailureInvalidInput, Classify(err))
}

func TestGenerateNotesPropagatesTranscriptError(t *testing.T) {
	app := newTestApp(t, stubTranscripts{err: ErrNoTranscript}, stubNotes{})

	_, err := app.GenerateNotes(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrNoTranscript)
}

func TestTranscriptUsesCache(t *testing.T) {
	resolver := &countingTranscripts{text: "resolved once"}
	app := newTestApp(t, resolver, stubNotes{})

	first, err := app.Transcript(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "resolved once", first)

	// Second call must be served from the cache; the resolver would fail
	second, err := app.Transcript(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "resolved once", second)
	assert.Equal(t, 1, resolver.calls)
}

func TestTranscriptNoCacheBypassesCache(t *testing.T) {
	resolver := &countingTranscripts{text: "resolved once"}
	config := &Config{
		TranscriptsDir: t.TempDir(),
		CacheTTL:       time.Hour,
		NoCache:        true,
		Quiet:          true,
	}
	app := NewApp(config, WithTranscripts(resolver), WithNotes(stubNotes{}))

	_, err := app.Transcript(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)

	_, err = app.Transcript(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err, "with caching disabled the resolver runs every time")
}

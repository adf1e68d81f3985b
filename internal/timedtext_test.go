package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTimedTextClient(srv *httptest.Server) *TimedTextClient {
	client := NewTimedTextClient(srv.Client(), false)
	client.playerEndpoint = srv.URL
	return client
}

func TestListTracks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"playabilityStatus": {"status": "OK"},
			"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
				{"baseUrl": "https://example.com/tt?lang=en", "name": {"simpleText": "English"}, "languageCode": "en", "isTranslatable": true},
				{"baseUrl": "https://example.com/tt?lang=en&kind=asr", "name": {"runs": [{"text": "English"}, {"text": " (auto-generated)"}]}, "languageCode": "en", "kind": "asr", "isTranslatable": true}
			]}}
		}`))
	}))
	defer srv.Close()

	tracks, err := newTestTimedTextClient(srv).ListTracks(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	assert.Equal(t, "en", tracks[0].LanguageCode)
	assert.Equal(t, "English", tracks[0].Name)
	assert.False(t, tracks[0].AutoGenerated())
	assert.True(t, tracks[0].Translatable)

	assert.Equal(t, "English (auto-generated)", tracks[1].Name)
	assert.True(t, tracks[1].AutoGenerated())
}

func TestListTracksNoCaptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"playabilityStatus": {"status": "OK"}}`))
	}))
	defer srv.Close()

	_, err := newTestTimedTextClient(srv).ListTracks(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrTranscriptsDisabled)
}

func TestListTracksUnplayableVideo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"playabilityStatus": {"status": "ERROR", "reason": "This video is private"}}`))
	}))
	defer srv.Close()

	_, err := newTestTimedTextClient(srv).ListTracks(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVideoUnavailable)
	assert.Contains(t, err.Error(), "This video is private")
}

func TestListTracksRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestTimedTextClient(srv).ListTracks(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestFetchTrack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="2.5">Hello &amp;amp; welcome</text>
  <text start="2.5" dur="1.0">  </text>
  <text start="3.5" dur="2.0">to the &lt;b&gt;show&lt;/b&gt;</text>
</transcript>`))
	}))
	defer srv.Close()

	client := NewTimedTextClient(srv.Client(), false)
	fragments, err := client.FetchTrack(context.Background(), CaptionTrack{BaseURL: srv.URL})
	require.NoError(t, err)
	require.Len(t, fragments, 2)

	// Entities unescaped, markup stripped, blanks dropped
	assert.Equal(t, "Hello & welcome", fragments[0].Text)
	assert.Equal(t, 0.0, fragments[0].Start)
	assert.Equal(t, 2.5, fragments[0].Duration)
	assert.Equal(t, "to the show", fragments[1].Text)
}

func TestFetchTrackNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewTimedTextClient(srv.Client(), false)
	_, err := client.FetchTrack(context.Background(), CaptionTrack{BaseURL: srv.URL})
	assert.ErrorIs(t, err, ErrNoTranscript)
}

func TestTranslateTrack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en", r.URL.Query().Get("tlang"))
		assert.Equal(t, "de", r.URL.Query().Get("lang"))
		_, _ = w.Write([]byte(`<transcript><text start="0" dur="1">translated</text></transcript>`))
	}))
	defer srv.Close()

	client := NewTimedTextClient(srv.Client(), false)
	track := CaptionTrack{BaseURL: srv.URL + "?lang=de", LanguageCode: "de", Translatable: true}

	fragments, err := client.TranslateTrack(context.Background(), track, "en")
	require.NoError(t, err)
	require.Len(t, fragments, 1)
	assert.Equal(t, "translated", fragments[0].Text)
}

func TestTranslateTrackNotTranslatable(t *testing.T) {
	client := NewTimedTextClient(nil, false)
	track := CaptionTrack{LanguageCode: "de", Translatable: false}

	_, err := client.TranslateTrack(context.Background(), track, "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not translatable")
}

func TestCleanCaptionText(t *testing.T) {
	assert.Equal(t, "it's fine", cleanCaptionText("it&#39;s fine"))
	assert.Equal(t, "bold text", cleanCaptionText("<b>bold</b> text"))
	assert.Equal(t, "", cleanCaptionText("   "))
}

package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// CaptionFragment is a single timestamped caption unit.
type CaptionFragment struct {
	Start    float64
	Duration float64
	Text     string
}

// CaptionTrack describes one available caption track for a video.
type CaptionTrack struct {
	VideoID      string
	LanguageCode string
	Name         string
	Kind         string // "asr" marks auto-generated tracks
	BaseURL      string
	Translatable bool
}

// AutoGenerated reports whether the track was machine-transcribed.
func (t CaptionTrack) AutoGenerated() bool {
	return t.Kind == "asr"
}

// CaptionClient is the port to the caption-retrieval service. Exactly one
// implementation is selected when the resolver is constructed; tests plug
// in fakes.
type CaptionClient interface {
	// ListTracks returns every caption track available for a video.
	// Errors are pre-classified: ErrTranscriptsDisabled, ErrVideoUnavailable,
	// ErrRateLimited or an unexpected wrapped error.
	ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error)

	// FetchTrack downloads a track in its original language.
	FetchTrack(ctx context.Context, track CaptionTrack) ([]CaptionFragment, error)

	// TranslateTrack downloads a track machine-translated into language.
	TranslateTrack(ctx context.Context, track CaptionTrack, language string) ([]CaptionFragment, error)
}

// DefaultLanguages is the preferred caption language order: English
// primary, then regional English variants.
var DefaultLanguages = []string{"en", "en-US", "en-GB"}

// TranscriptResolver turns a video ID into plain transcript text by
// trying an ordered list of strategies, each at most once per request.
type TranscriptResolver struct {
	client    CaptionClient
	languages []string
	verbose   bool
}

// NewTranscriptResolver creates a resolver over the given caption client.
// An empty language list falls back to DefaultLanguages.
func NewTranscriptResolver(client CaptionClient, languages []string, verbose bool) *TranscriptResolver {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &TranscriptResolver{
		client:    client,
		languages: languages,
		verbose:   verbose,
	}
}

// Resolve fetches the transcript for a video. The waterfall stops at the
// first strategy that yields text:
//
//  1. a track directly matching the preferred languages
//  2. any track machine-translated to English
//  3. the first available track in its original language
//
// Hard failures (unavailable, rate-limited) abort immediately; soft ones
// fall through to the next strategy. No strategy is retried.
func (r *TranscriptResolver) Resolve(ctx context.Context, videoID string) (string, error) {
	tracks, err := r.client.ListTracks(ctx, videoID)
	if err != nil {
		return "", err
	}
	if len(tracks) == 0 {
		return "", ErrNoTranscript
	}

	strategies := []struct {
		name string
		run  func(context.Context, []CaptionTrack) (string, error)
	}{
		{"preferred-language", r.fetchPreferred},
		{"translate-to-english", r.fetchTranslated},
		{"first-available", r.fetchFirst},
	}

	var lastErr error
	for _, strategy := range strategies {
		text, err := strategy.run(ctx, tracks)
		if err == nil && text != "" {
			return text, nil
		}
		if isHardCaptionError(err) {
			return "", err
		}
		if err != nil {
			if r.verbose {
				fmt.Printf("Strategy %s failed for %s: %v\n", strategy.name, videoID, err)
			}
			lastErr = err
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("%w: %v", ErrNoTranscript, lastErr)
	}
	return "", ErrNoTranscript
}

// fetchPreferred looks for a track directly matching the preferred
// languages, manual tracks before auto-generated ones.
func (r *TranscriptResolver) fetchPreferred(ctx context.Context, tracks []CaptionTrack) (string, error) {
	track, ok := findPreferredTrack(tracks, r.languages)
	if !ok {
		return "", ErrNoTranscript
	}
	fragments, err := r.client.FetchTrack(ctx, track)
	if err != nil {
		return "", err
	}
	return JoinFragments(fragments), nil
}

// fetchTranslated tries machine translation to English on every
// translatable track and keeps the first that succeeds.
func (r *TranscriptResolver) fetchTranslated(ctx context.Context, tracks []CaptionTrack) (string, error) {
	var lastErr error
	for _, track := range tracks {
		if !track.Translatable {
			continue
		}
		fragments, err := r.client.TranslateTrack(ctx, track, "en")
		if err != nil {
			if isHardCaptionError(err) {
				return "", err
			}
			lastErr = err
			continue
		}
		if text := JoinFragments(fragments); text != "" {
			return text, nil
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", ErrNoTranscript
}

// fetchFirst falls back to the original-language text of the first track.
func (r *TranscriptResolver) fetchFirst(ctx context.Context, tracks []CaptionTrack) (string, error) {
	fragments, err := r.client.FetchTrack(ctx, tracks[0])
	if err != nil {
		return "", err
	}
	return JoinFragments(fragments), nil
}

// findPreferredTrack returns the first track whose language matches the
// preference list, preferring manual over auto-generated tracks.
func findPreferredTrack(tracks []CaptionTrack, languages []string) (CaptionTrack, bool) {
	for _, lang := range languages {
		for _, track := range tracks {
			if !track.AutoGenerated() && strings.EqualFold(track.LanguageCode, lang) {
				return track, true
			}
		}
	}
	for _, lang := range languages {
		for _, track := range tracks {
			if strings.EqualFold(track.LanguageCode, lang) {
				return track, true
			}
		}
	}
	return CaptionTrack{}, false
}

// JoinFragments concatenates fragment texts in order with single-space
// separators, skipping empty fragments.
func JoinFragments(fragments []CaptionFragment) string {
	var sb strings.Builder
	for _, fragment := range fragments {
		text := strings.TrimSpace(fragment.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// isHardCaptionError reports whether an error must abort the waterfall
// instead of falling through to the next strategy.
func isHardCaptionError(err error) bool {
	return errors.Is(err, ErrVideoUnavailable) || errors.Is(err, ErrRateLimited)
}

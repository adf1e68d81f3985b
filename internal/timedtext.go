package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	defaultPlayerEndpoint = "https://www.youtube.com/youtubei/v1/player"
	innertubeClientName   = "ANDROID"
	innertubeClientVer    = "19.09.37"
	timedTextUserAgent    = "Mozilla/5.0 (Linux; Android 14) ytnotes/1.0"
)

var captionTagRe = regexp.MustCompile(`<[^>]+>`)

// TimedTextClient fetches captions through YouTube's innertube player
// endpoint and the timedtext XML format. It is the single production
// implementation of CaptionClient.
type TimedTextClient struct {
	httpClient     *http.Client
	playerEndpoint string
	verbose        bool
}

// NewTimedTextClient creates a caption client. A nil httpClient gets a
// default with a 20s timeout.
func NewTimedTextClient(httpClient *http.Client, verbose bool) *TimedTextClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &TimedTextClient{
		httpClient:     httpClient,
		playerEndpoint: defaultPlayerEndpoint,
		verbose:        verbose,
	}
}

// playerResponse is the subset of the innertube player payload we need.
type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions struct {
		Renderer struct {
			CaptionTracks []playerCaptionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type playerCaptionTrack struct {
	BaseURL string `json:"baseUrl"`
	Name    struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
	LanguageCode   string `json:"languageCode"`
	Kind           string `json:"kind"`
	IsTranslatable bool   `json:"isTranslatable"`
}

func (t playerCaptionTrack) displayName() string {
	if t.Name.SimpleText != "" {
		return t.Name.SimpleText
	}
	var sb strings.Builder
	for _, run := range t.Name.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// ListTracks queries the player endpoint for the caption track list.
func (c *TimedTextClient) ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	payload := map[string]any{
		"context": map[string]any{
			"client": map[string]any{
				"clientName":    innertubeClientName,
				"clientVersion": innertubeClientVer,
			},
		},
		"videoId": videoID,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding player request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.playerEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building player request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", timedTextUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting caption tracks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w (HTTP 429)", ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player endpoint returned HTTP %d", resp.StatusCode)
	}

	var player playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, fmt.Errorf("parsing player response: %w", err)
	}

	switch player.PlayabilityStatus.Status {
	case "", "OK":
		// playable, captions may or may not exist
	case "ERROR", "UNPLAYABLE", "LOGIN_REQUIRED":
		reason := player.PlayabilityStatus.Reason
		if reason == "" {
			reason = player.PlayabilityStatus.Status
		}
		return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, reason)
	}

	raw := player.Captions.Renderer.CaptionTracks
	if len(raw) == 0 {
		return nil, ErrTranscriptsDisabled
	}

	tracks := make([]CaptionTrack, 0, len(raw))
	for _, t := range raw {
		tracks = append(tracks, CaptionTrack{
			VideoID:      videoID,
			LanguageCode: t.LanguageCode,
			Name:         t.displayName(),
			Kind:         t.Kind,
			BaseURL:      t.BaseURL,
			Translatable: t.IsTranslatable,
		})
	}

	if c.verbose {
		fmt.Printf("Found %d caption track(s) for %s\n", len(tracks), videoID)
	}
	return tracks, nil
}

// FetchTrack downloads and parses a track in its original language.
func (c *TimedTextClient) FetchTrack(ctx context.Context, track CaptionTrack) ([]CaptionFragment, error) {
	return c.fetchTimedText(ctx, track.BaseURL)
}

// TranslateTrack downloads a track translated via the tlang parameter.
func (c *TimedTextClient) TranslateTrack(ctx context.Context, track CaptionTrack, language string) ([]CaptionFragment, error) {
	if !track.Translatable {
		return nil, fmt.Errorf("caption track %q is not translatable", track.LanguageCode)
	}
	u, err := url.Parse(track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing caption track URL: %w", err)
	}
	q := u.Query()
	q.Set("tlang", language)
	u.RawQuery = q.Encode()
	return c.fetchTimedText(ctx, u.String())
}

// timedTextDoc mirrors the timedtext XML: <transcript><text start dur>.
type timedTextDoc struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Body     string  `xml:",chardata"`
	} `xml:"text"`
}

func (c *TimedTextClient) fetchTimedText(ctx context.Context, rawURL string) ([]CaptionFragment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building timedtext request: %w", err)
	}
	req.Header.Set("User-Agent", timedTextUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching captions: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w (HTTP 429)", ErrRateLimited)
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNoTranscript
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("timedtext endpoint returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading captions: %w", err)
	}

	var doc timedTextDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing timedtext XML: %w", err)
	}

	fragments := make([]CaptionFragment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := cleanCaptionText(t.Body)
		if text == "" {
			continue
		}
		fragments = append(fragments, CaptionFragment{
			Start:    t.Start,
			Duration: t.Duration,
			Text:     text,
		})
	}
	return fragments, nil
}

// cleanCaptionText unescapes HTML entities and strips markup tags that
// show up in auto-generated tracks.
func cleanCaptionText(s string) string {
	s = html.UnescapeString(s)
	s = captionTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

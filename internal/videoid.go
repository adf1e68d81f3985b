package internal

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// videoIDLen is the fixed length of a YouTube video identifier.
const videoIDLen = 11

var (
	videoIDRe         = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
	videoIDFallbackRe = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)
)

// IsVideoID checks if a string looks like a valid YouTube video ID.
func IsVideoID(id string) bool {
	return videoIDRe.MatchString(id)
}

// ExtractVideoID pulls the 11-character video ID out of the common YouTube
// URL shapes:
//   - https://youtu.be/VIDEO_ID
//   - https://www.youtube.com/watch?v=VIDEO_ID
//   - https://www.youtube.com/shorts/VIDEO_ID
//   - https://www.youtube.com/embed/VIDEO_ID
//
// with extra query params like &t=5s tolerated. A regex scan over the raw
// input acts as a last resort. Returns ("", false) when nothing matches;
// malformed input never produces an error.
func ExtractVideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if u, err := url.Parse(raw); err == nil {
		host := strings.ToLower(u.Hostname())

		// youtu.be/<id>
		if host == "youtu.be" || host == "www.youtu.be" {
			segment, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
			if IsVideoID(segment) {
				return segment, true
			}
		}

		if strings.Contains(host, "youtube") {
			// /watch?v=<id>
			if u.Path == "/watch" {
				if v := u.Query().Get("v"); IsVideoID(v) {
					return v, true
				}
			}
			// /shorts/<id> and /embed/<id>
			for _, prefix := range []string{"/shorts/", "/embed/"} {
				if strings.HasPrefix(u.Path, prefix) {
					segment, _, _ := strings.Cut(strings.TrimPrefix(u.Path, prefix), "/")
					if IsVideoID(segment) {
						return segment, true
					}
				}
			}
		}
	}

	// Regex fallback over the raw input (last resort)
	if m := videoIDFallbackRe.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}

	return "", false
}

// ThumbnailURL returns the public thumbnail location for a video.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/0.jpg", videoID)
}

// WatchURL returns the canonical watch page URL for a video.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

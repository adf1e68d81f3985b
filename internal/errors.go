package internal

import (
	"errors"
	"fmt"
)

// Sentinel errors for every failure a request can end in. Nothing past
// these boundaries is allowed to panic or carry an unclassified error.
var (
	// ErrInvalidURL means no video ID could be extracted from the input.
	ErrInvalidURL = errors.New("invalid YouTube URL")

	// ErrTranscriptsDisabled means the uploader turned captions off.
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")

	// ErrNoTranscript means no caption track could be fetched at all.
	ErrNoTranscript = errors.New("no transcript found for this video")

	// ErrVideoUnavailable means the video is private, deleted or region-locked.
	ErrVideoUnavailable = errors.New("video is unavailable")

	// ErrRateLimited means YouTube is refusing caption requests for now.
	ErrRateLimited = errors.New("too many requests to the transcript service")

	// ErrEmptyTranscript means the generator was handed nothing to summarize.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrGenerationFailed means every configured model failed or returned
	// empty text.
	ErrGenerationFailed = errors.New("notes generation failed")
)

// FailureKind buckets errors for presentation: warnings let the user try
// another video, errors do not.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureInvalidInput
	FailureWarning
	FailureError
	FailureUnexpected
)

// String returns a human-readable representation of the failure kind
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureInvalidInput:
		return "invalid input"
	case FailureWarning:
		return "warning"
	case FailureError:
		return "error"
	default:
		return "unexpected"
	}
}

// Classify maps any error produced by the pipeline onto a FailureKind.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrInvalidURL):
		return FailureInvalidInput
	case errors.Is(err, ErrTranscriptsDisabled), errors.Is(err, ErrNoTranscript):
		return FailureWarning
	case errors.Is(err, ErrVideoUnavailable), errors.Is(err, ErrRateLimited),
		errors.Is(err, ErrEmptyTranscript), errors.Is(err, ErrGenerationFailed):
		return FailureError
	default:
		return FailureUnexpected
	}
}

// FormatFailure renders an error the way the UI surfaces expect it:
// warnings get a friendly hint, unexpected errors keep their message.
func FormatFailure(err error) string {
	switch Classify(err) {
	case FailureNone:
		return ""
	case FailureInvalidInput:
		return "Invalid YouTube URL. Please enter a valid video link."
	case FailureWarning:
		return "Transcript is not available for this video. Try a different one."
	case FailureError:
		return err.Error()
	default:
		return fmt.Sprintf("unexpected error: %v", err)
	}
}

package internal

import (
	"context"
	"fmt"
	"os"
)

// TranscriptService resolves a video ID into plain transcript text.
type TranscriptService interface {
	Resolve(ctx context.Context, videoID string) (string, error)
}

// App holds the application state and dependencies
type App struct {
	transcripts TranscriptService
	notes       NotesGenerator
	cache       *TranscriptCache
	config      *Config
	ui          UIManager
}

// NewApp initializes the application
func NewApp(config *Config, options ...AppOption) *App {
	captions := NewTimedTextClient(nil, config.Verbose)
	promptManager := NewPromptManager(config.ConfigDir, config.Prompt)

	app := &App{
		transcripts: NewTranscriptResolver(captions, DefaultLanguages, config.Verbose),
		notes:       NewGeminiGeneratorWithKey(config.GeminiAPIKey, promptManager, config.Models, config.SummaryTimeout, config.Verbose),
		cache:       NewTranscriptCache(config.TranscriptsDir, config.CacheTTL, config.Verbose),
		config:      config,
		ui:          NewUIManager(config.Verbose, config.Quiet),
	}

	// Apply any custom options
	for _, option := range options {
		option(app)
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithTranscripts sets a custom transcript service
func WithTranscripts(transcripts TranscriptService) AppOption {
	return func(a *App) {
		a.transcripts = transcripts
	}
}

// WithNotes sets a custom notes generator
func WithNotes(notes NotesGenerator) AppOption {
	return func(a *App) {
		a.notes = notes
	}
}

// WithCache sets a custom transcript cache
func WithCache(cache *TranscriptCache) AppOption {
	return func(a *App) {
		a.cache = cache
	}
}

// SetPromptManager rebuilds the notes generator with a new prompt manager
func (app *App) SetPromptManager(pm *PromptManager) {
	app.notes = NewGeminiGeneratorWithKey(app.config.GeminiAPIKey, pm, app.config.Models, app.config.SummaryTimeout, app.config.Verbose)
}

// Transcript gets the transcript for a video ID (cached or resolved)
func (app *App) Transcript(ctx context.Context, videoID string) (string, error) {
	return app.TranscriptWithStatus(ctx, videoID, false)
}

// TranscriptWithStatus gets a transcript with optional status spinner
func (app *App) TranscriptWithStatus(ctx context.Context, videoID string, showStatus bool) (string, error) {
	var spinner ProgressBar
	if showStatus {
		spinner = app.ui.NewSpinner("Checking for cached transcript...")
	}

	if !app.config.NoCache {
		if transcript, ok := app.cache.Get(videoID); ok {
			if spinner != nil {
				spinner.Describe("Found cached transcript")
				spinner.Finish()
			}
			app.ui.Verbose("Found cached transcript for %s\n", videoID)
			return transcript, nil
		}
	}

	if spinner != nil {
		spinner.Describe("Fetching YouTube captions...")
		spinner.Advance()
	}
	app.ui.Verbose("Fetching transcript for %s\n", videoID)

	transcript, err := app.transcripts.Resolve(ctx, videoID)
	if err != nil {
		if spinner != nil {
			spinner.Finish()
		}
		return "", err
	}

	if spinner != nil {
		spinner.Describe("Saving transcript...")
		spinner.Advance()
	}

	// Save transcript for future use
	if err := app.cache.Put(videoID, transcript); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if spinner != nil {
		spinner.Finish()
	}
	return transcript, nil
}

// NotesResult is the outcome of a successful notes request.
type NotesResult struct {
	VideoID   string `json:"video_id"`
	Thumbnail string `json:"thumbnail"`
	Notes     string `json:"notes"`
}

// GenerateNotes performs the complete workflow for a raw URL or ID:
// extract ID -> resolve transcript -> generate notes.
func (app *App) GenerateNotes(ctx context.Context, arg string) (*NotesResult, error) {
	return app.generateNotes(ctx, arg, false)
}

func (app *App) generateNotes(ctx context.Context, arg string, showStatus bool) (*NotesResult, error) {
	_, videoID := ParseArg(arg)
	if videoID == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, arg)
	}

	transcript, err := app.TranscriptWithStatus(ctx, videoID, showStatus)
	if err != nil {
		return nil, err
	}

	var spinner ProgressBar
	if showStatus {
		spinner = app.ui.NewSpinner("Generating notes...")
	}

	notes, err := app.notes.Notes(ctx, transcript)
	if spinner != nil {
		spinner.Finish()
	}
	if err != nil {
		return nil, err
	}

	return &NotesResult{
		VideoID:   videoID,
		Thumbnail: ThumbnailURL(videoID),
		Notes:     notes,
	}, nil
}

// SummarizeVideo runs the CLI workflow and prints rendered notes.
func (app *App) SummarizeVideo(ctx context.Context, arg string) error {
	// Show status unless explicitly quiet
	showStatus := !app.config.Quiet && !app.config.Verbose

	result, err := app.generateNotes(ctx, arg, showStatus)
	if err != nil {
		if Classify(err) == FailureWarning {
			app.ui.Println(FormatFailure(err))
			return nil
		}
		return err
	}

	rendered, err := RenderMarkdown(result.Notes)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	fmt.Println(rendered)
	return nil
}

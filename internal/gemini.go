package internal

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

// DefaultModels is the ordered model waterfall: a newer fast model
// first, then the legacy general model.
var DefaultModels = []string{"gemini-1.5-flash", "gemini-pro"}

// NotesGenerator turns transcript text into bullet-point notes.
type NotesGenerator interface {
	Notes(ctx context.Context, transcript string) (string, error)
}

// ContentCaller is the narrow slice of the Gemini SDK the generator
// needs, so tests can stub responses.
type ContentCaller interface {
	GenerateContent(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error)
}

// geminiCaller wraps the official Gemini Go SDK.
type geminiCaller struct {
	client *genai.Client
}

func (g *geminiCaller) GenerateContent(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error) {
	return g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
}

// GeminiGenerator implements NotesGenerator against the Gemini API,
// trying each configured model once and keeping the first non-empty
// response.
type GeminiGenerator struct {
	mu      sync.Mutex
	caller  ContentCaller
	prompts *PromptManager
	models  []string
	timeout time.Duration
	verbose bool
	apiKey  string
}

// NewGeminiGenerator creates a generator over an existing caller.
func NewGeminiGenerator(caller ContentCaller, prompts *PromptManager, models []string, timeout time.Duration, verbose bool) *GeminiGenerator {
	if len(models) == 0 {
		models = DefaultModels
	}
	return &GeminiGenerator{
		caller:  caller,
		prompts: prompts,
		models:  models,
		timeout: timeout,
		verbose: verbose,
	}
}

// NewGeminiGeneratorWithKey creates a generator with lazy client
// initialization, so transcript-only commands never need the key.
func NewGeminiGeneratorWithKey(apiKey string, prompts *PromptManager, models []string, timeout time.Duration, verbose bool) *GeminiGenerator {
	gen := NewGeminiGenerator(nil, prompts, models, timeout, verbose)
	gen.apiKey = apiKey
	return gen
}

// ensureCaller returns the Gemini caller, initializing the client on
// first use. The mutex makes lazy init safe for concurrent requests
// sharing one generator (the web server runs handlers in parallel).
func (g *GeminiGenerator) ensureCaller(ctx context.Context) (ContentCaller, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.caller != nil {
		return g.caller, nil
	}
	if err := ValidateGeminiAPIKey(g.apiKey); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	g.caller = &geminiCaller{client: client}
	return g.caller, nil
}

// Notes generates bullet-point notes for a transcript. Empty input
// short-circuits without calling the API. Each model is attempted once;
// there are no retries or backoff beyond moving to the next model.
func (g *GeminiGenerator) Notes(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	caller, err := g.ensureCaller(ctx)
	if err != nil {
		return "", err
	}

	prompt, err := g.prompts.CreatePrompt(transcript)
	if err != nil {
		return "", fmt.Errorf("creating prompt: %w", err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var lastErr error
	for _, model := range g.models {
		resp, err := caller.GenerateContent(ctx, model, prompt)
		if err != nil {
			if g.verbose {
				fmt.Printf("Model %s failed: %v\n", model, err)
			}
			lastErr = err
			continue
		}
		if text := collectResponseText(resp); strings.TrimSpace(text) != "" {
			return text, nil
		}
		lastErr = fmt.Errorf("model %s returned empty text", model)
	}

	return "", fmt.Errorf("%w (tried %s): %v", ErrGenerationFailed, strings.Join(g.models, ", "), lastErr)
}

// collectResponseText extracts generated text from a response. The
// direct accessor covers the common single-candidate shape; the
// candidate walk picks up multi-candidate responses, joining part texts
// with newlines.
func collectResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	if text := resp.Text(); text != "" {
		return text
	}

	var parts []string
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				parts = append(parts, part.Text)
			}
		}
	}
	return strings.Join(parts, "\n")
}

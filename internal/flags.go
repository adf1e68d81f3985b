package internal

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// AddTranscriptFlags adds flags related to transcript retrieval
func AddTranscriptFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-cache", false, "Bypass the on-disk transcript cache")
}

// AddGeminiFlags adds flags related to the Gemini API
func AddGeminiFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "Gemini model to try first for notes")
	cmd.Flags().StringP("prompt", "p", "", "Custom prompt (string or file path)")
}

// HandlePromptFlag processes the --prompt flag to set custom prompt
func HandlePromptFlag(cmd *cobra.Command, app *App) error {
	promptFlag := cmd.Flags().Lookup("prompt")
	if promptFlag == nil || !promptFlag.Changed {
		return nil
	}

	prompt, err := cmd.Flags().GetString("prompt")
	if err != nil {
		return fmt.Errorf("failed to get prompt flag: %w", err)
	}

	if prompt == "" {
		return nil
	}

	app.SetPromptManager(NewPromptManager(app.config.ConfigDir, prompt))

	if IsLikelyFilePath(prompt) && FileExists(prompt) {
		app.ui.Verbose("Using custom prompt file: %s\n", prompt)
	} else {
		app.ui.Verbose("Using custom prompt string\n")
	}

	return nil
}

// HandleOutputFlags processes the --verbose and --quiet flags
func HandleOutputFlags(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if verbose {
		config.Verbose = true
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if quiet {
		config.Quiet = true
	}
	return nil
}

// HandleTranscriptFlags processes transcript-related flags
func HandleTranscriptFlags(cmd *cobra.Command, config *Config) {
	if flag := cmd.Flags().Lookup("no-cache"); flag != nil && flag.Changed {
		noCache, _ := cmd.Flags().GetBool("no-cache")
		config.NoCache = noCache
	}
}

// ValidateGeminiRequirements validates the Gemini API key and applies the
// model flag from command flags and config
func ValidateGeminiRequirements(cmd *cobra.Command, config *Config) error {
	if err := ValidateGeminiAPIKey(config.GeminiAPIKey); err != nil {
		return err
	}

	if len(config.Models) == 0 {
		config.Models = DefaultModels
	}

	// A model flag moves that model to the front of the waterfall
	modelFlag, _ := cmd.Flags().GetString("model")
	if modelFlag != "" && (len(config.Models) == 0 || config.Models[0] != modelFlag) {
		models := []string{modelFlag}
		for _, m := range config.Models {
			if m != modelFlag {
				models = append(models, m)
			}
		}
		config.Models = models
	}

	if slices.Contains(config.Models, "") {
		return fmt.Errorf("invalid empty model name in configuration")
	}

	return nil
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jmllr/ytnotes/internal"
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize [YouTube URL or ID]",
	Short: "Generate bullet-point notes from a YouTube video",
	Example: `  # Generate notes from a YouTube video
  ytnotes summarize "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  ytnotes summarize dQw4w9WgXcQ

  # Try a specific Gemini model first
  ytnotes summarize dQw4w9WgXcQ --model gemini-1.5-flash

  # Use custom prompt
  ytnotes summarize dQw4w9WgXcQ --prompt "tldr: {{.Transcript}}"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateGeminiRequirements(cmd, config); err != nil {
			return err
		}
		internal.HandleTranscriptFlags(cmd, config)

		app := internal.NewApp(config)

		if err := internal.HandlePromptFlag(cmd, app); err != nil {
			return err
		}

		return app.SummarizeVideo(cmd.Context(), args[0])
	},
}

func init() {
	internal.AddTranscriptFlags(summarizeCmd)
	internal.AddGeminiFlags(summarizeCmd)
	rootCmd.AddCommand(summarizeCmd)
}

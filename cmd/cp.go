package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/jmllr/ytnotes/internal"
)

// cpCmd copies notes (or the transcript) to the system clipboard instead
// of printing to stdout.
var cpCmd = &cobra.Command{
	Use:   "cp [YouTube URL or ID]",
	Short: "Copy notes or transcript from a YouTube video to the clipboard",
	Example: `  # Copy generated notes
  ytnotes cp "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  ytnotes cp dQw4w9WgXcQ

  # Copy the raw transcript instead
  ytnotes cp dQw4w9WgXcQ --transcript`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		internal.HandleTranscriptFlags(cmd, config)

		transcriptOnly, _ := cmd.Flags().GetBool("transcript")

		if transcriptOnly {
			app := internal.NewApp(config)
			transcript, err := fetchTranscript(cmd, app, args[0])
			if err != nil {
				return err
			}
			if err := clipboard.WriteAll(transcript); err != nil {
				return fmt.Errorf("copying transcript to clipboard: %w", err)
			}
			if !config.Quiet {
				fmt.Println("Transcript copied to clipboard")
			}
			return nil
		}

		if err := internal.ValidateGeminiRequirements(cmd, config); err != nil {
			return err
		}

		app := internal.NewApp(config)
		if err := internal.HandlePromptFlag(cmd, app); err != nil {
			return err
		}

		result, err := app.GenerateNotes(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(result.Notes); err != nil {
			return fmt.Errorf("copying notes to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Println("Notes copied to clipboard")
		}

		return nil
	},
}

func init() {
	internal.AddTranscriptFlags(cpCmd)
	internal.AddGeminiFlags(cpCmd)
	cpCmd.Flags().Bool("transcript", false, "Copy the raw transcript instead of notes")
	rootCmd.AddCommand(cpCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmllr/ytnotes/internal"
)

// transcribeCmd represents the transcribe command
var transcribeCmd = &cobra.Command{
	Use:   "transcribe [YouTube URL or ID]",
	Short: "Get the transcript of a YouTube video (cached or fetched)",
	Example: `  # Print the transcript
  ytnotes transcribe "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  ytnotes transcribe dQw4w9WgXcQ

  # Save transcript to file
  ytnotes transcribe dQw4w9WgXcQ -o transcript.txt

  # Skip the on-disk cache
  ytnotes transcribe dQw4w9WgXcQ --no-cache`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		internal.HandleTranscriptFlags(cmd, config)
		app := internal.NewApp(config)

		transcript, err := fetchTranscript(cmd, app, args[0])
		if err != nil {
			return err
		}

		// Handle output flag
		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, []byte(transcript), 0644)
		}

		fmt.Println(transcript)
		return nil
	},
}

func init() {
	internal.AddTranscriptFlags(transcribeCmd)
	transcribeCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(transcribeCmd)
}

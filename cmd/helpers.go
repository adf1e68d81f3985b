package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmllr/ytnotes/internal"
)

// fetchTranscript retrieves a transcript for the given URL or ID.
func fetchTranscript(cmd *cobra.Command, app *internal.App, arg string) (string, error) {
	_, videoID := internal.ParseArg(arg)
	if videoID == "" {
		return "", fmt.Errorf("%w: %q", internal.ErrInvalidURL, arg)
	}

	return app.Transcript(cmd.Context(), videoID)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jmllr/ytnotes/internal"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the single-page web UI",
	Long: `Run an HTTP server with a single-page UI: paste a YouTube URL, get
bullet-point notes. Also exposes a small JSON API:

  GET  /api/preview?url=...   video ID and thumbnail for a URL
  POST /api/notes             {"url": "..."} -> notes or a classified failure
  GET  /healthz               health check`,
	Example: `  # Listen on the configured address (default :8080)
  ytnotes serve

  # Listen on a specific address
  ytnotes serve --addr :9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The web UI always summarizes, so the key is required up front
		if err := internal.ValidateGeminiRequirements(cmd, config); err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = config.ServerAddr
		}

		app := internal.NewApp(config)
		if err := internal.HandlePromptFlag(cmd, app); err != nil {
			return err
		}
		server := internal.NewServer(app)

		if !config.Quiet {
			cmd.Printf("Listening on %s\n", addr)
		}

		return server.Run(cmd.Context(), addr)
	},
}

func init() {
	internal.AddGeminiFlags(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rtzll/tldr/internal"
)

// serveCmd starts the web UI
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI",
	Long: `Start a small web UI with a form for an API key and a URL.

The API key field is optional when GROQ_API_KEY (or api_key in the config
file) is set; a key typed into the form takes precedence. Requests are
handled one at a time.`,
	Example: `  # Serve on the configured address (default 127.0.0.1:8501)
  tldr serve

  # Serve on another address
  tldr serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			config.ListenAddr, _ = cmd.Flags().GetString("addr")
		}

		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		server, err := internal.NewServer(app, logger)
		if err != nil {
			return err
		}
		return server.ListenAndServe(cmd.Context(), config.ListenAddr)
	},
}

func init() {
	internal.AddModelFlags(serveCmd)
	internal.AddFetchFlags(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from config, 127.0.0.1:8501)")
	rootCmd.AddCommand(serveCmd)
}

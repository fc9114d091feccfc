package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rtzll/tldr/internal"
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize [YouTube or website URL]",
	Short: "Generate a summary of a YouTube video or web page",
	Example: `  # Summarize a YouTube video
  tldr summarize "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Pass the API key explicitly
  tldr summarize https://go.dev/blog/go1.22 --api-key "$GROQ_API_KEY"

  # Verify TLS certificates when fetching the page
  tldr summarize https://go.dev/blog/go1.22 --verify-tls`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSummary(cmd, args[0])
	},
}

func init() {
	internal.AddModelFlags(summarizeCmd)
	internal.AddFetchFlags(summarizeCmd)
	rootCmd.AddCommand(summarizeCmd)
}

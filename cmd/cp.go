package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/rtzll/tldr/internal"
)

// cpCmd copies the summary to the system clipboard instead of printing to stdout.
var cpCmd = &cobra.Command{
	Use:   "cp [URL]",
	Short: "Copy the summary of a YouTube video or web page to the clipboard",
	Example: `  # Copy the summary of a video
  tldr cp "https://www.youtube.com/watch?v=tAP1eZYEuKA"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := summarize(cmd, args[0])
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(result.Summary); err != nil {
			return fmt.Errorf("copying summary to clipboard: %w", err)
		}

		internal.NewUIManager(config.Quiet).Println("Summary copied to clipboard")
		return nil
	},
}

func init() {
	internal.AddModelFlags(cpCmd)
	internal.AddFetchFlags(cpCmd)
	rootCmd.AddCommand(cpCmd)
}

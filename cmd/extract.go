package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtzll/tldr/internal"
)

// extractCmd prints the text that would be summarized
var extractCmd = &cobra.Command{
	Use:   "extract [YouTube or website URL]",
	Short: "Print the transcript or page text behind a URL",
	Example: `  # Print a YouTube transcript
  tldr extract "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Save the main text of a page to a file
  tldr extract https://go.dev/blog/go1.22 -o page.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		doc, err := app.Fetch(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", internal.Category(err), err)
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(doc.Text), 0644); err != nil {
				return fmt.Errorf("writing output file: %w", err)
			}
			internal.NewUIManager(config.Quiet).Printf("Saved %d characters to %s\n", len(doc.Text), outputFile)
			return nil
		}

		fmt.Println(doc.Text)
		return nil
	},
}

func init() {
	internal.AddFetchFlags(extractCmd)
	extractCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(extractCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtzll/tldr/internal"
)

// newApp applies command flags to the config and builds the application
func newApp(cmd *cobra.Command) (*internal.App, error) {
	if err := internal.ApplyCommandFlags(cmd, config); err != nil {
		return nil, err
	}

	app := internal.NewApp(config, logger)
	if err := internal.HandlePromptFlag(cmd, app); err != nil {
		return nil, err
	}
	return app, nil
}

// summarize runs the full flow for rawURL behind a spinner
func summarize(cmd *cobra.Command, rawURL string) (*internal.Result, error) {
	app, err := newApp(cmd)
	if err != nil {
		return nil, err
	}

	ui := internal.NewUIManager(config.Quiet)
	spinner := ui.NewSpinner("Summarizing...")
	result, err := app.Summarize(cmd.Context(), internal.Request{
		Credential: internal.CredentialFlag(cmd),
		URL:        rawURL,
	})
	spinner.Finish()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", internal.Category(err), err)
	}
	return result, nil
}

// printSummary summarizes rawURL and writes the rendered summary to stdout
func printSummary(cmd *cobra.Command, rawURL string) error {
	result, err := summarize(cmd, rawURL)
	if err != nil {
		return err
	}

	fmt.Println(internal.FormatForTerminal(result.Summary))
	return nil
}

package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddModelFlags adds flags related to the completion provider
func AddModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "Model to use for summaries")
	cmd.Flags().StringP("prompt", "p", "", "Custom prompt (string or file path)")
	cmd.Flags().String("api-key", "", "API key for the completion provider (overrides GROQ_API_KEY)")
	cmd.Flags().String("base-url", "", "OpenAI-compatible API base URL")
}

// AddFetchFlags adds flags related to page fetching
func AddFetchFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("verify-tls", false, "Verify TLS certificates when fetching web pages")
}

// HandlePromptFlag processes the --prompt flag to set custom prompt
func HandlePromptFlag(cmd *cobra.Command, app *App) error {
	promptFlag := cmd.Flags().Lookup("prompt")
	if promptFlag == nil || !promptFlag.Changed {
		return nil
	}

	prompt, err := cmd.Flags().GetString("prompt")
	if err != nil {
		return fmt.Errorf("failed to get prompt flag: %w", err)
	}
	if prompt == "" {
		return nil
	}

	app.SetPromptManager(NewPromptManager(app.config.ConfigDir, prompt))
	return nil
}

// HandleVerboseFlag processes the --verbose flag to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if cmd.Flags().Changed("verbose") {
		config.Verbose = verbose
	}
	return nil
}

// ApplyCommandFlags copies explicitly set model and fetch flags into config
func ApplyCommandFlags(cmd *cobra.Command, config *Config) error {
	flags := cmd.Flags()

	if flags.Lookup("model") != nil && flags.Changed("model") {
		model, err := flags.GetString("model")
		if err != nil {
			return fmt.Errorf("failed to get model flag: %w", err)
		}
		config.Model = model
	}

	if flags.Lookup("base-url") != nil && flags.Changed("base-url") {
		baseURL, err := flags.GetString("base-url")
		if err != nil {
			return fmt.Errorf("failed to get base-url flag: %w", err)
		}
		config.BaseURL = baseURL
	}

	if flags.Lookup("verify-tls") != nil && flags.Changed("verify-tls") {
		verify, err := flags.GetBool("verify-tls")
		if err != nil {
			return fmt.Errorf("failed to get verify-tls flag: %w", err)
		}
		config.InsecureSkipVerify = !verify
	}

	return nil
}

// CredentialFlag returns the --api-key value, if the command has one
func CredentialFlag(cmd *cobra.Command) string {
	if cmd.Flags().Lookup("api-key") == nil {
		return ""
	}
	key, _ := cmd.Flags().GetString("api-key")
	return key
}

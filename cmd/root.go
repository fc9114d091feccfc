package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rtzll/tldr/internal"
)

var (
	config *internal.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tldr [YouTube or website URL]",
	Short: "Summarize YouTube videos or web pages",
	Long: `tldr summarizes YouTube videos and web pages with a hosted language model.

YouTube links are summarized from the video's captions, any other URL from
the main text of the page. The summary is produced by an OpenAI-compatible
completion API (Groq by default, key read from GROQ_API_KEY).

Run "tldr serve" for the web UI.`,
	Example: `  # Summarize a YouTube video
  tldr "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Summarize a web page with a specific model
  tldr https://go.dev/blog/go1.22 --model llama-3.3-70b-versatile

  # Use a custom prompt
  tldr https://go.dev/blog/go1.22 --prompt "tldr in 3 bullets: {{.Text}}"

  # Start the web UI
  tldr serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSummary(cmd, args[0])
	},
}

// initConfig loads configuration once and builds the logger
func initConfig(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")

	var err error
	config, err = internal.LoadConfig(configFile)
	if err != nil {
		return err
	}
	if err := internal.HandleVerboseFlag(cmd, config); err != nil {
		return err
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		config.Quiet = true
	}

	if created, err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	} else if created && !config.Quiet {
		fmt.Fprintf(os.Stderr, "Created default configuration in %s\n", config.ConfigDir)
	}
	if _, err := internal.EnsureDefaultPrompt(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default prompt: %v\n", err)
	}

	logger = internal.NewLogger(config, os.Stderr)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal. Shutting down...")

		// cancelling lets the web server drain and in-flight provider calls abort
		cancel()

		if config == nil {
			return
		}

		cleanupDone := make(chan struct{})
		go func() {
			if err := internal.CleanupTempDir(config.CacheDir); err != nil {
				fmt.Fprintf(os.Stderr, "Error cleaning up temporary files: %v\n", err)
			}
			close(cleanupDone)
		}()

		select {
		case <-cleanupDone:
		case <-time.After(3 * time.Second):
			fmt.Fprintln(os.Stderr, "Warning: Cleanup timed out")
		}
	}()

	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

func init() {
	internal.AddModelFlags(rootCmd)
	internal.AddFetchFlags(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $XDG_CONFIG_HOME/tldr/config.toml)")
}

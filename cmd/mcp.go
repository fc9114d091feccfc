package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/rtzll/tldr/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server exposing tldr as tools",
	Long: `Run a Model Context Protocol (MCP) server that exposes tldr functionality as tools.

The MCP server provides two tools:
- summarize_url: Summarize a YouTube video or web page
- fetch_content: Return the transcript or page text behind a URL

Logs go to $XDG_CACHE_HOME/tldr/mcp.log because stdio carries the protocol.

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)`,
	Example: `  # Run MCP server with stdio transport (e.g. for Claude Desktop)
  tldr mcp

  # Run MCP server with HTTP transport on port 8080
  tldr mcp --transport=http --port=8080

  # Set up Claude Desktop integration
  tldr mcp setup-claude`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		logFile, err := internal.OpenMCPLog(config.CacheDir)
		if err != nil {
			return err
		}
		defer logFile.Close()
		logger = internal.NewLogger(config, logFile)

		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		logger.Info("starting MCP server", "transport", transport, "port", port)
		mcpServer := internal.NewMCPServer(app, version)
		return mcpServer.Start(cmd.Context(), transport, port)
	},
}

// setupClaudeCmd represents the setup-claude subcommand
var setupClaudeCmd = &cobra.Command{
	Use:   "setup-claude",
	Short: "Configure Claude Desktop to use the tldr MCP server",
	Long: `Automatically configure Claude Desktop to use tldr as an MCP server.

This command will:
- Detect Claude Desktop installation and config location
- Add the tldr MCP server configuration to claude_desktop_config.json
- Preserve existing MCP server configurations
- Pass the XDG directories through so the server finds config.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setupClaudeDesktop()
	},
}

// setupClaudeDesktop registers this binary as the "tldr" MCP server in Claude Desktop
func setupClaudeDesktop() error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("getting executable path: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("resolving executable path: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}
	configPath, err := internal.DesktopConfigPath(runtime.GOOS, homeDir, os.Getenv("APPDATA"))
	if err != nil {
		return fmt.Errorf("getting Claude Desktop config path: %w", err)
	}

	// the server reads its key from config.toml or the environment, never from here
	err = internal.RegisterDesktopServer(configPath, "tldr", internal.DesktopServer{
		Command: execPath,
		Args:    []string{"mcp"},
		Env: map[string]string{
			"XDG_CONFIG_HOME": xdg.ConfigHome,
			"XDG_CACHE_HOME":  xdg.CacheHome,
		},
	})
	if err != nil {
		return err
	}

	fmt.Println("Successfully configured Claude Desktop MCP server")
	fmt.Println("Restart Claude Desktop to use the tldr MCP server")
	return nil
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol (stdio or http)")
	mcpCmd.Flags().Int("port", 8080, "Port for HTTP transport (only used with --transport=http)")
	mcpCmd.AddCommand(setupClaudeCmd)
	rootCmd.AddCommand(mcpCmd)
}

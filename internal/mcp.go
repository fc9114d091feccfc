package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the MCP server and application dependencies
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App, version string) *MCPServer {
	mcpServer := server.NewMCPServer(
		"tldr-server",
		version,
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}
	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("summarize_url",
		mcp.WithDescription("Summarize a YouTube video (from its captions) or a web page in about 300 words. Uses the API key configured on the server."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL (with a v= parameter) or any web page URL"),
			mcp.Required(),
		),
	), s.handleSummarize)

	s.mcpServer.AddTool(mcp.NewTool("fetch_content",
		mcp.WithDescription("Return the raw text behind a URL: the caption transcript for YouTube videos, the main article text for other pages. Does not call a language model."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or any web page URL"),
			mcp.Required(),
		),
	), s.handleFetch)
}

// handleSummarize implements the summarize_url tool
func (s *MCPServer) handleSummarize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	result, err := s.app.Summarize(ctx, Request{URL: url})
	if err != nil {
		return mcp.NewToolResultError(Describe(err)), nil
	}

	return mcp.NewToolResultText(result.Summary), nil
}

// handleFetch implements the fetch_content tool
func (s *MCPServer) handleFetch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	doc, err := s.app.Fetch(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(Describe(err)), nil
	}

	var buf strings.Builder
	if doc.Title != "" {
		fmt.Fprintf(&buf, "Title: %s\n\n", doc.Title)
	}
	buf.WriteString(doc.Text)

	return mcp.NewToolResultText(buf.String()), nil
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httpServer.Start(addr)
	}

	return server.ServeStdio(s.mcpServer)
}

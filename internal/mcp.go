package internal

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the MCP server and application dependencies
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App) *MCPServer {
	mcpServer := server.NewMCPServer(
		"ytnotes-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}

	// Register tools
	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	// get_transcript tool
	s.mcpServer.AddTool(mcp.NewTool("get_transcript",
		mcp.WithDescription("Get the plain-text transcript of a YouTube video from its captions. Tries English first, then machine translation to English, then the original language. Fails if the video has no captions at all."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or 11-character video ID"),
			mcp.Required(),
		),
	), s.handleGetTranscript)

	// summarize_video tool
	s.mcpServer.AddTool(mcp.NewTool("summarize_video",
		mcp.WithDescription("Summarize a YouTube video into bullet-point notes (~250 words) using its transcript. Requires a Gemini API key (GEMINI_API_KEY or GOOGLE_API_KEY)."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or 11-character video ID"),
			mcp.Required(),
		),
	), s.handleSummarize)
}

// handleGetTranscript implements the get_transcript tool
func (s *MCPServer) handleGetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	_, videoID := ParseArg(url)
	if videoID == "" {
		return mcp.NewToolResultError(FormatFailure(ErrInvalidURL)), nil
	}

	MCPLogInfo("fetching transcript for %s", videoID)

	transcript, err := s.app.Transcript(ctx, videoID)
	if err != nil {
		MCPLogError("transcript for %s failed: %v", videoID, err)
		return mcp.NewToolResultErrorFromErr("transcript error", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(transcript)},
	}, nil
}

// handleSummarize implements the summarize_video tool
func (s *MCPServer) handleSummarize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	MCPLogInfo("summarizing %s", url)

	result, err := s.app.GenerateNotes(ctx, url)
	if err != nil {
		MCPLogError("summarize %s failed: %v", url, err)
		return mcp.NewToolResultErrorFromErr("notes error", err), nil
	}

	text := fmt.Sprintf("Video: %s\nThumbnail: %s\n\n%s", WatchURL(result.VideoID), result.Thumbnail, result.Notes)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}, nil
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

	// Default to stdio transport
	return server.ServeStdio(s.mcpServer)
}

// GetServer returns the underlying MCP server for advanced configuration
func (s *MCPServer) GetServer() *server.MCPServer {
	return s.mcpServer
}

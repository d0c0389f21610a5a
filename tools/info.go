package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/focus-blog/focus/internal/buildinfo"
	"github.com/focus-blog/focus/internal/logging"
	"github.com/focus-blog/focus/internal/posts"
)

// InfoTool exposes build metadata and the size of the loaded index.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var InfoTool = mcp.NewTool(
	"info",
	mcp.WithDescription("Get details about the focus server build and how many posts it has indexed."),
)

// InfoResponse is the response to the info tool.
type InfoResponse struct {
	// Version is the version of the focus binary.
	Version string `json:"version"`

	Commit    string `json:"commit"`
	BuiltAt   string `json:"built_at"`
	PostCount int    `json:"post_count"`

	// Newest is the slug of the first post, empty when the index is empty.
	Newest string `json:"newest,omitempty"`
}

// RegisterInfoTool registers the info tool with the MCP server.
func RegisterInfoTool(s *server.MCPServer, finder *posts.Finder) {
	s.AddTool(InfoTool, withToolLogger("info", newInfoHandlerFunc(finder)))
}

func newInfoHandlerFunc(finder *posts.Finder) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.LoggerFromContext(ctx)

		resp := InfoResponse{
			Version:   buildinfo.Version,
			Commit:    buildinfo.Commit,
			BuiltAt:   buildinfo.Date,
			PostCount: finder.Len(),
		}
		if nav, ok := finder.ByPosition(0); ok {
			resp.Newest = nav.Post.Slug
		}

		return marshalResponse(logger, resp)
	}
}

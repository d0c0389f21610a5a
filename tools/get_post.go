package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/focus-blog/focus/internal/logging"
	"github.com/focus-blog/focus/internal/posts"
)

// GetPostTool exposes a tool for retrieving one post with its neighbors.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var GetPostTool = mcp.NewTool(
	"get_post",
	mcp.WithDescription(
		"Retrieves the full markdown content of a single blog post, together with "+
			"the newer (previous) and older (next) posts around it. "+
			"Address the post either by slug (e.g., 'hello-world') or by position, "+
			"where position 0 is the newest post.",
	),
	mcp.WithString(
		"slug",
		mcp.Description("Post slug to retrieve. Get valid slugs from list_posts."),
	),
	mcp.WithNumber(
		"position",
		mcp.Description("Zero-based position in newest-first order. Ignored when slug is set."),
	),
)

var errMissingAddress = errors.New("either slug or position must be provided")

// getPostResponse is the JSON structure returned by the tool.
type getPostResponse struct {
	posts.Navigation

	Content string `json:"content"`
	Total   int    `json:"total"`
}

// RegisterGetPostTool registers the get post tool with the MCP server.
func RegisterGetPostTool(s *server.MCPServer, finder *posts.Finder) {
	s.AddTool(GetPostTool, withToolLogger("get_post", newGetPostHandlerFunc(finder)))
}

// newGetPostHandlerFunc returns an MCP tool handler bound to a finder.
func newGetPostHandlerFunc(finder *posts.Finder) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.LoggerFromContext(ctx)

		nav, err := lookupPost(logger, finder, request)
		if err != nil {
			logger.WithError(err).Warn("Post lookup failed")
			return mcp.NewToolResultError(err.Error()), nil
		}

		logger.WithFields(logrus.Fields{
			"slug":         nav.Post.Slug,
			"position":     nav.Position,
			"content_size": len(nav.Post.Body),
		}).Info("Post retrieved successfully")

		return marshalResponse(logger, getPostResponse{
			Navigation: nav,
			Content:    nav.Post.Body,
			Total:      finder.Len(),
		})
	}
}

func lookupPost(logger *logrus.Entry, finder *posts.Finder, request mcp.CallToolRequest) (posts.Navigation, error) {
	if slug := request.GetString("slug", ""); slug != "" {
		logger.WithField("slug", slug).Debug("Looking up post by slug")

		nav, ok := finder.BySlug(slug)
		if !ok {
			return posts.Navigation{}, fmt.Errorf("%w: %s. Use list_posts to find valid slugs", posts.ErrNotFound, slug)
		}
		return nav, nil
	}

	position, err := request.RequireInt("position")
	if err != nil {
		return posts.Navigation{}, fmt.Errorf("%w: %w", errMissingAddress, err)
	}
	logger.WithField("position", position).Debug("Looking up post by position")

	nav, ok := finder.ByPosition(position)
	if !ok {
		return posts.Navigation{}, fmt.Errorf("%w: position %d is outside [0, %d)", posts.ErrNotFound, position, finder.Len())
	}
	return nav, nil
}

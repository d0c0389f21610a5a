package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/focus-blog/focus/internal/logging"
	"github.com/focus-blog/focus/internal/posts"
)

// ListPostsTool exposes a tool for listing posts grouped by publication year.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var ListPostsTool = mcp.NewTool(
	"list_posts",
	mcp.WithDescription(
		"Lists blog posts grouped by publication year, newest first. "+
			"Returns compact metadata (no content) to minimize context usage. "+
			"Use get_post with a slug or position to retrieve the full markdown of a post.",
	),
	mcp.WithNumber(
		"year",
		mcp.Description("Optional: only list posts published in this year (e.g., 2024)."),
	),
)

// listPostsResponse is the JSON structure returned by the tool.
type listPostsResponse struct {
	Years []posts.YearGroup `json:"years"`
	Count int               `json:"count"`
	Total int               `json:"total"`
	Year  int               `json:"year,omitempty"`
	Usage string            `json:"usage"`
}

// RegisterListPostsTool registers the list posts tool with the MCP server.
func RegisterListPostsTool(s *server.MCPServer, finder *posts.Finder) {
	s.AddTool(ListPostsTool, withToolLogger("list_posts", newListPostsHandlerFunc(finder)))
}

// newListPostsHandlerFunc returns an MCP tool handler bound to a finder.
func newListPostsHandlerFunc(finder *posts.Finder) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.LoggerFromContext(ctx)

		year := request.GetInt("year", 0)
		if year < 0 {
			return mcp.NewToolResultError(fmt.Sprintf("invalid year: %d", year)), nil
		}
		logger.WithField("year", year).Debug("Starting list_posts operation")

		groups := posts.BuildArchive(finder.All())
		if year != 0 {
			groups = posts.FilterArchive(groups, year)
			if groups == nil {
				logger.WithField("year", year).Warn("No posts for year")
				return mcp.NewToolResultError(
					fmt.Sprintf("no posts published in %d. Call list_posts without a year to see all years", year),
				), nil
			}
		}

		count := 0
		for _, group := range groups {
			count += group.Count
		}

		logger.WithField("post_count", count).Info("Posts listed successfully")

		return marshalResponse(logger, listPostsResponse{
			Years: groups,
			Count: count,
			Total: finder.Len(),
			Year:  year,
			Usage: "Use the 'slug' or 'position' field with the get_post tool to retrieve full content.",
		})
	}
}

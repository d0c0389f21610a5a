// Package tools provides MCP tool definitions for browsing the blog index.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/focus-blog/focus/internal/logging"
)

// withToolLogger wraps a tool handler to inject a logger into context and provide panic recovery.
// Every call gets a correlation ID and start/end log entries.
func withToolLogger(toolName string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		logger := logging.WithTool(logging.LoggerFromContext(ctx), toolName)
		ctx = logging.ContextWithLogger(ctx, logger)
		ctx = logging.ContextWithRequestID(ctx, uuid.New().String())
		startTime := time.Now()

		logging.RequestStart(ctx, toolName, logrus.Fields(request.GetArguments()))

		defer func() {
			if r := recover(); r != nil {
				logger.WithField("panic", r).Error("Panic in tool execution")
				result = nil
				err = fmt.Errorf("internal error in tool execution: %v", r)
			}

			callErr := err
			if callErr == nil && result != nil && result.IsError {
				callErr = errors.New(toolErrorText(result))
			}
			logging.RequestEnd(ctx, toolName, callErr == nil, time.Since(startTime), callErr)
		}()

		return handler(ctx, request)
	}
}

func toolErrorText(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			return text.Text
		}
	}
	return "tool returned an error result"
}

func marshalResponse(logger *logrus.Entry, v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.WithError(err).Error("Failed to marshal response")
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

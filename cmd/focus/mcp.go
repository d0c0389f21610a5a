package main

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/focus-blog/focus/internal/buildinfo"
	"github.com/focus-blog/focus/internal/logging"
	"github.com/focus-blog/focus/tools"
)

const instructions = `
Use list_posts to see the blog archive grouped by year, then get_post with a slug
or position to read a post. Position 0 is always the newest post.
`

//nolint:gochecknoglobals // Allows test override for stdio server.
var serveStdio = server.ServeStdio

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Expose the posts to MCP clients over stdio",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.serveMCP()
		},
	}
}

func (a *app) serveMCP() error {
	finder, err := a.finder()
	if err != nil {
		return err
	}

	s := server.NewMCPServer(
		"focus",
		buildinfo.Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	tools.RegisterInfoTool(s, finder)
	tools.RegisterListPostsTool(s, finder)
	tools.RegisterGetPostTool(s, finder)

	errWriter := a.logger.WriterLevel(logrus.ErrorLevel)
	defer func() { _ = errWriter.Close() }()

	a.logger.WithField("post_count", finder.Len()).Info("Starting MCP server on stdio")

	err = serveStdio(s,
		server.WithErrorLogger(log.New(errWriter, "", 0)),
		server.WithStdioContextFunc(func(ctx context.Context) context.Context {
			return logging.ContextWithLogger(ctx, a.logger)
		}),
	)
	if err != nil {
		return fmt.Errorf("MCP server exited with error: %w", err)
	}

	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/focus-blog/focus"
	"github.com/focus-blog/focus/internal/buildinfo"
	"github.com/focus-blog/focus/internal/render"
	"github.com/focus-blog/focus/internal/site"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().String("host", "127.0.0.1", "address to listen on")
	cmd.Flags().IntP("port", "p", 8080, "port to listen on")

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	a.logger.WithFields(logrus.Fields{
		"version":  buildinfo.Version,
		"commit":   buildinfo.Commit,
		"built_at": buildinfo.Date,
	}).Info("Starting focus server")

	// The index is built before listening so that content errors fail startup.
	finder, err := a.finder()
	if err != nil {
		return err
	}

	renderer, err := render.NewRenderer(render.NewMarkdownConverter(), a.cfg.SiteTitle)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	assets, err := fs.Sub(focus.Assets, "assets")
	if err != nil {
		return fmt.Errorf("failed to open bundled assets: %w", err)
	}

	handler := site.New(finder, renderer, render.NewAbout(renderer, focus.About), assets, a.logger).Handler()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.WithFields(logrus.Fields{
			"addr":       httpServer.Addr,
			"post_count": finder.Len(),
		}).Info("Listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server exited with error: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server exited with error: %w", err)
	}

	a.logger.Info("Server stopped")
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/focus-blog/focus"
	"github.com/focus-blog/focus/internal/buildinfo"
	"github.com/focus-blog/focus/internal/config"
	"github.com/focus-blog/focus/internal/logging"
	"github.com/focus-blog/focus/internal/posts"
)

// embeddedPostsDir is the directory inside focus.Posts holding the bundled posts.
const embeddedPostsDir = "posts"

// app carries the state shared by every subcommand once flags are parsed.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	configFile string

	cfg    config.Config
	logger *logrus.Entry
	index  *posts.Lazy
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "focus",
		Short: "A minimal blog that shows one post at a time",
		Long: `Focus reads dated markdown posts from a directory, orders them newest first
and serves them one at a time with htmx driven navigation.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default is ./focus.yaml)")
	flags.String("posts-dir", "posts", "directory containing the markdown posts")
	flags.String("site-title", "Focus", "title shown in the browser tab")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")

	root.AddCommand(
		newServeCommand(a),
		newNewCommand(a),
		newMCPCommand(a),
	)

	return root
}

func (a *app) initialize(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: a.stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logrus.NewEntry(logger).WithField("command", cmd.Name())
	a.index = posts.NewLazy(func() (*posts.Index, error) {
		return a.buildIndex(cmd.Context())
	})

	return nil
}

// buildIndex loads posts from the configured directory, or from the posts
// bundled into the binary when that directory does not exist.
func (a *app) buildIndex(ctx context.Context) (*posts.Index, error) {
	fsys, root, err := a.contentSource()
	if err != nil {
		return nil, err
	}

	return posts.Build(ctx, posts.NewLoader(fsys, root, a.logger), posts.WithLogger(a.logger))
}

func (a *app) contentSource() (fs.FS, string, error) {
	info, err := os.Stat(a.cfg.PostsDir)
	switch {
	case err == nil && info.IsDir():
		a.logger.WithField("posts_dir", a.cfg.PostsDir).Info("Loading posts from disk")
		return os.DirFS(a.cfg.PostsDir), ".", nil
	case err == nil:
		return nil, "", fmt.Errorf("posts path %s is not a directory", a.cfg.PostsDir)
	case errors.Is(err, fs.ErrNotExist):
		a.logger.WithField("posts_dir", a.cfg.PostsDir).Warn("Posts directory not found, using bundled posts")
		return focus.Posts, embeddedPostsDir, nil
	default:
		return nil, "", fmt.Errorf("failed to open posts directory: %w", err)
	}
}

// finder returns a navigation resolver over the shared index, building it on first use.
func (a *app) finder() (*posts.Finder, error) {
	index, err := a.index.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to build post index: %w", err)
	}
	return posts.NewFinder(index), nil
}

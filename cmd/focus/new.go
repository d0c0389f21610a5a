package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/focus-blog/focus/internal/scaffold"
)

func newNewCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "new <title>",
		Short:   "Create a dated post file from the post template",
		Example: `  focus new "Hello World"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := scaffold.Create(a.cfg.PostsDir, strings.Join(args, " "), time.Now())
			if err != nil {
				return err
			}

			a.logger.WithField("path", path).Info("Created post")
			_, _ = fmt.Fprintln(a.stdout, path)
			return nil
		},
	}
}

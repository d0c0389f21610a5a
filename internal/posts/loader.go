package posts

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// File is a candidate content file discovered by a Loader.
type File struct {
	Name    string
	Content string
}

// Loader enumerates markdown files from a content directory.
type Loader struct {
	fsys   fs.FS
	root   string
	logger *logrus.Entry
}

// NewLoader creates a loader reading root inside fsys.
func NewLoader(fsys fs.FS, root string, logger *logrus.Entry) *Loader {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Loader{fsys: fsys, root: root, logger: logger}
}

// Load returns every file with a ".md" extension directly under the root, in
// lexical order. Files that are not valid UTF-8 are skipped with a warning.
func (l *Loader) Load(ctx context.Context) ([]File, error) {
	var files []File

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		// Posts live directly in the root; nested directories are not walked
		if d.IsDir() {
			if p != l.root {
				return fs.SkipDir
			}
			return nil
		}

		// Only process markdown files
		if path.Ext(d.Name()) != ".md" {
			return nil
		}

		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}

		if !utf8.Valid(data) {
			l.logger.WithField("file", p).Warn("Skipping post that is not valid UTF-8")
			return nil
		}

		files = append(files, File{Name: d.Name(), Content: string(data)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", l.root, err)
	}

	return files, nil
}

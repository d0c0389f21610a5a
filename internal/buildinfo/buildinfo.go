// Package buildinfo exposes version metadata injected at link time.
package buildinfo

// Set with -ldflags "-X github.com/focus-blog/focus/internal/buildinfo.Version=...".
//
//nolint:gochecknoglobals // Overridden by the linker.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

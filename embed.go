// Package focus provides the content and static files bundled into the focus binary.
package focus

import (
	"embed"
)

// Posts contains the markdown posts shipped with the binary, under "posts/".
//
//go:embed posts/*.md
var Posts embed.FS

// About contains the markdown source of the about page.
//
//go:embed README.md
var About []byte

// Assets contains the stylesheet and scripts served under /assets.
//
//go:embed assets
var Assets embed.FS

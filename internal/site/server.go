// Package site serves the blog over HTTP.
package site

import (
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/focus-blog/focus/internal/logging"
	"github.com/focus-blog/focus/internal/posts"
	"github.com/focus-blog/focus/internal/render"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"

	msgNoMorePosts  = "No more posts"
	msgPostNotFound = "Post not found"
)

// Server routes blog requests to the post finder and renderer.
type Server struct {
	finder   *posts.Finder
	renderer *render.Renderer
	about    *render.About
	engine   *gin.Engine
}

// New creates a server. assets is served under /assets and may be nil.
func New(
	finder *posts.Finder,
	renderer *render.Renderer,
	about *render.About,
	assets fs.FS,
	logger *logrus.Entry,
) *Server {
	engine := gin.New()
	engine.Use(requestLogger(logger), recoverer())

	s := &Server{
		finder:   finder,
		renderer: renderer,
		about:    about,
		engine:   engine,
	}

	engine.GET("/", s.handleHome)
	engine.GET("/about", s.handleAbout)
	engine.GET("/posts/:index", s.handlePostByPosition)
	engine.GET("/post/:slug", s.handlePostBySlug)
	engine.GET("/health", s.handleHealth)
	if assets != nil {
		engine.StaticFS("/assets", filesOnly{http.FS(assets)})
	}

	return s
}

// Handler returns the HTTP handler for the site.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHome(c *gin.Context) {
	nav, ok := s.finder.ByPosition(0)
	if !ok {
		content, err := s.renderer.Empty()
		if err != nil {
			s.fail(c, err)
			return
		}
		s.writePage(c, content)
		return
	}

	s.writePost(c, nav, render.BySlug, true)
}

func (s *Server) handleAbout(c *gin.Context) {
	content, err := s.about.Fragment()
	if err != nil {
		s.fail(c, err)
		return
	}
	s.writePage(c, content)
}

func (s *Server) handlePostByPosition(c *gin.Context) {
	position, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.String(http.StatusNotFound, msgNoMorePosts)
		return
	}

	nav, ok := s.finder.ByPosition(position)
	if !ok {
		c.String(http.StatusNotFound, msgNoMorePosts)
		return
	}

	s.writePost(c, nav, render.ByPosition, !isFragmentRequest(c))
}

func (s *Server) handlePostBySlug(c *gin.Context) {
	nav, ok := s.finder.BySlug(c.Param("slug"))
	if !ok {
		c.String(http.StatusNotFound, msgPostNotFound)
		return
	}

	s.writePost(c, nav, render.BySlug, !isFragmentRequest(c))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (s *Server) writePost(c *gin.Context, nav posts.Navigation, mode render.Mode, fullPage bool) {
	content, err := s.renderer.Post(nav, mode)
	if err != nil {
		// content holds the error fragment
		logging.LoggerFromContext(c.Request.Context()).
			WithError(err).
			WithField("slug", nav.Post.Slug).
			Error("Failed to render post")
		if !fullPage {
			c.Header("HX-Retarget", "#post")
			c.Header("HX-Reswap", "outerHTML")
		}
		c.Data(http.StatusInternalServerError, contentTypeHTML, []byte(content))
		return
	}

	if fullPage {
		s.writePage(c, content)
		return
	}
	c.Data(http.StatusOK, contentTypeHTML, []byte(content))
}

func (s *Server) writePage(c *gin.Context, content template.HTML) {
	page, err := s.renderer.Page(content)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypeHTML, []byte(page))
}

func (s *Server) fail(c *gin.Context, err error) {
	logging.LoggerFromContext(c.Request.Context()).
		WithError(err).
		Error("Failed to render page")
	c.String(http.StatusInternalServerError, "Internal server error")
}

// filesOnly hides directories so /assets never produces a listing.
type filesOnly struct {
	files http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.files.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}

// isFragmentRequest reports whether htmx asked for a page region rather than
// a boosted full-page navigation.
func isFragmentRequest(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true" && c.GetHeader("HX-Boosted") != "true"
}

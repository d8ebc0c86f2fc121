// Package demoserver implements the backend REST contract in memory, so the
// dashboard can be explored without the real ingestion pipeline. Episodes
// move pending → processing → completed/failed on timers, mimicking the
// asynchronous transitions the client has to reconcile against.
package demoserver

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"poddash/types"
)

// Options configures the demo server.
type Options struct {
	// Addr is the listen address, e.g. ":5002".
	Addr string
	// SeedFeedURL, when set, fabricates episodes from a real RSS feed
	// instead of the built-in samples.
	SeedFeedURL string
	// MediaDir, when set, is served under /data/ for audio assets.
	MediaDir string
}

// Server holds the in-memory resource store.
type Server struct {
	mu       sync.Mutex
	episodes map[string]*types.Episode
	order    []string
	feeds    map[string]*types.Feed
	// processing start times drive the simulated pipeline
	processingSince map[string]time.Time
	pendingSince    map[string]time.Time
	failCounter     int

	feederLastRun time.Time
	feederNextRun time.Time

	opts Options
}

// New creates a seeded demo server.
func New(opts Options) *Server {
	s := &Server{
		episodes:        make(map[string]*types.Episode),
		feeds:           make(map[string]*types.Feed),
		processingSince: make(map[string]time.Time),
		pendingSince:    make(map[string]time.Time),
		feederLastRun:   time.Now().Add(-12 * time.Minute),
		feederNextRun:   time.Now().Add(18 * time.Minute),
		opts:            opts,
	}
	s.seed()
	return s
}

// Router constructs a Gin engine with registered routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/episodes", s.handleListEpisodes)
		api.POST("/episodes", s.handleSubmitEpisode)
		api.GET("/episodes/:id", s.handleGetEpisode)
		api.DELETE("/episodes/:id", s.handleDeleteEpisode)
		api.POST("/episodes/:id/summarize-again", s.handleSummarizeAgain)
		api.POST("/episodes/:id/retry", s.handleRetry)
		api.POST("/episodes/:id/reclean", s.handleReclean)
		api.POST("/episodes/:id/hide", s.handleHide)
		api.POST("/episodes/:id/restore", s.handleRestore)

		api.GET("/feeds", s.handleListFeeds)
		api.POST("/feeds", s.handleAddFeed)
		api.PUT("/feeds/:id", s.handleUpdateFeed)
		api.DELETE("/feeds/:id", s.handleDeleteFeed)

		api.GET("/feeder/status", s.handleFeederStatus)
		api.POST("/feeder/restart", s.handleFeederRestart)
	}

	if s.opts.MediaDir != "" {
		r.Static("/data", s.opts.MediaDir)
	}
	return r
}

// Run starts the pipeline simulator and serves until the context is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	go s.simulate(ctx)

	srv := &http.Server{Addr: s.opts.Addr, Handler: s.Router()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("demo server listening on %s", s.opts.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("demo server: %w", err)
	}
	return nil
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func (s *Server) episode(id string) (*types.Episode, bool) {
	ep, ok := s.episodes[id]
	return ep, ok
}

package demoserver

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"poddash/types"
)

type feedRequest struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	CustomPrompt string `json:"custom_prompt"`
}

func (s *Server) handleListFeeds(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	feeds := make([]types.Feed, 0, len(s.feeds))
	for _, f := range s.feeds {
		out := *f
		out.EpisodeCount = s.countBySourceLocked(f.Title)
		feeds = append(feeds, out)
	}
	sort.Slice(feeds, func(i, j int) bool { return feeds[i].Title < feeds[j].Title })

	c.JSON(http.StatusOK, types.FeedList{Feeds: feeds, Total: len(feeds)})
}

func (s *Server) handleAddFeed(c *gin.Context) {
	var req feedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		respondError(c, http.StatusBadRequest, "Feed URL is required")
		return
	}
	if req.Category != "" {
		if _, ok := types.ParseCategory(req.Category); !ok {
			respondError(c, http.StatusBadRequest, "unknown category "+strconv.Quote(req.Category))
			return
		}
	}

	title := req.Title
	if title == "" {
		title = fetchFeedTitle(c.Request.Context(), req.URL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	feed := &types.Feed{
		ID:                       uuid.NewString(),
		Title:                    title,
		URL:                      req.URL,
		Category:                 types.Category(req.Category),
		CustomPromptInstructions: req.CustomPrompt,
		Status:                   types.FeedActive,
		LastUpdated:              types.NewTimestamp(time.Now()),
	}
	s.feeds[feed.ID] = feed
	c.JSON(http.StatusCreated, *feed)
}

func (s *Server) handleUpdateFeed(c *gin.Context) {
	var req feedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid feed body")
		return
	}
	if req.Category != "" {
		if _, ok := types.ParseCategory(req.Category); !ok {
			respondError(c, http.StatusBadRequest, "unknown category "+strconv.Quote(req.Category))
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	feed, ok := s.feeds[c.Param("id")]
	if !ok {
		respondError(c, http.StatusNotFound, "feed not found")
		return
	}
	if req.URL != "" {
		feed.URL = req.URL
	}
	if req.Title != "" {
		feed.Title = req.Title
	}
	feed.Category = types.Category(req.Category)
	feed.CustomPromptInstructions = req.CustomPrompt
	feed.LastUpdated = types.NewTimestamp(time.Now())
	c.JSON(http.StatusOK, *feed)
}

func (s *Server) handleDeleteFeed(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.feeds[id]; !ok {
		respondError(c, http.StatusNotFound, "feed not found")
		return
	}
	delete(s.feeds, id)
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) handleFeederStatus(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := int(time.Until(s.feederNextRun).Minutes())
	if next < 0 {
		next = 0
	}
	c.JSON(http.StatusOK, types.FeederStatus{
		IsRunning:           true,
		LastRunStatus:       "success",
		LastRunTimeReadable: s.feederLastRun.Format("Jan 2, 2006 3:04 PM"),
		NextRunInMinutes:    next,
	})
}

func (s *Server) handleFeederRestart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.feederLastRun = time.Now()
	s.feederNextRun = time.Now().Add(30 * time.Minute)
	c.JSON(http.StatusOK, gin.H{"restarted": true})
}

// countBySourceLocked counts visible episodes attributed to a feed title.
func (s *Server) countBySourceLocked(title string) int {
	n := 0
	for _, ep := range s.episodes {
		if ep.FeedSource == title && !ep.Hidden {
			n++
		}
	}
	return n
}

// fetchFeedTitle pulls the feed's own title when the caller did not name it.
// Network failures fall back to the URL so the add still succeeds offline.
func fetchFeedTitle(ctx context.Context, feedURL string) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	parsed, err := gofeed.NewParser().ParseURLWithContext(feedURL, ctx)
	if err != nil || parsed.Title == "" {
		return feedURL
	}
	return parsed.Title
}

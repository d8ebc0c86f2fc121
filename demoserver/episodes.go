package demoserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"poddash/types"
)

func (s *Server) handleListEpisodes(c *gin.Context) {
	statusFilter := c.Query("status")
	categoryFilter := c.Query("category")
	hidden := c.Query("hidden") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 20
	}

	if statusFilter != "" {
		if _, ok := types.ParseStatus(statusFilter); !ok {
			respondError(c, http.StatusBadRequest, "unknown status "+strconv.Quote(statusFilter))
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var filtered []types.Episode
	completed, processing := 0, 0
	for _, id := range s.order {
		ep := *s.episodes[id]
		if ep.Hidden != hidden {
			continue
		}
		switch ep.Status {
		case types.StatusCompleted:
			completed++
		case types.StatusProcessing:
			processing++
		}
		if statusFilter != "" && string(ep.Status) != statusFilter {
			continue
		}
		if categoryFilter != "" && string(ep.PromptCategory) != categoryFilter {
			continue
		}
		filtered = append(filtered, ep)
	}

	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, types.EpisodeList{
		Episodes:        filtered[offset:end],
		Total:           total,
		CompletedCount:  completed,
		ProcessingCount: processing,
	})
}

func (s *Server) handleGetEpisode(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ep, ok := s.episode(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "episode not found")
		return
	}
	c.JSON(http.StatusOK, *ep)
}

func (s *Server) handleSubmitEpisode(c *gin.Context) {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		respondError(c, http.StatusBadRequest, "Episode URL is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	ep := &types.Episode{
		ID:          uuid.NewString(),
		Title:       "Submitted episode",
		URL:         req.URL,
		FeedSource:  "Manual submission",
		Status:      types.StatusPending,
		SubmittedAt: types.NewTimestamp(now),
		CreatedAt:   types.NewTimestamp(now),
	}
	s.episodes[ep.ID] = ep
	s.order = append([]string{ep.ID}, s.order...)
	s.pendingSince[ep.ID] = now

	c.JSON(http.StatusAccepted, gin.H{"id": ep.ID, "status": ep.Status})
}

func (s *Server) handleSummarizeAgain(c *gin.Context) {
	var req struct {
		Category string `json:"category"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.Category != "" {
		if _, ok := types.ParseCategory(req.Category); !ok {
			respondError(c, http.StatusBadRequest, "unknown category "+strconv.Quote(req.Category))
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ep, ok := s.episode(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "episode not found")
		return
	}
	if ep.Transcript == "" {
		respondError(c, http.StatusBadRequest, "Episode has no transcript to summarize")
		return
	}

	if req.Category != "" {
		ep.PromptCategory = types.Category(req.Category)
	}
	s.startProcessing(ep)
	c.JSON(http.StatusAccepted, gin.H{"status": ep.Status})
}

func (s *Server) handleRetry(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ep, ok := s.episode(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "episode not found")
		return
	}
	if ep.Status != types.StatusProcessing && ep.Status != types.StatusFailed {
		respondError(c, http.StatusBadRequest, "Only processing or failed episodes can be retried")
		return
	}
	ep.Summary = ""
	s.startProcessing(ep)
	c.JSON(http.StatusAccepted, gin.H{"status": ep.Status})
}

func (s *Server) handleReclean(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ep, ok := s.episode(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "episode not found")
		return
	}
	if ep.Status != types.StatusCompleted {
		respondError(c, http.StatusBadRequest, "Only completed episodes can be re-cleaned")
		return
	}
	s.startProcessing(ep)
	c.JSON(http.StatusAccepted, gin.H{"status": ep.Status})
}

func (s *Server) handleDeleteEpisode(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.episode(id); !ok {
		respondError(c, http.StatusNotFound, "episode not found")
		return
	}
	delete(s.episodes, id)
	delete(s.processingSince, id)
	delete(s.pendingSince, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) handleHide(c *gin.Context) {
	s.setHidden(c, true)
}

func (s *Server) handleRestore(c *gin.Context) {
	s.setHidden(c, false)
}

func (s *Server) setHidden(c *gin.Context, hidden bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ep, ok := s.episode(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "episode not found")
		return
	}
	ep.Hidden = hidden
	c.JSON(http.StatusOK, gin.H{"hidden": hidden})
}

// startProcessing flips an episode into the processing state and stamps the
// simulator clock. Callers hold the lock.
func (s *Server) startProcessing(ep *types.Episode) {
	ep.Status = types.StatusProcessing
	delete(s.pendingSince, ep.ID)
	s.processingSince[ep.ID] = time.Now()
}

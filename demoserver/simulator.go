package demoserver

import (
	"context"
	"time"

	"poddash/types"
)

const (
	pendingDelay    = 3 * time.Second
	processingDelay = 8 * time.Second
)

// simulate drives the fake pipeline: pending episodes start processing after
// a short delay, processing episodes finish a little later. Roughly one in
// four finishes as a failure so the retry paths stay exercisable.
func (s *Server) simulate(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.step(now)
		}
	}
}

func (s *Server) step(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, since := range s.pendingSince {
		ep, ok := s.episodes[id]
		if !ok || ep.Status != types.StatusPending {
			delete(s.pendingSince, id)
			continue
		}
		if now.Sub(since) >= pendingDelay {
			ep.Status = types.StatusProcessing
			delete(s.pendingSince, id)
			s.processingSince[id] = now
		}
	}

	for id, since := range s.processingSince {
		ep, ok := s.episodes[id]
		if !ok || ep.Status != types.StatusProcessing {
			delete(s.processingSince, id)
			continue
		}
		if now.Sub(since) < processingDelay {
			continue
		}
		delete(s.processingSince, id)
		s.failCounter++
		if s.failCounter%4 == 0 {
			ep.Status = types.StatusFailed
			ep.Summary = "Summarization failed: model request timed out"
			continue
		}
		ep.Status = types.StatusCompleted
		ep.Summary = sampleSummary
		if ep.Transcript == "" {
			ep.Transcript = sampleTranscript
		}
		ep.CompletedAt = types.NewTimestamp(now)
	}
}

package demoserver

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"poddash/types"
)

const sampleSummary = `## Key takeaways

- The hosts walk through the week's infrastructure incidents and what the
  postmortems actually changed.
- A long middle segment compares managed queues against self-hosted brokers
  for small teams.
- Listener questions close out the show, mostly about on-call rotations.

## Notable quotes

> "Every alert you ignore twice should either page someone or be deleted."
`

const sampleTranscript = `Welcome back to the show. This week we are digging into the incident
reports that landed in our inboxes, and there were plenty. Before we start,
a quick reminder that the mailbag is open, so send us your questions.

Let's start with the queue outage. The short version is that a retention
policy change quietly doubled disk usage, and nobody noticed until the
broker stopped accepting writes. The longer version is a lesson in why
capacity alerts need to fire on trends, not thresholds.`

// seed populates the store, either from a live RSS feed or from built-in
// samples, so the dashboard has something to show on first load.
func (s *Server) seed() {
	s.feeds = map[string]*types.Feed{}
	for _, f := range []types.Feed{
		{Title: "Infra Weekly", URL: "https://example.com/infra-weekly/rss", Category: "tech", Status: types.FeedActive},
		{Title: "Market Open", URL: "https://example.com/market-open/rss", Category: "business", Status: types.FeedActive},
		{Title: "Lab Notes", URL: "https://example.com/lab-notes/rss", Status: types.FeedError},
	} {
		feed := f
		feed.ID = uuid.NewString()
		feed.LastUpdated = types.NewTimestamp(time.Now().Add(-2 * time.Hour))
		s.feeds[feed.ID] = &feed
	}

	if s.opts.SeedFeedURL != "" && s.seedFromFeed(s.opts.SeedFeedURL) {
		return
	}
	s.seedSamples()
}

// seedFromFeed fabricates completed episodes from a real feed's items.
func (s *Server) seedFromFeed(feedURL string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	parsed, err := gofeed.NewParser().ParseURLWithContext(feedURL, ctx)
	if err != nil {
		log.Printf("seed feed %s: %v, falling back to samples", feedURL, err)
		return false
	}

	for i, item := range parsed.Items {
		if i >= 10 {
			break
		}
		ep := &types.Episode{
			ID:          uuid.NewString(),
			Title:       item.Title,
			URL:         item.Link,
			FeedTitle:   parsed.Title,
			Status:      types.StatusCompleted,
			Summary:     sampleSummary,
			Transcript:  sampleTranscript,
			SubmittedAt: types.NewTimestamp(time.Now().Add(-time.Duration(i+1) * time.Hour)),
			CompletedAt: types.NewTimestamp(time.Now().Add(-time.Duration(i) * time.Hour)),
			CreatedAt:   types.NewTimestamp(time.Now().Add(-time.Duration(i+1) * time.Hour)),
		}
		if item.PublishedParsed != nil {
			ep.CreatedAt = types.NewTimestamp(*item.PublishedParsed)
		}
		s.episodes[ep.ID] = ep
		s.order = append(s.order, ep.ID)
	}
	return len(s.order) > 0
}

func (s *Server) seedSamples() {
	now := time.Now()
	samples := []struct {
		title      string
		feed       string
		status     types.Status
		category   types.Category
		summary    string
		transcript string
		age        time.Duration
		duration   float64
		audio      string
	}{
		{
			title: "Postmortem Season", feed: "Infra Weekly",
			status: types.StatusCompleted, category: "tech",
			summary: sampleSummary, transcript: sampleTranscript,
			age: 3 * time.Hour, duration: 2215, audio: "postmortem-season.mp3",
		},
		{
			title: "Rates, Revisited", feed: "Market Open",
			status: types.StatusCompleted, category: "business",
			summary: sampleSummary, transcript: sampleTranscript,
			age: 26 * time.Hour, duration: 1480,
		},
		{
			// completed but never transcribed, so re-summarize is not offered
			title: "Archive Special: 2019 Highlights", feed: "Infra Weekly",
			status: types.StatusCompleted, category: "tech",
			summary: sampleSummary,
			age:     4 * 24 * time.Hour, duration: 3605,
		},
		{
			title: "Peer Review Under Pressure", feed: "Lab Notes",
			status: types.StatusProcessing,
			age:    10 * time.Minute,
		},
		{
			title: "Quarterly Earnings Roundup", feed: "Market Open",
			status: types.StatusPending, category: "business",
			age: 2 * time.Minute,
		},
		{
			title: "Mailbag: Burnout and Boundaries", feed: "Infra Weekly",
			status: types.StatusFailed,
			summary: "Transcription failed: audio download timed out",
			age:     2 * 24 * time.Hour,
		},
	}

	for i, sample := range samples {
		created := now.Add(-sample.age)
		ep := &types.Episode{
			ID:             uuid.NewString(),
			Title:          sample.title,
			URL:            fmt.Sprintf("https://example.com/episodes/%d", i+1),
			FeedTitle:      sample.feed,
			FeedSource:     sample.feed,
			Status:         sample.status,
			Summary:        sample.summary,
			Transcript:     sample.transcript,
			PromptCategory: sample.category,
			AudioPath:      sample.audio,
			SubmittedAt:    types.NewTimestamp(created),
			CreatedAt:      types.NewTimestamp(created),
		}
		if sample.duration > 0 {
			ep.Duration = types.Duration{Seconds: sample.duration}
		}
		switch sample.status {
		case types.StatusCompleted:
			ep.CompletedAt = types.NewTimestamp(created.Add(8 * time.Minute))
		case types.StatusProcessing:
			s.processingSince[ep.ID] = now
		case types.StatusPending:
			s.pendingSince[ep.ID] = now
		}
		s.episodes[ep.ID] = ep
		s.order = append(s.order, ep.ID)
	}
}

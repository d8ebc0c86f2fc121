package types

// FeedStatus represents the health of a subscription.
type FeedStatus string

const (
	FeedActive FeedStatus = "active"
	FeedError  FeedStatus = "error"
)

// Feed represents an RSS subscription driving the ingestion pipeline.
// EpisodeCount is server-computed; the client treats it as read-only.
type Feed struct {
	ID                       string     `json:"id"`
	Title                    string     `json:"title"`
	URL                      string     `json:"url"`
	EpisodeCount             int        `json:"episode_count"`
	Category                 Category   `json:"category,omitempty"`
	CustomPromptInstructions string     `json:"custom_prompt_instructions,omitempty"`
	Status                   FeedStatus `json:"status,omitempty"`
	LastUpdated              Timestamp  `json:"last_updated,omitzero"`
}

// FeedList is the response shape of the feed listing endpoint.
type FeedList struct {
	Feeds []Feed `json:"feeds"`
	Total int    `json:"total"`
}

// FeederStatus describes the external polling daemon. The client only reads
// it and can request a restart; the singleton is owned by the backend.
type FeederStatus struct {
	IsRunning           bool   `json:"is_running"`
	LastRunStatus       string `json:"last_run_status"`
	LastRunTimeReadable string `json:"last_run_time_readable,omitempty"`
	NextRunInMinutes    int    `json:"next_run_in_minutes,omitempty"`
}

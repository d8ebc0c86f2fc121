package types

// Status represents the server-owned lifecycle state of an episode.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusCompleted,
	StatusFailed,
}

// AllStatuses returns the known episode statuses in pipeline order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus validates a wire-level status string.
func ParseStatus(value string) (Status, bool) {
	s := Status(value)
	for _, known := range allStatuses {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// Label returns the human-readable form shown in the UI.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusProcessing:
		return "Processing"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	default:
		return string(s)
	}
}

// Terminal reports whether the pipeline is done with the episode.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Episode represents a podcast episode tracked through the ingestion and
// summarization pipeline. Status, summary and transcript are server-owned;
// the client never mutates them locally.
type Episode struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	URL            string    `json:"url,omitempty"`
	FeedTitle      string    `json:"feed_title,omitempty"`
	FeedSource     string    `json:"feed_source,omitempty"`
	Status         Status    `json:"status"`
	Summary        string    `json:"summary,omitempty"`
	Transcript     string    `json:"transcript,omitempty"`
	AudioPath      string    `json:"audio_path,omitempty"`
	PromptCategory Category  `json:"prompt_category,omitempty"`
	Duration       Duration  `json:"duration,omitempty"`
	Hidden         bool      `json:"hidden,omitempty"`
	SubmittedAt    Timestamp `json:"submitted_date,omitzero"`
	CompletedAt    Timestamp `json:"completed_date,omitzero"`
	CreatedAt      Timestamp `json:"created_at,omitzero"`
}

// EpisodeList is the response shape of the episode listing endpoint.
type EpisodeList struct {
	Episodes        []Episode `json:"episodes"`
	Total           int       `json:"total"`
	CompletedCount  int       `json:"completed_count"`
	ProcessingCount int       `json:"processing_count"`
}

// FeedLabel returns the display name of the feed an episode came from.
func (e Episode) FeedLabel() string {
	if e.FeedTitle != "" {
		return e.FeedTitle
	}
	if e.FeedSource != "" {
		return e.FeedSource
	}
	return "Unknown"
}

// HasSummary reports whether a readable summary should be shown. Only a
// completed episode displays its summary as a summary; for a failed episode
// the field carries the failure reason instead.
func (e Episode) HasSummary() bool {
	return e.Status == StatusCompleted && e.Summary != ""
}

// FailureReason returns the error text to surface for a failed episode.
func (e Episode) FailureReason() string {
	if e.Status != StatusFailed {
		return ""
	}
	if e.Summary != "" {
		return e.Summary
	}
	return "Processing failed"
}

// DisplayDate picks the timestamp used for list ordering and date labels.
func (e Episode) DisplayDate() Timestamp {
	if !e.CreatedAt.IsZero() {
		return e.CreatedAt
	}
	return e.SubmittedAt
}

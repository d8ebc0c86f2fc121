package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"poddash/types"
)

// ListOptions filters the episode listing. Zero values are omitted from the
// query string; the CategoryNone sentinel is translated to "no category"
// before it reaches the wire.
type ListOptions struct {
	Status   types.Status
	Category types.Category
	Limit    int
	Offset   int
	Hidden   bool
}

func (o ListOptions) query() string {
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", string(o.Status))
	}
	if cat := o.Category.WireValue(); cat != "" {
		q.Set("category", cat)
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.Hidden {
		q.Set("hidden", "true")
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListEpisodes fetches a page of episodes with aggregate counts.
func (c *Client) ListEpisodes(ctx context.Context, opts ListOptions) (*types.EpisodeList, error) {
	var list types.EpisodeList
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/episodes"+opts.query(), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetEpisode fetches a single episode by id. An unknown id yields an
// *APIError with KindNotFound.
func (c *Client) GetEpisode(ctx context.Context, id string) (*types.Episode, error) {
	var ep types.Episode
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/episodes/"+url.PathEscape(id), nil, &ep); err != nil {
		return nil, err
	}
	return &ep, nil
}

// SubmitEpisode queues a URL for pipeline ingestion.
func (c *Client) SubmitEpisode(ctx context.Context, episodeURL string) error {
	payload := map[string]string{"url": episodeURL}
	return c.doJSONRequest(ctx, http.MethodPost, "/api/episodes", payload, nil)
}

// SummarizeAgain requests re-summarization, optionally overriding the prompt
// category. The server rejects episodes without a transcript; that rejection
// message is surfaced verbatim through the returned *APIError.
func (c *Client) SummarizeAgain(ctx context.Context, id string, category types.Category) error {
	var payload interface{}
	if cat := category.WireValue(); cat != "" {
		payload = map[string]string{"category": cat}
	}
	return c.doJSONRequest(ctx, http.MethodPost, c.episodePath(id, "summarize-again"), payload, nil)
}

// RetryEpisode re-queues a processing or failed episode for ingestion.
func (c *Client) RetryEpisode(ctx context.Context, id string) error {
	return c.doJSONRequest(ctx, http.MethodPost, c.episodePath(id, "retry"), nil, nil)
}

// RecleanEpisode re-runs transcript post-processing for a completed episode.
func (c *Client) RecleanEpisode(ctx context.Context, id string) error {
	return c.doJSONRequest(ctx, http.MethodPost, c.episodePath(id, "reclean"), nil, nil)
}

// DeleteEpisode removes an episode permanently.
func (c *Client) DeleteEpisode(ctx context.Context, id string) error {
	return c.doJSONRequest(ctx, http.MethodDelete, "/api/episodes/"+url.PathEscape(id), nil, nil)
}

// HideEpisode removes an episode from default listings without deleting it.
func (c *Client) HideEpisode(ctx context.Context, id string) error {
	return c.doJSONRequest(ctx, http.MethodPost, c.episodePath(id, "hide"), nil, nil)
}

// RestoreEpisode returns a hidden episode to the default listings.
func (c *Client) RestoreEpisode(ctx context.Context, id string) error {
	return c.doJSONRequest(ctx, http.MethodPost, c.episodePath(id, "restore"), nil, nil)
}

func (c *Client) episodePath(id, action string) string {
	return fmt.Sprintf("/api/episodes/%s/%s", url.PathEscape(id), action)
}

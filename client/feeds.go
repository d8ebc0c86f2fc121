package client

import (
	"context"
	"net/http"
	"net/url"

	"poddash/types"
)

// FeedRequest is the body of feed create and update calls.
type FeedRequest struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Category     string `json:"category,omitempty"`
	CustomPrompt string `json:"custom_prompt,omitempty"`
}

// NewFeedRequest builds a request body, translating the category sentinel at
// the API boundary.
func NewFeedRequest(feedURL, title string, category types.Category, customPrompt string) FeedRequest {
	return FeedRequest{
		URL:          feedURL,
		Title:        title,
		Category:     category.WireValue(),
		CustomPrompt: customPrompt,
	}
}

// ListFeeds fetches all subscriptions.
func (c *Client) ListFeeds(ctx context.Context) (*types.FeedList, error) {
	var list types.FeedList
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/feeds", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// AddFeed creates a subscription.
func (c *Client) AddFeed(ctx context.Context, req FeedRequest) error {
	return c.doJSONRequest(ctx, http.MethodPost, "/api/feeds", req, nil)
}

// UpdateFeed replaces a subscription's settings.
func (c *Client) UpdateFeed(ctx context.Context, id string, req FeedRequest) error {
	return c.doJSONRequest(ctx, http.MethodPut, "/api/feeds/"+url.PathEscape(id), req, nil)
}

// DeleteFeed removes a subscription.
func (c *Client) DeleteFeed(ctx context.Context, id string) error {
	return c.doJSONRequest(ctx, http.MethodDelete, "/api/feeds/"+url.PathEscape(id), nil, nil)
}

// FeederStatus reads the polling daemon's state.
func (c *Client) FeederStatus(ctx context.Context) (*types.FeederStatus, error) {
	var status types.FeederStatus
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/feeder/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// RestartFeeder asks the backend to restart the polling daemon. The call is
// fire-and-forget; the effect shows up in the next FeederStatus read.
func (c *Client) RestartFeeder(ctx context.Context) error {
	return c.doJSONRequest(ctx, http.MethodPost, "/api/feeder/restart", nil, nil)
}

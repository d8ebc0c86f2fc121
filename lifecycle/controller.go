package lifecycle

import (
	"context"
	"fmt"

	"poddash/cache"
	"poddash/client"
	"poddash/types"
)

// API is the slice of the backend client the controller needs. *client.Client
// satisfies it.
type API interface {
	RetryEpisode(ctx context.Context, id string) error
	RecleanEpisode(ctx context.Context, id string) error
	SummarizeAgain(ctx context.Context, id string, category types.Category) error
	DeleteEpisode(ctx context.Context, id string) error
	HideEpisode(ctx context.Context, id string) error
	RestoreEpisode(ctx context.Context, id string) error
}

// Outcome is the user-visible result of an action.
type Outcome struct {
	OK      bool
	Message string
	// NavigateAway is set when the acted-on entity no longer exists, so a
	// detail view open on it must leave.
	NavigateAway bool
}

// Controller executes episode actions: it gates them on legality, runs the
// mutation, and on success invalidates the episode caches so every view
// refetches. The displayed status never changes optimistically; it only moves
// once the server confirms and the refetch lands.
type Controller struct {
	api   API
	store *cache.Store
}

// NewController wires the controller to the API client and the shared cache.
func NewController(api API, store *cache.Store) *Controller {
	return &Controller{api: api, store: store}
}

var confirmations = map[Action]string{
	ActionRetry:       "Episode queued for retry",
	ActionReclean:     "Episode queued for re-cleaning",
	ActionResummarize: "Episode queued for re-summarization",
	ActionDelete:      "Episode deleted",
	ActionHide:        "Episode hidden",
	ActionRestore:     "Episode restored",
}

var failures = map[Action]string{
	ActionRetry:       "Failed to retry episode",
	ActionReclean:     "Failed to re-clean episode",
	ActionResummarize: "Failed to queue re-summarization",
	ActionDelete:      "Failed to delete episode",
	ActionHide:        "Failed to hide episode",
	ActionRestore:     "Failed to restore episode",
}

// Perform runs one action against an episode. The category argument only
// applies to ActionResummarize and may be the CategoryNone sentinel.
func (c *Controller) Perform(ctx context.Context, ep types.Episode, action Action, category types.Category) Outcome {
	if err := Can(ep, action); err != nil {
		return Outcome{Message: err.Error()}
	}

	do := func(ctx context.Context) error {
		switch action {
		case ActionRetry:
			return c.api.RetryEpisode(ctx, ep.ID)
		case ActionReclean:
			return c.api.RecleanEpisode(ctx, ep.ID)
		case ActionResummarize:
			return c.api.SummarizeAgain(ctx, ep.ID, category)
		case ActionDelete:
			return c.api.DeleteEpisode(ctx, ep.ID)
		case ActionHide:
			return c.api.HideEpisode(ctx, ep.ID)
		case ActionRestore:
			return c.api.RestoreEpisode(ctx, ep.ID)
		default:
			return fmt.Errorf("unknown action %q", action)
		}
	}

	err := c.store.Mutate(ctx, do, cache.EpisodesPrefix, cache.EpisodeKey(ep.ID))
	if err != nil {
		return Outcome{Message: failureMessage(action, err)}
	}

	return Outcome{
		OK:           true,
		Message:      confirmations[action],
		NavigateAway: action == ActionDelete,
	}
}

// failureMessage prefers the server's rejection text; transport and server
// errors collapse to a generic, action-specific message since no structured
// detail is assumed reliable.
func failureMessage(action Action, err error) string {
	if msg := client.ValidationMessage(err); msg != "" {
		return msg
	}
	return failures[action]
}

// Package lifecycle interprets an episode's server-reported status plus the
// user's pending intent into the set of legal actions, and executes those
// actions against the API with the cache invalidations they require. Illegal
// combinations are stopped here and never reach the network.
package lifecycle

import (
	"fmt"

	"poddash/types"
)

// Action is a user-initiated mutation on an episode.
type Action string

const (
	ActionRetry       Action = "retry"
	ActionReclean     Action = "reclean"
	ActionResummarize Action = "resummarize"
	ActionDelete      Action = "delete"
	ActionHide        Action = "hide"
	ActionRestore     Action = "restore"
)

// Label returns the menu text for an action.
func (a Action) Label() string {
	switch a {
	case ActionRetry:
		return "Retry"
	case ActionReclean:
		return "Re-clean transcript"
	case ActionResummarize:
		return "Re-summarize"
	case ActionDelete:
		return "Delete"
	case ActionHide:
		return "Hide"
	case ActionRestore:
		return "Restore"
	default:
		return string(a)
	}
}

// AllowedActions returns the legal actions for an episode, in menu order.
// The action set depends jointly on the server-reported status and on data
// availability: re-summarization needs a transcript even when the status
// label says completed, because degraded pipeline runs can complete without
// one. There is no action that moves an episode back to pending.
func AllowedActions(ep types.Episode) []Action {
	if ep.Hidden {
		return []Action{ActionRestore, ActionDelete}
	}

	var actions []Action
	switch ep.Status {
	case types.StatusProcessing, types.StatusFailed:
		actions = append(actions, ActionRetry)
	case types.StatusCompleted:
		actions = append(actions, ActionReclean)
		if ep.Transcript != "" {
			actions = append(actions, ActionResummarize)
		}
	}
	return append(actions, ActionHide, ActionDelete)
}

// Can reports whether an action is legal for the episode, with the reason
// when it is not.
func Can(ep types.Episode, action Action) error {
	for _, allowed := range AllowedActions(ep) {
		if allowed == action {
			return nil
		}
	}
	switch action {
	case ActionResummarize:
		if ep.Status == types.StatusCompleted && ep.Transcript == "" {
			return fmt.Errorf("episode has no transcript to re-summarize")
		}
		return fmt.Errorf("only completed episodes can be re-summarized")
	case ActionRetry:
		return fmt.Errorf("only processing or failed episodes can be retried")
	case ActionReclean:
		return fmt.Errorf("only completed episodes can be re-cleaned")
	case ActionRestore:
		return fmt.Errorf("episode is not hidden")
	default:
		return fmt.Errorf("%s is not available for this episode", action.Label())
	}
}

package tui

import (
	"time"

	"poddash/audio"
	"poddash/lifecycle"
	"poddash/types"
)

// Async results carry the generation counter of the view that issued them.
// Navigation bumps the counter, so a result arriving after its view unmounted
// is discarded silently: no state update, no visible error.

// episodesLoadedMsg is sent when an episode list fetch settles.
type episodesLoadedMsg struct {
	gen  int
	list *types.EpisodeList
	err  error
}

// episodeLoadedMsg is sent when a single-episode fetch settles.
type episodeLoadedMsg struct {
	gen     int
	episode *types.Episode
	err     error
}

// feedsLoadedMsg is sent when the feed list fetch settles.
type feedsLoadedMsg struct {
	gen  int
	list *types.FeedList
	err  error
}

// feederLoadedMsg is sent when the feeder status fetch settles.
type feederLoadedMsg struct {
	gen    int
	status *types.FeederStatus
	err    error
}

// actionDoneMsg is sent when a lifecycle action settles.
type actionDoneMsg struct {
	gen       int
	episodeID string
	action    lifecycle.Action
	outcome   lifecycle.Outcome
}

// submitDoneMsg is sent when an episode URL submission settles.
type submitDoneMsg struct {
	gen int
	err error
}

// feedSavedMsg is sent when a feed create/update/delete settles.
type feedSavedMsg struct {
	gen  int
	verb string
	err  error
}

// feederRestartedMsg is sent when the feeder restart trigger settles.
type feederRestartedMsg struct {
	gen int
	err error
}

// audioReadyMsg delivers the probed metadata of a downloaded audio asset, or
// the reason the media is unavailable.
type audioReadyMsg struct {
	gen  int
	info audio.TrackInfo
	err  error
}

// playTickMsg drives clock-based playback position.
type playTickMsg struct {
	at time.Time
}

// resourceChangedMsg bridges cache change notifications into the program.
type resourceChangedMsg struct {
	key string
}

// clearNoticeMsg expires the transient status line.
type clearNoticeMsg struct {
	id int
}

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"poddash/audio"
	"poddash/cache"
	"poddash/client"
	"poddash/lifecycle"
	"poddash/types"
)

// Fetch commands go through the shared cache store, so concurrent views
// asking for the same resource share a single network call and every
// successful mutation is observed by every consumer.

func (m Model) loadEpisodes(opts client.ListOptions) tea.Cmd {
	gen := m.gen
	api, store := m.api, m.store
	key := cache.EpisodeListKey(opts.Status, opts.Category, opts.Limit, opts.Offset, opts.Hidden)
	return func() tea.Msg {
		value, err := store.Fetch(context.Background(), key, func(ctx context.Context) (interface{}, error) {
			return api.ListEpisodes(ctx, opts)
		})
		if err != nil {
			return episodesLoadedMsg{gen: gen, err: err}
		}
		return episodesLoadedMsg{gen: gen, list: value.(*types.EpisodeList)}
	}
}

func (m Model) loadEpisode(id string) tea.Cmd {
	gen := m.gen
	api, store := m.api, m.store
	return func() tea.Msg {
		value, err := store.Fetch(context.Background(), cache.EpisodeKey(id), func(ctx context.Context) (interface{}, error) {
			return api.GetEpisode(ctx, id)
		})
		if err != nil {
			return episodeLoadedMsg{gen: gen, err: err}
		}
		return episodeLoadedMsg{gen: gen, episode: value.(*types.Episode)}
	}
}

func (m Model) loadFeeds() tea.Cmd {
	gen := m.gen
	api, store := m.api, m.store
	return func() tea.Msg {
		value, err := store.Fetch(context.Background(), cache.FeedsKey, func(ctx context.Context) (interface{}, error) {
			return api.ListFeeds(ctx)
		})
		if err != nil {
			return feedsLoadedMsg{gen: gen, err: err}
		}
		return feedsLoadedMsg{gen: gen, list: value.(*types.FeedList)}
	}
}

func (m Model) loadFeederStatus() tea.Cmd {
	gen := m.gen
	api, store := m.api, m.store
	return func() tea.Msg {
		value, err := store.Fetch(context.Background(), cache.FeederStatusKey, func(ctx context.Context) (interface{}, error) {
			return api.FeederStatus(ctx)
		})
		if err != nil {
			return feederLoadedMsg{gen: gen, err: err}
		}
		return feederLoadedMsg{gen: gen, status: value.(*types.FeederStatus)}
	}
}

func (m Model) performAction(ep types.Episode, action lifecycle.Action, category types.Category) tea.Cmd {
	gen := m.gen
	actions := m.actions
	return func() tea.Msg {
		outcome := actions.Perform(context.Background(), ep, action, category)
		return actionDoneMsg{gen: gen, episodeID: ep.ID, action: action, outcome: outcome}
	}
}

func (m Model) submitEpisode(url string) tea.Cmd {
	gen := m.gen
	api, store := m.api, m.store
	return func() tea.Msg {
		err := store.Mutate(context.Background(), func(ctx context.Context) error {
			return api.SubmitEpisode(ctx, url)
		}, cache.EpisodesPrefix)
		return submitDoneMsg{gen: gen, err: err}
	}
}

func (m Model) saveFeed(id string, req client.FeedRequest) tea.Cmd {
	gen := m.gen
	api, store := m.api, m.store
	return func() tea.Msg {
		verb := "added"
		err := store.Mutate(context.Background(), func(ctx context.Context) error {
			if id == "" {
				return api.AddFeed(ctx, req)
			}
			verb = "updated"
			return api.UpdateFeed(ctx, id, req)
		}, cache.FeedsKey)
		return feedSavedMsg{gen: gen, verb: verb, err: err}
	}
}

func (m Model) deleteFeed(id string) tea.Cmd {
	gen := m.gen
	api, store := m.api, m.store
	return func() tea.Msg {
		err := store.Mutate(context.Background(), func(ctx context.Context) error {
			return api.DeleteFeed(ctx, id)
		}, cache.FeedsKey)
		return feedSavedMsg{gen: gen, verb: "deleted", err: err}
	}
}

func (m Model) restartFeeder() tea.Cmd {
	gen := m.gen
	api, store := m.api, m.store
	return func() tea.Msg {
		err := store.Mutate(context.Background(), func(ctx context.Context) error {
			return api.RestartFeeder(ctx)
		}, cache.FeederStatusKey)
		return feederRestartedMsg{gen: gen, err: err}
	}
}

// prepareAudio downloads the episode's audio asset and probes its metadata,
// feeding the real-audio transport its MetadataReady or MediaError event.
func (m Model) prepareAudio(storedPath string) tea.Cmd {
	gen := m.gen
	api, mediaDir := m.api, m.cfg.MediaDir
	return func() tea.Msg {
		local, err := api.DownloadAudio(context.Background(), storedPath, mediaDir)
		if err != nil {
			return audioReadyMsg{gen: gen, err: err}
		}
		info, err := audio.ProbeFile(local)
		if err != nil {
			return audioReadyMsg{gen: gen, err: err}
		}
		return audioReadyMsg{gen: gen, info: info}
	}
}

// playTick drives transport position at 2Hz while something is playing.
func playTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return playTickMsg{at: t}
	})
}

// waitForCacheEvent re-arms the bridge between cache notifications and the
// tea program.
func waitForCacheEvent(events chan string) tea.Cmd {
	return func() tea.Msg {
		return resourceChangedMsg{key: <-events}
	}
}

func (m Model) expireNotice(id int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}

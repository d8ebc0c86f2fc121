package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"

	"poddash/audio"
	"poddash/cache"
	"poddash/client"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case resourceChangedMsg:
		return m.handleResourceChanged(msg)
	case episodesLoadedMsg:
		return m.handleEpisodesLoaded(msg)
	case episodeLoadedMsg:
		return m.handleEpisodeLoaded(msg)
	case feedsLoadedMsg:
		return m.handleFeedsLoaded(msg)
	case feederLoadedMsg:
		return m.handleFeederLoaded(msg)
	case actionDoneMsg:
		return m.handleActionDone(msg)
	case submitDoneMsg:
		return m.handleSubmitDone(msg)
	case feedSavedMsg:
		return m.handleFeedSaved(msg)
	case feederRestartedMsg:
		return m.handleFeederRestarted(msg)
	case audioReadyMsg:
		return m.handleAudioReady(msg)
	case playTickMsg:
		return m.handlePlayTick(msg)
	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	bodyHeight := msg.Height - 14
	if bodyHeight < 4 {
		bodyHeight = 4
	}
	m.body.Width = msg.Width - 4
	m.body.Height = bodyHeight
	m.bodyReady = true
	if m.episode != nil {
		m.body.SetContent(m.renderDetailBody())
	}
	return m, nil
}

// handleResourceChanged reacts to a cache notification: if the changed key
// backs the current surface, refetch it. Keys for surfaces not on screen are
// ignored; their next read refetches anyway.
func (m Model) handleResourceChanged(msg resourceChangedMsg) (tea.Model, tea.Cmd) {
	rearm := waitForCacheEvent(m.cacheEvents)

	var reload tea.Cmd
	switch {
	case strings.HasPrefix(msg.key, cache.EpisodesPrefix+":") && m.view == viewDashboard:
		reload = m.loadEpisodes(m.listOptions())
	case m.view == viewDetail && m.detailID != "" && msg.key == cache.EpisodeKey(m.detailID):
		reload = m.loadEpisode(m.detailID)
	case msg.key == cache.FeedsKey && m.view == viewFeeds:
		reload = m.loadFeeds()
	case msg.key == cache.FeederStatusKey && (m.view == viewFeeds || m.view == viewDashboard):
		reload = m.loadFeederStatus()
	}

	if reload == nil {
		return m, rearm
	}
	return m, tea.Batch(reload, rearm)
}

func (m Model) handleEpisodesLoaded(msg episodesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.listLoading = false
	m.listErr = msg.err
	if msg.err == nil {
		m.episodes = msg.list
		if m.cursor >= len(msg.list.Episodes) {
			m.cursor = len(msg.list.Episodes) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
	}
	return m, nil
}

func (m Model) handleEpisodeLoaded(msg episodeLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.detailLoading = false
	if msg.err != nil {
		m.detailNotFound = client.IsNotFound(msg.err)
		m.detailErr = msg.err
		return m, nil
	}
	m.detailErr = nil
	m.detailNotFound = false

	first := m.episode == nil
	m.episode = msg.episode

	var cmds []tea.Cmd
	if first {
		if msg.episode.AudioPath != "" {
			m.player = audio.NewReal()
			cmds = append(cmds, m.prepareAudio(msg.episode.AudioPath))
		}
		if msg.episode.HasSummary() {
			m.narrator = audio.NewSynthetic(msg.episode.Summary)
		}
		m.narratorActive = m.player == nil && m.narrator != nil
	}
	if m.bodyReady {
		m.body.SetContent(m.renderDetailBody())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleFeedsLoaded(msg feedsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.feedLoading = false
	m.feedErr = msg.err
	if msg.err == nil {
		m.feeds = msg.list
		if m.feedCursor >= len(msg.list.Feeds) {
			m.feedCursor = len(msg.list.Feeds) - 1
		}
		if m.feedCursor < 0 {
			m.feedCursor = 0
		}
	}
	return m, nil
}

func (m Model) handleFeederLoaded(msg feederLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	if msg.err == nil {
		m.feeder = msg.status
	}
	return m, nil
}

func (m Model) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.picker.pending = false

	cmds := []tea.Cmd{m.setNotice(msg.outcome.Message, !msg.outcome.OK)}

	if m.view == viewResummarize {
		m.navigate(viewDetail)
	}

	if msg.outcome.OK && msg.outcome.NavigateAway && m.detailID == msg.episodeID && m.view == viewDetail {
		m.leaveDetail()
		m.listLoading = true
		cmds = append(cmds, m.loadEpisodes(m.listOptions()))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.episodeForm.pending = false
	if msg.err != nil {
		return m, m.setNotice(mutationMessage(msg.err, "Failed to submit episode"), true)
	}
	m.navigate(viewDashboard)
	m.listLoading = true
	return m, tea.Batch(
		m.setNotice("Episode queued for processing", false),
		m.loadEpisodes(m.listOptions()),
	)
}

func (m Model) handleFeedSaved(msg feedSavedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.feedForm.pending = false
	if msg.err != nil {
		return m, m.setNotice(mutationMessage(msg.err, "Failed to save feed"), true)
	}
	if m.view == viewFeedForm {
		m.navigate(viewFeeds)
	}
	m.feedLoading = true
	return m, tea.Batch(
		m.setNotice("Feed "+msg.verb, false),
		m.loadFeeds(),
	)
}

func (m Model) handleFeederRestarted(msg feederRestartedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	if msg.err != nil {
		return m, m.setNotice("Failed to restart feeder", true)
	}
	return m, tea.Batch(
		m.setNotice("Feeder restart requested", false),
		m.loadFeederStatus(),
	)
}

func (m Model) handleAudioReady(msg audioReadyMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.player == nil {
		return m, nil
	}
	if msg.err != nil {
		m.player.Apply(audio.MediaError{Err: msg.err})
		return m, m.setNotice("Audio playback unavailable", true)
	}
	m.player.Apply(audio.MetadataReady{Duration: msg.info.DurationSeconds})
	m.audioTitle = msg.info.Title
	return m, nil
}

func (m Model) handlePlayTick(msg playTickMsg) (tea.Model, tea.Cmd) {
	tr := m.activeTransport()
	if tr == nil || !tr.IsPlaying() {
		m.lastTick = 0
		return m, nil
	}
	if m.lastTick > 0 {
		elapsed := msg.at.Sub(time.UnixMilli(m.lastTick))
		if elapsed > 0 {
			tr.Apply(audio.Tick{Elapsed: elapsed})
		}
	}
	m.lastTick = msg.at.UnixMilli()
	if tr.IsPlaying() {
		return m, playTick()
	}
	m.lastTick = 0
	return m, nil
}

// leaveDetail resets the detail surface after its entity disappeared or the
// user navigated back.
func (m *Model) leaveDetail() {
	m.navigate(viewDashboard)
	m.detailID = ""
	m.episode = nil
	m.detailErr = nil
	m.detailNotFound = false
	m.showTranscript = false
	m.player = nil
	m.narrator = nil
	m.narratorActive = false
	m.audioTitle = ""
	m.lastTick = 0
}

// mutationMessage prefers the server's validation text over the generic
// fallback.
func mutationMessage(err error, generic string) string {
	if msg := client.ValidationMessage(err); msg != "" {
		return msg
	}
	return generic
}

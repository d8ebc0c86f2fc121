package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"poddash/cache"
	"poddash/lifecycle"
	"poddash/types"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewDashboard:
		return m.dashboardKeys(msg)
	case viewDetail:
		return m.detailKeys(msg)
	case viewFeeds:
		return m.feedsKeys(msg)
	case viewAddEpisode:
		return m.addEpisodeKeys(msg)
	case viewFeedForm:
		return m.feedFormKeys(msg)
	case viewResummarize:
		return m.pickerKeys(msg)
	case viewConfirm:
		return m.confirmKeys(msg)
	}
	return m, nil
}

func (m Model) dashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.episodes != nil && m.cursor < len(m.episodes.Episodes)-1 {
			m.cursor++
		}
	case "enter":
		if ep, ok := m.selectedEpisode(); ok {
			return m.openDetail(ep.ID)
		}
	case "a":
		m.navigate(viewAddEpisode)
		m.episodeForm = newEpisodeForm()
	case "f":
		m.navigate(viewFeeds)
		m.feedLoading = true
		return m, tea.Batch(m.loadFeeds(), m.loadFeederStatus())
	case "s":
		m.statusFilter = (m.statusFilter + 1) % len(statusFilters)
		return m.reloadList()
	case "c":
		m.categoryFilter = (m.categoryFilter + 1) % len(types.CategoryOptions())
		return m.reloadList()
	case "n", "right":
		if m.episodes != nil && m.offset+m.cfg.ListLimit < m.episodes.Total {
			m.offset += m.cfg.ListLimit
			return m.reloadPage()
		}
	case "p", "left":
		if m.offset > 0 {
			m.offset -= m.cfg.ListLimit
			if m.offset < 0 {
				m.offset = 0
			}
			return m.reloadPage()
		}
	case "H":
		m.showHidden = !m.showHidden
		return m.reloadList()
	case "r":
		m.store.Invalidate(cache.EpisodesPrefix, cache.FeederStatusKey)
		m.listLoading = true
		return m, tea.Batch(m.loadEpisodes(m.listOptions()), m.loadFeederStatus())
	case "y":
		if ep, ok := m.selectedEpisode(); ok {
			return m, m.performAction(ep, lifecycle.ActionRetry, "")
		}
	case "h":
		if ep, ok := m.selectedEpisode(); ok {
			action := lifecycle.ActionHide
			if m.showHidden {
				action = lifecycle.ActionRestore
			}
			return m, m.performAction(ep, action, "")
		}
	case "D":
		if ep, ok := m.selectedEpisode(); ok {
			m.confirm = &confirmState{
				prompt: "Delete \"" + ep.Title + "\"? This cannot be undone.",
				run:    m.performAction(ep, lifecycle.ActionDelete, ""),
				back:   viewDashboard,
			}
			m.view = viewConfirm
		}
	}
	return m, nil
}

// openDetail switches to the episode detail surface and starts its fetch.
func (m Model) openDetail(id string) (tea.Model, tea.Cmd) {
	m.navigate(viewDetail)
	m.detailID = id
	m.episode = nil
	m.detailErr = nil
	m.detailNotFound = false
	m.detailLoading = true
	m.showTranscript = false
	m.player = nil
	m.narrator = nil
	m.narratorActive = false
	m.audioTitle = ""
	m.lastTick = 0
	return m, m.loadEpisode(id)
}

func (m Model) detailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc", "backspace":
		m.leaveDetail()
		m.listLoading = true
		return m, m.loadEpisodes(m.listOptions())
	case " ":
		tr := m.activeTransport()
		if tr == nil || tr.Unavailable() != nil {
			return m, nil
		}
		if tr.IsPlaying() {
			tr.Pause()
			m.lastTick = 0
			return m, nil
		}
		tr.Play()
		m.lastTick = 0
		return m, playTick()
	case "tab":
		if m.player != nil && m.narrator != nil {
			m.narratorActive = !m.narratorActive
		}
	case "left":
		if tr := m.activeTransport(); tr != nil {
			tr.SeekBy(-10)
		}
	case "right":
		if tr := m.activeTransport(); tr != nil {
			tr.SeekBy(10)
		}
	case "x":
		if tr := m.activeTransport(); tr != nil {
			tr.CycleSpeed()
		}
	case "+", "=":
		if tr := m.activeTransport(); tr != nil {
			tr.SetVolume(tr.Volume() + 0.1)
		}
	case "-":
		if tr := m.activeTransport(); tr != nil {
			tr.SetVolume(tr.Volume() - 0.1)
		}
	case "t":
		m.showTranscript = !m.showTranscript
		if m.bodyReady && m.episode != nil {
			m.body.SetContent(m.renderDetailBody())
		}
	case "S":
		if m.episode != nil {
			if err := lifecycle.Can(*m.episode, lifecycle.ActionResummarize); err != nil {
				return m, m.setNotice(err.Error(), true)
			}
			m.navigate(viewResummarize)
			m.picker = newPicker(*m.episode)
		}
	case "D":
		if m.episode != nil {
			m.confirm = &confirmState{
				prompt: "Delete \"" + m.episode.Title + "\"? This cannot be undone.",
				run:    m.performAction(*m.episode, lifecycle.ActionDelete, ""),
				back:   viewDetail,
			}
			m.view = viewConfirm
		}
	case "R", "C", "H", "U":
		if m.episode != nil {
			return m, m.performAction(*m.episode, actionKeyMap[msg.String()], "")
		}
	default:
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) feedsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.navigate(viewDashboard)
		m.listLoading = true
		return m, m.loadEpisodes(m.listOptions())
	case "up", "k":
		if m.feedCursor > 0 {
			m.feedCursor--
		}
	case "down", "j":
		if m.feeds != nil && m.feedCursor < len(m.feeds.Feeds)-1 {
			m.feedCursor++
		}
	case "a":
		m.navigate(viewFeedForm)
		m.feedForm = newFeedForm(nil)
	case "e", "enter":
		if feed, ok := m.selectedFeed(); ok {
			m.navigate(viewFeedForm)
			m.feedForm = newFeedForm(&feed)
		}
	case "D":
		if feed, ok := m.selectedFeed(); ok {
			m.confirm = &confirmState{
				prompt: "Delete feed \"" + feed.Title + "\" and stop ingesting it?",
				run:    m.deleteFeed(feed.ID),
				back:   viewFeeds,
			}
			m.view = viewConfirm
		}
	case "P":
		return m, m.restartFeeder()
	case "r":
		m.store.Invalidate(cache.FeedsKey, cache.FeederStatusKey)
		m.feedLoading = true
		return m, tea.Batch(m.loadFeeds(), m.loadFeederStatus())
	}
	return m, nil
}

func (m Model) addEpisodeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.navigate(viewDashboard)
		return m, nil
	case "enter":
		if m.episodeForm.pending || m.episodeForm.url() == "" {
			return m, nil
		}
		m.episodeForm.pending = true
		return m, m.submitEpisode(m.episodeForm.url())
	}
	var cmd tea.Cmd
	m.episodeForm.input, cmd = m.episodeForm.input.Update(msg)
	return m, cmd
}

func (m Model) feedFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.navigate(viewFeeds)
		return m, nil
	case "tab", "down":
		m.feedForm.setFocus((m.feedForm.focus + 1) % feedFieldCount)
		return m, nil
	case "shift+tab", "up":
		m.feedForm.setFocus((m.feedForm.focus + feedFieldCount - 1) % feedFieldCount)
		return m, nil
	case "left":
		if m.feedForm.focus == feedFieldCategory {
			n := len(types.CategoryOptions())
			m.feedForm.category = (m.feedForm.category + n - 1) % n
			return m, nil
		}
	case "right":
		if m.feedForm.focus == feedFieldCategory {
			m.feedForm.category = (m.feedForm.category + 1) % len(types.CategoryOptions())
			return m, nil
		}
	case "enter":
		if m.feedForm.focus < feedFieldCount-1 {
			m.feedForm.setFocus(m.feedForm.focus + 1)
			return m, nil
		}
		return m.submitFeedForm()
	case "ctrl+s":
		return m.submitFeedForm()
	}

	var cmd tea.Cmd
	switch m.feedForm.focus {
	case feedFieldURL:
		m.feedForm.url, cmd = m.feedForm.url.Update(msg)
	case feedFieldTitle:
		m.feedForm.title, cmd = m.feedForm.title.Update(msg)
	case feedFieldPrompt:
		m.feedForm.prompt, cmd = m.feedForm.prompt.Update(msg)
	}
	return m, cmd
}

func (m Model) submitFeedForm() (tea.Model, tea.Cmd) {
	if m.feedForm.pending {
		return m, nil
	}
	req := m.feedForm.request()
	if req.URL == "" {
		return m, m.setNotice("Feed URL is required", true)
	}
	m.feedForm.pending = true
	return m, m.saveFeed(m.feedForm.id, req)
}

func (m Model) pickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.navigate(viewDetail)
	case "up", "k":
		if m.picker.index > 0 {
			m.picker.index--
		}
	case "down", "j":
		if m.picker.index < len(types.CategoryOptions())-1 {
			m.picker.index++
		}
	case "enter":
		if m.picker.pending {
			return m, nil
		}
		m.picker.pending = true
		return m, m.performAction(m.picker.episode, lifecycle.ActionResummarize, m.picker.category())
	}
	return m, nil
}

func (m Model) confirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm == nil {
		m.view = viewDashboard
		return m, nil
	}
	switch msg.String() {
	case "y", "Y", "enter":
		run := m.confirm.run
		m.view = m.confirm.back
		m.confirm = nil
		return m, run
	case "n", "N", "esc", "q":
		m.view = m.confirm.back
		m.confirm = nil
	}
	return m, nil
}

// reloadList resets paging and refetches with the new filters.
func (m Model) reloadList() (tea.Model, tea.Cmd) {
	m.offset = 0
	m.cursor = 0
	m.listLoading = true
	return m, m.loadEpisodes(m.listOptions())
}

// reloadPage refetches after a paging move without resetting the filters.
func (m Model) reloadPage() (tea.Model, tea.Cmd) {
	m.cursor = 0
	m.listLoading = true
	return m, m.loadEpisodes(m.listOptions())
}

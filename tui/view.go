package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"poddash/audio"
	"poddash/lifecycle"
	"poddash/types"
)

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.view {
	case viewDashboard:
		body = m.viewDashboard()
	case viewDetail:
		body = m.viewDetail()
	case viewFeeds:
		body = m.viewFeeds()
	case viewAddEpisode:
		body = m.viewAddEpisode()
	case viewFeedForm:
		body = m.viewFeedForm()
	case viewResummarize:
		body = m.viewPicker()
	case viewConfirm:
		body = m.viewConfirm()
	}

	if m.notice != "" {
		style := statusStyle
		if m.noticeErr {
			style = errorStyle
		}
		body += "\n" + style.Render(m.notice) + "\n"
	}
	return body
}

func (m Model) viewDashboard() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🎙  Podcast Pipeline Dashboard"))
	b.WriteString("\n")

	if m.episodes != nil {
		stats := fmt.Sprintf("Total %d  |  %s %d  |  %s %d",
			m.episodes.Total,
			statusStyle.Render("Completed"), m.episodes.CompletedCount,
			warnStyle.Render("Processing"), m.episodes.ProcessingCount,
		)
		b.WriteString(statStyle.Render(stats))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFilters())
	b.WriteString("\n")

	if m.feeder != nil {
		b.WriteString(infoStyle.Render(m.renderFeederLine()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.listLoading && m.episodes == nil:
		b.WriteString(m.spinner.View() + infoStyle.Render(" Loading episodes..."))
		b.WriteString("\n")
	case m.listErr != nil && m.episodes == nil:
		b.WriteString(errorStyle.Render("Could not reach the backend. Press 'r' to retry."))
		b.WriteString("\n")
	case m.episodes == nil || len(m.episodes.Episodes) == 0:
		b.WriteString(infoStyle.Render("No episodes yet. Press 'a' to submit one by URL."))
		b.WriteString("\n")
	default:
		now := time.Now()
		for i, ep := range m.episodes.Episodes {
			b.WriteString(m.renderEpisodeRow(ep, i == m.cursor, now))
		}
		if m.episodes.Total > len(m.episodes.Episodes) {
			page := m.offset/m.cfg.ListLimit + 1
			pages := (m.episodes.Total + m.cfg.ListLimit - 1) / m.cfg.ListLimit
			b.WriteString(infoStyle.Render(fmt.Sprintf("\nPage %d/%d  (n/p to change)", page, pages)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(infoStyle.Render("enter open | a add | f feeds | s status | c category | H hidden | y retry | h hide | D delete | r refresh | q quit"))
	return b.String()
}

func (m Model) renderFilters() string {
	parts := []string{}
	if s := statusFilters[m.statusFilter]; s != "" {
		parts = append(parts, "status="+string(s))
	}
	if cat := types.CategoryOptions()[m.categoryFilter]; cat.Value != types.CategoryNone {
		parts = append(parts, "category="+cat.Label)
	}
	if m.showHidden {
		parts = append(parts, "hidden")
	}
	if len(parts) == 0 {
		return infoStyle.Render("Filter: all episodes")
	}
	return infoStyle.Render("Filter: " + strings.Join(parts, ", "))
}

func (m Model) renderFeederLine() string {
	f := m.feeder
	state := "stopped"
	if f.IsRunning {
		state = "running"
	}
	line := fmt.Sprintf("Feeder %s", state)
	if f.LastRunTimeReadable != "" {
		line += fmt.Sprintf(" · last sync %s (%s)", f.LastRunTimeReadable, f.LastRunStatus)
	}
	if f.NextRunInMinutes > 0 {
		line += fmt.Sprintf(" · next run in %dm", f.NextRunInMinutes)
	}
	return line
}

func (m Model) renderEpisodeRow(ep types.Episode, selected bool, now time.Time) string {
	cursor := "  "
	titleLine := ep.Title
	if selected {
		cursor = highlightStyle.Render("▸") + " "
		titleLine = selectedStyle.Render(ep.Title)
	}

	meta := fmt.Sprintf("📡 %s · %s", ep.FeedLabel(), ep.DisplayDate().RelativeDate(now))
	if !ep.Duration.IsZero() {
		if ep.Duration.Text != "" {
			meta += " · " + ep.Duration.Text
		} else {
			meta += " · " + audio.FormatDuration(ep.Duration.Seconds)
		}
	}

	row := fmt.Sprintf("%s%s  [%s]\n    %s\n", cursor, titleLine, statusBadge(ep.Status), infoStyle.Render(meta))

	switch ep.Status {
	case types.StatusProcessing:
		row += "    " + warnStyle.Render("Processing...") + "\n"
	case types.StatusFailed:
		row += "    " + errorStyle.Render(ep.FailureReason()) + "\n"
	}
	return row
}

func (m Model) viewDetail() string {
	var b strings.Builder

	switch {
	case m.detailLoading && m.episode == nil:
		return m.spinner.View() + infoStyle.Render(" Loading episode...")
	case m.detailNotFound:
		b.WriteString(errorStyle.Render("Episode not found"))
		b.WriteString("\n\n")
		b.WriteString(infoStyle.Render("Press esc to go back"))
		return b.String()
	case m.detailErr != nil && m.episode == nil:
		b.WriteString(errorStyle.Render("Failed to load episode"))
		b.WriteString("\n\n")
		b.WriteString(infoStyle.Render("Press esc to go back"))
		return b.String()
	case m.episode == nil:
		return ""
	}

	ep := m.episode
	b.WriteString(titleStyle.Render(ep.Title))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("📡 %s · %s", ep.FeedLabel(), ep.DisplayDate().RelativeDate(time.Now()))))
	b.WriteString("  [" + statusBadge(ep.Status) + "]\n\n")

	if m.bodyReady {
		b.WriteString(m.body.View())
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderDetailBody())
	}

	if tr := m.activeTransport(); tr != nil {
		b.WriteString("\n")
		b.WriteString(m.renderTransport(tr))
	}

	b.WriteString("\n")
	b.WriteString(infoStyle.Render(m.detailHelp()))
	return b.String()
}

// renderDetailBody builds the scrollable portion of the detail view: summary
// or failure text, plus the transcript when toggled on.
func (m Model) renderDetailBody() string {
	ep := m.episode
	if ep == nil {
		return ""
	}
	var b strings.Builder

	switch ep.Status {
	case types.StatusCompleted:
		if ep.Summary == "" {
			b.WriteString(infoStyle.Render("Completed without a summary."))
			b.WriteString("\n")
		} else {
			b.WriteString(highlightStyle.Render("AI Summary"))
			b.WriteString("\n")
			b.WriteString(m.renderMarkdown(ep.Summary))
			b.WriteString("\n")
		}
	case types.StatusFailed:
		b.WriteString(errorStyle.Render("Failed: " + ep.FailureReason()))
		b.WriteString("\n")
	case types.StatusProcessing:
		b.WriteString(warnStyle.Render("Processing... the summary will appear here when the pipeline finishes."))
		b.WriteString("\n")
	case types.StatusPending:
		b.WriteString(warnStyle.Render("Waiting for the pipeline to pick this episode up."))
		b.WriteString("\n")
	}

	if ep.Transcript != "" {
		b.WriteString("\n")
		if m.showTranscript {
			b.WriteString(highlightStyle.Render("Transcript"))
			b.WriteString("\n")
			b.WriteString(ep.Transcript)
			b.WriteString("\n")
		} else {
			b.WriteString(infoStyle.Render("Press 't' to show the transcript"))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderMarkdown renders a completed summary with glamour, falling back to
// the raw text if rendering fails.
func (m Model) renderMarkdown(md string) string {
	width := m.width - 6
	if width < 20 {
		width = 72
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (m Model) renderTransport(tr *audio.Transport) string {
	var b strings.Builder

	label := "▶ Audio"
	if tr == m.narrator {
		label = "▶ Summary narration"
	} else if m.audioTitle != "" {
		label = "▶ " + m.audioTitle
	}
	b.WriteString(infoStyle.Render(label))
	b.WriteString("\n")

	if err := tr.Unavailable(); err != nil {
		b.WriteString(errorStyle.Render("Playback unavailable"))
		b.WriteString("\n")
		return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
	}

	width := 40
	filled := int(tr.Fraction() * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	duration, known := tr.Duration()
	durationLabel := "--:--"
	if known {
		durationLabel = audio.FormatDuration(duration)
	}

	state := "⏸"
	if tr.IsPlaying() {
		state = "▶"
	}
	b.WriteString(fmt.Sprintf("%s %s %s / %s  %gx  vol %d%%",
		state, bar,
		audio.FormatDuration(tr.Position()), durationLabel,
		tr.Speed(), int(tr.Volume()*100+0.5),
	))
	return boxStyle.Render(b.String())
}

func (m Model) detailHelp() string {
	parts := []string{"space play/pause", "←/→ seek", "x speed", "+/- volume"}
	if m.player != nil && m.narrator != nil {
		parts = append(parts, "tab switch player")
	}
	if m.episode != nil {
		for _, action := range m.detailActionHints() {
			parts = append(parts, action)
		}
	}
	parts = append(parts, "esc back")
	return strings.Join(parts, " | ")
}

// detailActionHints lists the key hints for the actions that are actually
// legal for the displayed episode.
func (m Model) detailActionHints() []string {
	var hints []string
	for _, action := range lifecycle.AllowedActions(*m.episode) {
		switch action {
		case lifecycle.ActionRetry:
			hints = append(hints, "R retry")
		case lifecycle.ActionReclean:
			hints = append(hints, "C re-clean")
		case lifecycle.ActionResummarize:
			hints = append(hints, "S re-summarize")
		case lifecycle.ActionDelete:
			hints = append(hints, "D delete")
		case lifecycle.ActionHide:
			hints = append(hints, "H hide")
		case lifecycle.ActionRestore:
			hints = append(hints, "U restore")
		}
	}
	return hints
}

func (m Model) viewFeeds() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📡 Feed Subscriptions"))
	b.WriteString("\n")

	if m.feeder != nil {
		b.WriteString(infoStyle.Render(m.renderFeederLine() + "  ('P' to restart)"))
		b.WriteString("\n\n")
	}

	switch {
	case m.feedLoading && m.feeds == nil:
		b.WriteString(m.spinner.View() + infoStyle.Render(" Loading feeds..."))
		b.WriteString("\n")
	case m.feedErr != nil && m.feeds == nil:
		b.WriteString(errorStyle.Render("Could not load feeds. Press 'r' to retry."))
		b.WriteString("\n")
	case m.feeds == nil || len(m.feeds.Feeds) == 0:
		b.WriteString(infoStyle.Render("No subscriptions yet. Press 'a' to add one."))
		b.WriteString("\n")
	default:
		for i, feed := range m.feeds.Feeds {
			cursor := "  "
			title := feed.Title
			if i == m.feedCursor {
				cursor = highlightStyle.Render("▸") + " "
				title = selectedStyle.Render(feed.Title)
			}
			b.WriteString(fmt.Sprintf("%s%s  [%s]\n", cursor, title, feedBadge(feed.Status)))
			meta := fmt.Sprintf("%s · %d episodes", feed.URL, feed.EpisodeCount)
			if feed.Category != "" && feed.Category != types.CategoryNone {
				meta += " · " + feed.Category.Label()
			}
			b.WriteString("    " + infoStyle.Render(meta) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(infoStyle.Render("a add | e edit | D delete | P restart feeder | r refresh | esc back"))
	return b.String()
}

func (m Model) viewAddEpisode() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add Episode"))
	b.WriteString("\n")
	b.WriteString("Episode URL:\n")
	b.WriteString(m.episodeForm.input.View())
	b.WriteString("\n\n")
	if m.episodeForm.pending {
		b.WriteString(m.spinner.View() + infoStyle.Render(" Submitting..."))
	} else {
		b.WriteString(infoStyle.Render("enter submit | esc cancel"))
	}
	return b.String()
}

func (m Model) viewFeedForm() string {
	var b strings.Builder
	header := "Add Feed"
	if m.feedForm.id != "" {
		header = "Edit Feed"
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")

	b.WriteString("Feed URL:\n")
	b.WriteString(m.feedForm.url.View())
	b.WriteString("\n\nTitle:\n")
	b.WriteString(m.feedForm.title.View())
	b.WriteString("\n\nCategory: ")
	category := types.CategoryOptions()[m.feedForm.category].Label
	if m.feedForm.focus == feedFieldCategory {
		b.WriteString(highlightStyle.Render("◂ " + category + " ▸"))
	} else {
		b.WriteString(category)
	}
	b.WriteString("\n\nCustom prompt instructions:\n")
	b.WriteString(m.feedForm.prompt.View())
	b.WriteString("\n\n")

	if m.feedForm.pending {
		b.WriteString(m.spinner.View() + infoStyle.Render(" Saving..."))
	} else {
		b.WriteString(infoStyle.Render("tab next field | enter save | esc cancel"))
	}
	return b.String()
}

func (m Model) viewPicker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Re-summarize Episode"))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("Choose a prompt category"))
	b.WriteString("\n\n")

	for i, opt := range types.CategoryOptions() {
		cursor := "  "
		label := opt.Label
		if i == m.picker.index {
			cursor = highlightStyle.Render("▸") + " "
			label = selectedStyle.Render(opt.Label)
		}
		b.WriteString(cursor + label + "\n")
	}

	b.WriteString("\n")
	if m.picker.pending {
		b.WriteString(m.spinner.View() + infoStyle.Render(" Queuing..."))
	} else {
		b.WriteString(infoStyle.Render("enter re-summarize | esc cancel"))
	}
	return b.String()
}

func (m Model) viewConfirm() string {
	if m.confirm == nil {
		return ""
	}
	content := m.confirm.prompt + "\n\n" + infoStyle.Render("y confirm | n cancel")
	return "\n" + boxStyle.Render(content)
}

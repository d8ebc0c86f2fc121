package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"poddash/audio"
	"poddash/config"
	"poddash/lifecycle"
	"poddash/types"
)

func testModel() Model {
	return New(config.Config{APIBaseURL: "http://localhost:1", ListLimit: 20, MediaDir: "/tmp"})
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	res, cmd := m.Update(msg)
	next, ok := res.(Model)
	if !ok {
		t.Fatalf("Update returned %T", res)
	}
	return next, cmd
}

func TestStaleListResultDiscarded(t *testing.T) {
	m := testModel()
	m.gen = 3
	stale := episodesLoadedMsg{gen: 2, list: &types.EpisodeList{Total: 99}}

	next, _ := update(t, m, stale)
	if next.episodes != nil {
		t.Fatal("a result from a navigated-away view must be discarded silently")
	}
	if next.listErr != nil || next.notice != "" {
		t.Fatal("a discarded result must produce no visible error")
	}
}

func TestFreshListResultApplied(t *testing.T) {
	m := testModel()
	m.listLoading = true
	m.cursor = 10
	list := &types.EpisodeList{
		Episodes: []types.Episode{{ID: "a", Status: types.StatusPending}},
		Total:    1,
	}

	next, _ := update(t, m, episodesLoadedMsg{gen: m.gen, list: list})
	if next.listLoading {
		t.Fatal("loading flag must clear")
	}
	if next.episodes == nil || next.episodes.Total != 1 {
		t.Fatalf("episodes = %+v", next.episodes)
	}
	if next.cursor != 0 {
		t.Fatalf("cursor = %d; must clamp into the new list", next.cursor)
	}
}

func TestDeleteNavigatesAwayFromDetail(t *testing.T) {
	m := testModel()
	m.view = viewDetail
	m.detailID = "ep1"
	m.episode = &types.Episode{ID: "ep1", Status: types.StatusFailed}

	done := actionDoneMsg{
		gen:       m.gen,
		episodeID: "ep1",
		action:    lifecycle.ActionDelete,
		outcome:   lifecycle.Outcome{OK: true, Message: "Episode deleted", NavigateAway: true},
	}
	next, _ := update(t, m, done)
	if next.view != viewDashboard {
		t.Fatalf("view = %d; deleting the displayed episode must navigate away", next.view)
	}
	if next.detailID != "" || next.episode != nil {
		t.Fatal("detail state must be cleared")
	}
	if next.notice != "Episode deleted" {
		t.Fatalf("notice = %q", next.notice)
	}
}

func TestDeleteElsewhereDoesNotNavigate(t *testing.T) {
	m := testModel()
	m.view = viewDetail
	m.detailID = "ep1"
	m.episode = &types.Episode{ID: "ep1", Status: types.StatusCompleted}

	done := actionDoneMsg{
		gen:       m.gen,
		episodeID: "other",
		action:    lifecycle.ActionDelete,
		outcome:   lifecycle.Outcome{OK: true, Message: "Episode deleted", NavigateAway: true},
	}
	next, _ := update(t, m, done)
	if next.view != viewDetail {
		t.Fatal("deleting a different episode must not close this detail view")
	}
}

func TestResummarizeKeyBlockedWithoutTranscript(t *testing.T) {
	m := testModel()
	m.view = viewDetail
	m.detailID = "ep1"
	m.episode = &types.Episode{ID: "ep1", Status: types.StatusCompleted}

	next, _ := update(t, m, keyMsg("S"))
	if next.view != viewDetail {
		t.Fatal("must stay on detail when re-summarize is illegal")
	}
	if next.notice == "" || !next.noticeErr {
		t.Fatalf("notice = %q; want the gating reason", next.notice)
	}
}

func TestResummarizeKeyOpensPickerWithTranscript(t *testing.T) {
	m := testModel()
	m.view = viewDetail
	m.detailID = "ep1"
	m.episode = &types.Episode{ID: "ep1", Status: types.StatusCompleted, Transcript: "words", PromptCategory: "science"}

	next, _ := update(t, m, keyMsg("S"))
	if next.view != viewResummarize {
		t.Fatal("must open the category picker")
	}
	if next.picker.category() != "science" {
		t.Fatalf("picker seeded with %q; want the episode's current category", next.picker.category())
	}
}

func TestPlayTickAdvancesActiveTransport(t *testing.T) {
	m := testModel()
	m.view = viewDetail
	m.narrator = audio.NewSynthetic("a summary with a handful of words")
	m.narratorActive = true
	m.narrator.Play()

	start := time.Now()
	m.lastTick = start.UnixMilli()
	next, cmd := update(t, m, playTickMsg{at: start.Add(2 * time.Second)})

	if got := next.narrator.Position(); got != 2 {
		t.Fatalf("position = %v; want 2s after a 2s tick at 1x", got)
	}
	if cmd == nil {
		t.Fatal("ticking must re-arm while playing")
	}
}

func TestPlayTickStopsWhenPaused(t *testing.T) {
	m := testModel()
	m.narrator = audio.NewSynthetic("text")
	m.narratorActive = true

	next, cmd := update(t, m, playTickMsg{at: time.Now()})
	if cmd != nil {
		t.Fatal("tick must not re-arm when nothing is playing")
	}
	if next.lastTick != 0 {
		t.Fatal("tick clock must reset")
	}
}

func TestNavigateBumpsGeneration(t *testing.T) {
	m := testModel()
	before := m.gen
	m.navigate(viewFeeds)
	if m.gen != before+1 {
		t.Fatalf("gen = %d; navigation must invalidate in-flight results", m.gen)
	}
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"

	"poddash/audio"
	"poddash/cache"
	"poddash/client"
	"poddash/config"
	"poddash/lifecycle"
	"poddash/types"
)

// viewID selects which surface the dashboard is showing.
type viewID int

const (
	viewDashboard viewID = iota
	viewDetail
	viewFeeds
	viewAddEpisode
	viewFeedForm
	viewResummarize
	viewConfirm
)

// statusFilters is the cycle the dashboard's status filter steps through.
var statusFilters = []types.Status{"", types.StatusCompleted, types.StatusProcessing, types.StatusPending, types.StatusFailed}

// confirmState is a pending destructive action awaiting a y/n answer.
type confirmState struct {
	prompt string
	run    tea.Cmd
	back   viewID
}

// Model is the dashboard TUI. All server state lives in the shared cache
// store; the model only holds the snapshots it is currently displaying plus
// per-view UI state.
type Model struct {
	cfg     config.Config
	api     *client.Client
	store   *cache.Store
	actions *lifecycle.Controller

	view viewID
	// gen invalidates in-flight async results on navigation: a result whose
	// generation is stale is dropped without touching the model.
	gen int

	width  int
	height int

	// dashboard
	episodes       *types.EpisodeList
	listLoading    bool
	listErr        error
	cursor         int
	statusFilter   int
	categoryFilter int
	showHidden     bool
	offset         int

	// episode detail
	detailID       string
	episode        *types.Episode
	detailLoading  bool
	detailNotFound bool
	detailErr      error
	showTranscript bool
	body           viewport.Model
	bodyReady      bool
	player         *audio.Transport
	narrator       *audio.Transport
	narratorActive bool
	audioTitle     string
	lastTick       int64

	// feeds
	feeds       *types.FeedList
	feeder      *types.FeederStatus
	feedCursor  int
	feedLoading bool
	feedErr     error

	// forms and dialogs
	episodeForm epForm
	feedForm    fdForm
	picker      pickerState
	confirm     *confirmState

	notice    string
	noticeErr bool
	noticeID  int

	spinner     spinner.Model
	cacheEvents chan string
}

// New wires the dashboard to its backend client and a fresh cache store.
func New(cfg config.Config) Model {
	base := cfg.APIBaseURL
	if base == "" {
		base = client.ResolveBaseURL()
	}
	api := client.New(base)
	store := cache.NewStore()

	m := Model{
		cfg:         cfg,
		api:         api,
		store:       store,
		actions:     lifecycle.NewController(api, store),
		spinner:     newSpinner(),
		cacheEvents: make(chan string, 256),
		listLoading: true,
	}

	// Bridge cache notifications into the program; views decide whether the
	// changed key concerns them.
	store.Subscribe(func(key string) {
		select {
		case m.cacheEvents <- key:
		default:
		}
	})

	return m
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle
	return s
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadEpisodes(m.listOptions()),
		m.loadFeederStatus(),
		waitForCacheEvent(m.cacheEvents),
		m.spinner.Tick,
	)
}

// listOptions builds the current dashboard filter set.
func (m Model) listOptions() client.ListOptions {
	return client.ListOptions{
		Status:   statusFilters[m.statusFilter],
		Category: types.CategoryOptions()[m.categoryFilter].Value,
		Limit:    m.cfg.ListLimit,
		Offset:   m.offset,
		Hidden:   m.showHidden,
	}
}

// selectedEpisode returns the episode under the dashboard cursor.
func (m Model) selectedEpisode() (types.Episode, bool) {
	if m.episodes == nil || m.cursor < 0 || m.cursor >= len(m.episodes.Episodes) {
		return types.Episode{}, false
	}
	return m.episodes.Episodes[m.cursor], true
}

// selectedFeed returns the feed under the manager cursor.
func (m Model) selectedFeed() (types.Feed, bool) {
	if m.feeds == nil || m.feedCursor < 0 || m.feedCursor >= len(m.feeds.Feeds) {
		return types.Feed{}, false
	}
	return m.feeds.Feeds[m.feedCursor], true
}

// activeTransport returns the transport the playback keys act on.
func (m *Model) activeTransport() *audio.Transport {
	if m.narratorActive {
		return m.narrator
	}
	if m.player != nil {
		return m.player
	}
	return m.narrator
}

// setNotice replaces the transient status line.
func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	m.notice = text
	m.noticeErr = isErr
	m.noticeID++
	return m.expireNotice(m.noticeID)
}

// navigate switches surfaces and invalidates every in-flight async result
// belonging to the old one.
func (m *Model) navigate(v viewID) {
	m.gen++
	m.view = v
}

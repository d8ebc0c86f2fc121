package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"poddash/client"
	"poddash/lifecycle"
	"poddash/types"
)

// epForm is the add-episode form: a single URL input.
type epForm struct {
	input   textinput.Model
	pending bool
}

func newEpisodeForm() epForm {
	in := textinput.New()
	in.Placeholder = "https://example.com/episode.mp3"
	in.CharLimit = 500
	in.Width = 60
	in.Focus()
	return epForm{input: in}
}

func (f epForm) url() string {
	return strings.TrimSpace(f.input.Value())
}

// fdForm is the add/edit feed form. An empty id means "create".
type fdForm struct {
	id       string
	url      textinput.Model
	title    textinput.Model
	prompt   textinput.Model
	category int
	focus    int
	pending  bool
}

const (
	feedFieldURL = iota
	feedFieldTitle
	feedFieldCategory
	feedFieldPrompt
	feedFieldCount
)

func newFeedForm(feed *types.Feed) fdForm {
	f := fdForm{}
	f.url = textinput.New()
	f.url.Placeholder = "https://example.com/feed.xml"
	f.url.CharLimit = 500
	f.url.Width = 60
	f.title = textinput.New()
	f.title.Placeholder = "Feed title"
	f.title.CharLimit = 200
	f.title.Width = 60
	f.prompt = textinput.New()
	f.prompt.Placeholder = "Extra summarization instructions (optional)"
	f.prompt.CharLimit = 1000
	f.prompt.Width = 60

	if feed != nil {
		f.id = feed.ID
		f.url.SetValue(feed.URL)
		f.title.SetValue(feed.Title)
		f.prompt.SetValue(feed.CustomPromptInstructions)
		f.category = categoryIndex(feed.Category)
	}
	f.url.Focus()
	return f
}

func (f *fdForm) setFocus(field int) {
	f.focus = field
	f.url.Blur()
	f.title.Blur()
	f.prompt.Blur()
	switch field {
	case feedFieldURL:
		f.url.Focus()
	case feedFieldTitle:
		f.title.Focus()
	case feedFieldPrompt:
		f.prompt.Focus()
	}
}

func (f fdForm) request() client.FeedRequest {
	return client.NewFeedRequest(
		strings.TrimSpace(f.url.Value()),
		strings.TrimSpace(f.title.Value()),
		types.CategoryOptions()[f.category].Value,
		strings.TrimSpace(f.prompt.Value()),
	)
}

// pickerState is the re-summarize category picker, seeded with the episode's
// current prompt category.
type pickerState struct {
	episode types.Episode
	index   int
	pending bool
}

func newPicker(ep types.Episode) pickerState {
	return pickerState{episode: ep, index: categoryIndex(ep.PromptCategory)}
}

func (p pickerState) category() types.Category {
	return types.CategoryOptions()[p.index].Value
}

func categoryIndex(c types.Category) int {
	for i, opt := range types.CategoryOptions() {
		if opt.Value == c {
			return i
		}
	}
	return 0
}

// actionKeyMap binds detail-view keys to lifecycle actions. Whether the
// action actually fires is decided by lifecycle.AllowedActions, never here.
var actionKeyMap = map[string]lifecycle.Action{
	"R": lifecycle.ActionRetry,
	"C": lifecycle.ActionReclean,
	"S": lifecycle.ActionResummarize,
	"D": lifecycle.ActionDelete,
	"H": lifecycle.ActionHide,
	"U": lifecycle.ActionRestore,
}

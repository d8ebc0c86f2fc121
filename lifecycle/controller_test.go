package lifecycle

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"poddash/cache"
	"poddash/client"
	"poddash/types"
)

type fakeAPI struct {
	calls []string
	err   error
}

func (f *fakeAPI) record(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeAPI) RetryEpisode(ctx context.Context, id string) error   { return f.record("retry") }
func (f *fakeAPI) RecleanEpisode(ctx context.Context, id string) error { return f.record("reclean") }
func (f *fakeAPI) DeleteEpisode(ctx context.Context, id string) error  { return f.record("delete") }
func (f *fakeAPI) HideEpisode(ctx context.Context, id string) error    { return f.record("hide") }
func (f *fakeAPI) RestoreEpisode(ctx context.Context, id string) error { return f.record("restore") }
func (f *fakeAPI) SummarizeAgain(ctx context.Context, id string, category types.Category) error {
	return f.record("resummarize:" + string(category))
}

func TestAllowedActionsPerStatus(t *testing.T) {
	cases := []struct {
		name    string
		episode types.Episode
		want    []Action
	}{
		{
			"pending",
			types.Episode{Status: types.StatusPending},
			[]Action{ActionHide, ActionDelete},
		},
		{
			"processing",
			types.Episode{Status: types.StatusProcessing},
			[]Action{ActionRetry, ActionHide, ActionDelete},
		},
		{
			"failed",
			types.Episode{Status: types.StatusFailed, Summary: "bad audio"},
			[]Action{ActionRetry, ActionHide, ActionDelete},
		},
		{
			"completed with transcript",
			types.Episode{Status: types.StatusCompleted, Transcript: "words"},
			[]Action{ActionReclean, ActionResummarize, ActionHide, ActionDelete},
		},
		{
			"completed without transcript",
			types.Episode{Status: types.StatusCompleted},
			[]Action{ActionReclean, ActionHide, ActionDelete},
		},
		{
			"hidden",
			types.Episode{Status: types.StatusCompleted, Transcript: "words", Hidden: true},
			[]Action{ActionRestore, ActionDelete},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := AllowedActions(c.episode)
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("AllowedActions = %v; want %v", got, c.want)
			}
		})
	}
}

func TestIllegalActionNeverReachesAPI(t *testing.T) {
	api := &fakeAPI{}
	ctrl := NewController(api, cache.NewStore())
	ep := types.Episode{ID: "ep1", Status: types.StatusCompleted}

	outcome := ctrl.Perform(context.Background(), ep, ActionResummarize, types.CategoryNone)
	if outcome.OK {
		t.Fatal("re-summarize without transcript must be rejected")
	}
	if len(api.calls) != 0 {
		t.Fatalf("API was called: %v", api.calls)
	}
	if outcome.Message != "episode has no transcript to re-summarize" {
		t.Fatalf("message = %q", outcome.Message)
	}

	outcome = ctrl.Perform(context.Background(), types.Episode{ID: "ep2", Status: types.StatusCompleted}, ActionRetry, "")
	if outcome.OK || len(api.calls) != 0 {
		t.Fatalf("retry on completed must be rejected locally; calls=%v", api.calls)
	}
}

func TestPerformInvalidatesCaches(t *testing.T) {
	api := &fakeAPI{}
	store := cache.NewStore()
	ctrl := NewController(api, store)
	ep := types.Episode{ID: "ep1", Status: types.StatusFailed}

	listKey := cache.EpisodeListKey("", "", 20, 0, false)
	store.Fetch(context.Background(), listKey, func(ctx context.Context) (interface{}, error) {
		return "list", nil
	})
	store.Fetch(context.Background(), cache.EpisodeKey("ep1"), func(ctx context.Context) (interface{}, error) {
		return "detail", nil
	})

	outcome := ctrl.Perform(context.Background(), ep, ActionRetry, "")
	if !outcome.OK {
		t.Fatalf("Perform failed: %s", outcome.Message)
	}
	if outcome.Message != "Episode queued for retry" {
		t.Fatalf("message = %q", outcome.Message)
	}
	if outcome.NavigateAway {
		t.Fatal("retry must not navigate away")
	}

	if snap, _ := store.Get(listKey); !snap.Stale {
		t.Fatal("episode list cache must be invalidated")
	}
	if snap, _ := store.Get(cache.EpisodeKey("ep1")); !snap.Stale {
		t.Fatal("episode detail cache must be invalidated")
	}
}

func TestDeleteNavigatesAway(t *testing.T) {
	ctrl := NewController(&fakeAPI{}, cache.NewStore())
	ep := types.Episode{ID: "ep1", Status: types.StatusPending}

	outcome := ctrl.Perform(context.Background(), ep, ActionDelete, "")
	if !outcome.OK || !outcome.NavigateAway {
		t.Fatalf("delete outcome = %+v; want OK and NavigateAway", outcome)
	}
}

func TestFailureLeavesCacheAndUsesServerMessage(t *testing.T) {
	api := &fakeAPI{err: &client.APIError{Kind: client.KindValidation, StatusCode: 400, Message: "Episode has no transcript yet"}}
	store := cache.NewStore()
	ctrl := NewController(api, store)
	ep := types.Episode{ID: "ep1", Status: types.StatusCompleted, Transcript: "words"}

	store.Fetch(context.Background(), cache.EpisodeKey("ep1"), func(ctx context.Context) (interface{}, error) {
		return "detail", nil
	})

	outcome := ctrl.Perform(context.Background(), ep, ActionResummarize, "tech")
	if outcome.OK {
		t.Fatal("expected failure")
	}
	if outcome.Message != "Episode has no transcript yet" {
		t.Fatalf("message = %q; server rejection must be shown verbatim", outcome.Message)
	}
	if snap, _ := store.Get(cache.EpisodeKey("ep1")); snap.Stale {
		t.Fatal("failed mutation must leave the cache untouched")
	}
}

func TestFailureGenericMessageForTransportErrors(t *testing.T) {
	api := &fakeAPI{err: errors.New("connection refused")}
	ctrl := NewController(api, cache.NewStore())
	ep := types.Episode{ID: "ep1", Status: types.StatusFailed}

	outcome := ctrl.Perform(context.Background(), ep, ActionRetry, "")
	if outcome.OK || outcome.Message != "Failed to retry episode" {
		t.Fatalf("outcome = %+v", outcome)
	}
}

func TestResummarizeForwardsCategory(t *testing.T) {
	api := &fakeAPI{}
	ctrl := NewController(api, cache.NewStore())
	ep := types.Episode{ID: "ep1", Status: types.StatusCompleted, Transcript: "words"}

	ctrl.Perform(context.Background(), ep, ActionResummarize, "science")
	if len(api.calls) != 1 || api.calls[0] != "resummarize:science" {
		t.Fatalf("calls = %v", api.calls)
	}
}

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"poddash/types"
)

func TestListEpisodesQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"episodes": [], "total": 0, "completed_count": 0, "processing_count": 0}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListEpisodes(context.Background(), ListOptions{
		Status:   types.StatusFailed,
		Category: types.CategoryNone,
		Limit:    20,
		Offset:   40,
	})
	if err != nil {
		t.Fatalf("ListEpisodes: %v", err)
	}
	if gotQuery != "limit=20&offset=40&status=failed" {
		t.Fatalf("query = %q; the _none sentinel must never reach the wire", gotQuery)
	}
}

func TestListEpisodesCategoryForwarded(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"episodes": [], "total": 0}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ListEpisodes(context.Background(), ListOptions{Category: "tech"}); err != nil {
		t.Fatalf("ListEpisodes: %v", err)
	}
	if gotQuery != "category=tech" {
		t.Fatalf("query = %q; want category=tech", gotQuery)
	}
}

func TestGetEpisodeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "episode not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetEpisode(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for unknown id")
	}
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound(%v) = false", err)
	}
}

func TestSummarizeAgainValidationMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Episode has no transcript to summarize"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.SummarizeAgain(context.Background(), "ep1", types.CategoryNone)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if msg := ValidationMessage(err); msg != "Episode has no transcript to summarize" {
		t.Fatalf("ValidationMessage = %q; want server text verbatim", msg)
	}
}

func TestServerErrorIsNotValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "database exploded"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.RetryEpisode(context.Background(), "ep1")
	if err == nil {
		t.Fatal("expected error")
	}
	if msg := ValidationMessage(err); msg != "" {
		t.Fatalf("5xx must not be treated as validation; got %q", msg)
	}
	if IsNotFound(err) {
		t.Fatal("5xx must not be treated as not-found")
	}
}

func TestSummarizeAgainOmitsEmptyCategoryBody(t *testing.T) {
	var gotBody string
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 256)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.SummarizeAgain(context.Background(), "ep1", types.CategoryNone); err != nil {
		t.Fatalf("SummarizeAgain: %v", err)
	}
	if gotPath != "/api/episodes/ep1/summarize-again" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotBody != "" {
		t.Fatalf("body = %q; sentinel category must send no body", gotBody)
	}

	if err := c.SummarizeAgain(context.Background(), "ep1", "science"); err != nil {
		t.Fatalf("SummarizeAgain: %v", err)
	}
	if gotBody != `{"category":"science"}` {
		t.Fatalf("body = %q", gotBody)
	}
}

func TestResolveBaseURL(t *testing.T) {
	t.Setenv("POD_API_URL", "")
	t.Setenv("POD_API_SCHEME", "")
	t.Setenv("POD_API_HOST", "pods.example.net")
	if got := ResolveBaseURL(); got != "http://pods.example.net:5002" {
		t.Fatalf("ResolveBaseURL() = %q", got)
	}

	t.Setenv("POD_API_URL", "https://override.example.net")
	if got := ResolveBaseURL(); got != "https://override.example.net" {
		t.Fatalf("ResolveBaseURL() = %q; explicit URL must win", got)
	}
}

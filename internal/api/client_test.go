package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bine130/pe-subnote/internal/model"
)

func TestListTopicsQueryAndToken(t *testing.T) {
	var gotAuth string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"title":"Soil Mechanics"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-123")

	catID := 7
	published := true
	topics, err := c.ListTopics(context.Background(), TopicQuery{
		CategoryID:  &catID,
		Search:      "retaining wall",
		IsPublished: &published,
		Skip:        20,
		Limit:       10,
	})
	if err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if len(topics) != 1 || topics[0].Title != "Soil Mechanics" {
		t.Fatalf("unexpected topics: %+v", topics)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	want := map[string]string{
		"category_id":  "7",
		"search":       "retaining wall",
		"is_published": "true",
		"skip":         "20",
		"limit":        "10",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Topic not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetTopic(context.Background(), 99)
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type %T, want *Error", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Detail != "Topic not found" {
		t.Errorf("got %+v", apiErr)
	}
	if !IsStatus(err, http.StatusNotFound) {
		t.Error("IsStatus(404) = false")
	}
}

func TestErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.DeleteNote(context.Background(), "n1")
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type %T, want *Error", err)
	}
	if apiErr.Detail != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("detail = %q", apiErr.Detail)
	}
}

func TestToggleBookmarkChecksAfterToggle(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			w.Write([]byte(`true`))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	bookmarked, err := c.ToggleBookmark(context.Background(), 5)
	if err != nil {
		t.Fatalf("ToggleBookmark: %v", err)
	}
	if !bookmarked {
		t.Error("bookmarked = false, want true")
	}
	wantCalls := []string{"POST /api/bookmarks", "GET /api/bookmarks/check/5"}
	if len(calls) != len(wantCalls) {
		t.Fatalf("calls = %v", calls)
	}
	for i := range wantCalls {
		if calls[i] != wantCalls[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], wantCalls[i])
		}
	}
}

func TestUpdateNotePartialPatch(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		body = string(buf)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"n1"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	x := 42.5
	y := 17.0
	_, err := c.UpdateNote(context.Background(), "n1", model.NoteUpdate{PositionX: &x, PositionY: &y})
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if body != `{"position_x":42.5,"position_y":17}` {
		t.Errorf("patch body = %s", body)
	}
}

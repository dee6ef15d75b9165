package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/echoplay/echoplay/internal/models"
)

func TestSearch_DecodesEnvelope(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"id":1,"title":"Song A","preview":"https://cdn/a.mp3","artist":{"name":"Artist A"},"album":{"cover_medium":"https://cdn/a.jpg"}},
			{"id":2,"title":"Song B","preview":null,"artist":{"name":"Artist B"},"album":null}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	tracks, err := c.Search(context.Background(), "rock & roll")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gotQuery != "rock & roll" {
		t.Errorf("query = %q; want %q", gotQuery, "rock & roll")
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].ID != 1 || tracks[0].Title != "Song A" || tracks[0].Artist.Name != "Artist A" {
		t.Errorf("unexpected first track: %+v", tracks[0])
	}
	if tracks[1].Preview != nil {
		t.Errorf("expected nil preview, got %v", *tracks[1].Preview)
	}
	if tracks[1].Album != nil {
		t.Errorf("expected nil album, got %+v", tracks[1].Album)
	}
}

func TestSearch_EmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	tracks, err := c.Search(context.Background(), "no such band")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if tracks == nil || len(tracks) != 0 {
		t.Errorf("expected empty slice, got %v", tracks)
	}
}

func TestSearch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	_, err := c.Search(context.Background(), "top")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("Search error = %v; want ErrDecode", err)
	}
}

func TestSearch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, nil)
	if _, err := c.Search(context.Background(), "top"); err == nil {
		t.Fatal("expected transport error, got nil")
	}
}

func strptr(s string) *string { return &s }

func TestPlayable(t *testing.T) {
	in := []models.Track{
		{ID: 1, Title: "ok", Preview: strptr("https://cdn/a.mp3")},
		{ID: 2, Title: "nil preview", Preview: nil},
		{ID: 3, Title: "empty preview", Preview: strptr("")},
		{ID: 4, Title: "relative", Preview: strptr("/a.mp3")},
		{ID: 5, Title: "also ok", Preview: strptr("http://cdn/b.mp3")},
	}

	got := Playable(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 playable tracks, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 5 {
		t.Errorf("unexpected playable set: %+v", got)
	}
}

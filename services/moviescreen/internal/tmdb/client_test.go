package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL + "/", APIKey: "k3y", Timeout: 2 * time.Second})
}

func TestListPopular_OK(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/popular" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("api_key"); got != "k3y" {
			t.Errorf("expected api_key=k3y, got %q", got)
		}
		_, _ = w.Write([]byte(`{"page":1,"results":[
			{"id":1,"title":"A","release_date":"2020-01-01","vote_average":7.5,"poster_path":"/a.jpg"},
			{"id":2,"title":"B","release_date":"2019-06-30","vote_average":6.1,"poster_path":"/b.jpg"}
		]}`))
	})

	movies, err := c.ListPopular(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].ID != 1 || movies[0].Title != "A" || movies[0].Rating != 7.5 || movies[0].PosterPath != "/a.jpg" {
		t.Fatalf("unexpected first movie: %+v", movies[0])
	}
	if movies[1].ReleaseDate != "2019-06-30" {
		t.Fatalf("unexpected release date %q", movies[1].ReleaseDate)
	}
}

func TestListPopular_EmptyResults(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"page":1}`))
	})
	movies, err := c.ListPopular(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movies == nil || len(movies) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", movies)
	}
}

func TestListPopular_StatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message":"Invalid API key"}`))
	})
	_, err := c.ListPopular(context.Background())
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
}

func TestListPopular_DecodeError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	})
	_, err := c.ListPopular(context.Background())
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestListPopular_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	c := New(Options{BaseURL: srv.URL, APIKey: "k"})
	if _, err := c.ListPopular(context.Background()); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestGetDetails_OK(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/42" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":42,"runtime":148,"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}]}`))
	})
	d, err := c.GetDetails(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Duration() != "148 Minutes" {
		t.Fatalf("unexpected duration %q", d.Duration())
	}
	if d.GenreLabel() != "Action | Science Fiction" {
		t.Fatalf("unexpected genre %q", d.GenreLabel())
	}
}

func TestGetDetails_NullFields(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"runtime":null,"genres":null}`))
	})
	d, err := c.GetDetails(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Runtime != nil || d.Genres != nil {
		t.Fatalf("expected absent fields, got %+v", d)
	}
	if d.Duration() != "0 Minutes" || d.GenreLabel() != "Unknown" {
		t.Fatalf("unexpected defaults: %q %q", d.Duration(), d.GenreLabel())
	}
}

func TestGetDetails_InvalidID(t *testing.T) {
	called := false
	c := newTestServer(t, func(http.ResponseWriter, *http.Request) { called = true })
	if _, err := c.GetDetails(context.Background(), 0); err == nil {
		t.Fatal("expected error for id 0")
	}
	if called {
		t.Fatal("no request should be made for an invalid id")
	}
}

func TestGetDetails_NotFound(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if _, err := c.GetDetails(context.Background(), 7); !errors.Is(err, ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
}

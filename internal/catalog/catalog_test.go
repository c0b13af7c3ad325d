package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"templates":[{"id":"cat-1","title":"Welcome","tags":["onboarding"],"body":"Hi {{client_name}}"}]}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 1 || got[0].ID != "cat-1" || got[0].Title != "Welcome" {
		t.Errorf("templates = %+v", got)
	}
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Fetch(context.Background()); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestFetch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Fetch(context.Background()); err == nil {
		t.Error("expected error for malformed body")
	}
}

func TestFetch_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	if _, err := New(srv.URL).Fetch(context.Background()); err == nil {
		t.Error("expected transport error")
	}
}

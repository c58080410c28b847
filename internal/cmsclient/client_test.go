package cmsclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/schema"
	urlkit "github.com/goliatone/go-urlkit"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "cms",
				BaseURL: baseURL,
				Paths: map[string]string{
					"page": "/pages/:slug",
				},
			},
		},
	})

	client, err := New(Options{
		Manager:     manager,
		LocaleQuery: "locale",
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestPageFetchesPublishedContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pages/landing" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("locale") != "en" {
			t.Fatalf("expected locale query, got %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(Page{
			Slug:    "landing",
			Locale:  "en",
			Title:   "Landing",
			Version: "01JNBX4Y7H0000000000000000",
			Content: map[string]nodes.Node{
				"hero.title": {ID: "hero.title", Kind: schema.KindText, Value: "Welcome"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	page, err := client.Page(context.Background(), "landing", "en")
	if err != nil {
		t.Fatalf("fetch page: %v", err)
	}
	if page.Title != "Landing" {
		t.Fatalf("expected title Landing, got %q", page.Title)
	}
	if page.Content["hero.title"].Value != "Welcome" {
		t.Fatalf("unexpected content: %+v", page.Content)
	}
}

func TestPageNormalizesSlug(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pages/customer-stories" {
			t.Fatalf("expected normalized slug, got %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Page{Slug: "customer-stories"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	page, err := client.Page(context.Background(), "Customer Stories", "")
	if err != nil {
		t.Fatalf("fetch page: %v", err)
	}
	if page.Slug != "customer-stories" {
		t.Fatalf("expected normalized slug, got %q", page.Slug)
	}
}

func TestPageNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Page(context.Background(), "missing", "en")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Slug != "missing" {
		t.Fatalf("expected slug in error, got %q", notFound.Slug)
	}
}

func TestPageRejectsEmptySlug(t *testing.T) {
	client := newTestClient(t, "https://cms.example.com")

	if _, err := client.Page(context.Background(), "   ", ""); err != ErrSlugRequired {
		t.Fatalf("expected ErrSlugRequired, got %v", err)
	}
}

func TestNewRequiresManager(t *testing.T) {
	if _, err := New(Options{}); err != ErrManagerRequired {
		t.Fatalf("expected ErrManagerRequired, got %v", err)
	}
}

func TestPageUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	if _, err := client.Page(context.Background(), "landing", ""); err == nil {
		t.Fatal("expected error on server failure")
	}
}

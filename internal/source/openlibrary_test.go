package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookrec/pkg/models"
)

func testLibrary(t *testing.T, handler http.HandlerFunc) *OpenLibrary {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	// High rate so tests never sleep on the limiter.
	return NewOpenLibrary(srv.URL, 2*time.Second, 1000)
}

func TestFetchMapsDocs(t *testing.T) {
	lib := testLibrary(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("q"); got != "dune" {
			t.Errorf("q = %q, want dune", got)
		}
		w.Write([]byte(`{
			"numFound": 2,
			"docs": [
				{
					"key": "/works/OL893415W",
					"title": "Dune",
					"author_name": ["Frank Herbert"],
					"subject": ["Science Fiction", "Adventure"],
					"first_publish_year": 1965,
					"cover_i": 11481354,
					"first_sentence": ["A beginning is the time for taking the most delicate care."]
				},
				{
					"key": "/books/OL123M"
				}
			]
		}`))
	})

	books, err := lib.Fetch(context.Background(), "dune", 10, None)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("len = %d, want 2", len(books))
	}

	got := books[0]
	want := models.Book{
		Title:         "Dune",
		Authors:       "Frank Herbert",
		Categories:    "Science Fiction, Adventure",
		Description:   "A beginning is the time for taking the most delicate care.",
		PublishedDate: "1965",
		ThumbnailURL:  "https://covers.openlibrary.org/b/id/11481354-M.jpg",
		SourceKey:     "/works/OL893415W",
	}
	if got != want {
		t.Errorf("mapped book = %+v, want %+v", got, want)
	}

	// Second doc is all fallbacks; its edition key is not a work key.
	fallback := books[1]
	if fallback.Title != models.UnknownTitle {
		t.Errorf("Title = %q, want sentinel", fallback.Title)
	}
	if fallback.Authors != models.UnknownAuthor {
		t.Errorf("Authors = %q, want sentinel", fallback.Authors)
	}
	if fallback.Categories != models.Uncategorized {
		t.Errorf("Categories = %q, want sentinel", fallback.Categories)
	}
	if fallback.PublishedDate != models.UnknownPubDate {
		t.Errorf("PublishedDate = %q, want sentinel", fallback.PublishedDate)
	}
	if fallback.ThumbnailURL != "" {
		t.Errorf("ThumbnailURL = %q, want empty", fallback.ThumbnailURL)
	}
	if fallback.SourceKey != "" {
		t.Errorf("SourceKey = %q, want empty for non-work key", fallback.SourceKey)
	}
}

func TestFetchKindParams(t *testing.T) {
	tests := []struct {
		kind  Kind
		param string
	}{
		{ByAuthor, "author"},
		{ByTitle, "title"},
		{BySubject, "subject"},
		{None, "q"},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			lib := testLibrary(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get(tt.param); got != "herbert" {
					t.Errorf("param %s = %q, want herbert", tt.param, got)
				}
				w.Write([]byte(`{"numFound": 0, "docs": []}`))
			})

			if _, err := lib.Fetch(context.Background(), "herbert", 5, tt.kind); err != nil {
				t.Fatalf("Fetch: %v", err)
			}
		})
	}
}

func TestFetchZeroDocsIsNotAnError(t *testing.T) {
	lib := testLibrary(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"numFound": 0, "docs": []}`))
	})

	books, err := lib.Fetch(context.Background(), "nothing", 5, None)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("len = %d, want 0", len(books))
	}
}

func TestFetchTruncatesToMax(t *testing.T) {
	lib := testLibrary(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"numFound": 3, "docs": [
			{"key": "/works/OL1W", "title": "A"},
			{"key": "/works/OL2W", "title": "B"},
			{"key": "/works/OL3W", "title": "C"}
		]}`))
	})

	books, err := lib.Fetch(context.Background(), "x", 2, None)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("len = %d, want 2", len(books))
	}
}

func TestFetchBadStatusIsUnavailable(t *testing.T) {
	lib := testLibrary(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := lib.Fetch(context.Background(), "x", 5, None)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestFetchMalformedBodyIsUnavailable(t *testing.T) {
	lib := testLibrary(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"docs": not json`))
	})

	_, err := lib.Fetch(context.Background(), "x", 5, None)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestWorkDetail(t *testing.T) {
	lib := testLibrary(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/works/OL893415W.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
			"title": "Dune",
			"description": {"type": "/type/text", "value": "Melange is everything."},
			"subjects": ["Science Fiction"]
		}`))
	})

	detail := lib.Work(context.Background(), "/works/OL893415W")
	if detail.Title != "Dune" {
		t.Errorf("Title = %q, want Dune", detail.Title)
	}
	if detail.Description != "Melange is everything." {
		t.Errorf("Description = %q", detail.Description)
	}
}

func TestWorkDetailPlainStringDescription(t *testing.T) {
	lib := testLibrary(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": "Dune", "description": "Plain text."}`))
	})

	detail := lib.Work(context.Background(), "/works/OL1W")
	if detail.Description != "Plain text." {
		t.Errorf("Description = %q, want plain string form", detail.Description)
	}
}

func TestWorkDetailFailuresAreEmpty(t *testing.T) {
	lib := testLibrary(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	if got := lib.Work(context.Background(), "/works/OL1W"); got.Title != "" || got.Description != "" || len(got.Subjects) != 0 {
		t.Errorf("failed lookup = %+v, want zero detail", got)
	}
	// Non-work keys never even hit the network.
	if got := lib.Work(context.Background(), "/books/OL1M"); got.Title != "" || got.Description != "" || len(got.Subjects) != 0 {
		t.Errorf("non-work key = %+v, want zero detail", got)
	}
}

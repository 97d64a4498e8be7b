package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestServeMirrorFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "search.json")
	if err := os.WriteFile(path, []byte(`{"numFound": 1, "docs": [{"title": "Dune"}]}`), 0o644); err != nil {
		t.Fatalf("write mirror file: %v", err)
	}

	w := httptest.NewRecorder()
	serveMirrorFile(path)(w, httptest.NewRequest(http.MethodGet, "/search.json", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestServeMirrorFileMissingIsNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	serveMirrorFile(filepath.Join(t.TempDir(), "nope.json"))(w, httptest.NewRequest(http.MethodGet, "/works/OL1W.json", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestServeMirrorFileRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write mirror file: %v", err)
	}

	w := httptest.NewRecorder()
	serveMirrorFile(path)(w, httptest.NewRequest(http.MethodGet, "/search.json", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

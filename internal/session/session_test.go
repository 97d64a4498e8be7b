package session

import (
	"testing"

	"bookrec/internal/catalog"
	"bookrec/pkg/models"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	base, err := catalog.Load([]models.Book{{Title: "Dune", Authors: "Frank Herbert"}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return NewManager(base)
}

func TestResolveFallsBackToBase(t *testing.T) {
	m := newManager(t)

	if got := m.Resolve(""); got.Len() != 1 {
		t.Errorf("empty id should resolve to base")
	}
	if got := m.Resolve("not-a-session"); got.Len() != 1 {
		t.Errorf("unknown id should resolve to base")
	}
}

func TestSessionCatalogIsIndependent(t *testing.T) {
	m := newManager(t)

	id := m.Create()
	if id == "" {
		t.Fatal("empty session id")
	}

	cat := m.Resolve(id)
	cat.Merge([]models.Book{{Title: "Hyperion"}})

	if m.Resolve("").Len() != 1 {
		t.Error("session merge leaked into the base catalog")
	}
	if m.Resolve(id).Len() != 2 {
		t.Error("session catalog did not keep its merge")
	}
}

func TestDrop(t *testing.T) {
	m := newManager(t)

	id := m.Create()
	if m.Count() != 1 {
		t.Fatalf("Count = %d, want 1", m.Count())
	}

	m.Drop(id)
	if m.Count() != 0 {
		t.Fatalf("Count after drop = %d, want 0", m.Count())
	}
	if got := m.Resolve(id); got.Len() != 1 {
		t.Error("dropped id should resolve to base")
	}
}

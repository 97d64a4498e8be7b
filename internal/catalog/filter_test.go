package catalog

import (
	"testing"

	"bookrec/pkg/models"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Load([]models.Book{
		{Title: "Dune", Authors: "Frank Herbert", Categories: "Science Fiction, Adventure"},
		{Title: "Dune Messiah", Authors: "Frank Herbert", Categories: "Science Fiction"},
		{Title: "The Art of War", Authors: "Sun Tzu", Categories: "Martial Arts, Strategy"},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cat
}

func TestByAuthorExactMatch(t *testing.T) {
	cat := testCatalog(t)

	books := cat.ByAuthor("Frank Herbert")
	if len(books) != 2 {
		t.Fatalf("ByAuthor = %d books, want 2", len(books))
	}
	if books[0].Title != "Dune" || books[1].Title != "Dune Messiah" {
		t.Errorf("catalog order not preserved: %q, %q", books[0].Title, books[1].Title)
	}

	if got := cat.ByAuthor("frank herbert"); got != nil {
		t.Errorf("author match should be case-sensitive, got %d books", len(got))
	}
}

func TestByCategorySubstring(t *testing.T) {
	cat := testCatalog(t)

	// Substring containment: "Fiction" matches "Science Fiction".
	if got := cat.ByCategory("Fiction"); len(got) != 2 {
		t.Errorf("ByCategory(Fiction) = %d books, want 2", len(got))
	}
	// The known broadening: "Art" also matches "Martial Arts".
	if got := cat.ByCategory("Art"); len(got) != 1 {
		t.Errorf("ByCategory(Art) = %d books, want 1", len(got))
	}
}

func TestSearchTitleCaseInsensitive(t *testing.T) {
	cat := testCatalog(t)

	if got := cat.SearchTitle("dune"); len(got) != 2 {
		t.Errorf("SearchTitle(dune) = %d books, want 2", len(got))
	}
	if got := cat.SearchTitle("WAR"); len(got) != 1 {
		t.Errorf("SearchTitle(WAR) = %d books, want 1", len(got))
	}
	if got := cat.SearchTitle("nothing here"); len(got) != 0 {
		t.Errorf("SearchTitle miss = %d books, want 0", len(got))
	}
}

func TestSummary(t *testing.T) {
	cat := testCatalog(t)

	got := cat.Summary()
	if got.TotalBooks != 3 {
		t.Errorf("TotalBooks = %d, want 3", got.TotalBooks)
	}
	if got.UniqueAuthors != 2 {
		t.Errorf("UniqueAuthors = %d, want 2", got.UniqueAuthors)
	}
	// Science Fiction, Adventure, Martial Arts, Strategy
	if got.UniqueCategories != 4 {
		t.Errorf("UniqueCategories = %d, want 4", got.UniqueCategories)
	}
}

package catalog

import (
	"strings"

	"bookrec/pkg/models"
)

// ByAuthor returns every book whose authors field exactly matches the
// given author string, in catalog order.
func (c *Catalog) ByAuthor(author string) []models.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []models.Book
	for _, b := range c.books {
		if b.Authors == author {
			out = append(out, b)
		}
	}
	return out
}

// ByCategory returns every book whose categories field contains the tag
// as a substring, in catalog order. Substring containment (not token
// equality) is deliberate: "Fiction" also matches "Science Fiction".
func (c *Catalog) ByCategory(tag string) []models.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []models.Book
	for _, b := range c.books {
		if strings.Contains(b.Categories, tag) {
			out = append(out, b)
		}
	}
	return out
}

// SearchTitle returns every book whose title contains the query,
// case-insensitively, in catalog order.
func (c *Catalog) SearchTitle(query string) []models.Book {
	q := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []models.Book
	for _, b := range c.books {
		if strings.Contains(strings.ToLower(b.Title), q) {
			out = append(out, b)
		}
	}
	return out
}

// Stats summarizes the collection for the statistics panel.
type Stats struct {
	TotalBooks       int `json:"total_books"`
	UniqueAuthors    int `json:"unique_authors"`
	UniqueCategories int `json:"unique_categories"`
}

// Summary returns the current collection statistics.
func (c *Catalog) Summary() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		TotalBooks:       len(c.books),
		UniqueAuthors:    len(c.authors),
		UniqueCategories: len(c.tags),
	}
}

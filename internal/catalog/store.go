package catalog

import (
	"sort"
	"strings"
	"sync"

	"bookrec/pkg/models"
)

// Catalog is the in-memory set of known books plus derived indexes
// (sorted distinct authors, sorted distinct category tags).
//
// Reads may proceed concurrently; merges are exclusive, because the
// derived indexes are rebuilt wholesale on every mutation.
type Catalog struct {
	mu      sync.RWMutex
	books   []models.Book
	byTitle map[string]int
	authors []string
	tags    []string
}

// Load builds a Catalog from the initial records. Every record is
// normalized first; records with an empty title are dropped, and
// duplicate titles keep the first occurrence. Returns ErrDataUnavailable
// when no usable record remains.
func Load(records []models.Book) (*Catalog, error) {
	c := &Catalog{byTitle: make(map[string]int, len(records))}
	for _, b := range records {
		nb := Normalize(b)
		if nb.Title == "" {
			continue
		}
		if _, seen := c.byTitle[nb.Title]; seen {
			continue
		}
		c.byTitle[nb.Title] = len(c.books)
		c.books = append(c.books, nb)
	}
	if len(c.books) == 0 {
		return nil, ErrDataUnavailable
	}
	c.rebuildIndexes()
	return c, nil
}

// Merge appends incoming books whose title is not already present.
// Existing records keep their relative order; new unique records are
// appended in input order, so merging the same set twice is a no-op.
// Returns the number of records actually added.
func (c *Catalog) Merge(incoming []models.Book) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := 0
	for _, b := range incoming {
		nb := Normalize(b)
		if nb.Title == "" {
			continue
		}
		if _, seen := c.byTitle[nb.Title]; seen {
			continue
		}
		c.byTitle[nb.Title] = len(c.books)
		c.books = append(c.books, nb)
		added++
	}
	if added > 0 {
		c.rebuildIndexes()
	}
	return added
}

// Normalize trims every textual field so downstream string operations
// never see padding or have to guard against absence markers.
func Normalize(b models.Book) models.Book {
	b.Title = strings.TrimSpace(b.Title)
	b.Authors = strings.TrimSpace(b.Authors)
	b.Categories = strings.TrimSpace(b.Categories)
	b.Description = strings.TrimSpace(b.Description)
	b.PublishedDate = strings.TrimSpace(b.PublishedDate)
	b.ThumbnailURL = strings.TrimSpace(b.ThumbnailURL)
	b.SourceKey = strings.TrimSpace(b.SourceKey)
	return b
}

// rebuildIndexes recomputes the derived author and category-tag lists.
// Callers must hold the write lock (or own the catalog exclusively, as
// Load does). Not incremental: catalogs stay small enough that a full
// rescan per merge is fine.
func (c *Catalog) rebuildIndexes() {
	authorSet := make(map[string]struct{})
	tagSet := make(map[string]string) // lowercase -> first-seen casing

	for _, b := range c.books {
		if b.Authors != "" {
			authorSet[b.Authors] = struct{}{}
		}
		for _, t := range Tokenize(b.Categories) {
			key := strings.ToLower(t)
			if _, seen := tagSet[key]; !seen {
				tagSet[key] = t
			}
		}
	}

	c.authors = c.authors[:0]
	for a := range authorSet {
		c.authors = append(c.authors, a)
	}
	sort.Strings(c.authors)

	c.tags = c.tags[:0]
	for _, t := range tagSet {
		c.tags = append(c.tags, t)
	}
	sort.Strings(c.tags)
}

// Books returns a snapshot copy of the catalog in stored order.
func (c *Catalog) Books() []models.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Book, len(c.books))
	copy(out, c.books)
	return out
}

// ByTitle returns the book with the exact title, if present.
func (c *Catalog) ByTitle(title string) (models.Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byTitle[title]
	if !ok {
		return models.Book{}, false
	}
	return c.books[idx], true
}

// Authors returns the sorted distinct author list.
func (c *Catalog) Authors() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.authors))
	copy(out, c.authors)
	return out
}

// Categories returns the sorted distinct category-tag list.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.tags))
	copy(out, c.tags)
	return out
}

// Len returns the number of books in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.books)
}

// Clone returns an independent copy of the catalog. Used to give each
// session its own catalog so one client's merges never leak into
// another's recommendations.
func (c *Catalog) Clone() *Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()

	nc := &Catalog{
		books:   make([]models.Book, len(c.books)),
		byTitle: make(map[string]int, len(c.byTitle)),
		authors: make([]string, len(c.authors)),
		tags:    make([]string, len(c.tags)),
	}
	copy(nc.books, c.books)
	copy(nc.authors, c.authors)
	copy(nc.tags, c.tags)
	for k, v := range c.byTitle {
		nc.byTitle[k] = v
	}
	return nc
}

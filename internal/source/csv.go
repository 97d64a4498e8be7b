package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"bookrec/internal/catalog"
	"bookrec/pkg/models"
)

// CSVSource serves book records from a local CSV file read once at
// open time. The file must carry at least the columns title, authors,
// categories, description; published_date and thumbnail_url are
// honored when present and any other column is ignored.
type CSVSource struct {
	path  string
	books []models.Book
}

// OpenCSV reads the whole file into memory. A missing or unreadable
// file wraps catalog.ErrDataUnavailable, since no catalog can be built
// without it.
func OpenCSV(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", catalog.ErrDataUnavailable, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read header of %s: %v", catalog.ErrDataUnavailable, path, err)
	}

	var books []models.Book
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", catalog.ErrDataUnavailable, path, err)
		}
		if len(row) == 0 {
			continue
		}

		title := valueAt(header, row, "title")
		if title == "" {
			continue
		}

		books = append(books, models.Book{
			Title:         title,
			Authors:       valueAt(header, row, "authors"),
			Categories:    valueAt(header, row, "categories"),
			Description:   valueAt(header, row, "description"),
			PublishedDate: valueAt(header, row, "published_date"),
			ThumbnailURL:  valueAt(header, row, "thumbnail_url"),
		})
	}

	return &CSVSource{path: path, books: books}, nil
}

func (s *CSVSource) Name() string { return "csv:" + s.path }

// Books returns the full static snapshot, for the initial catalog load.
func (s *CSVSource) Books() []models.Book {
	out := make([]models.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Fetch serves filtered rows from the static snapshot. The file is
// never re-read: this exists so a CSV source satisfies the same
// contract as the remote variant.
func (s *CSVSource) Fetch(_ context.Context, query string, max int, kind Kind) ([]models.Book, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []models.Book
	for _, b := range s.books {
		if max > 0 && len(out) >= max {
			break
		}
		if q == "" || matches(b, q, kind) {
			out = append(out, b)
		}
	}
	return out, nil
}

func matches(b models.Book, q string, kind Kind) bool {
	switch kind {
	case ByAuthor:
		return strings.Contains(strings.ToLower(b.Authors), q)
	case ByTitle:
		return strings.Contains(strings.ToLower(b.Title), q)
	case BySubject:
		return strings.Contains(strings.ToLower(b.Categories), q)
	default:
		return strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Authors), q) ||
			strings.Contains(strings.ToLower(b.Categories), q)
	}
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

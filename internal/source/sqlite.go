package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"bookrec/internal/catalog"
	"bookrec/pkg/models"
)

// SQLiteSource serves book records from a local SQLite file holding a
// `books` table with the same columns as the CSV variant. The file is
// a static dataset: it is opened read-only and never written.
type SQLiteSource struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens the database file. A missing or unopenable file
// wraps catalog.ErrDataUnavailable.
func OpenSQLite(path string) (*SQLiteSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", catalog.ErrDataUnavailable, path, err)
	}

	db, err := sql.Open("sqlite3", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", catalog.ErrDataUnavailable, path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", catalog.ErrDataUnavailable, path, err)
	}

	return &SQLiteSource{path: path, db: db}, nil
}

func (s *SQLiteSource) Name() string { return "sqlite:" + s.path }

func (s *SQLiteSource) Close() error { return s.db.Close() }

// Books loads the full table in insertion order, for the initial
// catalog load.
func (s *SQLiteSource) Books(ctx context.Context) ([]models.Book, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, authors, categories, description, published_date, thumbnail_url
		FROM books
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query books in %s: %v", catalog.ErrDataUnavailable, s.path, err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// Fetch runs a LIKE-filtered query against the books table, narrowed
// by kind the same way the CSV variant filters its snapshot.
func (s *SQLiteSource) Fetch(ctx context.Context, query string, max int, kind Kind) ([]models.Book, error) {
	sqlStr, args := buildFetchSQL(query, max, kind)

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch from %s: %v", ErrUnavailable, s.path, err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

func buildFetchSQL(query string, max int, kind Kind) (string, []any) {
	baseSelect := `
		SELECT title, authors, categories, description, published_date, thumbnail_url
		FROM books
	`

	var where []string
	var args []any

	if strings.TrimSpace(query) != "" {
		kw := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
		switch kind {
		case ByAuthor:
			where = append(where, "LOWER(authors) LIKE ?")
			args = append(args, kw)
		case ByTitle:
			where = append(where, "LOWER(title) LIKE ?")
			args = append(args, kw)
		case BySubject:
			where = append(where, "LOWER(categories) LIKE ?")
			args = append(args, kw)
		default:
			where = append(where, "(LOWER(title) LIKE ? OR LOWER(authors) LIKE ? OR LOWER(categories) LIKE ?)")
			args = append(args, kw, kw, kw)
		}
	}

	sqlStr := baseSelect
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}
	sqlStr += " ORDER BY rowid"

	if max > 0 {
		sqlStr += " LIMIT ?"
		args = append(args, max)
	}
	return sqlStr, args
}

func scanBooks(rows *sql.Rows) ([]models.Book, error) {
	var out []models.Book
	for rows.Next() {
		var (
			b             models.Book
			authors       sql.NullString
			categories    sql.NullString
			description   sql.NullString
			publishedDate sql.NullString
			thumbnailURL  sql.NullString
		)
		if err := rows.Scan(&b.Title, &authors, &categories, &description, &publishedDate, &thumbnailURL); err != nil {
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		b.Authors = authors.String
		b.Categories = categories.String
		b.Description = description.String
		b.PublishedDate = publishedDate.String
		b.ThumbnailURL = thumbnailURL.String
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("book rows: %w", err)
	}
	return out, nil
}

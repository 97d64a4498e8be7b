package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"bookrec/internal/catalog"
	"bookrec/internal/source"
	"bookrec/pkg/models"
	"bookrec/pkg/utils"
)

// Dumps the configured dataset back out as CSV, normalized and deduped
// the same way the api-server loads it. Handy for turning a SQLite
// dataset (or an Open Library seed) into a portable books.csv.
func main() {
	out := flag.String("out", "data/books-export.csv", "output CSV path")
	flag.Parse()

	cfg := utils.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		log.Fatalf("load catalog failed: %v", err)
	}

	if err := writeCSV(*out, cat.Books()); err != nil {
		log.Fatalf("export failed: %v", err)
	}
	log.Printf("exported %d books to %s", cat.Len(), *out)
}

func loadCatalog(ctx context.Context, cfg utils.Config) (*catalog.Catalog, error) {
	switch cfg.DataFormat {
	case "sqlite":
		src, err := source.OpenSQLite(cfg.DataPath)
		if err != nil {
			return nil, err
		}
		defer src.Close()
		books, err := src.Books(ctx)
		if err != nil {
			return nil, err
		}
		return catalog.Load(books)
	case "seed":
		library := source.NewOpenLibrary(cfg.OpenLibraryURL, cfg.FetchTimeout, cfg.FetchRate)
		books, err := library.Fetch(ctx, cfg.SeedQuery, cfg.SeedMax, source.None)
		if err != nil {
			return nil, err
		}
		return catalog.Load(books)
	default:
		src, err := source.OpenCSV(cfg.DataPath)
		if err != nil {
			return nil, err
		}
		return catalog.Load(src.Books())
	}
}

func writeCSV(path string, books []models.Book) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"title", "authors", "categories", "description", "published_date", "thumbnail_url"}); err != nil {
		return err
	}
	for _, b := range books {
		if err := w.Write([]string{
			b.Title,
			b.Authors,
			b.Categories,
			b.Description,
			b.PublishedDate,
			b.ThumbnailURL,
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

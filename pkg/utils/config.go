package utils

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the api-server needs, loaded from the
// environment (with an optional .env file for local development).
type Config struct {
	HTTPAddr string

	// Initial catalog source. DataFormat is "csv", "sqlite" or "seed";
	// "seed" builds the catalog from SeedQuery against the remote
	// search API instead of a local file.
	DataFormat string
	DataPath   string
	SeedQuery  string
	SeedMax    int

	OpenLibraryURL string
	FetchTimeout   time.Duration
	FetchRate      float64 // requests per second against the remote API
}

// LoadConfig reads BOOKREC_* environment variables, falling back to
// sensible defaults. A missing .env file is not an error.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	cfg := Config{
		HTTPAddr:       envOr("BOOKREC_HTTP_ADDR", ":8080"),
		DataFormat:     envOr("BOOKREC_DATA_FORMAT", "csv"),
		DataPath:       envOr("BOOKREC_DATA_PATH", "data/books.csv"),
		SeedQuery:      envOr("BOOKREC_SEED_QUERY", ""),
		SeedMax:        envIntOr("BOOKREC_SEED_MAX", 50),
		OpenLibraryURL: envOr("BOOKREC_OPENLIBRARY_URL", "https://openlibrary.org"),
		FetchTimeout:   time.Duration(envIntOr("BOOKREC_FETCH_TIMEOUT_SECONDS", 5)) * time.Second,
		FetchRate:      2, // ~2 requests/second against the search API
	}

	if raw := os.Getenv("BOOKREC_FETCH_RATE"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			cfg.FetchRate = v
		}
	}

	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

package models

// Book is the normalized, internal form of a book record used by the
// catalog and source layers.
//
// All external sources (CSV, SQLite, Open Library) are mapped into this
// structure first; the catalog only ever stores Books. Title is the
// identity key: within one catalog, titles are unique after merge.
type Book struct {
	Title         string `json:"title"`                    // identity key within a catalog
	Authors       string `json:"authors"`                  // possibly multi-author, joined by ", "
	Categories    string `json:"categories"`               // comma-separated free-text tags
	Description   string `json:"description"`              // may be empty
	PublishedDate string `json:"published_date,omitempty"` // free-form, empty when unknown
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`  // cover image URL (if any)
	SourceKey     string `json:"source_key,omitempty"`     // external work identifier, empty for local sources
}

// Sentinels used when a remote record is missing a field. Local sources
// normalize missing text to "" instead; the sentinels exist so fetched
// results are still usable for display and scoring.
const (
	UnknownTitle   = "Unknown Title"
	UnknownAuthor  = "Unknown Author"
	Uncategorized  = "Uncategorized"
	UnknownPubDate = "Unknown"
)

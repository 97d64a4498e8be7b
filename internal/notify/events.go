package notify

import "time"

// CatalogEvent announces that a remote search merged new records into
// a catalog.
type CatalogEvent struct {
	Type      string    `json:"type"` // "catalog.merge"
	SessionID string    `json:"session_id,omitempty"`
	Query     string    `json:"query"`
	Added     int       `json:"added"`
	Total     int       `json:"total"`
	At        time.Time `json:"at"`
}

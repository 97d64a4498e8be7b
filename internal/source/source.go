// Package source abstracts where raw book records originate: a static
// local dataset (CSV or SQLite) or the Open Library search API. Every
// variant maps its own format into models.Book before anything else
// sees the data.
package source

import (
	"context"
	"errors"
	"strings"

	"bookrec/pkg/models"
)

// ErrUnavailable means a fetch against a source failed (transport
// fault, bad status, undecodable body). Recoverable: callers warn and
// proceed with whatever catalog they already have.
var ErrUnavailable = errors.New("source: fetch failed")

// Kind narrows a search query to a specific field.
type Kind int

const (
	None Kind = iota
	ByAuthor
	ByTitle
	BySubject
)

// ParseKind maps the wire form ("author", "title", "subject") to a
// Kind; anything else is None (free-text search).
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "author":
		return ByAuthor
	case "title":
		return ByTitle
	case "subject":
		return BySubject
	default:
		return None
	}
}

func (k Kind) String() string {
	switch k {
	case ByAuthor:
		return "author"
	case ByTitle:
		return "title"
	case BySubject:
		return "subject"
	default:
		return "any"
	}
}

// Source is implemented by each provider of book records. Local
// variants serve from a static snapshot loaded once; the remote variant
// issues one network request per call.
type Source interface {
	Name() string
	Fetch(ctx context.Context, query string, max int, kind Kind) ([]models.Book, error)
}

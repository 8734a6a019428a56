// package services defines interface Lookup for querying book metadata over HTTP
//
// Open Library
package services

import (
	"context"

	"github.com/desertthunder/shelf/internal/models"
)

// Lookup defines the read-only metadata source consulted when a book is added by ISBN.
type Lookup interface {
	// BookByISBN returns the title and author references known for isbn.
	// Unknown ISBNs report [shared.ErrBookNotFound]; transport problems report [shared.ErrLookupUnavailable].
	BookByISBN(ctx context.Context, isbn string) (*models.BookMetadata, error)

	// AuthorByKey resolves an author reference from [models.BookMetadata.AuthorKeys] to a display name.
	AuthorByKey(ctx context.Context, key string) (string, error)

	// Name returns the name of the source (e.g., "Open Library")
	Name() string
}

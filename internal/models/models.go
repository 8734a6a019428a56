// package models defines the data model for the library catalog
package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/desertthunder/shelf/internal/shared"
)

// UnknownAuthor is stored when none of a looked-up book's author references resolve.
const UnknownAuthor = "Unknown Author"

// UnknownTitle is used when the metadata source returns a record without a title.
const UnknownTitle = "Unknown Title"

// Book is a single catalog entry. ISBN is the unique key.
type Book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// NewBook builds a [Book] with surrounding whitespace trimmed from every field.
func NewBook(title, author, isbn string) Book {
	return Book{
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
		ISBN:   strings.TrimSpace(isbn),
	}
}

// Validate reports the first empty field as [shared.ErrValidation].
func (b Book) Validate() error {
	switch {
	case strings.TrimSpace(b.Title) == "":
		return fmt.Errorf("%w: title cannot be empty", shared.ErrValidation)
	case strings.TrimSpace(b.Author) == "":
		return fmt.Errorf("%w: author cannot be empty", shared.ErrValidation)
	case strings.TrimSpace(b.ISBN) == "":
		return fmt.Errorf("%w: isbn cannot be empty", shared.ErrValidation)
	}
	return nil
}

func (b Book) String() string {
	return fmt.Sprintf("%s by %s (ISBN: %s)", b.Title, b.Author, b.ISBN)
}

// AuthorCount pairs an author display string with the number of books stored under it.
type AuthorCount struct {
	Name      string `json:"name"`
	BookCount int    `json:"book_count"`
}

// Stats summarizes a catalog snapshot.
type Stats struct {
	TotalBooks      int           `json:"total_books"`
	UniqueAuthors   int           `json:"unique_authors"`
	TopAuthors      []AuthorCount `json:"top_authors"`
	ProlificAuthors []AuthorCount `json:"prolific_authors"`
}

// MaxTopAuthors bounds [Stats.TopAuthors].
const MaxTopAuthors = 5

// ComputeStats derives [Stats] from books.
//
// Authors are compared by exact, case-sensitive match on the stored string.
// Ties keep the order in which an author first appears in books.
func ComputeStats(books []Book) Stats {
	stats := Stats{
		TotalBooks:      len(books),
		TopAuthors:      []AuthorCount{},
		ProlificAuthors: []AuthorCount{},
	}

	counts := make(map[string]int)
	order := []string{}
	for _, b := range books {
		if _, seen := counts[b.Author]; !seen {
			order = append(order, b.Author)
		}
		counts[b.Author]++
	}
	stats.UniqueAuthors = len(order)

	ranked := make([]AuthorCount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, AuthorCount{Name: name, BookCount: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].BookCount > ranked[j].BookCount
	})

	for i, ac := range ranked {
		if i < MaxTopAuthors {
			stats.TopAuthors = append(stats.TopAuthors, ac)
		}
		if ac.BookCount > 1 {
			stats.ProlificAuthors = append(stats.ProlificAuthors, ac)
		}
	}
	return stats
}

// BookMetadata is what the lookup source knows about an ISBN before author references are resolved.
type BookMetadata struct {
	Title      string
	AuthorKeys []string
	ISBN       string // as echoed by the source; never stored
}

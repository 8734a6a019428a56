package repositories

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// CatalogStore holds the book collection in memory and mirrors it to a JSON file.
//
// It performs no uniqueness checks and no locking; the owning catalog does both.
type CatalogStore struct {
	path  string
	books []models.Book
}

// bookRecord is the on-disk shape. Pointers distinguish a missing key from an empty string.
type bookRecord struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	ISBN   *string `json:"isbn"`
}

// NewCatalogStore creates an empty store backed by the file at path.
func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path, books: []models.Book{}}
}

// Path returns the backing file location.
func (s *CatalogStore) Path() string { return s.path }

// Len returns the number of stored books.
func (s *CatalogStore) Len() int { return len(s.books) }

// Load replaces the collection with the contents of the backing file.
//
// A missing file yields an empty collection. Anything else that prevents a clean parse is reported as
// [shared.ErrStorage] and leaves the current collection untouched, so a later Save cannot clobber data it never read.
func (s *CatalogStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.books = []models.Book{}
			return nil
		}
		return fmt.Errorf("%w: failed to read %s: %v", shared.ErrStorage, s.path, err)
	}

	books, err := decodeBooks(data)
	if err != nil {
		return fmt.Errorf("%w: malformed catalog %s: %v", shared.ErrStorage, s.path, err)
	}

	s.books = books
	return nil
}

func decodeBooks(data []byte) ([]models.Book, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("expected a JSON array")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var records []bookRecord
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON array")
	}

	books := make([]models.Book, 0, len(records))
	for i, rec := range records {
		if rec.Title == nil || rec.Author == nil || rec.ISBN == nil {
			return nil, fmt.Errorf("record %d: title, author and isbn are required", i)
		}
		books = append(books, models.Book{Title: *rec.Title, Author: *rec.Author, ISBN: *rec.ISBN})
	}
	return books, nil
}

// Save writes the full collection to a temporary file next to the target and renames it into place.
func (s *CatalogStore) Save() error {
	data, err := shared.MarshalJSON(s.books, true)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", shared.ErrStorage, err)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to write %s: %v", shared.ErrStorage, s.path, cause)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to close temp file: %v", shared.ErrStorage, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to replace %s: %v", shared.ErrStorage, s.path, err)
	}
	return nil
}

// All returns a copy of the collection in insertion order.
func (s *CatalogStore) All() []models.Book {
	out := make([]models.Book, len(s.books))
	copy(out, s.books)
	return out
}

// FindByISBN returns the book stored under isbn.
func (s *CatalogStore) FindByISBN(isbn string) (models.Book, bool) {
	for _, b := range s.books {
		if b.ISBN == isbn {
			return b, true
		}
	}
	return models.Book{}, false
}

// Insert appends book. Callers check uniqueness first.
func (s *CatalogStore) Insert(book models.Book) {
	s.books = append(s.books, book)
}

// Reset replaces the in-memory collection with a copy of books without touching the file.
func (s *CatalogStore) Reset(books []models.Book) {
	s.books = append(make([]models.Book, 0, len(books)), books...)
}

// RemoveByISBN deletes the first book stored under isbn and returns it.
func (s *CatalogStore) RemoveByISBN(isbn string) (models.Book, error) {
	for i, b := range s.books {
		if b.ISBN == isbn {
			s.books = slices.Delete(s.books, i, i+1)
			return b, nil
		}
	}
	return models.Book{}, fmt.Errorf("%w: %s", shared.ErrBookNotFound, isbn)
}

// package tasks implements catalog operations on top of the file-backed store.
//
// The core abstraction is Catalog, which validates input, enforces ISBN uniqueness, and persists every mutation.
package tasks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/repositories"
	"github.com/desertthunder/shelf/internal/services"
	"github.com/desertthunder/shelf/internal/shared"
)

// Catalog applies the library's rules to a [repositories.CatalogStore].
//
// All operations are serialized by a single mutex. Metadata lookups run outside the lock.
type Catalog struct {
	mu     sync.Mutex
	store  *repositories.CatalogStore
	lookup services.Lookup
	logger *log.Logger
}

// NewCatalog creates a Catalog that exclusively owns store. lookup may be nil, in which case [Catalog.AddByISBN] always
// reports [shared.ErrLookupUnavailable].
func NewCatalog(store *repositories.CatalogStore, lookup services.Lookup, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Catalog{
		store:  store,
		lookup: lookup,
		logger: shared.WithLogger(logger, "component", "catalog"),
	}
}

// Open loads the persisted catalog. It must be called once before any other operation.
func (c *Catalog) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Load(); err != nil {
		return err
	}
	c.logger.Debug("catalog loaded", "path", c.store.Path(), "books", c.store.Len())
	return nil
}

// Path returns the location of the backing file.
func (c *Catalog) Path() string {
	return c.store.Path()
}

// AddManual stores a book from caller-supplied fields.
func (c *Catalog) AddManual(ctx context.Context, title, author, isbn string) (models.Book, error) {
	book := models.NewBook(title, author, isbn)
	if err := book.Validate(); err != nil {
		return models.Book{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.insert(book); err != nil {
		return models.Book{}, err
	}
	c.logger.Info("book added", "isbn", book.ISBN, "source", "manual")
	return book, nil
}

// AddByISBN fetches metadata for isbn and stores the result under the caller's ISBN.
func (c *Catalog) AddByISBN(ctx context.Context, isbn string) (models.Book, error) {
	return c.AddByISBNWithProgress(ctx, isbn, nil)
}

// AddByISBNWithProgress is [Catalog.AddByISBN] with progress reporting.
//
// The duplicate check happens before any network call and again before insertion, since the lock is released while
// the lookup runs. A ctx that ends during the lookup aborts the add with nothing stored.
func (c *Catalog) AddByISBNWithProgress(ctx context.Context, isbn string, progress chan<- ProgressUpdate) (models.Book, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return models.Book{}, fmt.Errorf("%w: isbn cannot be empty", shared.ErrValidation)
	}
	if c.lookup == nil {
		return models.Book{}, fmt.Errorf("%w: no lookup service configured", shared.ErrLookupUnavailable)
	}

	if _, exists := c.Find(isbn); exists {
		return models.Book{}, fmt.Errorf("%w: %s", shared.ErrDuplicateISBN, isbn)
	}

	sendProgress(progress, lookupEditionUpdate(isbn))
	meta, err := c.lookup.BookByISBN(ctx, isbn)
	if err != nil {
		c.logger.Debug("lookup failed", "isbn", isbn, "service", c.lookup.Name(), "error", err)
		return models.Book{}, err
	}

	resolutions := resolveAuthors(ctx, c.lookup, meta.AuthorKeys, progress)
	if err := ctx.Err(); err != nil {
		c.logger.Debug("add abandoned after lookup", "isbn", isbn, "error", err)
		return models.Book{}, fmt.Errorf("%w: %w", shared.ErrLookupUnavailable, err)
	}
	for _, r := range resolutions {
		if r.Err != nil {
			c.logger.Warn("author lookup failed", "isbn", isbn, "key", r.Key, "error", r.Err)
		}
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = models.UnknownTitle
	}
	book := models.NewBook(title, AuthorDisplay(resolutions), isbn)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.insert(book); err != nil {
		return models.Book{}, err
	}
	sendProgress(progress, savedBookUpdate(book))
	c.logger.Info("book added", "isbn", book.ISBN, "source", c.lookup.Name())
	return book, nil
}

// Remove deletes the book stored under isbn and returns it.
func (c *Catalog) Remove(ctx context.Context, isbn string) (models.Book, error) {
	isbn = strings.TrimSpace(isbn)

	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.store.All()
	book, err := c.store.RemoveByISBN(isbn)
	if err != nil {
		return models.Book{}, err
	}
	if err := c.persist(snapshot); err != nil {
		return models.Book{}, err
	}
	c.logger.Info("book removed", "isbn", isbn)
	return book, nil
}

// Find returns the book stored under isbn.
func (c *Catalog) Find(isbn string) (models.Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.FindByISBN(strings.TrimSpace(isbn))
}

// List returns a snapshot of the catalog in insertion order.
func (c *Catalog) List() []models.Book {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.All()
}

// Stats summarizes the current catalog.
func (c *Catalog) Stats() models.Stats {
	return models.ComputeStats(c.List())
}

// insert enforces uniqueness, appends, and persists. Callers hold c.mu.
func (c *Catalog) insert(book models.Book) error {
	if _, exists := c.store.FindByISBN(book.ISBN); exists {
		return fmt.Errorf("%w: %s", shared.ErrDuplicateISBN, book.ISBN)
	}

	snapshot := c.store.All()
	c.store.Insert(book)
	return c.persist(snapshot)
}

// persist saves the store, restoring snapshot when the write fails. Callers hold c.mu.
func (c *Catalog) persist(snapshot []models.Book) error {
	if err := c.store.Save(); err != nil {
		c.store.Reset(snapshot)
		c.logger.Error("failed to save catalog", "path", c.store.Path(), "error", err)
		return err
	}
	return nil
}

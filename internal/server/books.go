package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/tasks"
)

// MaxBodyBytes bounds POST bodies.
const MaxBodyBytes = 1 << 20

var booksRoutes = []string{
	"GET /books",
	"POST /books",
	"GET /books/{isbn}",
	"DELETE /books/{isbn}",
	"GET /stats",
}

// CreateBookRequest is the POST /books body. With only isbn set the book is looked up; with title or author present
// all three fields are taken as given.
type CreateBookRequest struct {
	ISBN   string  `json:"isbn"`
	Title  *string `json:"title,omitempty"`
	Author *string `json:"author,omitempty"`
}

// Manual reports whether the request carries its own title or author.
func (c CreateBookRequest) Manual() bool {
	return c.Title != nil || c.Author != nil
}

// StatsResponse is the GET /stats body.
type StatsResponse struct {
	TotalBooks    int                  `json:"total_books"`
	UniqueAuthors int                  `json:"unique_authors"`
	TopAuthors    []models.AuthorCount `json:"top_authors"`
}

// BooksHandler serves the catalog resource.
type BooksHandler struct {
	catalog *tasks.Catalog
	logger  *log.Logger
}

func NewBooksHandler(catalog *tasks.Catalog, logger *log.Logger) *BooksHandler {
	return &BooksHandler{catalog: catalog, logger: logger}
}

func (h *BooksHandler) Routes() []string {
	return booksRoutes
}

func (h *BooksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case "GET /books":
		writeJSON(w, http.StatusOK, h.catalog.List())
	case "POST /books":
		h.create(w, r)
	case "GET /books/{isbn}":
		h.get(w, r)
	case "DELETE /books/{isbn}":
		h.remove(w, r)
	case "GET /stats":
		stats := h.catalog.Stats()
		writeJSON(w, http.StatusOK, StatsResponse{
			TotalBooks:    stats.TotalBooks,
			UniqueAuthors: stats.UniqueAuthors,
			TopAuthors:    stats.TopAuthors,
		})
	default:
		writeError(w, r, http.StatusNotFound, "Not found")
	}
}

func (h *BooksHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var (
		book models.Book
		err  error
	)
	if req.Manual() {
		book, err = h.catalog.AddManual(r.Context(), deref(req.Title), deref(req.Author), req.ISBN)
	} else {
		book, err = h.catalog.AddByISBN(r.Context(), req.ISBN)
	}
	if err != nil {
		h.fail(w, r, strings.TrimSpace(req.ISBN), err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (h *BooksHandler) get(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	book, ok := h.catalog.Find(isbn)
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("Book with ISBN %s not found", isbn))
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BooksHandler) remove(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	book, err := h.catalog.Remove(r.Context(), isbn)
	if err != nil {
		if errors.Is(err, shared.ErrBookNotFound) {
			writeError(w, r, http.StatusNotFound, fmt.Sprintf("Book with ISBN %s not found", isbn))
			return
		}
		h.fail(w, r, isbn, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Book with ISBN %s successfully removed", isbn),
		Book:    book,
	})
}

// fail writes the response for a catalog error.
func (h *BooksHandler) fail(w http.ResponseWriter, r *http.Request, isbn string, err error) {
	status := errorStatus(err)

	var detail string
	switch status {
	case http.StatusConflict:
		detail = fmt.Sprintf("Book with ISBN %s already exists in the library", isbn)
	case http.StatusNotFound:
		detail = fmt.Sprintf("Could not find book with ISBN %s in Open Library API", isbn)
	case http.StatusBadGateway:
		detail = "Book lookup service is unavailable"
	case http.StatusUnprocessableEntity:
		detail = err.Error()
	default:
		detail = "Failed to update library"
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "isbn", isbn, "status", status, "error", err,
			"request_id", RequestIDFrom(r.Context()))
	}
	writeError(w, r, status, detail)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		default:
			return fmt.Errorf("invalid request body: %v", err)
		}
	}
	if dec.More() {
		return errors.New("invalid request body: unexpected data after JSON object")
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

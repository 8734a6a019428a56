package repositories

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	tu "github.com/desertthunder/shelf/internal/testing"
	"pgregory.net/rapid"
)

func newTestStore(t *testing.T) *CatalogStore {
	t.Helper()
	return NewCatalogStore(filepath.Join(t.TempDir(), "library.json"))
}

func TestCatalogStore(t *testing.T) {
	orwell := models.Book{Title: "1984", Author: "George Orwell", ISBN: "978-0451524935"}
	farm := models.Book{Title: "Animal Farm", Author: "George Orwell", ISBN: "978-0451526342"}

	t.Run("Load", func(t *testing.T) {
		t.Run("missing file yields empty collection", func(t *testing.T) {
			store := newTestStore(t)
			if err := store.Load(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if store.Len() != 0 {
				t.Errorf("expected empty store, got %d books", store.Len())
			}
		})

		t.Run("reads books in file order", func(t *testing.T) {
			store := newTestStore(t)
			doc := `[
  {"title": "Animal Farm", "author": "George Orwell", "isbn": "978-0451526342"},
  {"title": "1984", "author": "George Orwell", "isbn": "978-0451524935"}
]`
			if err := os.WriteFile(store.Path(), []byte(doc), 0644); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}

			if err := store.Load(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			books := store.All()
			if len(books) != 2 {
				t.Fatalf("expected 2 books, got %d", len(books))
			}
			if books[0] != farm || books[1] != orwell {
				t.Errorf("unexpected books %+v", books)
			}
		})

		tt := []struct {
			name string
			doc  string
		}{
			{name: "invalid JSON", doc: `[{"title": "1984",`},
			{name: "empty file", doc: ``},
			{name: "null document", doc: `null`},
			{name: "object instead of array", doc: `{"title": "1984", "author": "George Orwell", "isbn": "1"}`},
			{name: "missing key", doc: `[{"title": "1984", "author": "George Orwell"}]`},
			{name: "unknown key", doc: `[{"title": "1984", "author": "George Orwell", "isbn": "1", "year": 1949}]`},
			{name: "non-string value", doc: `[{"title": 1984, "author": "George Orwell", "isbn": "1"}]`},
			{name: "null element", doc: `[null]`},
			{name: "trailing data", doc: `[] []`},
		}

		for _, tc := range tt {
			t.Run("malformed: "+tc.name, func(t *testing.T) {
				store := newTestStore(t)
				store.Insert(orwell)
				if err := os.WriteFile(store.Path(), []byte(tc.doc), 0644); err != nil {
					t.Fatalf("failed to write fixture: %v", err)
				}

				err := store.Load()
				if !errors.Is(err, shared.ErrStorage) {
					t.Fatalf("expected ErrStorage, got %v", err)
				}
				if store.Len() != 1 {
					t.Errorf("failed load should leave collection untouched, got %d books", store.Len())
				}
			})
		}

		t.Run("unreadable path", func(t *testing.T) {
			store := NewCatalogStore(t.TempDir())
			if err := store.Load(); !errors.Is(err, shared.ErrStorage) {
				t.Errorf("expected ErrStorage for a directory, got %v", err)
			}
		})
	})

	t.Run("Save", func(t *testing.T) {
		t.Run("empty collection writes an empty array", func(t *testing.T) {
			store := newTestStore(t)
			if err := store.Save(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got := strings.TrimSpace(tu.MustReadFile(t, store.Path())); got != "[]" {
				t.Errorf("expected [], got %q", got)
			}
		})

		t.Run("writes indented document with exact keys", func(t *testing.T) {
			store := newTestStore(t)
			store.Insert(orwell)
			if err := store.Save(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			want := "[\n  {\n    \"title\": \"1984\",\n    \"author\": \"George Orwell\",\n    \"isbn\": \"978-0451524935\"\n  }\n]\n"
			if got := tu.MustReadFile(t, store.Path()); got != want {
				t.Errorf("unexpected document:\n%s", got)
			}
		})

		t.Run("leaves no temp files behind", func(t *testing.T) {
			store := newTestStore(t)
			store.Insert(orwell)
			if err := store.Save(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			entries, err := os.ReadDir(filepath.Dir(store.Path()))
			if err != nil {
				t.Fatalf("failed to read dir: %v", err)
			}
			if len(entries) != 1 {
				t.Errorf("expected only the catalog file, got %d entries", len(entries))
			}
		})

		t.Run("missing directory is a storage error", func(t *testing.T) {
			store := NewCatalogStore(filepath.Join(t.TempDir(), "missing", "library.json"))
			if err := store.Save(); !errors.Is(err, shared.ErrStorage) {
				t.Errorf("expected ErrStorage, got %v", err)
			}
		})
	})

	t.Run("FindByISBN", func(t *testing.T) {
		store := newTestStore(t)
		store.Insert(orwell)

		if got, ok := store.FindByISBN(orwell.ISBN); !ok || got != orwell {
			t.Errorf("expected to find %v, got %v (ok=%v)", orwell, got, ok)
		}
		if _, ok := store.FindByISBN("0000"); ok {
			t.Error("expected unknown ISBN to be absent")
		}
	})

	t.Run("RemoveByISBN", func(t *testing.T) {
		store := newTestStore(t)
		store.Insert(orwell)
		store.Insert(farm)

		removed, err := store.RemoveByISBN(orwell.ISBN)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if removed != orwell {
			t.Errorf("expected removed book %v, got %v", orwell, removed)
		}
		if books := store.All(); len(books) != 1 || books[0] != farm {
			t.Errorf("unexpected remaining books %+v", books)
		}

		if _, err := store.RemoveByISBN(orwell.ISBN); !errors.Is(err, shared.ErrBookNotFound) {
			t.Errorf("expected ErrBookNotFound, got %v", err)
		}
	})

	t.Run("All returns a copy", func(t *testing.T) {
		store := newTestStore(t)
		store.Insert(orwell)

		books := store.All()
		books[0].Title = "changed"

		if got, _ := store.FindByISBN(orwell.ISBN); got.Title != "1984" {
			t.Errorf("mutating All() result changed the store: %v", got)
		}
	})

	t.Run("Reset", func(t *testing.T) {
		store := newTestStore(t)
		store.Insert(orwell)
		snapshot := store.All()
		store.Insert(farm)

		store.Reset(snapshot)
		if store.Len() != 1 {
			t.Errorf("expected 1 book after reset, got %d", store.Len())
		}
	})
}

func genBook(t *rapid.T) models.Book {
	text := rapid.StringMatching(`[\p{L}\p{N} ,.'&-]{0,24}`)
	return models.Book{
		Title:  text.Draw(t, "title"),
		Author: text.Draw(t, "author"),
		ISBN:   rapid.StringMatching(`[0-9X-]{1,17}`).Draw(t, "isbn"),
	}
}

func TestCatalogStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	rapid.Check(t, func(rt *rapid.T) {
		books := rapid.SliceOf(rapid.Custom(genBook)).Draw(rt, "books")
		path := filepath.Join(dir, "library.json")

		store := NewCatalogStore(path)
		for _, b := range books {
			store.Insert(b)
		}
		if err := store.Save(); err != nil {
			rt.Fatalf("save failed: %v", err)
		}

		reloaded := NewCatalogStore(path)
		if err := reloaded.Load(); err != nil {
			rt.Fatalf("load failed: %v", err)
		}

		got := reloaded.All()
		if len(got) != len(books) {
			rt.Fatalf("expected %d books, got %d", len(books), len(got))
		}
		for i := range books {
			if got[i] != books[i] {
				rt.Fatalf("book %d: expected %+v, got %+v", i, books[i], got[i])
			}
		}
	})
}

package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/shelf/internal/shared"
)

func TestCatalogImport(t *testing.T) {
	t.Run("mixed results keep input order", func(t *testing.T) {
		c := newTestCatalog(t, orwellLookup())
		ctx := context.Background()

		if _, err := c.AddManual(ctx, "Anonymous Work", "Unknown", "0000000000"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		isbns := []string{"9780451524935", "", "0000000000", "9999999999", "9780262033848", "  "}
		progress := make(chan ProgressUpdate, 10)

		result, err := c.Import(ctx, progress, isbns, ImportOpts{NumWorkers: 3})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(progress)

		if result.Total != 4 {
			t.Errorf("expected blank entries to be ignored, got total %d", result.Total)
		}
		if result.SuccessCount != 2 || result.SkippedCount != 1 || result.FailedCount != 1 {
			t.Errorf("unexpected counts %+v", result)
		}

		want := []string{"9780451524935", "0000000000", "9999999999", "9780262033848"}
		for i, isbn := range want {
			if result.Results[i].ISBN != isbn {
				t.Errorf("result %d: expected %s, got %s", i, isbn, result.Results[i].ISBN)
			}
		}
		if !result.Results[1].Skipped || !errors.Is(result.Results[1].Error, shared.ErrDuplicateISBN) {
			t.Errorf("expected duplicate to be skipped, got %+v", result.Results[1])
		}
		if !errors.Is(result.Results[2].Error, shared.ErrBookNotFound) {
			t.Errorf("expected not found, got %+v", result.Results[2])
		}

		updates := 0
		for update := range progress {
			if update.Phase == ImportBooks {
				updates++
			}
		}
		if updates != 4 {
			t.Errorf("expected 4 import updates, got %d", updates)
		}

		if got := reload(t, c); len(got) != 3 {
			t.Errorf("expected 3 persisted books, got %d", len(got))
		}
	})

	t.Run("repeated isbn in input is stored once", func(t *testing.T) {
		c := newTestCatalog(t, orwellLookup())

		result, err := c.Import(context.Background(), nil, []string{"9780451524935", "9780451524935"}, ImportOpts{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.SuccessCount != 1 || result.SkippedCount != 1 {
			t.Errorf("unexpected counts %+v", result)
		}
		if len(c.List()) != 1 {
			t.Errorf("expected 1 book, got %d", len(c.List()))
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		c := newTestCatalog(t, orwellLookup())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := c.Import(ctx, nil, []string{"9780451524935", "9780262033848"}, ImportOpts{NumWorkers: 1})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if result == nil || len(result.Results) != 2 {
			t.Fatalf("expected partial result with 2 entries, got %+v", result)
		}
		if result.SuccessCount != 0 || result.FailedCount != 2 {
			t.Errorf("expected every entry to fail, got %+v", result)
		}
		if books := c.List(); len(books) != 0 {
			t.Errorf("expected nothing stored, got %+v", books)
		}
	})
}

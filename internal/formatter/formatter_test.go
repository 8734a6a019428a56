package formatter

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	th "github.com/desertthunder/shelf/internal/testing"
)

var books = []models.Book{
	{Title: "1984", Author: "George Orwell", ISBN: "978-0451524935"},
	{Title: "Good Omens", Author: "Terry Pratchett, Neil Gaiman", ISBN: "978-0060853983"},
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(books)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		want := "Title,Author,ISBN\n" +
			"1984,George Orwell,978-0451524935\n" +
			"Good Omens,\"Terry Pratchett, Neil Gaiman\",978-0060853983\n"
		if string(data) != want {
			t.Errorf("unexpected CSV:\n%s", data)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("with books", func(t *testing.T) {
			data, err := ExportToMarkdown([]models.Book{{Title: "A | B", Author: "C", ISBN: "1"}})
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)
			if !strings.HasPrefix(output, "# Library\n\n**Books**: 1\n") {
				t.Errorf("missing header, got: %s", output)
			}
			if !strings.Contains(output, `| 1 | A \| B | C | 1 |`) {
				t.Errorf("expected escaped row, got: %s", output)
			}
		})

		t.Run("empty", func(t *testing.T) {
			data, _ := ExportToMarkdown(nil)
			if !strings.Contains(string(data), "No books in the library yet") {
				t.Errorf("expected empty notice, got: %s", data)
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(books)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, " 1. 1984 by George Orwell (ISBN: 978-0451524935)\n") {
			t.Errorf("missing first line, got: %s", output)
		}
		if !strings.HasSuffix(output, "Total books: 2\n") {
			t.Errorf("missing total, got: %s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(nil)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if strings.TrimSpace(string(data)) != "[]" {
			t.Errorf("expected empty array, got %s", data)
		}
	})

	t.Run("Export", func(t *testing.T) {
		for _, format := range []string{"text", "TXT", "markdown", "md", "csv", "json", ""} {
			if _, err := Export(format, books); err != nil {
				t.Errorf("format %q: unexpected error %v", format, err)
			}
		}

		if _, err := Export("yaml", books); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected invalid flag error, got %v", err)
		}
	})
}

func TestStatsToText(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		output := string(StatsToText(models.ComputeStats(nil)))
		if output != "Total books: 0\n" {
			t.Errorf("unexpected output %q", output)
		}
	})

	t.Run("with prolific authors", func(t *testing.T) {
		stats := models.ComputeStats([]models.Book{
			{Title: "1984", Author: "George Orwell", ISBN: "1"},
			{Title: "Dune", Author: "Frank Herbert", ISBN: "2"},
			{Title: "Animal Farm", Author: "George Orwell", ISBN: "3"},
		})
		output := string(StatsToText(stats))

		for _, want := range []string{
			"Total books: 3\n",
			"Unique authors: 2\n",
			"Top authors:\n  • George Orwell: 2 books\n  • Frank Herbert: 1 book\n",
			"Authors with multiple books:\n  • George Orwell: 2 books\n",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output:\n%s", want, output)
			}
		}
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "exports", "library.csv")

		if err := WriteExport("csv", books, path); err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}

		th.AssertFileExists(t, path)
		if content := th.MustReadFile(t, path); !strings.HasPrefix(content, "Title,Author,ISBN\n") {
			t.Errorf("unexpected content %s", content)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		if err := WriteExport("csv", books, ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected missing argument, got %v", err)
		}
	})

	t.Run("unsupported format writes nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "library.yaml")
		if err := WriteExport("yaml", books, path); err == nil {
			t.Error("expected error")
		}
	})
}

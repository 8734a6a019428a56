// package formatter renders catalog books and statistics as CSV, Markdown, JSON, or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// Format names accepted by [Export].
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
)

// Formats lists every supported format name.
var Formats = []string{FormatText, FormatMarkdown, FormatCSV, FormatJSON}

// Export renders books in the named format. "md" and "txt" are accepted as aliases.
func Export(format string, books []models.Book) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText, "txt", "":
		return ExportToText(books)
	case FormatMarkdown, "md":
		return ExportToMarkdown(books)
	case FormatCSV:
		return ExportToCSV(books)
	case FormatJSON:
		return ExportToJSON(books)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q (want one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}
}

// ExportToCSV converts books to CSV format with columns: Title, Author, ISBN
func ExportToCSV(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Title", "Author", "ISBN"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, book := range books {
		if err := writer.Write([]string{book.Title, book.Author, book.ISBN}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders books as a Markdown table.
func ExportToMarkdown(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Library\n\n")
	fmt.Fprintf(&buf, "**Books**: %d\n\n", len(books))

	if len(books) == 0 {
		buf.WriteString("_No books in the library yet._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Title | Author | ISBN |\n")
	buf.WriteString("|---|-------|--------|------|\n")
	for i, book := range books {
		fmt.Fprintf(&buf, "| %d | %s | %s | %s |\n", i+1, escapeCell(book.Title), escapeCell(book.Author), escapeCell(book.ISBN))
	}

	return buf.Bytes(), nil
}

// ExportToText renders a numbered list, one book per line.
func ExportToText(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer

	if len(books) == 0 {
		buf.WriteString("No books in the library yet.\n")
	}
	for i, book := range books {
		fmt.Fprintf(&buf, "%2d. %s\n", i+1, book)
	}
	fmt.Fprintf(&buf, "\nTotal books: %d\n", len(books))

	return buf.Bytes(), nil
}

// ExportToJSON renders books as the same indented array the catalog file uses.
func ExportToJSON(books []models.Book) ([]byte, error) {
	if books == nil {
		books = []models.Book{}
	}
	return shared.MarshalJSON(books, true)
}

// StatsToText renders catalog statistics for terminal output.
func StatsToText(stats models.Stats) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Total books: %d\n", stats.TotalBooks)
	if stats.TotalBooks == 0 {
		return buf.Bytes()
	}
	fmt.Fprintf(&buf, "Unique authors: %d\n", stats.UniqueAuthors)

	if len(stats.TopAuthors) > 0 {
		buf.WriteString("\nTop authors:\n")
		for _, a := range stats.TopAuthors {
			fmt.Fprintf(&buf, "  • %s: %s\n", a.Name, pluralBooks(a.BookCount))
		}
	}
	if len(stats.ProlificAuthors) > 0 {
		buf.WriteString("\nAuthors with multiple books:\n")
		for _, a := range stats.ProlificAuthors {
			fmt.Fprintf(&buf, "  • %s: %s\n", a.Name, pluralBooks(a.BookCount))
		}
	}

	return buf.Bytes()
}

// WriteExport renders books in format and writes them to path, creating parent directories.
func WriteExport(format string, books []models.Book, path string) error {
	if path == "" {
		return fmt.Errorf("%w: output path", shared.ErrMissingArgument)
	}

	data, err := Export(format, books)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func pluralBooks(n int) string {
	if n == 1 {
		return "1 book"
	}
	return fmt.Sprintf("%d books", n)
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/tasks"
	"github.com/urfave/cli/v3"
)

// AddByISBN looks up a book on Open Library and stores it.
func (r *Runner) AddByISBN(ctx context.Context, cmd *cli.Command) error {
	isbn := strings.TrimSpace(cmd.StringArg("isbn"))
	if isbn == "" {
		return fmt.Errorf("%w: isbn", shared.ErrMissingArgument)
	}

	catalog, err := r.openCatalog()
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 8)
	done := r.printProgress(progress, cmd.Bool("json"))

	book, err := catalog.AddByISBNWithProgress(ctx, isbn, progress)
	close(progress)
	done.Wait()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(book, true)
	}
	return r.writePlain("✓ Added: %s\n", book)
}

// AddManual stores a book from the --title, --author and --isbn flags.
func (r *Runner) AddManual(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.openCatalog()
	if err != nil {
		return err
	}

	book, err := catalog.AddManual(ctx, cmd.String("title"), cmd.String("author"), cmd.String("isbn"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(book, true)
	}
	return r.writePlain("✓ Added: %s\n", book)
}

// Remove deletes a book after confirmation unless --yes is given.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	isbn := strings.TrimSpace(cmd.StringArg("isbn"))
	if isbn == "" {
		return fmt.Errorf("%w: isbn", shared.ErrMissingArgument)
	}

	catalog, err := r.openCatalog()
	if err != nil {
		return err
	}

	book, ok := catalog.Find(isbn)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrBookNotFound, isbn)
	}

	if !cmd.Bool("yes") && !r.confirm(fmt.Sprintf("Remove %s?", book)) {
		return r.writePlain("Operation cancelled.\n")
	}

	if _, err := catalog.Remove(ctx, isbn); err != nil {
		return err
	}
	return r.writePlain("✓ Removed: %s\n", book)
}

// List prints every book in insertion order.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.openCatalog()
	if err != nil {
		return err
	}

	books := catalog.List()
	format := cmd.String("format")
	if cmd.Bool("json") {
		format = formatter.FormatJSON
	}

	if len(books) == 0 && format == formatter.FormatText {
		return r.writePlain("The library is empty.\n")
	}

	data, err := formatter.Export(format, books)
	if err != nil {
		return err
	}
	_, err = r.output.Write(data)
	return err
}

// Find prints the book stored under the given ISBN.
func (r *Runner) Find(ctx context.Context, cmd *cli.Command) error {
	isbn := strings.TrimSpace(cmd.StringArg("isbn"))
	if isbn == "" {
		return fmt.Errorf("%w: isbn", shared.ErrMissingArgument)
	}

	catalog, err := r.openCatalog()
	if err != nil {
		return err
	}

	book, ok := catalog.Find(isbn)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrBookNotFound, isbn)
	}

	if cmd.Bool("json") {
		return r.writeJSON(book, true)
	}
	return r.writePlain("%s\n", book)
}

// Stats prints the catalog summary.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.openCatalog()
	if err != nil {
		return err
	}

	stats := catalog.Stats()
	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}

	r.writePlainHeader("Library Statistics")
	_, err = r.output.Write(formatter.StatsToText(stats))
	return err
}

// Export writes the catalog to --output in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.openCatalog()
	if err != nil {
		return err
	}

	books := catalog.List()
	output := cmd.String("output")
	if err := formatter.WriteExport(cmd.String("format"), books, output); err != nil {
		return err
	}

	r.logger.Info("catalog exported", "format", cmd.String("format"), "books", len(books), "path", output)
	return r.writePlain("✓ Exported %d books to %s\n", len(books), output)
}

// Import adds every ISBN from the arguments and --file through the lookup service.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	isbns := cmd.Args().Slice()
	if path := cmd.String("file"); path != "" {
		fromFile, err := readISBNFile(path)
		if err != nil {
			return err
		}
		isbns = append(isbns, fromFile...)
	}
	if len(isbns) == 0 {
		return fmt.Errorf("%w: provide ISBNs as arguments or with --file", shared.ErrMissingArgument)
	}

	workers := cmd.Int("workers")
	if workers < 1 || workers > 8 {
		return fmt.Errorf("%w: --workers must be between 1 and 8, got %d", shared.ErrInvalidFlag, workers)
	}

	catalog, err := r.openCatalog()
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := r.printProgress(progress, cmd.Bool("json"))

	result, err := catalog.Import(ctx, progress, isbns, tasks.ImportOpts{NumWorkers: workers})
	close(progress)
	done.Wait()
	if result == nil {
		return err
	}

	if cmd.Bool("json") {
		if jerr := r.writeJSON(importSummary(result), true); jerr != nil {
			return jerr
		}
		return err
	}

	r.writePlainln("Imported %d of %d (%d skipped, %d failed)", result.SuccessCount, result.Total, result.SkippedCount, result.FailedCount)
	return err
}

// printProgress writes progress messages until the channel is closed. JSON mode suppresses them.
func (r *Runner) printProgress(progress <-chan tasks.ProgressUpdate, quiet bool) *sync.WaitGroup {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			if !quiet {
				r.writePlain("%s\n", update.Message)
			}
		}
	}()
	return &wg
}

// confirm asks a yes/no question on the runner's input. Anything but y or yes is a no.
func (r *Runner) confirm(question string) bool {
	r.writePlain("%s (y/N): ", question)
	answer, err := r.input.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// readISBNFile reads one ISBN per line. Blank lines and lines starting with # are skipped.
func readISBNFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	defer f.Close()

	var isbns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		isbns = append(isbns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", shared.ErrInvalidInput, path, err)
	}
	return isbns, nil
}

type importItemJSON struct {
	ISBN    string `json:"isbn"`
	Status  string `json:"status"`
	Title   string `json:"title,omitempty"`
	Author  string `json:"author,omitempty"`
	Message string `json:"message,omitempty"`
}

type importSummaryJSON struct {
	Total   int              `json:"total"`
	Added   int              `json:"added"`
	Skipped int              `json:"skipped"`
	Failed  int              `json:"failed"`
	Items   []importItemJSON `json:"items"`
}

func importSummary(result *tasks.ImportResult) importSummaryJSON {
	summary := importSummaryJSON{
		Total:   result.Total,
		Added:   result.SuccessCount,
		Skipped: result.SkippedCount,
		Failed:  result.FailedCount,
		Items:   make([]importItemJSON, 0, len(result.Results)),
	}

	for _, res := range result.Results {
		item := importItemJSON{ISBN: res.ISBN}
		switch {
		case res.Success:
			item.Status = "added"
			item.Title = res.Book.Title
			item.Author = res.Book.Author
		case res.Skipped:
			item.Status = "skipped"
		default:
			item.Status = "failed"
		}
		if res.Error != nil {
			item.Message = res.Error.Error()
		}
		summary.Items = append(summary.Items, item)
	}
	return summary
}

package tasks

import (
	"context"
	"errors"
	"sync"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// ImportOpts contains configuration for bulk ISBN imports.
type ImportOpts struct {
	NumWorkers int // Concurrent lookups (default: 4, max: 8)
}

// ImportItemResult is the outcome for one ISBN.
type ImportItemResult struct {
	ISBN    string
	Book    models.Book
	Success bool
	Skipped bool // Already in the catalog
	Error   error
}

// ImportResult aggregates a bulk import.
type ImportResult struct {
	Total        int
	SuccessCount int
	SkippedCount int
	FailedCount  int
	Results      []ImportItemResult // In input order
}

type importJob struct {
	index int
	isbn  string
}

type importOutcome struct {
	index int
	ImportItemResult
}

// Import adds every ISBN through [Catalog.AddByISBN] using a bounded worker pool.
//
// Blank entries are ignored. Duplicates, whether already stored or repeated in isbns, are counted as skipped.
// Individual failures never abort the run; a cancelled context does, returning the partial result.
func (c *Catalog) Import(ctx context.Context, progress chan<- ProgressUpdate, isbns []string, opts ImportOpts) (*ImportResult, error) {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}

	pending := make([]string, 0, len(isbns))
	for _, isbn := range isbns {
		if b := models.NewBook("", "", isbn); b.ISBN != "" {
			pending = append(pending, b.ISBN)
		}
	}

	result := &ImportResult{
		Total:   len(pending),
		Results: make([]ImportItemResult, len(pending)),
	}

	jobs := make(chan importJob)
	results := make(chan importOutcome, len(pending))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				book, err := c.AddByISBN(ctx, job.isbn)
				res := ImportItemResult{ISBN: job.isbn, Book: book, Success: err == nil, Error: err}
				if errors.Is(err, shared.ErrDuplicateISBN) {
					res.Skipped = true
				}
				results <- importOutcome{index: job.index, ImportItemResult: res}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, isbn := range pending {
			select {
			case <-ctx.Done():
				return
			case jobs <- importJob{index: i, isbn: isbn}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	done := make([]bool, len(pending))
	completed := 0
	for out := range results {
		completed++
		res := out.ImportItemResult
		result.Results[out.index] = res
		done[out.index] = true

		switch {
		case res.Success:
			result.SuccessCount++
			sendProgress(progress, importCompletedUpdate(completed, result.Total, res.Book))
		case res.Skipped:
			result.SkippedCount++
			sendProgress(progress, importFailedUpdate(completed, result.Total, res.ISBN, res.Error))
		default:
			result.FailedCount++
			c.logger.Warn("import failed", "isbn", res.ISBN, "error", res.Error)
			sendProgress(progress, importFailedUpdate(completed, result.Total, res.ISBN, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		for i, ok := range done {
			if !ok {
				result.Results[i] = ImportItemResult{ISBN: pending[i], Error: err}
				result.FailedCount++
			}
		}
		return result, err
	}
	return result, nil
}

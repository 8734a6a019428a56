package tasks

import (
	"fmt"

	"github.com/desertthunder/shelf/internal/models"
)

// ProgressUpdate represents a progress event during a lookup-assisted add or an import.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	LookupEdition Phase = iota
	ResolveAuthor
	SaveCatalog
	ImportBooks
)

func (p Phase) String() string {
	switch p {
	case LookupEdition:
		return "lookup_edition"
	case ResolveAuthor:
		return "resolve_author"
	case SaveCatalog:
		return "save_catalog"
	case ImportBooks:
		return "import_books"
	default:
		return ""
	}
}

func lookupEditionUpdate(isbn string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LookupEdition,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Looking up ISBN %s...", isbn),
	}
}

func resolveAuthorUpdate(step, total int, key string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveAuthor,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Resolving author %s...", step, total, key),
	}
}

func savedBookUpdate(book models.Book) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Saved: %s", book),
		Data:    book,
	}
}

func importCompletedUpdate(step, total int, book models.Book) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportBooks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, book),
		Data:    book,
	}
}

func importFailedUpdate(step, total int, isbn string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportBooks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, isbn, err),
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

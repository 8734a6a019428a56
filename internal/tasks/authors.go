package tasks

import (
	"context"
	"strings"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/services"
)

// AuthorResolution is the outcome of resolving one author reference.
type AuthorResolution struct {
	Key  string // Reference as returned by the edition record
	Name string // Display name (empty when Err is set)
	Err  error  // Error if the lookup failed
}

// ResolveAuthors looks up every key in order. A failure on one key never prevents the others from resolving.
//
// Once ctx is done the remaining keys are not looked up; their results carry ctx.Err().
func ResolveAuthors(ctx context.Context, lookup services.Lookup, keys []string) []AuthorResolution {
	return resolveAuthors(ctx, lookup, keys, nil)
}

func resolveAuthors(ctx context.Context, lookup services.Lookup, keys []string, progress chan<- ProgressUpdate) []AuthorResolution {
	results := make([]AuthorResolution, len(keys))
	for i, key := range keys {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(keys); j++ {
				results[j] = AuthorResolution{Key: keys[j], Err: err}
			}
			break
		}
		sendProgress(progress, resolveAuthorUpdate(i+1, len(keys), key))

		name, err := lookup.AuthorByKey(ctx, key)
		if err != nil {
			results[i] = AuthorResolution{Key: key, Err: err}
			continue
		}
		if name = strings.TrimSpace(name); name == "" {
			name = models.UnknownAuthor
		}
		results[i] = AuthorResolution{Key: key, Name: name}
	}
	return results
}

// AuthorDisplay joins the successfully resolved names with ", ".
//
// Returns [models.UnknownAuthor] when nothing resolved.
func AuthorDisplay(results []AuthorResolution) string {
	names := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err == nil && r.Name != "" {
			names = append(names, r.Name)
		}
	}
	if len(names) == 0 {
		return models.UnknownAuthor
	}
	return strings.Join(names, ", ")
}

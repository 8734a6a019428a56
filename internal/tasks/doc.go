// Package tasks implements the catalog's business rules on top of the file-backed store and a metadata lookup.
//
// # Core Operations
//
// [Catalog] is the single owner of a [repositories.CatalogStore]:
//
//  1. [Catalog.AddManual] : store a caller-supplied title, author, and ISBN
//  2. [Catalog.AddByISBN] : fetch title and author references from a [services.Lookup], resolve the
//     references into a display string, then store the book under the caller's ISBN
//  3. [Catalog.Remove] : delete by ISBN
//  4. [Catalog.Find], [Catalog.List], [Catalog.Stats] : read-only views
//  5. [Catalog.Import] : add many ISBNs with a bounded worker pool
//
// Every mutation is persisted before it returns. When the write fails the in-memory change is rolled back.
//
// # Progress Reporting
//
// Lookup-assisted adds and imports accept an optional channel of [ProgressUpdate] values.
// Updates use select with default so a slow reader never blocks catalog work.
//
// # Author Resolution
//
// [ResolveAuthors] looks up each reference independently. References that fail are dropped and the
// remaining names are joined with ", ". When nothing resolves the book is stored as [models.UnknownAuthor].
package tasks

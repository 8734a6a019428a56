// Package repositories implements persistence for the library catalog.
//
// [CatalogStore] keeps the whole collection in memory and rewrites the backing JSON file on every save.
// The file is a single array of objects with exactly the keys title, author and isbn, in insertion order.
//
// Saves go through a temporary file in the same directory followed by a rename, so a crash mid-write leaves
// either the previous document or the new one, never a truncated file.
//
// Loads are strict: a missing file is an empty catalog, but a file that exists and does not match the
// document shape is reported as [shared.ErrStorage] rather than treated as empty.
package repositories

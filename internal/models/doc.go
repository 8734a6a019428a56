// Package models defines the value types shared by the catalog, its adapters, and its persistence layer.
//
//   - [Book] : a catalog entry keyed by ISBN, serialized with exactly the keys title, author, isbn
//   - [Stats] : derived aggregates over the catalog (counts, top and prolific authors)
//   - [AuthorCount] : a single author tally used by [Stats]
//
// Books are plain values. The catalog copies them in and out so callers never hold a reference into stored state.
package models

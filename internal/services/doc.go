// Package services defines the [Lookup] interface for book metadata sources and implements it for Open Library.
//
// # Lookup Interface
//
// The catalog only needs two reads: an edition by ISBN, which yields a title and zero or more author
// references, and an author by reference, which yields a display name. Keeping the interface this small lets
// tests substitute an in-memory double.
//
// # Open Library Implementation
//
// [OpenLibraryService] calls the public JSON endpoints:
//   - GET /isbn/{isbn}.json : edition record (Open Library answers with a redirect to /books/{olid}.json)
//   - GET /authors/{olid}.json : author record
//
// Every call runs under its own timeout and waits on a shared [rate.Limiter] before going out.
// There are no retries: a failed call is reported immediately.
//
// # Error Handling
//
// Failures are classified with sentinels from the shared package:
//   - [shared.ErrBookNotFound] : the source answered 404
//   - [shared.ErrLookupUnavailable] : transport error, timeout, unexpected status, or undecodable body
package services

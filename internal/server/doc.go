// Package server exposes the catalog over a small JSON REST API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns, so a request with the wrong method on a known
// path is answered with 405 and an Allow header.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// [BooksHandler] and [InfoHandler] dispatch on [http.Request.Pattern].
//
// # Errors
//
// Catalog errors are classified with [errors.Is] and written as {"detail": ..., "request_id": ...}:
//
//   - shared.ErrValidation: 422 (400 when the body is not valid JSON)
//   - shared.ErrDuplicateISBN: 409
//   - shared.ErrBookNotFound: 404
//   - shared.ErrLookupUnavailable: 502
//   - anything else: 500
//
// # Lifecycle
//
// [Server.Run] serves until its context is cancelled, then drains in-flight requests.
package server

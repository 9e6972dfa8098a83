// Package errs defines custom error types and utilities.
//
// Its purpose is to give every failure a specific error structure
// (HTTPError for API responses, with optional per-field validation
// messages) so clients receive consistent, generic error bodies.
package errs

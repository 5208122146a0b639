// Package article provides the article use cases: reading, listing with
// sort and window, and the write paths that stage changes and commit them
// through a repository session.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrInvalidSort indicates that the sort expression names a field that
	// cannot be sorted on or is malformed.
	ErrInvalidSort = errors.New("invalid sort parameter")

	// ErrInvalidPatch indicates that a partial-update document could not be
	// applied.
	ErrInvalidPatch = errors.New("invalid patch document")
)

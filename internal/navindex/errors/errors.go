package errors

// Package errors provides sentinel errors for navigation index operations.
// These enable consistent classification without string matching at call sites.

import "errors"

var (
	// ErrMalformedIndex indicates the index document violates the declaration syntax.
	ErrMalformedIndex = errors.New("malformed navigation index")

	// ErrDuplicateEntry indicates a page identifier repeated within a section
	// or a link label repeated across the index.
	ErrDuplicateEntry = errors.New("duplicate navigation entry")

	// ErrInvalidDepth indicates a section max_depth that is not a positive integer.
	ErrInvalidDepth = errors.New("invalid section depth")

	// ErrUnresolvedReference indicates a page reference with no matching catalog page.
	ErrUnresolvedReference = errors.New("unresolved page reference")

	// ErrIndexNotFound indicates the index file does not exist.
	ErrIndexNotFound = errors.New("navigation index file not found")
)

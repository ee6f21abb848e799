package entity

import "errors"

// Domain errors
var (
	// Document errors
	ErrNoDocument    = errors.New("no document has been ingested")
	ErrEmptyDocument = errors.New("document contains no extractable text")

	// File errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")

	// Pipeline errors
	ErrFilterParse = errors.New("failed to parse self-query filter")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)

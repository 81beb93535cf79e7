package search

import "errors"

var (
	// ErrInvalidQuery means the query could not be compiled; no work was done.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrRootRequired means Config.RootDir was empty.
	ErrRootRequired = errors.New("root directory is required")
)

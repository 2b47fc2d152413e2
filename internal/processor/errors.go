package processor

import "errors"

var (
	// ErrNotFound means the input root is missing or is not a directory.
	ErrNotFound = errors.New("input directory not found")
	// ErrEmptySet means discovery matched no files. It is reported, not fatal.
	ErrEmptySet = errors.New("no HEIC/HEIF files found")
	// ErrDeclined means the user refused to write into a non-empty output directory.
	ErrDeclined = errors.New("overwrite not confirmed")
)

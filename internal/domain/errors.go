package domain

import "errors"

var (
	// ErrHomeNotFound is returned when a home id is malformed or unknown.
	ErrHomeNotFound = errors.New("home not found")
	// ErrFileNotFound is returned when the object store does not know the id.
	ErrFileNotFound = errors.New("file not found")
	// ErrNoFiles is returned when an upload request carries no files.
	ErrNoFiles = errors.New("no files uploaded")
)

package repository

import "errors"

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	// ErrNotFound means no state document exists yet (first run).
	ErrNotFound = errors.New("not found")
	// ErrCorrupt means the stored document could not be decoded.
	ErrCorrupt = errors.New("corrupt state document")
	// ErrUnsupportedVersion means the document schema is newer than this build.
	ErrUnsupportedVersion = errors.New("unsupported schema version")
)

package qa

import "errors"

var (
	// ErrEmptyCatalog means no documents exist system-wide yet.
	ErrEmptyCatalog = errors.New("no books uploaded yet")
	// ErrSelectionNotFound means a listed document no longer resolves;
	// the caller should re-list and retry.
	ErrSelectionNotFound = errors.New("selected book not found")
	// ErrNoSelection means the session has not chosen a document yet.
	ErrNoSelection = errors.New("no book selected")
	// ErrModel wraps any failure of the external model call.
	ErrModel = errors.New("model call failed")

	ErrInvalidInput = errors.New("invalid input")
)

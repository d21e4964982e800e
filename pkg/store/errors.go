package store

import "errors"

var (
	// ErrNotFound indicates the operation targeted a document that does not
	// exist or is outside the caller's scope.
	ErrNotFound = errors.New("document not found")

	// ErrNotPersisted indicates the store rejected or failed a write.
	ErrNotPersisted = errors.New("document not persisted")

	// ErrStore indicates an underlying store read failed.
	ErrStore = errors.New("store operation failed")

	// ErrEmptyFilter indicates a filter request with no conditions, which
	// would otherwise return the full collection.
	ErrEmptyFilter = errors.New("filter requires at least one condition")

	// ErrFieldNotAllowed indicates a filter or search key outside the
	// resource's allow-list.
	ErrFieldNotAllowed = errors.New("field not allowed")
)

package profiles

import "errors"

var (
	// ErrNoStorageKey means the profile cannot be persisted because it has
	// no first/last name to derive a directory name from.
	ErrNoStorageKey = errors.New("profile must have a name before saving")
	// ErrNotFound means no stored profile exists under the given key.
	ErrNotFound = errors.New("profile not found")
	// ErrInvalidInput flags missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")
)

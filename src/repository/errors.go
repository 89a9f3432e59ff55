package repository

import "errors"

var (
	// ErrUnauthenticated is returned when an operation needs a signed-in
	// identity and none is present.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrUnauthorized is returned when the caller's account does not carry
	// the business flag required for the operation.
	ErrUnauthorized = errors.New("business account required")

	// ErrNotFound is returned for point lookups and updates against records
	// that do not exist.
	ErrNotFound = errors.New("record not found")

	// ErrBlobNotFound distinguishes a delete against a missing stored image.
	// Callers running image cleanup may ignore it.
	ErrBlobNotFound = errors.New("stored image not found")
)
